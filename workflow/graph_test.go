package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_RemoveNode_DeletionScope(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "b", Type: StepTypeCondition, Condition: &ConditionConfig{
			Field: "f", Operator: "eq", Value: 1, ThenStep: "c", ElseStep: "d",
		}},
		{ID: "c", Type: StepTypeTool, Tool: "y"},
		{ID: "d", Type: StepTypeTool, Tool: "z"},
	}
	g := mustBuild(t, steps)
	before := len(g.Edges)

	g.RemoveNode("c")

	_, ok := g.Node("c")
	assert.False(t, ok)

	// Every edge touching c is gone: b-then-c and c-d.
	assert.Len(t, g.Edges, before-2)
	for _, e := range g.Edges {
		assert.NotEqual(t, "c", e.Source)
		assert.NotEqual(t, "c", e.Target)
	}

	// Edges not touching c survive.
	_, ok = findEdge(g, "b-else-d")
	assert.True(t, ok)
	_, ok = findEdge(g, "start-a")
	assert.True(t, ok)
}

func TestGraph_RemoveNode_UnknownIDIsNoop(t *testing.T) {
	g := mustBuild(t, []Step{{ID: "a", Type: StepTypeAgent, Agent: "x"}})
	nodes, edges := len(g.Nodes), len(g.Edges)

	g.RemoveNode("ghost")

	assert.Len(t, g.Nodes, nodes)
	assert.Len(t, g.Edges, edges)
}

func TestGraph_PositionsRoundTrip(t *testing.T) {
	g := mustBuild(t, []Step{{ID: "a", Type: StepTypeAgent, Agent: "x"}})

	pos := g.Positions()
	require.Contains(t, pos, StartNodeID)
	require.Contains(t, pos, "a")
	require.Contains(t, pos, EndNodeID)

	pos["a"] = Position{X: 1, Y: 2}
	g.ApplyPositions(pos)

	a, _ := g.Node("a")
	assert.Equal(t, Position{X: 1, Y: 2}, a.Position)
}

func TestDecodeToolArgs_ValidReplaces(t *testing.T) {
	last := map[string]any{"q": "old"}
	args, ok := DecodeToolArgs(`{"q":"new","limit":3}`, last)

	assert.True(t, ok)
	assert.Equal(t, "new", args["q"])
	assert.EqualValues(t, 3, args["limit"])
}

func TestDecodeToolArgs_MalformedKeepsLastValid(t *testing.T) {
	last := map[string]any{"q": "old"}

	args, ok := DecodeToolArgs(`{"q": unquoted}`, last)
	assert.False(t, ok)
	assert.Equal(t, last, args)

	args, ok = DecodeToolArgs(`[1,2,3]`, last) // not an object
	assert.False(t, ok)
	assert.Equal(t, last, args)
}
