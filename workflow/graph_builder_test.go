package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentcanvas/types"
)

func edgeIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestBuildGraph_EmptyWorkflow(t *testing.T) {
	g, err := BuildGraph(nil, nil)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, StartNodeID, g.Nodes[0].ID)
	assert.Equal(t, NodeTypeStart, g.Nodes[0].Type)
	assert.Empty(t, g.Edges)
}

func TestBuildGraph_SingleLinearStep(t *testing.T) {
	g, err := BuildGraph([]Step{{ID: "s1", Type: StepTypeAgent, Agent: "a1"}}, nil)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, StartNodeID, g.Nodes[0].ID)
	assert.Equal(t, "s1", g.Nodes[1].ID)
	assert.Equal(t, EndNodeID, g.Nodes[2].ID)

	assert.Equal(t, []string{"start-s1", "s1-end"}, edgeIDs(g))
}

func TestBuildGraph_ImplicitChaining(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "b", Type: StepTypeTool, Tool: "y"},
		{ID: "c", Type: StepTypeTool, Tool: "z"},
	}
	g, err := BuildGraph(steps, nil)
	require.NoError(t, err)

	// Absence of next_step means "continue to the next list entry".
	assert.Equal(t, []string{"start-a", "a-b", "b-c", "c-end"}, edgeIDs(g))
}

func TestBuildGraph_ExplicitNextStepWins(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x", NextStep: "c"},
		{ID: "b", Type: StepTypeTool, Tool: "y"},
		{ID: "c", Type: StepTypeTool, Tool: "z"},
	}
	g, err := BuildGraph(steps, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"start-a", "a-c", "b-c", "c-end"}, edgeIDs(g))
}

func TestBuildGraph_ConditionBranches(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "b", Type: StepTypeCondition, Condition: &ConditionConfig{
			Field: "status", Operator: "eq", Value: "ok", ThenStep: "c", ElseStep: "d",
		}},
		{ID: "c", Type: StepTypeTool, Tool: "y"},
		{ID: "d", Type: StepTypeTool, Tool: "z"},
	}
	g, err := BuildGraph(steps, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"start-a", "a-b", "b-then-c", "b-else-d", "c-d", "d-end"}, edgeIDs(g))

	// Condition nodes never auto-chain a main-flow edge.
	for _, e := range g.OutEdges("b") {
		assert.True(t, e.IsBranch(), "condition should only have branch edges, got %s", e.ID)
	}

	then, _ := findEdge(g, "b-then-c")
	assert.Equal(t, HandleThen, then.SourceHandle)
	assert.Equal(t, "then", then.Label)
}

func TestBuildGraph_ConditionAsLastStepHasNoEndEdge(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "b", Type: StepTypeCondition, Condition: &ConditionConfig{
			Field: "f", Operator: "eq", Value: 1, ThenStep: "a",
		}},
	}
	g, err := BuildGraph(steps, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"start-a", "a-b", "b-then-a"}, edgeIDs(g))
}

func TestBuildGraph_DefaultPositionsStackVertically(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "b", Type: StepTypeTool, Tool: "y"},
	}
	g, err := BuildGraph(steps, nil)
	require.NoError(t, err)

	a, _ := g.Node("a")
	b, _ := g.Node("b")
	assert.Equal(t, a.Position.X, b.Position.X)
	assert.Greater(t, b.Position.Y, a.Position.Y)

	end, _ := g.Node(EndNodeID)
	assert.Greater(t, end.Position.Y, b.Position.Y)
}

func TestBuildGraph_SavedLayoutWins(t *testing.T) {
	saved := map[string]Position{
		"a":         {X: 640, Y: 480},
		StartNodeID: {X: 10, Y: 20},
	}
	g, err := BuildGraph([]Step{{ID: "a", Type: StepTypeAgent, Agent: "x"}}, saved)
	require.NoError(t, err)

	a, _ := g.Node("a")
	assert.Equal(t, Position{X: 640, Y: 480}, a.Position)
	start, _ := g.Node(StartNodeID)
	assert.Equal(t, Position{X: 10, Y: 20}, start.Position)
}

func TestBuildGraph_DanglingReferenceFailsBuild(t *testing.T) {
	_, err := BuildGraph([]Step{{ID: "a", Type: StepTypeAgent, Agent: "x", NextStep: "ghost"}}, nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrDanglingReference, types.GetErrorCode(err))

	var structured *types.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, "a", structured.StepID)
	assert.Equal(t, "ghost", structured.Target)
}

func TestBuildGraph_DanglingBranchReferenceFailsBuild(t *testing.T) {
	_, err := BuildGraph([]Step{
		{ID: "a", Type: StepTypeCondition, Condition: &ConditionConfig{
			Field: "f", Operator: "eq", Value: 1, ThenStep: "missing",
		}},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrDanglingReference, types.GetErrorCode(err))
}

func TestBuildGraph_DuplicateStepID(t *testing.T) {
	_, err := BuildGraph([]Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "a", Type: StepTypeTool, Tool: "y"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrDuplicateStepID, types.GetErrorCode(err))
}

func TestBuildGraph_RebuildIsDeterministic(t *testing.T) {
	steps := []Step{
		{ID: "a", Type: StepTypeAgent, Agent: "x"},
		{ID: "b", Type: StepTypeCondition, Condition: &ConditionConfig{
			Field: "f", Operator: "gt", Value: 3, ThenStep: "c", ElseStep: "a",
		}},
		{ID: "c", Type: StepTypeTool, Tool: "y"},
	}
	g1, err := BuildGraph(steps, nil)
	require.NoError(t, err)
	g2, err := BuildGraph(steps, nil)
	require.NoError(t, err)

	assert.Equal(t, g1, g2)
}

func findEdge(g *Graph, id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}
