package workflow

import "fmt"

// Default canvas geometry for freshly built graphs. Saved layout positions
// always win over these.
const (
	defaultColumnX      = 250.0
	defaultStartY       = 25.0
	defaultStackBaseY   = 150.0
	defaultStackSpacing = 120.0
)

// EdgeID returns the deterministic id for a main-flow edge, making rebuilds
// idempotent and graphs comparable by equality.
func EdgeID(source, target string) string {
	return fmt.Sprintf("%s-%s", source, target)
}

// BranchEdgeID returns the deterministic id for a condition branch edge.
func BranchEdgeID(source, handle, target string) string {
	return fmt.Sprintf("%s-%s-%s", source, handle, target)
}

// BuildGraph converts a step list into the editor's node/edge graph.
//
// The step list is validated first; a dangling next_step/then_step/else_step
// or duplicate id fails the build with a *types.Error rather than producing
// an edge to a missing node. Positions come from saved (the persisted layout
// map, sentinels included) when present, otherwise from a deterministic
// vertical stack.
//
// Chaining rules: absence of next_step on a non-condition step means
// "continue to the next list entry" — a design decision, not a fallback.
// Condition steps never auto-chain; their flow is the then/else branch edges.
// The last step falls through to the end sentinel when it has no next_step
// and is not a condition.
func BuildGraph(steps []Step, saved map[string]Position) (*Graph, error) {
	if err := ValidateSteps(steps); err != nil {
		return nil, err
	}

	position := func(id string, def Position) Position {
		if p, ok := saved[id]; ok {
			return p
		}
		return def
	}

	g := &Graph{}
	g.AddNode(Node{
		ID:       StartNodeID,
		Type:     NodeTypeStart,
		Position: position(StartNodeID, Position{X: defaultColumnX, Y: defaultStartY}),
	})

	// An empty workflow is just the start sentinel waiting for its first step.
	if len(steps) == 0 {
		return g, nil
	}

	for i, step := range steps {
		g.AddNode(Node{
			ID:   step.ID,
			Type: NodeType(step.Type),
			Position: position(step.ID, Position{
				X: defaultColumnX,
				Y: defaultStackBaseY + float64(i)*defaultStackSpacing,
			}),
			Data: step,
		})
	}

	endY := defaultStackBaseY + float64(len(steps))*defaultStackSpacing
	g.AddNode(Node{
		ID:       EndNodeID,
		Type:     NodeTypeEnd,
		Position: position(EndNodeID, Position{X: defaultColumnX, Y: endY}),
	})

	g.AddEdge(Edge{
		ID:     EdgeID(StartNodeID, steps[0].ID),
		Source: StartNodeID,
		Target: steps[0].ID,
	})

	for i, step := range steps {
		last := i == len(steps)-1

		switch {
		case step.NextStep != "":
			g.AddEdge(Edge{
				ID:     EdgeID(step.ID, step.NextStep),
				Source: step.ID,
				Target: step.NextStep,
			})
		case step.Type == StepTypeCondition:
			// No main-flow edge; branches below carry the whole flow.
		case !last:
			g.AddEdge(Edge{
				ID:     EdgeID(step.ID, steps[i+1].ID),
				Source: step.ID,
				Target: steps[i+1].ID,
			})
		default:
			g.AddEdge(Edge{
				ID:     EdgeID(step.ID, EndNodeID),
				Source: step.ID,
				Target: EndNodeID,
			})
		}

		if step.Type == StepTypeCondition && step.Condition != nil {
			if t := step.Condition.ThenStep; t != "" {
				g.AddEdge(Edge{
					ID:           BranchEdgeID(step.ID, HandleThen, t),
					Source:       step.ID,
					Target:       t,
					SourceHandle: HandleThen,
					Label:        HandleThen,
				})
			}
			if t := step.Condition.ElseStep; t != "" {
				g.AddEdge(Edge{
					ID:           BranchEdgeID(step.ID, HandleElse, t),
					Source:       step.ID,
					Target:       t,
					SourceHandle: HandleElse,
					Label:        HandleElse,
				})
			}
		}
	}

	return g, nil
}
