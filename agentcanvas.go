// Package agentcanvas provides a top-level convenience entry point for the
// workflow canvas core with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/agentcanvas"
//
//	g, err := agentcanvas.Build(def.Steps, def.Layout)
//	g.ApplyPositions(agentcanvas.AutoLayout(g))
//	def.Steps = agentcanvas.Serialize(g)
//	def.Layout = g.Positions()
//
// This is a thin wrapper around the workflow and workflow/layout packages;
// use those directly when you need tuning options.
package agentcanvas

import (
	"github.com/BaSui01/agentcanvas/workflow"
	"github.com/BaSui01/agentcanvas/workflow/layout"
)

// Re-export the core types so simple callers never import subpackages.
type (
	Step               = workflow.Step
	Graph              = workflow.Graph
	Position           = workflow.Position
	WorkflowDefinition = workflow.WorkflowDefinition
)

// Build converts a step list (plus optional saved positions) into the
// editor graph. See [workflow.BuildGraph].
func Build(steps []Step, saved map[string]Position) (*Graph, error) {
	return workflow.BuildGraph(steps, saved)
}

// Serialize converts an edited graph back into a step list.
// See [workflow.SerializeGraph].
func Serialize(g *Graph) []Step {
	return workflow.SerializeGraph(g)
}

// AutoLayout computes positions with the default hybrid strategy.
// See [layout.Hybrid].
func AutoLayout(g *Graph) map[string]Position {
	return layout.Hybrid(g, layout.DefaultOptions())
}

// NewStep creates a blank step with a fresh unique id.
// See [workflow.NewStep].
func NewStep(t workflow.StepType) Step {
	return workflow.NewStep(t)
}

// IsStepComplete reports whether a step can be saved and executed.
var IsStepComplete = workflow.IsStepComplete
