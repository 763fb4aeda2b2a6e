package workflow

// SerializeGraph converts an edited graph back into a step list.
//
// Serialization is total: every non-sentinel node appears exactly once in the
// output, whether or not it is currently wired into the flow. Steps are
// emitted in start-reachable order (depth-first, visiting the main-flow edge
// before then before else), with any disconnected nodes appended in graph
// order — the persisted list order is therefore deterministic and follows the
// flow, not the editor's insertion order.
//
// The live edges are the source of truth for chaining: next_step is the
// target of the node's single unhandled outgoing edge, and a condition's
// then_step/else_step are the targets of its handled edges. Stale targets in
// node data lose to the wiring the user actually drew. An edge into the end
// sentinel serializes as an absent field (end is implicit).
func SerializeGraph(g *Graph) []Step {
	steps := make([]Step, 0, len(g.Nodes))
	for _, id := range serializationOrder(g) {
		node, ok := g.Node(id)
		if !ok || node.Type.IsSentinel() {
			continue
		}
		steps = append(steps, stepFromNode(*node, g))
	}
	return steps
}

// serializationOrder lists node ids depth-first from the start sentinel,
// then any unreached nodes in graph order. Nodes that flow into the end
// sentinel are pinned to the tail: they serialize without next_step, and the
// implicit-chaining rule gives that absence a positional meaning — anywhere
// but the last slot it would silently rewire the flow on the next load.
func serializationOrder(g *Graph) []string {
	order := make([]string, 0, len(g.Nodes))
	seen := make(map[string]bool, len(g.Nodes))

	var visit func(id string)
	visit = func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		order = append(order, id)
		for _, e := range orderedOutEdges(g, id) {
			visit(e.Target)
		}
	}

	if start, ok := g.StartNode(); ok {
		visit(start.ID)
	}
	for _, n := range g.Nodes {
		visit(n.ID)
	}

	body := make([]string, 0, len(order))
	tail := make([]string, 0, 1)
	for _, id := range order {
		if terminatesFlow(g, id) {
			tail = append(tail, id)
			continue
		}
		body = append(body, id)
	}
	return append(body, tail...)
}

// terminatesFlow reports whether the node's main-flow edge runs into the end
// sentinel. Condition nodes never auto-chain, so their position carries no
// meaning and they are never moved.
func terminatesFlow(g *Graph, id string) bool {
	node, ok := g.Node(id)
	if !ok || node.Type.IsSentinel() || node.Type == NodeType(StepTypeCondition) {
		return false
	}
	for _, e := range g.OutEdges(id) {
		if e.SourceHandle == "" && flowTarget(g, e.Target) == "" {
			return true
		}
	}
	return false
}

// orderedOutEdges returns a node's outgoing edges as main-flow, then, else.
func orderedOutEdges(g *Graph, id string) []Edge {
	out := g.OutEdges(id)
	ordered := make([]Edge, 0, len(out))
	for _, handle := range []string{"", HandleThen, HandleElse} {
		for _, e := range out {
			if e.SourceHandle == handle {
				ordered = append(ordered, e)
			}
		}
	}
	return ordered
}

// flowTarget resolves an edge target to a step reference: edges into the end
// sentinel mean "no explicit successor".
func flowTarget(g *Graph, target string) string {
	if node, ok := g.Node(target); ok && node.Type == NodeTypeEnd {
		return ""
	}
	return target
}

// stepFromNode reconstructs a sparse Step from a node, copying only the
// fields that belong to the node's type.
func stepFromNode(node Node, g *Graph) Step {
	step := Step{
		ID:   node.ID,
		Type: StepType(node.Type),
		Name: node.Data.Name,
	}

	switch step.Type {
	case StepTypeAgent:
		step.Agent = node.Data.Agent
		step.AgentPrompt = node.Data.AgentPrompt
	case StepTypeTool:
		step.Tool = node.Data.Tool
		step.ToolArgs = node.Data.ToolArgs
	case StepTypeCondition:
		cond := ConditionConfig{}
		if node.Data.Condition != nil {
			cond.Field = node.Data.Condition.Field
			cond.Operator = node.Data.Condition.Operator
			cond.Value = node.Data.Condition.Value
		}
		for _, e := range g.OutEdges(node.ID) {
			switch e.SourceHandle {
			case HandleThen:
				cond.ThenStep = flowTarget(g, e.Target)
			case HandleElse:
				cond.ElseStep = flowTarget(g, e.Target)
			}
		}
		step.Condition = &cond
	case StepTypeHuman:
		step.HumanConfig = node.Data.HumanConfig
	case StepTypeParallel:
		step.ParallelSteps = node.Data.ParallelSteps
	case StepTypeLoop:
		step.LoopConfig = node.Data.LoopConfig
	}

	// Condition flow lives entirely on the branch edges.
	if step.Type != StepTypeCondition {
		for _, e := range g.OutEdges(node.ID) {
			if e.SourceHandle == "" {
				step.NextStep = flowTarget(g, e.Target)
				break
			}
		}
	}

	return step
}
