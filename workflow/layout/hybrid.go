package layout

import "github.com/BaSui01/agentcanvas/workflow"

// Hybrid computes the console's default layout: a vertical backbone with
// horizontal offsets for condition branches.
//
// Running the layered strategy over the full edge set fans the tree sideways
// at every branch; workflows read better with the dominant execution path in
// a single vertical column. Hybrid instead:
//
//  1. assigns every node a depth by breadth-first search from the start
//     sentinel across all edges (first visit wins, so loop-back edges and
//     revisits never move a node);
//  2. places every node on a center column at y = origin + depth*RankSpacing;
//  3. offsets each forward branch target (target depth >= condition depth)
//     horizontally: +BranchOffset for then, -BranchOffset for else. A node
//     targeted by several conditions gets the strongest offset in each
//     direction, never a sum;
//  4. leaves backward (loop-back) targets exactly on their backbone position:
//     a retry target must not be dragged away from its place in the flow.
//
// Branch handling never changes a node's vertical position. Nodes that are
// not reachable from start (including isolated nodes) are laid out as extra
// columns to the right, one column per disconnected root.
func Hybrid(g *workflow.Graph, opts Options) map[string]workflow.Position {
	opts = opts.normalized()

	positions := make(map[string]workflow.Position, len(g.Nodes))
	if len(g.Nodes) == 0 {
		return positions
	}

	depth, column := hybridDepths(g)

	for _, n := range g.Nodes {
		positions[n.ID] = workflow.Position{
			X: opts.Origin.X + float64(column[n.ID])*opts.NodeSpacing,
			Y: opts.Origin.Y + float64(depth[n.ID])*opts.RankSpacing,
		}
	}

	// Branch offsets, merged by greatest magnitude per direction.
	posOffset := make(map[string]float64)
	negOffset := make(map[string]float64)
	for _, e := range g.Edges {
		if !e.IsBranch() {
			continue
		}
		srcDepth, okS := depth[e.Source]
		dstDepth, okT := depth[e.Target]
		if !okS || !okT || dstDepth < srcDepth {
			continue // backward branch: loop-back, keep backbone position
		}
		switch e.SourceHandle {
		case workflow.HandleThen:
			if opts.BranchOffset > posOffset[e.Target] {
				posOffset[e.Target] = opts.BranchOffset
			}
		case workflow.HandleElse:
			if -opts.BranchOffset < negOffset[e.Target] {
				negOffset[e.Target] = -opts.BranchOffset
			}
		}
	}

	for id, p := range positions {
		if dx := posOffset[id] + negOffset[id]; dx != 0 {
			p.X += dx
			positions[id] = p
		}
	}

	return positions
}

// hybridDepths assigns each node a BFS depth and a column. The component
// reachable from start is column 0; every further BFS root opens the next
// column, which its descendants inherit.
func hybridDepths(g *workflow.Graph) (depth map[string]int, column map[string]int) {
	depth = make(map[string]int, len(g.Nodes))
	column = make(map[string]int, len(g.Nodes))

	out := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}
	exists := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		exists[n.ID] = true
	}

	bfs := func(root string, col int) {
		queue := []string{root}
		depth[root] = 0
		column[root] = col
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range out[id] {
				if !exists[next] {
					continue
				}
				if _, seen := depth[next]; seen {
					continue
				}
				depth[next] = depth[id] + 1
				column[next] = col
				queue = append(queue, next)
			}
		}
	}

	col := 0
	if start, ok := g.StartNode(); ok {
		bfs(start.ID, col)
		col++
	}
	for _, n := range g.Nodes {
		if _, seen := depth[n.ID]; !seen {
			bfs(n.ID, col)
			col++
		}
	}
	return depth, column
}
