package layout

import (
	"sort"

	"github.com/BaSui01/agentcanvas/workflow"
)

// Layered computes a classic layered (Sugiyama-style) layout over the full
// edge set, condition branches included: back edges are dropped for ranking,
// ranks are assigned by longest path, nodes within a rank are ordered by a
// few barycenter sweeps, and (rank, order) maps to canvas coordinates along
// the configured direction. Isolated nodes land on rank 0.
func Layered(g *workflow.Graph, opts Options) map[string]workflow.Position {
	opts = opts.normalized()

	positions := make(map[string]workflow.Position, len(g.Nodes))
	if len(g.Nodes) == 0 {
		return positions
	}

	lg := newLayerGraph(g)
	lg.assignRanks()
	lg.orderRanks()

	for i, id := range lg.ids {
		rank := lg.rank[i]
		k := len(lg.layers[rank])
		offset := (float64(lg.order[i]) - float64(k-1)/2) * opts.NodeSpacing
		along := float64(rank) * opts.RankSpacing

		if opts.Direction == DirectionHorizontal {
			positions[id] = workflow.Position{
				X: opts.Origin.X + along,
				Y: opts.Origin.Y + offset,
			}
		} else {
			positions[id] = workflow.Position{
				X: opts.Origin.X + offset,
				Y: opts.Origin.Y + along,
			}
		}
	}

	return positions
}

// layerGraph is the mutable working state of one Layered run.
type layerGraph struct {
	ids    []string
	index  map[string]int
	out    [][]int // acyclic out-neighbors
	in     [][]int // acyclic in-neighbors
	rank   []int
	order  []int   // position within the node's rank
	layers [][]int // node indexes per rank
}

func newLayerGraph(g *workflow.Graph) *layerGraph {
	lg := &layerGraph{
		ids:   make([]string, len(g.Nodes)),
		index: make(map[string]int, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		lg.ids[i] = n.ID
		lg.index[n.ID] = i
	}

	rawOut := make([][]int, len(lg.ids))
	for _, e := range g.Edges {
		s, okS := lg.index[e.Source]
		t, okT := lg.index[e.Target]
		if !okS || !okT || s == t {
			continue
		}
		rawOut[s] = append(rawOut[s], t)
	}

	lg.dropBackEdges(rawOut)
	return lg
}

// dropBackEdges keeps only edges that do not close a cycle, found by DFS in
// node order. Loop-back edges in workflows are exactly these.
func (lg *layerGraph) dropBackEdges(rawOut [][]int) {
	lg.out = make([][]int, len(lg.ids))
	lg.in = make([][]int, len(lg.ids))

	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := make([]int, len(lg.ids))

	var visit func(u int)
	visit = func(u int) {
		state[u] = onStack
		for _, v := range rawOut[u] {
			if state[v] == onStack {
				continue // back edge
			}
			lg.out[u] = append(lg.out[u], v)
			lg.in[v] = append(lg.in[v], u)
			if state[v] == unvisited {
				visit(v)
			}
		}
		state[u] = done
	}

	for u := range lg.ids {
		if state[u] == unvisited {
			visit(u)
		}
	}
}

// assignRanks gives every node its longest-path distance from a source.
func (lg *layerGraph) assignRanks() {
	lg.rank = make([]int, len(lg.ids))
	for _, u := range lg.topoOrder() {
		for _, v := range lg.out[u] {
			if lg.rank[u]+1 > lg.rank[v] {
				lg.rank[v] = lg.rank[u] + 1
			}
		}
	}

	maxRank := 0
	for _, r := range lg.rank {
		if r > maxRank {
			maxRank = r
		}
	}
	lg.layers = make([][]int, maxRank+1)
	for u, r := range lg.rank {
		lg.layers[r] = append(lg.layers[r], u)
	}
}

func (lg *layerGraph) topoOrder() []int {
	visited := make([]bool, len(lg.ids))
	post := make([]int, 0, len(lg.ids))

	var visit func(u int)
	visit = func(u int) {
		visited[u] = true
		for _, v := range lg.out[u] {
			if !visited[v] {
				visit(v)
			}
		}
		post = append(post, u)
	}
	for u := range lg.ids {
		if !visited[u] {
			visit(u)
		}
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// orderRanks runs alternating barycenter sweeps to reduce edge crossings,
// then freezes the per-rank order.
func (lg *layerGraph) orderRanks() {
	lg.order = make([]int, len(lg.ids))
	lg.refreshOrder()

	const sweeps = 4
	for s := 0; s < sweeps; s++ {
		if s%2 == 0 {
			for r := 1; r < len(lg.layers); r++ {
				lg.sortLayer(r, lg.in)
			}
		} else {
			for r := len(lg.layers) - 2; r >= 0; r-- {
				lg.sortLayer(r, lg.out)
			}
		}
	}
}

// sortLayer reorders one rank by the mean order of each node's neighbors on
// the given side. Nodes without neighbors keep their slot.
func (lg *layerGraph) sortLayer(r int, neighbors [][]int) {
	layer := lg.layers[r]
	bary := make(map[int]float64, len(layer))
	for _, u := range layer {
		if len(neighbors[u]) == 0 {
			bary[u] = float64(lg.order[u])
			continue
		}
		sum := 0.0
		for _, v := range neighbors[u] {
			sum += float64(lg.order[v])
		}
		bary[u] = sum / float64(len(neighbors[u]))
	}
	sort.SliceStable(layer, func(i, j int) bool {
		return bary[layer[i]] < bary[layer[j]]
	})
	lg.refreshOrder()
}

func (lg *layerGraph) refreshOrder() {
	for _, layer := range lg.layers {
		for i, u := range layer {
			lg.order[u] = i
		}
	}
}
