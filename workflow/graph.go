package workflow

import "encoding/json"

// NodeType is a step type or one of the synthetic sentinel types.
type NodeType string

const (
	// NodeTypeStart is the synthetic entry sentinel (no incoming edges)
	NodeTypeStart NodeType = "start"
	// NodeTypeEnd is the synthetic exit sentinel (no outgoing edges)
	NodeTypeEnd NodeType = "end"
)

// Sentinel node ids. The editor treats them as fixed anchors.
const (
	StartNodeID = "start"
	EndNodeID   = "end"
)

// Branch edge handles on condition nodes.
const (
	HandleThen = "then"
	HandleElse = "else"
)

// IsSentinel reports whether t is a synthetic start/end type.
func (t NodeType) IsSentinel() bool {
	return t == NodeTypeStart || t == NodeTypeEnd
}

// Node is the canvas counterpart of a step. Sentinel nodes carry a zero Data.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     NodeType `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`
	Data     Step     `json:"data" yaml:"data"`
}

// Edge is a flow connection between two nodes. SourceHandle is set to "then"
// or "else" on condition branch edges and empty on main-flow edges.
type Edge struct {
	ID           string `json:"id" yaml:"id"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"source_handle,omitempty"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
}

// IsBranch reports whether the edge is a condition branch edge.
func (e Edge) IsBranch() bool {
	return e.SourceHandle == HandleThen || e.SourceHandle == HandleElse
}

// Graph is the editor's working representation of a workflow. It is the sole
// mutable entity during an edit session and is owned by the editor; all
// conversions in this package treat it as an immutable snapshot.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// StartNode returns the graph's start sentinel.
func (g *Graph) StartNode() (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].Type == NodeTypeStart {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// AddNode appends a node to the graph.
func (g *Graph) AddNode(n Node) {
	g.Nodes = append(g.Nodes, n)
}

// AddEdge appends an edge to the graph.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
}

// OutEdges returns the outgoing edges of a node, in graph order.
func (g *Graph) OutEdges(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns the incoming edges of a node, in graph order.
func (g *Graph) InEdges(id string) []Edge {
	var in []Edge
	for _, e := range g.Edges {
		if e.Target == id {
			in = append(in, e)
		}
	}
	return in
}

// RemoveNode removes the node and every edge where it is source or target.
// Edges not touching the node are left untouched.
func (g *Graph) RemoveNode(id string) {
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	g.Nodes = nodes

	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}
	g.Edges = edges
}

// Positions returns the current node positions keyed by node id, in the flat
// map shape persisted as WorkflowDefinition.Layout (sentinels included).
func (g *Graph) Positions() map[string]Position {
	pos := make(map[string]Position, len(g.Nodes))
	for _, n := range g.Nodes {
		pos[n.ID] = n.Position
	}
	return pos
}

// ApplyPositions sets node positions from a layout map. Nodes absent from the
// map keep their current position.
func (g *Graph) ApplyPositions(pos map[string]Position) {
	for i := range g.Nodes {
		if p, ok := pos[g.Nodes[i].ID]; ok {
			g.Nodes[i].Position = p
		}
	}
}

// DecodeToolArgs parses a free-form JSON object typed into the tool-args
// config field. A malformed value is discarded locally: the last valid args
// are returned unchanged and ok is false. This is never escalated to the
// caller.
func DecodeToolArgs(raw string, last map[string]any) (args map[string]any, ok bool) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return last, false
	}
	return parsed, true
}
