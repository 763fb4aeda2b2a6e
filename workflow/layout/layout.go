package layout

import "github.com/BaSui01/agentcanvas/workflow"

// Direction selects the flow axis of the layered strategy.
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// Strategy selects the layout algorithm.
type Strategy string

const (
	// StrategyLayered runs classic layered layout over the full edge set.
	StrategyLayered Strategy = "layered"
	// StrategyHybrid keeps the main flow vertical and offsets branches.
	StrategyHybrid Strategy = "hybrid"
)

// Options tunes node geometry. Zero-valued fields are filled from defaults;
// horizontal mode uses wider spacing so labels between ranks stay readable.
type Options struct {
	Direction    Direction
	NodeSpacing  float64
	RankSpacing  float64
	BranchOffset float64
	Origin       workflow.Position
}

// Default spacing constants.
const (
	defaultNodeSpacing    = 200.0
	defaultRankSpacing    = 120.0
	defaultBranchOffset   = 200.0
	horizontalNodeSpacing = 160.0
	horizontalRankSpacing = 260.0
	defaultOriginX        = 250.0
	defaultOriginY        = 25.0
)

// DefaultOptions returns the vertical defaults used by the console.
func DefaultOptions() Options {
	return Options{
		Direction:    DirectionVertical,
		NodeSpacing:  defaultNodeSpacing,
		RankSpacing:  defaultRankSpacing,
		BranchOffset: defaultBranchOffset,
		Origin:       workflow.Position{X: defaultOriginX, Y: defaultOriginY},
	}
}

// normalized fills zero-valued fields with direction-appropriate defaults.
func (o Options) normalized() Options {
	if o.Direction == "" {
		o.Direction = DirectionVertical
	}
	if o.NodeSpacing == 0 {
		o.NodeSpacing = defaultNodeSpacing
		if o.Direction == DirectionHorizontal {
			o.NodeSpacing = horizontalNodeSpacing
		}
	}
	if o.RankSpacing == 0 {
		o.RankSpacing = defaultRankSpacing
		if o.Direction == DirectionHorizontal {
			o.RankSpacing = horizontalRankSpacing
		}
	}
	if o.BranchOffset == 0 {
		o.BranchOffset = defaultBranchOffset
	}
	if o.Origin == (workflow.Position{}) {
		o.Origin = workflow.Position{X: defaultOriginX, Y: defaultOriginY}
	}
	return o
}

// Compute runs the selected strategy and returns positions keyed by node id.
// An empty strategy means hybrid, the console default.
func Compute(g *workflow.Graph, strategy Strategy, opts Options) map[string]workflow.Position {
	switch strategy {
	case StrategyLayered:
		return Layered(g, opts)
	default:
		return Hybrid(g, opts)
	}
}
