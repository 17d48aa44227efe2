package layout

import (
	"context"
	"time"

	"github.com/matzehuels/microtosca/pkg/observability"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// Engine is a hierarchical layout collaborator.
//
// Layout must update the Position of every node and, when p.SetVertices is
// set, the Vertices of every link. It must not add or remove nodes or links.
type Engine interface {
	Layout(ctx context.Context, g *topology.Graph, p Params) error
}

// Apply lays out g with engine in the given rank direction, using
// [DefaultParams].
//
// dir is matched exactly against "TB", "BT", "LR" and "RL". Any other
// value is a no-op: the engine is not invoked, nothing is modified, and
// Apply returns nil. Use [ParseRankDir] first to get an error for bad input.
//
// The layout covers every element of the graph, including external users
// and squads.
func Apply(ctx context.Context, g *topology.Graph, dir string, engine Engine) error {
	d := RankDir(dir)
	if !d.Valid() {
		return nil
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, dir, g.NodeCount())
	start := time.Now()
	err := engine.Layout(ctx, g, DefaultParams(d))
	hooks.OnLayoutComplete(ctx, dir, time.Since(start), err)
	return err
}
