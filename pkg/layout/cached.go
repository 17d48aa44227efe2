package layout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/microtosca/pkg/cache"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// Cached is an [Engine] that reuses earlier results of Engine.
//
// Results are keyed by the DOT document built for the graph together with
// the layout parameters, so any change to names, sizes, links or direction
// misses the cache. Cache failures never fail the layout; they only cost a
// recomputation.
type Cached struct {
	Engine Engine
	Cache  cache.Cache
	TTL    time.Duration // zero never expires

	hit bool
}

// geometry is the cached result, in Elements and AllLinks order.
type geometry struct {
	Positions []topology.Point   `json:"positions"`
	Vertices  [][]topology.Point `json:"vertices"`
}

// Layout implements [Engine].
func (e *Cached) Layout(ctx context.Context, g *topology.Graph, p Params) error {
	e.hit = false

	d, err := buildDOT(g, p)
	if err != nil {
		return err
	}
	key := cache.Key("layout", d.graph.String(), p)

	if data, ok, err := e.Cache.Get(ctx, key); err == nil && ok {
		var geo geometry
		if json.Unmarshal(data, &geo) == nil && geo.apply(g) {
			e.hit = true
			return nil
		}
	}

	if err := e.Engine.Layout(ctx, g, p); err != nil {
		return err
	}

	if data, err := json.Marshal(captureGeometry(g)); err == nil {
		_ = e.Cache.Set(ctx, key, data, e.TTL)
	}
	return nil
}

// Hit reports whether the last Layout call was served from the cache.
func (e *Cached) Hit() bool { return e.hit }

func captureGeometry(g *topology.Graph) geometry {
	nodes, links := g.Elements(), g.AllLinks()
	geo := geometry{
		Positions: make([]topology.Point, len(nodes)),
		Vertices:  make([][]topology.Point, len(links)),
	}
	for i, n := range nodes {
		geo.Positions[i] = n.Position
	}
	for i, l := range links {
		geo.Vertices[i] = l.Vertices
	}
	return geo
}

// apply copies cached geometry into g. It reports false, leaving g
// untouched, when the entry does not match the graph's shape.
func (geo geometry) apply(g *topology.Graph) bool {
	nodes, links := g.Elements(), g.AllLinks()
	if len(geo.Positions) != len(nodes) || len(geo.Vertices) != len(links) {
		return false
	}
	for i, n := range nodes {
		n.Position = geo.Positions[i]
	}
	for i, l := range links {
		l.Vertices = geo.Vertices[i]
	}
	return true
}
