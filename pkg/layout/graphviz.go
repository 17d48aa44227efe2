package layout

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/microtosca/pkg/errors"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// Graphviz is an [Engine] backed by the Graphviz "dot" layered layout.
//
// Nodes are laid out with their fixed sizes; ranks follow the longest-path
// rule. Positions are written as top-left corners in a y-down coordinate
// system offset by the margins in [Params].
//
// Graphviz has no separation between parallel edges, so Params.EdgeSep is
// not used.
type Graphviz struct{}

// Layout runs Graphviz over g and writes node positions and, when
// p.SetVertices is true, link vertices back into g.
func (Graphviz) Layout(ctx context.Context, g *topology.Graph, p Params) error {
	if g.NodeCount() == 0 {
		return nil
	}

	d, err := buildDOT(g, p)
	if err != nil {
		return err
	}

	out, err := renderDOT(ctx, d.graph.String())
	if err != nil {
		return err
	}

	return d.apply(out, p)
}

// renderDOT runs the dot engine and returns its annotated DOT output.
func renderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "run dot layout")
	}
	return buf.Bytes(), nil
}

// apply reads positions from the laid-out DOT and copies them into the
// topology elements the graph was built from.
func (d *dotGraph) apply(laidOut []byte, p Params) error {
	ast, err := gographviz.ParseString(string(laidOut))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "parse layout output")
	}
	res := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, res); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "analyse layout output")
	}

	bb, err := parseBox(res.Attrs["bb"])
	if err != nil {
		return err
	}
	tr := transform{minX: bb[0], maxY: bb[3], marginX: p.MarginX, marginY: p.MarginY}

	for _, gn := range res.Nodes.Nodes {
		n, ok := d.nodes[gn.Name]
		if !ok {
			continue
		}
		c, err := parsePoint(gn.Attrs["pos"])
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "node %q position", n.Name)
		}
		n.Position = tr.topLeft(c, n.Size)
	}

	if !p.SetVertices {
		return nil
	}
	for _, ge := range res.Edges.Edges {
		l, ok := d.links[unquote(ge.Attrs["id"])]
		if !ok {
			continue
		}
		pts, err := parseSpline(ge.Attrs["pos"])
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "link %s vertices", l.ID)
		}
		l.Vertices = l.Vertices[:0]
		for _, pt := range interior(pts) {
			l.Vertices = append(l.Vertices, tr.point(pt))
		}
	}
	return nil
}

// transform maps Graphviz coordinates (points, y up, node centers) to
// diagram coordinates (pixels, y down, top-left corners).
type transform struct {
	minX, maxY       float64
	marginX, marginY float64
}

func (t transform) point(p topology.Point) topology.Point {
	return topology.Point{
		X: p.X - t.minX + t.marginX,
		Y: t.maxY - p.Y + t.marginY,
	}
}

func (t transform) topLeft(center topology.Point, s topology.Size) topology.Point {
	c := t.point(center)
	return topology.Point{X: c.X - s.Width/2, Y: c.Y - s.Height/2}
}

// interior drops the first and last spline points, which sit on the node
// boundaries.
func interior(pts []topology.Point) []topology.Point {
	if len(pts) <= 2 {
		return nil
	}
	return pts[1 : len(pts)-1]
}

// unquote strips DOT string quoting and line continuations from an
// attribute value.
func unquote(v string) string {
	v = strings.ReplaceAll(v, "\\\n", "")
	if s, err := strconv.Unquote(v); err == nil {
		return s
	}
	return strings.Trim(v, `"`)
}

func parseBox(v string) ([4]float64, error) {
	var box [4]float64
	parts := strings.Split(unquote(v), ",")
	if len(parts) != 4 {
		return box, errors.New(errors.ErrCodeInternal, "malformed bounding box %q", v)
	}
	for i, s := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return box, errors.Wrap(errors.ErrCodeInternal, err, "malformed bounding box %q", v)
		}
		box[i] = f
	}
	return box, nil
}

func parsePoint(v string) (topology.Point, error) {
	x, y, ok := strings.Cut(strings.TrimSpace(unquote(v)), ",")
	if !ok {
		return topology.Point{}, errors.New(errors.ErrCodeInternal, "malformed point %q", v)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return topology.Point{}, errors.Wrap(errors.ErrCodeInternal, err, "malformed point %q", v)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(y, "!")), 64)
	if err != nil {
		return topology.Point{}, errors.Wrap(errors.ErrCodeInternal, err, "malformed point %q", v)
	}
	return topology.Point{X: fx, Y: fy}, nil
}

// parseSpline parses an edge "pos" attribute. Arrow endpoints ("s,x,y" and
// "e,x,y") are skipped; only the spline control points are returned.
func parseSpline(v string) ([]topology.Point, error) {
	var pts []topology.Point
	for _, tok := range strings.Fields(unquote(v)) {
		if strings.HasPrefix(tok, "s,") || strings.HasPrefix(tok, "e,") {
			continue
		}
		pt, err := parsePoint(tok)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}
