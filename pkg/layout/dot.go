package layout

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"

	"github.com/matzehuels/microtosca/pkg/errors"
	"github.com/matzehuels/microtosca/pkg/topology"
)

// pointsPerInch converts between diagram pixels and Graphviz inches.
// Graphviz reports positions in points, so pixels and points coincide.
const pointsPerInch = 72.0

const dotGraphName = "topology"

// dotGraph is a Graphviz graph built from a topology, along with the
// mapping from DOT identifiers back to topology elements.
type dotGraph struct {
	graph *gographviz.Graph
	nodes map[string]*topology.Node
	links map[string]*topology.Link
}

// ToDOT returns a Graphviz DOT description of every element in g, ranked
// top-down along dir with the same constraints [Graphviz] uses for layout.
func ToDOT(g *topology.Graph, dir RankDir) (string, error) {
	if !dir.Valid() {
		return "", errors.New(errors.ErrCodeInvalidRankDir, "unknown rank direction %q", dir)
	}
	d, err := buildDOT(g, DefaultParams(dir))
	if err != nil {
		return "", err
	}
	return d.graph.String(), nil
}

func buildDOT(g *topology.Graph, p Params) (*dotGraph, error) {
	out := &dotGraph{
		graph: gographviz.NewGraph(),
		nodes: make(map[string]*topology.Node),
		links: make(map[string]*topology.Link),
	}
	gv := out.graph

	if err := gv.SetName(dotGraphName); err != nil {
		return nil, wrapDOT(err)
	}
	if err := gv.SetDir(true); err != nil {
		return nil, wrapDOT(err)
	}

	graphAttrs := map[string]string{
		"rankdir": string(p.RankDir),
		"nodesep": inches(p.NodeSep),
		"ranksep": inches(p.RankSep),
	}
	for _, k := range slices.Sorted(maps.Keys(graphAttrs)) {
		if err := gv.AddAttr(dotGraphName, k, graphAttrs[k]); err != nil {
			return nil, wrapDOT(err)
		}
	}

	ranks := longestPathRanks(g)
	maxRank := 0
	for _, r := range ranks {
		maxRank = max(maxRank, r)
	}
	for r := 0; r <= maxRank; r++ {
		if err := gv.AddSubGraph(dotGraphName, rankSubgraph(r), map[string]string{"rank": "same"}); err != nil {
			return nil, wrapDOT(err)
		}
	}

	for i, n := range g.Elements() {
		name := "n" + strconv.Itoa(i)
		out.nodes[name] = n
		attrs := map[string]string{
			"label":     dotQuote(n.Name),
			"shape":     "box",
			"fixedsize": "true",
			"width":     inches(n.Size.Width),
			"height":    inches(n.Size.Height),
		}
		if err := gv.AddNode(rankSubgraph(ranks[n.ID]), name, attrs); err != nil {
			return nil, wrapDOT(err)
		}
	}

	dotName := make(map[topology.ID]string, len(out.nodes))
	for name, n := range out.nodes {
		dotName[n.ID] = name
	}
	for i, l := range g.AllLinks() {
		id := "e" + strconv.Itoa(i)
		out.links[id] = l
		attrs := map[string]string{"id": id}
		if l.IsDeploymentTime() {
			attrs["style"] = "dashed"
		}
		if err := gv.AddEdge(dotName[l.Source], dotName[l.Target], true, attrs); err != nil {
			return nil, wrapDOT(err)
		}
	}

	return out, nil
}

// dotQuote quotes s as a DOT string. DOT only escapes quotes and
// backslashes, so other characters are written as they are.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func rankSubgraph(r int) string { return "rank" + strconv.Itoa(r) }

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 4, 64)
}

func wrapDOT(err error) error {
	return errors.Wrap(errors.ErrCodeInternal, err, "build DOT graph")
}
