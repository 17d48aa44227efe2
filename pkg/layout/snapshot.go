package layout

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/microtosca/pkg/topology"
)

// Snapshot is the laid-out geometry of a topology, suitable for drawing.
type Snapshot struct {
	RankDir RankDir        `json:"rankdir"`
	Nodes   []SnapshotNode `json:"nodes"`
	Links   []SnapshotLink `json:"links"`
}

// SnapshotNode is a node's box in diagram coordinates.
type SnapshotNode struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SnapshotLink is a link's route between two named nodes.
type SnapshotLink struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Type     string           `json:"type"`
	Vertices []topology.Point `json:"vertices"`
}

// TakeSnapshot captures the current geometry of every element in g.
func TakeSnapshot(g *topology.Graph, dir RankDir) Snapshot {
	s := Snapshot{
		RankDir: dir,
		Nodes:   make([]SnapshotNode, 0, g.NodeCount()),
		Links:   make([]SnapshotLink, 0, g.LinkCount()),
	}
	for _, n := range g.Elements() {
		s.Nodes = append(s.Nodes, SnapshotNode{
			Name:   n.Name,
			Type:   n.Kind.String(),
			X:      n.Position.X,
			Y:      n.Position.Y,
			Width:  n.Size.Width,
			Height: n.Size.Height,
		})
	}
	for _, l := range g.AllLinks() {
		src, dst := g.Endpoints(l)
		vertices := l.Vertices
		if vertices == nil {
			vertices = []topology.Point{}
		}
		s.Links = append(s.Links, SnapshotLink{
			Source:   src.Name,
			Target:   dst.Name,
			Type:     l.Kind.String(),
			Vertices: vertices,
		})
	}
	return s
}

// WriteSnapshot writes the geometry of g to w as indented JSON.
func WriteSnapshot(g *topology.Graph, dir RankDir, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TakeSnapshot(g, dir))
}
