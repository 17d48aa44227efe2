package topology

import "github.com/google/uuid"

// ID identifies a node or link inside a graph. IDs are generated by the graph
// and carry no meaning beyond identity; names are the external-facing labels.
type ID string

func newID() ID { return ID(uuid.NewString()) }

// Point is a 2D coordinate in diagram space (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the width and height of a node's box.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// defaultSizes mirror the box sizes the diagram editor uses per shape.
var defaultSizes = map[Kind]Size{
	KindService:              {Width: 100, Height: 60},
	KindDatabase:             {Width: 80, Height: 80},
	KindCommunicationPattern: {Width: 90, Height: 70},
	KindExternalUser:         {Width: 60, Height: 60},
	KindSquad:                {Width: 200, Height: 150},
}

// Node is a vertex of the topology.
//
// Nodes are created only through the graph's Add* methods; the zero value is
// not attached to any graph. Position and Size are layout geometry and are
// updated in place by the layout package.
type Node struct {
	ID   ID
	Name string
	Kind Kind

	// Subtype is the communication-pattern flavor (e.g. "message-broker").
	// Empty for every other kind.
	Subtype string

	// GroupName names the edge group an external user exports as.
	// Empty for every other kind.
	GroupName string

	Position Point // Top-left corner
	Size     Size
}

// Link is a directed edge between two nodes of the same graph.
type Link struct {
	ID     ID
	Kind   LinkKind
	Source ID
	Target ID

	// Vertices are intermediate routing points set by the layout engine.
	Vertices []Point
}
