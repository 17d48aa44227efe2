package topology

import (
	"slices"

	"github.com/matzehuels/microtosca/pkg/errors"
)

// Graph is a typed microservice topology: nodes of five kinds connected by
// runtime and deployment-time links.
//
// The graph exclusively owns its nodes and links. Iteration order is
// insertion order of the elements currently present, which keeps exports
// reproducible for a given graph state.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	name  string
	nodes []*Node
	links []*Link
	index map[ID]*Node
}

// New creates an empty graph with the given name.
func New(name string) *Graph {
	return &Graph{
		name:  name,
		index: make(map[ID]*Node),
	}
}

// Name returns the topology name.
func (g *Graph) Name() string { return g.name }

// SetName changes the topology name. Any string is accepted.
func (g *Graph) SetName(name string) { g.name = name }

// =============================================================================
// Typed accretion
// =============================================================================

// AddService adds a service node and returns it.
// Names are not checked for uniqueness; duplicate names break serialization
// round-trips and are rejected at export time instead.
func (g *Graph) AddService(name string) *Node {
	return g.addNode(name, KindService)
}

// AddDatabase adds a database node and returns it.
func (g *Graph) AddDatabase(name string) *Node {
	return g.addNode(name, KindDatabase)
}

// AddCommunicationPattern adds a communication-pattern node whose flavor is
// subtype (e.g. "message-broker", "message-router").
func (g *Graph) AddCommunicationPattern(name, subtype string) *Node {
	n := g.addNode(name, KindCommunicationPattern)
	n.Subtype = subtype
	return n
}

// AddExternalUser adds an external user. Its GroupName defaults to name.
func (g *Graph) AddExternalUser(name string) *Node {
	n := g.addNode(name, KindExternalUser)
	n.GroupName = name
	return n
}

// AddSquadGroup adds a squad grouping box.
func (g *Graph) AddSquadGroup(name string) *Node {
	return g.addNode(name, KindSquad)
}

func (g *Graph) addNode(name string, kind Kind) *Node {
	n := &Node{
		ID:   newID(),
		Name: name,
		Kind: kind,
		Size: defaultSizes[kind],
	}
	g.nodes = append(g.nodes, n)
	g.index[n.ID] = n
	return n
}

// AddRunTimeInteraction adds a runtime link from source to target.
// Both nodes must belong to g; otherwise an ErrCodeInvalidReference error is
// returned and nothing is added.
func (g *Graph) AddRunTimeInteraction(source, target *Node) (*Link, error) {
	return g.addLink(source, target, LinkRunTime)
}

// AddDeploymentTimeInteraction adds a deployment-time link from source to target.
// Both nodes must belong to g; otherwise an ErrCodeInvalidReference error is
// returned and nothing is added.
func (g *Graph) AddDeploymentTimeInteraction(source, target *Node) (*Link, error) {
	return g.addLink(source, target, LinkDeploymentTime)
}

func (g *Graph) addLink(source, target *Node, kind LinkKind) (*Link, error) {
	if !g.contains(source) {
		return nil, errors.New(errors.ErrCodeInvalidReference, "%s link source is not in graph %q", kind, g.name)
	}
	if !g.contains(target) {
		return nil, errors.New(errors.ErrCodeInvalidReference, "%s link target is not in graph %q", kind, g.name)
	}
	l := &Link{
		ID:     newID(),
		Kind:   kind,
		Source: source.ID,
		Target: target.ID,
	}
	g.links = append(g.links, l)
	return l, nil
}

// contains compares by pointer so that nodes of another graph with a
// colliding ID are still rejected.
func (g *Graph) contains(n *Node) bool {
	if n == nil {
		return false
	}
	return g.index[n.ID] == n
}

// =============================================================================
// Lookup
// =============================================================================

// Node returns the first-inserted node named name, of any kind.
// Returns an ErrCodeNotFound error if no node has that name.
func (g *Graph) Node(name string) (*Node, error) {
	if n := firstNamed(g.nodes, name); n != nil {
		return n, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "node %q not found", name)
}

// BusinessNode is like Node but only considers the business view, so external
// users are never returned.
func (g *Graph) BusinessNode(name string) (*Node, error) {
	if n := firstNamed(g.Business().Nodes, name); n != nil {
		return n, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "node %q not found", name)
}

func firstNamed(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// NodeByID returns the node with the given ID and true, or nil and false.
func (g *Graph) NodeByID(id ID) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Endpoints resolves the source and target nodes of a link.
// Both are non-nil for every link owned by g.
func (g *Graph) Endpoints(l *Link) (source, target *Node) {
	return g.index[l.Source], g.index[l.Target]
}

// =============================================================================
// Raw views
// =============================================================================

// Elements returns every node, including external users and squads, in
// insertion order. The slice is a copy; the nodes are shared.
func (g *Graph) Elements() []*Node { return slices.Clone(g.nodes) }

// AllLinks returns every link, including those leaving external users, in
// insertion order. The slice is a copy; the links are shared.
func (g *Graph) AllLinks() []*Link { return slices.Clone(g.links) }

// NodeCount returns the number of nodes of every kind.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links of every kind.
func (g *Graph) LinkCount() int { return len(g.links) }

// ExternalUsers returns all external-user nodes in insertion order.
func (g *Graph) ExternalUsers() []*Node { return filterKind(g.nodes, KindExternalUser) }

// SquadGroups returns all squad nodes in insertion order.
func (g *Graph) SquadGroups() []*Node { return filterKind(g.nodes, KindSquad) }

// OutboundNeighbors returns the distinct targets of n's outgoing links, in
// the order those links were added.
func (g *Graph) OutboundNeighbors(n *Node) []*Node {
	var out []*Node
	seen := make(map[ID]bool)
	for _, l := range g.links {
		if l.Source != n.ID || seen[l.Target] {
			continue
		}
		seen[l.Target] = true
		out = append(out, g.index[l.Target])
	}
	return out
}

// =============================================================================
// Removal
// =============================================================================

// RemoveNode removes the node found by [Graph.Node] together with every link
// that uses it as source or target. Returns an ErrCodeNotFound error if no
// node has that name.
func (g *Graph) RemoveNode(name string) error {
	n, err := g.Node(name)
	if err != nil {
		return err
	}
	g.links = slices.DeleteFunc(g.links, func(l *Link) bool {
		return l.Source == n.ID || l.Target == n.ID
	})
	g.nodes = slices.DeleteFunc(g.nodes, func(m *Node) bool { return m == n })
	delete(g.index, n.ID)
	return nil
}

// RemoveLink removes l from the graph. Returns an ErrCodeNotFound error if l
// is not owned by g.
func (g *Graph) RemoveLink(l *Link) error {
	i := slices.Index(g.links, l)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "link not found in graph %q", g.name)
	}
	g.links = slices.Delete(g.links, i, i+1)
	return nil
}

// Clear removes all nodes and links. The name is kept.
func (g *Graph) Clear() {
	g.nodes = nil
	g.links = nil
	g.index = make(map[ID]*Node)
}

// Replace moves the name, nodes and links of other into g, discarding g's
// previous contents. other must not be used afterwards.
func (g *Graph) Replace(other *Graph) {
	g.name = other.name
	g.nodes = other.nodes
	g.links = other.links
	g.index = other.index
	other.Clear()
}
