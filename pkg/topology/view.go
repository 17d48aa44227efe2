package topology

// View is the business projection of a graph: the nodes and links that carry
// interaction semantics. External users and the links they originate are
// excluded; squads are kept as nodes so structural queries see them, and are
// filtered out by the kind-specific accessors.
//
// Every filtered query on [Graph] derives from this one projection.
type View struct {
	Nodes []*Node
	Links []*Link
}

// Business builds the business view of g.
func (g *Graph) Business() View {
	var v View
	for _, n := range g.nodes {
		if !n.IsExternalUser() {
			v.Nodes = append(v.Nodes, n)
		}
	}
	for _, l := range g.links {
		if src := g.index[l.Source]; !src.IsExternalUser() {
			v.Links = append(v.Links, l)
		}
	}
	return v
}

// Nodes returns all nodes except external users, in insertion order.
func (g *Graph) Nodes() []*Node { return g.Business().Nodes }

// Links returns all links except those leaving an external user, in insertion order.
func (g *Graph) Links() []*Link { return g.Business().Links }

// Services returns the service nodes of the business view.
func (g *Graph) Services() []*Node { return filterKind(g.Nodes(), KindService) }

// Databases returns the database nodes of the business view.
func (g *Graph) Databases() []*Node { return filterKind(g.Nodes(), KindDatabase) }

// CommunicationPatterns returns the communication-pattern nodes of the business view.
func (g *Graph) CommunicationPatterns() []*Node {
	return filterKind(g.Nodes(), KindCommunicationPattern)
}

func filterKind(nodes []*Node, kind Kind) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
