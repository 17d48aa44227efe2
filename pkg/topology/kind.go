package topology

// Kind distinguishes the node variants of a topology. Every node carries
// exactly one Kind, so the classifier predicates on [Node] are mutually
// exclusive and jointly exhaustive.
type Kind int

const (
	// KindService is a pure compute node.
	KindService Kind = iota + 1
	// KindDatabase is a persistent-storage node.
	KindDatabase
	// KindCommunicationPattern is a messaging node (broker, queue, ...).
	// Its concrete flavor is stored in [Node.Subtype].
	KindCommunicationPattern
	// KindExternalUser marks the origin of external traffic. External users
	// are hidden from the business view and exported as edge groups.
	KindExternalUser
	// KindSquad is a grouping box used for visual clustering only.
	KindSquad
)

var kindNames = map[Kind]string{
	KindService:              "service",
	KindDatabase:             "database",
	KindCommunicationPattern: "communicationpattern",
	KindExternalUser:         "externaluser",
	KindSquad:                "squad",
}

// String returns the lowercase name of the kind, or "unknown".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// LinkKind distinguishes the link variants of a topology.
type LinkKind int

const (
	// LinkRunTime is a request-time call between two nodes.
	LinkRunTime LinkKind = iota + 1
	// LinkDeploymentTime is a build or deploy-time dependency, e.g. sidecar injection.
	LinkDeploymentTime
)

// String returns "runtime", "deploymenttime" or "unknown".
func (k LinkKind) String() string {
	switch k {
	case LinkRunTime:
		return "runtime"
	case LinkDeploymentTime:
		return "deploymenttime"
	default:
		return "unknown"
	}
}

// IsService reports whether the node is a service.
func (n *Node) IsService() bool { return n.Kind == KindService }

// IsDatabase reports whether the node is a database.
func (n *Node) IsDatabase() bool { return n.Kind == KindDatabase }

// IsCommunicationPattern reports whether the node is a communication pattern.
func (n *Node) IsCommunicationPattern() bool { return n.Kind == KindCommunicationPattern }

// IsExternalUser reports whether the node is an external user.
func (n *Node) IsExternalUser() bool { return n.Kind == KindExternalUser }

// IsSquadGroup reports whether the node is a squad grouping box.
func (n *Node) IsSquadGroup() bool { return n.Kind == KindSquad }

// IsRunTime reports whether the link is a runtime interaction.
func (l *Link) IsRunTime() bool { return l.Kind == LinkRunTime }

// IsDeploymentTime reports whether the link is a deployment-time interaction.
func (l *Link) IsDeploymentTime() bool { return l.Kind == LinkDeploymentTime }
