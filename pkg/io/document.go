package io

import "github.com/matzehuels/microtosca/pkg/topology"

// Wire type names used in the "type" field of nodes, links and groups.
const (
	TypeService              = "service"
	TypeDatabase             = "database"
	TypeCommunicationPattern = "communicationpattern"

	TypeRunTime        = "runtime"
	TypeDeploymentTime = "deploymenttime"

	TypeEdgeGroup = "edgegroup"
)

// Document is the JSON interchange format of a topology.
//
//	{
//	  "name": "sock-shop",
//	  "nodes":  [{"name": "orders", "type": "service"}],
//	  "links":  [{"source": "orders", "target": "orders-db", "type": "runtime"}],
//	  "groups": [{"name": "edge", "type": "edgegroup", "members": ["orders"]}]
//	}
type Document struct {
	Name   string  `json:"name"`
	Nodes  []Node  `json:"nodes"`
	Links  []Link  `json:"links"`
	Groups []Group `json:"groups"`
}

// Node is a business node, referenced by name from links and groups.
type Node struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"` // communication patterns only
}

// Link is a directed interaction between two named nodes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Group is an edge group: the nodes an external user talks to directly.
type Group struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Members []string `json:"members"`
}

var kindToType = map[topology.Kind]string{
	topology.KindService:              TypeService,
	topology.KindDatabase:             TypeDatabase,
	topology.KindCommunicationPattern: TypeCommunicationPattern,
}

var linkKindToType = map[topology.LinkKind]string{
	topology.LinkRunTime:        TypeRunTime,
	topology.LinkDeploymentTime: TypeDeploymentTime,
}
