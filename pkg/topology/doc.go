// Package topology provides the in-memory model of a microservice
// architecture diagram.
//
// # Overview
//
// A [Graph] holds typed nodes and typed directed links. Nodes are one of five
// kinds, identified by the [Kind] discriminant:
//
//   - [KindService]: a compute node
//   - [KindDatabase]: a persistent-storage node
//   - [KindCommunicationPattern]: a messaging node with a free-form [Node.Subtype]
//   - [KindExternalUser]: the origin of external traffic
//   - [KindSquad]: a grouping box used for visual clustering
//
// Links are either runtime interactions ([LinkRunTime]) or deployment-time
// interactions ([LinkDeploymentTime]).
//
// # Basic Usage
//
// Nodes and links are only created through the graph:
//
//	g := topology.New("sock-shop")
//	orders := g.AddService("orders")
//	db := g.AddDatabase("orders-db")
//	g.AddRunTimeInteraction(orders, db)
//
// # Identity
//
// Every node and link gets a generated [ID]; links reference their endpoints
// by ID. Names are labels: the graph does not require them to be unique, but
// lookups by name return the first-inserted match and the serialization
// format in package io rejects duplicates.
//
// # Business View
//
// External users are not part of the architecture's interaction semantics.
// [Graph.Business] projects the graph onto its business nodes and links, and
// [Graph.Nodes], [Graph.Links], [Graph.Services] and friends are all derived
// from that single projection. Use [Graph.Elements] and [Graph.AllLinks] for
// the raw, unfiltered contents.
//
// # Removal
//
// [Graph.RemoveNode] cascades to every incident link, so no link can outlive
// one of its endpoints.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package topology
