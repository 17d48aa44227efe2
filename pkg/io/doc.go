// Package io provides JSON import and export for microservice topologies.
//
// # Overview
//
// This package converts a [topology.Graph] to and from a compact JSON
// document in which nodes are referenced by name:
//
//	{
//	  "name": "sock-shop",
//	  "nodes": [
//	    {"name": "orders", "type": "service"},
//	    {"name": "orders-db", "type": "database"},
//	    {"name": "rabbitmq", "type": "communicationpattern", "subtype": "message-broker"}
//	  ],
//	  "links": [
//	    {"source": "orders", "target": "orders-db", "type": "runtime"}
//	  ],
//	  "groups": [
//	    {"name": "edge", "type": "edgegroup", "members": ["orders"]}
//	  ]
//	}
//
// # Export
//
// [Export] walks the graph's business view. Services, databases and
// communication patterns become nodes; external users are never exported
// as nodes. Instead each external user is summarized as an edge group
// listing the nodes it calls directly. Squads are diagram-only and are not
// exported.
//
// Because names are the only identity in the document, [Export] rejects
// graphs where two exported nodes share a name.
//
// # Import
//
// [Import] replaces the graph's contents with the document. Nothing is
// modified until the whole document has been validated and built, so a
// failing import leaves the graph as it was. Unknown node and group types
// are skipped with a warning; every other problem is an error:
//
//   - ErrCodeMalformedDocument: missing "name", "nodes" or "links", bad JSON,
//     invalid names, or an unknown link type
//   - ErrCodeInvalidReference: a link endpoint or group member that names no
//     business node
//   - ErrCodeDuplicateName: two nodes with the same name
//
// Edge groups are turned back into external users, so exporting an imported
// document reproduces it exactly.
//
// # Files and Streams
//
// [WriteJSON] and [ReadJSON] work on any io.Writer / io.Reader;
// [ExportJSON] and [ImportJSON] are file-path conveniences.
//
// # Concurrency
//
// Export only reads the graph and may run concurrently with other readers.
// Import mutates the graph and must not run concurrently with any other use
// of it.
package io
