// Package pkg provides the core libraries for microtosca, a typed model of
// microservice architectures.
//
// # Overview
//
// A topology is a directed graph of services, databases and communication
// patterns, plus the external users that call into it and squads that group
// nodes on a diagram. The pkg directory is organized as:
//
//  1. [topology] - The graph model and its business views
//  2. [io] - JSON import and export with edge groups
//  3. [layout] - Layout invocation, the Graphviz engine and snapshots
//  4. [cache] - Local storage for computed layouts
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	graph.json
//	     ↓
//	[io] package (import, validate names and references)
//	     ↓
//	[topology] package (in-memory graph)
//	     ↓
//	[layout] package (positions and link routes)
//	     ↓
//	layout.json / DOT
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/microtosca/pkg/io"
//	    "github.com/matzehuels/microtosca/pkg/layout"
//	    "github.com/matzehuels/microtosca/pkg/topology"
//	)
//
//	g := topology.New("")
//	if err := io.ImportJSON(g, "graph.json", io.Options{}); err != nil {
//	    return err
//	}
//	if err := layout.Apply(ctx, g, "LR", layout.Graphviz{}); err != nil {
//	    return err
//	}
//	return layout.WriteSnapshot(g, layout.LeftToRight, os.Stdout)
//
// [topology]: github.com/matzehuels/microtosca/pkg/topology
// [io]: github.com/matzehuels/microtosca/pkg/io
// [layout]: github.com/matzehuels/microtosca/pkg/layout
// [cache]: github.com/matzehuels/microtosca/pkg/cache
// [errors]: github.com/matzehuels/microtosca/pkg/errors
// [observability]: github.com/matzehuels/microtosca/pkg/observability
// [buildinfo]: github.com/matzehuels/microtosca/pkg/buildinfo
package pkg
