// Package layout computes diagram geometry for a topology.
//
// # Overview
//
// Layout is delegated to an [Engine]. [Apply] invokes the engine with a fixed
// parameter bundle ([DefaultParams]): 50 px node, edge and rank separation,
// 100 px margins, the longest-path ranker, and link vertices enabled. Only
// the rank direction varies between invocations.
//
//	g := topology.New("shop")
//	// ... add nodes and links ...
//	if err := layout.Apply(ctx, g, "LR", layout.Graphviz{}); err != nil {
//	    return err
//	}
//
// Apply matches the direction exactly. Anything other than "TB", "BT", "LR"
// or "RL" is silently ignored and leaves the graph untouched; callers that
// take user input should validate it with [ParseRankDir] first.
//
// # Graphviz Engine
//
// [Graphviz] builds a DOT graph in which every node is a fixed-size box and
// nodes of equal longest-path rank share a rank=same subgraph. The graph is
// laid out by the embedded Graphviz "dot" engine and positions are read
// back from its annotated output. [ToDOT] returns the same DOT text for
// inspection or external rendering.
//
// # Snapshots
//
// [TakeSnapshot] and [WriteSnapshot] capture the resulting geometry keyed by
// node name, which is what a renderer needs to draw the diagram.
package layout
