package layout

import "github.com/matzehuels/microtosca/pkg/topology"

// longestPathRanks assigns every node a rank using the longest-path rule:
// nodes without predecessors are at rank 0 and every other node sits one
// rank below its deepest predecessor.
//
// Topologies routinely contain cycles (a service calling back into its
// caller), so back edges found by a depth-first search are ignored before
// ranking. Self loops never contribute.
//
// Time complexity is O(V + E).
func longestPathRanks(g *topology.Graph) map[topology.ID]int {
	nodes := g.Elements()
	children := make(map[topology.ID][]topology.ID, len(nodes))
	for _, l := range g.AllLinks() {
		if l.Source != l.Target {
			children[l.Source] = append(children[l.Source], l.Target)
		}
	}

	back := backEdges(nodes, children)

	inDegree := make(map[topology.ID]int, len(nodes))
	for src, targets := range children {
		for _, dst := range targets {
			if !back[[2]topology.ID{src, dst}] {
				inDegree[dst]++
			}
		}
	}

	ranks := make(map[topology.ID]int, len(nodes))
	queue := make([]topology.ID, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if back[[2]topology.ID{curr, child}] {
				continue
			}
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}

// backEdges returns the edges that close a cycle during a depth-first search
// started from the nodes in insertion order.
func backEdges(nodes []*topology.Node, children map[topology.ID][]topology.ID) map[[2]topology.ID]bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[topology.ID]int, len(nodes))
	back := make(map[[2]topology.ID]bool)

	var dfs func(id topology.ID)
	dfs = func(id topology.ID) {
		color[id] = gray
		for _, child := range children[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back[[2]topology.ID{id, child}] = true
			}
		}
		color[id] = black
	}

	for _, n := range nodes {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return back
}
