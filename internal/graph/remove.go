// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

type removeOp struct {
	input *Graph
}

func (o *removeOp) Inputs() []*Graph { return []*Graph{o.input} }

// Backward is a deliberate no-op: Remove drops arc weights entirely
// and does not preserve gradient with respect to removed (or kept)
// arcs. A weighted variant is future work (see spec's Open Questions).
func (o *removeOp) Backward(deltas *Graph) error { return nil }

// RemoveEpsilon is Remove(g, EPSILON, EPSILON).
func RemoveEpsilon(g *Graph) *Graph {
	return Remove(g, EPSILON, EPSILON)
}

// Remove eliminates arcs whose (ilabel, olabel) match the given pair,
// producing an unweighted copy (every kept arc has weight 0) that
// accepts the same strings under the assumed DAG structure.
//
// A node is "kept" iff it is a start or has at least one incoming arc
// that does not match (ilabel, olabel); kept nodes get fresh ids in
// original order. From each kept node, a BFS follows only matching
// arcs: any node reached that is accept in g marks the kept ancestor
// accept, and every non-matching outgoing arc from a reached node
// becomes a new arc from the kept ancestor to the (kept) destination.
func Remove(g *Graph, ilabel, olabel int) *Graph {
	matches := func(a ArcId) bool {
		return g.arcs[a].ilabel == ilabel && g.arcs[a].olabel == olabel
	}
	allMatch := func(arcs []ArcId) bool {
		for _, a := range arcs {
			if !matches(a) {
				return false
			}
		}
		return true
	}

	out := New()
	out.autograd = &removeOp{input: g}

	newID := make([]NodeId, len(g.nodes))
	for n := range newID {
		newID[n] = -1
	}
	for n := range g.nodes {
		if g.nodes[n].start || !allMatch(g.nodes[n].in) {
			newID[n] = out.AddNode(g.nodes[n].start, false)
		}
	}

	visited := make(map[NodeId]bool)
	var queue []NodeId
	for n := range g.nodes {
		curr := newID[n]
		if curr < 0 {
			continue
		}
		for k := range visited {
			delete(visited, k)
		}
		queue = queue[:0]
		queue = append(queue, NodeId(n))
		visited[NodeId(n)] = true

		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if g.nodes[next].accept {
				out.MakeAccept(curr)
			}
			for _, a := range g.nodes[next].out {
				dn := g.arcs[a].down
				if matches(a) {
					if !visited[dn] {
						visited[dn] = true
						queue = append(queue, dn)
					}
				} else {
					out.MustAddArc(curr, newID[dn], g.arcs[a].ilabel, g.arcs[a].olabel, 0)
				}
			}
		}
	}
	return out
}
