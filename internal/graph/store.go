// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "fmt"

// Graph is a weighted finite-state acceptor/transducer: an arena of
// Nodes and Arcs plus, for graphs built by an operation, an autograd
// record describing how to propagate gradient back to its inputs.
//
// A Graph exclusively owns its node and arc arenas. Nodes and arcs are
// append-only: once a Graph has been used as the input to an
// operation, its structure must not be mutated further.
type Graph struct {
	nodes []node
	arcs  []arc

	starts  []NodeId
	accepts []NodeId

	autograd autogradOp // nil for leaf graphs created directly by the caller
	gradBuf  []float32  // lazily allocated on first AddGrad
	calcGrad bool
}

// New creates an empty leaf Graph with gradient tracking enabled.
func New() *Graph {
	return &Graph{calcGrad: true}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumArcs returns the number of arcs in the graph.
func (g *Graph) NumArcs() int { return len(g.arcs) }

// AddNode appends a new node, returning its id. If start or accept is
// true the node is also appended to the respective ordered list.
func (g *Graph) AddNode(start, accept bool) NodeId {
	id := NodeId(len(g.nodes))
	g.nodes = append(g.nodes, node{start: start, accept: accept})
	if start {
		g.starts = append(g.starts, id)
	}
	if accept {
		g.accepts = append(g.accepts, id)
	}
	return id
}

// AddArc appends a new arc from up to down carrying the given labels
// and weight, returning its id. It fails with ErrInvalidGraph if
// either endpoint is not a valid node in this graph.
func (g *Graph) AddArc(up, down NodeId, ilabel, olabel int, weight float32) (ArcId, error) {
	if !g.validNode(up) || !g.validNode(down) {
		return 0, fmt.Errorf("%w: AddArc endpoints (%d, %d) out of range for %d nodes",
			ErrInvalidGraph, up, down, len(g.nodes))
	}
	id := ArcId(len(g.arcs))
	g.arcs = append(g.arcs, arc{up: up, down: down, ilabel: ilabel, olabel: olabel, weight: weight})
	g.nodes[up].out = append(g.nodes[up].out, id)
	g.nodes[down].in = append(g.nodes[down].in, id)
	return id, nil
}

// MustAddArc is AddArc for callers that have already validated their
// endpoints (structural operations building a fresh graph node by
// node); it panics on failure, matching the invariant that internal
// callers never pass an out-of-range endpoint.
func (g *Graph) MustAddArc(up, down NodeId, ilabel, olabel int, weight float32) ArcId {
	id, err := g.AddArc(up, down, ilabel, olabel, weight)
	if err != nil {
		panic(err)
	}
	return id
}

// MakeStart marks node n as a start state. Idempotent.
func (g *Graph) MakeStart(n NodeId) {
	if g.nodes[n].start {
		return
	}
	g.nodes[n].start = true
	g.starts = append(g.starts, n)
}

// MakeAccept marks node n as an accept state. Idempotent.
func (g *Graph) MakeAccept(n NodeId) {
	if g.nodes[n].accept {
		return
	}
	g.nodes[n].accept = true
	g.accepts = append(g.accepts, n)
}

// Start reports whether node n is a start state.
func (g *Graph) Start(n NodeId) bool { return g.nodes[n].start }

// Accept reports whether node n is an accept state.
func (g *Graph) Accept(n NodeId) bool { return g.nodes[n].accept }

// UpNode returns the source node of arc a.
func (g *Graph) UpNode(a ArcId) NodeId { return g.arcs[a].up }

// DownNode returns the destination node of arc a.
func (g *Graph) DownNode(a ArcId) NodeId { return g.arcs[a].down }

// Ilabel returns the input label of arc a.
func (g *Graph) Ilabel(a ArcId) int { return g.arcs[a].ilabel }

// Olabel returns the output label of arc a.
func (g *Graph) Olabel(a ArcId) int { return g.arcs[a].olabel }

// Weight returns the weight of arc a.
func (g *Graph) Weight(a ArcId) float32 { return g.arcs[a].weight }

// In returns the ids of arcs whose destination is node n, in
// insertion order.
func (g *Graph) In(n NodeId) []ArcId { return g.nodes[n].in }

// Out returns the ids of arcs whose source is node n, in insertion
// order.
func (g *Graph) Out(n NodeId) []ArcId { return g.nodes[n].out }

// NumIn returns len(In(n)).
func (g *Graph) NumIn(n NodeId) int { return len(g.nodes[n].in) }

// NumOut returns len(Out(n)).
func (g *Graph) NumOut(n NodeId) int { return len(g.nodes[n].out) }

// Starts returns the ordered list of start node ids.
func (g *Graph) Starts() []NodeId { return g.starts }

// Accepts returns the ordered list of accept node ids.
func (g *Graph) Accepts() []NodeId { return g.accepts }

// Item returns the weight of a Graph's sole arc. It fails with
// ErrInvalidGraph if the graph does not have exactly one arc.
func (g *Graph) Item() (float32, error) {
	if len(g.arcs) != 1 {
		return 0, fmt.Errorf("%w: Item() requires exactly one arc, graph has %d", ErrInvalidGraph, len(g.arcs))
	}
	return g.arcs[0].weight, nil
}

func (g *Graph) validNode(n NodeId) bool {
	return n >= 0 && int(n) < len(g.nodes)
}
