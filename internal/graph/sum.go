// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

type sumOp struct {
	inputs  []*Graph
	numArcs []int // arc count of each input, in order
}

func (o *sumOp) Inputs() []*Graph { return o.inputs }

// Backward partitions the output's arcs into contiguous ranges
// aligned with each input's arc count and deposits each range into
// the corresponding input's gradient buffer.
func (o *sumOp) Backward(deltas *Graph) error {
	weights := deltas.arcWeights()
	offset := 0
	for i, in := range o.inputs {
		n := o.numArcs[i]
		if err := in.AddGrad(weights[offset : offset+n]); err != nil {
			return err
		}
		offset += n
	}
	return nil
}

// Sum concatenates the node and arc arenas of graphs in list order,
// shifting arc endpoints by cumulative node offsets and preserving
// start/accept flags.
func Sum(graphs []*Graph) *Graph {
	out := New()
	numArcs := make([]int, len(graphs))
	for i, g := range graphs {
		numArcs[i] = len(g.arcs)
	}
	out.autograd = &sumOp{inputs: append([]*Graph(nil), graphs...), numArcs: numArcs}

	nodeOffset := NodeId(0)
	for _, g := range graphs {
		for n := range g.nodes {
			out.AddNode(g.nodes[n].start, g.nodes[n].accept)
		}
		for a := range g.arcs {
			src := g.arcs[a]
			out.MustAddArc(nodeOffset+src.up, nodeOffset+src.down, src.ilabel, src.olabel, src.weight)
		}
		nodeOffset += NodeId(len(g.nodes))
	}
	return out
}
