// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

type closureOp struct {
	input    *Graph
	numGArcs int
}

func (o *closureOp) Inputs() []*Graph { return []*Graph{o.input} }

// Backward: arcs 0..numGArcs-1 of the output correspond positionally
// to the input's arcs; the epsilon arcs appended by Closure carry no
// gradient.
func (o *closureOp) Backward(deltas *Graph) error {
	weights := deltas.arcWeights()
	return o.input.AddGrad(weights[:o.numGArcs])
}

// Closure computes the Kleene star g* of g: a fresh node that is both
// start and accept, followed by a shifted copy of g's nodes and arcs,
// with epsilon arcs from the new start to every former start and from
// every former accept back to every former start.
func Closure(g *Graph) *Graph {
	out := New()
	out.autograd = &closureOp{input: g, numGArcs: len(g.arcs)}

	out.AddNode(true, true) // node 0
	for n := range g.nodes {
		out.AddNode(false, g.nodes[n].accept)
	}
	for a := range g.arcs {
		src := g.arcs[a]
		out.MustAddArc(src.up+1, src.down+1, src.ilabel, src.olabel, src.weight)
	}
	for _, s := range g.starts {
		out.MustAddArc(0, s+1, EPSILON, EPSILON, 0)
		for _, acc := range g.accepts {
			out.MustAddArc(acc+1, s+1, EPSILON, EPSILON, 0)
		}
	}
	return out
}
