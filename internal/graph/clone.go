// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

type cloneOp struct {
	input *Graph
}

func (o *cloneOp) Inputs() []*Graph { return []*Graph{o.input} }

// Backward is the identity: deltas flow straight into the input's
// gradient buffer, arc for arc, since Clone preserves arc order.
func (o *cloneOp) Backward(deltas *Graph) error {
	return o.input.AddGradFrom(deltas)
}

// Clone produces a structural copy of g preserving node order and arc
// order. Labels are rewritten per projection: ProjectionNone keeps
// (ilabel, olabel), ProjectionInput emits (ilabel, ilabel),
// ProjectionOutput emits (olabel, olabel).
func Clone(g *Graph, projection Projection) *Graph {
	out := New()
	out.autograd = &cloneOp{input: g}
	for n := range g.nodes {
		out.AddNode(g.nodes[n].start, g.nodes[n].accept)
	}
	for a := range g.arcs {
		src := g.arcs[a]
		ilabel, olabel := src.ilabel, src.olabel
		switch projection {
		case ProjectionInput:
			olabel = ilabel
		case ProjectionOutput:
			ilabel = olabel
		}
		out.MustAddArc(src.up, src.down, ilabel, olabel, src.weight)
	}
	return out
}

// ProjectInput is Clone(g, ProjectionInput).
func ProjectInput(g *Graph) *Graph { return Clone(g, ProjectionInput) }

// ProjectOutput is Clone(g, ProjectionOutput).
func ProjectOutput(g *Graph) *Graph { return Clone(g, ProjectionOutput) }
