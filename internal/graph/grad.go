// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "fmt"

// CalcGrad reports whether this graph accumulates gradient. Leaf
// graphs default to true; a graph with CalcGrad false is still
// visited as a stop in backward traversal but silently ignores
// deposits.
func (g *Graph) CalcGrad() bool { return g.calcGrad }

// SetCalcGrad enables or disables gradient accumulation for this
// graph.
func (g *Graph) SetCalcGrad(v bool) { g.calcGrad = v }

// Grad returns the current gradient buffer, or nil if nothing has
// been deposited yet.
func (g *Graph) Grad() []float32 { return g.gradBuf }

// ZeroGrad clears the gradient buffer, releasing it entirely; the
// next AddGrad call reallocates zeros of the current arc count.
func (g *Graph) ZeroGrad() { g.gradBuf = nil }

// AddGrad element-wise adds grad into this graph's gradient buffer,
// allocating a zeroed buffer sized to NumArcs on first use. It is a
// no-op when CalcGrad is false. It fails with ErrInvalidGraph if
// len(grad) does not equal NumArcs.
func (g *Graph) AddGrad(grad []float32) error {
	if !g.calcGrad {
		return nil
	}
	if len(grad) != len(g.arcs) {
		return fmt.Errorf("%w: AddGrad got %d values for %d arcs", ErrInvalidGraph, len(grad), len(g.arcs))
	}
	if g.gradBuf == nil {
		g.gradBuf = make([]float32, len(g.arcs))
	}
	for i, v := range grad {
		g.gradBuf[i] += v
	}
	return nil
}

// AddGradFrom is AddGrad taking another Graph's arc weights directly
// as the gradient values, for backward closures that already have
// their deltas as a Graph.
func (g *Graph) AddGradFrom(deltas *Graph) error {
	return g.AddGrad(deltas.arcWeights())
}

// arcWeights returns a freshly allocated slice of this graph's arc
// weights, in arc order.
func (g *Graph) arcWeights() []float32 {
	w := make([]float32, len(g.arcs))
	for i := range g.arcs {
		w[i] = g.arcs[i].weight
	}
	return w
}
