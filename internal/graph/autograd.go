// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "fmt"

// autogradOp is the backward record attached to a Graph produced by
// an operation, capturing the Graphs it was built from and how to
// scatter gradient into them.
//
// Each operation (negate, add, compose, forward, ...) has its own
// concrete type implementing this interface instead of a captured
// closure, so that per-operation state (e.g. compose's arc
// provenance, forward's cached scores) is a plain struct field rather
// than a value trapped inside a lambda.
type autogradOp interface {
	// Inputs returns the Graphs this op was built from, in the order
	// its backward pass expects to receive per-input gradients.
	Inputs() []*Graph

	// Backward computes gradient with respect to Inputs from the
	// accumulated gradient on the op's output (deltas has exactly the
	// output's arc count) and deposits it via each input's AddGrad.
	Backward(deltas *Graph) error
}

// Backward runs reverse-mode autograd over the DAG rooted at output.
// If seed is nil, it defaults to a graph of all-ones with output's
// arc count. It fails with ErrShapeMismatch if seed's arc count
// differs from output's.
//
// Traversal order: a post-order DFS over the autograd DAG yields a
// valid forward topological order (every Graph appears after all
// Graphs it depends on); iterating that order in reverse guarantees
// every Graph's gradient buffer is fully accumulated from all of its
// consumers before its own backward closure runs.
func Backward(output *Graph, seed *Graph) error {
	var seedWeights []float32
	if seed == nil {
		seedWeights = make([]float32, len(output.arcs))
		for i := range seedWeights {
			seedWeights[i] = 1.0
		}
	} else {
		if seed.NumArcs() != output.NumArcs() {
			return fmt.Errorf("%w: Backward seed has %d arcs, output has %d",
				ErrShapeMismatch, seed.NumArcs(), output.NumArcs())
		}
		seedWeights = seed.arcWeights()
	}

	order := topoOrder(output)

	// Deposit the seed onto output's own buffer. If a caller disabled
	// CalcGrad on output, AddGrad no-ops, output keeps no buffer, and
	// no gradient is propagated from it.
	if err := output.AddGrad(seedWeights); err != nil {
		return err
	}

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.autograd == nil || n.gradBuf == nil {
			continue
		}
		if !anyCalcGrad(n.autograd.Inputs()) {
			continue
		}
		deltas := newDeltaGraph(n.gradBuf)
		if err := n.autograd.Backward(deltas); err != nil {
			return err
		}
	}
	return nil
}

// topoOrder returns the Graphs reachable from output through
// autograd inputs, in forward topological order (dependencies
// before dependents, output last).
func topoOrder(output *Graph) []*Graph {
	visited := make(map[*Graph]bool)
	order := make([]*Graph, 0, 16)
	var visit func(n *Graph)
	visit = func(n *Graph) {
		if visited[n] {
			return
		}
		visited[n] = true
		if n.autograd != nil {
			for _, in := range n.autograd.Inputs() {
				visit(in)
			}
		}
		order = append(order, n)
	}
	visit(output)
	return order
}

func anyCalcGrad(inputs []*Graph) bool {
	for _, in := range inputs {
		if in.calcGrad {
			return true
		}
	}
	return false
}

// newDeltaGraph wraps a slice of per-arc gradient values as a Graph
// whose arc weights can be read positionally with Weight(a), the
// shape "deltas" needs to be handed to a Backward closure. It carries
// no meaningful node structure; every arc is a self-loop on a single
// node.
func newDeltaGraph(weights []float32) *Graph {
	g := &Graph{}
	if len(weights) == 0 {
		return g
	}
	g.AddNode(false, false)
	for _, w := range weights {
		g.MustAddArc(0, 0, EPSILON, EPSILON, w)
	}
	return g
}
