// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"math"
)

var negInf = float32(math.Inf(-1))

// logadd is the numerically stable log(exp(a) + exp(b)), with
// logadd(-Inf, x) = x defined explicitly rather than left to fall out
// of the general formula (which would otherwise subtract -Inf from
// -Inf into a NaN when both sides are unreachable).
func logadd(a, b float32) float32 {
	if a == negInf {
		return b
	}
	if b == negInf {
		return a
	}
	if a > b {
		return a + float32(math.Log1p(math.Exp(float64(b-a))))
	}
	return b + float32(math.Log1p(math.Exp(float64(a-b))))
}

type forwardOp struct {
	input  *Graph
	scores []float32
	output float32
}

func (o *forwardOp) Inputs() []*Graph { return []*Graph{o.input} }

// Backward runs a reverse Kahn sweep over the cached forward scores:
// each accept node seeds its node gradient from those scores, and a
// node's incoming arcs are only resolved once every one of its own
// outgoing arcs has contributed to its node gradient (tracked via an
// out-degree countdown).
func (o *forwardOp) Backward(deltas *Graph) error {
	delta, err := deltas.Item()
	if err != nil {
		return err
	}
	g := o.input
	n := len(g.nodes)
	degrees := make([]int, n)
	nodeGrads := make([]float32, n)
	arcGrads := make([]float32, len(g.arcs))
	for i := range g.nodes {
		degrees[i] = len(g.nodes[i].out)
	}

	var queue []NodeId
	for _, acc := range g.accepts {
		if o.scores[acc] != negInf {
			nodeGrads[acc] = delta * float32(math.Exp(float64(o.scores[acc]-o.output)))
		}
		if degrees[acc] == 0 {
			queue = append(queue, acc)
		}
	}

	for len(queue) > 0 {
		n0 := queue[0]
		queue = queue[1:]
		score := o.scores[n0]
		gradn := nodeGrads[n0]
		for _, a := range g.nodes[n0].in {
			un := g.arcs[a].up
			var arcGrad float32
			if gradn != 0 && score != negInf && o.scores[un] != negInf {
				arcGrad = gradn * float32(math.Exp(float64(g.arcs[a].weight+o.scores[un]-score)))
			}
			arcGrads[a] = arcGrad
			nodeGrads[un] += arcGrad
			degrees[un]--
			if degrees[un] == 0 {
				queue = append(queue, un)
			}
		}
	}
	return g.AddGrad(arcGrads)
}

// Forward computes the log-semiring path sum over all accepting paths
// of g: a scalar graph whose single arc weight is logsumexp of the
// total weight of every start-to-accept path. g must be a DAG; Forward
// fails with ErrCyclicGraph if an accept node still has positive
// residual in-degree after the topological sweep (a cycle, a
// self-loop, or a node disconnected from every start).
func Forward(g *Graph) (*Graph, error) {
	n := len(g.nodes)
	scores := make([]float32, n)
	for i := range scores {
		scores[i] = negInf
	}
	degrees := make([]int, n)
	for i := range g.nodes {
		degrees[i] = len(g.nodes[i].in)
	}

	var queue []NodeId
	for _, s := range g.starts {
		scores[s] = 0
		if degrees[s] == 0 {
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		n0 := queue[0]
		queue = queue[1:]
		score := scores[n0]
		for _, a := range g.nodes[n0].out {
			dn := g.arcs[a].down
			scores[dn] = logadd(scores[dn], score+g.arcs[a].weight)
			degrees[dn]--
			if degrees[dn] == 0 {
				queue = append(queue, dn)
			}
		}
	}

	total := negInf
	for _, acc := range g.accepts {
		if degrees[acc] > 0 {
			return nil, fmt.Errorf("%w: accept node %d has residual in-degree after topological sweep", ErrCyclicGraph, acc)
		}
		total = logadd(total, scores[acc])
	}

	return newScalarResult(total, &forwardOp{input: g, scores: scores, output: total}), nil
}
