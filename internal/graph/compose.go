// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

// provenance records which input arc(s) created a composed output
// arc: -1 means "no arc from that side" (the output arc came from a
// pure epsilon step on the other side).
type provenance struct {
	i, j int
}

type composeOp struct {
	a, b     *Graph
	gradInfo []provenance
}

func (o *composeOp) Inputs() []*Graph { return []*Graph{o.a, o.b} }

// Backward scatters each output arc's gradient back to the input arc
// (or arcs) it was produced from, per gradInfo recorded during
// Compose's forward construction.
func (o *composeOp) Backward(deltas *Graph) error {
	calcA, calcB := o.a.calcGrad, o.b.calcGrad
	if !calcA && !calcB {
		return nil
	}
	var gradA, gradB []float32
	if calcA {
		gradA = make([]float32, len(o.a.arcs))
	}
	if calcB {
		gradB = make([]float32, len(o.b.arcs))
	}
	weights := deltas.arcWeights()
	for k, p := range o.gradInfo {
		d := weights[k]
		if calcA && p.i >= 0 {
			gradA[p.i] += d
		}
		if calcB && p.j >= 0 {
			gradB[p.j] += d
		}
	}
	if calcA {
		if err := o.a.AddGrad(gradA); err != nil {
			return err
		}
	}
	if calcB {
		if err := o.b.AddGrad(gradB); err != nil {
			return err
		}
	}
	return nil
}

type prodState struct{ x, y NodeId }

// Compose computes the weighted intersection of transducer a (over
// its output alphabet) with transducer b (over its input alphabet).
// It runs a reverse reachability sweep from the product accept states
// followed by a forward BFS from the product start states. The two
// passes treat epsilon asymmetrically: the forward BFS always
// enumerates both the A-output-epsilon and B-input-epsilon arc
// categories, while the reachability sweep skips them at a state
// where a label-matched predecessor pair was itself epsilon (see
// findReachable).
func Compose(a, b *Graph) *Graph {
	numA, numB := len(a.nodes), len(b.nodes)
	toIndex := func(n1, n2 NodeId) int { return int(n1) + numA*int(n2) }

	reachable := findReachable(a, b, numA, numB, toIndex)

	out := New()
	newNodes := make([]NodeId, numA*numB)
	for i := range newNodes {
		newNodes[i] = -1
	}

	var frontier []prodState
	for _, sa := range a.starts {
		for _, sb := range b.starts {
			idx := toIndex(sa, sb)
			if reachable[idx] {
				newNodes[idx] = out.AddNode(true, a.nodes[sa].accept && b.nodes[sb].accept)
				frontier = append(frontier, prodState{sa, sb})
			}
		}
	}

	lazyNode := func(dx, dy NodeId) NodeId {
		idx := toIndex(dx, dy)
		if newNodes[idx] < 0 {
			newNodes[idx] = out.AddNode(
				a.nodes[dx].start && b.nodes[dy].start,
				a.nodes[dx].accept && b.nodes[dy].accept,
			)
			frontier = append(frontier, prodState{dx, dy})
		}
		return newNodes[idx]
	}

	var gradInfo []provenance
	for len(frontier) > 0 {
		curr := frontier[0]
		frontier = frontier[1:]
		x, y := curr.x, curr.y
		currNode := newNodes[toIndex(x, y)]

		for _, i := range a.nodes[x].out {
			for _, j := range b.nodes[y].out {
				if a.arcs[i].olabel != b.arcs[j].ilabel {
					continue
				}
				dx, dy := a.arcs[i].down, b.arcs[j].down
				if !reachable[toIndex(dx, dy)] {
					continue
				}
				dst := lazyNode(dx, dy)
				w := a.arcs[i].weight + b.arcs[j].weight
				out.MustAddArc(currNode, dst, a.arcs[i].ilabel, b.arcs[j].olabel, w)
				gradInfo = append(gradInfo, provenance{int(i), int(j)})
			}
		}
		for _, i := range a.nodes[x].out {
			if a.arcs[i].olabel != EPSILON {
				continue
			}
			dx, dy := a.arcs[i].down, y
			if !reachable[toIndex(dx, dy)] {
				continue
			}
			dst := lazyNode(dx, dy)
			out.MustAddArc(currNode, dst, a.arcs[i].ilabel, EPSILON, a.arcs[i].weight)
			gradInfo = append(gradInfo, provenance{int(i), -1})
		}
		for _, j := range b.nodes[y].out {
			if b.arcs[j].ilabel != EPSILON {
				continue
			}
			dx, dy := x, b.arcs[j].down
			if !reachable[toIndex(dx, dy)] {
				continue
			}
			dst := lazyNode(dx, dy)
			out.MustAddArc(currNode, dst, EPSILON, b.arcs[j].olabel, b.arcs[j].weight)
			gradInfo = append(gradInfo, provenance{-1, int(j)})
		}
	}

	out.autograd = &composeOp{a: a, b: b, gradInfo: gradInfo}
	return out
}

// findReachable computes, for every product state (x, y), whether
// some accepting product state is reachable from it by following
// matching arcs backward. The epsilonMatched guard skips enumerating
// both an A-epsilon and a B-epsilon predecessor when a genuine
// label-matched predecessor already accounted for an epsilon step,
// which is the canonical (asymmetric) epsilon-traversal rule this
// library uses to avoid double-counting a symmetric epsilon pair.
func findReachable(a, b *Graph, numA, numB int, toIndex func(NodeId, NodeId) int) []bool {
	reachable := make([]bool, numA*numB)
	var queue []prodState
	for _, fa := range a.accepts {
		for _, sb := range b.accepts {
			reachable[toIndex(fa, sb)] = true
			queue = append(queue, prodState{fa, sb})
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		x, y := curr.x, curr.y

		epsilonMatched := false
		for _, i := range a.nodes[x].in {
			for _, j := range b.nodes[y].in {
				if a.arcs[i].olabel != b.arcs[j].ilabel {
					continue
				}
				if a.arcs[i].olabel == EPSILON {
					epsilonMatched = true
				}
				un1, un2 := a.arcs[i].up, b.arcs[j].up
				idx := toIndex(un1, un2)
				if !reachable[idx] {
					reachable[idx] = true
					queue = append(queue, prodState{un1, un2})
				}
			}
		}
		if epsilonMatched {
			continue
		}
		for _, i := range a.nodes[x].in {
			if a.arcs[i].olabel != EPSILON {
				continue
			}
			un1 := a.arcs[i].up
			idx := toIndex(un1, y)
			if !reachable[idx] {
				reachable[idx] = true
				queue = append(queue, prodState{un1, y})
			}
		}
		for _, j := range b.nodes[y].in {
			if b.arcs[j].ilabel != EPSILON {
				continue
			}
			un2 := b.arcs[j].up
			idx := toIndex(x, un2)
			if !reachable[idx] {
				reachable[idx] = true
				queue = append(queue, prodState{x, un2})
			}
		}
	}
	return reachable
}
