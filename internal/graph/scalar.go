// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

// NewScalar builds a leaf two-node graph (node 0 start, node 1
// accept) with a single arc of the given weight, the representation
// Negate/Add/Subtract/Forward all treat as a scalar via Item.
func NewScalar(weight float32) *Graph {
	g := New()
	g.AddNode(true, false)
	g.AddNode(false, true)
	g.MustAddArc(0, 1, EPSILON, EPSILON, weight)
	return g
}

func newScalarResult(weight float32, op autogradOp) *Graph {
	g := NewScalar(weight)
	g.autograd = op
	return g
}

type negateOp struct {
	input *Graph
}

func (o *negateOp) Inputs() []*Graph { return []*Graph{o.input} }

func (o *negateOp) Backward(deltas *Graph) error {
	d, err := deltas.Item()
	if err != nil {
		return err
	}
	return o.input.AddGrad([]float32{-d})
}

// Negate returns a scalar graph with weight -g.Item(). It fails with
// ErrInvalidGraph if g is not a single-arc graph.
func Negate(g *Graph) (*Graph, error) {
	w, err := g.Item()
	if err != nil {
		return nil, err
	}
	return newScalarResult(-w, &negateOp{input: g}), nil
}

type addOp struct {
	lhs, rhs *Graph
}

func (o *addOp) Inputs() []*Graph { return []*Graph{o.lhs, o.rhs} }

func (o *addOp) Backward(deltas *Graph) error {
	d, err := deltas.Item()
	if err != nil {
		return err
	}
	if err := o.lhs.AddGrad([]float32{d}); err != nil {
		return err
	}
	return o.rhs.AddGrad([]float32{d})
}

// Add returns a scalar graph with weight lhs.Item() + rhs.Item().
func Add(lhs, rhs *Graph) (*Graph, error) {
	a, err := lhs.Item()
	if err != nil {
		return nil, err
	}
	b, err := rhs.Item()
	if err != nil {
		return nil, err
	}
	return newScalarResult(a+b, &addOp{lhs: lhs, rhs: rhs}), nil
}

type subOp struct {
	lhs, rhs *Graph
}

func (o *subOp) Inputs() []*Graph { return []*Graph{o.lhs, o.rhs} }

func (o *subOp) Backward(deltas *Graph) error {
	d, err := deltas.Item()
	if err != nil {
		return err
	}
	if err := o.lhs.AddGrad([]float32{d}); err != nil {
		return err
	}
	return o.rhs.AddGrad([]float32{-d})
}

// Subtract returns a scalar graph with weight lhs.Item() - rhs.Item().
func Subtract(lhs, rhs *Graph) (*Graph, error) {
	a, err := lhs.Item()
	if err != nil {
		return nil, err
	}
	b, err := rhs.Item()
	if err != nil {
		return nil, err
	}
	return newScalarResult(a-b, &subOp{lhs: lhs, rhs: rhs}), nil
}
