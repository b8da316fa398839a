// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph is the public surface of the differentiable weighted
// finite-state acceptor/transducer core. It re-exports the types and
// operations implemented in internal/graph as a thin decorator layer.
//
// # Basic usage
//
//	a := graph.NewScalar(3.0)
//	b := graph.NewScalar(4.0)
//	sum, err := graph.Add(a, b)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := graph.Backward(sum, nil); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a.Grad()) // [1]
//
// # Building an acceptor by hand
//
//	g := graph.New()
//	n0 := g.AddNode(true, false)
//	n1 := g.AddNode(false, true)
//	g.AddArc(n0, n1, 'a', 'a', 0.0)
//	score, err := graph.Forward(g)
package graph

import "github.com/graphtrace/gtn/internal/graph"

// Graph is a weighted finite-state acceptor/transducer with an
// autograd record and gradient buffer. See internal/graph.Graph.
type Graph = graph.Graph

// NodeId identifies a node within a single Graph's arena.
type NodeId = graph.NodeId

// ArcId identifies an arc within a single Graph's arena.
type ArcId = graph.ArcId

// Projection selects which label Clone rewrites arcs to.
type Projection = graph.Projection

const (
	ProjectionNone   = graph.ProjectionNone
	ProjectionInput  = graph.ProjectionInput
	ProjectionOutput = graph.ProjectionOutput
)

// EPSILON is the distinguished label meaning "no symbol consumed".
const EPSILON = graph.EPSILON

// Sentinel errors for the core graph engine.
var (
	ErrInvalidGraph  = graph.ErrInvalidGraph
	ErrCyclicGraph   = graph.ErrCyclicGraph
	ErrShapeMismatch = graph.ErrShapeMismatch
)

// New creates an empty leaf Graph with gradient tracking enabled.
func New() *Graph { return graph.New() }

// NewScalar builds a leaf two-node graph with a single arc of the
// given weight, the representation Negate/Add/Subtract/Forward treat
// as a scalar via Item.
func NewScalar(weight float32) *Graph { return graph.NewScalar(weight) }

// Backward runs reverse-mode autograd over the DAG rooted at output,
// depositing gradient into every leaf Graph it was built from. If
// seed is nil it defaults to all-ones with output's arc count.
func Backward(output *Graph, seed *Graph) error { return graph.Backward(output, seed) }

// Negate returns a scalar graph with weight -g.Item().
func Negate(g *Graph) (*Graph, error) { return graph.Negate(g) }

// Add returns a scalar graph with weight lhs.Item() + rhs.Item().
func Add(lhs, rhs *Graph) (*Graph, error) { return graph.Add(lhs, rhs) }

// Subtract returns a scalar graph with weight lhs.Item() - rhs.Item().
func Subtract(lhs, rhs *Graph) (*Graph, error) { return graph.Subtract(lhs, rhs) }

// Clone produces a structural copy of g, rewriting labels per projection.
func Clone(g *Graph, projection Projection) *Graph { return graph.Clone(g, projection) }

// ProjectInput is Clone(g, ProjectionInput).
func ProjectInput(g *Graph) *Graph { return graph.ProjectInput(g) }

// ProjectOutput is Clone(g, ProjectionOutput).
func ProjectOutput(g *Graph) *Graph { return graph.ProjectOutput(g) }

// Closure computes the Kleene star of g.
func Closure(g *Graph) *Graph { return graph.Closure(g) }

// Sum concatenates the graphs into their union.
func Sum(graphs []*Graph) *Graph { return graph.Sum(graphs) }

// Remove eliminates arcs whose (ilabel, olabel) match the given pair.
func Remove(g *Graph, ilabel, olabel int) *Graph { return graph.Remove(g, ilabel, olabel) }

// RemoveEpsilon is Remove(g, EPSILON, EPSILON).
func RemoveEpsilon(g *Graph) *Graph { return graph.RemoveEpsilon(g) }

// Compose computes the weighted intersection of a (over its output
// alphabet) with b (over its input alphabet).
func Compose(a, b *Graph) *Graph { return graph.Compose(a, b) }

// Forward computes the log-semiring path sum over all accepting paths
// of g. g must be a DAG.
func Forward(g *Graph) (*Graph, error) { return graph.Forward(g) }
