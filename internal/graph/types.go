// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph implements the core of a differentiable weighted
// finite-state acceptor/transducer library: an arena-backed Graph type,
// the algebraic operations that build new Graphs out of existing ones,
// and the reverse-mode autograd tape that composes their gradients.
//
// # Overview
//
// A Graph owns dense arenas of Nodes and Arcs. Arcs carry an input
// label, an output label, and a float32 weight; EPSILON marks a
// non-consuming arc. Operations (Negate, Add, Clone, Closure, Sum,
// Remove, Compose, Forward) build a new Graph from existing ones and
// attach an autogradOp recording how to scatter gradient back into
// their inputs. Calling Backward on an output Graph walks that DAG in
// reverse topological order and deposits gradient into every leaf
// Graph's gradient buffer.
//
// # Basic usage
//
//	a := graph.NewScalar(3.0)
//	b := graph.NewScalar(4.0)
//	c, err := graph.Add(a, b)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := graph.Backward(c, nil); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a.Grad()) // [1]
package graph

// NodeId identifies a Node within a single Graph's arena.
type NodeId int

// ArcId identifies an Arc within a single Graph's arena.
type ArcId int

// EPSILON is the distinguished label meaning "no symbol consumed".
// Callers must not use this value as a regular alphabet label.
const EPSILON = 0

// Projection selects which label clone rewrites arcs to.
type Projection int

const (
	// ProjectionNone keeps each arc's (ilabel, olabel) unchanged.
	ProjectionNone Projection = iota
	// ProjectionInput rewrites each arc to (ilabel, ilabel).
	ProjectionInput
	// ProjectionOutput rewrites each arc to (olabel, olabel).
	ProjectionOutput
)

// node holds the flags and adjacency lists for one graph state.
type node struct {
	start  bool
	accept bool
	in     []ArcId
	out    []ArcId
}

// arc is a labeled, weighted directed edge between two nodes of the
// same Graph.
type arc struct {
	up, down       NodeId
	ilabel, olabel int
	weight         float32
}
