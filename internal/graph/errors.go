// Copyright 2026 GraphTrace Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "errors"

// Sentinel errors for the core graph engine. Callers should branch on
// these with errors.Is; call sites wrap them with fmt.Errorf("%w: ...")
// to attach context without losing the sentinel.
var (
	// ErrInvalidGraph covers malformed operations on a Graph: Item()
	// called on a graph that isn't a single scalar arc, AddArc with an
	// out-of-range endpoint, AddGrad with a mismatched length, and
	// similar structural misuse.
	ErrInvalidGraph = errors.New("graph: invalid graph")

	// ErrCyclicGraph is returned by Forward when an accept node still
	// has positive residual in-degree after the topological sweep,
	// meaning the graph has a cycle, a self-loop, or a node
	// unreachable from any start.
	ErrCyclicGraph = errors.New("graph: cyclic or disconnected graph")

	// ErrShapeMismatch is returned when an autograd backward closure is
	// invoked with a deltas graph whose arc count differs from the
	// output graph's arc count.
	ErrShapeMismatch = errors.New("graph: shape mismatch")
)
