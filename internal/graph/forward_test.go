package graph_test

import (
	"errors"
	"math"
	"testing"

	"github.com/graphtrace/gtn/internal/graph"
)

// TestForwardChain checks that a single-path acceptor's Forward score
// is just the sum of its arc weights.
func TestForwardChain(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, false)
	n2 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, 1, 1, 0.5)
	g.MustAddArc(n1, n2, 2, 2, 1.5)

	out, err := graph.Forward(g)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	w, _ := out.Item()
	if math.Abs(float64(w-2.0)) > 1e-6 {
		t.Errorf("Forward chain score = %f, want 2.0", w)
	}
}

// TestForwardParallelPaths checks that two parallel start-to-accept
// paths combine via logadd, not plain addition.
func TestForwardParallelPaths(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, 1, 1, 1.0)
	g.MustAddArc(n0, n1, 2, 2, 2.0)

	out, err := graph.Forward(g)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	w, _ := out.Item()
	want := float32(math.Log(math.Exp(1.0) + math.Exp(2.0)))
	if math.Abs(float64(w-want)) > 1e-5 {
		t.Errorf("Forward parallel score = %f, want %f", w, want)
	}
}

// TestForwardCyclicGraphErrors checks that Forward over a graph with a
// cycle reachable from a start node fails with ErrCyclicGraph instead
// of hanging or silently under-counting.
func TestForwardCyclicGraphErrors(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, 1, 1, 0)
	star := graph.Closure(g)

	if _, err := graph.Forward(star); !errors.Is(err, graph.ErrCyclicGraph) {
		t.Errorf("Forward on cyclic graph: got err %v, want ErrCyclicGraph", err)
	}
}

func TestForwardUnreachableAcceptGivesNegInf(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	g.AddNode(false, true) // n1: accept, but no arc into it

	out, err := graph.Forward(g)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	w, _ := out.Item()
	if !math.IsInf(float64(w), -1) {
		t.Errorf("Forward with unreachable accept = %f, want -Inf", w)
	}
	_ = n0
}

// numericalGradient computes df/dw via central finite differences,
// rebuilding the graph fresh at w+eps and w-eps since Graphs are
// append-only once consumed by an operation.
func numericalGradient(build func(w float32) float32, w, eps float32) float32 {
	return (build(w+eps) - build(w-eps)) / (2 * eps)
}

// TestForwardGradientMatchesFiniteDifference checks that Forward's
// analytic gradient with respect to a single arc weight matches the
// finite-difference derivative of the log-partition function.
func TestForwardGradientMatchesFiniteDifference(t *testing.T) {
	build := func(w float32) float32 {
		g := graph.New()
		n0 := g.AddNode(true, false)
		n1 := g.AddNode(false, true)
		g.MustAddArc(n0, n1, 1, 1, w)
		g.MustAddArc(n0, n1, 2, 2, 0.3)
		out, err := graph.Forward(g)
		if err != nil {
			t.Fatalf("Forward: %v", err)
		}
		v, _ := out.Item()
		return v
	}

	w0 := float32(0.7)
	eps := float32(1e-3)
	numGrad := numericalGradient(build, w0, eps)

	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, 1, 1, w0)
	g.MustAddArc(n0, n1, 2, 2, 0.3)
	out, err := graph.Forward(g)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if err := graph.Backward(out, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	analyticGrad := g.Grad()[0]

	if math.Abs(float64(analyticGrad-numGrad)) > 1e-2 {
		t.Errorf("Forward gradient mismatch: analytic %f, numerical %f", analyticGrad, numGrad)
	}
}
