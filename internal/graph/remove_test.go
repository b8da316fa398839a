package graph_test

import (
	"testing"

	"github.com/graphtrace/gtn/internal/graph"
)

func TestRemoveEpsilonCollapsesChain(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, false)
	n2 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, graph.EPSILON, graph.EPSILON, 0)
	g.MustAddArc(n1, n2, 1, 1, 0)

	out := graph.RemoveEpsilon(g)

	if len(out.Starts()) != 1 {
		t.Fatalf("RemoveEpsilon starts = %v, want one entry", out.Starts())
	}
	start := out.Starts()[0]
	if !out.Accept(start) && out.NumArcs() == 0 {
		t.Fatalf("expected the collapsed start node to reach an accept via a kept arc")
	}
	if out.NumArcs() != 1 || out.Ilabel(0) != 1 {
		t.Errorf("RemoveEpsilon arcs = %d (ilabel %d), want 1 arc labeled 1", out.NumArcs(), out.Ilabel(0))
	}
}

func TestRemoveEpsilonPropagatesAcceptThroughEpsilonOnlyPath(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, graph.EPSILON, graph.EPSILON, 0)

	out := graph.RemoveEpsilon(g)

	start := out.Starts()[0]
	if !out.Accept(start) {
		t.Errorf("start node should become accepting once its only path was pure epsilon")
	}
}

func TestRemoveBackwardIsNoOp(t *testing.T) {
	g := graph.New()
	n0 := g.AddNode(true, false)
	n1 := g.AddNode(false, true)
	g.MustAddArc(n0, n1, graph.EPSILON, graph.EPSILON, 0)
	g.MustAddArc(n1, n1, 1, 1, 0) // non-epsilon self-loop: Remove keeps it, so out has arcs for the seed to cover

	out := graph.RemoveEpsilon(g)

	seed := graph.New()
	seed.AddNode(false, false)
	for i := 0; i < out.NumArcs(); i++ {
		seed.MustAddArc(0, 0, 0, 0, 1)
	}
	if err := graph.Backward(out, seed); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := g.Grad(); got != nil {
		t.Errorf("g.Grad() = %v, want nil (Remove propagates no gradient)", got)
	}
}
