package graph_test

import (
	"testing"

	"github.com/graphtrace/gtn/internal/graph"
)

// TestAddScalar checks that adding two leaf scalars and running
// Backward deposits a gradient of 1 on each leaf.
func TestAddScalar(t *testing.T) {
	a := graph.NewScalar(3.0)
	b := graph.NewScalar(4.0)

	sum, err := graph.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	w, err := sum.Item()
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if w != 7.0 {
		t.Errorf("Add(3, 4) = %f, want 7", w)
	}

	if err := graph.Backward(sum, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := a.Grad(); len(got) != 1 || got[0] != 1 {
		t.Errorf("a.Grad() = %v, want [1]", got)
	}
	if got := b.Grad(); len(got) != 1 || got[0] != 1 {
		t.Errorf("b.Grad() = %v, want [1]", got)
	}
}

func TestSubtractScalar(t *testing.T) {
	a := graph.NewScalar(5.0)
	b := graph.NewScalar(2.0)

	diff, err := graph.Subtract(a, b)
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	w, _ := diff.Item()
	if w != 3.0 {
		t.Errorf("Subtract(5, 2) = %f, want 3", w)
	}

	if err := graph.Backward(diff, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := a.Grad(); got[0] != 1 {
		t.Errorf("a.Grad() = %v, want [1]", got)
	}
	if got := b.Grad(); got[0] != -1 {
		t.Errorf("b.Grad() = %v, want [-1]", got)
	}
}

func TestNegateScalar(t *testing.T) {
	a := graph.NewScalar(6.0)
	neg, err := graph.Negate(a)
	if err != nil {
		t.Fatalf("Negate: %v", err)
	}
	w, _ := neg.Item()
	if w != -6.0 {
		t.Errorf("Negate(6) = %f, want -6", w)
	}
	if err := graph.Backward(neg, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := a.Grad(); got[0] != -1 {
		t.Errorf("a.Grad() = %v, want [-1]", got)
	}
}

// TestBackwardDiamondAccumulates checks that a leaf feeding two
// independent consumers that both feed a shared output has its
// gradient buffer fully accumulated (both contributions) rather than
// reflecting only whichever consumer's backward closure ran last.
func TestBackwardDiamondAccumulates(t *testing.T) {
	x := graph.NewScalar(2.0)

	p1, err := graph.Add(x, graph.NewScalar(1.0))
	if err != nil {
		t.Fatalf("Add p1: %v", err)
	}
	p2, err := graph.Add(x, graph.NewScalar(10.0))
	if err != nil {
		t.Fatalf("Add p2: %v", err)
	}
	q, err := graph.Add(p1, p2)
	if err != nil {
		t.Fatalf("Add q: %v", err)
	}

	if err := graph.Backward(q, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	// dq/dx = dq/dp1 * dp1/dx + dq/dp2 * dp2/dx = 1*1 + 1*1 = 2
	if got := x.Grad(); len(got) != 1 || got[0] != 2 {
		t.Errorf("x.Grad() = %v, want [2]", got)
	}
}

func TestBackwardSeedShapeMismatch(t *testing.T) {
	a := graph.NewScalar(1.0)
	b := graph.NewScalar(2.0)
	sum, _ := graph.Add(a, b)

	badSeed := graph.New()
	badSeed.AddNode(true, false)
	badSeed.AddNode(false, true)
	badSeed.MustAddArc(0, 1, 0, 0, 1)
	badSeed.MustAddArc(0, 1, 0, 0, 1)

	if err := graph.Backward(sum, badSeed); err == nil {
		t.Errorf("Backward with mismatched seed arc count: got nil error, want ErrShapeMismatch")
	}
}
