package order

import (
	"testing"

	"github.com/lip6/ESBP-SEL/internal/lit"
)

func TestRemoveMinReturnsHighestActivity(t *testing.T) {
	h := New()
	for i := lit.Var(0); i < 5; i++ {
		h.Push(i)
	}
	h.Bump(3, 10)
	h.Bump(1, 5)

	if got := h.RemoveMin(); got != 3 {
		t.Fatalf("RemoveMin() = %d, want 3 (highest activity)", got)
	}
	if got := h.RemoveMin(); got != 1 {
		t.Fatalf("RemoveMin() = %d, want 1 (second highest)", got)
	}
	if h.InHeap(3) || h.InHeap(1) {
		t.Fatalf("popped variables must not remain InHeap")
	}
}

func TestEmptyAfterDraining(t *testing.T) {
	h := New()
	for i := lit.Var(0); i < 3; i++ {
		h.Push(i)
	}
	for !h.Empty() {
		h.RemoveMin()
	}
	if !h.Empty() {
		t.Fatalf("heap should be empty after draining all variables")
	}
}
