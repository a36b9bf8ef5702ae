package symmetry

import (
	"testing"

	"github.com/lip6/ESBP-SEL/internal/lit"
)

func lp(v int) lit.Lit { return lit.New(lit.Var(v), false) }
func ln(v int) lit.Lit { return lit.New(lit.Var(v), true) }

func TestGeneratorCycleIsComplementPreserving(t *testing.T) {
	g := NewGenerator(0, 3)
	g.SetCycle([]lit.Lit{lp(0), lp(1), lp(2)})
	g.SetCycle([]lit.Lit{ln(0), ln(1), ln(2)})

	if g.Image(lp(0)) != lp(1) || g.Image(lp(1)) != lp(2) || g.Image(lp(2)) != lp(0) {
		t.Fatalf("positive cycle not installed correctly")
	}
	for v := 0; v < 3; v++ {
		if g.Image(lp(v)).Neg() != g.Image(ln(v)) {
			t.Fatalf("generator must satisfy image(not l) == not image(l) for var %d", v)
		}
	}
}

func TestPermutesDetectsFixpoints(t *testing.T) {
	g := NewGenerator(0, 3)
	g.SetCycle([]lit.Lit{lp(0), lp(1)})
	g.SetCycle([]lit.Lit{ln(0), ln(1)})

	if !g.Permutes(lp(0)) {
		t.Fatalf("var 0 should be permuted")
	}
	if g.Permutes(lp(2)) {
		t.Fatalf("var 2 is a fixpoint and must not be reported as permuted")
	}
}

func TestStabilizesSetwiseFixedClause(t *testing.T) {
	g := NewGenerator(0, 3)
	g.SetCycle([]lit.Lit{lp(0), lp(1)})
	g.SetCycle([]lit.Lit{ln(0), ln(1)})

	clause := []lit.Lit{lp(0), lp(1)}
	if !g.Stabilizes(clause) {
		t.Fatalf("{x0 v x1} must be setwise fixed by the (0 1) swap")
	}

	asymmetric := []lit.Lit{lp(0), lp(2)}
	if g.Stabilizes(asymmetric) {
		t.Fatalf("{x0 v x2} is not setwise fixed by the (0 1) swap")
	}
}

func TestSymmetricClauseAppliesImageToEveryLiteral(t *testing.T) {
	g := NewGenerator(0, 3)
	g.SetCycle([]lit.Lit{lp(0), lp(1), lp(2)})
	g.SetCycle([]lit.Lit{ln(0), ln(1), ln(2)})

	out := g.SymmetricClause([]lit.Lit{lp(0), ln(2)})
	want := []lit.Lit{lp(1), ln(0)}
	if out[0] != want[0] || out[1] != want[1] {
		t.Fatalf("SymmetricClause(%v) = %v, want %v", []lit.Lit{lp(0), ln(2)}, out, want)
	}
}

func TestGroupWatchesForOnlyPermutedVariables(t *testing.T) {
	group := NewGroup()
	g0 := NewGenerator(0, 4)
	g0.SetCycle([]lit.Lit{lp(0), lp(1)})
	g0.SetCycle([]lit.Lit{ln(0), ln(1)})
	group.Add(g0)
	group.Build(4)

	if len(group.WatchesFor(0)) != 1 {
		t.Fatalf("var 0 should be watched by exactly one generator")
	}
	if len(group.WatchesFor(3)) != 0 {
		t.Fatalf("var 3 is a fixpoint for every generator and must have no watches")
	}
}

func TestCompatSetIntersectEmptyForcesEmpty(t *testing.T) {
	a := NewCompatSet(1, 2, 3)
	empty := NewCompatSet()
	a.Intersect(empty)
	if !a.Empty() {
		t.Fatalf("intersecting with an empty set must force the result empty")
	}
}

func TestCompatSetIntersectAll(t *testing.T) {
	a := NewCompatSet(1, 2, 3)
	b := NewCompatSet(2, 3, 4)
	got := IntersectAll([]*CompatSet{a, b})
	if got.Contains(1) || got.Contains(4) || !got.Contains(2) || !got.Contains(3) {
		t.Fatalf("IntersectAll = %v, want {2,3}", got.IDs())
	}
}
