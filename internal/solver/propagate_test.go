package solver

import (
	"testing"

	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

func newTestSolver(nVars int) (*Solver, []lit.Var) {
	s := NewSolver(DefaultOptions())
	vars := make([]lit.Var, nVars)
	for i := range vars {
		vars[i] = s.NewVar()
	}
	return s, vars
}

func p(v lit.Var) lit.Lit { return lit.New(v, false) }
func n(v lit.Var) lit.Lit { return lit.New(v, true) }

func TestPlainBCPUnitChain(t *testing.T) {
	s, v := newTestSolver(3)
	if !s.AddClause([]lit.Lit{p(v[0])}) {
		t.Fatal("unexpected UNSAT")
	}
	if !s.AddClause([]lit.Lit{n(v[0]), p(v[1])}) {
		t.Fatal("unexpected UNSAT")
	}
	if !s.AddClause([]lit.Lit{n(v[1]), p(v[2])}) {
		t.Fatal("unexpected UNSAT")
	}
	if s.ValueVar(v[2]) != lit.True {
		t.Fatalf("expected v2 implied true, got %v", s.ValueVar(v[2]))
	}
}

func TestPlainBCPConflict(t *testing.T) {
	s, v := newTestSolver(1)
	if !s.AddClause([]lit.Lit{p(v[0])}) {
		t.Fatal("unexpected UNSAT on first unit")
	}
	if s.AddClause([]lit.Lit{n(v[0])}) {
		t.Fatal("expected AddClause to detect trivial UNSAT")
	}
	if s.OK() {
		t.Fatal("expected OK() false after conflicting units")
	}
}

func TestGeneratorWatchDerivesSymmetricUnit(t *testing.T) {
	// g swaps vA<->vB and fixes vC. Clause A = (vA v vC). Deciding ¬vC forces
	// vA true via plain BCP, reason A. The generator-watch engine then forms
	// A's image under g — (vB v vC) — notices vC is already False in it, and
	// derives the symmetric unit vB true: a consequence A itself never
	// states and no added clause encodes directly.
	s, v := newTestSolver(3)
	vA, vB, vC := v[0], v[1], v[2]

	g := symmetry.NewGenerator(0, 3)
	g.SetCycle([]lit.Lit{p(vA), p(vB)})
	g.SetCycle([]lit.Lit{n(vA), n(vB)})
	s.AddGenerator(g)
	s.BuildGenerators()

	if !s.AddClause([]lit.Lit{p(vA), p(vC)}) {
		t.Fatal("unexpected UNSAT")
	}

	s.newDecisionLevel()
	s.uncheckedEnqueue(n(vC), clause.RefUndef)
	confl := s.Propagate()
	if confl != clause.RefUndef {
		t.Fatalf("unexpected conflict: %v", confl)
	}
	if s.ValueVar(vA) != lit.True {
		t.Fatalf("expected vA forced true by plain BCP on A, got %v", s.ValueVar(vA))
	}
	if s.ValueVar(vB) != lit.True {
		t.Fatalf("expected vB forced true via the generator-watch engine, got %v", s.ValueVar(vB))
	}
	if s.stats.GeneratorPropagations == 0 {
		t.Fatal("expected the generator-watch engine to have fired")
	}
}

func TestSelectorEngineCachesAndLaterFires(t *testing.T) {
	// g swaps vA<->vB and, independently, vD<->vE; vC is fixed. Clause
	// A = (vA v vD v vC). vC is False at level 0; deciding ¬vD then forces
	// vA true via plain BCP, reason A. A's image under g is (vB v vE v vC):
	// with vC's image (itself) already False but vB's and vE's images both
	// still Undef, this is too many unknowns to resolve immediately, so the
	// generator-watch engine caches it as a selector clause instead of
	// deriving a unit right away. Only once vE is separately decided False
	// does the cached selector clause resolve — down to the same derivation
	// §4.3 would have produced directly — asserting vB true.
	s, v := newTestSolver(5)
	vA, vB, vC, vD, vE := v[0], v[1], v[2], v[3], v[4]

	g := symmetry.NewGenerator(0, 5)
	g.SetCycle([]lit.Lit{p(vA), p(vB)})
	g.SetCycle([]lit.Lit{n(vA), n(vB)})
	g.SetCycle([]lit.Lit{p(vD), p(vE)})
	g.SetCycle([]lit.Lit{n(vD), n(vE)})
	s.AddGenerator(g)
	s.BuildGenerators()

	if !s.AddClause([]lit.Lit{n(vC)}) {
		t.Fatal("unexpected UNSAT")
	}
	if !s.AddClause([]lit.Lit{p(vA), p(vD), p(vC)}) {
		t.Fatal("unexpected UNSAT")
	}

	s.newDecisionLevel()
	s.uncheckedEnqueue(n(vD), clause.RefUndef)
	if confl := s.Propagate(); confl != clause.RefUndef {
		t.Fatalf("unexpected conflict after deciding vD false: %v", confl)
	}
	if s.ValueVar(vA) != lit.True {
		t.Fatalf("expected vA forced true by A once vD and vC are both false, got %v", s.ValueVar(vA))
	}
	if s.sel.count() == 0 {
		t.Fatal("expected a selector clause to have been cached by the generator-watch engine")
	}
	if s.ValueVar(vB) != lit.BoolUndef {
		t.Fatalf("expected vB to remain undecided until the selector clause resolves, got %v", s.ValueVar(vB))
	}

	s.newDecisionLevel()
	s.uncheckedEnqueue(n(vE), clause.RefUndef)
	if confl := s.Propagate(); confl != clause.RefUndef {
		t.Fatalf("unexpected conflict after deciding vE false: %v", confl)
	}
	if s.ValueVar(vB) != lit.True {
		t.Fatalf("expected the cached selector clause to resolve vB true, got %v", s.ValueVar(vB))
	}
	if s.stats.SelectorPropagations == 0 {
		t.Fatal("expected the selector-clause engine to have fired")
	}
}
