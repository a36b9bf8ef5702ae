package solver

import (
	"testing"

	"github.com/lip6/ESBP-SEL/internal/lit"
)

// TestSolveSatisfiable mirrors gatosat's TestSolve SAT case in miniature: a
// small satisfiable formula should solve to True with a model that actually
// satisfies every clause.
func TestSolveSatisfiable(t *testing.T) {
	s, v := newTestSolver(3)
	clauses := [][]lit.Lit{
		{p(v[0]), p(v[1])},
		{n(v[0]), p(v[2])},
		{n(v[1]), n(v[2])},
	}
	for _, c := range clauses {
		if !s.AddClause(c) {
			t.Fatal("unexpected UNSAT while adding clauses")
		}
	}

	status := s.Solve(nil)
	if status != lit.True {
		t.Fatalf("expected SAT, got %v", status)
	}
	for _, c := range clauses {
		satisfied := false
		for _, l := range c {
			want := lit.True
			if l.Sign() {
				want = lit.False
			}
			if s.Model(l.Var()) == (want == lit.True) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Fatalf("model does not satisfy clause %v", c)
		}
	}
}

// TestSolveUnsatisfiable mirrors gatosat's UNSAT case: a trivially
// contradictory formula (all four binary clauses over two variables, one
// excluding each assignment) must solve to False.
func TestSolveUnsatisfiable(t *testing.T) {
	s, v := newTestSolver(2)
	if !s.AddClause([]lit.Lit{p(v[0]), p(v[1])}) {
		t.Fatal("unexpected UNSAT while adding clauses")
	}
	if !s.AddClause([]lit.Lit{p(v[0]), n(v[1])}) {
		t.Fatal("unexpected UNSAT while adding clauses")
	}
	if !s.AddClause([]lit.Lit{n(v[0]), p(v[1])}) {
		t.Fatal("unexpected UNSAT while adding clauses")
	}
	if !s.AddClause([]lit.Lit{n(v[0]), n(v[1])}) {
		t.Fatal("unexpected UNSAT while adding clauses")
	}

	status := s.Solve(nil)
	if status != lit.False {
		t.Fatalf("expected UNSAT, got %v", status)
	}
	if s.stats.Conflicts == 0 {
		t.Fatal("expected at least one conflict during search")
	}
}

// TestSolveHonorsAssumptions checks that a literal forced via assumptions
// that contradicts the formula is correctly reported UNSAT without being
// added as a permanent clause (a second Solve call without that assumption
// must still find a model).
func TestSolveHonorsAssumptions(t *testing.T) {
	s, v := newTestSolver(1)
	if !s.AddClause([]lit.Lit{p(v[0])}) {
		t.Fatal("unexpected UNSAT while adding clause")
	}

	if status := s.Solve([]lit.Lit{n(v[0])}); status != lit.False {
		t.Fatalf("expected assumption-driven UNSAT, got %v", status)
	}
	if status := s.Solve(nil); status != lit.True {
		t.Fatalf("expected SAT once the contradictory assumption is dropped, got %v", status)
	}
}

// TestReduceDBKeepsLockedClauses exercises reduceDB directly: a learnt
// clause currently serving as a trail reason must survive even when the
// reduction policy is enabled and every size/activity condition for
// deletion otherwise holds.
func TestReduceDBKeepsLockedClauses(t *testing.T) {
	opts := DefaultOptions()
	opts.ReduceDB = ReduceDBSymmetrySafe
	s := NewSolver(opts)
	vars := make([]lit.Var, 4)
	for i := range vars {
		vars[i] = s.NewVar()
	}
	s.group.Build(4)

	lits := []lit.Lit{p(vars[0]), p(vars[1]), p(vars[2])}
	ref := s.arena.Alloc(lits, true)
	s.learnts = append(s.learnts, ref)
	s.attachClause(ref)
	s.uncheckedEnqueue(p(vars[0]), ref)

	s.reduceDB()

	found := false
	for _, r := range s.learnts {
		if r == ref {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the locked learnt clause to survive reduceDB")
	}
}
