package solver

import (
	"testing"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// TestTableOracleInjectsESBPClause exercises runESBPHook (spec.md §4.2 step
// 1) with a populated symmetry.TableOracle instead of the default NullOracle:
// the table fires on vA becoming true and hands back a precomputed
// effective symmetric Boolean propagator forcing vB true, justified by a
// generator that in fact swaps vA and vB. This is the ESBP injector the
// review flagged as dead/untested: a non-null oracle driving a real
// solver-level derivation, asserted both on the resulting assignment and on
// the stats counter the hook bumps.
func TestTableOracleInjectsESBPClause(t *testing.T) {
	s, v := newTestSolver(2)
	vA, vB := v[0], v[1]

	g := symmetry.NewGenerator(0, 2)
	g.SetCycle([]lit.Lit{p(vA), p(vB)})
	g.SetCycle([]lit.Lit{n(vA), n(vB)})
	genID := s.AddGenerator(g)
	s.BuildGenerators()

	table := map[lit.Lit][]lit.Lit{
		p(vA): {p(vB)},
	}
	justify := map[lit.Lit][]symmetry.GenID{
		p(vA): {genID},
	}
	s.SetOracle(symmetry.NewTableOracle(table, justify))

	if !s.AddClause([]lit.Lit{p(vA)}) {
		t.Fatal("unexpected UNSAT adding the unit clause that triggers the oracle")
	}

	if s.ValueVar(vB) != lit.True {
		t.Fatalf("expected vB forced true by the injected ESBP clause, got %v", s.ValueVar(vB))
	}
	if s.stats.ESBPInjections == 0 {
		t.Fatal("expected runESBPHook to have injected a clause via the TableOracle")
	}
}

// TestTableOracleConflictStopsOnFalsified exercises the StopOnESBPConflict
// policy (spec.md §4.2 step 1's "configured stop-prop policy"): when the
// injected clause is already falsified under the current assignment and the
// option is set, the hook itself must report the conflict rather than
// leaving it for a later watch scan.
func TestTableOracleConflictStopsOnFalsified(t *testing.T) {
	opts := DefaultOptions()
	opts.StopOnESBPConflict = true
	s := NewSolver(opts)
	vA := s.NewVar()
	vB := s.NewVar()
	s.group.Build(2)

	table := map[lit.Lit][]lit.Lit{
		p(vA): {n(vB)},
	}
	s.SetOracle(symmetry.NewTableOracle(table, nil))

	if !s.AddClause([]lit.Lit{p(vB)}) {
		t.Fatal("unexpected UNSAT adding unit clause for vB")
	}
	if !s.OK() {
		t.Fatal("expected solver to still be OK before the triggering assignment")
	}

	if s.AddClause([]lit.Lit{p(vA)}) {
		t.Fatal("expected AddClause to detect the ESBP-injected conflict")
	}
	if s.OK() {
		t.Fatal("expected OK() false after the injected clause conflicted")
	}
}
