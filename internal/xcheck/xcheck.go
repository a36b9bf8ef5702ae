// Package xcheck implements the differential-testing oracle spec.md §8
// wants any serious CDCL implementation held against: an independent SAT
// solver (go-air/gini, a second Go CDCL solver with no code shared with
// internal/solver) checked on the same CNF, so a bug that makes the
// symmetry-aware engine return the wrong verdict is caught even when the
// formula is too large to hand-verify. It does not replace
// internal/solver's own model-verification (spec.md §8 §4.8) — it exists
// for the opposite failure mode, a wrong UNSAT or a wrong SAT the model
// check can't catch because no model was ever produced to check.
package xcheck

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/lip6/ESBP-SEL/internal/format"
	"github.com/lip6/ESBP-SEL/internal/lit"
)

// Verdict is gini's three-valued outcome, translated from its own
// int/1/-1/0 convention into the package's lit.Bool so callers compare
// directly against solver.Solver.Solve's return value.
type Verdict = lit.Bool

// Oracle cross-checks a CNF's satisfiability against gini.
type Oracle struct {
	g *gini.Gini
}

// NewOracle builds a fresh gini instance with no clauses loaded.
func NewOracle() *Oracle {
	return &Oracle{g: gini.New()}
}

// Load installs every clause of cnf into the oracle's gini instance.
func (o *Oracle) Load(cnf *format.CNF) {
	for _, lits := range cnf.Clauses {
		for _, l := range lits {
			o.g.Add(litToGini(l))
		}
		o.g.Add(z.LitNull)
	}
}

// Solve asks gini for a verdict on the clauses loaded so far.
func (o *Oracle) Solve() Verdict {
	switch o.g.Solve() {
	case 1:
		return lit.True
	case -1:
		return lit.False
	default:
		return lit.BoolUndef
	}
}

// Disagreement describes a verdict mismatch between internal/solver and the
// gini oracle on the same formula.
type Disagreement struct {
	Got, Want Verdict
}

func (d *Disagreement) Error() string {
	return fmt.Sprintf("xcheck: solver returned %v, gini oracle returned %v", d.Got, d.Want)
}

// Check cross-checks got (internal/solver's verdict on cnf) against a fresh
// gini run over the same clauses, returning a *Disagreement if they
// conflict. A gini verdict of lit.BoolUndef (gini's own search was
// canceled, which Check never triggers, or hit an internal resource limit)
// is never treated as a disagreement, since it carries no information to
// disagree with.
func Check(cnf *format.CNF, got Verdict) error {
	o := NewOracle()
	o.Load(cnf)
	want := o.Solve()
	if want == lit.BoolUndef {
		return nil
	}
	if got != lit.BoolUndef && got != want {
		return &Disagreement{Got: got, Want: want}
	}
	return nil
}

func litToGini(l lit.Lit) z.Lit {
	n := int(l.Var()) + 1
	if l.Sign() {
		n = -n
	}
	return z.Dimacs2Lit(n)
}
