package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
)

// minimizeDerived simplifies a clause freshly built by direct permutation
// (spec.md §4.3/§4.4's "minimize it (§4.6)"): literals already falsified at
// level 0 can never become relevant again and only bloat the clause. The
// clause is already minimal in the self-subsumption sense by construction —
// only the Undef images of the original reason were ever candidates for
// inclusion beyond the level-0-fixed ones — so the full recursive
// redundancy walk below (reserved for genuine conflict-analysis learnt
// clauses, analyze.go) is unnecessary here.
func (s *Solver) minimizeDerived(lits []lit.Lit) []lit.Lit {
	out := lits[:0:0]
	for _, l := range lits {
		if s.ValueLit(l) == lit.False && s.Level(l.Var()) == 0 {
			continue
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return lits
	}
	return out
}

// basicMinimize applies spec.md §4.6's conflict-clause minimization to a
// learnt clause under construction: lits[0] is the asserting literal (never
// dropped), litsSet records every literal already present in lits, and
// outSym is whether the learnt clause itself is symmetry-tainted (needed to
// decide whether a tainted reason may be crossed, see redundant).
func (s *Solver) basicMinimize(lits []lit.Lit, litsSet map[lit.Lit]bool, outSym bool) []lit.Lit {
	if s.opts.CCMin == CCMinOff || len(lits) <= 1 {
		return lits
	}
	out := append([]lit.Lit(nil), lits[0])
	for _, p := range lits[1:] {
		if s.redundant(p.Neg(), litsSet, outSym) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// redundant reports whether the trail literal p (i.e. the clause literal
// p.Neg()) is removable from the clause being minimized: its reason exists
// and every other literal of the reason is either already in the clause, at
// level 0, or (deep mode only) itself transitively redundant.
//
// spec.md §4.6: "a literal is not removable from a non-symmetric clause if
// removal would require a symmetry-tainted reason" — so a tainted reason may
// only be crossed when the clause being minimized is itself symmetric.
func (s *Solver) redundant(p lit.Lit, litsSet map[lit.Lit]bool, outSym bool) bool {
	reason := s.Reason(p.Var())
	if reason == clause.RefUndef {
		return false
	}
	c := s.arena.Get(reason)
	if c.Symmetric() && !outSym {
		return false
	}
	for i := 1; i < c.Size(); i++ {
		q := c.At(i).Neg()
		if litsSet[c.At(i)] || s.Level(q.Var()) == 0 {
			continue
		}
		if s.opts.CCMin == CCMinDeep && s.redundant(q, litsSet, outSym) {
			continue
		}
		return false
	}
	return true
}
