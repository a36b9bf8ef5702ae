package solver

import (
	"sort"

	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// AddClause adds an original (level-0) clause to the formula. It returns
// false iff the formula becomes trivially unsatisfiable as a result (an
// empty clause survives simplification, or top-level unit propagation of
// this clause conflicts) — spec.md §6's "returns false iff the formula
// becomes trivially unsat". Once AddClause has returned false, OK() is
// permanently false and every further Solve call returns UNSAT for free
// (spec.md §7).
func (s *Solver) AddClause(lits []lit.Lit) bool {
	if s.decisionLevel() != 0 {
		s.panicf("AddClause called at decision level %d, must be 0", s.decisionLevel())
	}
	if !s.ok {
		return false
	}

	cp := append([]lit.Lit(nil), lits...)
	// Remove duplicate/false literals in place; bail out if the clause is
	// already satisfied at level 0 or is tautological (p and not p both
	// present) — mirrors gatosat's addClause trimming loop.
	var last lit.Lit = lit.Undef
	n := 0
	for _, l := range cp {
		if s.ValueLit(l) == lit.True || l == last.Neg() {
			return true
		}
		if s.ValueLit(l) != lit.False && l != last {
			cp[n] = l
			last = l
			n++
		}
	}
	cp = cp[:n]

	switch len(cp) {
	case 0:
		s.ok = false
	case 1:
		s.uncheckedEnqueue(cp[0], clause.RefUndef)
		if confl := s.Propagate(); confl != clause.RefUndef {
			s.ok = false
		}
	default:
		ref := s.arena.Alloc(cp, false)
		s.clauses = append(s.clauses, ref)
		s.attachClause(ref)
	}
	return s.ok
}

// OK reports whether the formula is still possibly satisfiable: false once
// an empty clause has been derived at level 0 (spec.md §7's sticky
// trivially-unsat flag).
func (s *Solver) OK() bool { return s.ok }

func (s *Solver) attachClause(ref clause.Ref) {
	c := s.arena.Get(ref)
	if c.Size() < 2 {
		s.panicf("attachClause: clause size %d < 2", c.Size())
	}
	first, second := c.At(0), c.At(1)
	s.watches.Append(first.Neg(), clause.Watcher{Ref: ref, Blocker: second})
	s.watches.Append(second.Neg(), clause.Watcher{Ref: ref, Blocker: first})
	if c.Learnt() {
		s.stats.NumLearnts++
	} else {
		s.stats.NumClauses++
	}
}

func (s *Solver) detachClause(ref clause.Ref) {
	c := s.arena.Get(ref)
	if c.Size() <= 1 {
		s.panicf("detachClause: clause size %d <= 1", c.Size())
	}
	first, second := c.At(0), c.At(1)
	s.watches.Remove(first.Neg(), ref)
	s.watches.Remove(second.Neg(), ref)
	if c.Learnt() {
		s.stats.NumLearnts--
	} else {
		s.stats.NumClauses--
	}
}

// locked reports whether ref is the reason for its first literal's current
// assignment, i.e. whether it is unsafe to remove.
func (s *Solver) locked(ref clause.Ref) bool {
	c := s.arena.Get(ref)
	first := c.At(0)
	return s.ValueLit(first) == lit.True && s.Reason(first.Var()) == ref
}

func (s *Solver) satisfied(c *clause.Clause) bool {
	for i := 0; i < c.Size(); i++ {
		if s.ValueLit(c.At(i)) == lit.True {
			return true
		}
	}
	return false
}

// removeClause detaches and frees ref, clearing the reason of any variable
// it was locking.
func (s *Solver) removeClause(ref clause.Ref) {
	c := s.arena.Get(ref)
	s.detachClause(ref)
	if s.locked(ref) {
		s.varData[c.At(0).Var()].reason = clause.RefUndef
	}
	s.arena.Free(ref)
}

// attachSymmetricClause registers a symmetric clause derived by the ESBP
// hook, the generator-watch engine, or the selector-clause engine (spec.md
// §4.2-§4.5): lits is ordered Undef-before-True-before-False so the usual
// two-watched-literal invariant (index 1 is the False watch, if any) falls
// out for free, then the clause is handled according to its size exactly
// like §4.2's "clause is unit under the current assignment" case, except
// evaluated once at attach time instead of discovered by a later watch
// scan. stopOnFalsified gates whether an already-falsified clause is
// reported to the caller as the conflict (true for the ESBP hook, under its
// configured policy) or silently attached and left for a later watch scan
// to rediscover (false): the generator-watch and selector-clause engines
// always want the former, so they pass true unconditionally. The flag only
// applies to clauses of two or more literals: an empty or falsified unit
// clause cannot be attached and is always returned as the conflict.
func (s *Solver) attachSymmetricClause(lits []lit.Lit, compat *symmetry.CompatSet, stopOnFalsified bool) clause.Ref {
	ordered := orderByStatus(s, lits)

	if len(ordered) == 0 {
		s.ok = false
		ref := s.arena.Alloc(nil, true)
		s.arena.Get(ref).MarkSymmetric(compat)
		return ref
	}

	if len(ordered) == 1 {
		ref := s.arena.Alloc(ordered, true)
		c := s.arena.Get(ref)
		c.MarkSymmetric(compat)
		switch s.ValueLit(ordered[0]) {
		case lit.True:
			s.arena.Free(ref)
			return clause.RefUndef
		case lit.False:
			return ref
		default:
			s.uncheckedEnqueue(ordered[0], ref)
			return clause.RefUndef
		}
	}

	ref := s.arena.Alloc(ordered, true)
	c := s.arena.Get(ref)
	c.MarkSymmetric(compat)
	s.learnts = append(s.learnts, ref)
	s.attachClause(ref)

	v0, v1 := s.ValueLit(c.At(0)), s.ValueLit(c.At(1))
	switch {
	case v0 == lit.False:
		if stopOnFalsified {
			return ref
		}
	case v0 == lit.BoolUndef && v1 == lit.False:
		s.uncheckedEnqueue(c.At(0), ref)
	}
	return clause.RefUndef
}

// orderByStatus returns a copy of lits sorted Undef first, then True, then
// False, so the first one or two positions are exactly the ones a fresh
// two-watched-literal attach wants watched.
func orderByStatus(s *Solver, lits []lit.Lit) []lit.Lit {
	out := append([]lit.Lit(nil), lits...)
	rank := func(l lit.Lit) int {
		switch s.ValueLit(l) {
		case lit.BoolUndef:
			return 0
		case lit.True:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}
