package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
)

// simplify runs spec.md §4.7's top-level simplification, only ever called
// at decision level 0: drop clauses already satisfied at level 0 (their
// literals can never change again) and trigger a GC pass if the arena has
// accumulated enough freed slots.
func (s *Solver) simplify() {
	if !s.ok {
		return
	}
	s.clauses = s.removeSatisfied(s.clauses)
	s.learnts = s.removeSatisfied(s.learnts)
	s.maybeGC()
}

func (s *Solver) removeSatisfied(refs []clause.Ref) []clause.Ref {
	out := refs[:0]
	for _, ref := range refs {
		if s.satisfied(s.arena.Get(ref)) {
			s.removeClause(ref)
			continue
		}
		out = append(out, ref)
	}
	return out
}

// maybeGC compacts the clause arena once its freed-slot fraction crosses
// Options.ArenaWasteThreshold (spec.md §4.1). Only called from simplify, so
// decisionLevel() is 0: the selector-clause store is already empty
// (cancelUntil(0) clears it). Every live arena slot is kept, including unit
// symmetric clauses that serve as reasons without being listed in s.clauses
// or s.learnts, so reasons are remapped through the same table; watch lists
// are rebuilt from those two lists alone after relocation.
func (s *Solver) maybeGC() {
	if s.arena.WasteFraction() < s.opts.ArenaWasteThreshold {
		return
	}
	s.stats.GCRuns++

	remap := make(map[clause.Ref]clause.Ref, len(s.clauses)+len(s.learnts))
	fresh := s.arena.Relocate(
		func(clause.Ref) bool { return true },
		func(old, new clause.Ref) { remap[old] = new },
	)
	s.arena = fresh

	for i, ref := range s.clauses {
		s.clauses[i] = remap[ref]
	}
	for i, ref := range s.learnts {
		s.learnts[i] = remap[ref]
	}
	for v := lit.Var(0); int(v) < s.NumVars(); v++ {
		if r := s.varData[v].reason; r != clause.RefUndef {
			s.varData[v].reason = remap[r]
		}
	}

	s.watches = clause.NewWatchList()
	for v := lit.Var(0); int(v) < s.NumVars(); v++ {
		s.watches.Grow(v)
	}
	s.stats.NumClauses, s.stats.NumLearnts = 0, 0
	for _, ref := range s.clauses {
		s.attachClause(ref)
	}
	for _, ref := range s.learnts {
		s.attachClause(ref)
	}
}
