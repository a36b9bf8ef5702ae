package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// propagateSelectors drives the selector-clause engine (spec.md §4.4):
// cached candidate symmetric clauses, woken up as their watched image-
// literals get assigned instead of being re-derived from scratch on every
// propagation. Every selector clause visited here is resolved exactly
// once — it is either left dormant, moved to a new watch, found stale, or
// dispatched — so it never survives to be watched on p again; only the
// still-unvisited tail of p's watch list needs to be preserved across an
// early return (mirroring §4.3's per-literal resumption cursor).
func (s *Solver) propagateSelectors() (clause.Ref, bool) {
	for s.qheadSel < len(s.trail) {
		p := s.trail[s.qheadSel]
		ws := s.sel.watchesOf(p)

		for s.selWatchCursor < len(ws) {
			k := ws[s.selWatchCursor]
			s.selWatchCursor++

			confl, unit := s.resolveSelector(k, p)
			if confl != clause.RefUndef || unit {
				s.sel.setWatches(p, append([]int(nil), ws[s.selWatchCursor:]...))
				s.selWatchCursor = 0
				if confl != clause.RefUndef {
					s.stats.SelectorConflicts++
					return confl, true
				}
				return clause.RefUndef, true
			}
		}

		s.sel.setWatches(p, nil)
		s.selWatchCursor = 0
		s.qheadSel++
	}
	return clause.RefUndef, false
}

// resolveSelector implements spec.md §4.4's three bullets for selector
// clause k, now that one of its two watched image-literals (p.Neg()) has
// become False. unit reports whether a derivation was dispatched (conflict
// or enqueue); confl is non-Undef only on the conflict outcome.
func (s *Solver) resolveSelector(k int, p lit.Lit) (confl clause.Ref, unit bool) {
	if s.sel.at(k, 0) == p.Neg() {
		s.sel.swap(k, 0, 1)
	}
	other := s.sel.at(k, 0)
	if s.ValueLit(other) == lit.True {
		return clause.RefUndef, false // dormant: satisfied by the other watch
	}

	n := s.sel.clauseLen(k)
	for i := 2; i < n; i++ {
		cand := s.sel.at(k, i)
		if s.ValueLit(cand) != lit.False {
			s.sel.swap(k, 1, i)
			s.sel.watchOn(s.sel.at(k, 1).Neg(), k)
			return clause.RefUndef, false // watch moved to a different literal
		}
	}

	propVar := s.sel.prop[k]
	origReason := s.sel.reason[k]
	genID := s.sel.gen[k]
	if s.Reason(propVar) != origReason {
		return clause.RefUndef, false // stale: propVar's reason has changed
	}
	rc := s.arena.Get(origReason)
	if rc.Symmetric() && !rc.Compat().Contains(genID) {
		return clause.RefUndef, false // generator no longer compatible, drop
	}

	s.stats.SelectorPropagations++
	g := s.group.Get(genID)
	real := g.SymmetricClause(s.copyClauseLits(origReason))

	compat := symmetry.NewCompatSet(genID)
	if rc.Symmetric() {
		compat.Intersect(rc.Compat())
	}
	real = s.minimizeDerived(real)
	s.stabilizerAugment(compat, real)

	ref := s.attachSymmetricClause(real, compat, true)
	return ref, true
}
