package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// Propagate drives unit propagation to a fixpoint (spec.md §4.2). Three
// engines share the trail: the plain two-watched-literal BCP over
// s.clauses/s.learnts, the selector-clause engine (§4.4), and the
// generator-watch engine (§4.3). Whenever one of the latter two derives a
// new trail literal, BCP has fallen behind and must run again before they
// resume — the source's `goto StartPropagate` becomes, here, just looping
// this function until a full pass makes no further progress.
func (s *Solver) Propagate() clause.Ref {
	for {
		if confl := s.propagateBCP(); confl != clause.RefUndef {
			return confl
		}
		if confl, progressed := s.propagateSelectors(); confl != clause.RefUndef {
			return confl
		} else if progressed {
			continue
		}
		if confl, progressed := s.propagateGenerators(); confl != clause.RefUndef {
			return confl
		} else if progressed {
			continue
		}
		return clause.RefUndef
	}
}

// propagateBCP is gatosat's Propagate, generalized with the ESBP hook
// (spec.md §4.2 step 1) run on every newly-dequeued literal before its
// watch list is scanned.
func (s *Solver) propagateBCP() clause.Ref {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		s.stats.Propagations++

		if confl := s.runESBPHook(p); confl != clause.RefUndef {
			return confl
		}

		ws := s.watches.Of(p)
		i, j := 0, 0
		var confl clause.Ref = clause.RefUndef
		for i < len(ws) {
			blocker := ws[i].Blocker
			if s.ValueLit(blocker) == lit.True {
				ws[j] = ws[i]
				i++
				j++
				continue
			}

			ref := ws[i].Ref
			i++
			c := s.arena.Get(ref)
			falseLit := p.Neg()
			if c.At(0) == falseLit {
				c.Swap(0, 1)
			}
			first := c.At(0)
			newWatcher := clause.Watcher{Ref: ref, Blocker: first}
			if first != blocker && s.ValueLit(first) == lit.True {
				ws[j] = newWatcher
				j++
				continue
			}

			moved := false
			for k := 2; k < c.Size(); k++ {
				if s.ValueLit(c.At(k)) != lit.False {
					c.Swap(1, k)
					s.watches.Append(c.At(1).Neg(), clause.Watcher{Ref: ref, Blocker: first})
					moved = true
					break
				}
			}
			if moved {
				continue
			}

			ws[j] = newWatcher
			j++
			if s.ValueLit(first) == lit.False {
				confl = ref
				for i < len(ws) {
					ws[j] = ws[i]
					i++
					j++
				}
				break
			}
			s.uncheckedEnqueue(first, ref)
		}
		s.watches.SetLen(p, j)
		if confl != clause.RefUndef {
			s.qhead = len(s.trail)
			return confl
		}
	}
	return clause.RefUndef
}

// runESBPHook implements spec.md §4.2 step 1: ask the oracle whether p
// triggers an effective symmetric Boolean propagator, and if so inject it.
func (s *Solver) runESBPHook(p lit.Lit) clause.Ref {
	s.oracle.UpdateNotify(p)
	lits, justifiedBy, ok := s.oracle.ClauseToInject()
	if !ok {
		return clause.RefUndef
	}
	s.stats.ESBPInjections++
	compat := symmetry.NewCompatSet(justifiedBy...)
	s.stabilizerAugment(compat, lits)
	return s.attachSymmetricClause(lits, compat, s.opts.StopOnESBPConflict)
}

// stabilizerAugment implements spec.md §4.5 step 3: every generator not
// already in compat that setwise-fixes lits may be safely added.
func (s *Solver) stabilizerAugment(compat *symmetry.CompatSet, lits []lit.Lit) {
	for _, g := range s.group.All() {
		if compat.Contains(g.ID()) {
			continue
		}
		if g.Stabilizes(lits) {
			compat.Add(g.ID())
		}
	}
}

// copyClauseLits snapshots ref's literals, since SymmetricClause must not
// alias arena storage the caller may go on to free or relocate.
func (s *Solver) copyClauseLits(ref clause.Ref) []lit.Lit {
	c := s.arena.Get(ref)
	out := make([]lit.Lit, c.Size())
	for i := 0; i < c.Size(); i++ {
		out[i] = c.At(i)
	}
	return out
}
