package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
)

// uncheckedEnqueue assigns p True and pushes it onto the trail with from as
// its reason, without checking that p was previously unassigned (the
// caller must already know that). Mirrors gatosat's UncheckedEnqueue, plus
// the forbid_units bookkeeping the source's uncheckedEnqueue adds
// (original_source/minisat/core/Solver.cc): a top-level literal enqueued
// from a symmetry-tainted reason — or whose reason mentions the complement
// of an existing forbid_unit — is itself a forbid_unit (spec.md §3).
func (s *Solver) uncheckedEnqueue(p lit.Lit, from clause.Ref) {
	if s.ValueLit(p) != lit.BoolUndef {
		s.panicf("uncheckedEnqueue: %v is already assigned", p)
	}
	s.assigns[p.Var()] = lit.Xor(p.Sign())
	s.varData[p.Var()] = varData{reason: from, level: s.decisionLevel()}
	s.trail = append(s.trail, p)

	if s.decisionLevel() == 0 && from != clause.RefUndef {
		c := s.arena.Get(from)
		tainted := c.Symmetric()
		if !tainted {
			for i := 0; i < c.Size(); i++ {
				if s.forbidUnits[c.At(i).Neg()] {
					tainted = true
					break
				}
			}
		}
		if tainted {
			s.markForbidUnit(p)
		}
	}
}

func (s *Solver) markForbidUnit(p lit.Lit) {
	if !s.forbidUnits[p] {
		s.forbidUnits[p] = true
		s.stats.ForbidUnits++
	}
}

// newDecisionLevel opens a new decision level, recording the trail
// boundary.
func (s *Solver) newDecisionLevel() {
	s.trailLim = append(s.trailLim, len(s.trail))
}

// cancelUntil unassigns every variable assigned after level, restoring them
// to the variable-order heap, and truncates the propagation queue heads
// (spec.md §8 property 4). Selector clauses are discarded entirely when
// cutting back to level 0 (spec.md §3's lifecycle rule, §4.4).
func (s *Solver) cancelUntil(level int) {
	if s.decisionLevel() <= level {
		return
	}
	for i := len(s.trail) - 1; i >= s.trailLim[level]; i-- {
		v := s.trail[i].Var()
		s.assigns[v] = lit.BoolUndef
		s.polarity[v] = s.trail[i].Sign()
		s.insertVarOrder(v)
	}
	s.qhead = s.trailLim[level]
	if s.qheadSel > s.qhead {
		s.qheadSel = s.qhead
	}
	if s.qheadGen >= s.qhead {
		// The literal the generator-watch cursor belonged to is gone.
		s.qheadGen = s.qhead
		s.genWatchCursor = 0
	}
	s.trail = s.trail[:s.qhead]
	s.trailLim = s.trailLim[:level]
	s.oracle.UpdateCancel(level)

	if level == 0 {
		s.sel.reset()
		s.stats.SelectorClauses = 0
		s.qheadSel = 0
		s.qheadGen = 0
	}
}
