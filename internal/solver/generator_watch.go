package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// propagateGenerators drives spec.md §4.3 over every literal newly pushed
// onto the trail since qheadGen last ran: for each such literal p at
// non-zero level with a reason clause R, and each generator that permutes
// var(p), either cache a selector clause for later (§4.4), derive an
// immediate unit/conflict, or skip. It returns as soon as a conflict is
// found, or as soon as a unit is derived (the caller must re-run BCP before
// resuming generator watches — spec.md's "restart propagation").
func (s *Solver) propagateGenerators() (clause.Ref, bool) {
	for s.qheadGen < len(s.trail) {
		p := s.trail[s.qheadGen]

		if s.Level(p.Var()) == 0 {
			s.qheadGen++
			s.genWatchCursor = 0
			continue
		}
		reasonRef := s.Reason(p.Var())
		if reasonRef == clause.RefUndef {
			s.qheadGen++
			s.genWatchCursor = 0
			continue
		}
		reason := s.arena.Get(reasonRef)
		reasonTainted := reason.Symmetric()
		var reasonCompat *symmetry.CompatSet
		if reasonTainted {
			reasonCompat = reason.Compat()
		}

		gens := s.group.WatchesFor(p.Var())
		for s.genWatchCursor < len(gens) {
			g := gens[s.genWatchCursor]
			s.genWatchCursor++

			if reasonTainted && !reasonCompat.Contains(g.ID()) {
				continue
			}

			undef, satisfied := s.candidateImages(g, reasonRef)
			if satisfied {
				continue
			}
			if len(undef) >= 2 {
				s.sel.add(undef, g.ID(), p.Var(), reasonRef)
				s.stats.SelectorClauses++
				continue
			}

			confl := s.deriveFromGenerator(g, reasonRef)
			s.stats.GeneratorPropagations++
			if confl != clause.RefUndef {
				s.stats.GeneratorConflicts++
				return confl, true
			}
			return clause.RefUndef, true
		}

		s.qheadGen++
		s.genWatchCursor = 0
	}
	return clause.RefUndef, false
}

// candidateImages applies g to every literal of the clause at reasonRef. If
// any image is currently True the symmetric clause is trivially satisfied;
// otherwise it returns the image literals that are currently Undef (False
// images can never change, spec.md §4.3).
func (s *Solver) candidateImages(g *symmetry.Generator, reasonRef clause.Ref) (undef []lit.Lit, satisfied bool) {
	r := s.arena.Get(reasonRef)
	for i := 0; i < r.Size(); i++ {
		img := g.Image(r.At(i))
		switch s.ValueLit(img) {
		case lit.True:
			return nil, true
		case lit.BoolUndef:
			undef = append(undef, img)
		}
	}
	return undef, false
}

// deriveFromGenerator materializes the real symmetric clause g.symmetric_
// clause(R), minimizes it, computes its compatible set (spec.md §4.5 steps
// 1 and 3), and attaches it — returning the conflict clause if it turns out
// falsified, or RefUndef if it asserted a unit (already enqueued).
func (s *Solver) deriveFromGenerator(g *symmetry.Generator, reasonRef clause.Ref) clause.Ref {
	real := g.SymmetricClause(s.copyClauseLits(reasonRef))

	compat := symmetry.NewCompatSet(g.ID())
	if rc := s.arena.Get(reasonRef); rc.Symmetric() {
		compat.Intersect(rc.Compat())
	}
	real = s.minimizeDerived(real)
	s.stabilizerAugment(compat, real)

	return s.attachSymmetricClause(real, compat, true)
}
