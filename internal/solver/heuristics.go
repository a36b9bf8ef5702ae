package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
)

// varBumpActivity increases v's activity by the current increment, ported
// from gatosat's varBumpActitivy, and rescales every variable's activity
// (and the increment itself) if the accumulator grows past a safe float
// range.
func (s *Solver) varBumpActivity(v lit.Var) {
	s.order.Bump(v, s.varInc)
	if s.order.Activity(v) > 1e100 {
		s.order.Rescale(1e-100)
		s.varInc *= 1e-100
	}
}

// varDecayActivity grows the bump increment instead of shrinking every
// variable's score, the usual exponential-decay-by-inverse-scaling trick
// (gatosat's varDecayActivity).
func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.opts.VarDecay
}

// claBumpActivity is clauseBumpActivity's direct port: it only applies to
// learnt clauses, and rescales every learnt clause's activity if the
// accumulator overflows a safe range.
func (s *Solver) claBumpActivity(ref clause.Ref) {
	c := s.arena.Get(ref)
	c.BumpActivity(s.claInc)
	if c.Activity() > 1e20 {
		for _, ref := range s.learnts {
			s.arena.Get(ref).RescaleActivity(1e-20)
		}
		s.claInc *= 1e-20
	}
}

func (s *Solver) claDecayActivity() {
	s.claInc *= 1 / float32(s.opts.ClauseDecay)
}
