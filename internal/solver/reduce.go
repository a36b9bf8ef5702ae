package solver

import "sort"

// reduceDB culls the learnt-clause database, ported from gatosat's reduceDB:
// sort learnts worst-first (binary clauses last, then by activity), then
// drop the bottom half plus anything whose activity is below claInc divided
// by the number of learnts, skipping binary clauses and any clause currently
// locked as a reason. Options.ReduceDB gates
// whether this ever runs at all (spec.md §9's first Open Question,
// DESIGN.md).
func (s *Solver) reduceDB() {
	if s.opts.ReduceDB == ReduceDBNever || len(s.learnts) == 0 {
		return
	}

	sort.Slice(s.learnts, func(i, j int) bool {
		x, y := s.arena.Get(s.learnts[i]), s.arena.Get(s.learnts[j])
		if x.Size() > 2 {
			return y.Size() == 2 || x.Activity() < y.Activity()
		}
		return false
	})

	limit := s.claInc / float32(len(s.learnts))
	out := s.learnts[:0]
	for i, ref := range s.learnts {
		c := s.arena.Get(ref)
		if c.Size() > 2 && !s.locked(ref) && (i < len(s.learnts)/2 || c.Activity() < limit) {
			s.stats.RemovedClauses++
			s.removeClause(ref)
			continue
		}
		out = append(out, ref)
	}
	s.learnts = out
}
