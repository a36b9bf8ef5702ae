package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// analyzeResult is everything Search needs to act on a learnt clause:
// gatosat's (learntClause, backtrackLevel) pair, plus the symmetry-subsystem
// bits spec.md §4.6 asks conflict analysis to track on the side.
type analyzeResult struct {
	lits          []lit.Lit
	backtrackLevel int
	outSym        bool
	compat        *symmetry.CompatSet // nil unless outSym
	forbidUnits   []lit.Lit           // forbid_unit literals encountered during the walk
}

// analyze performs classical First-UIP conflict analysis (spec.md §4.6),
// generalizing gatosat's Analyze: alongside the learnt clause and backtrack
// level, it tracks whether the derivation crossed any symmetry-tainted
// reason or forbid_unit complement (outSym), accumulates every compatible
// set seen along the way, and collects every forbid_unit literal
// encountered, so the caller can finalize the learnt clause's own
// compatible generator set per spec.md §4.5.
func (s *Solver) analyze(confl clause.Ref) analyzeResult {
	var p lit.Lit = lit.Undef
	pathCount := 0
	idx := len(s.trail) - 1

	learnt := []lit.Lit{lit.Undef} // room for the asserting literal
	outSym := false
	var compatSets []*symmetry.CompatSet
	forbidSeen := map[lit.Lit]bool{}
	var forbidUnits []lit.Lit

	for {
		if confl == clause.RefUndef {
			s.panicf("analyze: conflict ref is undefined mid-walk")
		}
		c := s.arena.Get(confl)
		if c.Learnt() {
			s.claBumpActivity(confl)
		}
		if c.Symmetric() {
			outSym = true
			compatSets = append(compatSets, c.Compat())
		}

		start := 0
		if p != lit.Undef {
			start = 1
		}
		for i := start; i < c.Size(); i++ {
			q := c.At(i)
			if u := q.Neg(); s.forbidUnits[u] {
				outSym = true
				if !forbidSeen[u] {
					forbidSeen[u] = true
					forbidUnits = append(forbidUnits, u)
				}
			}
			if s.seen[q.Var()] || s.Level(q.Var()) == 0 {
				continue
			}
			s.varBumpActivity(q.Var())
			s.seen[q.Var()] = true
			if s.Level(q.Var()) >= s.decisionLevel() {
				pathCount++
			} else {
				learnt = append(learnt, q)
			}
		}

		for {
			p = s.trail[idx]
			idx--
			if s.seen[p.Var()] {
				break
			}
		}
		confl = s.Reason(p.Var())
		s.seen[p.Var()] = false
		pathCount--
		if pathCount <= 0 {
			break
		}
	}
	learnt[0] = p.Neg()

	toClear := append([]lit.Lit(nil), learnt...)
	litsSet := make(map[lit.Lit]bool, len(learnt))
	for _, l := range learnt {
		litsSet[l] = true
	}
	learnt = s.basicMinimize(learnt, litsSet, outSym)

	backtrack := 0
	if len(learnt) > 1 {
		maxIdx := 1
		for i := 2; i < len(learnt); i++ {
			if s.Level(learnt[i].Var()) > s.Level(learnt[maxIdx].Var()) {
				maxIdx = i
			}
		}
		backtrack = s.Level(learnt[maxIdx].Var())
		learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
	}

	for _, l := range toClear {
		s.seen[l.Var()] = false
	}

	res := analyzeResult{lits: learnt, backtrackLevel: backtrack, outSym: outSym, forbidUnits: forbidUnits}
	if outSym {
		res.compat = s.finalizeCompatSet(compatSets, forbidUnits, learnt)
	}
	return res
}

// finalizeCompatSet implements spec.md §4.5 in full: intersect every
// tainted reason's compatible set (step 1), drop any generator whose image
// of an encountered forbid_unit literal is not itself top-level true (step
// 2), then augment with the stabilizer of the final learnt clause (step 3).
func (s *Solver) finalizeCompatSet(compatSets []*symmetry.CompatSet, forbidUnits []lit.Lit, lits []lit.Lit) *symmetry.CompatSet {
	compat := symmetry.IntersectAll(compatSets)

	for _, u := range forbidUnits {
		for _, id := range compat.IDs() {
			g := s.group.Get(id)
			img := g.Image(u)
			if !(s.ValueLit(img) == lit.True && s.Level(img.Var()) == 0) {
				compat.Remove(id)
			}
		}
	}

	s.stabilizerAugment(compat, lits)
	return compat
}
