package solver

import (
	"math"

	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
)

// Solve runs the search driver (spec.md §4.7) under the given assumptions
// (possibly none), returning lit.True/lit.False/lit.BoolUndef exactly like
// gatosat's Solve — Undef means Interrupt was called before a verdict was
// reached, not "don't know" in any other sense (the per-restart conflict
// budget only triggers a restart; there is no global budget). A
// False caused by an assumption conflicting with the formula (rather than
// the formula itself being unsatisfiable) does not latch OK() false: only a
// conflict reached at decision level 0 does that, since that is the only
// case the empty-assumption formula itself is contradictory.
func (s *Solver) Solve(assumptions []lit.Lit) lit.Bool {
	if !s.ok {
		return lit.False
	}
	s.BuildGenerators()
	if !s.seeded {
		s.seedInitialActivity()
		s.seeded = true
	}
	s.assumptions = assumptions

	status := lit.BoolUndef
	restarts := 0
	for status == lit.BoolUndef {
		var nof int
		if s.opts.RestartPolicy == RestartLuby {
			nof = int(luby(s.opts.RestartInc, restarts)) * s.opts.RestartFirst
		} else {
			nof = int(math.Pow(s.opts.RestartInc, float64(restarts)) * float64(s.opts.RestartFirst))
		}
		status = s.search(nof)
		if status == lit.BoolUndef {
			if s.interrupted.isSet() {
				break
			}
			s.stats.Restarts++
			restarts++
		}
	}

	if status == lit.True {
		s.model = append([]lit.Bool(nil), s.assigns...)
	}
	s.cancelUntil(0)
	return status
}

// decisionOutcome disambiguates the three ways chooseNext can end an inner
// search loop, since a violated assumption and a model both present as
// "pickBranchLit returned nothing interesting" but demand opposite verdicts.
type decisionOutcome int

const (
	decisionBranch decisionOutcome = iota
	decisionSAT
	decisionAssumptionFalse
)

// search runs the bounded inner loop (spec.md §4.7's "Inner loop until
// SAT/UNSAT/limit"), generalizing gatosat's Search with the symmetry-aware
// unit-conflict handling of §4.7's bullet list and an interrupt check.
func (s *Solver) search(maxConflicts int) lit.Bool {
	conflicts := 0
	for {
		if s.interrupted.isSet() {
			s.cancelUntil(0)
			return lit.BoolUndef
		}

		confl := s.Propagate()
		if confl != clause.RefUndef {
			s.stats.Conflicts++
			conflicts++
			if s.decisionLevel() == 0 {
				s.ok = false
				return lit.False
			}
			res := s.analyze(confl)
			s.cancelUntil(res.backtrackLevel)
			if !s.applyLearnt(res) {
				return lit.False
			}
			s.varDecayActivity()
			s.claDecayActivity()
			continue
		}

		if maxConflicts >= 0 && conflicts > maxConflicts {
			s.cancelUntil(0)
			return lit.BoolUndef
		}

		if s.decisionLevel() == 0 {
			s.simplify()
		}
		if len(s.learnts)-s.NumAssigns() >= int(s.maxLearnts) {
			if s.opts.ReduceDB != ReduceDBNever {
				s.stats.ReduceDBRuns++
			}
			s.maxLearnts *= s.opts.LearntGrowth
			s.reduceDB()
		}

		next, outcome := s.chooseNext()
		switch outcome {
		case decisionSAT:
			return lit.True
		case decisionAssumptionFalse:
			return lit.False
		}
		s.stats.Decisions++
		s.newDecisionLevel()
		s.uncheckedEnqueue(next, clause.RefUndef)
	}
}

// applyLearnt dispatches the learnt clause an analyze call produced (spec.md
// §4.7's "Unit learnt clause"/"Larger learnt clause" bullets). A unit is
// also pushed through the generators: a symmetric unit through those in its
// compatible set, a non-symmetric unit through every generator. It returns
// false only when such a generator image contradicts an existing top-level
// assignment — an immediate, unconditional UNSAT.
func (s *Solver) applyLearnt(res analyzeResult) bool {
	if len(res.lits) == 1 {
		l := res.lits[0]
		s.uncheckedEnqueue(l, clause.RefUndef)
		gens := s.group.All()
		if res.outSym {
			s.markForbidUnit(l)
			gens = nil
			for _, id := range res.compat.IDs() {
				gens = append(gens, s.group.Get(id))
			}
		}
		for _, g := range gens {
			if !g.Permutes(l) {
				continue
			}
			img := g.Image(l)
			switch s.ValueLit(img) {
			case lit.BoolUndef:
				s.uncheckedEnqueue(img, clause.RefUndef)
			case lit.False:
				s.ok = false
				return false
			}
		}
		return true
	}

	ref := s.arena.Alloc(res.lits, true)
	if res.outSym {
		s.arena.Get(ref).MarkSymmetric(res.compat)
	}
	s.learnts = append(s.learnts, ref)
	s.attachClause(ref)
	s.claBumpActivity(ref)
	s.uncheckedEnqueue(res.lits[0], ref)
	return true
}

// chooseNext picks the next literal to force: the next unsatisfied
// assumption if any remain, else a branching literal from the order heap
// (spec.md §4.7's "honor the next unsatisfied assumption or pick a
// branching literal").
func (s *Solver) chooseNext() (lit.Lit, decisionOutcome) {
	for s.decisionLevel() < len(s.assumptions) {
		a := s.assumptions[s.decisionLevel()]
		switch s.ValueLit(a) {
		case lit.True:
			// Already implied: consume this assumption level without
			// branching, keeping decisionLevel() aligned to the
			// assumption index for the next iteration.
			s.newDecisionLevel()
			continue
		case lit.False:
			return lit.Undef, decisionAssumptionFalse
		default:
			return a, decisionBranch
		}
	}
	l := s.pickBranchLit()
	if l == lit.Undef {
		return lit.Undef, decisionSAT
	}
	return l, decisionBranch
}

// pickBranchLit selects a branching variable from the order heap (skipping
// assigned or non-decision variables) and its polarity via phase-saving,
// overridden by a user-forced polarity if set, else randomly with
// Options.RandomPolarityFreq probability (spec.md §4.7).
func (s *Solver) pickBranchLit() lit.Lit {
	v := lit.VarUndef
	for v == lit.VarUndef || s.ValueVar(v) != lit.BoolUndef || !s.decisionVar[v] {
		if s.order.Empty() {
			return lit.Undef
		}
		v = s.order.RemoveMin()
	}
	return lit.New(v, s.branchSign(v))
}

func (s *Solver) branchSign(v lit.Var) bool {
	if s.userPol[v] != lit.BoolUndef {
		return s.userPol[v] == lit.False
	}
	if s.opts.RandomPolarityFreq > 0 && s.rng.Float64() < s.opts.RandomPolarityFreq {
		return s.rng.Intn(2) == 0
	}
	return s.polarity[v]
}

// seedInitialActivity runs once, on the first Solve call: every variable's
// activity and default polarity are seeded from its literal-occurrence
// counts across the original clauses, weighted by 1/|C|^2 (spec.md §4.7's
// closing paragraph) — clauses with fewer literals influence the seeding
// more strongly, since a variable's role is more decisive in a short clause.
func (s *Solver) seedInitialActivity() {
	counts := make(map[lit.Lit]float64, 2*s.NumVars())
	for _, ref := range s.clauses {
		c := s.arena.Get(ref)
		w := 1.0 / float64(c.Size()*c.Size())
		for i := 0; i < c.Size(); i++ {
			counts[c.At(i)] += w
		}
	}
	for v := lit.Var(0); int(v) < s.NumVars(); v++ {
		pos, neg := counts[lit.New(v, false)], counts[lit.New(v, true)]
		if pos+neg > 0 {
			s.order.Bump(v, pos+neg)
		}
		s.polarity[v] = neg > pos
	}
}

// luby computes the Luby restart sequence value for the i'th restart,
// ported directly from gatosat's luby.
func luby(y float64, x int) float64 {
	size, seq := 1, 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) >> 1
		seq--
		x = x % size
	}
	return math.Pow(y, float64(seq))
}
