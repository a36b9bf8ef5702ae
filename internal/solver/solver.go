// Package solver implements the symmetry-aware CDCL engine spec.md
// describes: the two-watched-literal propagator, First-UIP conflict
// analysis with non-chronological backtracking, the restart/reduction
// policy, the clause arena with garbage collection, and the symmetry
// module (ESBP injection, the selector-clause engine, and
// compatible-generator-set tracking). It is ported from gatosat's
// solver.go, generalized into an importable package and extended with the
// symmetry subsystems the source (original_source/minisat/core/Solver.cc,
// patched by original_source/sat_symmetry) adds on top of plain MiniSat.
package solver

import (
	"fmt"
	"math/rand"

	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/order"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// varData mirrors gatosat's VarData: the reason clause and decision level
// recorded when a variable is assigned.
type varData struct {
	reason clause.Ref
	level  int
}

// Solver is a single-threaded, non-reentrant CDCL solver with symmetry-
// aware propagation and learning (spec.md §5). No public method may be
// called concurrently with another, nor with itself; the sole concurrency
// concession is Interrupt, safe to call from any goroutine.
type Solver struct {
	opts Options

	arena   *clause.Arena
	clauses []clause.Ref
	learnts []clause.Ref
	watches *clause.WatchList

	assigns     []lit.Bool
	varData     []varData
	decisionVar []bool
	polarity    []bool     // phase-saving: last assigned polarity (true = negative)
	userPol     []lit.Bool // optional user-forced polarity, BoolUndef if unset
	seen        []bool

	trail    []lit.Lit
	trailLim []int
	qhead    int
	qheadSel int
	qheadGen int

	order    *order.Heap
	varInc   float64
	claInc   float32

	nextVar lit.Var
	ok      bool
	model   []lit.Bool

	group       *symmetry.Group
	oracle      symmetry.Oracle
	forbidUnits map[lit.Lit]bool
	sel         *selectorStore
	// genWatchCursor remembers how far §4.3 got through the generator
	// watch list of the literal currently at trail[qheadGen], so that a
	// propagate() call resumed without backtracking past that literal
	// does not re-examine already-visited generators (spec.md §4.3).
	genWatchCursor int
	// selWatchCursor is the same resumption bookkeeping for §4.4, over the
	// selector-clause watch list of the literal at trail[qheadSel].
	selWatchCursor int

	maxLearnts  float64
	assumptions []lit.Lit
	seeded      bool
	groupBuilt  bool
	rng         *rand.Rand

	interrupted interruptFlag

	stats Stats
}

// NewSolver returns a ready-to-use Solver configured with opts exactly as
// given: zero-valued fields are not replaced by defaults. Pass
// DefaultOptions() (optionally mutated) rather than a bare Options{}.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:        opts,
		arena:       clause.NewArena(),
		watches:     clause.NewWatchList(),
		order:       order.New(),
		ok:          true,
		varInc:      1.0,
		claInc:      1.0,
		oracle:      symmetry.NullOracle{},
		group:       symmetry.NewGroup(),
		forbidUnits: make(map[lit.Lit]bool),
		sel:         newSelectorStore(),
		maxLearnts:  opts.InitialMaxLearnts,
		rng:         rand.New(rand.NewSource(opts.RandomPolaritySeed)),
	}
	return s
}

// NewVar creates and returns a fresh problem variable.
func (s *Solver) NewVar() lit.Var {
	v := s.nextVar
	s.nextVar++
	s.assigns = append(s.assigns, lit.BoolUndef)
	s.varData = append(s.varData, varData{reason: clause.RefUndef, level: 0})
	s.seen = append(s.seen, false)
	s.decisionVar = append(s.decisionVar, true)
	s.polarity = append(s.polarity, true) // default phase: negative, matches MiniSat's polarity default
	s.userPol = append(s.userPol, lit.BoolUndef)
	s.watches.Grow(v)
	s.order.Grow(v)
	s.setDecisionVar(v, true)
	return v
}

// NumVars returns the number of variables created so far.
func (s *Solver) NumVars() int { return int(s.nextVar) }

// NumAssigns returns the current trail length.
func (s *Solver) NumAssigns() int { return len(s.trail) }

// SetOracle installs the ESBP oracle the propagator's ESBP hook consults
// (spec.md §4.2 step 1). The default is symmetry.NullOracle{}.
func (s *Solver) SetOracle(o symmetry.Oracle) { s.oracle = o }

// AddGenerator registers an external symmetry generator with the solver
// (spec.md §2/§6's add_generator(Generator) façade operation): the
// automorphism-generator process that discovered the formula's symmetries
// (or an internal/format BreakID/Bliss file reader standing in for it)
// calls this once per generator. Every generator must be added before the
// first Solve call; BuildGenerators (which Solve calls automatically) locks
// the group and computes the flat generator-watch index §3 describes.
func (s *Solver) AddGenerator(perm *symmetry.Generator) symmetry.GenID {
	return s.group.Add(perm)
}

// BuildGenerators locks the generator group and builds its watch index, if
// it hasn't been built already. Solve calls this itself; exported so
// callers that drive propagation directly (without going through Solve) can
// also finalize a group built via AddGenerator.
func (s *Solver) BuildGenerators() {
	if s.groupBuilt {
		return
	}
	s.group.Build(s.NumVars())
	s.groupBuilt = true
}

// SetPolarity forces v's decision polarity, overriding phase-saving
// (spec.md §4.7). Pass lit.BoolUndef to clear a previously-forced polarity.
func (s *Solver) SetPolarity(v lit.Var, b lit.Bool) { s.userPol[v] = b }

// SetDecisionVar marks whether v is eligible to be a branching decision
// (e.g. an auxiliary Tseitin variable introduced by preprocessing would not
// be).
func (s *Solver) SetDecisionVar(v lit.Var, eligible bool) { s.setDecisionVar(v, eligible) }

func (s *Solver) setDecisionVar(v lit.Var, eligible bool) {
	s.decisionVar[v] = eligible
	s.insertVarOrder(v)
}

func (s *Solver) insertVarOrder(v lit.Var) {
	if !s.order.InHeap(v) && s.decisionVar[v] {
		s.order.Push(v)
	}
}

// ValueVar returns the current ternary assignment of v.
func (s *Solver) ValueVar(v lit.Var) lit.Bool { return s.assigns[v] }

// ValueLit returns the current ternary value of literal p, accounting for
// its sign.
func (s *Solver) ValueLit(p lit.Lit) lit.Bool {
	b := s.assigns[p.Var()]
	if b == lit.BoolUndef {
		return lit.BoolUndef
	}
	if p.Sign() {
		return flip(b)
	}
	return b
}

func flip(b lit.Bool) lit.Bool {
	if b == lit.True {
		return lit.False
	}
	return lit.True
}

func (s *Solver) decisionLevel() int { return len(s.trailLim) }

// Reason returns v's reason clause, or clause.RefUndef for a decision or a
// top-level unit.
func (s *Solver) Reason(v lit.Var) clause.Ref { return s.varData[v].reason }

// Level returns the decision level at which v was assigned.
func (s *Solver) Level(v lit.Var) int { return s.varData[v].level }

// Interrupt asynchronously requests the search driver stop at the next
// inner-loop boundary and return lit.BoolUndef (spec.md §5). Safe to call
// from any goroutine.
func (s *Solver) Interrupt() { s.interrupted.set() }

// Model returns v's value in the model found by the most recent successful
// Solve call. It is only meaningful after Solve returned lit.True.
func (s *Solver) Model(v lit.Var) bool {
	return s.model[v] == lit.True
}

func (s *Solver) panicf(format string, args ...interface{}) {
	panic(fmt.Errorf("solver: "+format, args...))
}
