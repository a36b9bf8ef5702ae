package symmetry

import "github.com/lip6/ESBP-SEL/internal/lit"

// Oracle is the capability set spec.md §9 abstracts the ESBP injector
// behind: {updateNotify, updateCancel, clauseToInject}. The core propagator
// (internal/solver) calls UpdateNotify on every newly-enqueued literal and
// ClauseToInject to ask whether an effective symmetric Boolean propagator
// should be attached as a learnt clause right now (spec.md §4.2 step 1).
// Tagged implementations (BreakID-style precomputed tables, a Bliss/Saucy
// on-the-fly generator, ...) live behind this interface; the propagator
// never knows which.
type Oracle interface {
	// UpdateNotify informs the oracle that p was just assigned.
	UpdateNotify(p lit.Lit)
	// UpdateCancel informs the oracle that the trail was cut back to level.
	UpdateCancel(level int)
	// ClauseToInject returns a candidate symmetric clause triggered by the
	// most recent UpdateNotify, if any, and the generators that justify it
	// (used to seed the clause's compatible set via stabilizer
	// intersection, spec.md §4.5).
	ClauseToInject() (lits []lit.Lit, justifiedBy []GenID, ok bool)
}

// NullOracle never injects anything. It is the default when no symmetry
// file / ESBP table is supplied, and lets the propagator's ESBP hook be a
// no-op without special-casing nil.
type NullOracle struct{}

func (NullOracle) UpdateNotify(lit.Lit)                                   {}
func (NullOracle) UpdateCancel(int)                                       {}
func (NullOracle) ClauseToInject() (lits []lit.Lit, justifiedBy []GenID, ok bool) {
	return nil, nil, false
}

// TableOracle is a BreakID-style oracle: a precomputed table mapping a
// triggering literal to an effective symmetric Boolean propagator clause
// and the generators that justify it. This is the kind of artifact an
// external automorphism-generator process (spec.md §1) would hand the
// solver alongside the raw generator file.
type TableOracle struct {
	table   map[lit.Lit][]lit.Lit
	justify map[lit.Lit][]GenID
	pending lit.Lit
	hasPend bool
}

// NewTableOracle builds an oracle from a precomputed ESBP table.
func NewTableOracle(table map[lit.Lit][]lit.Lit, justify map[lit.Lit][]GenID) *TableOracle {
	return &TableOracle{table: table, justify: justify}
}

func (o *TableOracle) UpdateNotify(p lit.Lit) {
	if _, ok := o.table[p]; ok {
		o.pending = p
		o.hasPend = true
	}
}

func (o *TableOracle) UpdateCancel(int) {
	o.hasPend = false
}

func (o *TableOracle) ClauseToInject() (lits []lit.Lit, justifiedBy []GenID, ok bool) {
	if !o.hasPend {
		return nil, nil, false
	}
	p := o.pending
	o.hasPend = false
	cl, exists := o.table[p]
	if !exists {
		return nil, nil, false
	}
	return cl, o.justify[p], true
}
