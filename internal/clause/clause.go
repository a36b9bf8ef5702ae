// Package clause implements the clause arena: a bump-allocated store of
// variable-length clauses addressed by opaque Ref handles (array indices,
// not pointers) so garbage collection can relocate clause storage without
// invalidating references held in watch lists, reasons, or clause lists.
//
// This generalizes gatosat's clauseallocator.go/clause.go, whose own
// comment flags the original map[ClauseReference]*Clause as a known
// performance problem ("the performance of the map is really bad, we
// should replace it with the array"); Arena does exactly that.
package clause

import (
	"fmt"
	"math"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// Ref is an opaque handle into an Arena: a slot index, not a pointer.
type Ref uint32

// RefUndef marks the absence of a clause (e.g. a decision's reason).
const RefUndef Ref = math.MaxUint32

// Clause is a variable-length disjunction of literals plus the bookkeeping
// the search loop needs: the learnt/symmetry flags, an activity score (only
// meaningful for learnt clauses), an LBD (glue) value, and — for clauses
// derived via a symmetry argument — the set of generators still compatible
// with it (spec.md §4.5).
//
// Invariant: for clauses of size >= 2, exactly Data[0] and Data[1] are
// watched; if the clause is attached and not satisfied, the false watch is
// at index 1.
type Clause struct {
	Data    []lit.Lit
	learnt  bool
	sym     bool
	act     float32
	lbd     int
	compat  *symmetry.CompatSet // nil for non-symmetric clauses
}

// New builds a detached clause. Callers attach it via a Solver/arena pairing
// before it participates in propagation.
func New(lits []lit.Lit, learnt bool) *Clause {
	c := &Clause{Data: append([]lit.Lit(nil), lits...), learnt: learnt}
	return c
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int { return len(c.Data) }

// Learnt reports whether the clause was derived during search rather than
// being part of the original formula.
func (c *Clause) Learnt() bool { return c.learnt }

// At returns the literal at index i.
func (c *Clause) At(i int) lit.Lit { return c.Data[i] }

// Last returns the final literal of the clause.
func (c *Clause) Last() lit.Lit { return c.Data[len(c.Data)-1] }

// Pop drops the final literal (used when shrinking out false literals during
// satisfied-clause trimming).
func (c *Clause) Pop() {
	if len(c.Data) == 0 {
		panic(fmt.Errorf("clause: pop on empty clause"))
	}
	c.Data = c.Data[:len(c.Data)-1]
}

// Activity returns the clause's learnt-clause activity score.
func (c *Clause) Activity() float32 { return c.act }

// BumpActivity adds inc to the clause's activity.
func (c *Clause) BumpActivity(inc float32) { c.act += inc }

// RescaleActivity multiplies the activity by factor, used to keep the
// accumulator within a safe float range.
func (c *Clause) RescaleActivity(factor float32) { c.act *= factor }

// LBD returns the clause's literal-block distance (glue).
func (c *Clause) LBD() int { return c.lbd }

// SetLBD records the clause's literal-block distance.
func (c *Clause) SetLBD(v int) { c.lbd = v }

// Symmetric reports whether the clause was derived via a symmetry argument,
// or from a reason chain that was (spec.md §3's "symmetry flag").
func (c *Clause) Symmetric() bool { return c.sym }

// Compat returns the clause's compatible-generator set, or nil if the
// clause is not symmetry-derived.
func (c *Clause) Compat() *symmetry.CompatSet { return c.compat }

// MarkSymmetric flags the clause as symmetry-derived and attaches its
// (already-computed) compatible generator set. The set is owned by the
// clause from this point on.
func (c *Clause) MarkSymmetric(compat *symmetry.CompatSet) {
	c.sym = true
	c.compat = compat
}

// Swap exchanges the literals at positions i and j, used by the watcher
// scan to move the false/new watch into place.
func (c *Clause) Swap(i, j int) { c.Data[i], c.Data[j] = c.Data[j], c.Data[i] }

// Arena owns clause storage. Allocation returns a Ref (array index); freed
// slots are nil'd and counted as waste so the solver can trigger GC once
// waste crosses a configured fraction of the arena (spec.md §4.1, default
// 0.20).
type Arena struct {
	slots []*Clause
	waste int
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc stores lits as a new clause and returns its Ref.
func (a *Arena) Alloc(lits []lit.Lit, learnt bool) Ref {
	c := New(lits, learnt)
	ref := Ref(len(a.slots))
	a.slots = append(a.slots, c)
	return ref
}

// Get dereferences ref. It panics on a freed or out-of-range ref: arena
// handles are never supposed to outlive the clause they name except across
// a Relocate, which always produces fresh, valid refs.
func (a *Arena) Get(ref Ref) *Clause {
	if int(ref) >= len(a.slots) || a.slots[ref] == nil {
		panic(fmt.Errorf("clause: dereference of freed/invalid ref %d", ref))
	}
	return a.slots[ref]
}

// Free releases the clause at ref. The slot becomes unusable until the next
// Relocate compacts it away.
func (a *Arena) Free(ref Ref) {
	if int(ref) >= len(a.slots) || a.slots[ref] == nil {
		panic(fmt.Errorf("clause: double free of ref %d", ref))
	}
	a.slots[ref] = nil
	a.waste++
}

// Len returns the number of slots ever allocated, live or freed.
func (a *Arena) Len() int { return len(a.slots) }

// WasteFraction is the fraction of allocated slots that are currently free,
// the trigger condition for garbage collection.
func (a *Arena) WasteFraction() float64 {
	if len(a.slots) == 0 {
		return 0
	}
	return float64(a.waste) / float64(len(a.slots))
}

// Relocate compacts every live clause for which keep returns true into a
// fresh Arena, invoking remap(old, new) for each survivor in allocation
// order so the caller can rewrite every outstanding handle: watch lists,
// reasons, and the clauses/learnts vectors (spec.md §4.1). Clauses for
// which keep returns false (already Free'd, or explicitly dropped by the
// caller) are left behind.
func (a *Arena) Relocate(keep func(Ref) bool, remap func(old, new Ref)) *Arena {
	fresh := NewArena()
	for ref := Ref(0); int(ref) < len(a.slots); ref++ {
		c := a.slots[ref]
		if c == nil || !keep(ref) {
			continue
		}
		newRef := Ref(len(fresh.slots))
		fresh.slots = append(fresh.slots, c)
		remap(ref, newRef)
	}
	return fresh
}
