package solver

import (
	"github.com/lip6/ESBP-SEL/internal/clause"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// selectorStore is the compact representation of pending symmetric clauses
// derived from reasons during propagation (spec.md §3's "Selector clause
// store"): a flat literal buffer sliced by offsets, parallel generator/
// source-variable arrays, and per-literal watch vectors. It is entirely
// discarded whenever the trail is cut back to level 0 — selector clauses
// are cheap to regenerate and reference assignments that no longer exist.
type selectorStore struct {
	lits   []lit.Lit        // sel_lits
	idx    []int            // sel_idx, len == len(gen)+1
	gen    []symmetry.GenID // sel_gen[k]: the generator that produced clause k
	prop   []lit.Var        // sel_prop[k]: variable whose reason clause was permuted
	reason []clause.Ref     // sel_reason[k]: that variable's reason clause at creation time
	watch  [][]int          // sel_watch[lit.Index()] -> selector-clause indices
}

func newSelectorStore() *selectorStore {
	return &selectorStore{idx: []int{0}}
}

func (st *selectorStore) growWatch(need int) {
	for len(st.watch) < need {
		st.watch = append(st.watch, nil)
	}
}

// add stores a new selector clause with lits[0] and lits[1] as its two
// watched positions (the caller must have already arranged that), returns
// its index. reason is propVar's reason clause at the time the selector was
// derived, re-checked in §4.4 before the selector is ever acted on.
func (st *selectorStore) add(lits []lit.Lit, gen symmetry.GenID, propVar lit.Var, reason clause.Ref) int {
	k := len(st.gen)
	st.lits = append(st.lits, lits...)
	st.idx = append(st.idx, len(st.lits))
	st.gen = append(st.gen, gen)
	st.prop = append(st.prop, propVar)
	st.reason = append(st.reason, reason)

	st.growWatch(lits[0].Index() + 1)
	st.growWatch(lits[1].Index() + 1)
	st.watchOn(lits[0].Neg(), k)
	st.watchOn(lits[1].Neg(), k)
	return k
}

// count returns the number of selector clauses currently stored.
func (st *selectorStore) count() int { return len(st.gen) }

// clauseLen returns the number of literals in selector clause k.
func (st *selectorStore) clauseLen(k int) int { return st.idx[k+1] - st.idx[k] }

// at returns the i'th literal of selector clause k.
func (st *selectorStore) at(k, i int) lit.Lit { return st.lits[st.idx[k]+i] }

// set overwrites the i'th literal of selector clause k.
func (st *selectorStore) set(k, i int, l lit.Lit) { st.lits[st.idx[k]+i] = l }

// swap exchanges the i'th and j'th literal of selector clause k.
func (st *selectorStore) swap(k, i, j int) {
	base := st.idx[k]
	st.lits[base+i], st.lits[base+j] = st.lits[base+j], st.lits[base+i]
}

func (st *selectorStore) watchOn(l lit.Lit, k int) {
	st.growWatch(l.Index() + 1)
	st.watch[l.Index()] = append(st.watch[l.Index()], k)
}

// watchesOf returns the selector-clause indices currently watched on l.
func (st *selectorStore) watchesOf(l lit.Lit) []int {
	if l.Index() >= len(st.watch) {
		return nil
	}
	return st.watch[l.Index()]
}

// setWatches replaces l's watch list, used by the swap-erase discipline the
// selector-clause scan uses (spec.md §4.4).
func (st *selectorStore) setWatches(l lit.Lit, ws []int) {
	st.growWatch(l.Index() + 1)
	st.watch[l.Index()] = ws
}

// reset discards every selector clause, matching spec.md §3's lifecycle
// rule: the store is fully rebuilt from scratch after a cut to level 0.
func (st *selectorStore) reset() {
	st.lits = st.lits[:0]
	st.idx = st.idx[:1]
	st.gen = st.gen[:0]
	st.prop = st.prop[:0]
	st.reason = st.reason[:0]
	for i := range st.watch {
		st.watch[i] = nil
	}
}
