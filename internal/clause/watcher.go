package clause

import "github.com/lip6/ESBP-SEL/internal/lit"

// Watcher is a (clause-handle, blocker-literal) pair: blocker is any
// literal from the clause, used as a fast satisfaction check that avoids
// dereferencing the clause itself (spec.md §3).
type Watcher struct {
	Ref     Ref
	Blocker lit.Lit
}

// WatchList holds, for every literal, the ordered sequence of watchers
// watching it: watchers of clauses in which that literal's complement
// appears at a watched position. Indexed flatly by lit.Index(), replacing
// gatosat's map[Lit][]*Watcher (flagged there as comparatively slow) with a
// slice-of-slices, the representation gatosat's own watcher.go migrated
// towards (Watches) but solver.go never finished adopting.
type WatchList struct {
	lists [][]Watcher
}

// NewWatchList returns an empty WatchList.
func NewWatchList() *WatchList {
	return &WatchList{}
}

// Grow ensures a slot exists for every literal of variables up to v.
func (w *WatchList) Grow(v lit.Var) {
	need := 2*int(v) + 2
	for len(w.lists) < need {
		w.lists = append(w.lists, nil)
	}
}

// Of returns the watcher slice for literal l.
func (w *WatchList) Of(l lit.Lit) []Watcher {
	return w.lists[l.Index()]
}

// Append adds watcher to l's list.
func (w *WatchList) Append(l lit.Lit, watcher Watcher) {
	w.lists[l.Index()] = append(w.lists[l.Index()], watcher)
}

// SetLen truncates/replaces l's list in place, used by the split-iterator
// scan in the propagator (spec.md §5's read-pointer/write-pointer
// discipline) to shrink a watch list without reallocating.
func (w *WatchList) SetLen(l lit.Lit, n int) {
	w.lists[l.Index()] = w.lists[l.Index()][:n]
}

// Set overwrites the i'th watcher of l's list.
func (w *WatchList) Set(l lit.Lit, i int, watcher Watcher) {
	w.lists[l.Index()][i] = watcher
}

// Remove deletes the first watcher of l's list whose Ref matches ref,
// preserving the order of the rest. Used to detach a clause.
func (w *WatchList) Remove(l lit.Lit, ref Ref) {
	list := w.lists[l.Index()]
	for i, watcher := range list {
		if watcher.Ref == ref {
			copy(list[i:], list[i+1:])
			w.lists[l.Index()] = list[:len(list)-1]
			return
		}
	}
	panic("clause: watcher not found for removal")
}
