package solver

import "sync/atomic"

// interruptFlag is the sole concurrency concession spec.md §5 allows: any
// goroutine may request interruption; the search driver polls it once per
// inner iteration.
type interruptFlag struct {
	v atomic.Bool
}

func (f *interruptFlag) set()      { f.v.Store(true) }
func (f *interruptFlag) clear()    { f.v.Store(false) }
func (f *interruptFlag) isSet() bool { return f.v.Load() }
