// Package order implements the variable-order max-heap used by the search
// driver to pick branching literals: a binary heap over per-variable
// activity scores with exponential decay, ported from gatosat's heap.go and
// generalized to live outside the solver package.
package order

import (
	"fmt"

	"github.com/lip6/ESBP-SEL/internal/lit"
)

// Heap is a max-heap of variables ordered by activity.
type Heap struct {
	data     []lit.Var // heap array
	indices  []int     // indices[v] = position of v in data, or -1
	activity []float64 // activity[v] = current activity score
}

// New returns an empty Heap.
func New() *Heap {
	return &Heap{}
}

func (h *Heap) less(i, j lit.Var) bool {
	return h.activity[i] > h.activity[j]
}

// Len returns the number of variables currently in the heap.
func (h *Heap) Len() int { return len(h.data) }

// Empty reports whether the heap holds no variables.
func (h *Heap) Empty() bool { return len(h.data) == 0 }

// InHeap reports whether v currently occupies a heap slot.
func (h *Heap) InHeap(v lit.Var) bool {
	return int(v) < len(h.indices) && h.indices[v] >= 0
}

// Activity returns the current activity score of v.
func (h *Heap) Activity(v lit.Var) float64 {
	return h.activity[v]
}

// Grow ensures the heap has an activity/index slot for every variable up to
// v, inclusive. It must be called once per NewVar, mirroring how gatosat's
// NewVar implicitly grows VarOrder via PushBack.
func (h *Heap) Grow(v lit.Var) {
	for int(v) >= len(h.indices) {
		h.indices = append(h.indices, -1)
		h.activity = append(h.activity, 0.0)
	}
}

// Bump increases v's activity by inc and restores the heap property if v is
// currently in the heap.
func (h *Heap) Bump(v lit.Var, inc float64) {
	h.Grow(v)
	h.activity[v] += inc
	if h.InHeap(v) {
		h.percolateUp(h.indices[v])
	}
}

// Rescale multiplies every activity score by factor, used when scores grow
// too large to keep the accumulator in a safe float range.
func (h *Heap) Rescale(factor float64) {
	for i := range h.activity {
		h.activity[i] *= factor
	}
}

// Push inserts v into the heap. v must not already be present.
func (h *Heap) Push(v lit.Var) {
	if h.InHeap(v) {
		panic(fmt.Errorf("order: variable %d already in heap", v))
	}
	h.Grow(v)
	h.data = append(h.data, v)
	h.indices[v] = len(h.data) - 1
	h.percolateUp(h.indices[v])
}

// RemoveMin pops and returns the highest-activity variable.
func (h *Heap) RemoveMin() lit.Var {
	v := h.data[0]
	last := h.data[len(h.data)-1]
	h.data[0] = last
	h.indices[last] = 0
	h.indices[v] = -1
	h.data = h.data[:len(h.data)-1]
	if len(h.data) > 0 {
		h.percolateDown(0)
	}
	return v
}

func (h *Heap) percolateUp(i int) {
	x := h.data[i]
	for i != 0 {
		p := parent(i)
		if !h.less(x, h.data[p]) {
			break
		}
		h.data[i] = h.data[p]
		h.indices[h.data[p]] = i
		i = p
	}
	h.data[i] = x
	h.indices[x] = i
}

func (h *Heap) percolateDown(i int) {
	x := h.data[i]
	for {
		l, r := left(i), right(i)
		if l >= len(h.data) {
			break
		}
		child := l
		if r < len(h.data) && h.less(h.data[r], h.data[l]) {
			child = r
		}
		if !h.less(h.data[child], x) {
			break
		}
		h.data[i] = h.data[child]
		h.indices[h.data[child]] = i
		i = child
	}
	h.data[i] = x
	h.indices[x] = i
}

func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }
func parent(i int) int { return (i - 1) >> 1 }
