package symmetry

import "github.com/lip6/ESBP-SEL/internal/lit"

// Group owns the solver's generators and the flat generator-watch index
// spec.md §3 describes: for each variable v, the contiguous range of
// generators that permute either polarity of v, stored as a single flat
// array indexed by genWatchIdx[v]..genWatchIdx[v+1].
type Group struct {
	generators []*Generator
	watches    []*Generator // flat gen_watches array
	watchIdx   []int        // genWatchIdx, length nVars+1
	built      bool
}

// NewGroup returns an empty generator group.
func NewGroup() *Group {
	return &Group{}
}

// Add installs a new generator and returns its stable ID. Add may only be
// called before Build.
func (g *Group) Add(perm *Generator) GenID {
	if g.built {
		panic("symmetry: Add called after Build")
	}
	id := GenID(len(g.generators))
	perm.id = id
	g.generators = append(g.generators, perm)
	return id
}

// Len returns the number of generators in the group.
func (g *Group) Len() int { return len(g.generators) }

// Get returns the generator with the given ID.
func (g *Group) Get(id GenID) *Generator { return g.generators[id] }

// All returns every generator in the group, in ID order.
func (g *Group) All() []*Generator { return g.generators }

// Build computes the flat generator-watch arrays for nVars variables. It
// must be called once, after every generator has been Added and after the
// formula's variables are fixed (generators are typically supplied by an
// external automorphism-generator process once preprocessing is done).
func (g *Group) Build(nVars int) {
	g.watchIdx = make([]int, nVars+1)
	counts := make([]int, nVars)
	for _, gen := range g.generators {
		for v := 0; v < nVars; v++ {
			if gen.Permutes(lit.New(lit.Var(v), false)) || gen.Permutes(lit.New(lit.Var(v), true)) {
				counts[v]++
			}
		}
	}
	total := 0
	for v := 0; v < nVars; v++ {
		g.watchIdx[v] = total
		total += counts[v]
	}
	g.watchIdx[nVars] = total

	g.watches = make([]*Generator, total)
	cursor := append([]int(nil), g.watchIdx[:nVars]...)
	for _, gen := range g.generators {
		for v := 0; v < nVars; v++ {
			if gen.Permutes(lit.New(lit.Var(v), false)) || gen.Permutes(lit.New(lit.Var(v), true)) {
				g.watches[cursor[v]] = gen
				cursor[v]++
			}
		}
	}
	g.built = true
}

// WatchesFor returns the generators that permute either polarity of v.
func (g *Group) WatchesFor(v lit.Var) []*Generator {
	if !g.built || int(v)+1 >= len(g.watchIdx) {
		return nil
	}
	return g.watches[g.watchIdx[v]:g.watchIdx[v+1]]
}
