// Package symmetry implements the syntactic-symmetry data model spec.md §3
// describes: generators (complement-preserving literal permutations), the
// compatible-generator-set bookkeeping learnt clauses carry, and the
// SymmetryOracle abstraction the core propagator consults. The external
// automorphism-generator process and the BreakID/Bliss file parsers that
// feed this package are collaborators (internal/format), not part of this
// package: this package only models what a generator and an oracle *are*.
package symmetry

import "github.com/lip6/ESBP-SEL/internal/lit"

// GenID is the stable index by which a Generator is referenced from a
// CompatSet. Generators are owned by the solver's Group and referenced by
// this index rather than by pointer (spec.md §9's "Generators themselves
// are owned by the solver and referenced by stable index").
type GenID int

// Generator is an opaque permutation on literals that respects complement:
// image(¬l) == ¬image(l). This invariant is guaranteed by the loader that
// built the permutation (BreakID/Bliss file format, internal/format), not
// re-derived here.
type Generator struct {
	id   GenID
	perm []lit.Lit // perm[l.Index()] == image(l)
}

// NewGenerator returns the identity permutation over nVars variables with
// the given stable id. Callers build up the permutation with Set before
// installing it in a Group.
func NewGenerator(id GenID, nVars int) *Generator {
	perm := make([]lit.Lit, 2*nVars)
	for v := 0; v < nVars; v++ {
		perm[lit.New(lit.Var(v), false).Index()] = lit.New(lit.Var(v), false)
		perm[lit.New(lit.Var(v), true).Index()] = lit.New(lit.Var(v), true)
	}
	return &Generator{id: id, perm: perm}
}

// ID returns the generator's stable identifier.
func (g *Generator) ID() GenID { return g.id }

// Set installs image(from) = to. Callers are responsible for also setting
// the complement mapping (image(¬from) = ¬to) if the source file doesn't
// already enumerate both polarities explicitly.
func (g *Generator) Set(from, to lit.Lit) {
	g.grow(from)
	g.grow(to)
	g.perm[from.Index()] = to
}

// SetCycle installs a full disjunct cycle of literals (l0 -> l1 -> ... ->
// l0), the representation BreakID's file format uses per generator line.
func (g *Generator) SetCycle(cycle []lit.Lit) {
	for i, l := range cycle {
		next := cycle[(i+1)%len(cycle)]
		g.Set(l, next)
	}
}

func (g *Generator) grow(l lit.Lit) {
	need := l.Index() + 1
	for len(g.perm) < need {
		v := lit.Var(len(g.perm) / 2)
		g.perm = append(g.perm, lit.New(v, false), lit.New(v, true))
	}
}

// Image returns the image of l under the permutation.
func (g *Generator) Image(l lit.Lit) lit.Lit {
	if l.Index() >= len(g.perm) {
		return l // variables the generator never mentions are fixed points
	}
	return g.perm[l.Index()]
}

// Permutes reports whether l is not a fixpoint of the generator.
func (g *Generator) Permutes(l lit.Lit) bool {
	return g.Image(l) != l
}

// SymmetricClause applies the generator to every literal of lits, returning
// the image clause (spec.md §3's symmetric_clause(C)).
func (g *Generator) SymmetricClause(lits []lit.Lit) []lit.Lit {
	out := make([]lit.Lit, len(lits))
	for i, l := range lits {
		out[i] = g.Image(l)
	}
	return out
}

// Stabilizes reports whether C is setwise-fixed by the generator: applying
// the permutation to every literal of C yields the same set of literals
// (spec.md §3's stabilizes(C), used to augment a learnt clause's compatible
// set in §4.5 step 3).
func (g *Generator) Stabilizes(lits []lit.Lit) bool {
	image := g.SymmetricClause(lits)
	if len(image) != len(lits) {
		return false
	}
	seen := make(map[lit.Lit]int, len(lits))
	for _, l := range lits {
		seen[l]++
	}
	for _, l := range image {
		seen[l]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

// NumLiterals returns the number of literal slots the generator's
// permutation table currently spans, used by Group to size generator-watch
// arrays.
func (g *Generator) NumLiterals() int { return len(g.perm) }
