package symmetry

import "github.com/samber/lo"

// CompatSet is the subset of generators that may still legitimately be
// composed with a given symmetry-derived clause to derive further symmetric
// consequences (spec.md §3 "compatible set", §4.5). A nil *CompatSet means
// "not a symmetry-derived clause"; an empty, non-nil CompatSet means
// "symmetry-derived, but no generator may be used to extend it further".
type CompatSet struct {
	ids map[GenID]struct{}
}

// NewCompatSet returns a CompatSet containing exactly the given generators.
func NewCompatSet(ids ...GenID) *CompatSet {
	c := &CompatSet{ids: make(map[GenID]struct{}, len(ids))}
	for _, id := range ids {
		c.ids[id] = struct{}{}
	}
	return c
}

// Empty reports whether the set contains no generators.
func (c *CompatSet) Empty() bool {
	return c == nil || len(c.ids) == 0
}

// Contains reports whether id is in the set.
func (c *CompatSet) Contains(id GenID) bool {
	if c == nil {
		return false
	}
	_, ok := c.ids[id]
	return ok
}

// Add inserts id into the set.
func (c *CompatSet) Add(id GenID) {
	if c.ids == nil {
		c.ids = make(map[GenID]struct{})
	}
	c.ids[id] = struct{}{}
}

// Remove deletes id from the set, if present.
func (c *CompatSet) Remove(id GenID) {
	delete(c.ids, id)
}

// IDs returns the set's members, in no particular order.
func (c *CompatSet) IDs() []GenID {
	if c == nil {
		return nil
	}
	return lo.Keys(c.ids)
}

// Clone returns an independent copy, since a clause's compatible set is
// owned by that clause and must not alias another clause's set (spec.md §9
// "Ownership of compatible-generator sets").
func (c *CompatSet) Clone() *CompatSet {
	if c == nil {
		return nil
	}
	cp := &CompatSet{ids: make(map[GenID]struct{}, len(c.ids))}
	for id := range c.ids {
		cp.ids[id] = struct{}{}
	}
	return cp
}

// Intersect mutates c in place to the intersection of c and other. An empty
// `other` forces the result to empty, matching spec.md §4.5 step 1 ("An
// empty reason set forces the intersection to empty").
func (c *CompatSet) Intersect(other *CompatSet) {
	if other.Empty() {
		c.ids = map[GenID]struct{}{}
		return
	}
	for id := range c.ids {
		if !other.Contains(id) {
			delete(c.ids, id)
		}
	}
}

// IntersectAll builds the intersection of a list of compatible sets,
// starting from the first non-nil set encountered (spec.md §4.5 step 1).
func IntersectAll(sets []*CompatSet) *CompatSet {
	result := &CompatSet{}
	first := true
	for _, s := range sets {
		if s == nil {
			continue
		}
		if first {
			result = s.Clone()
			first = false
			continue
		}
		result.Intersect(s)
		if result.Empty() {
			break
		}
	}
	return result
}
