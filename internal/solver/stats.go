package solver

// Stats accumulates solver counters, extending gatosat's Statistics struct
// with the symmetry-subsystem counters the search driver's progress line
// and internal/metrics both want (spec.md §6's stats()).
type Stats struct {
	Restarts     uint64
	Decisions    uint64
	Propagations uint64
	Conflicts    uint64
	NumClauses   uint64
	NumLearnts   uint64
	ReduceDBRuns uint64
	RemovedClauses uint64
	GCRuns       uint64

	// Symmetry-subsystem counters (spec.md §4.3/§4.4).
	ESBPInjections     uint64
	SelectorClauses    uint64
	SelectorPropagations uint64
	SelectorConflicts  uint64
	GeneratorPropagations uint64
	GeneratorConflicts uint64
	ForbidUnits        uint64
}

// Stats returns a snapshot of the solver's running statistics.
func (s *Solver) Stats() Stats {
	return s.stats
}
