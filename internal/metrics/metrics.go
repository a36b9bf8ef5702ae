// Package metrics exposes a running solver.Solver's Stats as Prometheus
// metrics (spec.md §6's stats() operation, turned into a scrape endpoint
// the way an operator deployment of this solver would want to watch a
// long search). It implements prometheus.Collector directly rather than
// pushing individual gauge/counter updates after every Solve call, so a
// scrape always reflects the solver's live counters with no separate sync
// step to forget.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lip6/ESBP-SEL/internal/solver"
)

// StatsSource is the subset of *solver.Solver the collector needs: just
// enough to take a Stats snapshot on every scrape.
type StatsSource interface {
	Stats() solver.Stats
}

// Collector adapts a running solver's Stats() into a prometheus.Collector.
// Register it once per solver instance being monitored.
type Collector struct {
	source StatsSource

	restarts     *prometheus.Desc
	decisions    *prometheus.Desc
	propagations *prometheus.Desc
	conflicts    *prometheus.Desc
	numClauses   *prometheus.Desc
	numLearnts   *prometheus.Desc
	reduceDBRuns *prometheus.Desc
	removedClauses *prometheus.Desc
	gcRuns       *prometheus.Desc

	esbpInjections        *prometheus.Desc
	selectorClauses       *prometheus.Desc
	selectorPropagations  *prometheus.Desc
	selectorConflicts     *prometheus.Desc
	generatorPropagations *prometheus.Desc
	generatorConflicts    *prometheus.Desc
	forbidUnits           *prometheus.Desc
}

// NewCollector builds a Collector reading from source, labeling every
// metric with the given solver instance name (e.g. the input file path),
// so multiple solvers can be scraped from the same registry.
func NewCollector(source StatsSource, instance string) *Collector {
	labels := prometheus.Labels{"instance": instance}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("cosysat_"+name, help, nil, labels)
	}
	return &Collector{
		source:         source,
		restarts:       desc("restarts_total", "Number of search restarts."),
		decisions:      desc("decisions_total", "Number of branching decisions."),
		propagations:   desc("propagations_total", "Number of unit propagations."),
		conflicts:      desc("conflicts_total", "Number of conflicts encountered."),
		numClauses:     desc("clauses", "Number of original clauses currently attached."),
		numLearnts:     desc("learnts", "Number of learnt clauses currently attached."),
		reduceDBRuns:   desc("reduce_db_runs_total", "Number of learnt-clause database reductions."),
		removedClauses: desc("removed_clauses_total", "Number of learnt clauses removed by reduceDB."),
		gcRuns:         desc("gc_runs_total", "Number of clause-arena garbage collections."),

		esbpInjections:        desc("esbp_injections_total", "Number of ESBP clauses injected by the oracle hook."),
		selectorClauses:       desc("selector_clauses", "Number of selector clauses currently cached."),
		selectorPropagations:  desc("selector_propagations_total", "Number of propagations via the selector-clause engine."),
		selectorConflicts:     desc("selector_conflicts_total", "Number of conflicts detected by the selector-clause engine."),
		generatorPropagations: desc("generator_propagations_total", "Number of propagations via the generator-watch engine."),
		generatorConflicts:    desc("generator_conflicts_total", "Number of conflicts detected by the generator-watch engine."),
		forbidUnits:           desc("forbid_units_total", "Number of forbid_unit literals recorded."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs() {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}

	counter(c.restarts, s.Restarts)
	counter(c.decisions, s.Decisions)
	counter(c.propagations, s.Propagations)
	counter(c.conflicts, s.Conflicts)
	gauge(c.numClauses, s.NumClauses)
	gauge(c.numLearnts, s.NumLearnts)
	counter(c.reduceDBRuns, s.ReduceDBRuns)
	counter(c.removedClauses, s.RemovedClauses)
	counter(c.gcRuns, s.GCRuns)

	counter(c.esbpInjections, s.ESBPInjections)
	gauge(c.selectorClauses, s.SelectorClauses)
	counter(c.selectorPropagations, s.SelectorPropagations)
	counter(c.selectorConflicts, s.SelectorConflicts)
	counter(c.generatorPropagations, s.GeneratorPropagations)
	counter(c.generatorConflicts, s.GeneratorConflicts)
	counter(c.forbidUnits, s.ForbidUnits)
}

func (c *Collector) descs() []*prometheus.Desc {
	return []*prometheus.Desc{
		c.restarts, c.decisions, c.propagations, c.conflicts,
		c.numClauses, c.numLearnts, c.reduceDBRuns, c.removedClauses, c.gcRuns,
		c.esbpInjections, c.selectorClauses, c.selectorPropagations, c.selectorConflicts,
		c.generatorPropagations, c.generatorConflicts, c.forbidUnits,
	}
}
