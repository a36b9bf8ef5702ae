package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lip6/ESBP-SEL/internal/solver"
)

type fakeSource struct{ stats solver.Stats }

func (f fakeSource) Stats() solver.Stats { return f.stats }

func TestCollectorRegistersAndGathers(t *testing.T) {
	src := fakeSource{stats: solver.Stats{Conflicts: 7, NumClauses: 3, ESBPInjections: 2}}
	c := NewCollector(src, "test-instance")

	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("unexpected error registering collector: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error gathering metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected at least one metric family")
	}

	var sawConflicts, sawESBP bool
	for _, fam := range families {
		switch fam.GetName() {
		case "cosysat_conflicts_total":
			sawConflicts = true
			if got := fam.Metric[0].GetCounter().GetValue(); got != 7 {
				t.Fatalf("expected conflicts_total 7, got %v", got)
			}
		case "cosysat_esbp_injections_total":
			sawESBP = true
			if got := fam.Metric[0].GetCounter().GetValue(); got != 2 {
				t.Fatalf("expected esbp_injections_total 2, got %v", got)
			}
		}
	}
	if !sawConflicts || !sawESBP {
		t.Fatalf("expected to find both conflicts and ESBP injection metrics, families=%d", len(families))
	}
}
