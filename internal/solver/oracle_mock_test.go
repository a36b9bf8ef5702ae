package solver

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
	"github.com/lip6/ESBP-SEL/internal/symmetry/symmetrymock"
)

// TestRunESBPHookCallsOracleInSequence checks runESBPHook's actual call
// pattern against symmetry.Oracle (spec.md §4.2 step 1: UpdateNotify on
// every newly-enqueued literal, then ClauseToInject consulted once per
// notification) using a gomock double instead of the concrete TableOracle,
// so the hook's calling convention is pinned independently of any one
// oracle implementation's behavior.
func TestRunESBPHookCallsOracleInSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, v := newTestSolver(2)
	vA := v[0]

	mockOracle := symmetrymock.NewMockOracle(ctrl)
	gomock.InOrder(
		mockOracle.EXPECT().UpdateNotify(p(vA)),
		mockOracle.EXPECT().ClauseToInject().Return([]lit.Lit(nil), []symmetry.GenID(nil), false),
	)
	s.SetOracle(mockOracle)

	if !s.AddClause([]lit.Lit{p(vA)}) {
		t.Fatal("unexpected UNSAT adding unit clause")
	}
}
