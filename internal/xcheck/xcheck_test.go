package xcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lip6/ESBP-SEL/internal/format"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/solver"
)

func TestCheckAgreesOnSatisfiableFormula(t *testing.T) {
	src := "p cnf 3 3\n1 2 0\n-1 3 0\n-2 -3 0\n"
	cnf, err := format.ReadDIMACS(strings.NewReader(src))
	require.NoError(t, err)

	s := solver.NewSolver(solver.DefaultOptions())
	require.True(t, format.LoadInto(s, cnf), "unexpected UNSAT while loading")

	got := s.Solve(nil)
	require.Equal(t, lit.True, got, "expected internal/solver to find SAT")
	require.NoError(t, Check(cnf, got))
}

func TestCheckAgreesOnUnsatisfiableFormula(t *testing.T) {
	src := "p cnf 2 4\n1 2 0\n1 -2 0\n-1 2 0\n-1 -2 0\n"
	cnf, err := format.ReadDIMACS(strings.NewReader(src))
	require.NoError(t, err)

	s := solver.NewSolver(solver.DefaultOptions())
	format.LoadInto(s, cnf)

	got := s.Solve(nil)
	require.Equal(t, lit.False, got, "expected internal/solver to find UNSAT")
	require.NoError(t, Check(cnf, got))
}

func TestCheckDetectsDisagreement(t *testing.T) {
	src := "p cnf 2 4\n1 2 0\n1 -2 0\n-1 2 0\n-1 -2 0\n"
	cnf, err := format.ReadDIMACS(strings.NewReader(src))
	require.NoError(t, err)

	// Lie about the verdict to exercise the mismatch path.
	require.Error(t, Check(cnf, lit.True), "expected a disagreement error for a deliberately wrong verdict")
}
