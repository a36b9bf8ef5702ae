package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/solver"
)

func TestReadDIMACSParsesClauses(t *testing.T) {
	src := "c a comment\np cnf 3 2\n1 -2 0\n2 3 0\n"
	cnf, err := ReadDIMACS(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cnf.DeclaredVars != 3 || cnf.DeclaredClauses != 2 {
		t.Fatalf("unexpected header: %+v", cnf)
	}
	want := [][]lit.Lit{
		{lit.New(0, false), lit.New(1, true)},
		{lit.New(1, false), lit.New(2, false)},
	}
	if diff := cmp.Diff(want, cnf.Clauses); diff != "" {
		t.Fatalf("parsed clauses mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDIMACSRejectsMismatchedClauseCount(t *testing.T) {
	src := "p cnf 2 2\n1 2 0\n"
	if _, err := ReadDIMACS(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error on declared/actual clause count mismatch")
	}
}

func TestReadDIMACSRejectsMissingHeader(t *testing.T) {
	src := "1 2 0\n"
	if _, err := ReadDIMACS(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error when the problem line is missing")
	}
}

func TestLoadIntoBuildsSolver(t *testing.T) {
	src := "p cnf 2 2\n1 2 0\n-1 -2 0\n"
	cnf, err := ReadDIMACS(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := solver.NewSolver(solver.DefaultOptions())
	if !LoadInto(s, cnf) {
		t.Fatal("unexpected UNSAT while loading")
	}
	if s.NumVars() != 2 {
		t.Fatalf("expected 2 variables, got %d", s.NumVars())
	}
	if status := s.Solve(nil); status != lit.True {
		t.Fatalf("expected SAT, got %v", status)
	}
}

func TestWriteResultSatisfiable(t *testing.T) {
	src := "p cnf 1 1\n1 0\n"
	cnf, err := ReadDIMACS(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := solver.NewSolver(solver.DefaultOptions())
	if !LoadInto(s, cnf) {
		t.Fatal("unexpected UNSAT while loading")
	}
	status := s.Solve(nil)
	var b strings.Builder
	if err := WriteResult(&b, status, s); err != nil {
		t.Fatalf("unexpected error writing result: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "s SATISFIABLE") {
		t.Fatalf("expected SATISFIABLE status line, got %q", out)
	}
	if !strings.Contains(out, "v 1 0") {
		t.Fatalf("expected model line forcing variable 1 true, got %q", out)
	}
}

func TestWriteResultUnsatisfiable(t *testing.T) {
	var b strings.Builder
	if err := WriteResult(&b, lit.False, solver.NewSolver(solver.DefaultOptions())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(b.String()) != "s UNSATISFIABLE" {
		t.Fatalf("unexpected output: %q", b.String())
	}
}
