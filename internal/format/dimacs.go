// Package format implements spec.md §6's file-format boundary: the DIMACS
// CNF reader and result writer, and the BreakID/Bliss symmetry-generator
// file readers. It is ported from gatosat's dimacs.go (package main globals
// operating directly on a *Solver) into a solver-agnostic reader that
// builds variables and clauses through internal/solver's public façade
// instead of reaching into solver internals.
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/solver"
)

// CNF is the parsed form of a DIMACS file: the declared variable/clause
// counts from the "p cnf" header and the clauses themselves, already
// translated from 1-based signed DIMACS integers into lit.Lit. ReadDIMACS
// always requires the header and rejects a file whose clause count differs
// from the declared one; there is no lenient mode.
type CNF struct {
	DeclaredVars    int
	DeclaredClauses int
	Clauses         [][]lit.Lit
}

// ReadDIMACS parses a DIMACS CNF file, mirroring gatosat's parseDimacs:
// lines starting with "c" are comments, a "p cnf <vars> <clauses>" header
// declares the problem size, and every other non-blank line is a
// space-separated list of signed integers terminated by a trailing 0.
func ReadDIMACS(r io.Reader) (*CNF, error) {
	cnf := &CNF{}
	seenHeader := false
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p cnf") {
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, fmt.Errorf("format: malformed problem line: %q", line)
			}
			vars, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("format: bad variable count in problem line: %w", err)
			}
			clauses, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("format: bad clause count in problem line: %w", err)
			}
			cnf.DeclaredVars, cnf.DeclaredClauses = vars, clauses
			seenHeader = true
			continue
		}
		lits, err := parseClauseLine(line)
		if err != nil {
			return nil, err
		}
		cnf.Clauses = append(cnf.Clauses, lits)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("format: reading DIMACS input: %w", err)
	}
	if !seenHeader {
		return nil, fmt.Errorf("format: missing \"p cnf\" problem line")
	}
	if len(cnf.Clauses) != cnf.DeclaredClauses {
		return nil, fmt.Errorf("format: declared %d clauses, parsed %d", cnf.DeclaredClauses, len(cnf.Clauses))
	}
	return cnf, nil
}

func parseClauseLine(line string) ([]lit.Lit, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, fmt.Errorf("format: clause line does not end in 0: %q", line)
	}
	lits := make([]lit.Lit, 0, len(fields)-1)
	for _, f := range fields[:len(fields)-1] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("format: invalid literal %q: %w", f, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("format: literal 0 inside clause body: %q", line)
		}
		lits = append(lits, dimacsToLit(n))
	}
	return lits, nil
}

func dimacsToLit(n int) lit.Lit {
	if n > 0 {
		return lit.New(lit.Var(n-1), false)
	}
	return lit.New(lit.Var(-n-1), true)
}

func litToDimacs(l lit.Lit) int {
	n := int(l.Var()) + 1
	if l.Sign() {
		return -n
	}
	return n
}

// LoadInto creates fresh variables (growing the solver to at least
// cnf.DeclaredVars) and adds every clause of cnf, the package-level
// equivalent of gatosat's parseDimacs driving a *Solver directly. It returns
// false the moment AddClause reports the formula trivially unsatisfiable,
// matching AddClause's own short-circuit contract.
func LoadInto(s *solver.Solver, cnf *CNF) bool {
	for s.NumVars() < cnf.DeclaredVars {
		s.NewVar()
	}
	for _, lits := range cnf.Clauses {
		for _, l := range lits {
			for int(l.Var()) >= s.NumVars() {
				s.NewVar()
			}
		}
		if !s.AddClause(lits) {
			return false
		}
	}
	return true
}

// ReadDIMACSInto is the common case: parse and load in one step. A trivially
// unsatisfiable formula is not an error — it is reported through s.OK(),
// exactly as a direct AddClause caller would see it.
func ReadDIMACSInto(s *solver.Solver, r io.Reader) error {
	cnf, err := ReadDIMACS(r)
	if err != nil {
		return err
	}
	LoadInto(s, cnf)
	return nil
}

// WriteResult writes the DIMACS-convention result gatosat's printModel
// produces: an "s SATISFIABLE"/"s UNSATISFIABLE"/"s INDETERMINATE" status
// line, and for SAT, a single "v ..." model line terminated by 0.
func WriteResult(w io.Writer, status lit.Bool, s *solver.Solver) error {
	switch status {
	case lit.True:
		if _, err := fmt.Fprintln(w, "s SATISFIABLE"); err != nil {
			return err
		}
		return writeModel(w, s)
	case lit.False:
		_, err := fmt.Fprintln(w, "s UNSATISFIABLE")
		return err
	default:
		_, err := fmt.Fprintln(w, "s INDETERMINATE")
		return err
	}
}

func writeModel(w io.Writer, s *solver.Solver) error {
	var b strings.Builder
	b.WriteString("v")
	for v := lit.Var(0); int(v) < s.NumVars(); v++ {
		fmt.Fprintf(&b, " %d", litToDimacs(lit.New(v, !s.Model(v))))
	}
	b.WriteString(" 0")
	_, err := fmt.Fprintln(w, b.String())
	return err
}
