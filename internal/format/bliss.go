package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// ReadBlissGenerators parses the permutation output of a Bliss (or Saucy)
// run over the CNF's primal variable graph: one generator per line, written
// as semicolon-separated cycles of 1-based variable numbers, e.g.
// "1 2 3; 4 5". Unlike BreakID's file (internal/format/breakid.go), Bliss's
// graph automorphism search is run over unsigned variables, not literals —
// the graph construction that makes this sound folds a variable's two
// polarities into a single vertex pair, so every cycle found there permutes
// a variable's positive and negative literal identically. ReadBlissGenerators
// installs that symmetric cycle on both polarities for each generator,
// preserving symmetry.Generator's complement-preserving invariant.
// Lines starting with "%" or "c" are comments, matching the convention the
// Bliss/dreadnaut tool family uses for its own stdout banners.
func ReadBlissGenerators(r io.Reader, nVars int) ([]*symmetry.Generator, error) {
	var gens []*symmetry.Generator
	sc := bufio.NewScanner(r)
	id := symmetry.GenID(0)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "c") {
			continue
		}
		gen, err := parseBlissLine(line, id, nVars)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
		id++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("format: reading Bliss generator file: %w", err)
	}
	return gens, nil
}

func parseBlissLine(line string, id symmetry.GenID, nVars int) (*symmetry.Generator, error) {
	gen := symmetry.NewGenerator(id, nVars)
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		posCycle := make([]lit.Lit, 0, len(fields))
		negCycle := make([]lit.Lit, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("format: invalid Bliss variable %q in line %q: %w", f, line, err)
			}
			if n <= 0 {
				return nil, fmt.Errorf("format: Bliss variable ids must be positive 1-based, got %d in line %q", n, line)
			}
			v := lit.Var(n - 1)
			posCycle = append(posCycle, lit.New(v, false))
			negCycle = append(negCycle, lit.New(v, true))
		}
		gen.SetCycle(posCycle)
		gen.SetCycle(negCycle)
	}
	return gen, nil
}
