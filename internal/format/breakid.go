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

// ReadBreakIDGenerators parses a BreakID-style symmetry-generator file,
// ported from original_source/sat_symmetry/src/BreakIDReader.cc's load().
// Each line holds one generator as a sequence of parenthesized cycles of
// signed DIMACS literals, e.g. "(1 2 3)(-4 -5)", read until a line starting
// with "r" (BreakID's row of row-breaking-constraint metadata, irrelevant
// here) or EOF. Every returned generator is complement-preserving: a cycle
// over positive literals l0 -> l1 -> ... and BreakID's implicit negated
// companion cycle ¬l0 -> ¬l1 -> ... are both installed by
// symmetry.Generator.SetCycle.
func ReadBreakIDGenerators(r io.Reader, nVars int) ([]*symmetry.Generator, error) {
	var gens []*symmetry.Generator
	sc := bufio.NewScanner(r)
	id := symmetry.GenID(0)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "r") {
			break
		}
		gen, err := parseBreakIDLine(line, id, nVars)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
		id++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("format: reading BreakID generator file: %w", err)
	}
	return gens, nil
}

func parseBreakIDLine(line string, id symmetry.GenID, nVars int) (*symmetry.Generator, error) {
	gen := symmetry.NewGenerator(id, nVars)
	rest := line
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open != 0 {
			return nil, fmt.Errorf("format: BreakID generator line must start each cycle with '(': %q", line)
		}
		closeIdx := strings.IndexByte(rest, ')')
		if closeIdx < 0 {
			return nil, fmt.Errorf("format: unterminated cycle in BreakID generator line: %q", line)
		}
		cycle, err := parseBreakIDCycle(rest[1:closeIdx])
		if err != nil {
			return nil, fmt.Errorf("format: %w in line %q", err, line)
		}
		gen.SetCycle(cycle)
		gen.SetCycle(negateCycle(cycle))
		rest = strings.TrimLeft(rest[closeIdx+1:], " ")
	}
	return gen, nil
}

func parseBreakIDCycle(body string) ([]lit.Lit, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty cycle")
	}
	cycle := make([]lit.Lit, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q: %w", f, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("literal 0 inside cycle")
		}
		cycle = append(cycle, dimacsToLit(n))
	}
	return cycle, nil
}

func negateCycle(cycle []lit.Lit) []lit.Lit {
	out := make([]lit.Lit, len(cycle))
	for i, l := range cycle {
		out[i] = l.Neg()
	}
	return out
}
