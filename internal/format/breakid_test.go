package format

import (
	"strings"
	"testing"

	"github.com/lip6/ESBP-SEL/internal/lit"
)

func TestReadBreakIDGeneratorsSingleCycle(t *testing.T) {
	src := "(1 2 3)\n(1 -2)\nr 0\n"
	gens, err := ReadBreakIDGenerators(strings.NewReader(src), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("expected 2 generators, got %d", len(gens))
	}

	g := gens[0]
	v1, v2, v3 := lit.Var(0), lit.Var(1), lit.Var(2)
	if img := g.Image(lit.New(v1, false)); img != lit.New(v2, false) {
		t.Fatalf("expected 1 -> 2, got %v", img)
	}
	if img := g.Image(lit.New(v2, false)); img != lit.New(v3, false) {
		t.Fatalf("expected 2 -> 3, got %v", img)
	}
	if img := g.Image(lit.New(v3, false)); img != lit.New(v1, false) {
		t.Fatalf("expected 3 -> 1, got %v", img)
	}
	// Complement-preserving: the negated cycle must close too.
	if img := g.Image(lit.New(v1, true)); img != lit.New(v2, true) {
		t.Fatalf("expected ~1 -> ~2, got %v", img)
	}
}

func TestReadBreakIDGeneratorsStopsAtRowLine(t *testing.T) {
	src := "(1 2)\nrow breaking data here\n(3 4)\n"
	gens, err := ReadBreakIDGenerators(strings.NewReader(src), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 1 {
		t.Fatalf("expected parsing to stop at the 'r' line, got %d generators", len(gens))
	}
}

func TestReadBreakIDGeneratorsRejectsUnterminatedCycle(t *testing.T) {
	src := "(1 2 3\n"
	if _, err := ReadBreakIDGenerators(strings.NewReader(src), 3); err == nil {
		t.Fatal("expected an error for an unterminated cycle")
	}
}
