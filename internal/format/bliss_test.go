package format

import (
	"strings"
	"testing"

	"github.com/lip6/ESBP-SEL/internal/lit"
)

func TestReadBlissGeneratorsPermutesBothPolarities(t *testing.T) {
	src := "%% bliss output\n1 2 3; 4 5\n"
	gens, err := ReadBlissGenerators(strings.NewReader(src), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 1 {
		t.Fatalf("expected 1 generator, got %d", len(gens))
	}
	g := gens[0]
	v1, v2 := lit.Var(0), lit.Var(1)
	v4, v5 := lit.Var(3), lit.Var(4)
	if img := g.Image(lit.New(v1, false)); img != lit.New(v2, false) {
		t.Fatalf("expected 1 -> 2, got %v", img)
	}
	if img := g.Image(lit.New(v1, true)); img != lit.New(v2, true) {
		t.Fatalf("expected ~1 -> ~2, got %v", img)
	}
	if img := g.Image(lit.New(v4, false)); img != lit.New(v5, false) {
		t.Fatalf("expected 4 -> 5 from the second cycle on the same line, got %v", img)
	}
}

func TestReadBlissGeneratorsRejectsNonPositiveVariable(t *testing.T) {
	if _, err := ReadBlissGenerators(strings.NewReader("0 1\n"), 2); err == nil {
		t.Fatal("expected an error for a non-positive variable id")
	}
}
