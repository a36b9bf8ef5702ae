package config

import (
	"strings"
	"testing"

	"github.com/blang/semver/v4"

	"github.com/lip6/ESBP-SEL/internal/solver"
)

func TestLoadAndApplyOverridesDefaults(t *testing.T) {
	src := `
restart_policy: geometric
restart_first: 50
ccmin: basic
reduce_db: symmetry_safe
var_decay: 0.8
symmetry_file: foo.sym
symmetry_format: breakid
`
	cfg, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := cfg.ApplyTo(solver.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.RestartPolicy != solver.RestartGeometric {
		t.Fatalf("expected geometric restart policy, got %v", opts.RestartPolicy)
	}
	if opts.RestartFirst != 50 {
		t.Fatalf("expected restart_first 50, got %d", opts.RestartFirst)
	}
	if opts.CCMin != solver.CCMinBasic {
		t.Fatalf("expected basic ccmin, got %v", opts.CCMin)
	}
	if opts.ReduceDB != solver.ReduceDBSymmetrySafe {
		t.Fatalf("expected symmetry-safe reduceDB, got %v", opts.ReduceDB)
	}
	if opts.VarDecay != 0.8 {
		t.Fatalf("expected var_decay 0.8, got %v", opts.VarDecay)
	}
	// Untouched fields keep their default.
	defaults := solver.DefaultOptions()
	if opts.ClauseDecay != defaults.ClauseDecay {
		t.Fatalf("expected clause_decay to keep its default, got %v", opts.ClauseDecay)
	}
	if cfg.SymmetryFile != "foo.sym" || cfg.SymmetryFormat != "breakid" {
		t.Fatalf("expected symmetry file fields to round-trip, got %+v", cfg)
	}
}

func TestApplyToRejectsUnknownEnum(t *testing.T) {
	cfg := &Config{RestartPolicy: "bogus"}
	if _, err := cfg.ApplyTo(solver.DefaultOptions()); err == nil {
		t.Fatal("expected an error for an unrecognized restart_policy")
	}
}

func TestRequireVersionRejectsNewerMinVersion(t *testing.T) {
	cfg := &Config{MinVersion: "9.9.9"}
	if err := cfg.RequireVersion(semver.MustParse("0.1.0")); err == nil {
		t.Fatal("expected an error when running an older binary than min_version")
	}
}

func TestRequireVersionAcceptsSatisfiedMinVersion(t *testing.T) {
	cfg := &Config{MinVersion: "0.1.0"}
	if err := cfg.RequireVersion(semver.MustParse("0.1.0")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadEmptyFileKeepsAllDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := cfg.ApplyTo(solver.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != solver.DefaultOptions() {
		t.Fatalf("expected defaults to pass through unchanged, got %+v", opts)
	}
}
