// Package config loads solver.Options from a YAML file, the way spec.md §6
// expects a solver deployment to be tuned without recompiling: the file is
// first parsed into a generic map with goccy/go-yaml, then decoded into a
// typed Config via mitchellh/mapstructure, matching the two-stage
// "untyped load, typed decode" pattern the rest of the Go ecosystem uses
// this pairing for (viper's own config.ReadInConfig layers the same way).
package config

import (
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"

	"github.com/lip6/ESBP-SEL/internal/solver"
)

// Config is the on-disk, string-enum-friendly mirror of solver.Options.
// Every field is a pointer (or left as the zero value for bool/string) so
// ApplyTo only overrides what the file actually set, leaving
// solver.DefaultOptions() in place for everything else.
type Config struct {
	RestartPolicy       string   `mapstructure:"restart_policy" yaml:"restart_policy"`
	RestartFirst        *int     `mapstructure:"restart_first" yaml:"restart_first"`
	RestartInc          *float64 `mapstructure:"restart_inc" yaml:"restart_inc"`
	VarDecay            *float64 `mapstructure:"var_decay" yaml:"var_decay"`
	ClauseDecay         *float64 `mapstructure:"clause_decay" yaml:"clause_decay"`
	InitialMaxLearnts   *float64 `mapstructure:"initial_max_learnts" yaml:"initial_max_learnts"`
	LearntGrowth        *float64 `mapstructure:"learnt_growth" yaml:"learnt_growth"`
	CCMin               string   `mapstructure:"ccmin" yaml:"ccmin"`
	ReduceDB            string   `mapstructure:"reduce_db" yaml:"reduce_db"`
	ArenaWasteThreshold *float64 `mapstructure:"arena_waste_threshold" yaml:"arena_waste_threshold"`
	StopOnESBPConflict  *bool    `mapstructure:"stop_on_esbp_conflict" yaml:"stop_on_esbp_conflict"`
	RandomPolaritySeed  *int64   `mapstructure:"random_polarity_seed" yaml:"random_polarity_seed"`
	RandomPolarityFreq  *float64 `mapstructure:"random_polarity_freq" yaml:"random_polarity_freq"`

	// SymmetryFile and SymmetryFormat name a BreakID/Bliss generator file
	// and the parser to use ("breakid" or "bliss"). They are decoded but
	// not applied: cmd/cosysat takes the symmetry file only from its
	// --symmetry-file/--symmetry-format flags.
	SymmetryFile   string `mapstructure:"symmetry_file" yaml:"symmetry_file"`
	SymmetryFormat string `mapstructure:"symmetry_format" yaml:"symmetry_format"`

	// MinVersion, if set, is the oldest cosysat semver this config file is
	// known to be compatible with (cmd/cosysat rejects loading it on an
	// older binary rather than silently misinterpreting unknown fields).
	MinVersion string `mapstructure:"min_version" yaml:"min_version"`
}

// Load reads and decodes a YAML config file.
func Load(r io.Reader) (*Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: reading file: %w", err)
	}
	var generic map[string]interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}
	cfg := &Config{}
	if err := mapstructure.Decode(generic, cfg); err != nil {
		return nil, fmt.Errorf("config: decoding into Config: %w", err)
	}
	return cfg, nil
}

// ApplyTo overlays the config's explicitly-set fields onto base, returning
// the merged solver.Options. Pass solver.DefaultOptions() as base for the
// usual "defaults plus file overrides" behavior.
func (c *Config) ApplyTo(base solver.Options) (solver.Options, error) {
	opts := base

	switch c.RestartPolicy {
	case "":
	case "luby":
		opts.RestartPolicy = solver.RestartLuby
	case "geometric":
		opts.RestartPolicy = solver.RestartGeometric
	default:
		return opts, fmt.Errorf("config: unknown restart_policy %q", c.RestartPolicy)
	}

	switch c.CCMin {
	case "":
	case "off":
		opts.CCMin = solver.CCMinOff
	case "basic":
		opts.CCMin = solver.CCMinBasic
	case "deep":
		opts.CCMin = solver.CCMinDeep
	default:
		return opts, fmt.Errorf("config: unknown ccmin %q", c.CCMin)
	}

	switch c.ReduceDB {
	case "":
	case "never":
		opts.ReduceDB = solver.ReduceDBNever
	case "symmetry_safe":
		opts.ReduceDB = solver.ReduceDBSymmetrySafe
	default:
		return opts, fmt.Errorf("config: unknown reduce_db %q", c.ReduceDB)
	}

	if c.RestartFirst != nil {
		opts.RestartFirst = *c.RestartFirst
	}
	if c.RestartInc != nil {
		opts.RestartInc = *c.RestartInc
	}
	if c.VarDecay != nil {
		opts.VarDecay = *c.VarDecay
	}
	if c.ClauseDecay != nil {
		opts.ClauseDecay = *c.ClauseDecay
	}
	if c.InitialMaxLearnts != nil {
		opts.InitialMaxLearnts = *c.InitialMaxLearnts
	}
	if c.LearntGrowth != nil {
		opts.LearntGrowth = *c.LearntGrowth
	}
	if c.ArenaWasteThreshold != nil {
		opts.ArenaWasteThreshold = *c.ArenaWasteThreshold
	}
	if c.StopOnESBPConflict != nil {
		opts.StopOnESBPConflict = *c.StopOnESBPConflict
	}
	if c.RandomPolaritySeed != nil {
		opts.RandomPolaritySeed = *c.RandomPolaritySeed
	}
	if c.RandomPolarityFreq != nil {
		opts.RandomPolarityFreq = *c.RandomPolarityFreq
	}

	return opts, nil
}

// RequireVersion rejects the config if it declares a MinVersion newer than
// current, so rolling out a config written for a newer cosysat build fails
// loudly on an older binary instead of silently ignoring fields it doesn't
// know about. A config with no MinVersion always passes.
func (c *Config) RequireVersion(current semver.Version) error {
	if c.MinVersion == "" {
		return nil
	}
	want, err := semver.Parse(c.MinVersion)
	if err != nil {
		return fmt.Errorf("config: invalid min_version %q: %w", c.MinVersion, err)
	}
	if current.LT(want) {
		return fmt.Errorf("config: requires cosysat >= %s, running %s", want, current)
	}
	return nil
}
