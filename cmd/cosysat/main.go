// Command cosysat is the CLI driver for the symmetry-aware CDCL solver
// (spec.md §6), ported from gatosat's main.go: the same urfave/cli flag
// set and the same timeout/interrupt/statistics structure, extended with
// config-file loading, symmetry-generator file loading, a Prometheus
// metrics endpoint, and colorized/TTY-aware output.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blang/semver/v4"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/k0kubun/pp"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"

	"github.com/lip6/ESBP-SEL/internal/config"
	"github.com/lip6/ESBP-SEL/internal/format"
	"github.com/lip6/ESBP-SEL/internal/lit"
	"github.com/lip6/ESBP-SEL/internal/metrics"
	"github.com/lip6/ESBP-SEL/internal/solver"
	"github.com/lip6/ESBP-SEL/internal/symmetry"
)

// version is cosysat's own semver, compared against a config file's
// optional min_version field so an operator rolling out a new config can't
// silently run it against a solver binary too old to understand it.
var version = semver.MustParse("0.1.0")

var startTime time.Time
var debugMode bool

func init() {
	startTime = time.Now()
}

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "debug,d",
			Usage: "Debug mode: pretty-print solver statistics with github.com/k0kubun/pp",
		},
		cli.BoolTFlag{
			Name:  "verbosity,verb",
			Usage: "Verbosity mode",
		},
		cli.StringFlag{
			Name:  "input-file, in",
			Usage: "Input cnf file for solving (required)",
			Value: "None",
		},
		cli.IntFlag{
			Name:  "cpu-time-limit",
			Usage: "Limit on CPU time allowed in seconds",
			Value: -1,
		},
		cli.StringFlag{
			Name:  "result-output-file, out",
			Usage: "Output file",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML config file overriding solver.DefaultOptions",
		},
		cli.StringFlag{
			Name:  "symmetry-file, sym",
			Usage: "Symmetry-generator file (BreakID or Bliss format)",
		},
		cli.StringFlag{
			Name:  "symmetry-format",
			Usage: "Symmetry-generator file format: \"breakid\" or \"bliss\"",
			Value: "breakid",
		},
		cli.BoolFlag{
			Name:  "watch-config",
			Usage: "Watch --config for changes and log when it is edited mid-run",
		},
		cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "If set, serve Prometheus metrics on this address (e.g. :9090)",
		},
		cli.BoolFlag{
			Name:  "color",
			Usage: "Force colorized output even when stdout is not a terminal",
		},
	}
}

func validateFlags(c *cli.Context) error {
	if c.String("input-file") == "None" {
		return fmt.Errorf("input-file is required")
	}
	return nil
}

func colorsEnabled(c *cli.Context) bool {
	return c.Bool("color") || isatty.IsTerminal(os.Stdout.Fd())
}

func printProblemStatistics(s *solver.Solver, useColor bool) {
	header := "c ============================[ Problem Statistics ]============================="
	if useColor {
		header = color.CyanString(header)
	}
	fmt.Println(header)
	fmt.Printf("c |  Number of variables:  %12d                                         |\n", s.NumVars())
	fmt.Printf("c |  Number of clauses:    %12d                                         |\n", s.Stats().NumClauses)
}

func printStatistics(s *solver.Solver, debug bool) {
	elapsed := time.Since(startTime).Seconds()
	stats := s.Stats()
	fmt.Println("c ================================================================================")
	fmt.Printf("c restarts: %12d\n", stats.Restarts)
	fmt.Printf("c conflicts: %12d (%.02f / sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed)
	fmt.Printf("c decisions: %12d (%.02f / sec)\n", stats.Decisions, float64(stats.Decisions)/elapsed)
	fmt.Printf("c propagations: %12d (%.02f / sec)\n", stats.Propagations, float64(stats.Propagations)/elapsed)
	fmt.Printf("c reduce DB: %12d\n", stats.ReduceDBRuns)
	fmt.Printf("c removed clause: %12d\n", stats.RemovedClauses)
	fmt.Printf("c esbp injections: %12d\n", stats.ESBPInjections)
	fmt.Printf("c generator propagations: %12d\n", stats.GeneratorPropagations)
	fmt.Printf("c selector propagations: %12d\n", stats.SelectorPropagations)
	fmt.Printf("c cpu time: %12f\n", elapsed)
	if debug {
		pp.Println(stats)
	}
}

func setTimeOut(s *solver.Solver, limitSeconds int, verbose bool) {
	if limitSeconds <= 0 {
		return
	}
	go func() {
		<-time.After(time.Duration(limitSeconds) * time.Second)
		fmt.Println("c TIMEOUT")
		if verbose {
			printStatistics(s, debugMode)
		}
		fmt.Println("\ns INDETERMINATE")
		os.Exit(0)
	}()
}

func setInterrupt(s *solver.Solver, verbose bool) {
	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		s.Interrupt()
		fmt.Println("c INTERRUPT")
		if verbose {
			printStatistics(s, debugMode)
		}
		fmt.Println("\ns INDETERMINATE")
		os.Exit(0)
	}()
}

// watchConfig logs, via the given logger, whenever the config file at path
// changes on disk. It never reloads live solver options mid-Solve — the
// solver is single-threaded and non-reentrant (spec.md §5) — it exists so
// an operator notices a config edit landed after the run that should have
// picked it up starts.
func watchConfig(path string, log logr.Logger) {
	if path == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error(err, "failed to start config watcher")
		return
	}
	if err := watcher.Add(path); err != nil {
		log.Error(err, "failed to watch config file", "path", path)
		return
	}
	go func() {
		for event := range watcher.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Info("config file changed on disk; restart cosysat to apply it", "path", path)
			}
		}
	}()
}

func loadSymmetryFile(s *solver.Solver, path, format_ string) error {
	if path == "" {
		return nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()

	var gens []*symmetry.Generator
	switch format_ {
	case "breakid":
		gens, err = format.ReadBreakIDGenerators(fp, s.NumVars())
	case "bliss":
		gens, err = format.ReadBlissGenerators(fp, s.NumVars())
	default:
		return fmt.Errorf("unknown symmetry-format %q", format_)
	}
	if err != nil {
		return err
	}
	for _, g := range gens {
		s.AddGenerator(g)
	}
	return nil
}

func serveMetrics(addr string, s *solver.Solver, instance string, log logr.Logger) {
	if addr == "" {
		return
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(s, instance))
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error(err, "metrics server exited")
		}
	}()
}

func buildOptions(c *cli.Context) (solver.Options, error) {
	opts := solver.DefaultOptions()
	path := c.String("config")
	if path == "" {
		return opts, nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return opts, err
	}
	defer fp.Close()

	cfg, err := config.Load(fp)
	if err != nil {
		return opts, err
	}
	if err := cfg.RequireVersion(version); err != nil {
		return opts, err
	}
	opts, err = cfg.ApplyTo(opts)
	if err != nil {
		return opts, err
	}

	if c.Bool("watch-config") {
		watchConfig(path, funcr.New(func(prefix, args string) {
			fmt.Println("c", prefix, args)
		}, funcr.Options{}))
	}
	return opts, nil
}

func run(c *cli.Context) error {
	if err := validateFlags(c); err != nil {
		fmt.Println(err)
		cli.ShowAppHelpAndExit(c, 2)
	}
	useColor := colorsEnabled(c)
	verbose := c.Bool("verbosity")

	opts, err := buildOptions(c)
	if err != nil {
		return err
	}

	inputFile := c.String("input-file")
	fp, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer fp.Close()

	cnf, err := format.ReadDIMACS(fp)
	if err != nil {
		return err
	}

	s := solver.NewSolver(opts)
	format.LoadInto(s, cnf)

	if err := loadSymmetryFile(s, c.String("symmetry-file"), c.String("symmetry-format")); err != nil {
		return fmt.Errorf("loading symmetry file: %w", err)
	}

	setTimeOut(s, c.Int("cpu-time-limit"), verbose)
	setInterrupt(s, verbose)
	serveMetrics(c.String("metrics-addr"), s, inputFile, opts.Logger)

	if verbose {
		printProblemStatistics(s, useColor)
	}

	status := s.Solve(nil)

	if verbose {
		printStatistics(s, debugMode)
	}

	out := os.Stdout
	if path := c.String("result-output-file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	fmt.Println()
	if err := format.WriteResult(out, status, s); err != nil {
		return err
	}
	// DIMACS solver-competition exit codes: 10 SAT, 20 UNSAT, 0 otherwise.
	switch status {
	case lit.True:
		return cli.NewExitError("", 10)
	case lit.False:
		return cli.NewExitError("", 20)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "cosysat"
	app.Usage = "A symmetry-aware CDCL SAT solver"
	app.Version = version.String()
	app.Flags = getFlags()

	app.Before = func(c *cli.Context) error {
		debugMode = c.Bool("debug")
		return nil
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
