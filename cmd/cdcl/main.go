// Command cdcl runs the solver core against a DIMACS CNF instance file,
// reporting SATISFIABLE/UNSATISFIABLE/UNKNOWN with SAT-Competition-style
// exit codes (10/20/0).
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/satcore/cdcl/internal/dimacs"
	"github.com/satcore/cdcl/internal/sat"
)

var (
	flagGzip         = pflag.BoolP("gzip", "z", false, "instance file is gzip-compressed")
	flagMaxConflicts = pflag.Int64("max-conflicts", -1, "stop after this many conflicts (-1: unlimited)")
	flagTimeout      = pflag.Duration("timeout", -1, "stop after this much wall-clock time (-1: unlimited)")
	flagSeed         = pflag.Int64("seed", 1, "random seed for phase selection")
	flagVerbose      = pflag.BoolP("verbose", "v", false, "print search progress to stderr")
	flagCPUProfile   = pflag.String("cpuprofile", "", "write a pprof CPU profile to this file")
)

func parseArgs() (string, error) {
	pflag.Parse()
	if pflag.NArg() != 1 {
		return "", fmt.Errorf("usage: cdcl [flags] <instance.cnf>")
	}
	return pflag.Arg(0), nil
}

func run(instanceFile string, logger zerolog.Logger) (sat.Status, *sat.Solver, error) {
	opts := sat.DefaultOptions
	opts.MaxConflicts = *flagMaxConflicts
	if *flagTimeout >= 0 {
		opts.MaxTime = *flagTimeout
	}
	opts.Seed = *flagSeed
	var cancel atomic.Bool
	opts.Cancel = &cancel
	if *flagVerbose {
		opts.Trace = os.Stderr
	}

	s := sat.NewWithOptions(opts)
	if err := dimacs.Load(instanceFile, *flagGzip, s); err != nil {
		return sat.StatusUnknown, nil, err
	}

	logger.Info().
		Int("variables", s.NumVariables()).
		Int("clauses", s.NumConstraints()).
		Msg("instance loaded")

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	stats := s.Statistics()
	logger.Info().
		Stringer("status", status).
		Dur("elapsed", elapsed).
		Int64("conflicts", stats.Conflicts).
		Int64("decisions", stats.Decisions).
		Int64("restarts", stats.Restarts).
		Int64("learned_clauses", stats.LearnedClauses).
		Msg("search complete")

	return status, s, nil
}

func printModel(s *sat.Solver) {
	fmt.Println("v")
	for v := 1; v <= s.NumVariables(); v++ {
		if s.ModelValue(v) == sat.True {
			fmt.Printf("%d ", v)
		} else {
			fmt.Printf("-%d ", v)
		}
	}
	fmt.Println("0")
}

func main() {
	instanceFile, err := parseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	if !*flagVerbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	status, s, err := run(instanceFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("solve failed")
	}

	fmt.Printf("s %s\n", status)
	switch status {
	case sat.Sat:
		printModel(s)
		os.Exit(10)
	case sat.Unsat:
		os.Exit(20)
	default:
		os.Exit(0)
	}
}
