// Command lvdiff solves a linear system described in a YAML or TOML file and
// prints x, with its derivatives when A or b carries them, as YAML.
//
// Usage:
//
//	lvdiff system.yaml
//
// Environment:
//
//	LVDIFF_SOLVER_METHOD              default factorization (lu, cholesky, qr)
//	LVDIFF_SOLVER_SYMMETRY_TOLERANCE  Cholesky symmetry tolerance
//	LVDIFF_SOLVER_VALIDATE_NAN_INF    reject non-finite values in A
//	LVDIFF_LOG_LEVEL                  debug, info, warn, error
//	LVDIFF_LOG_DEV                    console logging when true
package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvdiff/internal/config"
	"github.com/katalvlaran/lvdiff/internal/logging"
	"github.com/katalvlaran/lvdiff/linsolve"
	"github.com/katalvlaran/lvdiff/problem"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: lvdiff <system.yaml|system.toml>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cfg = config.Default()
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1], cfg, logger, os.Stdout); err != nil {
		logger.Error("solve failed", zap.String("file", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

// run loads the problem at path, solves it and writes the report to out.
func run(path string, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	p, err := problem.Load(path)
	if err != nil {
		return err
	}
	if p.Method == "" {
		p.Method = cfg.Solver.Method
	}
	opts, err := p.Options()
	if err != nil {
		return err
	}
	if tol := cfg.Solver.SymmetryTolerance; !(tol >= 0) || math.IsInf(tol, 0) {
		return fmt.Errorf("invalid LVDIFF_SOLVER_SYMMETRY_TOLERANCE %g", tol)
	}
	opts = append(opts,
		linsolve.WithSymmetryTolerance(cfg.Solver.SymmetryTolerance),
		linsolve.WithLogger(logger),
	)
	if !cfg.Solver.ValidateNaNInf {
		opts = append(opts, linsolve.WithNoValidateNaNInf())
	}

	a, b, err := p.Operands()
	if err != nil {
		return err
	}
	x, err := linsolve.LinearSolve(a, b, opts...)
	if err != nil {
		return err
	}
	rep, err := problem.NewReport(x)
	if err != nil {
		return err
	}
	logger.Info("solved",
		zap.String("file", path),
		zap.String("method", p.Method),
		zap.String("kind", rep.Kind),
		zap.Int("derivatives", len(rep.Derivatives)),
	)

	data, err := rep.YAML()
	if err != nil {
		return err
	}
	_, err = out.Write(data)

	return err
}
