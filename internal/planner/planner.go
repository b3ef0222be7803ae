// Package planner solves every active scenario of a problem file.
package planner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/config"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/metrics"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner solves scenarios of one configuration with one engine.
type Runner struct {
	logger *zap.Logger
	engine lp.Engine
	conf   *config.Configuration

	// Concurrency caps the number of scenarios solved at once. Values below
	// 1 select GOMAXPROCS.
	Concurrency int
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario string
	Input    diet.Input
	Solution diet.Solution
	Duration time.Duration
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, engine lp.Engine, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, engine: engine, conf: conf}, nil
}

type job struct {
	scenario string
	input    diet.Input
	model    *diet.Model
}

// Run builds every active scenario and solves them concurrently. Results are
// returned in configuration order. A scenario whose input fails to build
// aborts the run before any solve starts; infeasible or unsolved scenarios do
// not.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	for _, s := range r.conf.Scenarios {
		if !s.Active {
			r.logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", s.Name),
				zap.String("op", "planner.Run"),
			)
		}
	}

	scenarios := r.conf.ActiveScenarios()
	jobs := make([]job, len(scenarios))
	for i, s := range scenarios {
		in := r.conf.Input(s)
		model, err := diet.Build(in)
		if err != nil {
			metrics.ObserveBuildError(err)
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		jobs[i] = job{scenario: s.Name, input: in, model: model}
	}

	limit := r.Concurrency
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.solve(jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) solve(j job) Result {
	start := time.Now()
	sol := diet.SolveAndMap(r.engine, j.model)
	elapsed := time.Since(start)
	metrics.ObserveSolve(sol.Status, elapsed)

	fields := []zap.Field{
		zap.String("op", "planner.solve"),
		zap.String("scenario", j.scenario),
		zap.String("engine", sol.Engine),
		zap.String("status", sol.Status.String()),
		zap.Int("goods", len(j.input.Goods)),
		zap.Int("constraints", len(j.model.Constraints())),
		zap.Duration("duration", elapsed),
	}
	switch {
	case sol.HasValues():
		r.logger.Info("scenario solved", append(fields, zap.Float64("cost", sol.Cost))...)
	case sol.Cause != nil:
		r.logger.Warn("scenario not solved",
			append(fields, zap.String("engineCode", sol.EngineCode), zap.Error(sol.Cause))...)
	default:
		r.logger.Info("scenario has no optimal solution", fields...)
	}

	return Result{Scenario: j.scenario, Input: j.input, Solution: sol, Duration: elapsed}
}
