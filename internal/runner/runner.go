// Package runner executes fixture suites against an evaluator, sequentially
// or with a bounded worker pool.
package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/cel-go/common/types/ref"

	"github.com/celconf/celconf/internal/classify"
	"github.com/celconf/celconf/internal/escape"
	"github.com/celconf/celconf/internal/eval"
	"github.com/celconf/celconf/internal/fixture"
	"github.com/celconf/celconf/internal/output"
	"github.com/celconf/celconf/internal/report"
	"github.com/celconf/celconf/internal/scenario"
	"github.com/celconf/celconf/internal/value"
)

const (
	// minParallelWorkers ensures at least one worker to prevent semaphore
	// deadlock, even if runtime.NumCPU() returns 0 (which can happen in
	// containerized or restricted environments where CPU detection fails).
	minParallelWorkers = 1

	// maxParallelWorkers caps CELCONF_PARALLEL at 256 workers. Scenarios are
	// CPU-bound compile/eval cycles; beyond this limit goroutine scheduling
	// overhead outweighs any parallelism benefit.
	maxParallelWorkers = 256
)

// Runner executes scenarios against a single evaluator.
type Runner struct {
	ev  eval.Evaluator
	out *output.Writer
}

// Options configures suite execution.
type Options struct {
	// Policy selects how strictly expected error categories must match.
	Policy classify.Policy

	// Parallel enables concurrent scenario execution with a worker pool.
	// Scenarios are independent; order of completion is not deterministic
	// but the aggregated counts are.
	Parallel bool

	// Container is the default expression container for scenarios that do
	// not name their own.
	Container string
}

// New creates a Runner.
func New(ev eval.Evaluator, out *output.Writer) *Runner {
	return &Runner{ev: ev, out: out}
}

// RunAll executes every suite and aggregates the counts.
func (r *Runner) RunAll(ctx context.Context, suites []*fixture.Suite, opts Options) *report.Counts {
	total := &report.Counts{}
	for _, s := range suites {
		if ctx.Err() != nil {
			break
		}
		total.Add(r.RunSuite(ctx, s, opts))
	}
	return total
}

// RunSuite executes one suite. Scenario failures are recorded in the counts,
// never returned: a conformance run always reports the full suite.
func (r *Runner) RunSuite(ctx context.Context, s *fixture.Suite, opts Options) *report.Counts {
	r.out.SuiteStart(s.Name, len(s.Scenarios))

	if opts.Parallel {
		return r.runParallel(ctx, s, opts)
	}
	return r.runSequential(ctx, s, opts)
}

func (r *Runner) runSequential(ctx context.Context, s *fixture.Suite, opts Options) *report.Counts {
	counts := &report.Counts{}
	for _, sc := range s.Scenarios {
		if ctx.Err() != nil {
			break
		}
		r.record(counts, s.Name, sc, r.runScenario(sc, opts))
	}
	return counts
}

// runParallel executes scenarios concurrently using a channel-as-semaphore
// worker pool. Unlike a build pipeline there is no fail-fast: every scenario
// runs regardless of earlier failures.
func (r *Runner) runParallel(ctx context.Context, s *fixture.Suite, opts Options) *report.Counts {
	workers := getParallelWorkers(r.out)

	counts := &report.Counts{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, sc := range s.Scenarios {
		wg.Add(1)
		go func(sc fixture.Scenario) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			outcome := r.runScenario(sc, opts)

			mu.Lock()
			defer mu.Unlock()
			r.record(counts, s.Name, sc, outcome)
		}(sc)
	}

	wg.Wait()
	return counts
}

type outcome struct {
	diags []string
	err   error
}

// runScenario evaluates and verifies a single scenario with a fresh context.
func (r *Runner) runScenario(sc fixture.Scenario, opts Options) outcome {
	c := scenario.NewContext()
	c.Expression = escape.Normalize(sc.Expr, sc.Quote)
	c.Container = sc.Container
	if c.Container == "" {
		c.Container = opts.Container
	}
	c.DisableCheck = sc.DisableCheck
	c.Declare(sc.TypeEnv...)

	for _, b := range sc.Bindings {
		v, err := translateBinding(b)
		if err != nil {
			return outcome{err: err}
		}
		c.Bind(b.Name, v)
	}

	if err := scenario.Evaluate(c, r.ev); err != nil {
		return outcome{err: err}
	}

	diags, err := scenario.Verify(c, sc.Want, opts.Policy)
	return outcome{diags: diags, err: err}
}

// record folds one scenario outcome into the counts and prints it. Callers
// in parallel mode hold the counts lock, which also serializes output.
func (r *Runner) record(counts *report.Counts, suite string, sc fixture.Scenario, o outcome) {
	for _, d := range o.diags {
		counts.Diag()
		r.out.Diag("%s: %s", sc.Name, d)
	}
	if o.err != nil {
		counts.Fail(suite, sc.Name, o.err.Error())
		r.out.ScenarioFail(sc.Name, o.err)
		return
	}
	counts.Pass()
	r.out.ScenarioPass(sc.Name)
}

func translateBinding(b fixture.Binding) (ref.Val, error) {
	v, err := value.Translate(b.Value)
	if err != nil {
		return nil, fmt.Errorf("binding %q: %w", b.Name, err)
	}
	return v, nil
}

// defaultWorkerCount returns the default number of parallel workers based on
// CPU count, never below minParallelWorkers.
func defaultWorkerCount() int {
	return max(minParallelWorkers, runtime.NumCPU())
}

// getParallelWorkers returns the number of parallel workers to use. Invalid
// CELCONF_PARALLEL values (non-numeric, <1, >256) log a warning and fall
// back to runtime.NumCPU().
func getParallelWorkers(out *output.Writer) int {
	env := os.Getenv("CELCONF_PARALLEL")
	if env == "" {
		return defaultWorkerCount()
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		out.WarningSimple("invalid CELCONF_PARALLEL value %q (not a number), using default", env)
		return defaultWorkerCount()
	}

	if n < minParallelWorkers || n > maxParallelWorkers {
		out.WarningSimple("CELCONF_PARALLEL=%d out of range [%d-%d], using default", n, minParallelWorkers, maxParallelWorkers)
		return defaultWorkerCount()
	}

	return n
}
