// Package mocks provides shared test doubles for celconf packages.
package mocks

import (
	"sync"
	"sync/atomic"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"

	"github.com/celconf/celconf/internal/eval"
)

// Evaluator implements eval.Evaluator for testing.
// Use NewEvaluator() to create instances with a fluent builder API.
type Evaluator struct {
	results       map[string]ref.Val
	compileErrs   map[string]error
	evalErrs      map[string]error
	defaultResult ref.Val

	// Execution tracking (thread-safe)
	compileCount int32
	mu           sync.Mutex
	compiled     []string
}

// NewEvaluator creates a new mock evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		results:     make(map[string]ref.Val),
		compileErrs: make(map[string]error),
		evalErrs:    make(map[string]error),
	}
}

// WithResult scripts a successful evaluation result for an expression.
func (m *Evaluator) WithResult(expr string, v ref.Val) *Evaluator {
	m.results[expr] = v
	return m
}

// WithCompileError scripts a compile failure for an expression.
func (m *Evaluator) WithCompileError(expr string, err error) *Evaluator {
	m.compileErrs[expr] = err
	return m
}

// WithEvalError scripts an evaluation-time failure for an expression.
func (m *Evaluator) WithEvalError(expr string, err error) *Evaluator {
	m.evalErrs[expr] = err
	return m
}

// WithDefaultResult sets the value returned for unscripted expressions.
func (m *Evaluator) WithDefaultResult(v ref.Val) *Evaluator {
	m.defaultResult = v
	return m
}

// Compile implements eval.Evaluator.
func (m *Evaluator) Compile(expr string, decls []cel.EnvOption, opts eval.Options) (eval.Program, error) {
	atomic.AddInt32(&m.compileCount, 1)
	m.mu.Lock()
	m.compiled = append(m.compiled, expr)
	m.mu.Unlock()

	if err, ok := m.compileErrs[expr]; ok {
		return nil, err
	}

	result, ok := m.results[expr]
	if !ok {
		result = m.defaultResult
	}
	return program{result: result, err: m.evalErrs[expr]}, nil
}

// CompileCount returns the number of Compile calls (thread-safe).
func (m *Evaluator) CompileCount() int {
	return int(atomic.LoadInt32(&m.compileCount))
}

// Compiled returns the expressions passed to Compile, in call order.
func (m *Evaluator) Compiled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.compiled...)
}

type program struct {
	result ref.Val
	err    error
}

func (p program) Evaluate(activation map[string]any) (ref.Val, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}
