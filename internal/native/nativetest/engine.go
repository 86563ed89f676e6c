/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package nativetest provides an in-memory native.Engine that keeps track of
// every handle it hands out. It does not solve anything: solving info is
// produced by a user-supplied function.
package nativetest

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"unsafe"

	"github.com/costela/gopapilo/internal/native"
)

type Column struct {
	Lower   float64
	Upper   float64
	Integer bool
	Cost    float64
	Name    string
}

type Row struct {
	Name         string
	Lhs          float64
	Rhs          float64
	Coefficients map[int]float64
}

// Problem mirrors what the native library would have stored.
type Problem struct {
	ID       int
	Name     string
	Infinity float64
	RowHint  int
	ColHint  int
	NnzHint  int
	Columns  []Column
	Rows     []Row
	Freed    bool
}

type Solver struct {
	ID      int
	Problem *Problem
	Params  map[string]interface{}
	Starts  int
	Freed   bool
}

// Param describes one known configuration option. The dynamic type of
// Value is the kind the option accepts.
type Param struct {
	Value interface{}
	Valid func(v interface{}) bool
}

// DefaultParams returns a small registry resembling papilo's own options.
func DefaultParams() map[string]Param {
	nonNegInt := func(v interface{}) bool { return v.(int32) >= 0 }
	upTo := func(hi int32) func(interface{}) bool {
		return func(v interface{}) bool { i := v.(int32); return i >= 0 && i <= hi }
	}
	return map[string]Param{
		"presolve.randomseed":   {Value: int32(0), Valid: nonNegInt},
		"presolve.threads":      {Value: int32(0), Valid: nonNegInt},
		"presolve.dualreds":     {Value: int32(2), Valid: upTo(2)},
		"presolve.detectlindep": {Value: int32(2), Valid: upTo(2)},
		"message.verbosity":     {Value: int32(3), Valid: upTo(4)},
		"presolve.tlim":         {Value: math.Inf(1), Valid: func(v interface{}) bool { return v.(float64) > 0 }},
		"presolve.abortfac":     {Value: 8e-4, Valid: func(v interface{}) bool { f := v.(float64); return f >= 0 && f <= 1 }},
		"substitution.enabled":  {Value: true},
		"dualfix.enabled":       {Value: true},
		"presolve.logfile":      {Value: ""},
	}
}

// Engine is safe for concurrent use so that finalizers may free handles
// while a test inspects its state.
type Engine struct {
	// FailCreateProblem and FailCreateSolver make the respective
	// constructor return a nil handle.
	FailCreateProblem bool
	FailCreateSolver  bool

	// Solve produces the solving info for a started solver. The problem
	// is nil when nothing was loaded. Defaults to an optimal, all-zero
	// result.
	Solve func(p *Problem) native.SolveInfo

	// ForcedParamStatus, when set, is returned by every parameter call
	// without touching the solver.
	ForcedParamStatus *native.ParamStatus

	params map[string]Param

	mu         sync.Mutex
	problems   map[native.ProblemHandle]*Problem
	solvers    map[native.SolverHandle]*Solver
	events     []string
	violations []string
}

var _ native.Engine = (*Engine)(nil)

// New returns an engine knowing the given parameters, or DefaultParams
// when params is nil.
func New(params map[string]Param) *Engine {
	if params == nil {
		params = DefaultParams()
	}
	return &Engine{
		params:   params,
		problems: make(map[native.ProblemHandle]*Problem),
		solvers:  make(map[native.SolverHandle]*Solver),
	}
}

func (e *Engine) violation(format string, args ...interface{}) {
	e.violations = append(e.violations, fmt.Sprintf(format, args...))
}

// problem must be called with mu held.
func (e *Engine) problem(op string, h native.ProblemHandle) *Problem {
	p, ok := e.problems[h]
	if !ok {
		e.violation("%s: unknown problem handle %p", op, h)
		return nil
	}
	if p.Freed {
		e.violation("%s: problem #%d used after free", op, p.ID)
		return nil
	}
	return p
}

// solver must be called with mu held.
func (e *Engine) solver(op string, h native.SolverHandle) *Solver {
	s, ok := e.solvers[h]
	if !ok {
		e.violation("%s: unknown solver handle %p", op, h)
		return nil
	}
	if s.Freed {
		e.violation("%s: solver #%d used after free", op, s.ID)
		return nil
	}
	return s
}

func (e *Engine) CreateProblem(infinity float64, name string, rowHint, colHint, nnzHint int) native.ProblemHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailCreateProblem {
		return nil
	}

	p := &Problem{
		ID:       len(e.problems),
		Name:     name,
		Infinity: infinity,
		RowHint:  rowHint,
		ColHint:  colHint,
		NnzHint:  nnzHint,
	}
	h := native.ProblemHandle(unsafe.Pointer(p))
	e.problems[h] = p
	e.events = append(e.events, fmt.Sprintf("create problem #%d", p.ID))
	return h
}

func (e *Engine) ProblemAddCol(h native.ProblemHandle, lb, ub float64, integer bool, cost float64, name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.problem("ProblemAddCol", h)
	if p == nil {
		return -1
	}
	p.Columns = append(p.Columns, Column{Lower: lb, Upper: ub, Integer: integer, Cost: cost, Name: name})
	return len(p.Columns) - 1
}

func (e *Engine) ProblemAddRow(h native.ProblemHandle, lhs, rhs float64, name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.problem("ProblemAddRow", h)
	if p == nil {
		return -1
	}
	p.Rows = append(p.Rows, Row{Name: name, Lhs: lhs, Rhs: rhs, Coefficients: map[int]float64{}})
	return len(p.Rows) - 1
}

func (e *Engine) ProblemAddNonzero(h native.ProblemHandle, row, col int, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.problem("ProblemAddNonzero", h)
	if p == nil {
		return
	}
	if row < 0 || row >= len(p.Rows) {
		e.violation("ProblemAddNonzero: row %d out of range", row)
		return
	}
	if col < 0 || col >= len(p.Columns) {
		e.violation("ProblemAddNonzero: column %d out of range", col)
		return
	}
	p.Rows[row].Coefficients[col] = value
}

func (e *Engine) FreeProblem(h native.ProblemHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.problems[h]
	if !ok {
		e.violation("FreeProblem: unknown problem handle %p", h)
		return
	}
	if p.Freed {
		e.violation("FreeProblem: problem #%d freed twice", p.ID)
		return
	}
	p.Freed = true
	e.events = append(e.events, fmt.Sprintf("free problem #%d", p.ID))
}

func (e *Engine) CreateSolver() native.SolverHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailCreateSolver {
		return nil
	}

	s := &Solver{
		ID:     len(e.solvers),
		Params: make(map[string]interface{}, len(e.params)),
	}
	for k, p := range e.params {
		s.Params[k] = p.Value
	}
	h := native.SolverHandle(unsafe.Pointer(s))
	e.solvers[h] = s
	e.events = append(e.events, fmt.Sprintf("create solver #%d", s.ID))
	return h
}

func (e *Engine) SolverLoadProblem(sh native.SolverHandle, ph native.ProblemHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.solver("SolverLoadProblem", sh)
	p := e.problem("SolverLoadProblem", ph)
	if s == nil || p == nil {
		return
	}
	if s.Problem != nil {
		e.violation("SolverLoadProblem: solver #%d already holds problem #%d", s.ID, s.Problem.ID)
	}
	s.Problem = p
	e.events = append(e.events, fmt.Sprintf("load problem #%d into solver #%d", p.ID, s.ID))
}

func (e *Engine) SolverStart(sh native.SolverHandle, numCols int) native.SolveInfo {
	e.mu.Lock()
	s := e.solver("SolverStart", sh)
	var p *Problem
	if s != nil {
		s.Starts++
		p = s.Problem
		if p != nil && len(p.Columns) != numCols {
			e.violation("SolverStart: expected %d columns, problem #%d has %d", numCols, p.ID, len(p.Columns))
		}
	}
	solve := e.Solve
	e.mu.Unlock()

	if solve == nil {
		info := native.SolveInfo{Status: native.SolveOptimal}
		if numCols > 0 {
			info.BestSol = make([]float64, numCols)
		}
		return info
	}
	return solve(p)
}

func (e *Engine) setParam(op string, sh native.SolverHandle, key string, value interface{}) native.ParamStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.solver(op, sh)
	if s == nil {
		return native.ParamNotFound
	}
	if e.ForcedParamStatus != nil {
		return *e.ForcedParamStatus
	}

	param, ok := e.params[key]
	if !ok {
		return native.ParamNotFound
	}
	if reflect.TypeOf(param.Value) != reflect.TypeOf(value) {
		return native.ParamWrongType
	}
	if param.Valid != nil && !param.Valid(value) {
		return native.ParamInvalidValue
	}
	s.Params[key] = value
	return native.ParamChanged
}

func (e *Engine) SolverSetParamBool(s native.SolverHandle, key string, value bool) native.ParamStatus {
	return e.setParam("SolverSetParamBool", s, key, value)
}

func (e *Engine) SolverSetParamInt(s native.SolverHandle, key string, value int32) native.ParamStatus {
	return e.setParam("SolverSetParamInt", s, key, value)
}

func (e *Engine) SolverSetParamReal(s native.SolverHandle, key string, value float64) native.ParamStatus {
	return e.setParam("SolverSetParamReal", s, key, value)
}

func (e *Engine) SolverSetParamString(s native.SolverHandle, key, value string) native.ParamStatus {
	return e.setParam("SolverSetParamString", s, key, value)
}

func (e *Engine) FreeSolver(h native.SolverHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.solvers[h]
	if !ok {
		e.violation("FreeSolver: unknown solver handle %p", h)
		return
	}
	if s.Freed {
		e.violation("FreeSolver: solver #%d freed twice", s.ID)
		return
	}
	s.Freed = true
	e.events = append(e.events, fmt.Sprintf("free solver #%d", s.ID))
}

/* Inspection */

// Problems returns every problem ever created, in creation order.
func (e *Engine) Problems() []*Problem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Problem, len(e.problems))
	for _, p := range e.problems {
		out[p.ID] = p
	}
	return out
}

// Solvers returns every solver ever created, in creation order.
func (e *Engine) Solvers() []*Solver {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Solver, len(e.solvers))
	for _, s := range e.solvers {
		out[s.ID] = s
	}
	return out
}

// Live returns the number of problems and solvers not freed yet.
func (e *Engine) Live() (problems, solvers int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.problems {
		if !p.Freed {
			problems++
		}
	}
	for _, s := range e.solvers {
		if !s.Freed {
			solvers++
		}
	}
	return
}

// Events lists creations, loads and frees in the order they happened.
func (e *Engine) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.events...)
}

// Violations lists every misuse of the call surface seen so far: double
// frees, use after free, unknown handles and out-of-range indices.
func (e *Engine) Violations() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.violations...)
}

// Param returns the current value of key on the solver with the given id.
func (e *Engine) Param(solverID int, key string) interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.solvers {
		if s.ID == solverID {
			return s.Params[key]
		}
	}
	return nil
}
