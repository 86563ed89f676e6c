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

/*

GoPaPILO is a library for building mixed-integer problems and handing
them to the PaPILO presolver without touching any native pointer.

A Problem is built column by column and row by row, then loaded into a
Solver. Loading moves the problem: the Solver owns it from then on and the
Problem value refuses any further use. Closing the Solver (or letting the
garbage collector reach it) frees both native resources, each exactly
once.

	package main

	import (
		"fmt"
		"math"

		"github.com/costela/gopapilo"
	)

	func main() {
		problem, _ := gopapilo.NewProblem()
		x, _ := problem.AddColumn(1, 10, true, 10, "x")
		problem.AddRow("r1", []gopapilo.Coefficient{{Column: x, Value: 1}}, 2.5, math.Inf(1))

		solver, _ := gopapilo.NewSolver()
		defer solver.Close()

		solver.LoadProblem(problem) // problem is unusable from here on
		gopapilo.SetParameter(solver, "presolve.threads", int32(1))

		info, result, _ := solver.Start() // you should check for errors

		fmt.Printf("result: %s\n", result)
		fmt.Printf("objective: %f\n", info.BestObjective())
	}

None of the types are safe for concurrent use.

*/
package gopapilo

import (
	"fmt"
	"math"
	"runtime"

	"github.com/costela/gopapilo/internal/native"
)

/* Types */

const (
	problemName = "gopapilo"

	// capacity hints only, not limits
	rowHint = 1000
	colHint = 10
	nnzHint = 10
)

type handleState int

const (
	stateOpen handleState = iota
	stateConsumed
	stateClosed
)

// Problem owns one native problem until it is either closed or loaded
// into a Solver.
type Problem struct {
	engine native.Engine
	handle native.ProblemHandle
	logger Logger
	state  handleState
	cols   int
	rows   int
}

// Coefficient is one nonzero entry of a row.
type Coefficient struct {
	Column int
	Value  float64
}

/* Problem related functions */

// NewProblem allocates an empty native problem with an infinite default
// upper bound.
func NewProblem(opts ...Option) (*Problem, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("applying problem option: %w", err)
	}

	handle := o.engine.CreateProblem(math.Inf(1), problemName, rowHint, colHint, nnzHint)
	if handle == nil {
		return nil, &NativeError{Op: "papilo_problem_create", Err: ErrNullHandle}
	}

	problem := &Problem{
		engine: o.engine,
		handle: handle,
		logger: o.logger,
	}

	// plug the native destructor to the instance of Problem, otherwise
	// an unclosed problem leaks the underlying struct
	runtime.SetFinalizer(problem, finalizeProblem)

	problem.logger.Debugf("created problem %p", handle)

	return problem, nil
}

// finalizeProblem is the function registered to be called upon garbage-
// collection of the problem value
func finalizeProblem(problem *Problem) {
	if problem.state == stateOpen {
		problem.release()
	}
}

func (problem *Problem) release() {
	problem.engine.FreeProblem(problem.handle)
	problem.logger.Debugf("released problem %p", problem.handle)

	problem.handle = nil
	problem.state = stateClosed
}

// usable reports why the problem may not be touched anymore, if so.
func (problem *Problem) usable() error {
	switch problem.state {
	case stateOpen:
		return nil
	case stateConsumed:
		return ErrProblemConsumed
	default:
		return ErrClosed
	}
}

// Close frees the native problem. It is a no-op for problems already
// closed or loaded into a Solver.
func (problem *Problem) Close() {
	if problem.state != stateOpen {
		return
	}

	problem.release()
	runtime.SetFinalizer(problem, nil)
}

/* Column-related functions */

// NumColumns returns the number of columns added so far.
func (problem *Problem) NumColumns() int {
	return problem.cols
}

// AddColumn appends a column (a decision variable) and returns its index.
// Indices start at 0 and follow creation order. ub may be math.Inf(1).
func (problem *Problem) AddColumn(lb, ub float64, integer bool, cost float64, name string) (int, error) {
	if err := problem.usable(); err != nil {
		return -1, err
	}
	if err := checkText("column name", name); err != nil {
		return -1, err
	}

	index := problem.engine.ProblemAddCol(problem.handle, lb, ub, integer, cost, name)
	runtime.KeepAlive(problem)

	if index < 0 {
		return -1, &NativeError{Op: "papilo_problem_add_col", Err: fmt.Errorf("negative column index %d", index)}
	}

	problem.cols++

	return index, nil
}

/* Row-related functions */

// NumRows returns the number of rows added so far.
func (problem *Problem) NumRows() int {
	return problem.rows
}

// AddRow appends a row lhs <= sum(coefs) <= rhs and returns its index.
// rhs may be math.Inf(1). The row is created first, then every nonzero is
// added in the given order.
//
// Every Column referenced in coefs must already exist in the problem.
// This is not checked: papilo does not check it either, and the outcome
// of violating it is up to the native library.
func (problem *Problem) AddRow(name string, coefs []Coefficient, lhs, rhs float64) (int, error) {
	if err := problem.usable(); err != nil {
		return -1, err
	}
	if err := checkText("row name", name); err != nil {
		return -1, err
	}

	row := problem.engine.ProblemAddRow(problem.handle, lhs, rhs, name)
	if row < 0 {
		runtime.KeepAlive(problem)
		return -1, &NativeError{Op: "papilo_problem_add_generic_row", Err: fmt.Errorf("negative row index %d", row)}
	}

	for _, c := range coefs {
		problem.engine.ProblemAddNonzero(problem.handle, row, c.Column, c.Value)
	}
	runtime.KeepAlive(problem)

	problem.rows++

	return row, nil
}
