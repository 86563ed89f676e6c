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

package gopapilo

import (
	"fmt"
	"runtime"

	"github.com/costela/gopapilo/internal/native"
)

// Solver owns one native solver and at most one Problem loaded into it.
type Solver struct {
	engine  native.Engine
	handle  native.SolverHandle
	logger  Logger
	closed  bool
	problem native.ProblemHandle
	numCols int
}

// NewSolver allocates a native solver with no problem attached.
func NewSolver(opts ...Option) (*Solver, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("applying solver option: %w", err)
	}

	handle := o.engine.CreateSolver()
	if handle == nil {
		return nil, &NativeError{Op: "papilo_solver_create", Err: ErrNullHandle}
	}

	solver := &Solver{
		engine: o.engine,
		handle: handle,
		logger: o.logger,
	}

	runtime.SetFinalizer(solver, finalizeSolver)

	solver.logger.Debugf("created solver %p", handle)

	return solver, nil
}

// finalizeSolver is the function registered to be called upon garbage-
// collection of the solver value
func finalizeSolver(solver *Solver) {
	if !solver.closed {
		solver.release()
	}
}

// release frees the solver before the problem it owns: the solver may
// still point into the problem while tearing down.
func (solver *Solver) release() {
	solver.engine.FreeSolver(solver.handle)
	solver.logger.Debugf("released solver %p", solver.handle)

	if solver.problem != nil {
		solver.engine.FreeProblem(solver.problem)
		solver.logger.Debugf("released problem %p owned by solver %p", solver.problem, solver.handle)
	}

	solver.handle = nil
	solver.problem = nil
	solver.closed = true
}

// Close frees the native solver together with the problem it owns. It is
// safe to call Close multiple times.
func (solver *Solver) Close() {
	if solver.closed {
		return
	}

	solver.release()
	runtime.SetFinalizer(solver, nil)
}

// HasProblem reports whether a problem has been loaded.
func (solver *Solver) HasProblem() bool {
	return solver.problem != nil
}

// LoadProblem moves problem into the solver. On success the solver owns
// the native problem and every later call on problem fails with
// ErrProblemConsumed; closing problem becomes a no-op.
//
// A solver holds at most one problem: loading a second one fails with
// ErrProblemLoaded and leaves the offered problem with the caller.
func (solver *Solver) LoadProblem(problem *Problem) error {
	if solver.closed {
		return ErrClosed
	}
	if err := problem.usable(); err != nil {
		return fmt.Errorf("loading problem: %w", err)
	}
	if solver.problem != nil {
		return ErrProblemLoaded
	}
	if problem.engine != solver.engine {
		return ErrEngineMismatch
	}

	solver.engine.SolverLoadProblem(solver.handle, problem.handle)
	runtime.KeepAlive(solver)

	solver.problem = problem.handle
	solver.numCols = problem.cols

	problem.handle = nil
	problem.state = stateConsumed
	runtime.SetFinalizer(problem, nil)

	solver.logger.Debugf("solver %p took ownership of problem %p", solver.handle, solver.problem)

	return nil
}

// Start runs papilo on the loaded problem and blocks until it is done.
// There is no way to interrupt it from here; set a time limit parameter
// beforehand instead.
//
// A problem must have been loaded. Starting an empty solver is left to
// the native library and its behaviour is undefined.
//
// Start panics if papilo reports a result this package does not know,
// which means it was built against a different library version.
func (solver *Solver) Start() (SolveInfo, SolveResult, error) {
	if solver.closed {
		return SolveInfo{}, 0, ErrClosed
	}

	solver.logger.Debugf("starting solver %p", solver.handle)

	raw := solver.engine.SolverStart(solver.handle, solver.numCols)
	runtime.KeepAlive(solver)

	result := solveResultFromNative(raw.Status)

	solver.logger.Debugf("solver %p finished: %s", solver.handle, result)

	return solveInfoFromNative(raw), result, nil
}
