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

// Package native describes the call surface of the PaPILO C library.
//
// Nothing in here owns or frees anything: handles are plain pointers and
// every function is a direct mapping of one papilolib call. Ownership is
// the business of the public gopapilo package.
package native

import "unsafe"

// ProblemHandle points to a native Papilo_Problem.
type ProblemHandle unsafe.Pointer

// SolverHandle points to a native Papilo_Solver.
type SolverHandle unsafe.Pointer

// ParamStatus is the outcome of a papilo_solver_set_param_* call.
type ParamStatus int

const (
	ParamChanged      ParamStatus = 0
	ParamNotFound     ParamStatus = 1
	ParamWrongType    ParamStatus = 2
	ParamInvalidValue ParamStatus = 3
)

// SolveStatus is the solve_result field of the native solving info.
type SolveStatus int

const (
	SolveOptimal               SolveStatus = 0
	SolveFeasible              SolveStatus = 1
	SolveStopped               SolveStatus = 2
	SolveUnboundedOrInfeasible SolveStatus = 3
	SolveUnbounded             SolveStatus = 4
	SolveInfeasible            SolveStatus = 5
)

// SolveInfo is a by-value copy of the native solving info struct.
type SolveInfo struct {
	DualBound       float64
	SolvingTime     float64
	PresolveTime    float64
	BestSolObj      float64
	BestSolIntViol  float64
	BestSolBndViol  float64
	BestSolConsViol float64
	BestSol         []float64 // nil when the engine reported no solution
	Status          SolveStatus
}

// Engine is the fixed set of native calls. Strings passed in must not
// contain NUL bytes; callers validate them beforehand.
type Engine interface {
	CreateProblem(infinity float64, name string, rowHint, colHint, nnzHint int) ProblemHandle
	ProblemAddCol(p ProblemHandle, lb, ub float64, integer bool, cost float64, name string) int
	ProblemAddRow(p ProblemHandle, lhs, rhs float64, name string) int
	ProblemAddNonzero(p ProblemHandle, row, col int, value float64)
	FreeProblem(p ProblemHandle)

	CreateSolver() SolverHandle
	SolverLoadProblem(s SolverHandle, p ProblemHandle)
	// SolverStart runs the solver. numCols is the number of columns of the
	// loaded problem and bounds how much of the best solution gets copied.
	SolverStart(s SolverHandle, numCols int) SolveInfo
	SolverSetParamBool(s SolverHandle, key string, value bool) ParamStatus
	SolverSetParamInt(s SolverHandle, key string, value int32) ParamStatus
	SolverSetParamReal(s SolverHandle, key string, value float64) ParamStatus
	SolverSetParamString(s SolverHandle, key, value string) ParamStatus
	FreeSolver(s SolverHandle)
}
