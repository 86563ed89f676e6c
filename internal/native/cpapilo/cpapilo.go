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

// Package cpapilo implements native.Engine on top of papilolib.h.
//
// The library is expected in the default search paths; point CGO_CFLAGS
// and CGO_LDFLAGS elsewhere if it lives somewhere else.
package cpapilo

// #cgo linux LDFLAGS: -lpapilo -lstdc++ -lm
// #cgo darwin LDFLAGS: -L/usr/local/lib -lpapilo -lc++
// #cgo darwin CFLAGS: -I/usr/local/include
// #include <papilolib.h>
// #include <stdlib.h>
/*
// The shims below take untyped handles and plain ints so that the Go side
// does not depend on the exact typedef names of the header.

static void* gp_problem_create(double infinity, const char* name, int row_hint, int col_hint, int nnz_hint) {
	return papilo_problem_create(infinity, name, row_hint, col_hint, nnz_hint);
}

static int gp_problem_add_col(void* problem, double lb, double ub, int integral, double obj, const char* name) {
	return papilo_problem_add_col(problem, lb, ub, integral, obj, name);
}

static int gp_problem_add_generic_row(void* problem, double lhs, double rhs, const char* name) {
	return papilo_problem_add_generic_row(problem, lhs, rhs, name);
}

static void gp_problem_add_nonzero(void* problem, int row, int col, double val) {
	papilo_problem_add_nonzero(problem, row, col, val);
}

static void gp_problem_free(void* problem) {
	papilo_problem_free(problem);
}

static void* gp_solver_create(void) {
	return papilo_solver_create();
}

static void gp_solver_load_problem(void* solver, void* problem) {
	papilo_solver_load_problem(solver, problem);
}

static void gp_solver_free(void* solver) {
	papilo_solver_free(solver);
}

static int gp_solver_set_param_bool(void* solver, const char* key, int val) {
	return (int)papilo_solver_set_param_bool(solver, key, val);
}

static int gp_solver_set_param_int(void* solver, const char* key, int val) {
	return (int)papilo_solver_set_param_int(solver, key, val);
}

static int gp_solver_set_param_real(void* solver, const char* key, double val) {
	return (int)papilo_solver_set_param_real(solver, key, val);
}

static int gp_solver_set_param_string(void* solver, const char* key, const char* val) {
	return (int)papilo_solver_set_param_string(solver, key, val);
}

typedef struct {
	int ok;
	double dualbound;
	double solvingtime;
	double presolvetime;
	double bestsol_obj;
	double bestsol_intviol;
	double bestsol_boundviol;
	double bestsol_consviol;
	const double* bestsol;
	int solve_result;
} gp_solving_info;

static gp_solving_info gp_solver_start(void* solver) {
	gp_solving_info out = {0};
	__typeof__(papilo_solver_start(NULL)) info = papilo_solver_start(solver);
	if (info == NULL) {
		return out;
	}
	out.ok = 1;
	out.dualbound = info->dualbound;
	out.solvingtime = info->solvingtime;
	out.presolvetime = info->presolvetime;
	out.bestsol_obj = info->bestsol_obj;
	out.bestsol_intviol = info->bestsol_intviol;
	out.bestsol_boundviol = info->bestsol_boundviol;
	out.bestsol_consviol = info->bestsol_consviol;
	out.bestsol = info->bestsol;
	out.solve_result = (int)info->solve_result;
	return out;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/costela/gopapilo/internal/native"
)

// Engine calls straight into the linked papilo library. It is stateless;
// the zero value is ready to use.
type Engine struct{}

var _ native.Engine = Engine{}

// the Go-side status values are fixed; a library built with different
// enum values is a version mismatch we cannot paper over
func init() {
	checks := []struct {
		name string
		c    int
		want int
	}{
		{"PAPILO_PARAM_CHANGED", C.PAPILO_PARAM_CHANGED, int(native.ParamChanged)},
		{"PAPILO_PARAM_NOT_FOUND", C.PAPILO_PARAM_NOT_FOUND, int(native.ParamNotFound)},
		{"PAPILO_PARAM_WRONG_TYPE", C.PAPILO_PARAM_WRONG_TYPE, int(native.ParamWrongType)},
		{"PAPILO_PARAM_INVALID_VALUE", C.PAPILO_PARAM_INVALID_VALUE, int(native.ParamInvalidValue)},
		{"PAPILO_SOLVE_RESULT_OPTIMAL", C.PAPILO_SOLVE_RESULT_OPTIMAL, int(native.SolveOptimal)},
		{"PAPILO_SOLVE_RESULT_FEASIBLE", C.PAPILO_SOLVE_RESULT_FEASIBLE, int(native.SolveFeasible)},
		{"PAPILO_SOLVE_RESULT_STOPPED", C.PAPILO_SOLVE_RESULT_STOPPED, int(native.SolveStopped)},
		{"PAPILO_SOLVE_RESULT_UNBND_OR_INFEAS", C.PAPILO_SOLVE_RESULT_UNBND_OR_INFEAS, int(native.SolveUnboundedOrInfeasible)},
		{"PAPILO_SOLVE_RESULT_UNBOUNDED", C.PAPILO_SOLVE_RESULT_UNBOUNDED, int(native.SolveUnbounded)},
		{"PAPILO_SOLVE_RESULT_INFEASIBLE", C.PAPILO_SOLVE_RESULT_INFEASIBLE, int(native.SolveInfeasible)},
	}
	for _, chk := range checks {
		if chk.c != chk.want {
			panic(fmt.Sprintf("papilolib.h: %s is %d, expected %d", chk.name, chk.c, chk.want))
		}
	}
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func (Engine) CreateProblem(infinity float64, name string, rowHint, colHint, nnzHint int) native.ProblemHandle {
	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	return native.ProblemHandle(C.gp_problem_create(C.double(infinity), c_name, C.int(rowHint), C.int(colHint), C.int(nnzHint)))
}

func (Engine) ProblemAddCol(p native.ProblemHandle, lb, ub float64, integer bool, cost float64, name string) int {
	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	return int(C.gp_problem_add_col(unsafe.Pointer(p), C.double(lb), C.double(ub), cBool(integer), C.double(cost), c_name))
}

func (Engine) ProblemAddRow(p native.ProblemHandle, lhs, rhs float64, name string) int {
	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	return int(C.gp_problem_add_generic_row(unsafe.Pointer(p), C.double(lhs), C.double(rhs), c_name))
}

func (Engine) ProblemAddNonzero(p native.ProblemHandle, row, col int, value float64) {
	C.gp_problem_add_nonzero(unsafe.Pointer(p), C.int(row), C.int(col), C.double(value))
}

func (Engine) FreeProblem(p native.ProblemHandle) {
	C.gp_problem_free(unsafe.Pointer(p))
}

func (Engine) CreateSolver() native.SolverHandle {
	return native.SolverHandle(C.gp_solver_create())
}

func (Engine) SolverLoadProblem(s native.SolverHandle, p native.ProblemHandle) {
	C.gp_solver_load_problem(unsafe.Pointer(s), unsafe.Pointer(p))
}

// SolverStart blocks until papilo returns. The solving info is owned by
// the solver, so everything is copied out before returning.
func (Engine) SolverStart(s native.SolverHandle, numCols int) native.SolveInfo {
	info := C.gp_solver_start(unsafe.Pointer(s))
	if info.ok == 0 {
		panic("papilo_solver_start returned no solving info")
	}

	res := native.SolveInfo{
		DualBound:       float64(info.dualbound),
		SolvingTime:     float64(info.solvingtime),
		PresolveTime:    float64(info.presolvetime),
		BestSolObj:      float64(info.bestsol_obj),
		BestSolIntViol:  float64(info.bestsol_intviol),
		BestSolBndViol:  float64(info.bestsol_boundviol),
		BestSolConsViol: float64(info.bestsol_consviol),
		Status:          native.SolveStatus(info.solve_result),
	}

	if info.bestsol != nil && numCols > 0 {
		sol := unsafe.Slice((*float64)(unsafe.Pointer(info.bestsol)), numCols)
		res.BestSol = make([]float64, numCols)
		copy(res.BestSol, sol)
	}

	return res
}

func (Engine) SolverSetParamBool(s native.SolverHandle, key string, value bool) native.ParamStatus {
	c_key := C.CString(key)
	defer C.free(unsafe.Pointer(c_key))

	return native.ParamStatus(C.gp_solver_set_param_bool(unsafe.Pointer(s), c_key, cBool(value)))
}

func (Engine) SolverSetParamInt(s native.SolverHandle, key string, value int32) native.ParamStatus {
	c_key := C.CString(key)
	defer C.free(unsafe.Pointer(c_key))

	return native.ParamStatus(C.gp_solver_set_param_int(unsafe.Pointer(s), c_key, C.int(value)))
}

func (Engine) SolverSetParamReal(s native.SolverHandle, key string, value float64) native.ParamStatus {
	c_key := C.CString(key)
	defer C.free(unsafe.Pointer(c_key))

	return native.ParamStatus(C.gp_solver_set_param_real(unsafe.Pointer(s), c_key, C.double(value)))
}

func (Engine) SolverSetParamString(s native.SolverHandle, key, value string) native.ParamStatus {
	c_key := C.CString(key)
	defer C.free(unsafe.Pointer(c_key))
	c_value := C.CString(value)
	defer C.free(unsafe.Pointer(c_value))

	return native.ParamStatus(C.gp_solver_set_param_string(unsafe.Pointer(s), c_key, c_value))
}

func (Engine) FreeSolver(s native.SolverHandle) {
	C.gp_solver_free(unsafe.Pointer(s))
}
