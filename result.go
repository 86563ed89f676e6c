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

	"github.com/costela/gopapilo/internal/native"
)

/* Types */

// SolveResult classifies the outcome of Solver.Start.
type SolveResult int

const (
	Optimal SolveResult = iota + 1
	Feasible
	Stopped
	UnboundedOrInfeasible
	Unbounded
	Infeasible
)

func (r SolveResult) String() string {
	switch r {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Stopped:
		return "stopped"
	case UnboundedOrInfeasible:
		return "unbounded or infeasible"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("SolveResult(%d)", int(r))
	}
}

func solveResultFromNative(status native.SolveStatus) SolveResult {
	switch status {
	case native.SolveOptimal:
		return Optimal
	case native.SolveFeasible:
		return Feasible
	case native.SolveStopped:
		return Stopped
	case native.SolveUnboundedOrInfeasible:
		return UnboundedOrInfeasible
	case native.SolveUnbounded:
		return Unbounded
	case native.SolveInfeasible:
		return Infeasible
	default:
		panic(fmt.Sprintf("unrecognized solve result %d", int(status)))
	}
}

// SolveInfo holds the numbers papilo reported for one run. It is a copy:
// it stays valid after the solver is closed.
type SolveInfo struct {
	dualBound           float64
	solvingTime         float64
	presolveTime        float64
	bestObjective       float64
	integerViolation    float64
	boundViolation      float64
	constraintViolation float64
	bestSolution        []float64
}

func solveInfoFromNative(raw native.SolveInfo) SolveInfo {
	return SolveInfo{
		dualBound:           raw.DualBound,
		solvingTime:         raw.SolvingTime,
		presolveTime:        raw.PresolveTime,
		bestObjective:       raw.BestSolObj,
		integerViolation:    raw.BestSolIntViol,
		boundViolation:      raw.BestSolBndViol,
		constraintViolation: raw.BestSolConsViol,
		bestSolution:        raw.BestSol,
	}
}

// DualBound returns the proven bound on the optimal objective value.
func (info SolveInfo) DualBound() float64 {
	return info.dualBound
}

// SolvingTime returns the total time spent, in seconds.
func (info SolveInfo) SolvingTime() float64 {
	return info.solvingTime
}

// PresolveTime returns the time spent presolving, in seconds.
func (info SolveInfo) PresolveTime() float64 {
	return info.presolveTime
}

// BestObjective returns the objective value of the best solution found.
func (info SolveInfo) BestObjective() float64 {
	return info.bestObjective
}

// IntegerViolation returns the best solution's largest integrality violation.
func (info SolveInfo) IntegerViolation() float64 {
	return info.integerViolation
}

// BoundViolation returns the best solution's largest bound violation.
func (info SolveInfo) BoundViolation() float64 {
	return info.boundViolation
}

// ConstraintViolation returns the best solution's largest row violation.
func (info SolveInfo) ConstraintViolation() float64 {
	return info.constraintViolation
}

// BestSolution returns a copy of the best solution's column values,
// indexed like the columns of the loaded problem, or nil if papilo did
// not provide one.
func (info SolveInfo) BestSolution() []float64 {
	if info.bestSolution == nil {
		return nil
	}
	return append([]float64(nil), info.bestSolution...)
}
