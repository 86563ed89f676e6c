//go:build cgo

package gopapilo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against the linked papilo library.

func solveOne(t *testing.T, build func(*Problem)) (SolveInfo, SolveResult) {
	t.Helper()

	problem, err := NewProblem()
	require.NoError(t, err)
	defer problem.Close()

	build(problem)

	solver, err := NewSolver()
	require.NoError(t, err)
	defer solver.Close()

	require.NoError(t, solver.LoadProblem(problem))
	require.NoError(t, SetParameter(solver, "message.verbosity", int32(0)))

	info, result, err := solver.Start()
	require.NoError(t, err)

	return info, result
}

func TestSolveEmptyProblem(t *testing.T) {
	info, result := solveOne(t, func(*Problem) {})

	assert.Equal(t, Optimal, result)
	assert.Equal(t, 0.0, info.DualBound())
}

func TestSolveContinuousColumn(t *testing.T) {
	info, result := solveOne(t, func(p *Problem) {
		_, err := p.AddColumn(1.5, 20, false, 10, "x")
		require.NoError(t, err)
	})

	assert.Equal(t, Optimal, result)
	assert.InDelta(t, 15, info.BestObjective(), 1e-6)
	assert.InDelta(t, 15, info.DualBound(), 1e-6)
}

func TestSolveIntegerColumn(t *testing.T) {
	info, result := solveOne(t, func(p *Problem) {
		_, err := p.AddColumn(1.5, 10, true, 10, "x")
		require.NoError(t, err)
	})

	assert.Equal(t, Optimal, result)
	assert.InDelta(t, 20, info.BestObjective(), 1e-6)
	assert.InDelta(t, 20, info.DualBound(), 1e-6)
}

func TestSolveIntegerColumnWithRow(t *testing.T) {
	info, result := solveOne(t, func(p *Problem) {
		x, err := p.AddColumn(1, 10, true, 10, "x")
		require.NoError(t, err)
		_, err = p.AddRow("r1", []Coefficient{{Column: x, Value: 1}}, 2.5, math.Inf(1))
		require.NoError(t, err)
	})

	assert.Equal(t, Optimal, result)
	assert.InDelta(t, 30, info.BestObjective(), 1e-6)
	assert.InDelta(t, 30, info.DualBound(), 1e-6)
	if sol := info.BestSolution(); assert.Len(t, sol, 1) {
		assert.InDelta(t, 3, sol[0], 1e-6)
	}
}

func TestNativeParameterResults(t *testing.T) {
	solver, err := NewSolver()
	require.NoError(t, err)
	defer solver.Close()

	assert.ErrorIs(t, SetParameter(solver, "no.such.parameter", int32(1)), ParamNotFound)
	assert.ErrorIs(t, SetParameter(solver, "presolve.randomseed", 1.5), ParamWrongType)
	assert.NoError(t, SetParameter(solver, "presolve.randomseed", int32(3)))
}
