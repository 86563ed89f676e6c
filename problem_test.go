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
	"errors"
	"fmt"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/gopapilo/internal/native/nativetest"
)

// newTestEngine returns a tracking engine that fails the test if any
// native call was misused by the time the test ends.
func newTestEngine(t *testing.T) *nativetest.Engine {
	t.Helper()

	engine := nativetest.New(nil)
	t.Cleanup(func() {
		assert.Empty(t, engine.Violations(), "native call surface misused")
	})

	return engine
}

func newTestProblem(t *testing.T, engine *nativetest.Engine) *Problem {
	t.Helper()

	problem, err := NewProblem(withEngine(engine))
	require.NoError(t, err)
	t.Cleanup(problem.Close)

	return problem
}

func TestNewProblemDefaults(t *testing.T) {
	engine := newTestEngine(t)
	newTestProblem(t, engine)

	problems := engine.Problems()
	require.Len(t, problems, 1)

	p := problems[0]
	assert.Equal(t, "gopapilo", p.Name)
	assert.True(t, math.IsInf(p.Infinity, 1))
	assert.Equal(t, 1000, p.RowHint)
	assert.Equal(t, 10, p.ColHint)
	assert.Equal(t, 10, p.NnzHint)
}

func TestNewProblemNullHandle(t *testing.T) {
	engine := newTestEngine(t)
	engine.FailCreateProblem = true

	problem, err := NewProblem(withEngine(engine))
	assert.Nil(t, problem)
	assert.ErrorIs(t, err, ErrNullHandle)

	var nerr *NativeError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "papilo_problem_create", nerr.Op)
}

func TestNewProblemWithoutEngine(t *testing.T) {
	_, err := NewProblem(withEngine(nil))
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestAddColumnIndices(t *testing.T) {
	engine := newTestEngine(t)
	problem := newTestProblem(t, engine)

	for i := 0; i < 5; i++ {
		idx, err := problem.AddColumn(float64(i), float64(i+1), i%2 == 0, 1.5, fmt.Sprintf("x%d", i))
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, 5, problem.NumColumns())

	cols := engine.Problems()[0].Columns
	require.Len(t, cols, 5)
	assert.Equal(t, nativetest.Column{Lower: 2, Upper: 3, Integer: true, Cost: 1.5, Name: "x2"}, cols[2])
}

func TestAddColumnInfiniteUpperBound(t *testing.T) {
	engine := newTestEngine(t)
	problem := newTestProblem(t, engine)

	_, err := problem.AddColumn(0, math.Inf(1), false, 0, "x")
	require.NoError(t, err)

	assert.True(t, math.IsInf(engine.Problems()[0].Columns[0].Upper, 1))
}

func TestAddRowCoefficients(t *testing.T) {
	engine := newTestEngine(t)
	problem := newTestProblem(t, engine)

	for i := 0; i < 3; i++ {
		_, err := problem.AddColumn(0, 10, false, 1, fmt.Sprintf("x%d", i))
		require.NoError(t, err)
	}

	r0, err := problem.AddRow("r0", []Coefficient{{Column: 2, Value: -1.25}, {Column: 0, Value: 3.1416}}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, r0)

	r1, err := problem.AddRow("r1", []Coefficient{{Column: 1, Value: 0.1}}, 2.5, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, 1, r1)

	r2, err := problem.AddRow("empty", nil, math.Inf(-1), 4)
	require.NoError(t, err)
	assert.Equal(t, 2, r2)

	assert.Equal(t, 3, problem.NumRows())

	want := []nativetest.Row{
		{Name: "r0", Lhs: 0, Rhs: 10, Coefficients: map[int]float64{0: 3.1416, 2: -1.25}},
		{Name: "r1", Lhs: 2.5, Rhs: math.Inf(1), Coefficients: map[int]float64{1: 0.1}},
		{Name: "empty", Lhs: math.Inf(-1), Rhs: 4, Coefficients: map[int]float64{}},
	}
	if diff := cmp.Diff(want, engine.Problems()[0].Rows); diff != "" {
		t.Errorf("stored rows mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedNulRejectedBeforeNativeCall(t *testing.T) {
	engine := newTestEngine(t)
	problem := newTestProblem(t, engine)

	_, err := problem.AddColumn(0, 1, false, 0, "bad\x00name")
	assert.ErrorIs(t, err, ErrEmbeddedNul)

	var terr *TextError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "column name", terr.Field)
	assert.Equal(t, 3, terr.Offset)

	_, err = problem.AddRow("\x00", nil, 0, 1)
	assert.ErrorIs(t, err, ErrEmbeddedNul)

	assert.Empty(t, engine.Problems()[0].Columns)
	assert.Empty(t, engine.Problems()[0].Rows)
	assert.Zero(t, problem.NumColumns())
	assert.Zero(t, problem.NumRows())
}

func TestProblemClose(t *testing.T) {
	engine := newTestEngine(t)
	problem := newTestProblem(t, engine)

	problem.Close()
	problem.Close()

	live, _ := engine.Live()
	assert.Zero(t, live)

	_, err := problem.AddColumn(0, 1, false, 0, "x")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = problem.AddRow("r", nil, 0, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestProblemFinalizer(t *testing.T) {
	engine := newTestEngine(t)

	func() {
		_, err := NewProblem(withEngine(engine))
		require.NoError(t, err)
	}()

	assert.Eventually(t, func() bool {
		runtime.GC()
		live, _ := engine.Live()
		return live == 0
	}, 5*time.Second, 10*time.Millisecond)
}
