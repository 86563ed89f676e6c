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

// ParamResult is the error returned when papilo refuses a parameter.
// A refused parameter leaves the solver configuration untouched.
type ParamResult int

const (
	// ParamNotFound means papilo has no parameter with that key.
	ParamNotFound ParamResult = iota + 1
	// ParamWrongType means the parameter exists but takes another kind of value.
	ParamWrongType
	// ParamInvalidValue means the value is outside what the parameter accepts.
	ParamInvalidValue
)

// Error returns a string representation of the given error value.
func (e ParamResult) Error() string {
	switch e {
	case ParamNotFound:
		return "parameter not found"
	case ParamWrongType:
		return "parameter has a different type"
	case ParamInvalidValue:
		return "invalid value for parameter"
	default:
		panic("unrecognized parameter result")
	}
}

func paramResultFromNative(status native.ParamStatus) ParamResult {
	switch status {
	case native.ParamNotFound:
		return ParamNotFound
	case native.ParamWrongType:
		return ParamWrongType
	case native.ParamInvalidValue:
		return ParamInvalidValue
	default:
		panic(fmt.Sprintf("unrecognized parameter result %d", int(status)))
	}
}

// ParamValue is the set of value kinds papilo parameters can take.
type ParamValue interface {
	bool | int32 | float64 | string
}

// SetParameter sets the parameter key on solver, calling the native setter
// matching the kind of value. Integer values must be passed as int32:
//
//	SetParameter(solver, "presolve.threads", int32(1))
//
// Keys and string values containing NUL bytes fail with a *TextError
// before anything reaches papilo. Otherwise a refused parameter yields
// one of the ParamResult values.
func SetParameter[V ParamValue](solver *Solver, key string, value V) error {
	switch v := any(value).(type) {
	case bool:
		return solver.SetBoolParam(key, v)
	case int32:
		return solver.SetIntParam(key, v)
	case float64:
		return solver.SetRealParam(key, v)
	case string:
		return solver.SetStringParam(key, v)
	default:
		panic(fmt.Sprintf("unsupported parameter kind %T", value))
	}
}

// SetBoolParam sets a boolean parameter.
func (solver *Solver) SetBoolParam(key string, value bool) error {
	return solver.setParam(key, value, func() native.ParamStatus {
		return solver.engine.SolverSetParamBool(solver.handle, key, value)
	})
}

// SetIntParam sets an integer parameter.
func (solver *Solver) SetIntParam(key string, value int32) error {
	return solver.setParam(key, value, func() native.ParamStatus {
		return solver.engine.SolverSetParamInt(solver.handle, key, value)
	})
}

// SetRealParam sets a real-valued parameter.
func (solver *Solver) SetRealParam(key string, value float64) error {
	return solver.setParam(key, value, func() native.ParamStatus {
		return solver.engine.SolverSetParamReal(solver.handle, key, value)
	})
}

// SetStringParam sets a string parameter. A value containing a NUL byte
// fails with a *TextError.
func (solver *Solver) SetStringParam(key, value string) error {
	if err := checkText("parameter value", value); err != nil {
		return err
	}
	return solver.setParam(key, value, func() native.ParamStatus {
		return solver.engine.SolverSetParamString(solver.handle, key, value)
	})
}

func (solver *Solver) setParam(key string, value interface{}, set func() native.ParamStatus) error {
	if solver.closed {
		return ErrClosed
	}
	if err := checkText("parameter key", key); err != nil {
		return err
	}

	status := set()
	runtime.KeepAlive(solver)

	if status == native.ParamChanged {
		solver.logger.Debugf("solver %p: set %s = %v", solver.handle, key, value)
		return nil
	}

	return paramResultFromNative(status)
}
