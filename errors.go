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
	"strings"
)

var (
	// ErrNullHandle is wrapped by constructors when the native library
	// failed to allocate a problem or solver.
	ErrNullHandle = errors.New("native call returned a null handle")
	// ErrEmbeddedNul is wrapped by TextError.
	ErrEmbeddedNul = errors.New("text contains a NUL byte")

	ErrClosed          = errors.New("already closed")
	ErrProblemConsumed = errors.New("problem has been loaded into a solver")
	ErrProblemLoaded   = errors.New("solver already holds a problem")
	ErrEngineMismatch  = errors.New("problem and solver use different engines")
	ErrNoEngine        = errors.New("no native engine: built without cgo")
)

// NativeError reports which native call failed.
type NativeError struct {
	Op  string
	Err error
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("gopapilo: %s: %v", e.Op, e.Err)
}

func (e *NativeError) Unwrap() error {
	return e.Err
}

// TextError is returned when a string cannot be passed to C because it
// contains a NUL byte. No native call is made in that case.
type TextError struct {
	Field  string
	Value  string
	Offset int
}

func (e *TextError) Error() string {
	return fmt.Sprintf("gopapilo: %s %q has a NUL byte at offset %d", e.Field, e.Value, e.Offset)
}

func (e *TextError) Unwrap() error {
	return ErrEmbeddedNul
}

// checkText makes sure s survives the trip through C.CString unchanged.
func checkText(field, s string) error {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return &TextError{Field: field, Value: s, Offset: i}
	}
	return nil
}
