//go:build !cgo
// +build !cgo

package gopapilo

import "github.com/costela/gopapilo/internal/native"

// Without cgo there is no library to call into; constructors return
// ErrNoEngine.
var defaultEngine native.Engine
