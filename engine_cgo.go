//go:build cgo
// +build cgo

package gopapilo

import (
	"github.com/costela/gopapilo/internal/native"
	"github.com/costela/gopapilo/internal/native/cpapilo"
)

var defaultEngine native.Engine = cpapilo.Engine{}
