// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
)

// ErrBackendIncompatible is the single error every bound backend call reports
// on failure: unknown operation, arity or type mismatch, a result of the wrong
// kind, a backend error or a backend panic. The cause is logged, not returned.
var ErrBackendIncompatible = errors.New("backend: incompatible backend")

// Causes. These never leave an Adapter; they reach callers of Dense and
// Named directly.
var (
	ErrUnknownOp    = errors.New("backend: unknown operation")
	ErrArity        = errors.New("backend: wrong number of arguments")
	ErrArgType      = errors.New("backend: argument has wrong type")
	ErrResultType   = errors.New("backend: result has wrong type")
	ErrNilResult    = errors.New("backend: nil result")
	ErrNotMatrix    = errors.New("backend: value is not a matrix.Matrix")
	ErrBackendPanic = errors.New("backend: backend panicked")
)

// incompatible builds the uniform error returned to adapter callers.
func incompatible(op string) error {
	return fmt.Errorf("%s: %w", op, ErrBackendIncompatible)
}
