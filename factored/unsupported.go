// SPDX-License-Identifier: MIT

package factored

import (
	"fmt"

	"github.com/katalvlaran/normat/backend"
)

const opInvert = "invertMatrix"

// unsupported logs and reports an operation that needs the dense form.
func (m *Matrix) unsupported(op string) error {
	m.trace(op)
	return fmt.Errorf("%s on a factored matrix: %w", op, ErrUnsupported)
}

// RowAppend is not supported: stacking rows breaks the shared indicator
// structure of the terms.
func (m *Matrix) RowAppend(backend.Value) (*Matrix, error) {
	return nil, m.unsupported(backend.OpRowAppend)
}

// ColumnAppend is not supported.
func (m *Matrix) ColumnAppend(backend.Value) (*Matrix, error) {
	return nil, m.unsupported(backend.OpColumnAppend)
}

// MatrixAdd is not supported: the sum of two factorizations is not a
// factorization of the same shape.
func (m *Matrix) MatrixAdd(any) (*Matrix, error) {
	return nil, m.unsupported(backend.OpMatrixAdd)
}

// Slice is not supported.
func (m *Matrix) Slice(r0, r1, c0, c1 int) (*Matrix, error) {
	return nil, m.unsupported(backend.OpSlice)
}

// Invert is not supported.
func (m *Matrix) Invert() (*Matrix, error) {
	return nil, m.unsupported(opInvert)
}
