// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"

	"github.com/katalvlaran/normat/matrix"
)

// Dense is the reference backend: values are matrix.Matrix and every
// operation delegates to the matrix kernels.
//
// The numeric policy (matrix.Option) is fixed at construction and applied to
// the element-wise maps, so a relaxed backend lets Log produce -Inf.
type Dense struct {
	opts []matrix.Option
}

var (
	_ Capability = (*Dense)(nil)
	_ Invoker    = (*Dense)(nil)
)

// NewDenseBackend returns a dense backend with the given numeric policy.
func NewDenseBackend(opts ...matrix.Option) *Dense {
	return &Dense{opts: append([]matrix.Option(nil), opts...)}
}

// asMatrix unwraps a Value into a matrix.Matrix.
func asMatrix(v Value) (matrix.Matrix, error) {
	m, ok := v.(matrix.Matrix)
	if !ok || IsNil(m) {
		return nil, fmt.Errorf("%T: %w", v, ErrNotMatrix)
	}

	return m, nil
}

// unaryOp applies fn to the matrix behind v.
func unaryOp(v Value, fn func(matrix.Matrix) (matrix.Matrix, error)) (Value, error) {
	m, err := asMatrix(v)
	if err != nil {
		return nil, err
	}

	return fn(m)
}

// binaryOp applies fn to the matrices behind x and y.
func binaryOp(x, y Value, fn func(a, b matrix.Matrix) (matrix.Matrix, error)) (Value, error) {
	a, err := asMatrix(x)
	if err != nil {
		return nil, err
	}
	b, err := asMatrix(y)
	if err != nil {
		return nil, err
	}

	return fn(a, b)
}

// NumRows returns the row count of v.
func (d *Dense) NumRows(v Value) (int, error) {
	m, err := asMatrix(v)
	if err != nil {
		return 0, err
	}
	return m.Rows(), nil
}

// NumCols returns the column count of v.
func (d *Dense) NumCols(v Value) (int, error) {
	m, err := asMatrix(v)
	if err != nil {
		return 0, err
	}
	return m.Cols(), nil
}

// Transpose returns vᵀ.
func (d *Dense) Transpose(v Value) (Value, error) { return unaryOp(v, matrix.Transpose) }

// ScalarAdd returns v + s element-wise.
func (d *Dense) ScalarAdd(v Value, s float64) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.AddScalar(m, s, d.opts...) })
}

// ScalarMultiply returns s·v.
func (d *Dense) ScalarMultiply(v Value, s float64) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.Scale(m, s) })
}

// ScalarExponent returns v^p element-wise under the backend's numeric policy.
func (d *Dense) ScalarExponent(v Value, p float64) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.Pow(m, p, d.opts...) })
}

// Exp returns e^v element-wise.
func (d *Dense) Exp(v Value) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.Exp(m, d.opts...) })
}

// Log returns ln(v) element-wise; non-positive entries fail under the strict policy.
func (d *Dense) Log(v Value) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.Log(m, d.opts...) })
}

// Sqrt returns √v element-wise.
func (d *Dense) Sqrt(v Value) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.Sqrt(m, d.opts...) })
}

// Diagonal embeds a row or column vector as a square diagonal matrix.
func (d *Dense) Diagonal(v Value) (Value, error) { return unaryOp(v, matrix.Diagonal) }

// RowSum returns the n×1 vector of row sums.
func (d *Dense) RowSum(v Value) (Value, error) { return unaryOp(v, matrix.RowSum) }

// ColumnSum returns the 1×m vector of column sums.
func (d *Dense) ColumnSum(v Value) (Value, error) { return unaryOp(v, matrix.ColumnSum) }

// ElementWiseSum returns the sum of every entry of v.
func (d *Dense) ElementWiseSum(v Value) (float64, error) {
	m, err := asMatrix(v)
	if err != nil {
		return 0, err
	}
	return matrix.ElementSum(m)
}

// CrossProduct returns vᵀ·v.
func (d *Dense) CrossProduct(v Value) (Value, error) { return unaryOp(v, matrix.CrossProduct) }

// CrossProductOf returns xᵀ·y.
func (d *Dense) CrossProductOf(x, y Value) (Value, error) {
	return binaryOp(x, y, matrix.CrossProductOf)
}

// MatrixAdd returns x + y.
func (d *Dense) MatrixAdd(x, y Value) (Value, error) { return binaryOp(x, y, matrix.Add) }

// LeftMultiply returns y·x.
func (d *Dense) LeftMultiply(x, y Value) (Value, error) {
	return binaryOp(x, y, func(a, b matrix.Matrix) (matrix.Matrix, error) { return matrix.Mul(b, a) })
}

// RightMultiply returns x·y.
func (d *Dense) RightMultiply(x, y Value) (Value, error) { return binaryOp(x, y, matrix.Mul) }

// RowAppend stacks y below x.
func (d *Dense) RowAppend(x, y Value) (Value, error) { return binaryOp(x, y, matrix.RowAppend) }

// ColumnAppend places y to the right of x.
func (d *Dense) ColumnAppend(x, y Value) (Value, error) { return binaryOp(x, y, matrix.ColumnAppend) }

// Slice returns the half-open window v[r0:r1, c0:c1].
func (d *Dense) Slice(v Value, r0, r1, c0, c1 int) (Value, error) {
	return unaryOp(v, func(m matrix.Matrix) (matrix.Matrix, error) { return matrix.Slice(m, r0, r1, c0, c1) })
}

// Invoke dispatches op by wire name.
func (d *Dense) Invoke(op string, args ...any) (any, error) {
	return Call(d, op, args...)
}
