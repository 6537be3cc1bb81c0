// SPDX-License-Identifier: MIT

// Package matrix - block kernels: windows, concatenation and diagonal embedding.
//
// Purpose:
//   - Slice extracts a half-open window [r0,r1)×[c0,c1).
//   - RowAppend stacks vertically, ColumnAppend concatenates horizontally.
//   - Diagonal turns a vector into a square diagonal matrix.
//
// Determinism & Performance:
//   - *Dense operands are copied row by row with copy(); others go through At.
//   - Each kernel allocates exactly one result.

package matrix

const (
	opSlice        = "Slice"
	opRowAppend    = "RowAppend"
	opColumnAppend = "ColumnAppend"
	opDiagonal     = "Diagonal"
)

// copyBlock writes src into dst starting at (r0, c0). dst must be large enough.
// Complexity: O(rows(src)*cols(src)).
func copyBlock(dst *Dense, src Matrix, r0, c0 int) error {
	rows, cols := src.Rows(), src.Cols()
	if ds, ok := src.(*Dense); ok {
		for i := 0; i < rows; i++ {
			base := (r0+i)*dst.c + c0
			copy(dst.data[base:base+cols], ds.data[i*cols:(i+1)*cols])
		}
		return nil
	}

	var v float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = src.At(i, j); err != nil {
				return err
			}
			dst.data[(r0+i)*dst.c+c0+j] = v
		}
	}

	return nil
}

// Slice returns a copy of the half-open window [r0,r1)×[c0,c1) of m.
//
// Implementation:
//   - Stage 1: ValidateSlice (non-nil, in-bounds, non-empty).
//   - Stage 2: allocate (r1-r0)×(c1-c0) and copy each row segment.
//
// Errors:
//   - ErrNilMatrix, ErrBadShape.
//
// Complexity:
//   - Time O((r1-r0)*(c1-c0)), Space the same.
//
// AI-Hints:
//   - Slicing a row band [r0,r1)×[0,Cols) is the partition step of the
//     factored right multiply; it is a straight memcpy on *Dense.
func Slice(m Matrix, r0, r1, c0, c1 int) (Matrix, error) {
	if err := ValidateSlice(m, r0, r1, c0, c1); err != nil {
		return nil, matrixErrorf(opSlice, err)
	}
	rows, cols := r1-r0, c1-c0
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opSlice, err)
	}

	if dm, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			src := (r0+i)*dm.c + c0
			copy(res.data[i*cols:(i+1)*cols], dm.data[src:src+cols])
		}
		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(r0+i, c0+j); err != nil {
				return nil, matrixErrorf(opSlice, err)
			}
			res.data[i*cols+j] = v
		}
	}

	return res, nil
}

// RowAppend stacks b under a: result is (a.Rows+b.Rows)×Cols.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (column counts differ).
//
// Complexity:
//   - Time O((ra+rb)*c), Space the same.
func RowAppend(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opRowAppend, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opRowAppend, err)
	}
	if a.Cols() != b.Cols() {
		return nil, matrixErrorf(opRowAppend, ErrDimensionMismatch)
	}

	res, err := NewDense(a.Rows()+b.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opRowAppend, err)
	}
	if err = copyBlock(res, a, 0, 0); err != nil {
		return nil, matrixErrorf(opRowAppend, err)
	}
	if err = copyBlock(res, b, a.Rows(), 0); err != nil {
		return nil, matrixErrorf(opRowAppend, err)
	}

	return res, nil
}

// ColumnAppend places b to the right of a: result is Rows×(a.Cols+b.Cols).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (row counts differ).
//
// Complexity:
//   - Time O(r*(ca+cb)), Space the same.
func ColumnAppend(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opColumnAppend, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opColumnAppend, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opColumnAppend, ErrDimensionMismatch)
	}

	res, err := NewDense(a.Rows(), a.Cols()+b.Cols())
	if err != nil {
		return nil, matrixErrorf(opColumnAppend, err)
	}
	if err = copyBlock(res, a, 0, 0); err != nil {
		return nil, matrixErrorf(opColumnAppend, err)
	}
	if err = copyBlock(res, b, 0, a.Cols()); err != nil {
		return nil, matrixErrorf(opColumnAppend, err)
	}

	return res, nil
}

// Diagonal embeds a row or column vector v (length n) as the n×n matrix diag(v).
// Errors: ErrNilMatrix, ErrNotVector.
// Complexity: O(n²) for the zero-filled result, O(n) writes.
func Diagonal(v Matrix) (Matrix, error) {
	n, err := ValidateVector(v)
	if err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}

	column := v.Cols() == 1
	var x float64
	for k := 0; k < n; k++ {
		if column {
			x, err = v.At(k, 0)
		} else {
			x, err = v.At(0, k)
		}
		if err != nil {
			return nil, matrixErrorf(opDiagonal, err)
		}
		res.data[k*n+k] = x
	}

	return res, nil
}
