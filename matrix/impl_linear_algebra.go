// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition, matrix multiplication, transpose, scalar
// scaling and the cross-product (Gram) kernels used by the factored engine.
// All functions perform strict fail-fast validation and return clear errors on
// dimension mismatches.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.
//   - Operands are never mutated; every kernel allocates exactly one result.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial accumulator value for dot products and reductions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd            = "Add"
	opMul            = "Mul"
	opTranspose      = "Transpose"
	opScale          = "Scale"
	opCrossProduct   = "CrossProduct"
	opCrossProductOf = "CrossProductOf"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
//
// AI-Hints:
//   - The factored RightMultiply accumulates its per-term products through Add.
func Add(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			length := rows * cols
			for idx := 0; idx < length; idx++ {
				res.data[idx] = da.data[idx] + db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opAdd, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opAdd, err)
			}
			res.data[i*cols+j] = av + bv
		}
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k with a fixed order and zero-skip on A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop orders (i→k→j for fast path, i→j→k for fallback).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c). Skipping zero A[i,k] pays off for indicator
//     factors, which are mostly zeros.
//
// AI-Hints:
//   - Keep A as *Dense; indicator (one-hot) left factors then cost O(r*c) instead of O(r*n*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// da.data layout: i*aCols + k; db.data layout: k*bCols + j
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Fast-path copies *Dense data via flat indexing; fallback uses At.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - Transpose is a full materialization. The factored engine avoids it for its
//     own operands by flipping a flag; only small operands and results go through here.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	return ewMap(m, opScale, func(v float64) float64 { return v * alpha }, gatherOptions())
}

// CrossProduct returns the Gram matrix mᵀ·m (c×c, symmetric).
//
// Implementation:
//   - Stage 1: validate non-nil.
//   - Stage 2: delegate to CrossProductOf(m, m), which never forms mᵀ.
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
func CrossProduct(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opCrossProduct, err)
	}
	res, err := CrossProductOf(m, m)
	if err != nil {
		return nil, matrixErrorf(opCrossProduct, err)
	}

	return res, nil
}

// CrossProductOf returns aᵀ·b without materializing aᵀ.
//
// Implementation:
//   - Stage 1: validate non-nil operands and a.Rows == b.Rows.
//   - Stage 2: accumulate row-wise outer products: for each shared row k,
//     res[i,:] += a[k,i] * b[k,:] (skipping zero a[k,i]).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(n*ca*cb), Space O(ca*cb).
//
// AI-Hints:
//   - With an indicator a, the zero skip makes this a gather: O(n*cb).
func CrossProductOf(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opCrossProductOf, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opCrossProductOf, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opCrossProductOf, ErrDimensionMismatch)
	}

	n, ca, cb := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(ca, cb)
	if err != nil {
		return nil, matrixErrorf(opCrossProductOf, err)
	}

	var k, i, j int
	var av, bv float64
	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		var rowA, rowB, rowR int
		for k = 0; k < n; k++ {
			rowA = k * ca
			rowB = k * cb
			for i = 0; i < ca; i++ {
				av = da.data[rowA+i]
				if av == 0 {
					continue
				}
				rowR = i * cb
				for j = 0; j < cb; j++ {
					res.data[rowR+j] += av * db.data[rowB+j]
				}
			}
		}
		return res, nil
	}

	for k = 0; k < n; k++ {
		for i = 0; i < ca; i++ {
			if av, err = a.At(k, i); err != nil {
				return nil, matrixErrorf(opCrossProductOf, err)
			}
			if av == 0 {
				continue
			}
			for j = 0; j < cb; j++ {
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opCrossProductOf, err)
				}
				res.data[i*cb+j] += av * bv
			}
		}
	}

	return res, nil
}
