// SPDX-License-Identifier: MIT

package factored

import (
	"fmt"

	"github.com/katalvlaran/normat/backend"
)

// Operation tags, shared with Invoke.
const (
	opBuild          = "build"
	opTranspose      = backend.OpTranspose
	opNumRows        = backend.OpNumRows
	opNumCols        = backend.OpNumCols
	opScalarAdd      = backend.OpScalarAdd
	opScalarMultiply = backend.OpScalarMultiply
	opScalarExponent = backend.OpScalarExponent
	opScalarPow      = "scalarPow"
	opExp            = backend.OpExp
	opLog            = backend.OpLog
	opSqrt           = backend.OpSqrt
	opRightMultiply  = backend.OpRightMultiply
	opLeftMultiply   = backend.OpLeftMultiply
	opCrossProduct   = backend.OpCrossProduct
	opRowSum         = backend.OpRowSum
	opColumnSum      = backend.OpColumnSum
	opElementWiseSum = backend.OpElementWiseSum
	opMaterialize    = "materialize"
)

// Transpose returns Mᵀ. O(1): the flag flips, nothing is copied or computed.
func (m *Matrix) Transpose() *Matrix {
	m.trace(opTranspose)
	return m.withTransposed(!m.transposed)
}

// mapScalar applies fn to every right factor and, when present, to the base.
// Left factors and flags are unchanged.
//
// The mapping is a modelling contract rather than an algebraic identity:
// exp(K·R) = K·exp(R) holds only because each row of an indicator K selects
// exactly one row of R.
func (m *Matrix) mapScalar(op string, fn func(backend.Value) (backend.Value, error)) (*Matrix, error) {
	m.trace(op)

	right := make([]backend.Value, len(m.right))
	var err error
	for i, r := range m.right {
		if right[i], err = fn(r); err != nil {
			return nil, factoredErrorf(op, err)
		}
	}

	var base backend.Value
	if !m.baseAbsent {
		if base, err = fn(m.base); err != nil {
			return nil, factoredErrorf(op, err)
		}
	}

	return m.withBlocks(base, right), nil
}

// Exp returns e^M element-wise.
func (m *Matrix) Exp() (*Matrix, error) { return m.mapScalar(opExp, m.be.Exp) }

// Log returns ln(M) element-wise.
func (m *Matrix) Log() (*Matrix, error) { return m.mapScalar(opLog, m.be.Log) }

// Sqrt returns √M element-wise.
func (m *Matrix) Sqrt() (*Matrix, error) { return m.mapScalar(opSqrt, m.be.Sqrt) }

// ScalarAdd returns M + s element-wise.
func (m *Matrix) ScalarAdd(s float64) (*Matrix, error) {
	return m.mapScalar(opScalarAdd, func(v backend.Value) (backend.Value, error) { return m.be.ScalarAdd(v, s) })
}

// ScalarMultiply returns s·M.
func (m *Matrix) ScalarMultiply(s float64) (*Matrix, error) {
	return m.mapScalar(opScalarMultiply, func(v backend.Value) (backend.Value, error) { return m.be.ScalarMultiply(v, s) })
}

// ScalarPow returns M^p element-wise.
func (m *Matrix) ScalarPow(p float64) (*Matrix, error) {
	return m.mapScalar(opScalarExponent, func(v backend.Value) (backend.Value, error) { return m.be.ScalarExponent(v, p) })
}

// checkOperand rejects factored operands and reads the operand shape.
func (m *Matrix) checkOperand(op string, x backend.Value) (rows, cols int, err error) {
	if x == nil {
		return 0, 0, fmt.Errorf("%s: nil operand: %w", op, ErrBadArguments)
	}
	if _, ok := x.(*Matrix); ok {
		return 0, 0, fmt.Errorf("%s: factored operand: %w", op, ErrUnsupported)
	}
	if rows, err = m.be.NumRows(x); err != nil {
		return 0, 0, factoredErrorf(op, err)
	}
	if cols, err = m.be.NumCols(x); err != nil {
		return 0, 0, factoredErrorf(op, err)
	}

	return rows, cols, nil
}

// RightMultiply returns M·X.
//
// Implementation (untransposed):
//   - Stage 1: X must have cols(M) rows.
//   - Stage 2: res = S·X[0:c_0, :] with c_0 = cols(S) (skipped when absent).
//   - Stage 3: for each term, res += K_i·(R_i·X[c_i:c_{i+1}, :]).
//
// Transposed receiver: Mᵀ·X = (Xᵀ·M)ᵀ through LeftMultiply.
//
// Complexity:
//   - O(r) backend multiplies on k_i-row intermediates; the n×cols(M) matrix
//     is never formed.
func (m *Matrix) RightMultiply(x backend.Value) (backend.Value, error) {
	m.trace(opRightMultiply)
	if m.transposed {
		return m.viaTranspose(opRightMultiply, x, (*Matrix).LeftMultiply)
	}

	xRows, xCols, err := m.checkOperand(opRightMultiply, x)
	if err != nil {
		return nil, err
	}
	if xRows != m.width() {
		return nil, fmt.Errorf("%s: operand has %d rows, want %d: %w", opRightMultiply, xRows, m.width(), ErrBadArguments)
	}

	var res, band, part backend.Value
	offset := 0
	if !m.baseAbsent {
		if band, err = m.be.Slice(x, 0, m.baseCols, 0, xCols); err != nil {
			return nil, factoredErrorf(opRightMultiply, err)
		}
		if res, err = m.be.RightMultiply(m.base, band); err != nil {
			return nil, factoredErrorf(opRightMultiply, err)
		}
		offset = m.baseCols
	}

	for i := range m.left {
		if band, err = m.be.Slice(x, offset, offset+m.widths[i], 0, xCols); err != nil {
			return nil, factoredErrorf(opRightMultiply, err)
		}
		if part, err = m.be.RightMultiply(m.right[i], band); err != nil {
			return nil, factoredErrorf(opRightMultiply, err)
		}
		if part, err = m.be.RightMultiply(m.left[i], part); err != nil {
			return nil, factoredErrorf(opRightMultiply, err)
		}
		if res == nil {
			res = part
		} else if res, err = m.be.MatrixAdd(res, part); err != nil {
			return nil, factoredErrorf(opRightMultiply, err)
		}
		offset += m.widths[i]
	}

	return res, nil
}

// LeftMultiply returns X·M.
//
// Implementation (untransposed):
//   - Stage 1: X must have rows(M) columns.
//   - Stage 2: res = X·S (skipped when absent).
//   - Stage 3: for each term, res = [res | (X·K_i)·R_i].
//
// Transposed receiver: X·Mᵀ = (M·Xᵀ)ᵀ through RightMultiply.
//
// Notes:
//   - Right multiplication accumulates by addition, left multiplication by
//     column append: each term owns its own band of output columns.
func (m *Matrix) LeftMultiply(x backend.Value) (backend.Value, error) {
	m.trace(opLeftMultiply)
	if m.transposed {
		return m.viaTranspose(opLeftMultiply, x, (*Matrix).RightMultiply)
	}

	_, xCols, err := m.checkOperand(opLeftMultiply, x)
	if err != nil {
		return nil, err
	}
	if xCols != m.rows {
		return nil, fmt.Errorf("%s: operand has %d columns, want %d: %w", opLeftMultiply, xCols, m.rows, ErrBadArguments)
	}

	var res, part backend.Value
	if !m.baseAbsent {
		if res, err = m.be.LeftMultiply(m.base, x); err != nil {
			return nil, factoredErrorf(opLeftMultiply, err)
		}
	}

	for i := range m.left {
		if part, err = m.be.LeftMultiply(m.left[i], x); err != nil {
			return nil, factoredErrorf(opLeftMultiply, err)
		}
		if part, err = m.be.LeftMultiply(m.right[i], part); err != nil {
			return nil, factoredErrorf(opLeftMultiply, err)
		}
		if res == nil {
			res = part
		} else if res, err = m.be.ColumnAppend(res, part); err != nil {
			return nil, factoredErrorf(opLeftMultiply, err)
		}
	}

	return res, nil
}

// viaTranspose evaluates a transposed-receiver product as (other(Mplain, Xᵀ))ᵀ.
// The receiver is untouched; the plain view is a derived instance.
func (m *Matrix) viaTranspose(op string, x backend.Value, other func(*Matrix, backend.Value) (backend.Value, error)) (backend.Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: nil operand: %w", op, ErrBadArguments)
	}
	if _, ok := x.(*Matrix); ok {
		return nil, fmt.Errorf("%s: factored operand: %w", op, ErrUnsupported)
	}
	xt, err := m.be.Transpose(x)
	if err != nil {
		return nil, factoredErrorf(op, err)
	}
	res, err := other(m.withTransposed(false), xt)
	if err != nil {
		return nil, factoredErrorf(op, err)
	}
	if res, err = m.be.Transpose(res); err != nil {
		return nil, factoredErrorf(op, err)
	}

	return res, nil
}
