// SPDX-License-Identifier: MIT

package factored

import (
	"github.com/katalvlaran/normat/backend"
)

// RowSum returns the row-sum column vector of the denoted matrix.
//
// Untransposed: rowSum(S) + Σ K_i·rowSum(R_i). Row reduction folds into the
// left factor.
// Transposed: rowSum(Mᵀ) = columnSum(M)ᵀ.
func (m *Matrix) RowSum() (backend.Value, error) {
	m.trace(opRowSum)
	if m.transposed {
		return m.reduceTransposed(opRowSum, (*Matrix).ColumnSum)
	}

	var res, part backend.Value
	var err error
	if !m.baseAbsent {
		if res, err = m.be.RowSum(m.base); err != nil {
			return nil, factoredErrorf(opRowSum, err)
		}
	}
	for i := range m.left {
		if part, err = m.be.RowSum(m.right[i]); err != nil {
			return nil, factoredErrorf(opRowSum, err)
		}
		if part, err = m.be.RightMultiply(m.left[i], part); err != nil {
			return nil, factoredErrorf(opRowSum, err)
		}
		if res == nil {
			res = part
		} else if res, err = m.be.MatrixAdd(res, part); err != nil {
			return nil, factoredErrorf(opRowSum, err)
		}
	}

	return res, nil
}

// ColumnSum returns the column-sum row vector of the denoted matrix.
//
// Untransposed: [columnSum(S) | columnSum(K_0)·R_0 | ...]. Column reduction
// folds into the right factor, one output band per term.
// Transposed: columnSum(Mᵀ) = rowSum(M)ᵀ.
func (m *Matrix) ColumnSum() (backend.Value, error) {
	m.trace(opColumnSum)
	if m.transposed {
		return m.reduceTransposed(opColumnSum, (*Matrix).RowSum)
	}

	var res, part backend.Value
	var err error
	if !m.baseAbsent {
		if res, err = m.be.ColumnSum(m.base); err != nil {
			return nil, factoredErrorf(opColumnSum, err)
		}
	}
	for i := range m.left {
		if part, err = m.be.ColumnSum(m.left[i]); err != nil {
			return nil, factoredErrorf(opColumnSum, err)
		}
		if part, err = m.be.LeftMultiply(m.right[i], part); err != nil {
			return nil, factoredErrorf(opColumnSum, err)
		}
		if res == nil {
			res = part
		} else if res, err = m.be.ColumnAppend(res, part); err != nil {
			return nil, factoredErrorf(opColumnSum, err)
		}
	}

	return res, nil
}

// reduceTransposed computes other(Mplain)ᵀ.
func (m *Matrix) reduceTransposed(op string, other func(*Matrix) (backend.Value, error)) (backend.Value, error) {
	res, err := other(m.withTransposed(false))
	if err != nil {
		return nil, factoredErrorf(op, err)
	}
	if res, err = m.be.Transpose(res); err != nil {
		return nil, factoredErrorf(op, err)
	}

	return res, nil
}

// ElementWiseSum returns the sum of every entry of the denoted matrix:
// sum(S) + Σ sum(columnSum(K_i)·rowSum(R_i)). Transposition does not change it.
//
// Complexity:
//   - One 1×k_i by k_i×1 product per term.
func (m *Matrix) ElementWiseSum() (float64, error) {
	m.trace(opElementWiseSum)

	var total, s float64
	var err error
	if !m.baseAbsent {
		if total, err = m.be.ElementWiseSum(m.base); err != nil {
			return 0, factoredErrorf(opElementWiseSum, err)
		}
	}

	var cs, rs, dot backend.Value
	for i := range m.left {
		if cs, err = m.be.ColumnSum(m.left[i]); err != nil {
			return 0, factoredErrorf(opElementWiseSum, err)
		}
		if rs, err = m.be.RowSum(m.right[i]); err != nil {
			return 0, factoredErrorf(opElementWiseSum, err)
		}
		if dot, err = m.be.RightMultiply(cs, rs); err != nil {
			return 0, factoredErrorf(opElementWiseSum, err)
		}
		if s, err = m.be.ElementWiseSum(dot); err != nil {
			return 0, factoredErrorf(opElementWiseSum, err)
		}
		total += s
	}

	return total, nil
}

// CrossProduct returns the Gram matrix of the denoted value, (denoted)ᵀ·(denoted).
//
// Implementation (untransposed), block by block over
// columns [S | K_0R_0 | ... ]:
//   - Stage 1: G = SᵀS (or, base absent, the first diagonal block).
//   - Stage 2: for each term i, the block row against earlier blocks is
//     [R_iᵀ(K_iᵀS) | R_iᵀ(K_iᵀK_j)R_j for j<i], and the diagonal block is
//     (D_i·R_i)ᵀ(D_i·R_i) with D_i = diag(√colSum(K_i)), since K_iᵀK_i is
//     diagonal for an indicator K_i.
//   - Stage 3: G = [[G, rowᵀ], [row, diag]].
//
// Transposed receiver: (Mᵀ)ᵀMᵀ = M·Mᵀ = S·Sᵀ + Σ K_i(R_iR_iᵀ)K_iᵀ, computed
// directly on full-height n×n products.
//
// Complexity:
//   - O(r²) backend calls untransposed; every intermediate is at most
//     cols(M) wide and never n tall.
func (m *Matrix) CrossProduct() (backend.Value, error) {
	m.trace(opCrossProduct)
	if m.transposed {
		return m.crossProductTransposed()
	}

	var (
		res, row, blk, diag backend.Value
		err                 error
	)
	if !m.baseAbsent {
		if res, err = m.be.CrossProduct(m.base); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
	}

	for i := range m.left {
		row = nil
		if !m.baseAbsent {
			// R_iᵀ(K_iᵀS)
			if blk, err = m.be.CrossProductOf(m.left[i], m.base); err != nil {
				return nil, factoredErrorf(opCrossProduct, err)
			}
			if row, err = m.be.CrossProductOf(m.right[i], blk); err != nil {
				return nil, factoredErrorf(opCrossProduct, err)
			}
		}
		for j := 0; j < i; j++ {
			if blk, err = m.offDiagonal(i, j); err != nil {
				return nil, factoredErrorf(opCrossProduct, err)
			}
			if row == nil {
				row = blk
			} else if row, err = m.be.ColumnAppend(row, blk); err != nil {
				return nil, factoredErrorf(opCrossProduct, err)
			}
		}

		if diag, err = m.diagonalBlock(i); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if res == nil {
			res = diag
			continue
		}
		if res, err = m.appendBlockRow(res, row, diag); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
	}

	return res, nil
}

// offDiagonal returns R_iᵀ(K_iᵀK_j)R_j as a chain of cross products:
// crossProductOf(K_j, K_i) = K_jᵀK_i, then (K_jᵀK_i)ᵀR_j, then R_iᵀ(...).
func (m *Matrix) offDiagonal(i, j int) (backend.Value, error) {
	kk, err := m.be.CrossProductOf(m.left[j], m.left[i])
	if err != nil {
		return nil, err
	}
	kr, err := m.be.CrossProductOf(kk, m.right[j])
	if err != nil {
		return nil, err
	}

	return m.be.CrossProductOf(m.right[i], kr)
}

// diagonalBlock returns R_iᵀK_iᵀK_iR_i = crossProduct(diag(√colSum(K_i))·R_i).
func (m *Matrix) diagonalBlock(i int) (backend.Value, error) {
	cs, err := m.be.ColumnSum(m.left[i])
	if err != nil {
		return nil, err
	}
	if cs, err = m.be.Sqrt(cs); err != nil {
		return nil, err
	}
	d, err := m.be.Diagonal(cs)
	if err != nil {
		return nil, err
	}
	dr, err := m.be.RightMultiply(d, m.right[i])
	if err != nil {
		return nil, err
	}

	return m.be.CrossProduct(dr)
}

// appendBlockRow grows the symmetric block matrix G by one block row:
// [[G, rowᵀ], [row, diag]].
func (m *Matrix) appendBlockRow(g, row, diag backend.Value) (backend.Value, error) {
	rowT, err := m.be.Transpose(row)
	if err != nil {
		return nil, err
	}
	top, err := m.be.ColumnAppend(g, rowT)
	if err != nil {
		return nil, err
	}
	bottom, err := m.be.ColumnAppend(row, diag)
	if err != nil {
		return nil, err
	}

	return m.be.RowAppend(top, bottom)
}

// crossProductTransposed computes M·Mᵀ for the untransposed composition M.
func (m *Matrix) crossProductTransposed() (backend.Value, error) {
	var res, st, g, kt backend.Value
	var err error
	if !m.baseAbsent {
		if st, err = m.be.Transpose(m.base); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if res, err = m.be.CrossProduct(st); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
	}
	for i := range m.left {
		// K_i (R_i R_iᵀ) K_iᵀ
		if g, err = m.be.Transpose(m.right[i]); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if g, err = m.be.CrossProduct(g); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if g, err = m.be.RightMultiply(m.left[i], g); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if kt, err = m.be.Transpose(m.left[i]); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if g, err = m.be.RightMultiply(g, kt); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
		if res == nil {
			res = g
		} else if res, err = m.be.MatrixAdd(res, g); err != nil {
			return nil, factoredErrorf(opCrossProduct, err)
		}
	}

	return res, nil
}
