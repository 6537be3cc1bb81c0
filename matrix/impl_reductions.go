// SPDX-License-Identifier: MIT

// Package matrix - reductions (row sums, column sums, grand total).
//
// Shape contract:
//   - RowSum(m)    → Rows×1 column vector.
//   - ColumnSum(m) → 1×Cols row vector.
//   - ElementSum   → scalar.
//
// Determinism:
//   - Fixed i→j accumulation order; repeated calls return bit-identical results.

package matrix

const (
	opRowSum     = "RowSum"
	opColumnSum  = "ColumnSum"
	opElementSum = "ElementSum"
)

// RowSum returns the n×1 column vector of per-row totals.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func RowSum(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSum, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, 1)
	if err != nil {
		return nil, matrixErrorf(opRowSum, err)
	}

	var sum, v float64
	if dm, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			sum = ZeroSum
			for _, v = range dm.data[i*cols : (i+1)*cols] {
				sum += v
			}
			res.data[i] = sum
		}
		return res, nil
	}

	for i := 0; i < rows; i++ {
		sum = ZeroSum
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opRowSum, err)
			}
			sum += v
		}
		res.data[i] = sum
	}

	return res, nil
}

// ColumnSum returns the 1×m row vector of per-column totals.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(c).
//
// AI-Hints:
//   - ColumnSum of an indicator matrix counts how many rows reference each
//     attribute row; the factored Gram kernel takes its square root.
func ColumnSum(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColumnSum, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(1, cols)
	if err != nil {
		return nil, matrixErrorf(opColumnSum, err)
	}

	if dm, ok := m.(*Dense); ok {
		var base int
		for i := 0; i < rows; i++ {
			base = i * cols
			for j := 0; j < cols; j++ {
				res.data[j] += dm.data[base+j]
			}
		}
		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opColumnSum, err)
			}
			res.data[j] += v
		}
	}

	return res, nil
}

// ElementSum returns Σ m[i,j].
// Errors: ErrNilMatrix. Complexity: O(r*c).
func ElementSum(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opElementSum, err)
	}

	sum := ZeroSum
	if dm, ok := m.(*Dense); ok {
		for _, v := range dm.data {
			sum += v
		}
		return sum, nil
	}

	var v float64
	var err error
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, matrixErrorf(opElementSum, err)
			}
			sum += v
		}
	}

	return sum, nil
}
