// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the element-wise scalar maps of the numeric backend
//     (Exp, Log, Sqrt, Pow, AddScalar) on top of one private kernel (ewMap).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Numeric policy (options.go):
//   - Under the strict policy (default) a map that would produce NaN/±Inf fails
//     with ErrNaNInf, e.g. Log(0) or Pow(-1, 0.5).
//   - Under WithNoValidateNaNInf results keep IEEE semantics and the relaxed
//     policy is carried into the output Dense.
//   - Sqrt clamps inputs in [-eps, 0) to zero before the root.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock the flat-slice fast path.

package matrix

import (
	"fmt"
	"math"
)

const (
	opExp       = "Exp"
	opLog       = "Log"
	opSqrt      = "Sqrt"
	opPow       = "Pow"
	opAddScalar = "AddScalar"
)

// ewMap computes out[i,j] = fn(X[i,j]) under the numeric policy o.
// Time: O(r*c). Space: O(r*c). Deterministic flat loop on Dense fast-path.
func ewMap(X Matrix, tag string, fn func(float64) float64, o Options) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	out, err := newDenseWithPolicy(r, c, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	if d, ok := X.(*Dense); ok {
		for idx, v := range d.data {
			out.data[idx] = fn(v)
		}
	} else {
		var v float64
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(tag, err)
				}
				out.data[i*c+j] = fn(v)
			}
		}
	}

	if o.validateNaNInf {
		for idx, v := range out.data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s(%d,%d): %w", tag, idx/c, idx%c, ErrNaNInf)
			}
		}
	}

	return out, nil
}

// Exp returns e^X element-wise.
// Errors: ErrNilMatrix; ErrNaNInf on overflow under the strict policy.
func Exp(X Matrix, opts ...Option) (Matrix, error) {
	return ewMap(X, opExp, math.Exp, gatherOptions(opts...))
}

// Log returns ln(X) element-wise.
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf for non-positive entries under the strict policy.
//
// Complexity: O(r*c).
func Log(X Matrix, opts ...Option) (Matrix, error) {
	return ewMap(X, opLog, math.Log, gatherOptions(opts...))
}

// Sqrt returns √X element-wise. Entries in [-eps, 0) are treated as zero.
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf for entries below -eps under the strict policy.
//
// AI-Hints:
//   - The factored Gram kernel applies Sqrt to indicator column counts, which
//     are non-negative integers; eps only matters for upstream round-off.
func Sqrt(X Matrix, opts ...Option) (Matrix, error) {
	o := gatherOptions(opts...)
	eps := o.eps

	return ewMap(X, opSqrt, func(v float64) float64 {
		if v < 0 && v >= -eps {
			return 0
		}
		return math.Sqrt(v)
	}, o)
}

// Pow returns X^p element-wise.
// Errors: ErrNilMatrix; ErrNaNInf under the strict policy (e.g. negative base, fractional p).
func Pow(X Matrix, p float64, opts ...Option) (Matrix, error) {
	return ewMap(X, opPow, func(v float64) float64 { return math.Pow(v, p) }, gatherOptions(opts...))
}

// AddScalar returns X + s element-wise.
func AddScalar(X Matrix, s float64, opts ...Option) (Matrix, error) {
	return ewMap(X, opAddScalar, func(v float64) float64 { return v + s }, gatherOptions(opts...))
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	r, c := a.Rows(), a.Cols()
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
