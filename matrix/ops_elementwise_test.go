// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/normat/matrix"
	"github.com/stretchr/testify/require"
)

func TestScalarMaps(t *testing.T) {
	A := MustRows(t, [][]float64{{1, 4}, {9, 16}})

	s, err := matrix.Sqrt(A)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 2}, {3, 4}}, s)

	p, err := matrix.Pow(hide{A}, 0.5)
	require.NoError(t, err)
	CompareClose(t, p, s, rtolTiny, atolTiny)

	a, err := matrix.AddScalar(A, -1)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0, 3}, {8, 15}}, a)

	e, err := matrix.Exp(MustDense(t, 1, 2))
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 1}}, e)

	l, err := matrix.Log(e)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0, 0}}, l)
}

func TestScalarMaps_NumericPolicy(t *testing.T) {
	Z := MustDense(t, 2, 2)

	_, err := matrix.Log(Z)
	AssertErrorIs(t, err, matrix.ErrNaNInf)

	relaxed, err := matrix.Log(Z, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.True(t, math.IsInf(MustAt(t, relaxed, 0, 0), -1))
	// relaxed policy travels with the result
	require.NoError(t, relaxed.Set(0, 1, math.NaN()))

	neg := MustRows(t, [][]float64{{-1}})
	_, err = matrix.Pow(neg, 0.5)
	AssertErrorIs(t, err, matrix.ErrNaNInf)
}

func TestSqrt_EpsilonClamp(t *testing.T) {
	A := MustRows(t, [][]float64{{-1e-14, 4}})
	got, err := matrix.Sqrt(A)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0, 2}}, got)

	_, err = matrix.Sqrt(A, matrix.WithEpsilon(0))
	AssertErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.Sqrt(MustRows(t, [][]float64{{-1}}))
	AssertErrorIs(t, err, matrix.ErrNaNInf)
}

func TestAllClose(t *testing.T) {
	A := MustRows(t, [][]float64{{1, 2}})
	B := MustRows(t, [][]float64{{1, 2.0000001}})

	ok, err := matrix.AllClose(A, B, 0, 1e-6)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(hide{A}, B, 0, 1e-9)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(A, B, math.NaN(), 0)
	AssertErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.AllClose(A, MustDense(t, 2, 1), 0, 0)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}
