// SPDX-License-Identifier: MIT
package workload

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/normat/factored"
	"github.com/katalvlaran/normat/matrix"
)

func rows(t *testing.T, v any) [][]float64 {
	t.Helper()
	m, ok := v.(matrix.Matrix)
	require.Truef(t, ok, "%T is not a matrix", v)
	out, err := matrix.ToRows(m)
	require.NoError(t, err)
	return out
}

func TestLoad_Concrete(t *testing.T) {
	w, err := Load(filepath.Join("testdata", "concrete.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "concrete", w.Name)
	require.Len(t, w.Terms, 1)
	require.NotNil(t, w.Scalar)
	assert.Equal(t, 2.0, *w.Scalar)

	m, err := w.Build(factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 4, m.NumCols())

	res, err := w.Run(m, "rowSum")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{8}, {8}}, rows(t, res))

	res, err = w.Run(m, "columnSum")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1, 6, 8}}, rows(t, res))

	res, err = w.Run(m, "elementWiseSum")
	require.NoError(t, err)
	assert.Equal(t, 16.0, res)

	res, err = w.Run(m, "rightMultiply")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{8}, {8}}, rows(t, res))

	res, err = w.Run(m, "scalarMultiply")
	require.NoError(t, err)
	scaled, ok := res.(*factored.Matrix)
	require.True(t, ok)
	full, err := scaled.Materialize()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 0, 6, 8}, {0, 2, 6, 8}}, rows(t, full))
}

func TestLoad_AbsentTransposed(t *testing.T) {
	w, err := Load(filepath.Join("testdata", "absent_transposed.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOps, w.OpList())

	m, err := w.Build(factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, factored.TransposedBaseAbsent, m.State())
	assert.Equal(t, 3, m.NumRows())
	assert.Equal(t, 3, m.NumCols())

	full, err := m.Materialize()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 3, 1}, {2, 4, 2}, {6, 5, 5}}, rows(t, full))

	res, err := w.Run(m, "rowSum")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5}, {8}, {16}}, rows(t, res))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)

	_, err = Load(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "term")

	cases := []struct {
		name string
		yaml string
	}{
		{"no base", "name: x\nterms:\n  - left: [[1]]\n    right: [[1]]\n"},
		{"absent and empty", "name: x\nbase_absent: true\n"},
		{"half term", "name: x\nbase: [[1]]\nterms:\n  - left: [[1]]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			require.ErrorIs(t, err, ErrInvalidWorkload)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	w, err := Parse([]byte("name: x\nbase: [[1, 2], [3]]\nterms:\n  - left: [[1], [1]]\n    right: [[1]]\n"))
	require.NoError(t, err)
	_, err = w.Build()
	require.ErrorIs(t, err, ErrInvalidWorkload)
	require.ErrorIs(t, err, matrix.ErrRaggedRows)

	w, err = Parse([]byte("name: x\nbase: [[1], [2]]\nterms:\n  - left: [[1]]\n    right: [[1]]\n"))
	require.NoError(t, err)
	_, err = w.Build(factored.WithLogger(zerolog.Nop()))
	require.ErrorIs(t, err, factored.ErrMalformedFactorization)
}

func TestRun_MissingInputs(t *testing.T) {
	w, err := Parse([]byte("name: x\nbase: [[1]]\nterms:\n  - left: [[1]]\n    right: [[2]]\n"))
	require.NoError(t, err)
	m, err := w.Build(factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = w.Run(m, "leftMultiply")
	require.ErrorIs(t, err, ErrInvalidWorkload)
	_, err = w.Run(m, "scalarAdd")
	require.ErrorIs(t, err, ErrInvalidWorkload)

	_, err = w.Run(m, "slice")
	require.ErrorIs(t, err, factored.ErrBadArguments)
	_, err = w.Run(m, "invertMatrix")
	require.ErrorIs(t, err, factored.ErrUnsupported)
}
