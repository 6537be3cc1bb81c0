// SPDX-License-Identifier: MIT
package factored_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/normat/backend"
	"github.com/katalvlaran/normat/factored"
	"github.com/katalvlaran/normat/matrix"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	rtol = 1e-10
	atol = 1e-10
)

// fixture is one random factorization plus its dense reference.
type fixture struct {
	base        *matrix.Dense // nil when absent
	left, right []backend.Value
	absent      bool
	transposed  bool
	ref         matrix.Matrix // the denoted matrix, built with matrix kernels only
}

func (f fixture) String() string {
	return fmt.Sprintf("r=%d/absent=%v/transposed=%v", len(f.left), f.absent, f.transposed)
}

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

// randDense fills an r×c matrix with U(-1,1) values.
func randDense(t *testing.T, rng *rand.Rand, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, rng.Float64()*2-1))
		}
	}
	return m
}

// randIndicator returns an n×k one-hot matrix: each row holds a single 1.
func randIndicator(t *testing.T, rng *rand.Rand, n, k int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(n, k)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, rng.Intn(k), 1))
	}
	return m
}

// newFixture draws a factorization with n rows, a base of width 2 (unless
// absent) and r terms of assorted widths.
func newFixture(t *testing.T, seed int64, r int, absent, transposed bool) fixture {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	const n = 7
	f := fixture{absent: absent, transposed: transposed}

	var ref matrix.Matrix
	if !absent {
		f.base = randDense(t, rng, n, 2)
		ref = f.base
	}
	for i := 0; i < r; i++ {
		k, w := 2+i, 1+(i+1)%3
		K := randIndicator(t, rng, n, k)
		R := randDense(t, rng, k, w)
		f.left = append(f.left, K)
		f.right = append(f.right, R)

		term, err := matrix.Mul(K, R)
		require.NoError(t, err)
		if ref == nil {
			ref = term
			continue
		}
		ref, err = matrix.ColumnAppend(ref, term)
		require.NoError(t, err)
	}
	if transposed {
		var err error
		ref, err = matrix.Transpose(ref)
		require.NoError(t, err)
	}
	f.ref = ref

	return f
}

// build turns a fixture into a factored matrix over the dense backend.
func (f fixture) build(t *testing.T) *factored.Matrix {
	t.Helper()
	var base backend.Value
	if f.base != nil {
		base = f.base
	}
	m, err := factored.Build(base, f.left, f.right, f.absent, backend.NewDenseBackend(), factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	if f.transposed {
		m = m.Transpose()
	}
	return m
}

// fixtures enumerates every state for ranks 1..3.
func fixtures(t *testing.T) []fixture {
	t.Helper()
	var out []fixture
	seed := int64(1)
	for r := 1; r <= 3; r++ {
		for _, absent := range []bool{false, true} {
			for _, transposed := range []bool{false, true} {
				out = append(out, newFixture(t, seed, r, absent, transposed))
				seed++
			}
		}
	}
	return out
}

// requireClose asserts a backend value equals want within tolerance.
func requireClose(t *testing.T, want matrix.Matrix, got backend.Value) {
	t.Helper()
	gm, ok := got.(matrix.Matrix)
	require.Truef(t, ok, "result %T is not a matrix", got)
	require.Equal(t, want.Rows(), gm.Rows(), "rows")
	require.Equal(t, want.Cols(), gm.Cols(), "cols")
	ok, err := matrix.AllClose(gm, want, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "got:\n%v\nwant:\n%v", gm, want)
}

func rowsOf(t *testing.T, v backend.Value) [][]float64 {
	t.Helper()
	m, ok := v.(matrix.Matrix)
	require.Truef(t, ok, "value %T is not a matrix", v)
	out, err := matrix.ToRows(m)
	require.NoError(t, err)
	return out
}

// faultyRowSum is a typed backend whose RowSum always fails.
type faultyRowSum struct{ *backend.Dense }

func (faultyRowSum) RowSum(backend.Value) (backend.Value, error) {
	return nil, fmt.Errorf("row sums are broken")
}
