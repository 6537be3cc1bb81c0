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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMultiply_MatchesDense checks both multiplication rewrites against the
// materialized product in every state.
func TestMultiply_MatchesDense(t *testing.T) {
	for _, f := range fixtures(t) {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			m := f.build(t)
			rng := rand.New(rand.NewSource(99))

			X := randDense(t, rng, m.NumCols(), 3)
			got, err := m.RightMultiply(X)
			require.NoError(t, err)
			want, err := matrix.Mul(f.ref, X)
			require.NoError(t, err)
			requireClose(t, want, got)

			Y := randDense(t, rng, 2, m.NumRows())
			got, err = m.LeftMultiply(Y)
			require.NoError(t, err)
			want, err = matrix.Mul(Y, f.ref)
			require.NoError(t, err)
			requireClose(t, want, got)
		})
	}
}

func TestCrossProduct_MatchesDense(t *testing.T) {
	for _, f := range fixtures(t) {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			got, err := f.build(t).CrossProduct()
			require.NoError(t, err)
			want, err := matrix.CrossProduct(f.ref)
			require.NoError(t, err)
			requireClose(t, want, got)
		})
	}
}

// TestCrossProduct_TwoTermGram spells out the r=2 block layout.
func TestCrossProduct_TwoTermGram(t *testing.T) {
	S := mustRows(t, [][]float64{{1}, {2}, {3}})
	K0 := mustRows(t, [][]float64{{1, 0}, {0, 1}, {1, 0}})
	R0 := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	K1 := mustRows(t, [][]float64{{0, 1}, {1, 0}, {1, 0}})
	R1 := mustRows(t, [][]float64{{5}, {6}})

	m, err := factored.Build(S, []backend.Value{K0, K1}, []backend.Value{R0, R1}, false,
		backend.NewDenseBackend(), factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	// M = [[1,1,2,6],[2,3,4,5],[3,1,2,5]]
	full, err := m.Materialize()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1, 2, 6}, {2, 3, 4, 5}, {3, 1, 2, 5}}, rowsOf(t, full))

	g, err := m.CrossProduct()
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{
		{14, 10, 16, 31},
		{10, 11, 16, 26},
		{16, 16, 24, 42},
		{31, 26, 42, 86},
	}), g)
}

func TestReductions_MatchDense(t *testing.T) {
	for _, f := range fixtures(t) {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			m := f.build(t)

			rs, err := m.RowSum()
			require.NoError(t, err)
			want, err := matrix.RowSum(f.ref)
			require.NoError(t, err)
			requireClose(t, want, rs)

			cs, err := m.ColumnSum()
			require.NoError(t, err)
			want, err = matrix.ColumnSum(f.ref)
			require.NoError(t, err)
			requireClose(t, want, cs)

			total, err := m.ElementWiseSum()
			require.NoError(t, err)
			wantTotal, err := matrix.ElementSum(f.ref)
			require.NoError(t, err)
			assert.InDelta(t, wantTotal, total, 1e-10)
		})
	}
}

// TestReductions_TransposeAsymmetry checks rowSum(Mᵀ) = columnSum(M)ᵀ and
// columnSum(Mᵀ) = rowSum(M)ᵀ without consulting a dense reference.
func TestReductions_TransposeAsymmetry(t *testing.T) {
	for _, absent := range []bool{false, true} {
		m := newFixture(t, 77, 3, absent, false).build(t)
		be := m.Backend()

		rsT, err := m.Transpose().RowSum()
		require.NoError(t, err)
		cs, err := m.ColumnSum()
		require.NoError(t, err)
		csT, err := be.Transpose(cs)
		require.NoError(t, err)
		requireClose(t, csT.(matrix.Matrix), rsT)

		csOfT, err := m.Transpose().ColumnSum()
		require.NoError(t, err)
		rs, err := m.RowSum()
		require.NoError(t, err)
		rsTr, err := be.Transpose(rs)
		require.NoError(t, err)
		requireClose(t, rsTr.(matrix.Matrix), csOfT)
	}
}

func TestScalarMaps_MatchDenseAndAlias(t *testing.T) {
	type mapCase struct {
		name  string
		apply func(*factored.Matrix) (*factored.Matrix, error)
		dense func(matrix.Matrix) (matrix.Matrix, error)
	}
	cases := []mapCase{
		{"scalarMultiply",
			func(m *factored.Matrix) (*factored.Matrix, error) { return m.ScalarMultiply(-2.5) },
			func(x matrix.Matrix) (matrix.Matrix, error) { return matrix.Scale(x, -2.5) }},
		{"scalarAdd",
			func(m *factored.Matrix) (*factored.Matrix, error) { return m.ScalarAdd(3) },
			func(x matrix.Matrix) (matrix.Matrix, error) { return matrix.AddScalar(x, 3) }},
		{"exp",
			func(m *factored.Matrix) (*factored.Matrix, error) { return m.Exp() },
			func(x matrix.Matrix) (matrix.Matrix, error) { return matrix.Exp(x) }},
		{"scalarPow",
			func(m *factored.Matrix) (*factored.Matrix, error) { return m.ScalarPow(2) },
			func(x matrix.Matrix) (matrix.Matrix, error) { return matrix.Pow(x, 2) }},
	}

	for _, f := range fixtures(t) {
		for _, c := range cases {
			f, c := f, c
			t.Run(f.String()+"/"+c.name, func(t *testing.T) {
				m := f.build(t)
				mapped, err := c.apply(m)
				require.NoError(t, err)

				assert.Equal(t, m.State(), mapped.State())
				for i := range m.Left() {
					assert.Same(t, m.Left()[i], mapped.Left()[i], "left factors are aliased")
					assert.NotSame(t, m.Right()[i], mapped.Right()[i])
				}

				got, err := mapped.Materialize()
				require.NoError(t, err)
				want, err := c.dense(f.ref)
				require.NoError(t, err)
				requireClose(t, want, got)

				// the receiver still denotes the original matrix
				orig, err := m.Materialize()
				require.NoError(t, err)
				requireClose(t, f.ref, orig)
			})
		}
	}
}

func TestScalarMaps_LogAndSqrt(t *testing.T) {
	f := newFixture(t, 11, 2, false, false)
	m := f.build(t)

	// shift into (0, ∞) first so Log and Sqrt stay finite
	pos, err := m.ScalarAdd(2)
	require.NoError(t, err)
	shifted, err := matrix.AddScalar(f.ref, 2)
	require.NoError(t, err)

	lg, err := pos.Log()
	require.NoError(t, err)
	got, err := lg.Materialize()
	require.NoError(t, err)
	want, err := matrix.Log(shifted)
	require.NoError(t, err)
	requireClose(t, want, got)

	sq, err := pos.Sqrt()
	require.NoError(t, err)
	got, err = sq.Materialize()
	require.NoError(t, err)
	want, err = matrix.Sqrt(shifted)
	require.NoError(t, err)
	requireClose(t, want, got)

	// Log of a matrix with non-positive entries fails in the backend
	_, err = m.Log()
	require.ErrorIs(t, err, backend.ErrBackendIncompatible)
}

// TestBaseAbsent_EquivalentToZeroBase compares an absent base with an
// explicit all-zero base of width w, in both orientations. The zero band sits
// in the leading columns of [0 | M] and in the leading rows of its transpose.
func TestBaseAbsent_EquivalentToZeroBase(t *testing.T) {
	const w = 2
	for _, transposed := range []bool{false, true} {
		transposed := transposed
		t.Run(fmt.Sprintf("transposed=%v", transposed), func(t *testing.T) {
			f := newFixture(t, 23, 2, true, transposed)
			absent := f.build(t)

			n := absent.NumRows()
			if transposed {
				n = absent.NumCols()
			}
			zero, err := matrix.NewZeros(n, w)
			require.NoError(t, err)
			padded, err := factored.Build(zero, f.left, f.right, false, absent.Backend(), factored.WithLogger(zerolog.Nop()))
			require.NoError(t, err)

			rowOff, colOff := 0, w
			if transposed {
				padded = padded.Transpose()
				rowOff, colOff = w, 0
			}
			require.Equal(t, absent.NumRows()+rowOff, padded.NumRows())
			require.Equal(t, absent.NumCols()+colOff, padded.NumCols())

			rng := rand.New(rand.NewSource(4))

			// M·X against P·[B ; X]: the zero columns of P annihilate any band B.
			X := randDense(t, rng, absent.NumCols(), 2)
			var Xp matrix.Matrix = X
			if colOff > 0 {
				Xp, err = matrix.RowAppend(randDense(t, rng, colOff, 2), X)
				require.NoError(t, err)
			}
			a, err := absent.RightMultiply(X)
			require.NoError(t, err)
			b, err := padded.RightMultiply(Xp)
			require.NoError(t, err)
			requireClose(t, a.(matrix.Matrix), tail(t, b, rowOff, 0))

			// X·M against [B | X]·P, likewise for the zero rows of P.
			Y := randDense(t, rng, 3, absent.NumRows())
			var Yp matrix.Matrix = Y
			if rowOff > 0 {
				Yp, err = matrix.ColumnAppend(randDense(t, rng, 3, rowOff), Y)
				require.NoError(t, err)
			}
			a, err = absent.LeftMultiply(Y)
			require.NoError(t, err)
			b, err = padded.LeftMultiply(Yp)
			require.NoError(t, err)
			requireClose(t, a.(matrix.Matrix), tail(t, b, 0, colOff))

			a, err = absent.RowSum()
			require.NoError(t, err)
			b, err = padded.RowSum()
			require.NoError(t, err)
			requireClose(t, a.(matrix.Matrix), tail(t, b, rowOff, 0))

			a, err = absent.ColumnSum()
			require.NoError(t, err)
			b, err = padded.ColumnSum()
			require.NoError(t, err)
			requireClose(t, a.(matrix.Matrix), tail(t, b, 0, colOff))

			a, err = absent.CrossProduct()
			require.NoError(t, err)
			b, err = padded.CrossProduct()
			require.NoError(t, err)
			requireClose(t, a.(matrix.Matrix), tail(t, b, colOff, colOff))

			sa, err := absent.ElementWiseSum()
			require.NoError(t, err)
			sb, err := padded.ElementWiseSum()
			require.NoError(t, err)
			assert.InDelta(t, sa, sb, 1e-12)
		})
	}
}

// tail drops the first r0 rows and c0 columns of a backend value.
func tail(t *testing.T, v backend.Value, r0, c0 int) matrix.Matrix {
	t.Helper()
	m, ok := v.(matrix.Matrix)
	require.Truef(t, ok, "value %T is not a matrix", v)
	if r0 == 0 && c0 == 0 {
		return m
	}
	out, err := matrix.Slice(m, r0, m.Rows(), c0, m.Cols())
	require.NoError(t, err)
	return out
}

func TestMultiply_OperandChecks(t *testing.T) {
	m := newFixture(t, 8, 1, false, false).build(t)
	rng := rand.New(rand.NewSource(1))

	_, err := m.RightMultiply(randDense(t, rng, m.NumCols()+1, 2))
	require.ErrorIs(t, err, factored.ErrBadArguments)

	_, err = m.LeftMultiply(randDense(t, rng, 2, m.NumRows()+1))
	require.ErrorIs(t, err, factored.ErrBadArguments)

	_, err = m.RightMultiply(nil)
	require.ErrorIs(t, err, factored.ErrBadArguments)

	_, err = m.RightMultiply(m)
	require.ErrorIs(t, err, factored.ErrUnsupported)

	_, err = m.Transpose().LeftMultiply(m)
	require.ErrorIs(t, err, factored.ErrUnsupported)
}

func TestUnsupportedOperations(t *testing.T) {
	m := newFixture(t, 9, 1, false, false).build(t)
	other := newFixture(t, 10, 1, false, false).build(t)

	_, err := m.RowAppend(other)
	require.ErrorIs(t, err, factored.ErrUnsupported)
	_, err = m.ColumnAppend(other)
	require.ErrorIs(t, err, factored.ErrUnsupported)
	_, err = m.MatrixAdd(other)
	require.ErrorIs(t, err, factored.ErrUnsupported)
	_, err = m.Slice(0, 1, 0, 1)
	require.ErrorIs(t, err, factored.ErrUnsupported)
	r, err := m.Invert()
	require.ErrorIs(t, err, factored.ErrUnsupported)
	assert.Nil(t, r, "never the receiver")
}

func TestBackendFailure_Propagates(t *testing.T) {
	f := newFixture(t, 12, 2, false, false)
	m, err := factored.Build(f.base, f.left, f.right, false, faultyRowSum{backend.NewDenseBackend()},
		factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = m.RowSum()
	require.ErrorIs(t, err, backend.ErrBackendIncompatible)
	assert.Contains(t, err.Error(), "rowSum")

	_, err = m.ElementWiseSum() // uses RowSum on the right factors
	require.ErrorIs(t, err, backend.ErrBackendIncompatible)

	// the transposed column sum reduces to the broken row sum
	_, err = m.Transpose().ColumnSum()
	require.ErrorIs(t, err, backend.ErrBackendIncompatible)

	// unaffected operations still work
	_, err = m.ColumnSum()
	require.NoError(t, err)
}

func TestBackendFailure_NamesEachOperationOnce(t *testing.T) {
	f := newFixture(t, 14, 1, false, false)
	m, err := factored.Build(f.base, f.left, f.right, false, faultyRowSum{backend.NewDenseBackend()},
		factored.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = m.RowSum()
	require.EqualError(t, err, "rowSum: backend: incompatible backend")

	_, err = m.ElementWiseSum()
	require.EqualError(t, err, "elementWiseSum: rowSum: backend: incompatible backend")

	_, err = m.Transpose().ColumnSum()
	require.EqualError(t, err, "columnSum: rowSum: backend: incompatible backend")
	require.ErrorIs(t, err, backend.ErrBackendIncompatible)

	// the strict dense policy rejects fractional powers of negative entries
	for _, op := range []string{backend.OpScalarExponent, "scalarPow"} {
		_, err = f.build(t).Invoke(op, 0.5)
		require.EqualError(t, err, "scalarExponent: backend: incompatible backend", op)
	}
}

// TestConcurrentReaders exercises one matrix from many goroutines; run with -race.
func TestConcurrentReaders(t *testing.T) {
	f := newFixture(t, 13, 3, false, false)
	m := f.build(t)
	want, err := matrix.RowSum(f.ref)
	require.NoError(t, err)

	const workers = 8
	results := make(chan backend.Value, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(flip bool) {
			mm := m
			if flip {
				mm = m.Transpose().Transpose()
			}
			v, err := mm.RowSum()
			if err != nil {
				errs <- err
				return
			}
			results <- v
		}(i%2 == 0)
	}
	for i := 0; i < workers; i++ {
		select {
		case err := <-errs:
			t.Fatal(err)
		case v := <-results:
			requireClose(t, want, v)
		}
	}
	assert.False(t, m.IsTransposed())
}
