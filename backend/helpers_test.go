// SPDX-License-Identifier: MIT
package backend_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/katalvlaran/normat/backend"
	"github.com/katalvlaran/normat/matrix"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// mustRows builds a *Dense from a row literal or fails the test.
func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)
	return m
}

// rowsOf copies any backend value that is a matrix.Matrix into a literal.
func rowsOf(t *testing.T, v backend.Value) [][]float64 {
	t.Helper()
	m, ok := v.(matrix.Matrix)
	require.Truef(t, ok, "value %T is not a matrix", v)
	out, err := matrix.ToRows(m)
	require.NoError(t, err)
	return out
}

// captureLogger returns a debug-level logger writing JSON lines into buf.
func captureLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf).Level(zerolog.DebugLevel)
}

// invokerOnly exposes the dense backend only by name.
type invokerOnly struct{ inner *backend.Dense }

func (i invokerOnly) Invoke(op string, args ...any) (any, error) {
	return i.inner.Invoke(op, args...)
}

// scriptedInvoker answers every op with a canned result.
type scriptedInvoker map[string]any

func (s scriptedInvoker) Invoke(op string, _ ...any) (any, error) {
	if v, ok := s[op]; ok {
		return v, nil
	}
	return nil, errors.New("not scripted")
}

// reflectBackend has no interface at all; its methods use concrete types,
// narrower numeric kinds and both result shapes.
type reflectBackend struct{}

func (reflectBackend) NumRows(m *matrix.Dense) int64 { return int64(m.Rows()) }
func (reflectBackend) NumCols(m *matrix.Dense) uint8 { return uint8(m.Cols()) }

func (reflectBackend) RowSum(m *matrix.Dense) (matrix.Matrix, error) { return matrix.RowSum(m) }

// ElementwiseExp is found through the exported wire name.
func (reflectBackend) ElementwiseExp(m *matrix.Dense) (matrix.Matrix, error) { return matrix.Exp(m) }

func (reflectBackend) ElementWiseSum(m *matrix.Dense) float32 {
	s, _ := matrix.ElementSum(m)
	return float32(s)
}

func (reflectBackend) ScalarMultiply(m *matrix.Dense, s float32) (matrix.Matrix, error) {
	return matrix.Scale(m, float64(s))
}

func (reflectBackend) Slice(m *matrix.Dense, r0, r1, c0, c1 int32) (matrix.Matrix, error) {
	return matrix.Slice(m, int(r0), int(r1), int(c0), int(c1))
}

// Transpose reports nothing but an error, an unsupported result shape.
func (reflectBackend) Transpose(*matrix.Dense) error { return nil }

// faultyBackend is a typed backend whose selected ops misbehave.
type faultyBackend struct{ *backend.Dense }

var errFaulty = errors.New("faulty backend")

func (faultyBackend) RowSum(backend.Value) (backend.Value, error) { return nil, errFaulty }
func (faultyBackend) ColumnSum(backend.Value) (backend.Value, error) {
	panic("column sum exploded")
}
func (faultyBackend) Transpose(backend.Value) (backend.Value, error) {
	var d *matrix.Dense
	return d, nil // typed nil
}
func (faultyBackend) NumRows(backend.Value) (int, error) { return 1 << 40, nil }
