// SPDX-License-Identifier: MIT

package factored

import (
	"github.com/katalvlaran/normat/backend"
	"github.com/rs/zerolog"
)

// State is the dispatch tag derived from the two flags of a Matrix.
type State int

const (
	Plain State = iota
	BaseAbsent
	Transposed
	TransposedBaseAbsent
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case Plain:
		return "plain"
	case BaseAbsent:
		return "base-absent"
	case Transposed:
		return "transposed"
	case TransposedBaseAbsent:
		return "transposed-base-absent"
	default:
		return "unknown"
	}
}

// Matrix is an immutable factored matrix. The zero value is not usable; build
// one with Build.
type Matrix struct {
	base       backend.Value   // nil when baseAbsent
	left       []backend.Value // K_i, n×k_i
	right      []backend.Value // R_i, k_i×w_i
	transposed bool
	baseAbsent bool

	rows     int   // n
	baseCols int   // cols(S), 0 when absent
	widths   []int // w_i = cols(R_i)

	be  *backend.Adapter
	log zerolog.Logger
}

// Build validates a factorization and returns the Matrix it denotes.
//
// Implementation:
//   - Stage 1: bind handle (an existing *backend.Adapter is reused as is).
//   - Stage 2: check len(left) == len(right); base present unless baseAbsent;
//     at least one term when baseAbsent.
//   - Stage 3: query shapes: rows(K_i) == n and cols(K_i) == rows(R_i), where
//     n is rows(S) or rows(K_0).
//   - Stage 4: copy the factor slices (values are aliased, never copied).
//
// Errors:
//   - ErrMalformedFactorization for any structural violation.
//   - backend.ErrBackendIncompatible when binding or a shape query fails.
//
// Complexity:
//   - O(r) backend dimension queries; no arithmetic.
//
// AI-Hints:
//   - K_i must be an indicator matrix (one 1 per row). Build does not scan the
//     values; CrossProduct relies on K_iᵀK_i being diagonal.
func Build(base backend.Value, left, right []backend.Value, baseAbsent bool, handle any, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	be, err := backend.Bind(handle, o.backendOps...)
	if err != nil {
		return nil, factoredErrorf("build", err)
	}

	if len(left) != len(right) {
		return nil, malformed("%d left factors, %d right factors", len(left), len(right))
	}
	if baseAbsent && len(left) == 0 {
		return nil, malformed("base absent and no terms")
	}
	if !baseAbsent && backend.IsNil(base) {
		return nil, malformed("base missing")
	}

	m := &Matrix{
		left:       append([]backend.Value(nil), left...),
		right:      append([]backend.Value(nil), right...),
		baseAbsent: baseAbsent,
		widths:     make([]int, len(right)),
		be:         be,
		log:        o.logger,
	}

	if !baseAbsent {
		m.base = base
		if m.rows, err = be.NumRows(base); err != nil {
			return nil, factoredErrorf("build", err)
		}
		if m.baseCols, err = be.NumCols(base); err != nil {
			return nil, factoredErrorf("build", err)
		}
	}

	var kRows, kCols, rRows int
	for i := range m.left {
		if backend.IsNil(m.left[i]) || backend.IsNil(m.right[i]) {
			return nil, malformed("term %d has a nil factor", i)
		}
		if kRows, err = be.NumRows(m.left[i]); err != nil {
			return nil, factoredErrorf("build", err)
		}
		if kCols, err = be.NumCols(m.left[i]); err != nil {
			return nil, factoredErrorf("build", err)
		}
		if rRows, err = be.NumRows(m.right[i]); err != nil {
			return nil, factoredErrorf("build", err)
		}
		if m.widths[i], err = be.NumCols(m.right[i]); err != nil {
			return nil, factoredErrorf("build", err)
		}

		if baseAbsent && i == 0 {
			m.rows = kRows
		}
		if kRows != m.rows {
			return nil, malformed("term %d: left factor has %d rows, want %d", i, kRows, m.rows)
		}
		if kCols != rRows {
			return nil, malformed("term %d: left factor has %d columns, right factor %d rows", i, kCols, rRows)
		}
	}

	m.log.Debug().Int("rank", len(m.left)).Int("rows", m.rows).Int("cols", m.width()).
		Bool("base_absent", baseAbsent).Msg("factored matrix built")

	return m, nil
}

// width is the column count of the untransposed composition.
func (m *Matrix) width() int {
	w := m.baseCols
	for _, wi := range m.widths {
		w += wi
	}

	return w
}

// State returns the dispatch tag for the current flags.
func (m *Matrix) State() State {
	switch {
	case m.transposed && m.baseAbsent:
		return TransposedBaseAbsent
	case m.transposed:
		return Transposed
	case m.baseAbsent:
		return BaseAbsent
	default:
		return Plain
	}
}

// Rank returns the number of correction terms r.
func (m *Matrix) Rank() int { return len(m.left) }

// NumRows returns the row count of the denoted matrix.
func (m *Matrix) NumRows() int {
	if m.transposed {
		return m.width()
	}
	return m.rows
}

// NumCols returns the column count of the denoted matrix.
func (m *Matrix) NumCols() int {
	if m.transposed {
		return m.rows
	}
	return m.width()
}

// IsTransposed reports the transpose flag.
func (m *Matrix) IsTransposed() bool { return m.transposed }

// IsBaseAbsent reports whether the base block is absent.
func (m *Matrix) IsBaseAbsent() bool { return m.baseAbsent }

// Base returns the base block, or nil when absent.
func (m *Matrix) Base() backend.Value { return m.base }

// Left returns a copy of the left factor list.
func (m *Matrix) Left() []backend.Value { return append([]backend.Value(nil), m.left...) }

// Right returns a copy of the right factor list.
func (m *Matrix) Right() []backend.Value { return append([]backend.Value(nil), m.right...) }

// Backend returns the adapter shared by this matrix and everything derived from it.
func (m *Matrix) Backend() *backend.Adapter { return m.be }

// withTransposed returns a shallow copy with the transpose flag set to t.
// All slices and values are shared.
func (m *Matrix) withTransposed(t bool) *Matrix {
	cp := *m
	cp.transposed = t

	return &cp
}

// withBlocks returns a copy carrying new base and right factors; left
// factors, shapes and flags are shared.
func (m *Matrix) withBlocks(base backend.Value, right []backend.Value) *Matrix {
	cp := *m
	cp.base = base
	cp.right = right

	return &cp
}

// trace logs one operation at debug level.
func (m *Matrix) trace(op string) {
	m.log.Debug().Str("op", op).Int("rank", len(m.left)).Str("state", m.State().String()).Msg("factored op")
}
