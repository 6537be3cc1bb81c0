// SPDX-License-Identifier: MIT

package factored

import "github.com/katalvlaran/normat/backend"

// Materialize assembles the denoted matrix explicitly through the backend:
// [S | K_0·R_0 | ...], transposed when the flag is set.
//
// It exists for diagnostics and small inputs; it costs the full n×cols(M)
// matrix the rest of the package avoids.
func (m *Matrix) Materialize() (backend.Value, error) {
	m.trace(opMaterialize)

	var res, term backend.Value
	var err error
	if !m.baseAbsent {
		res = m.base
	}
	for i := range m.left {
		if term, err = m.be.RightMultiply(m.left[i], m.right[i]); err != nil {
			return nil, factoredErrorf(opMaterialize, err)
		}
		if res == nil {
			res = term
		} else if res, err = m.be.ColumnAppend(res, term); err != nil {
			return nil, factoredErrorf(opMaterialize, err)
		}
	}
	if m.transposed {
		if res, err = m.be.Transpose(res); err != nil {
			return nil, factoredErrorf(opMaterialize, err)
		}
	}

	return res, nil
}
