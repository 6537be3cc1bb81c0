// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/katalvlaran/normat/factored"
	"github.com/katalvlaran/normat/matrix"
)

// Result kinds.
const (
	KindMatrix   = "matrix"
	KindScalar   = "scalar"
	KindFactored = "factored"
)

// OpResult is the rendered outcome of one operation.
type OpResult struct {
	Op    string `json:"op"`
	Kind  string `json:"kind"`
	State string `json:"state,omitempty"` // factored results only
	Value any    `json:"value"`

	text string
}

// EvalResult is the payload of eval and materialize.
type EvalResult struct {
	Workload string     `json:"workload"`
	State    string     `json:"state"`
	Rank     int        `json:"rank"`
	Rows     int        `json:"rows"`
	Cols     int        `json:"cols"`
	Results  []OpResult `json:"results"`
}

func newEvalResult(name string, m *factored.Matrix) *EvalResult {
	return &EvalResult{
		Workload: name,
		State:    m.State().String(),
		Rank:     m.Rank(),
		Rows:     m.NumRows(),
		Cols:     m.NumCols(),
	}
}

func (r *EvalResult) renderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s: %s, rank %d, %dx%d\n", r.Workload, r.State, r.Rank, r.Rows, r.Cols); err != nil {
		return err
	}
	for _, res := range r.Results {
		if _, err := io.WriteString(w, res.text); err != nil {
			return err
		}
	}
	return nil
}

// renderResult converts whatever an operation returned into an OpResult.
// Factored results are materialized so they can be printed.
func renderResult(op string, v any) (OpResult, error) {
	switch x := v.(type) {
	case float64:
		return OpResult{Op: op, Kind: KindScalar, Value: x, text: fmt.Sprintf("%s: %g\n", op, x)}, nil
	case int:
		return OpResult{Op: op, Kind: KindScalar, Value: x, text: fmt.Sprintf("%s: %d\n", op, x)}, nil
	case matrix.Matrix:
		rows, err := matrix.ToRows(x)
		if err != nil {
			return OpResult{}, err
		}
		return OpResult{Op: op, Kind: KindMatrix, Value: rows, text: fmt.Sprintf("%s:\n%v", op, x)}, nil
	case *factored.Matrix:
		full, err := x.Materialize()
		if err != nil {
			return OpResult{}, err
		}
		inner, err := renderResult(op, full)
		if err != nil {
			return OpResult{}, err
		}
		state := x.State().String()
		return OpResult{
			Op:    op,
			Kind:  KindFactored,
			State: state,
			Value: inner.Value,
			text:  fmt.Sprintf("%s (%s):\n%v", op, state, full),
		}, nil
	default:
		return OpResult{}, fmt.Errorf("%s: cannot render %T", op, v)
	}
}
