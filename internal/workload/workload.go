// SPDX-License-Identifier: MIT

// Package workload loads YAML descriptions of factored matrices and runs
// named operations on them over the dense backend.
package workload

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/normat/backend"
	"github.com/katalvlaran/normat/factored"
	"github.com/katalvlaran/normat/matrix"
)

// ErrInvalidWorkload is returned for files that decode but describe no
// usable factorization.
var ErrInvalidWorkload = errors.New("workload: invalid workload")

// DefaultOps run when a workload lists none.
var DefaultOps = []string{
	backend.OpNumRows,
	backend.OpNumCols,
	backend.OpRowSum,
	backend.OpColumnSum,
	backend.OpElementWiseSum,
	backend.OpCrossProduct,
}

// Term is one K·R block; rows are listed top to bottom.
type Term struct {
	Left  [][]float64 `yaml:"left"`
	Right [][]float64 `yaml:"right"`
}

// Workload describes a factored matrix and the operations to run on it.
type Workload struct {
	Name       string      `yaml:"name"`
	Base       [][]float64 `yaml:"base,omitempty"`
	BaseAbsent bool        `yaml:"base_absent,omitempty"`
	Transposed bool        `yaml:"transposed,omitempty"`
	Terms      []Term      `yaml:"terms"`

	// Operand feeds rightMultiply and leftMultiply.
	Operand [][]float64 `yaml:"operand,omitempty"`
	// Scalar feeds scalarAdd, scalarMultiply and scalarExponent.
	Scalar *float64 `yaml:"scalar,omitempty"`

	Ops []string `yaml:"ops,omitempty"`
}

// Load reads and parses a workload file.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a workload, rejecting unknown fields.
func Parse(data []byte) (*Workload, error) {
	var w Workload
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	return &w, nil
}

func (w *Workload) validate() error {
	if len(w.Terms) == 0 && w.BaseAbsent {
		return fmt.Errorf("%w: base absent and no terms", ErrInvalidWorkload)
	}
	if !w.BaseAbsent && len(w.Base) == 0 {
		return fmt.Errorf("%w: base is required unless base_absent is set", ErrInvalidWorkload)
	}
	for i, t := range w.Terms {
		if len(t.Left) == 0 || len(t.Right) == 0 {
			return fmt.Errorf("%w: term %d needs left and right", ErrInvalidWorkload, i)
		}
	}

	return nil
}

// OpList returns the operations to run: w.Ops, or DefaultOps when empty.
func (w *Workload) OpList() []string {
	if len(w.Ops) == 0 {
		return append([]string(nil), DefaultOps...)
	}
	return append([]string(nil), w.Ops...)
}

// Build converts the workload into a factored matrix over a dense backend.
// The transposed flag is applied after construction.
func (w *Workload) Build(opts ...factored.Option) (*factored.Matrix, error) {
	var base backend.Value
	if !w.BaseAbsent {
		s, err := dense("base", w.Base)
		if err != nil {
			return nil, err
		}
		base = s
	}

	left := make([]backend.Value, len(w.Terms))
	right := make([]backend.Value, len(w.Terms))
	for i, t := range w.Terms {
		k, err := dense(fmt.Sprintf("terms[%d].left", i), t.Left)
		if err != nil {
			return nil, err
		}
		r, err := dense(fmt.Sprintf("terms[%d].right", i), t.Right)
		if err != nil {
			return nil, err
		}
		left[i], right[i] = k, r
	}

	m, err := factored.Build(base, left, right, w.BaseAbsent, backend.NewDenseBackend(), opts...)
	if err != nil {
		return nil, err
	}
	if w.Transposed {
		m = m.Transpose()
	}

	return m, nil
}

// Run executes one named operation on m, supplying the workload's operand or
// scalar where the operation takes one.
func (w *Workload) Run(m *factored.Matrix, op string) (any, error) {
	switch op {
	case backend.OpRightMultiply, backend.OpLeftMultiply:
		if len(w.Operand) == 0 {
			return nil, fmt.Errorf("%s: %w: operand is required", op, ErrInvalidWorkload)
		}
		x, err := dense("operand", w.Operand)
		if err != nil {
			return nil, err
		}
		return m.Invoke(op, x)

	case backend.OpScalarAdd, backend.OpScalarMultiply, backend.OpScalarExponent, "scalarPow":
		if w.Scalar == nil {
			return nil, fmt.Errorf("%s: %w: scalar is required", op, ErrInvalidWorkload)
		}
		return m.Invoke(op, *w.Scalar)

	default:
		return m.Invoke(op)
	}
}

// dense builds a matrix from YAML rows, naming the field on failure.
func dense(field string, rows [][]float64) (*matrix.Dense, error) {
	d, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", field, ErrInvalidWorkload, err)
	}
	return d, nil
}
