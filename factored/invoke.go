// SPDX-License-Identifier: MIT

package factored

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/normat/backend"
)

// Invoke runs an operation by name, mirroring the backend wire names so that
// a caller holding only names can use a factored matrix where it would use a
// raw backend value (see backend.Named).
//
// Names: build, numRows, numCols, transpose, scalarAdd, scalarMultiply,
// scalarExponent (alias scalarPow), elementwiseExp, elementwiseLog,
// elementwiseSqrt, rightMultiply, leftMultiply, crossProduct, rowSum,
// columnSum, elementWiseSum, materialize, and the unsupported rowAppend,
// columnAppend, matrixAdd, slice, invertMatrix.
//
// build takes (base, left []Value, right []Value, baseAbsent bool[, handle]);
// without a handle the new matrix shares the receiver's backend.
//
// Errors:
//   - ErrUnsupported for unknown names and unsupported operations.
//   - ErrBadArguments for wrong argument counts or types.
//   - Whatever the typed method returns otherwise.
func (m *Matrix) Invoke(op string, args ...any) (any, error) {
	switch op {
	case opBuild:
		return m.invokeBuild(args)

	case opNumRows, opNumCols, opTranspose, opExp, opLog, opSqrt,
		opCrossProduct, opRowSum, opColumnSum, opElementWiseSum, opMaterialize, opInvert:
		if err := arity(op, args, 0); err != nil {
			return nil, err
		}
		return m.invokeNullary(op)

	case opScalarAdd, opScalarMultiply, opScalarExponent, opScalarPow:
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		s, err := realArg(op, args[0])
		if err != nil {
			return nil, err
		}
		switch op {
		case opScalarAdd:
			return derived(m.ScalarAdd(s))
		case opScalarMultiply:
			return derived(m.ScalarMultiply(s))
		default:
			return derived(m.ScalarPow(s))
		}

	case opRightMultiply, opLeftMultiply, backend.OpRowAppend, backend.OpColumnAppend, backend.OpMatrixAdd:
		if err := arity(op, args, 1); err != nil {
			return nil, err
		}
		switch op {
		case opRightMultiply:
			return m.RightMultiply(args[0])
		case opLeftMultiply:
			return m.LeftMultiply(args[0])
		default:
			return nil, m.unsupported(op)
		}

	case backend.OpSlice:
		if err := arity(op, args, 4); err != nil {
			return nil, err
		}
		return nil, m.unsupported(op)

	default:
		return nil, fmt.Errorf("%q: %w", op, ErrUnsupported)
	}
}

func (m *Matrix) invokeNullary(op string) (any, error) {
	switch op {
	case opNumRows:
		return m.NumRows(), nil
	case opNumCols:
		return m.NumCols(), nil
	case opTranspose:
		return m.Transpose(), nil
	case opExp:
		return derived(m.Exp())
	case opLog:
		return derived(m.Log())
	case opSqrt:
		return derived(m.Sqrt())
	case opCrossProduct:
		return m.CrossProduct()
	case opRowSum:
		return m.RowSum()
	case opColumnSum:
		return m.ColumnSum()
	case opElementWiseSum:
		return m.ElementWiseSum()
	case opMaterialize:
		return m.Materialize()
	default:
		return nil, m.unsupported(op)
	}
}

func (m *Matrix) invokeBuild(args []any) (any, error) {
	if len(args) != 4 && len(args) != 5 {
		return nil, fmt.Errorf("%s: want 4 or 5 arguments, got %d: %w", opBuild, len(args), ErrBadArguments)
	}
	left, okL := args[1].([]backend.Value)
	right, okR := args[2].([]backend.Value)
	absent, okA := args[3].(bool)
	if !okL || !okR || !okA {
		return nil, fmt.Errorf("%s: want (base, []Value, []Value, bool): %w", opBuild, ErrBadArguments)
	}
	var handle any = m.be
	if len(args) == 5 {
		handle = args[4]
	}

	return derived(Build(args[0], left, right, absent, handle, WithLogger(m.log)))
}

// Ops returns the sorted names Invoke accepts as supported operations.
func Ops() []string {
	names := []string{
		opBuild, opNumRows, opNumCols, opTranspose,
		opScalarAdd, opScalarMultiply, opScalarExponent, opScalarPow,
		opExp, opLog, opSqrt,
		opRightMultiply, opLeftMultiply, opCrossProduct,
		opRowSum, opColumnSum, opElementWiseSum, opMaterialize,
	}
	sort.Strings(names)

	return names
}

// derived drops the typed nil a failed closed operation returns.
func derived(r *Matrix, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

func arity(op string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: want %d arguments, got %d: %w", op, n, len(args), ErrBadArguments)
	}
	return nil
}

// realArg accepts the numeric types YAML and JSON decoders produce.
func realArg(op string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%s: scalar %v (%T) is not a number: %w", op, v, v, ErrBadArguments)
	}
}
