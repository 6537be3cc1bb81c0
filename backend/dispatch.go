// SPDX-License-Identifier: MIT

package backend

import "fmt"

// callCapability routes a named operation to the typed Capability method.
// args must already be normalized by coerceArgs.
func callCapability(c Capability, spec opSpec, args []any) (any, error) {
	a := args[0]
	switch spec.name {
	case OpNumRows:
		return c.NumRows(a)
	case OpNumCols:
		return c.NumCols(a)
	case OpTranspose:
		return c.Transpose(a)
	case OpScalarAdd:
		return c.ScalarAdd(a, args[1].(float64))
	case OpScalarMultiply:
		return c.ScalarMultiply(a, args[1].(float64))
	case OpScalarExponent:
		return c.ScalarExponent(a, args[1].(float64))
	case OpExp:
		return c.Exp(a)
	case OpLog:
		return c.Log(a)
	case OpSqrt:
		return c.Sqrt(a)
	case OpDiagonal:
		return c.Diagonal(a)
	case OpRowSum:
		return c.RowSum(a)
	case OpColumnSum:
		return c.ColumnSum(a)
	case OpElementWiseSum:
		return c.ElementWiseSum(a)
	case OpCrossProduct:
		return c.CrossProduct(a)
	case OpCrossProductOf:
		return c.CrossProductOf(a, args[1])
	case OpMatrixAdd:
		return c.MatrixAdd(a, args[1])
	case OpLeftMultiply:
		return c.LeftMultiply(a, args[1])
	case OpRightMultiply:
		return c.RightMultiply(a, args[1])
	case OpRowAppend:
		return c.RowAppend(a, args[1])
	case OpColumnAppend:
		return c.ColumnAppend(a, args[1])
	case OpSlice:
		return c.Slice(a, args[1].(int), args[2].(int), args[3].(int), args[4].(int))
	default:
		return nil, fmt.Errorf("%s: %w", spec.name, ErrUnknownOp)
	}
}

// Call dispatches a named operation against a Capability without adapter
// translation. Dense and Named use it to implement Invoker.
func Call(c Capability, op string, args ...any) (any, error) {
	spec, ok := lookup(op)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownOp)
	}
	norm, err := coerceArgs(spec, args)
	if err != nil {
		return nil, err
	}

	return callCapability(c, spec, norm)
}
