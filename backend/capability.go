// SPDX-License-Identifier: MIT

package backend

import "sort"

// Value is an opaque backend matrix. Only the backend that produced it knows
// its concrete type.
type Value = any

// Capability is the fixed set of operations a numeric backend provides.
// Implementations must not mutate their operands.
type Capability interface {
	NumRows(a Value) (int, error)
	NumCols(a Value) (int, error)
	Transpose(a Value) (Value, error)

	ScalarAdd(a Value, s float64) (Value, error)
	ScalarMultiply(a Value, s float64) (Value, error)
	ScalarExponent(a Value, p float64) (Value, error)
	Exp(a Value) (Value, error)
	Log(a Value) (Value, error)
	Sqrt(a Value) (Value, error)

	// Diagonal embeds a row or column vector as a square diagonal matrix.
	Diagonal(a Value) (Value, error)
	RowSum(a Value) (Value, error)
	ColumnSum(a Value) (Value, error)
	ElementWiseSum(a Value) (float64, error)

	CrossProduct(a Value) (Value, error)
	CrossProductOf(a, b Value) (Value, error)
	MatrixAdd(a, b Value) (Value, error)
	LeftMultiply(a, b Value) (Value, error)
	RightMultiply(a, b Value) (Value, error)
	RowAppend(a, b Value) (Value, error)
	ColumnAppend(a, b Value) (Value, error)
	Slice(a Value, r0, r1, c0, c1 int) (Value, error)
}

// Invoker is a backend reachable only by operation name.
// Args carry the operand values followed by scalar or index arguments in the
// order of the corresponding Capability method.
type Invoker interface {
	Invoke(op string, args ...any) (any, error)
}

// Operation wire names.
const (
	OpNumRows        = "numRows"
	OpNumCols        = "numCols"
	OpTranspose      = "transpose"
	OpScalarAdd      = "scalarAdd"
	OpScalarMultiply = "scalarMultiply"
	OpScalarExponent = "scalarExponent"
	OpExp            = "elementwiseExp"
	OpLog            = "elementwiseLog"
	OpSqrt           = "elementwiseSqrt"
	OpDiagonal       = "diagonal"
	OpRowSum         = "rowSum"
	OpColumnSum      = "columnSum"
	OpElementWiseSum = "elementWiseSum"
	OpCrossProduct   = "crossProduct"
	OpCrossProductOf = "crossProductOf"
	OpMatrixAdd      = "matrixAdd"
	OpLeftMultiply   = "leftMultiply"
	OpRightMultiply  = "rightMultiply"
	OpRowAppend      = "rowAppend"
	OpColumnAppend   = "columnAppend"
	OpSlice          = "slice"
)

// resultKind selects how a raw backend result is translated.
type resultKind int

const (
	kindObject resultKind = iota // non-nil backend Value
	kindInt                      // integer representable in 32 bits
	kindReal                     // float64
)

// argKind classifies the trailing non-operand arguments of an operation.
type argKind int

const (
	argValue argKind = iota
	argReal
	argInt
)

// opSpec describes one operation: its Go method name, argument layout and
// result kind.
type opSpec struct {
	name   string
	method string
	args   []argKind
	result resultKind
}

var (
	unary     = []argKind{argValue}
	binary    = []argKind{argValue, argValue}
	withReal  = []argKind{argValue, argReal}
	sliceArgs = []argKind{argValue, argInt, argInt, argInt, argInt}
)

var opTable = map[string]opSpec{
	OpNumRows:        {OpNumRows, "NumRows", unary, kindInt},
	OpNumCols:        {OpNumCols, "NumCols", unary, kindInt},
	OpTranspose:      {OpTranspose, "Transpose", unary, kindObject},
	OpScalarAdd:      {OpScalarAdd, "ScalarAdd", withReal, kindObject},
	OpScalarMultiply: {OpScalarMultiply, "ScalarMultiply", withReal, kindObject},
	OpScalarExponent: {OpScalarExponent, "ScalarExponent", withReal, kindObject},
	OpExp:            {OpExp, "Exp", unary, kindObject},
	OpLog:            {OpLog, "Log", unary, kindObject},
	OpSqrt:           {OpSqrt, "Sqrt", unary, kindObject},
	OpDiagonal:       {OpDiagonal, "Diagonal", unary, kindObject},
	OpRowSum:         {OpRowSum, "RowSum", unary, kindObject},
	OpColumnSum:      {OpColumnSum, "ColumnSum", unary, kindObject},
	OpElementWiseSum: {OpElementWiseSum, "ElementWiseSum", unary, kindReal},
	OpCrossProduct:   {OpCrossProduct, "CrossProduct", unary, kindObject},
	OpCrossProductOf: {OpCrossProductOf, "CrossProductOf", binary, kindObject},
	OpMatrixAdd:      {OpMatrixAdd, "MatrixAdd", binary, kindObject},
	OpLeftMultiply:   {OpLeftMultiply, "LeftMultiply", binary, kindObject},
	OpRightMultiply:  {OpRightMultiply, "RightMultiply", binary, kindObject},
	OpRowAppend:      {OpRowAppend, "RowAppend", binary, kindObject},
	OpColumnAppend:   {OpColumnAppend, "ColumnAppend", binary, kindObject},
	OpSlice:          {OpSlice, "Slice", sliceArgs, kindObject},
}

// Ops returns the sorted wire names of every backend operation.
func Ops() []string {
	names := make([]string, 0, len(opTable))
	for name := range opTable {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// lookup resolves a wire name.
func lookup(op string) (opSpec, bool) {
	spec, ok := opTable[op]
	return spec, ok
}
