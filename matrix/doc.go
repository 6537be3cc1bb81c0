// Package matrix provides the dense linear-algebra kernels behind the
// reference numeric backend.
//
// The matrix package provides:
//
//   - Dense, a row-major Matrix with a flat backing slice and bounds-safe
//     accessors (At/Set never panic).
//   - Canonical kernels: Add, Mul, Transpose, Scale, CrossProduct (mᵀm) and
//     CrossProductOf (aᵀb).
//   - Constructors: NewDense, NewFromRows, NewZeros and NewIdentity.
//   - Block kernels: Slice (half-open windows), RowAppend, ColumnAppend and
//     Diagonal.
//   - Reductions: RowSum (n×1), ColumnSum (1×m) and ElementSum.
//   - Element-wise maps: Exp, Log, Sqrt, Pow, AddScalar under an explicit
//     NaN/Inf numeric policy (see options.go).
//
// Every kernel allocates a fresh result and never mutates its operands, which
// is what lets higher layers alias backend values freely.
package matrix
