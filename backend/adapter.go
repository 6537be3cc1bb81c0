// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Mode reports how an Adapter reaches its backend.
type Mode string

const (
	ModeTyped   Mode = "typed"   // handle implements Capability
	ModeInvoker Mode = "invoker" // handle implements Invoker
	ModeReflect Mode = "reflect" // methods discovered by reflection
)

// Adapter binds an opaque backend handle to Capability.
//
// Implementation:
//   - Stage 1 (Bind): resolve the dispatch mode once.
//   - Stage 2 (every call): normalize arguments, dispatch, recover panics,
//     translate the result by kind (object, int32, float64).
//
// Errors:
//   - Every failure is ErrBackendIncompatible wrapped with the operation name.
//     The cause is logged at warn level with fields op and cause.
//
// AI-Hints:
//   - An *Adapter is itself a Capability; rebinding it returns it unchanged,
//     so derived factored matrices share one adapter.
type Adapter struct {
	handle  any
	mode    Mode
	typed   Capability
	invoker Invoker
	methods methodTable
	log     zerolog.Logger
}

var _ Capability = (*Adapter)(nil)

// Bind resolves handle into an Adapter.
//
// Errors:
//   - ErrBackendIncompatible when handle is nil or exposes no operation.
func Bind(handle any, opts ...Option) (*Adapter, error) {
	if a, ok := handle.(*Adapter); ok && a != nil {
		return a, nil
	}
	o := gatherOptions(opts...)
	a := &Adapter{handle: handle, log: o.logger}

	if IsNil(handle) {
		return nil, a.fail("bind", ErrNilResult)
	}
	switch h := handle.(type) {
	case Capability:
		a.mode, a.typed = ModeTyped, h
	case Invoker:
		a.mode, a.invoker = ModeInvoker, h
	default:
		a.methods = buildMethodTable(handle)
		if len(a.methods) == 0 {
			return nil, a.fail("bind", fmt.Errorf("%T exposes no backend methods: %w", handle, ErrUnknownOp))
		}
		a.mode = ModeReflect
	}
	a.log.Debug().Str("mode", string(a.mode)).Str("handle", fmt.Sprintf("%T", handle)).
		Str("methods", a.methods.names()).Msg("backend bound")

	return a, nil
}

// Handle returns the bound backend handle.
func (a *Adapter) Handle() any { return a.handle }

// Mode returns the dispatch mode chosen at bind time.
func (a *Adapter) Mode() Mode { return a.mode }

// fail logs cause and returns the uniform incompatibility error.
func (a *Adapter) fail(op string, cause error) error {
	a.log.Warn().Str("op", op).AnErr("cause", cause).Msg("backend call failed")
	return incompatible(op)
}

// Call executes a named operation and translates its result by kind.
// It is the single path every typed Adapter method goes through.
func (a *Adapter) Call(op string, args ...any) (res any, err error) {
	spec, ok := lookup(op)
	if !ok {
		return nil, a.fail(op, ErrUnknownOp)
	}
	norm, err := coerceArgs(spec, args)
	if err != nil {
		return nil, a.fail(op, err)
	}

	raw, err := a.dispatch(spec, norm)
	if err != nil {
		return nil, a.fail(op, err)
	}
	out, err := translate(spec, raw)
	if err != nil {
		return nil, a.fail(op, err)
	}

	return out, nil
}

// dispatch performs the raw call, converting panics to errors.
func (a *Adapter) dispatch(spec opSpec, args []any) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrBackendPanic, e)
				return
			}
			err = fmt.Errorf("%w: %v", ErrBackendPanic, r)
		}
	}()

	switch a.mode {
	case ModeTyped:
		return callCapability(a.typed, spec, args)
	case ModeInvoker:
		return a.invoker.Invoke(spec.name, args...)
	case ModeReflect:
		return a.methods.call(spec, args)
	default:
		return nil, errors.New("adapter not bound")
	}
}

func (a *Adapter) object(op string, args ...any) (Value, error) {
	return a.Call(op, args...)
}

func (a *Adapter) integer(op string, args ...any) (int, error) {
	v, err := a.Call(op, args...)
	if err != nil {
		return 0, err
	}

	return v.(int), nil
}

func (a *Adapter) real(op string, args ...any) (float64, error) {
	v, err := a.Call(op, args...)
	if err != nil {
		return 0, err
	}

	return v.(float64), nil
}

// NumRows returns the row count of v.
func (a *Adapter) NumRows(v Value) (int, error) { return a.integer(OpNumRows, v) }

// NumCols returns the column count of v.
func (a *Adapter) NumCols(v Value) (int, error) { return a.integer(OpNumCols, v) }

// Transpose returns vᵀ.
func (a *Adapter) Transpose(v Value) (Value, error) { return a.object(OpTranspose, v) }

// ScalarAdd returns v + s element-wise.
func (a *Adapter) ScalarAdd(v Value, s float64) (Value, error) {
	return a.object(OpScalarAdd, v, s)
}

// ScalarMultiply returns s·v.
func (a *Adapter) ScalarMultiply(v Value, s float64) (Value, error) {
	return a.object(OpScalarMultiply, v, s)
}

// ScalarExponent returns v^p element-wise.
func (a *Adapter) ScalarExponent(v Value, p float64) (Value, error) {
	return a.object(OpScalarExponent, v, p)
}

func (a *Adapter) Exp(v Value) (Value, error)       { return a.object(OpExp, v) }
func (a *Adapter) Log(v Value) (Value, error)       { return a.object(OpLog, v) }
func (a *Adapter) Sqrt(v Value) (Value, error)      { return a.object(OpSqrt, v) }
func (a *Adapter) Diagonal(v Value) (Value, error)  { return a.object(OpDiagonal, v) }
func (a *Adapter) RowSum(v Value) (Value, error)    { return a.object(OpRowSum, v) }
func (a *Adapter) ColumnSum(v Value) (Value, error) { return a.object(OpColumnSum, v) }

// ElementWiseSum returns the sum of all entries of v.
func (a *Adapter) ElementWiseSum(v Value) (float64, error) { return a.real(OpElementWiseSum, v) }

func (a *Adapter) CrossProduct(v Value) (Value, error) { return a.object(OpCrossProduct, v) }

// CrossProductOf returns xᵀ·y.
func (a *Adapter) CrossProductOf(x, y Value) (Value, error) {
	return a.object(OpCrossProductOf, x, y)
}

func (a *Adapter) MatrixAdd(x, y Value) (Value, error) { return a.object(OpMatrixAdd, x, y) }

// LeftMultiply returns y·x.
func (a *Adapter) LeftMultiply(x, y Value) (Value, error) { return a.object(OpLeftMultiply, x, y) }

// RightMultiply returns x·y.
func (a *Adapter) RightMultiply(x, y Value) (Value, error) {
	return a.object(OpRightMultiply, x, y)
}

func (a *Adapter) RowAppend(x, y Value) (Value, error) { return a.object(OpRowAppend, x, y) }

func (a *Adapter) ColumnAppend(x, y Value) (Value, error) {
	return a.object(OpColumnAppend, x, y)
}

// Slice returns the half-open window [r0,r1)×[c0,c1) of v.
func (a *Adapter) Slice(v Value, r0, r1, c0, c1 int) (Value, error) {
	return a.object(OpSlice, v, r0, r1, c0, c1)
}
