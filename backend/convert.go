// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"math"
	"reflect"
)

// IsNil reports whether v is nil or a typed nil (pointer, map, slice, ...).
// A Value wrapping a typed nil is still unusable as an operand.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// toObject accepts any non-nil value.
func toObject(v any) (Value, error) {
	if IsNil(v) {
		return nil, ErrNilResult
	}

	return v, nil
}

// toInt32 accepts integers and integral floats that fit in an int32.
func toInt32(v any) (int, error) {
	if v == nil {
		return 0, ErrNilResult
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("%d overflows int32: %w", n, ErrResultType)
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("%d overflows int32: %w", n, ErrResultType)
		}
		return int(n), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return 0, fmt.Errorf("%g is not an int32: %w", f, ErrResultType)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("%T is not an integer: %w", v, ErrResultType)
	}
}

// toReal accepts any numeric value.
func toReal(v any) (float64, error) {
	if v == nil {
		return 0, ErrNilResult
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return 0, fmt.Errorf("%T is not a number: %w", v, ErrResultType)
	}
}

// translate converts a raw result according to the operation's result kind.
func translate(spec opSpec, raw any) (any, error) {
	switch spec.result {
	case kindInt:
		return toInt32(raw)
	case kindReal:
		return toReal(raw)
	default:
		return toObject(raw)
	}
}

// coerceArgs checks arity and normalizes scalar and index arguments to
// float64 and int. Operand values pass through untouched.
func coerceArgs(spec opSpec, args []any) ([]any, error) {
	if len(args) != len(spec.args) {
		return nil, fmt.Errorf("%s: want %d arguments, got %d: %w", spec.name, len(spec.args), len(args), ErrArity)
	}
	out := make([]any, len(args))
	var err error
	for i, kind := range spec.args {
		switch kind {
		case argReal:
			if out[i], err = toReal(args[i]); err != nil {
				return nil, fmt.Errorf("%s: argument %d: %v: %w", spec.name, i, err, ErrArgType)
			}
		case argInt:
			if out[i], err = toInt32(args[i]); err != nil {
				return nil, fmt.Errorf("%s: argument %d: %v: %w", spec.name, i, err, ErrArgType)
			}
		default:
			if IsNil(args[i]) {
				return nil, fmt.Errorf("%s: argument %d is nil: %w", spec.name, i, ErrArgType)
			}
			out[i] = args[i]
		}
	}

	return out, nil
}
