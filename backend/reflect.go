// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// methodTable maps wire names to bound methods discovered on a handle.
type methodTable map[string]reflect.Value

// exportedName turns a wire name into its exported Go spelling ("rowSum" → "RowSum").
func exportedName(op string) string {
	r, size := utf8.DecodeRuneInString(op)
	return string(unicode.ToUpper(r)) + op[size:]
}

// buildMethodTable probes handle for a method per operation. The Capability
// spelling is tried first, then the exported wire name.
func buildMethodTable(handle any) methodTable {
	rv := reflect.ValueOf(handle)
	table := make(methodTable)
	for name, spec := range opTable {
		for _, candidate := range []string{spec.method, exportedName(name)} {
			if m := rv.MethodByName(candidate); m.IsValid() {
				table[name] = m
				break
			}
		}
	}

	return table
}

// names lists the resolved operations, for diagnostics.
func (t methodTable) names() string {
	out := make([]string, 0, len(t))
	for _, name := range Ops() {
		if _, ok := t[name]; ok {
			out = append(out, name)
		}
	}

	return strings.Join(out, ",")
}

// call invokes the method bound to spec with args converted to the method's
// parameter types. Supported result shapes: (T), (T, error).
func (t methodTable) call(spec opSpec, args []any) (any, error) {
	m, ok := t[spec.name]
	if !ok {
		return nil, fmt.Errorf("%s: no method on handle: %w", spec.name, ErrUnknownOp)
	}
	mt := m.Type()
	if mt.IsVariadic() || mt.NumIn() != len(args) {
		return nil, fmt.Errorf("%s: method takes %d arguments, got %d: %w", spec.name, mt.NumIn(), len(args), ErrArity)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := convertArg(arg, mt.In(i))
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", spec.name, i, err)
		}
		in[i] = v
	}

	out := m.Call(in)
	switch {
	case len(out) == 1 && !mt.Out(0).Implements(errorType):
		return out[0].Interface(), nil
	case len(out) == 2 && mt.Out(1).Implements(errorType):
		if e := out[1].Interface(); e != nil {
			return nil, e.(error)
		}
		return out[0].Interface(), nil
	default:
		return nil, fmt.Errorf("%s: unsupported result shape %s: %w", spec.name, mt, ErrResultType)
	}
}

// convertArg adapts one argument to the parameter type want.
func convertArg(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("nil for %s: %w", want, ErrArgType)
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(want):
		return v, nil
	case isIntKind(want.Kind()):
		n, err := toInt32(arg)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%v: %w", err, ErrArgType)
		}
		return reflect.ValueOf(n).Convert(want), nil
	case isFloatKind(want.Kind()):
		f, err := toReal(arg)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%v: %w", err, ErrArgType)
		}
		return reflect.ValueOf(f).Convert(want), nil
	default:
		return reflect.Value{}, fmt.Errorf("%T for %s: %w", arg, want, ErrArgType)
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
