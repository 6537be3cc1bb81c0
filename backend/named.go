// SPDX-License-Identifier: MIT

package backend

// namedValue pairs a raw backend value with the capability that owns it.
type namedValue struct {
	c Capability
	v Value
}

// Named returns an Invoker that runs operations on v by wire name, with v as
// the implicit first operand: Named(c, v).Invoke("rowSum") is c.RowSum(v).
// It gives raw values the same by-name surface as factored matrices.
func Named(c Capability, v Value) Invoker {
	return namedValue{c: c, v: v}
}

func (n namedValue) Invoke(op string, args ...any) (any, error) {
	return Call(n.c, op, append([]any{n.v}, args...)...)
}
