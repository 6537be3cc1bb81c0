// SPDX-License-Identifier: MIT

// Package backend defines the numeric backend contract used by the factored
// engine and the adapter that binds an arbitrary backend handle to it.
//
// A backend owns the concrete matrix representation. The engine never looks
// inside a Value; it only asks the backend to compute with it. The contract is
// the Capability interface, whose operations also have stable wire names
// (OpRowSum = "rowSum", ...) for name-based dispatch.
//
// Conventions shared by every backend:
//
//   - RightMultiply(a, b) = a·b and LeftMultiply(a, b) = b·a.
//   - CrossProduct(a) = aᵀ·a and CrossProductOf(a, b) = aᵀ·b.
//   - RowSum yields an n×1 column vector, ColumnSum a 1×m row vector.
//   - Slice(a, r0, r1, c0, c1) is the half-open window [r0,r1)×[c0,c1).
//
// Bind resolves a handle once: a Capability is called directly, an Invoker is
// called by operation name, and any other value is probed by reflection for
// exported methods named after the operations. Every failure in a bound call
// surfaces as ErrBackendIncompatible; the concrete cause goes to the logger.
//
// Dense is the reference backend over matrix.Matrix values.
package backend
