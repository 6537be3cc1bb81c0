// SPDX-License-Identifier: MIT

// Package factored implements a matrix kept in normalized (factored) form and
// evaluated through rewrite rules instead of being materialized.
//
// A factored matrix denotes the column-wise block composition
//
//	M = [ S | K_0·R_0 | K_1·R_1 | ... | K_{r-1}·R_{r-1} ]
//
// where S is the base block (optional), each K_i is an n×k_i indicator matrix
// (one-hot rows) and each R_i is a k_i×w_i attribute matrix. M has n rows and
// cols(S)+Σw_i columns, and may carry a transpose flag meaning the value is Mᵀ.
// Every block lives in a numeric backend (see package backend); this package
// only decides which backend calls to make.
//
// Operations never mutate the receiver. Closed operations (Transpose and the
// scalar maps) return a new *Matrix that aliases every backend value they did
// not change; the others return backend values:
//
//   - RightMultiply(X) = M·X slices X into row bands and sums K_i·(R_i·X_i).
//   - LeftMultiply(X) = X·M appends [X·S | (X·K_i)·R_i ...] column-wise.
//   - CrossProduct() = MᵀM is assembled block by block, using
//     K_iᵀK_i = diag(colSum(K_i)) on the diagonal.
//   - RowSum, ColumnSum and ElementWiseSum fold through the factors.
//
// Row/column append, addition of two factored matrices, slicing and inversion
// are not expressible without materializing and fail with ErrUnsupported.
//
// Invoke exposes the same surface by operation name, so callers that only know
// names can treat a factored matrix and a raw backend value alike.
package factored
