// SPDX-License-Identifier: MIT

// Package normat evaluates linear algebra over factored (normalized)
// matrices without materializing them.
//
// A factored matrix denotes the column-wise block composition
//
//	M = [S | K_0·R_0 | K_1·R_1 | ... | K_{r-1}·R_{r-1}]
//
// where S is an optional base block, every K_i is an n×k_i indicator matrix
// (exactly one 1 per row) and every R_i is a k_i×w_i attribute block. This is
// the shape a join produces when a fact table references r dimension tables:
// the dense M repeats each R_i row many times, the factored form stores it once.
//
// Layout:
//
//	matrix/             row-major Dense kernels: products, Gram, block slicing
//	                    and appends, reductions, element-wise maps
//	backend/            the fixed operation set a numeric backend provides, the
//	                    Dense reference backend, and the Adapter that binds any
//	                    typed, by-name or reflective backend once
//	factored/           the factored Matrix: Build, Transpose, scalar maps,
//	                    multiplication, Gram, reductions, named Invoke
//	internal/workload   YAML workload files
//	internal/cli        the normat command (cmd/normat)
//	internal/logging    zerolog setup shared by the command line
//
// Quick example:
//
//	S = [1 0]   K = [1]   R = [3 4]     M = [1 0 3 4]
//	    [0 1]       [1]                     [0 1 3 4]
//
//	m, _ := factored.Build(S, []backend.Value{K}, []backend.Value{R}, false,
//		backend.NewDenseBackend())
//	rs, _ := m.RowSum()      // [8; 8], computed as rowSum(S) + K·rowSum(R)
//	cs, _ := m.ColumnSum()   // [1 1 6 8]
//
// Operations that need the dense form (row or column append, addition of two
// factored matrices, slicing, inversion) fail with factored.ErrUnsupported
// rather than silently materializing M.
package normat
