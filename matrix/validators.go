// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/window checks here.
//  - Return tagged sentinels so call sites can wrap uniformly and callers can errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on the success path.
//
// AI-Hints:
//  - Use ValidateSlice before any window extraction to fail fast on inverted bounds.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
//
// Errors: Combines ErrNilMatrix and ErrDimensionMismatch.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateMulCompatible – Composite: NotNil(a) → NotNil(b) → a.Cols == b.Rows.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSlice checks a half-open window [r0,r1)×[c0,c1) against m.
//
// Contract:
//   - 0 <= r0 < r1 <= Rows and 0 <= c0 < c1 <= Cols (empty windows are rejected,
//     since Dense has no 0-extent shape).
//
// Errors: ErrNilMatrix, ErrBadShape.
// Complexity: O(1).
func ValidateSlice(m Matrix, r0, r1, c0, c1 int) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSlice", err)
	}
	if r0 < 0 || r1 > m.Rows() || r0 >= r1 {
		return fmt.Errorf("ValidateSlice: rows [%d,%d) of %d: %w", r0, r1, m.Rows(), ErrBadShape)
	}
	if c0 < 0 || c1 > m.Cols() || c0 >= c1 {
		return fmt.Errorf("ValidateSlice: cols [%d,%d) of %d: %w", c0, c1, m.Cols(), ErrBadShape)
	}

	return nil
}

// ValidateVector ensures m is a row (1×n) or column (n×1) vector and returns its length.
//
// Errors: ErrNilMatrix, ErrNotVector.
// Complexity: O(1).
func ValidateVector(m Matrix) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, validatorErrorf("ValidateVector", err)
	}
	switch {
	case m.Cols() == 1:
		return m.Rows(), nil
	case m.Rows() == 1:
		return m.Cols(), nil
	default:
		return 0, validatorErrorf("ValidateVector", ErrNotVector)
	}
}
