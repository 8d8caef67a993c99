// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep solver facades minimal by delegating shape/nil checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Square → SameRows).
//  - Each validator describes what it validates and what it assumes (e.g. no nil check).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Inputs: Shape interface value.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations. Typed-nil
// pointers stored in the interface are the caller's concern.
func ValidateNotNil(m Shape) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Implementation: Assumes m is not nil (caller must ensure).
// Errors: ErrNonSquare if not square.
// Complexity: O(1).
// AI-Hints: Use before factorization methods.
func ValidateSquare(m Shape) error {
	r, c := m.Dims()
	if r != c {
		return validatorErrorf(fmt.Sprintf("ValidateSquare(%dx%d)", r, c), ErrNonSquare)
	}

	return nil
}

// ValidateSameRows – Ensures a and b have the same number of rows.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameRows(a, b Shape) error {
	ra, _ := a.Dims()
	rb, _ := b.Dims()
	if ra != rb {
		return validatorErrorf(fmt.Sprintf("ValidateSameRows(%d,%d)", ra, rb), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSystem – Composite: NotNil(a) → NotNil(b) → Square(a) → SameRows(a,b).
// It checks that A·x = b is well-shaped.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSystem(a, b Shape) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSystem", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSystem", err)
	}
	if err := ValidateSquare(a); err != nil {
		return validatorErrorf("ValidateSystem", err)
	}
	if err := ValidateSameRows(a, b); err != nil {
		return validatorErrorf("ValidateSystem", err)
	}

	return nil
}
