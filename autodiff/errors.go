// SPDX-License-Identifier: MIT
// Package autodiff: sentinel error set.
// Every message is prefixed with "autodiff: ..."; callers match with errors.Is.

package autodiff

import "errors"

var (
	// ErrInconsistentDerivatives is returned when two entries of one matrix
	// track a different, nonzero number of independent variables.
	ErrInconsistentDerivatives = errors.New("autodiff: inconsistent derivative sizes")

	// ErrNoDerivatives is returned when a gradient is requested from a
	// matrix whose entries track no variable at all.
	ErrNoDerivatives = errors.New("autodiff: matrix tracks no derivatives")

	// ErrDerivativeIndex is returned when a partial derivative index is
	// outside [0, n_z).
	ErrDerivativeIndex = errors.New("autodiff: derivative index out of range")
)

// panicDerivativeSize is raised by scalar arithmetic when both operands
// carry derivative vectors of different nonzero lengths (programmer error).
const panicDerivativeSize = "autodiff: operands track a different number of variables"
