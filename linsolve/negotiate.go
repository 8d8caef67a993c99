// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/autodiff"
)

// path is the outcome of negotiating the derivative sizes of a dual A and b.
type path int

const (
	// pathValues: neither operand tracks a variable; solve the values only.
	pathValues path = iota
	// pathDualRHS: only b tracks variables; A's derivatives are all empty.
	pathDualRHS
	// pathImplicit: A tracks n_z variables (b tracks the same or none).
	pathImplicit
)

func (p path) String() string {
	switch p {
	case pathValues:
		return "values"
	case pathDualRHS:
		return "dual-rhs"
	}
	return "implicit"
}

// derivativeSize negotiates n_z for one operand, mapping inconsistency
// inside the operand to ErrDerivativeSizeMismatch.
func derivativeSize(name string, m *autodiff.Matrix) (int, error) {
	nz, err := m.DerivativeSize()
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w: %w", opLinearSolve, name, ErrDerivativeSizeMismatch, err)
	}

	return nz, nil
}

// negotiate decides the dual-matrix path from n_z(A) and n_z(b).
// A zero size is compatible with anything; two nonzero sizes must agree.
// Errors: ErrDerivativeSizeMismatch naming both sizes.
func negotiate(nzA, nzB int) (path, error) {
	switch {
	case nzA == 0 && nzB == 0:
		return pathValues, nil
	case nzA == 0:
		return pathDualRHS, nil
	case nzB != 0 && nzA != nzB:
		return pathImplicit, fmt.Errorf("%s: A tracks %d variables while b tracks %d variables: %w",
			opLinearSolve, nzA, nzB, ErrDerivativeSizeMismatch)
	}

	return pathImplicit, nil
}
