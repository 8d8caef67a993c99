// SPDX-License-Identifier: MIT
// Package linsolve: sentinel error set (unified, consistent).
// All facades return these sentinels wrapped with an operation tag; tests
// MUST check them via errors.Is. Errors from the numeric collaborator
// (gonum's mat.Condition) and from package symbolic are wrapped alongside
// ErrFactorization so errors.As keeps working on them.

package linsolve

import "errors"

// ERROR PRIORITY (documented, enforced in tests):
// nil -> scalar kind -> shape -> solver/operand compatibility -> derivative
// sizes -> numeric factorization.

var (
	// ErrNilMatrix indicates that a nil operand (or a typed-nil pointer) was passed.
	ErrNilMatrix = errors.New("linsolve: nil matrix")

	// ErrNilSolver indicates that Solve was called without a factorization handle.
	ErrNilSolver = errors.New("linsolve: nil solver")

	// ErrUnsupportedScalar indicates an operand whose scalar type is neither
	// float64 (gonum mat.Matrix), symbolic nor dual.
	ErrUnsupportedScalar = errors.New("linsolve: unsupported scalar type")

	// ErrShapeMismatch indicates that A is not square, is empty, or that b's
	// row count (or the solver size) differs from A's.
	ErrShapeMismatch = errors.New("linsolve: shape mismatch")

	// ErrScalarKindMismatch indicates an unsupported combination of scalar
	// kinds, e.g. numeric A with symbolic b, or a solver of the wrong kind.
	ErrScalarKindMismatch = errors.New("linsolve: scalar kind mismatch")

	// ErrDerivativeSizeMismatch indicates that A and b track a different,
	// nonzero number of independent variables, or that one operand is
	// internally inconsistent.
	ErrDerivativeSizeMismatch = errors.New("linsolve: derivative size mismatch")

	// ErrFactorization indicates that the numeric or symbolic factorization
	// failed (singular, ill-conditioned or not positive definite input).
	ErrFactorization = errors.New("linsolve: factorization failed")

	// ErrNotSymmetric indicates that MethodCholesky was requested for a
	// matrix that is not symmetric within the configured tolerance.
	ErrNotSymmetric = errors.New("linsolve: matrix is not symmetric within tolerance")

	// ErrNaNInf indicates a NaN or ±Inf value in A under the finite-only policy.
	ErrNaNInf = errors.New("linsolve: NaN or Inf encountered")

	// ErrUnknownMethod indicates an unrecognized factorization method name.
	ErrUnknownMethod = errors.New("linsolve: unknown factorization method")
)
