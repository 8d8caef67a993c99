// SPDX-License-Identifier: MIT

// Package linsolve - factorization provider.
//
// Purpose:
//   - Build a reusable factorization handle (Solver) from the value part of A.
//   - Keep "factor once, solve many": every later Solve reuses the handle for
//     the value solve and for each of the n_z derivative solves.
//
// Notes:
//   - Numeric factorizations come from gonum (mat.LU, mat.Cholesky, mat.QR);
//     each copies A's values, so later changes to A are not observed.
//   - Symbolic A is factored with symbolic.LU.

package linsolve

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/matrix"
	"github.com/katalvlaran/lvdiff/symbolic"
)

// Operation name constants for unified error wrapping.
const (
	opGetSolver   = "GetSolver"
	opSolveTo     = "Solver.SolveTo"
	opSolveSym    = "Solver.SolveSymbolic"
	opLinearSolve = "LinearSolve"
)

// factorization is the numeric "solve right-hand-side" primitive.
type factorization interface {
	solveTo(dst *mat.Dense, b mat.Matrix) error
	cond() float64
}

type luFactorization struct{ lu mat.LU }

func (f *luFactorization) solveTo(dst *mat.Dense, b mat.Matrix) error {
	return f.lu.SolveTo(dst, false, b)
}
func (f *luFactorization) cond() float64 { return f.lu.Cond() }

type choleskyFactorization struct{ chol mat.Cholesky }

func (f *choleskyFactorization) solveTo(dst *mat.Dense, b mat.Matrix) error {
	return f.chol.SolveTo(dst, b)
}
func (f *choleskyFactorization) cond() float64 { return f.chol.Cond() }

type qrFactorization struct{ qr mat.QR }

func (f *qrFactorization) solveTo(dst *mat.Dense, b mat.Matrix) error {
	return f.qr.SolveTo(dst, false, b)
}
func (f *qrFactorization) cond() float64 { return f.qr.Cond() }

// Solver is an opaque, reusable factorization of the value part of a square
// matrix A. It is immutable after construction; concurrent solves against
// one Solver are safe because each solve allocates its own outputs.
type Solver struct {
	kind   Kind          // PlainNumeric or PlainSymbolic: kind of the factored values
	method Method        // numeric method (ignored for symbolic)
	n      int           // system size
	num    factorization // set when kind == PlainNumeric
	sym    *symbolic.LU  // set when kind == PlainSymbolic
	log    *zap.Logger
}

// Kind reports the kind of the factored values: PlainNumeric for numeric and
// dual A, PlainSymbolic for symbolic A.
func (s *Solver) Kind() Kind { return s.kind }

// Method reports the numeric factorization method.
func (s *Solver) Method() Method { return s.method }

// Size reports n for the factored n×n matrix.
func (s *Solver) Size() int { return s.n }

// accepts reports whether a system matrix of kind k can be solved with s.
func (s *Solver) accepts(k Kind) bool {
	if s.kind == PlainSymbolic {
		return k == PlainSymbolic
	}

	return k == PlainNumeric || k == Dual
}

// GetSolver builds a reusable factorization from the value part of A.
// MAIN DESCRIPTION:
//   - PlainNumeric A is factored directly; Dual A by its values only
//     (derivatives re-enter later as right-hand-side perturbations);
//     PlainSymbolic A by symbolic LU.
//
// Implementation:
//   - Stage 1: classify A; validate square and non-empty.
//   - Stage 2: extract values; enforce the finite-only policy.
//   - Stage 3: factor with the configured Method; reject singular or
//     ill-conditioned results (condition number above mat.ConditionTolerance).
//
// Inputs:
//   - a: the system matrix (see Matrix for supported types).
//   - opts: WithMethod, WithSymmetryTolerance, WithValidateNaNInf, WithLogger.
//
// Returns:
//   - *Solver: the handle; reflects A's values at the moment of the call.
//
// Errors:
//   - ErrNilMatrix, ErrUnsupportedScalar, ErrShapeMismatch, ErrNaNInf,
//     ErrNotSymmetric (Cholesky), ErrFactorization (wrapping mat.Condition
//     or symbolic.ErrSingular).
//
// Complexity:
//   - O(n³) for the factorization.
//
// AI-Hints:
//   - Build once and pass the handle to Solve for every new b or new
//     derivative of A; that reuse is the point of this type.
func GetSolver(a Matrix, opts ...Option) (*Solver, error) {
	o := gatherOptions(opts...)
	kind, err := Classify(a)
	if err != nil {
		return nil, fmt.Errorf("%s: A: %w", opGetSolver, err)
	}
	if err = validateSquare(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opGetSolver, err)
	}
	n, _ := a.Dims()

	s := &Solver{kind: PlainNumeric, method: o.method, n: n, log: o.logger}
	switch kind {
	case PlainSymbolic:
		s.kind = PlainSymbolic
		s.sym = &symbolic.LU{}
		if err = s.sym.Factorize(a.(*symbolic.Matrix)); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", opGetSolver, ErrFactorization, err)
		}
	case Dual:
		s.num, err = factorNumeric(a.(*autodiff.Matrix).Values(), o)
	default:
		s.num, err = factorNumeric(a.(mat.Matrix), o)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGetSolver, err)
	}
	s.log.Debug("factorized",
		zap.Stringer("kind", kind),
		zap.Stringer("method", o.method),
		zap.Int("n", n),
	)

	return s, nil
}

// factorNumeric factors the float64 matrix a with o.method.
func factorNumeric(a mat.Matrix, o Options) (factorization, error) {
	n, _ := a.Dims()
	if o.validateNaNInf {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, fmt.Errorf("A(%d,%d): %w", i, j, ErrNaNInf)
				}
			}
		}
	}

	var f factorization
	switch o.method {
	case MethodCholesky:
		sym, err := symmetricValues(a, o.symmetryTol)
		if err != nil {
			return nil, err
		}
		c := &choleskyFactorization{}
		if ok := c.chol.Factorize(sym); !ok {
			return nil, fmt.Errorf("%w: matrix is not positive definite", ErrFactorization)
		}
		f = c
	case MethodQR:
		q := &qrFactorization{}
		q.qr.Factorize(a)
		f = q
	default:
		l := &luFactorization{}
		l.lu.Factorize(a)
		f = l
	}
	if c := f.cond(); c > mat.ConditionTolerance || math.IsNaN(c) {
		return nil, fmt.Errorf("%w: %w", ErrFactorization, mat.Condition(c))
	}

	return f, nil
}

// symmetricValues copies a into a SymDense after checking |a_ij − a_ji|
// within tol (absolute or relative).
func symmetricValues(a mat.Matrix, tol float64) (*mat.SymDense, error) {
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	var i, j int
	var aij, aji float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			aij, aji = a.At(i, j), a.At(j, i)
			if !scalar.EqualWithinAbsOrRel(aij, aji, tol, tol) {
				return nil, fmt.Errorf("A(%d,%d)=%g, A(%d,%d)=%g: %w", i, j, aij, j, i, aji, ErrNotSymmetric)
			}
			sym.SetSym(i, j, aij)
		}
	}

	return sym, nil
}

// SolveTo is the numeric "solve right-hand-side" operation of the handle:
// it stores A⁻¹·b into dst. dst must be empty (zero value) or already n×m
// for an n×m b; b must have n rows.
// Errors: ErrScalarKindMismatch for a symbolic handle, ErrNilMatrix,
// ErrShapeMismatch, ErrFactorization (numeric collaborator failure).
// Complexity: O(n²·m).
func (s *Solver) SolveTo(dst *mat.Dense, b mat.Matrix) error {
	if s == nil {
		return fmt.Errorf("%s: %w", opSolveTo, ErrNilSolver)
	}
	if s.kind != PlainNumeric {
		return fmt.Errorf("%s: %w: handle factors %s values", opSolveTo, ErrScalarKindMismatch, s.kind)
	}
	if dst == nil || b == nil {
		return fmt.Errorf("%s: %w", opSolveTo, ErrNilMatrix)
	}
	if r, _ := b.Dims(); r != s.n {
		return fmt.Errorf("%s: %w: %w", opSolveTo, ErrShapeMismatch, matrix.ErrDimensionMismatch)
	}
	if err := s.num.solveTo(dst, b); err != nil {
		return fmt.Errorf("%s: %w: %w", opSolveTo, ErrFactorization, err)
	}

	return nil
}

// SolveSymbolic is the symbolic "solve right-hand-side" operation.
// Errors: ErrScalarKindMismatch for a numeric handle, ErrNilMatrix,
// ErrShapeMismatch.
func (s *Solver) SolveSymbolic(b *symbolic.Matrix) (*symbolic.Matrix, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: %w", opSolveSym, ErrNilSolver)
	}
	if s.kind != PlainSymbolic {
		return nil, fmt.Errorf("%s: %w: handle factors %s values", opSolveSym, ErrScalarKindMismatch, s.kind)
	}
	if b == nil {
		return nil, fmt.Errorf("%s: %w", opSolveSym, ErrNilMatrix)
	}
	if b.Rows() != s.n {
		return nil, fmt.Errorf("%s: %w: %w", opSolveSym, ErrShapeMismatch, matrix.ErrDimensionMismatch)
	}
	x, err := s.sym.Solve(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolveSym, err)
	}

	return x, nil
}

// validateSquare enforces a non-empty square A.
func validateSquare(a Matrix) error {
	if r, _ := a.Dims(); r == 0 {
		return fmt.Errorf("%w: %w", ErrShapeMismatch, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	return nil
}
