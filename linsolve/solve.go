// SPDX-License-Identifier: MIT

// Package linsolve - differentiable solver.
//
// Purpose:
//   - Solve A·x = b for any supported combination of scalar kinds and return
//     x in the widest kind among A and b.
//   - Propagate derivatives with the implicit function theorem
//     ∂x/∂zᵢ = A⁻¹(∂b/∂zᵢ − ∂A/∂zᵢ·x), solving one variable at a time
//     against the single factorization held by the Solver.
//
// Determinism:
//   - Variables are processed in index order 0..n_z-1; each derivative
//     solve writes slot i of every result entry.

package linsolve

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/matrix"
	"github.com/katalvlaran/lvdiff/symbolic"
)

// Solve computes x with A·x = b, reusing the factorization handle s.
// MAIN DESCRIPTION:
//   - Classify A and b, validate shapes, pick exactly one strategy from the
//     (kind(A), kind(b)) table and run it.
//
// Implementation:
//   - plain:       x = s.solve(b); A is not read (s already encodes it).
//   - dual-rhs:    x_val = s.solve(value(b)); dx_i = s.solve(∂b/∂zᵢ).
//   - dual-matrix: x_val = s.solve(value(b)); dx_i = s.solve(∂b/∂zᵢ − ∂A/∂zᵢ·x_val),
//     degrading to the value solve or to dual-rhs when A tracks nothing.
//
// Inputs:
//   - s: handle built by GetSolver from A (or from A's values).
//   - a: the system matrix; only its derivatives are read.
//   - b: right-hand side with A's row count and any number of columns.
//
// Returns:
//   - Matrix: *mat.Dense (numeric), *symbolic.Matrix (symbolic) or
//     *autodiff.Matrix (when A or b is dual). Always freshly allocated.
//
// Errors:
//   - ErrNilSolver, ErrNilMatrix, ErrUnsupportedScalar, ErrShapeMismatch,
//     ErrScalarKindMismatch, ErrDerivativeSizeMismatch, ErrFactorization.
//
// Complexity:
//   - O(n²·m) for the value solve plus O(n_z·n²·m) for the derivative
//     solves of an n×m right-hand side; the O(n³) factorization is not redone.
func Solve(s *Solver, a, b Matrix) (Matrix, error) {
	if s == nil {
		return nil, fmt.Errorf("%s: %w", opLinearSolve, ErrNilSolver)
	}
	ka, kb, err := classifySystem(a, b)
	if err != nil {
		return nil, err
	}
	if r, _ := a.Dims(); r != s.n {
		return nil, fmt.Errorf("%s: solver size %d, A has %d rows: %w: %w",
			opLinearSolve, s.n, r, ErrShapeMismatch, matrix.ErrDimensionMismatch)
	}
	st := selectStrategy(ka, kb)
	if st == strategyUnsupported {
		return nil, fmt.Errorf("%s: %w: A is %s, b is %s", opLinearSolve, ErrScalarKindMismatch, ka, kb)
	}
	if !s.accepts(ka) {
		return nil, fmt.Errorf("%s: %w: solver factors %s values, A is %s",
			opLinearSolve, ErrScalarKindMismatch, s.kind, ka)
	}
	s.log.Debug("solve",
		zap.Stringer("a", ka),
		zap.Stringer("b", kb),
		zap.Stringer("strategy", st),
		zap.Int("n", s.n),
	)

	switch st {
	case strategyDualRHS:
		bd := b.(*autodiff.Matrix)
		nz, err := derivativeSize("b", bd)
		if err != nil {
			return nil, err
		}
		return s.solveDualRHS(bd, nz)
	case strategyDualMatrix:
		return s.solveDualMatrix(a.(*autodiff.Matrix), b)
	}

	return s.solvePlain(b)
}

// LinearSolve is Solve without an external handle: it builds one with
// GetSolver(a, opts...) and solves once.
// Errors: as GetSolver and Solve; shape and kind errors are reported before
// any factorization work.
func LinearSolve(a, b Matrix, opts ...Option) (Matrix, error) {
	ka, kb, err := classifySystem(a, b)
	if err != nil {
		return nil, err
	}
	if selectStrategy(ka, kb) == strategyUnsupported {
		return nil, fmt.Errorf("%s: %w: A is %s, b is %s", opLinearSolve, ErrScalarKindMismatch, ka, kb)
	}
	s, err := GetSolver(a, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLinearSolve, err)
	}

	return Solve(s, a, b)
}

// classifySystem classifies both operands and validates A·x = b shapes.
func classifySystem(a, b Matrix) (Kind, Kind, error) {
	ka, err := Classify(a)
	if err != nil {
		return KindUnknown, KindUnknown, fmt.Errorf("%s: A: %w", opLinearSolve, err)
	}
	kb, err := Classify(b)
	if err != nil {
		return KindUnknown, KindUnknown, fmt.Errorf("%s: b: %w", opLinearSolve, err)
	}
	if r, _ := a.Dims(); r == 0 {
		return KindUnknown, KindUnknown, fmt.Errorf("%s: %w: %w",
			opLinearSolve, ErrShapeMismatch, matrix.ErrInvalidDimensions)
	}
	if err = matrix.ValidateSystem(a, b); err != nil {
		return KindUnknown, KindUnknown, fmt.Errorf("%s: %w: %w", opLinearSolve, ErrShapeMismatch, err)
	}

	return ka, kb, nil
}

// solvePlain is the plain strategy: the handle's own solve, nothing else.
func (s *Solver) solvePlain(b Matrix) (Matrix, error) {
	if s.kind == PlainSymbolic {
		return s.SolveSymbolic(b.(*symbolic.Matrix))
	}
	x := &mat.Dense{}
	if err := s.SolveTo(x, b.(mat.Matrix)); err != nil {
		return nil, err
	}

	return x, nil
}

// solveValues solves against a plain right-hand side into a fresh matrix.
func (s *Solver) solveValues(b mat.Matrix) (*mat.Dense, error) {
	x := &mat.Dense{}
	if err := s.SolveTo(x, b); err != nil {
		return nil, err
	}

	return x, nil
}

// solveDualRHS is the dual-rhs strategy for a b tracking nz variables:
// n_z + 1 solves against the one factorization.
func (s *Solver) solveDualRHS(b *autodiff.Matrix, nz int) (*autodiff.Matrix, error) {
	xVal, err := s.solveValues(b.Values())
	if err != nil {
		return nil, err
	}
	x := dualFromValues(xVal, nz)
	if nz == 0 {
		return x, nil
	}

	r, c := b.Dims()
	db := mat.NewDense(r, c, nil) // ∂b/∂zᵢ
	dx := mat.NewDense(r, c, nil) // ∂x/∂zᵢ
	for i := 0; i < nz; i++ {
		if err = b.DerivativeTo(db, i); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", opLinearSolve, ErrDerivativeSizeMismatch, err)
		}
		if err = s.SolveTo(dx, db); err != nil {
			return nil, err
		}
		scatterDerivative(x, dx, i)
	}

	return x, nil
}

// solveDualMatrix is the dual-matrix strategy (A dual, b numeric or dual).
func (s *Solver) solveDualMatrix(a *autodiff.Matrix, b Matrix) (*autodiff.Matrix, error) {
	nzA, err := derivativeSize("A", a)
	if err != nil {
		return nil, err
	}
	bd, bIsDual := b.(*autodiff.Matrix)
	nzB := 0
	if bIsDual {
		if nzB, err = derivativeSize("b", bd); err != nil {
			return nil, err
		}
	}
	path, err := negotiate(nzA, nzB)
	if err != nil {
		return nil, err
	}
	s.log.Debug("derivative sizes",
		zap.Int("nz_a", nzA),
		zap.Int("nz_b", nzB),
		zap.Stringer("path", path),
	)

	var bVal mat.Matrix
	if bIsDual {
		bVal = bd.Values()
	} else {
		bVal = b.(mat.Matrix)
	}

	switch path {
	case pathValues:
		xVal, err := s.solveValues(bVal)
		if err != nil {
			return nil, err
		}
		return dualFromValues(xVal, 0), nil
	case pathDualRHS:
		return s.solveDualRHS(bd, nzB)
	}

	// pathImplicit: A·∂x/∂zᵢ + ∂A/∂zᵢ·x = ∂b/∂zᵢ.
	xVal, err := s.solveValues(bVal)
	if err != nil {
		return nil, err
	}
	x := dualFromValues(xVal, nzA)

	n, m := xVal.Dims()
	dA := mat.NewDense(n, n, nil)  // ∂A/∂zᵢ
	rhs := mat.NewDense(n, m, nil) // ∂b/∂zᵢ − ∂A/∂zᵢ·x
	dAx := mat.NewDense(n, m, nil) // ∂A/∂zᵢ·x
	dx := mat.NewDense(n, m, nil)  // ∂x/∂zᵢ
	for i := 0; i < nzA; i++ {
		if err = a.DerivativeTo(dA, i); err != nil {
			return nil, fmt.Errorf("%s: A: %w: %w", opLinearSolve, ErrDerivativeSizeMismatch, err)
		}
		if nzB != 0 {
			if err = bd.DerivativeTo(rhs, i); err != nil {
				return nil, fmt.Errorf("%s: b: %w: %w", opLinearSolve, ErrDerivativeSizeMismatch, err)
			}
		} else {
			rhs.Zero()
		}
		dAx.Mul(dA, xVal)
		rhs.Sub(rhs, dAx)
		if err = s.SolveTo(dx, rhs); err != nil {
			return nil, err
		}
		scatterDerivative(x, dx, i)
	}

	return x, nil
}

// dualFromValues wraps x_val into a dual matrix whose entries carry a zeroed
// derivative vector of length nz (empty when nz == 0).
func dualFromValues(xVal *mat.Dense, nz int) *autodiff.Matrix {
	r, c := xVal.Dims()
	x, err := autodiff.NewMatrix(r, c)
	if err != nil {
		// r, c come from a successful solve and are positive.
		panic(err)
	}
	data := x.Data()
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			data[i*c+j].Value = xVal.At(i, j)
			if nz > 0 {
				data[i*c+j].Derivatives = make([]float64, nz)
			}
		}
	}

	return x
}

// scatterDerivative writes dx into derivative slot i of every entry of x.
func scatterDerivative(x *autodiff.Matrix, dx *mat.Dense, i int) {
	_, c := x.Dims()
	for idx, s := range x.Data() {
		s.Derivatives[i] = dx.At(idx/c, idx%c)
	}
}
