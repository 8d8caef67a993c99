// SPDX-License-Identifier: MIT
// Package linsolve_test contains test helpers
//
// Purpose:
//   • Build small deterministic dual/plain operands without boilerplate.
//   • Provide finite-difference references computed with plain gonum solves.

package linsolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/linsolve"
)

// dualMatrix BUILDS an r×c dual matrix from row-major values and one
// row-major derivative slice per tracked variable (none ⇒ n_z = 0).
func dualMatrix(t testing.TB, r, c int, values []float64, derivs ...[]float64) *autodiff.Matrix {
	t.Helper()
	m, err := autodiff.NewMatrix(r, c)
	require.NoError(t, err)
	require.Len(t, values, r*c)
	data := m.Data()
	for idx, v := range values {
		data[idx].Value = v
		if len(derivs) == 0 {
			continue
		}
		d := make([]float64, len(derivs))
		for k := range derivs {
			require.Len(t, derivs[k], r*c)
			d[k] = derivs[k][idx]
		}
		data[idx].Derivatives = d
	}

	return m
}

// plainSolve SOLVES a·x = b with a fresh LU, failing the test on error.
func plainSolve(t testing.TB, a, b mat.Matrix) *mat.Dense {
	t.Helper()
	x, err := linsolve.LinearSolve(a, b)
	require.NoError(t, err)
	xd, ok := x.(*mat.Dense)
	require.True(t, ok, "plain solve must return *mat.Dense, got %T", x)

	return xd
}

// perturb RETURNS base + eps·dir as a new dense matrix.
func perturb(base, dir mat.Matrix, eps float64) *mat.Dense {
	var step, out mat.Dense
	step.Scale(eps, dir)
	out.Add(base, &step)

	return &out
}

// centralDifference APPROXIMATES ∂x/∂z for x(z) = A(z)⁻¹·b(z) with A(z) = A + z·dA
// and b(z) = b + z·db around z = 0.
func centralDifference(t testing.TB, a, dA, b, db mat.Matrix, eps float64) *mat.Dense {
	t.Helper()
	xp := plainSolve(t, perturb(a, dA, eps), perturb(b, db, eps))
	xm := plainSolve(t, perturb(a, dA, -eps), perturb(b, db, -eps))
	var d mat.Dense
	d.Sub(xp, xm)
	d.Scale(1/(2*eps), &d)

	return &d
}

// asDual ASSERTS x is a dual matrix and returns it.
func asDual(t testing.TB, x linsolve.Matrix) *autodiff.Matrix {
	t.Helper()
	xd, ok := x.(*autodiff.Matrix)
	require.True(t, ok, "expected *autodiff.Matrix, got %T", x)

	return xd
}

// requireDerivativeClose COMPARES ∂x/∂z_i against want entrywise.
func requireDerivativeClose(t testing.TB, x *autodiff.Matrix, i int, want mat.Matrix, tol float64) {
	t.Helper()
	got, err := x.Derivative(i)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(got, want, tol),
		"∂x/∂z%d mismatch:\n got  %v\n want %v", i, mat.Formatted(got), mat.Formatted(want))
}
