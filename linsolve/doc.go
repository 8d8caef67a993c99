// Package linsolve solves A·x = b when the entries of A and b are plain
// numbers, symbolic expressions or dual numbers, and propagates derivatives
// without ever factoring a dual-typed matrix.
//
// Two operation families are exposed:
//
//   - GetSolver(A) builds a reusable factorization handle from the value part
//     of A (gonum LU, Cholesky or QR; symbolic LU for symbolic A).
//   - Solve(handle, A, b) / LinearSolve(A, b) solve the system. When A or b
//     is dual, x is dual and its derivatives come from the implicit function
//     theorem ∂x/∂zᵢ = A⁻¹(∂b/∂zᵢ − ∂A/∂zᵢ·x), one variable at a time,
//     reusing the same handle for all n_z + 1 solves.
//
// Scalar kinds and results:
//
//	A \ b      | numeric | symbolic | dual
//	-----------|---------|----------|------
//	numeric    | numeric |    NA    | dual
//	symbolic   |    NA   | symbolic |  NA
//	dual       |   dual  |    NA    | dual
//
// NA combinations fail with ErrScalarKindMismatch.
//
// The package is synchronous and keeps no global state. A Solver is
// immutable and may be shared by concurrent Solve calls.
//
// Example:
//
//	A := mat.NewDense(2, 2, []float64{1, 2, 2, 5})
//	s, _ := linsolve.GetSolver(A, linsolve.WithMethod(linsolve.MethodCholesky))
//	b, _ := autodiff.NewVector(autodiff.New(3, 1), autodiff.New(4, 1))
//	x, _ := linsolve.Solve(s, A, b) // x = [7, -2], ∂x/∂z = [3, -1]
package linsolve
