// Package lvdiff solves linear systems A·x = b whose entries may be plain
// numbers, exact symbolic expressions or forward-mode dual numbers, and
// carries derivatives through the solve.
//
// 🚀 What is lvdiff?
//
//	A small library built around one rule: factor the value part of A once,
//	then reuse that factorization for x and for every ∂x/∂zᵢ:
//		• Scalar kinds: float64 (gonum), symbolic expressions, dual numbers
//		• Factorizations: LU, Cholesky, QR (gonum) and exact symbolic LU
//		• Derivatives: ∂x/∂zᵢ = A⁻¹(∂b/∂zᵢ − ∂A/∂zᵢ·x), one solve per variable
//		• A command that reads YAML/TOML systems and prints YAML solutions
//
// Under the hood, everything is organized under these subpackages:
//
//	linsolve/  — scalar-kind classifier, GetSolver, Solve and LinearSolve
//	autodiff/  — dual scalars and matrices of them (values, ∂/∂zᵢ splits)
//	symbolic/  — canonical rational/symbolic expressions and symbolic LU
//	matrix/    — generic row-major container and shape validators
//	problem/   — YAML/TOML system files and solution reports
//	cmd/lvdiff — command-line front end
//
// Quick example (b depends on one variable z, b = [3+z, 4+z]):
//
//	A := mat.NewDense(2, 2, []float64{1, 2, 2, 5})
//	b, _ := autodiff.NewVector(autodiff.New(3, 1), autodiff.New(4, 1))
//	x, _ := linsolve.LinearSolve(A, b) // x = [7, -2], ∂x/∂z = [3, -1]
//
//	go get github.com/katalvlaran/lvdiff
package lvdiff
