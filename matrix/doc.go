// Package matrix offers the dense container and the shape validators shared
// by the scalar kinds of the solver.
//
// The matrix package provides:
//
//   - Dense[T], a row-major container with error-returning At/Set, used for
//     dual-number matrices (autodiff) and symbolic matrices (symbolic).
//   - Shape, the Dims()-only view that also matches gonum's mat.Matrix.
//   - Central validators (ValidateSquare, ValidateSystem, ...) returning
//     plain sentinels so facades can wrap them uniformly.
//
// Numeric factorizations are not implemented here; see package linsolve.
package matrix
