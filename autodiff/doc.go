// Package autodiff provides forward-mode dual numbers and dense matrices of
// them.
//
// A Scalar carries a value and the vector of its partial derivatives with
// respect to a fixed set of n_z independent variables. A Matrix of scalars
// can be split into its value matrix and its per-variable derivative matrices
// (gonum *mat.Dense), which is how package linsolve propagates derivatives
// through A·x = b without factoring a dual-typed matrix.
//
// Entries with an empty derivative vector track no variable; they mix freely
// with entries that track n_z variables. Two entries tracking a different,
// nonzero number of variables are inconsistent (ErrInconsistentDerivatives).
//
// Interop with gonum's single-direction dual numbers is offered through
// FromDual and Scalar.Dual.
package autodiff
