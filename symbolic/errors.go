package symbolic

import "errors"

var (
	// ErrUnboundSymbol is returned by Evaluate when a symbol has no value in the Env.
	ErrUnboundSymbol = errors.New("symbolic: unbound symbol")

	// ErrSingular is returned by LU.Factorize when no structurally nonzero
	// pivot exists in a column.
	ErrSingular = errors.New("symbolic: singular matrix")

	// ErrNotFactorized is returned by LU.Solve before a successful Factorize.
	ErrNotFactorized = errors.New("symbolic: factorization not computed")
)
