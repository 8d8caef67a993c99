package symbolic

import (
	"fmt"

	"github.com/katalvlaran/lvdiff/matrix"
)

// Operation name constants for error wrapping.
const (
	opFactorize = "LU.Factorize"
	opSolve     = "LU.Solve"
)

// LU is a symbolic PA = LU factorization with structural pivoting: in each
// column the first row whose candidate pivot is not the constant 0 is chosen.
// L is unit lower triangular and shares storage with U.
//
// An LU is immutable after Factorize and may be reused for any number of
// right-hand sides.
type LU struct {
	n    int    // system size
	lu   []Expr // row-major n×n; strict lower part holds L, upper part holds U
	perm []int  // perm[i] = original row placed at position i
}

// Size returns the dimension of the factored matrix (0 before Factorize).
func (f *LU) Size() int { return f.n }

// Factorize computes the factorization of the square matrix a.
// Implementation:
//   - Stage 1: copy a into the working buffer; perm = identity.
//   - Stage 2: for each column k, pick the first structurally nonzero pivot
//     at or below the diagonal and swap it into row k.
//   - Stage 3: eliminate below the pivot, storing multipliers in place.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrSingular.
//
// Complexity:
//   - O(n³) expression operations.
func (f *LU) Factorize(a *Matrix) error {
	if a == nil {
		return fmt.Errorf("%s: %w", opFactorize, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return fmt.Errorf("%s: %w", opFactorize, err)
	}
	n := a.Rows()
	lu := make([]Expr, n*n)
	copy(lu, a.Data())
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, k, p int
	for k = 0; k < n; k++ {
		// Structural pivot search.
		p = k
		for p < n && lu[p*n+k].IsZero() {
			p++
		}
		if p == n {
			return fmt.Errorf("%s: column %d: %w", opFactorize, k, ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				lu[k*n+j], lu[p*n+j] = lu[p*n+j], lu[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		pivot := lu[k*n+k]
		for i = k + 1; i < n; i++ {
			if lu[i*n+k].IsZero() {
				continue
			}
			l := Div(lu[i*n+k], pivot)
			lu[i*n+k] = l
			for j = k + 1; j < n; j++ {
				lu[i*n+j] = Sub(lu[i*n+j], Mul(l, lu[k*n+j]))
			}
		}
	}

	f.n, f.lu, f.perm = n, lu, perm

	return nil
}

// Solve returns x with A·x = b for every column of b.
// Implementation:
//   - Stage 1: permute b by perm.
//   - Stage 2: forward substitution with unit L.
//   - Stage 3: back substitution with U.
//
// Errors:
//   - ErrNotFactorized, matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
//
// Complexity:
//   - O(n²·m) expression operations for an n×m right-hand side.
func (f *LU) Solve(b *Matrix) (*Matrix, error) {
	if f.n == 0 {
		return nil, fmt.Errorf("%s: %w", opSolve, ErrNotFactorized)
	}
	if b == nil {
		return nil, fmt.Errorf("%s: %w", opSolve, matrix.ErrNilMatrix)
	}
	if b.Rows() != f.n {
		return nil, fmt.Errorf("%s: %w", opSolve, matrix.ErrDimensionMismatch)
	}
	n, m := f.n, b.Cols()
	x, err := NewMatrix(n, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	bd, xd := b.Data(), x.Data()
	y := make([]Expr, n)

	var i, k, col int
	for col = 0; col < m; col++ {
		// Forward: L·y = P·b.
		for i = 0; i < n; i++ {
			acc := bd[f.perm[i]*m+col]
			for k = 0; k < i; k++ {
				acc = Sub(acc, Mul(f.lu[i*n+k], y[k]))
			}
			y[i] = acc
		}
		// Backward: U·x = y.
		for i = n - 1; i >= 0; i-- {
			acc := y[i]
			for k = i + 1; k < n; k++ {
				acc = Sub(acc, Mul(f.lu[i*n+k], xd[k*m+col]))
			}
			xd[i*m+col] = Div(acc, f.lu[i*n+i])
		}
	}

	return x, nil
}
