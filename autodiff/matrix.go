// SPDX-License-Identifier: MIT

// Package autodiff - dense matrices of dual scalars.
//
// Purpose:
//   - Hold a Matrix of Scalar entries on top of matrix.Dense.
//   - Split a dual matrix into its plain parts: the value matrix and one
//     derivative matrix ∂M/∂zᵢ per independent variable.
//   - Negotiate the derivative size n_z shared by all entries.
//
// Determinism:
//   - All scans walk the row-major buffer in index order 0..r*c-1.

package autodiff

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/matrix"
)

// Operation tags for error wrapping.
const (
	opDerivativeSize = "DerivativeSize"
	opDerivative     = "Derivative"
	opGradient       = "Gradient"
	opFromGradient   = "FromGradient"
	opMatMul         = "MatMul"
)

// Matrix is a dense matrix of dual scalars. A column vector is an n×1 Matrix.
type Matrix struct {
	matrix.Dense[Scalar]
}

// NewMatrix allocates an r×c matrix whose entries are 0 and track no variable.
// Errors: matrix.ErrInvalidDimensions for non-positive shapes.
func NewMatrix(rows, cols int) (*Matrix, error) {
	d, err := matrix.NewDense[Scalar](rows, cols)
	if err != nil {
		return nil, err
	}

	return &Matrix{Dense: *d}, nil
}

// NewVector builds an n×1 column vector from entries (derivatives are copied).
func NewVector(entries ...Scalar) (*Matrix, error) {
	m, err := NewMatrix(len(entries), 1)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	for i, e := range entries {
		data[i] = e.Clone()
	}

	return m, nil
}

// FromValues lifts a plain matrix into a dual matrix that tracks no variable.
func FromValues(values mat.Matrix) (*Matrix, error) {
	r, c := values.Dims()
	m, err := NewMatrix(r, c)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = Constant(values.At(i, j))
		}
	}

	return m, nil
}

// FromGradient builds an n×1 vector from values and an n×n_z gradient matrix:
// row j of gradient becomes the derivative vector of entry j.
// A nil gradient yields entries that track no variable.
//
// Errors: matrix.ErrInvalidDimensions for empty values,
// matrix.ErrDimensionMismatch when gradient has a different row count.
func FromGradient(values []float64, gradient mat.Matrix) (*Matrix, error) {
	m, err := NewMatrix(len(values), 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromGradient, err)
	}
	nz := 0
	if gradient != nil {
		var gr int
		gr, nz = gradient.Dims()
		if gr != len(values) {
			return nil, fmt.Errorf("%s: %w", opFromGradient, matrix.ErrDimensionMismatch)
		}
	}
	data := m.Data()
	for j, v := range values {
		data[j].Value = v
		if nz == 0 {
			continue
		}
		d := make([]float64, nz)
		for i := 0; i < nz; i++ {
			d[i] = gradient.At(j, i)
		}
		data[j].Derivatives = d
	}

	return m, nil
}

// Clone returns a deep copy, derivative buffers included.
func (m *Matrix) Clone() *Matrix {
	d := m.Dense.Clone()
	data := d.Data()
	for i := range data {
		data[i] = data[i].Clone()
	}

	return &Matrix{Dense: *d}
}

// DerivativeSize negotiates n_z for the whole matrix.
// MAIN DESCRIPTION:
//   - Scan every entry and assert that all nonzero derivative lengths agree.
//
// Returns:
//   - 0 when every entry tracks no variable; the common nonzero length otherwise.
//
// Errors:
//   - ErrInconsistentDerivatives naming the first entry that disagrees.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Matrix) DerivativeSize() (int, error) {
	nz := 0
	c := m.Cols()
	for idx, s := range m.Data() {
		n := len(s.Derivatives)
		if n == 0 {
			continue
		}
		if nz == 0 {
			nz = n
			continue
		}
		if n != nz {
			return 0, fmt.Errorf("%s: %w: entry (%d,%d) tracks %d variables, expected %d",
				opDerivativeSize, ErrInconsistentDerivatives, idx/c, idx%c, n, nz)
		}
	}

	return nz, nil
}

// Values returns the value part of m as a fresh gonum matrix.
// Complexity: O(r*c).
func (m *Matrix) Values() *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	raw := out.RawMatrix()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			raw.Data[i*raw.Stride+j] = m.Data()[i*c+j].Value
		}
	}

	return out
}

// Derivative returns ∂M/∂zᵢ as a fresh gonum matrix. Entries that track no
// variable contribute 0.
// Errors: ErrDerivativeIndex when an entry's derivative vector is shorter than i+1.
// Complexity: O(r*c).
func (m *Matrix) Derivative(i int) (*mat.Dense, error) {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	if err := m.derivativeTo(out, i); err != nil {
		return nil, err
	}

	return out, nil
}

// derivativeTo writes ∂M/∂zᵢ into dst, which must be r×c.
func (m *Matrix) derivativeTo(dst *mat.Dense, i int) error {
	if i < 0 {
		return fmt.Errorf("%s(%d): %w", opDerivative, i, ErrDerivativeIndex)
	}
	r, c := m.Dims()
	raw := dst.RawMatrix()
	data := m.Data()
	var s Scalar
	for row := 0; row < r; row++ {
		for col := 0; col < c; col++ {
			s = data[row*c+col]
			switch {
			case len(s.Derivatives) == 0:
				raw.Data[row*raw.Stride+col] = 0
			case i >= len(s.Derivatives):
				return fmt.Errorf("%s(%d): %w", opDerivative, i, ErrDerivativeIndex)
			default:
				raw.Data[row*raw.Stride+col] = s.Derivatives[i]
			}
		}
	}

	return nil
}

// DerivativeTo is the allocation-free form of Derivative: dst must already
// be shaped like m (gonum panics otherwise).
func (m *Matrix) DerivativeTo(dst *mat.Dense, i int) error {
	r, c := m.Dims()
	dr, dc := dst.Dims()
	if dr != r || dc != c {
		return fmt.Errorf("%s: %w", opDerivative, matrix.ErrDimensionMismatch)
	}

	return m.derivativeTo(dst, i)
}

// Gradient returns the r×n_z gradient of column col: row j holds the
// derivative vector of entry (j, col). It is the inverse of FromGradient.
// Errors: matrix.ErrOutOfRange, ErrNoDerivatives, ErrInconsistentDerivatives.
func (m *Matrix) Gradient(col int) (*mat.Dense, error) {
	entries, err := m.Column(col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGradient, err)
	}
	nz, err := m.DerivativeSize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGradient, err)
	}
	if nz == 0 {
		return nil, fmt.Errorf("%s: %w", opGradient, ErrNoDerivatives)
	}
	out := mat.NewDense(len(entries), nz, nil)
	for j, s := range entries {
		for i := 0; i < nz; i++ {
			out.Set(j, i, s.Derivative(i))
		}
	}

	return out, nil
}

// MatMul returns the dual product a·b.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
// Panics (through Scalar arithmetic) if entries track different nonzero sizes.
// Complexity: O(r·k·c·n_z).
func MatMul(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", opMatMul, matrix.ErrNilMatrix)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("%s: %w", opMatMul, matrix.ErrDimensionMismatch)
	}
	out, err := NewMatrix(ar, bc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opMatMul, err)
	}
	ad, bd, od := a.Data(), b.Data(), out.Data()
	var i, j, k int
	for i = 0; i < ar; i++ {
		for j = 0; j < bc; j++ {
			acc := Constant(0)
			for k = 0; k < ac; k++ {
				acc = Add(acc, Mul(ad[i*ac+k], bd[k*bc+j]))
			}
			od[i*bc+j] = acc
		}
	}

	return out, nil
}
