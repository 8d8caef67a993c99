package symbolic

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/matrix"
)

// Matrix is a dense matrix of symbolic expressions. A column vector is an
// n×1 Matrix.
type Matrix struct {
	matrix.Dense[Expr]
}

// NewMatrix allocates an r×c matrix filled with the constant 0.
// Errors: matrix.ErrInvalidDimensions for non-positive shapes.
func NewMatrix(rows, cols int) (*Matrix, error) {
	d, err := matrix.NewDense[Expr](rows, cols)
	if err != nil {
		return nil, err
	}
	d.Fill(Const(0))

	return &Matrix{Dense: *d}, nil
}

// NewMatrixFrom builds an r×c matrix from row-major entries.
// Errors: matrix.ErrInvalidDimensions, matrix.ErrDimensionMismatch,
// matrix.ErrNilMatrix for a nil entry.
func NewMatrixFrom(rows, cols int, entries ...Expr) (*Matrix, error) {
	for idx, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("NewMatrixFrom: entry %d: %w", idx, matrix.ErrNilMatrix)
		}
	}
	d, err := matrix.NewDenseFrom(rows, cols, entries)
	if err != nil {
		return nil, err
	}

	return &Matrix{Dense: *d}, nil
}

// FromFloat converts a numeric matrix into exact rational constants.
// Panics on NaN or ±Inf entries (see Float).
func FromFloat(m mat.Matrix) (*Matrix, error) {
	r, c := m.Dims()
	out, err := NewMatrix(r, c)
	if err != nil {
		return nil, err
	}
	data := out.Data()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = Float(m.At(i, j))
		}
	}

	return out, nil
}

// Evaluate substitutes env into every entry.
// Errors: ErrUnboundSymbol (wrapped with the entry coordinates).
func (m *Matrix) Evaluate(env Env) (*mat.Dense, error) {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	data := m.Data()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := data[i*c+j].Evaluate(env)
			if err != nil {
				return nil, fmt.Errorf("Evaluate(%d,%d): %w", i, j, err)
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}
