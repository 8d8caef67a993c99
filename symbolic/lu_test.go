package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/matrix"
	"github.com/katalvlaran/lvdiff/symbolic"
)

func constMatrix(t *testing.T, r, c int, vals ...int64) *symbolic.Matrix {
	t.Helper()
	entries := make([]symbolic.Expr, len(vals))
	for i, v := range vals {
		entries[i] = symbolic.Const(v)
	}
	m, err := symbolic.NewMatrixFrom(r, c, entries...)
	require.NoError(t, err)

	return m
}

func rendered(m *symbolic.Matrix) []string {
	out := make([]string, len(m.Data()))
	for i, e := range m.Data() {
		out[i] = e.String()
	}

	return out
}

func TestLUSolveExact(t *testing.T) {
	var lu symbolic.LU
	require.NoError(t, lu.Factorize(constMatrix(t, 2, 2, 1, 2, 2, 5)))
	require.Equal(t, 2, lu.Size())

	x, err := lu.Solve(constMatrix(t, 2, 1, 3, 4))
	require.NoError(t, err)
	require.Equal(t, []string{"7", "-2"}, rendered(x))

	// reuse with a two-column right-hand side
	x, err = lu.Solve(constMatrix(t, 2, 2, 1, 0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, []string{"5", "-2", "-2", "1"}, rendered(x))
}

func TestLUSolveThreeByThreeNeedsPivot(t *testing.T) {
	var lu symbolic.LU
	require.NoError(t, lu.Factorize(constMatrix(t, 3, 3,
		0, 2, 1,
		1, 1, 0,
		2, 0, 3)))

	x, err := lu.Solve(constMatrix(t, 3, 1, 5, 2, 9))
	require.NoError(t, err)
	require.Equal(t, []string{"3/4", "5/4", "5/2"}, rendered(x))
}

func TestLUParametric(t *testing.T) {
	a, b := symbolic.Var("a"), symbolic.Var("b")
	m, err := symbolic.NewMatrixFrom(2, 2, a, symbolic.Const(0), symbolic.Const(0), b)
	require.NoError(t, err)

	var lu symbolic.LU
	require.NoError(t, lu.Factorize(m))
	x, err := lu.Solve(constMatrix(t, 2, 1, 1, 1))
	require.NoError(t, err)
	require.Equal(t, []string{"a^-1", "b^-1"}, rendered(x))

	vals, err := x.Evaluate(symbolic.Env{"a": 4, "b": -2})
	require.NoError(t, err)
	require.True(t, mat.Equal(mat.NewDense(2, 1, []float64{0.25, -0.5}), vals))
}

func TestLUErrors(t *testing.T) {
	var lu symbolic.LU
	_, err := lu.Solve(constMatrix(t, 1, 1, 1))
	require.ErrorIs(t, err, symbolic.ErrNotFactorized)

	require.ErrorIs(t, lu.Factorize(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, lu.Factorize(constMatrix(t, 1, 2, 1, 2)), matrix.ErrNonSquare)
	require.ErrorIs(t, lu.Factorize(constMatrix(t, 2, 2, 1, 2, 2, 4)), symbolic.ErrSingular)

	require.NoError(t, lu.Factorize(constMatrix(t, 2, 2, 1, 0, 0, 1)))
	_, err = lu.Solve(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = lu.Solve(constMatrix(t, 3, 1, 1, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMatrixConstructors(t *testing.T) {
	z, err := symbolic.NewMatrix(2, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "0"}, rendered(z))

	_, err = symbolic.NewMatrixFrom(2, 2, symbolic.Const(1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = symbolic.NewMatrixFrom(1, 2, symbolic.Var("x"), nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	f, err := symbolic.FromFloat(mat.NewDense(1, 2, []float64{0.5, -3}))
	require.NoError(t, err)
	require.Equal(t, []string{"1/2", "-3"}, rendered(f))

	m, err := symbolic.NewMatrixFrom(1, 2, symbolic.Var("x"), symbolic.Const(1))
	require.NoError(t, err)
	_, err = m.Evaluate(symbolic.Env{})
	require.ErrorIs(t, err, symbolic.ErrUnboundSymbol)
}
