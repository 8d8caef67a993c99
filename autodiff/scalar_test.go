// SPDX-License-Identifier: MIT

package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/dual"

	"github.com/katalvlaran/lvdiff/autodiff"
)

func TestConstructors(t *testing.T) {
	d := []float64{1, 2}
	s := autodiff.New(3, d...)
	d[0] = 99
	require.Equal(t, []float64{1, 2}, s.Derivatives, "New must copy")
	require.Equal(t, 2, s.DerivativeSize())

	c := autodiff.Constant(5)
	require.Equal(t, 0, c.DerivativeSize())
	require.Equal(t, 0.0, c.Derivative(3))

	v := autodiff.Variable(1.5, 2, 4)
	require.Equal(t, []float64{0, 0, 1, 0}, v.Derivatives)
	require.Panics(t, func() { autodiff.Variable(0, 4, 4) })
	require.Panics(t, func() { autodiff.Variable(0, -1, 4) })
}

func TestCloneDoesNotShare(t *testing.T) {
	s := autodiff.New(1, 2, 3)
	c := s.Clone()
	c.Derivatives[0] = -1
	require.Equal(t, 2.0, s.Derivatives[0])
}

func TestString(t *testing.T) {
	require.Equal(t, "2.5", autodiff.Constant(2.5).String())
	require.Equal(t, "7[3 -1]", autodiff.New(7, 3, -1).String())
}

// TestArithmeticMatchesGonumDual projects every operation on each variable
// and compares it with gonum's single-direction dual numbers.
func TestArithmeticMatchesGonumDual(t *testing.T) {
	a := autodiff.New(1.5, 1, 0.25)
	b := autodiff.New(-2, 0.5, 3)

	cases := []struct {
		name string
		got  autodiff.Scalar
		want func(x, y dual.Number) dual.Number
	}{
		{"add", autodiff.Add(a, b), dual.Add},
		{"sub", autodiff.Sub(a, b), func(x, y dual.Number) dual.Number { return dual.Add(x, dual.Scale(-1, y)) }},
		{"mul", autodiff.Mul(a, b), dual.Mul},
		{"div", autodiff.Div(a, b), func(x, y dual.Number) dual.Number { return dual.Mul(x, dual.Inv(y)) }},
		{"scale", autodiff.Scale(-3, a), func(x, _ dual.Number) dual.Number { return dual.Scale(-3, x) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				want := tc.want(a.Dual(i), b.Dual(i))
				got := tc.got.Dual(i)
				require.InDelta(t, want.Real, got.Real, 1e-15)
				require.InDelta(t, want.Emag, got.Emag, 1e-15)
			}
		})
	}
}

func TestUntrackedMixesWithTracked(t *testing.T) {
	x := autodiff.New(2, 1, 0)
	k := autodiff.Constant(3)

	require.Equal(t, []float64{3, 0}, autodiff.Mul(x, k).Derivatives)
	require.Equal(t, []float64{-1, 0}, autodiff.Sub(k, x).Derivatives)
	require.Nil(t, autodiff.Add(k, k).Derivatives)
	require.Nil(t, autodiff.Scale(2, k).Derivatives)
}

func TestMismatchedSizesPanic(t *testing.T) {
	require.Panics(t, func() { autodiff.Add(autodiff.New(1, 1), autodiff.New(1, 1, 2)) })
}

func TestDualRoundTrip(t *testing.T) {
	d := dual.Number{Real: 0.5, Emag: -4}
	s := autodiff.FromDual(d)
	require.Equal(t, 1, s.DerivativeSize())
	require.Equal(t, d, s.Dual(0))
	require.Equal(t, dual.Number{Real: 3}, autodiff.Constant(3).Dual(5))
	require.Panics(t, func() { s.Dual(1) })
}
