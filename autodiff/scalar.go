// SPDX-License-Identifier: MIT

package autodiff

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/dual"
)

// Scalar is a forward-mode dual number: a value plus the partial derivatives
// of that value with respect to n_z independent variables z₀…z_{n_z−1}.
//
// An empty (or nil) Derivatives slice means the scalar tracks no variable yet;
// it behaves as an all-zero derivative vector of any length and is therefore
// compatible with scalars tracking n_z variables.
type Scalar struct {
	Value       float64   // value part
	Derivatives []float64 // ∂Value/∂zᵢ, len == n_z or 0
}

// New returns a scalar with the given value and derivative vector.
// The derivative slice is copied.
func New(value float64, derivatives ...float64) Scalar {
	var d []float64
	if len(derivatives) > 0 {
		d = make([]float64, len(derivatives))
		copy(d, derivatives)
	}

	return Scalar{Value: value, Derivatives: d}
}

// Constant returns a scalar that tracks no variable.
func Constant(value float64) Scalar { return Scalar{Value: value} }

// Variable returns the seed for independent variable index out of n: its
// derivative vector is the unit vector e_index of length n.
// Panics if index is outside [0, n).
func Variable(value float64, index, n int) Scalar {
	if index < 0 || index >= n {
		panic("autodiff: Variable: index out of range")
	}
	d := make([]float64, n)
	d[index] = 1

	return Scalar{Value: value, Derivatives: d}
}

// FromDual converts a gonum single-direction dual number into a Scalar
// tracking one variable.
func FromDual(d dual.Number) Scalar {
	return Scalar{Value: d.Real, Derivatives: []float64{d.Emag}}
}

// Dual projects s onto the i-th independent variable as a gonum dual number.
// A scalar tracking no variable yields a zero dual part.
// Panics if s tracks variables and i is outside [0, n_z).
func (s Scalar) Dual(i int) dual.Number {
	if len(s.Derivatives) == 0 {
		return dual.Number{Real: s.Value}
	}

	return dual.Number{Real: s.Value, Emag: s.Derivatives[i]}
}

// DerivativeSize reports n_z for this scalar (0 when it tracks nothing).
func (s Scalar) DerivativeSize() int { return len(s.Derivatives) }

// Derivative returns ∂s/∂zᵢ, or 0 when s tracks no variable.
func (s Scalar) Derivative(i int) float64 {
	if len(s.Derivatives) == 0 {
		return 0
	}

	return s.Derivatives[i]
}

// Clone returns a copy of s that does not share the derivative buffer.
func (s Scalar) Clone() Scalar { return New(s.Value, s.Derivatives...) }

// String renders "value" or "value[d0 d1 ...]".
func (s Scalar) String() string {
	v := strconv.FormatFloat(s.Value, 'g', -1, 64)
	if len(s.Derivatives) == 0 {
		return v
	}
	parts := make([]string, len(s.Derivatives))
	for i, d := range s.Derivatives {
		parts[i] = strconv.FormatFloat(d, 'g', -1, 64)
	}

	return v + "[" + strings.Join(parts, " ") + "]"
}

// combine returns fa·a + fb·b, treating an empty slice as zeros.
// Panics when both are nonempty with different lengths.
func combine(a, b []float64, fa, fb float64) []float64 {
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil
	case len(b) == 0:
		out := make([]float64, len(a))
		for i, v := range a {
			out[i] = fa * v
		}
		return out
	case len(a) == 0:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = fb * v
		}
		return out
	case len(a) != len(b):
		panic(panicDerivativeSize)
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = fa*a[i] + fb*b[i]
	}

	return out
}

// Add returns a + b.
func Add(a, b Scalar) Scalar {
	return Scalar{Value: a.Value + b.Value, Derivatives: combine(a.Derivatives, b.Derivatives, 1, 1)}
}

// Sub returns a − b.
func Sub(a, b Scalar) Scalar {
	return Scalar{Value: a.Value - b.Value, Derivatives: combine(a.Derivatives, b.Derivatives, 1, -1)}
}

// Mul returns a·b with (ab)' = a'b + ab'.
func Mul(a, b Scalar) Scalar {
	return Scalar{Value: a.Value * b.Value, Derivatives: combine(a.Derivatives, b.Derivatives, b.Value, a.Value)}
}

// Div returns a/b with (a/b)' = a'/b − a·b'/b².
func Div(a, b Scalar) Scalar {
	return Scalar{
		Value:       a.Value / b.Value,
		Derivatives: combine(a.Derivatives, b.Derivatives, 1/b.Value, -a.Value/(b.Value*b.Value)),
	}
}

// Scale returns alpha·s.
func Scale(alpha float64, s Scalar) Scalar {
	return Scalar{Value: alpha * s.Value, Derivatives: combine(s.Derivatives, nil, alpha, 0)}
}
