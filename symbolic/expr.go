// Package symbolic provides a small deterministic symbolic scalar for the
// linear solver: exact rational constants, named symbols, sums, products and
// integer powers, kept in a canonical simplified form.
//
// Expressions carry no derivative vector; for solver dispatch they are a
// plain scalar kind, like float64.
package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Expr is an immutable symbolic expression in canonical form.
// Every constructor of this package returns simplified expressions, so two
// expressions with the same String() are considered equal.
type Expr interface {
	// String renders the canonical form; it doubles as the ordering key.
	String() string
	// Evaluate computes the float64 value with symbols bound by env.
	Evaluate(env Env) (float64, error)
	// IsZero reports whether the expression is the constant 0.
	IsZero() bool
}

// Env binds symbol names to values for Evaluate.
type Env map[string]float64

// Equal reports whether a and b have the same canonical form.
func Equal(a, b Expr) bool { return a.String() == b.String() }

// ---------- Num — exact rational number ----------

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// Const returns the integer constant n.
func Const(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Rat returns the rational constant p/q. Panics if q == 0.
func Rat(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}

	return &Num{val: big.NewRat(p, q)}
}

// Float returns the exact rational value of f. Panics on NaN or ±Inf.
func Float(f float64) *Num {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		panic("symbolic: non-finite constant")
	}

	return &Num{val: r}
}

func (n *Num) String() string { return n.val.RatString() }

// Evaluate returns the nearest float64.
func (n *Num) Evaluate(Env) (float64, error) {
	f, _ := n.val.Float64()
	return f, nil
}

func (n *Num) IsZero() bool { return n.val.Sign() == 0 }

func (n *Num) isOne() bool { return n.val.Cmp(big.NewRat(1, 1)) == 0 }

// Rat returns a copy of the exact value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// ---------- Sym — named symbol ----------

// Sym is a free symbol.
type Sym struct{ name string }

// Var returns the symbol called name.
func Var(name string) *Sym { return &Sym{name: name} }

func (s *Sym) String() string { return s.name }

// Evaluate looks the symbol up in env.
func (s *Sym) Evaluate(env Env) (float64, error) {
	v, ok := env[s.name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnboundSymbol, s.name)
	}

	return v, nil
}

func (s *Sym) IsZero() bool { return false }

// Name returns the symbol name.
func (s *Sym) Name() string { return s.name }

// ---------- sum ----------

type sum struct{ terms []Expr }

func (a *sum) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}

	return strings.Join(parts, " + ")
}

func (a *sum) Evaluate(env Env) (float64, error) {
	var acc float64
	for _, t := range a.terms {
		v, err := t.Evaluate(env)
		if err != nil {
			return 0, err
		}
		acc += v
	}

	return acc, nil
}

func (a *sum) IsZero() bool { return false }

// ---------- product ----------

type product struct{ factors []Expr }

func (m *product) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = parenthesize(f)
	}

	return strings.Join(parts, "*")
}

func (m *product) Evaluate(env Env) (float64, error) {
	acc := 1.0
	for _, f := range m.factors {
		v, err := f.Evaluate(env)
		if err != nil {
			return 0, err
		}
		acc *= v
	}

	return acc, nil
}

func (m *product) IsZero() bool { return false }

// ---------- power (integer exponent) ----------

type power struct {
	base Expr
	exp  int
}

func (p *power) String() string { return parenthesize(p.base) + "^" + fmt.Sprint(p.exp) }

func (p *power) Evaluate(env Env) (float64, error) {
	b, err := p.base.Evaluate(env)
	if err != nil {
		return 0, err
	}

	return math.Pow(b, float64(p.exp)), nil
}

func (p *power) IsZero() bool { return false }

func parenthesize(e Expr) string {
	switch e.(type) {
	case *sum, *product:
		return "(" + e.String() + ")"
	}
	return e.String()
}

// ---------- constructors with simplification ----------

// Add returns the simplified sum of terms. Like terms (same non-numeric part)
// are collected and constants are folded.
func Add(terms ...Expr) Expr {
	constant := new(big.Rat)
	coeffs := map[string]*big.Rat{}
	bodies := map[string]Expr{}
	var visit func(Expr)
	visit = func(t Expr) {
		switch v := t.(type) {
		case *sum:
			for _, inner := range v.terms {
				visit(inner)
			}
		case *Num:
			constant.Add(constant, v.val)
		default:
			c, body := splitCoeff(t)
			k := body.String()
			if _, seen := coeffs[k]; !seen {
				coeffs[k] = new(big.Rat)
				bodies[k] = body
			}
			coeffs[k].Add(coeffs[k], c)
		}
	}
	for _, t := range terms {
		visit(t)
	}

	keys := make([]string, 0, len(coeffs))
	for k, c := range coeffs {
		if c.Sign() != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, scaleBy(coeffs[k], bodies[k]))
	}
	if constant.Sign() != 0 {
		out = append(out, &Num{val: constant})
	}
	switch len(out) {
	case 0:
		return Const(0)
	case 1:
		return out[0]
	}

	return &sum{terms: out}
}

// Sub returns a − b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Neg returns −a.
func Neg(a Expr) Expr { return Mul(Const(-1), a) }

// Mul returns the simplified product of factors. Constants are folded and
// equal bases are merged by adding their integer exponents, so x·x⁻¹ = 1.
func Mul(factors ...Expr) Expr {
	coeff := big.NewRat(1, 1)
	exps := map[string]int{}
	bases := map[string]Expr{}
	var visit func(Expr, int)
	visit = func(f Expr, e int) {
		switch v := f.(type) {
		case *product:
			for _, inner := range v.factors {
				visit(inner, e)
			}
		case *Num:
			coeff.Mul(coeff, ratPow(v.val, e))
		case *power:
			visit(v.base, e*v.exp)
		default:
			k := f.String()
			if _, seen := bases[k]; !seen {
				bases[k] = f
			}
			exps[k] += e
		}
	}
	for _, f := range factors {
		visit(f, 1)
	}
	if coeff.Sign() == 0 {
		return Const(0)
	}

	keys := make([]string, 0, len(exps))
	for k, e := range exps {
		if e != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		if exps[k] == 1 {
			out = append(out, bases[k])
		} else {
			out = append(out, &power{base: bases[k], exp: exps[k]})
		}
	}
	c := &Num{val: coeff}
	switch {
	case len(out) == 0:
		return c
	case c.isOne() && len(out) == 1:
		return out[0]
	case c.isOne():
		return &product{factors: out}
	}

	return &product{factors: append([]Expr{c}, out...)}
}

// Div returns a / b. Panics when b is the constant 0.
func Div(a, b Expr) Expr {
	if b.IsZero() {
		panic("symbolic: division by zero")
	}

	return Mul(a, Pow(b, -1))
}

// Pow returns base^exp for an integer exponent.
// Panics when base is the constant 0 and exp < 0.
func Pow(base Expr, exp int) Expr {
	if exp < 0 && base.IsZero() {
		panic("symbolic: division by zero")
	}
	if exp == 0 {
		return Const(1)
	}
	if n, ok := base.(*Num); ok {
		return &Num{val: ratPow(n.val, exp)}
	}
	if p, ok := base.(*power); ok {
		return Pow(p.base, p.exp*exp)
	}
	if exp == 1 {
		return base
	}
	if _, ok := base.(*product); ok {
		// distribute over the factors so coefficients stay folded
		return Mul(&power{base: base, exp: exp})
	}

	return &power{base: base, exp: exp}
}

// splitCoeff separates a leading numeric coefficient: 3·x·y → (3, x·y).
func splitCoeff(e Expr) (*big.Rat, Expr) {
	p, ok := e.(*product)
	if !ok {
		return big.NewRat(1, 1), e
	}
	n, ok := p.factors[0].(*Num)
	if !ok {
		return big.NewRat(1, 1), e
	}
	rest := p.factors[1:]
	if len(rest) == 1 {
		return n.Rat(), rest[0]
	}

	return n.Rat(), &product{factors: append([]Expr(nil), rest...)}
}

// scaleBy rebuilds c·body without re-simplifying body.
func scaleBy(c *big.Rat, body Expr) Expr {
	if c.Cmp(big.NewRat(1, 1)) == 0 {
		return body
	}
	if p, ok := body.(*product); ok {
		return &product{factors: append([]Expr{&Num{val: c}}, p.factors...)}
	}

	return &product{factors: []Expr{&Num{val: c}, body}}
}

// ratPow computes r^e exactly; r must be nonzero when e < 0.
func ratPow(r *big.Rat, e int) *big.Rat {
	out := big.NewRat(1, 1)
	base := new(big.Rat).Set(r)
	if e < 0 {
		base.Inv(base)
		e = -e
	}
	for ; e > 0; e-- {
		out.Mul(out, base)
	}

	return out
}
