// SPDX-License-Identifier: MIT

// Package linsolve: functional configuration of the factorization provider
// and the solver. This file defines:
//   - Method (the numeric factorization algorithm) and ParseMethod,
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package linsolve

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Method selects the numeric factorization used for plain and dual A.
// Symbolic A always uses symbolic LU regardless of Method.
type Method int

const (
	// MethodLU is LU with partial pivoting (gonum mat.LU). Any nonsingular A.
	MethodLU Method = iota
	// MethodCholesky is the Cholesky factorization (gonum mat.Cholesky).
	// Requires a symmetric positive definite A.
	MethodCholesky
	// MethodQR is the QR factorization (gonum mat.QR).
	MethodQR
)

var methodNames = [...]string{
	MethodLU:       "lu",
	MethodCholesky: "cholesky",
	MethodQR:       "qr",
}

// String returns the lowercase method name ("lu", "cholesky", "qr").
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return methodNames[m]
}

func (m Method) valid() bool { return m >= MethodLU && m <= MethodQR }

// ParseMethod maps a case-insensitive name ("lu", "cholesky"/"llt", "qr")
// to a Method. The empty string maps to DefaultMethod.
// Errors: ErrUnknownMethod.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultMethod, nil
	case "lu":
		return MethodLU, nil
	case "cholesky", "llt":
		return MethodCholesky, nil
	case "qr":
		return MethodQR, nil
	}

	return DefaultMethod, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMethod is the factorization used when WithMethod is not given.
	DefaultMethod = MethodLU

	// DefaultSymmetryTolerance is the absolute/relative tolerance used to
	// accept A as symmetric for MethodCholesky.
	DefaultSymmetryTolerance = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation of A's values.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicMethodInvalid    = "linsolve: WithMethod: unknown method"
	panicToleranceInvalid = "linsolve: WithSymmetryTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	method         Method      // DefaultMethod
	symmetryTol    float64     // DefaultSymmetryTolerance
	validateNaNInf bool        // DefaultValidateNaNInf
	logger         *zap.Logger // no-op unless WithLogger
}

// WithMethod selects the numeric factorization.
// Panics on a value outside MethodLU..MethodQR.
func WithMethod(m Method) Option {
	if !m.valid() {
		panic(panicMethodInvalid)
	}

	return func(o *Options) { o.method = m }
}

// WithSymmetryTolerance sets the tolerance of the symmetry check performed
// before a Cholesky factorization.
// Panics when tol is negative, NaN or ±Inf.
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.symmetryTol = tol }
}

// WithValidateNaNInf enables strict finite-value validation of A (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation; non-finite values
// then reach the factorization, which typically reports ErrFactorization.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithLogger attaches a zap logger; the solver logs strategy selection and
// derivative sizes at debug level. A nil logger restores the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		method:         DefaultMethod,
		symmetryTol:    DefaultSymmetryTolerance,
		validateNaNInf: DefaultValidateNaNInf,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
