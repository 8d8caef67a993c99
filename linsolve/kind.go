// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/matrix"
	"github.com/katalvlaran/lvdiff/symbolic"
)

// Matrix is any operand accepted by the solver. Supported dynamic types:
//   - gonum mat.Matrix (float64 entries)      → PlainNumeric
//   - *symbolic.Matrix                        → PlainSymbolic
//   - *autodiff.Matrix                        → Dual
//
// Vectors are n×1 matrices.
type Matrix = matrix.Shape

// Kind is the scalar kind of an operand.
type Kind int

const (
	// KindUnknown is returned alongside an error by Classify.
	KindUnknown Kind = iota
	// PlainNumeric entries are float64 values.
	PlainNumeric
	// PlainSymbolic entries are symbolic expressions (no derivative vector).
	PlainSymbolic
	// Dual entries carry a value and a vector of partial derivatives.
	Dual
)

var kindNames = [...]string{
	KindUnknown:   "Unknown",
	PlainNumeric:  "PlainNumeric",
	PlainSymbolic: "PlainSymbolic",
	Dual:          "Dual",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// IsPlain reports whether k carries no derivative vector.
func (k Kind) IsPlain() bool { return k == PlainNumeric || k == PlainSymbolic }

// Classify returns the scalar kind of m.
// Errors: ErrNilMatrix for nil or typed-nil operands, ErrUnsupportedScalar
// for any other dynamic type.
// Complexity: O(1).
func Classify(m Matrix) (Kind, error) {
	switch v := m.(type) {
	case nil:
		return KindUnknown, ErrNilMatrix
	case *autodiff.Matrix:
		if v == nil {
			return KindUnknown, ErrNilMatrix
		}
		return Dual, nil
	case *symbolic.Matrix:
		if v == nil {
			return KindUnknown, ErrNilMatrix
		}
		return PlainSymbolic, nil
	case *mat.Dense:
		if v == nil {
			return KindUnknown, ErrNilMatrix
		}
		return PlainNumeric, nil
	case *mat.VecDense:
		if v == nil {
			return KindUnknown, ErrNilMatrix
		}
		return PlainNumeric, nil
	case mat.Matrix:
		if isNilPointer(v) {
			return KindUnknown, ErrNilMatrix
		}
		return PlainNumeric, nil
	}

	return KindUnknown, fmt.Errorf("%w: %T", ErrUnsupportedScalar, m)
}

// isNilPointer reports whether v holds a typed nil pointer, e.g. a nil
// *mat.SymDense stored in a mat.Matrix.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// strategy is one of the three mutually exclusive solve paths.
type strategy int

const (
	strategyUnsupported strategy = iota
	// strategyPlain: A and b plain of the same sub-kind; x = handle.solve(b).
	strategyPlain
	// strategyDualRHS: A numeric, b dual; one solve per tracked variable.
	strategyDualRHS
	// strategyDualMatrix: A dual, b numeric or dual; implicit function theorem.
	strategyDualMatrix
)

var strategyNames = [...]string{
	strategyUnsupported: "unsupported",
	strategyPlain:       "plain",
	strategyDualRHS:     "dual-rhs",
	strategyDualMatrix:  "dual-matrix",
}

func (s strategy) String() string { return strategyNames[s] }

// strategyTable is the full compatibility matrix indexed by [kind(A)][kind(b)].
// Numeric and symbolic never mix.
var strategyTable = [...][4]strategy{
	KindUnknown: {},
	PlainNumeric: {
		PlainNumeric:  strategyPlain,
		PlainSymbolic: strategyUnsupported,
		Dual:          strategyDualRHS,
	},
	PlainSymbolic: {
		PlainNumeric:  strategyUnsupported,
		PlainSymbolic: strategyPlain,
		Dual:          strategyUnsupported,
	},
	Dual: {
		PlainNumeric:  strategyDualMatrix,
		PlainSymbolic: strategyUnsupported,
		Dual:          strategyDualMatrix,
	},
}

// selectStrategy looks up the solve path for (kind(A), kind(b)).
func selectStrategy(a, b Kind) strategy {
	if a < 0 || int(a) >= len(strategyTable) || b < 0 || int(b) >= len(strategyTable[a]) {
		return strategyUnsupported
	}

	return strategyTable[a][b]
}
