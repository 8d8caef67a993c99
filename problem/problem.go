// Package problem reads linear-system descriptions from YAML or TOML files
// and turns them into linsolve operands.
//
// A file names the factorization method and gives A and b as value matrices,
// each optionally followed by one derivative matrix per independent variable:
//
//	method: cholesky
//	a:
//	  values: [[1, 2], [2, 5]]
//	b:
//	  values: [[3], [4]]
//	  derivatives:
//	    - [[1], [1]]   # ∂b/∂z₀
//
// Operands without derivatives become gonum matrices; operands with
// derivatives become *autodiff.Matrix.
package problem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/linsolve"
)

var (
	// ErrUnknownFormat is returned for file extensions other than .yaml, .yml and .toml.
	ErrUnknownFormat = errors.New("problem: unknown file format")

	// ErrEmptyOperand is returned when an operand has no values.
	ErrEmptyOperand = errors.New("problem: operand has no values")

	// ErrRagged is returned when rows differ in length or a derivative
	// matrix is not shaped like the values.
	ErrRagged = errors.New("problem: ragged matrix")
)

// Format is a supported file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}

	return FormatYAML, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Operand is one side of A·x = b.
type Operand struct {
	Values      [][]float64   `yaml:"values" toml:"values"`
	Derivatives [][][]float64 `yaml:"derivatives,omitempty" toml:"derivatives,omitempty"`
}

// Problem is a decoded system description.
type Problem struct {
	Method string  `yaml:"method,omitempty" toml:"method,omitempty"`
	A      Operand `yaml:"a" toml:"a"`
	B      Operand `yaml:"b" toml:"b"`
}

// Load reads and decodes the file at path.
func Load(path string) (*Problem, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem: read %s: %w", path, err)
	}

	return Decode(data, format)
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Problem, error) {
	var p Problem
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &p)
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
	if err != nil {
		return nil, fmt.Errorf("problem: decode: %w", err)
	}

	return &p, nil
}

// Options maps the file's method onto linsolve options.
// Errors: linsolve.ErrUnknownMethod.
func (p *Problem) Options() ([]linsolve.Option, error) {
	m, err := linsolve.ParseMethod(p.Method)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}

	return []linsolve.Option{linsolve.WithMethod(m)}, nil
}

// Operands builds A and b.
func (p *Problem) Operands() (a, b linsolve.Matrix, err error) {
	if a, err = p.A.Build(); err != nil {
		return nil, nil, fmt.Errorf("problem: a: %w", err)
	}
	if b, err = p.B.Build(); err != nil {
		return nil, nil, fmt.Errorf("problem: b: %w", err)
	}

	return a, b, nil
}

// Build converts the operand into a *mat.Dense (no derivatives) or an
// *autodiff.Matrix whose entry (i,j) has derivative k equal to Derivatives[k][i][j].
func (o Operand) Build() (linsolve.Matrix, error) {
	rows, cols, err := shapeOf(o.Values)
	if err != nil {
		return nil, err
	}
	for k, d := range o.Derivatives {
		r, c, err := shapeOf(d)
		if err != nil || r != rows || c != cols {
			return nil, fmt.Errorf("derivative %d: %w", k, ErrRagged)
		}
	}

	if len(o.Derivatives) == 0 {
		values := mat.NewDense(rows, cols, nil)
		for i, row := range o.Values {
			values.SetRow(i, row)
		}
		return values, nil
	}

	m, err := autodiff.NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	data := m.Data()
	nz := len(o.Derivatives)
	for i, row := range o.Values {
		for j, v := range row {
			d := make([]float64, nz)
			for k := range o.Derivatives {
				d[k] = o.Derivatives[k][i][j]
			}
			data[i*cols+j] = autodiff.Scalar{Value: v, Derivatives: d}
		}
	}

	return m, nil
}

// shapeOf validates a rectangular, non-empty matrix.
func shapeOf(rows [][]float64) (int, int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, 0, ErrEmptyOperand
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), cols, ErrRagged)
		}
	}

	return len(rows), cols, nil
}
