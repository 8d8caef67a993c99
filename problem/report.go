package problem

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/linsolve"
	"github.com/katalvlaran/lvdiff/symbolic"
)

// Report is the serializable form of a solution x. Derivatives mirror the
// input layout: Derivatives[k][i][j] = ∂x(i,j)/∂z_k.
type Report struct {
	Kind        string        `yaml:"kind"`
	Values      [][]float64   `yaml:"values,omitempty"`
	Derivatives [][][]float64 `yaml:"derivatives,omitempty"`
	Expressions [][]string    `yaml:"expressions,omitempty"`
}

// NewReport captures x as returned by linsolve.Solve.
func NewReport(x linsolve.Matrix) (*Report, error) {
	kind, err := linsolve.Classify(x)
	if err != nil {
		return nil, fmt.Errorf("problem: report: %w", err)
	}
	rep := &Report{Kind: kind.String()}
	r, c := x.Dims()

	switch v := x.(type) {
	case *autodiff.Matrix:
		rep.Values = rowsOf(v.Values())
		nz, err := v.DerivativeSize()
		if err != nil {
			return nil, fmt.Errorf("problem: report: %w", err)
		}
		for k := 0; k < nz; k++ {
			d, err := v.Derivative(k)
			if err != nil {
				return nil, fmt.Errorf("problem: report: %w", err)
			}
			rep.Derivatives = append(rep.Derivatives, rowsOf(d))
		}
	case *symbolic.Matrix:
		data := v.Data()
		rep.Expressions = make([][]string, r)
		for i := range rep.Expressions {
			rep.Expressions[i] = make([]string, c)
			for j := range rep.Expressions[i] {
				rep.Expressions[i][j] = data[i*c+j].String()
			}
		}
	case mat.Matrix:
		rep.Values = rowsOf(v)
	}

	return rep, nil
}

// YAML encodes the report.
func (r *Report) YAML() ([]byte, error) { return yaml.Marshal(r) }

func rowsOf(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}

	return out
}
