package problem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdiff/autodiff"
	"github.com/katalvlaran/lvdiff/linsolve"
	"github.com/katalvlaran/lvdiff/problem"
)

const yamlSystem = `
method: cholesky
a:
  values: [[1.0, 2.0], [2.0, 5.0]]
b:
  values: [[3.0], [4.0]]
  derivatives:
    - [[1.0], [1.0]]
`

const tomlSystem = `
method = "qr"

[a]
values = [[4.0, 1.0], [1.0, 3.0]]
derivatives = [[[1.0, 0.5], [0.5, 2.0]]]

[b]
values = [[1.0], [2.0]]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]problem.Format{
		"a.yaml": problem.FormatYAML,
		"a.YML":  problem.FormatYAML,
		"a.toml": problem.FormatTOML,
	} {
		got, err := problem.FormatFromPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	_, err := problem.FormatFromPath("a.json")
	require.ErrorIs(t, err, problem.ErrUnknownFormat)
}

func TestLoadYAML(t *testing.T) {
	p, err := problem.Load(writeFile(t, "system.yaml", yamlSystem))
	require.NoError(t, err)
	require.Equal(t, "cholesky", p.Method)

	a, b, err := p.Operands()
	require.NoError(t, err)
	require.IsType(t, &mat.Dense{}, a)
	bd, ok := b.(*autodiff.Matrix)
	require.True(t, ok)
	require.Equal(t, "3[1]", bd.Data()[0].String())

	opts, err := p.Options()
	require.NoError(t, err)
	x, err := linsolve.LinearSolve(a, b, opts...)
	require.NoError(t, err)
	xd := x.(*autodiff.Matrix).Data()
	require.InDelta(t, 7.0, xd[0].Value, 1e-12)
	require.InDelta(t, -1.0, xd[1].Derivative(0), 1e-12)
}

func TestLoadTOML(t *testing.T) {
	p, err := problem.Load(writeFile(t, "system.toml", tomlSystem))
	require.NoError(t, err)
	require.Equal(t, "qr", p.Method)

	a, b, err := p.Operands()
	require.NoError(t, err)
	ad, ok := a.(*autodiff.Matrix)
	require.True(t, ok)
	require.Equal(t, "1[0.5]", ad.Data()[1].String())
	require.IsType(t, &mat.Dense{}, b)
}

func TestDecodeErrors(t *testing.T) {
	_, err := problem.Decode([]byte("a: [unclosed"), problem.FormatYAML)
	require.Error(t, err)

	_, err = problem.Decode([]byte("x"), problem.Format(9))
	require.ErrorIs(t, err, problem.ErrUnknownFormat)

	_, err = problem.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	p := &problem.Problem{Method: "svd"}
	_, err = p.Options()
	require.ErrorIs(t, err, linsolve.ErrUnknownMethod)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		op   problem.Operand
		want error
	}{
		{"empty", problem.Operand{}, problem.ErrEmptyOperand},
		{"empty row", problem.Operand{Values: [][]float64{{}}}, problem.ErrEmptyOperand},
		{"ragged values", problem.Operand{Values: [][]float64{{1, 2}, {3}}}, problem.ErrRagged},
		{"derivative shape", problem.Operand{
			Values:      [][]float64{{1}, {2}},
			Derivatives: [][][]float64{{{1}}},
		}, problem.ErrRagged},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.op.Build()
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReport(t *testing.T) {
	x, err := autodiff.NewVector(autodiff.New(7, 3), autodiff.New(-2, -1))
	require.NoError(t, err)

	rep, err := problem.NewReport(x)
	require.NoError(t, err)
	require.Equal(t, "Dual", rep.Kind)
	require.Equal(t, [][]float64{{7}, {-2}}, rep.Values)
	require.Equal(t, [][][]float64{{{3}, {-1}}}, rep.Derivatives)

	out, err := rep.YAML()
	require.NoError(t, err)
	require.Contains(t, string(out), "kind: Dual")

	plain, err := problem.NewReport(mat.NewDense(1, 1, []float64{2}))
	require.NoError(t, err)
	require.Equal(t, "PlainNumeric", plain.Kind)
	require.Empty(t, plain.Derivatives)

	_, err = problem.NewReport(nil)
	require.ErrorIs(t, err, linsolve.ErrNilMatrix)
}

// TestFormatsAgree decodes the same system from YAML and TOML.
func TestFormatsAgree(t *testing.T) {
	fromYAML, err := problem.Decode([]byte(`
a:
  values: [[4.0, 1.0], [1.0, 3.0]]
  derivatives:
    - [[1.0, 0.5], [0.5, 2.0]]
b:
  values: [[1.0], [2.0]]
`), problem.FormatYAML)
	require.NoError(t, err)

	fromTOML, err := problem.Decode([]byte(tomlSystem), problem.FormatTOML)
	require.NoError(t, err)
	fromTOML.Method = ""

	require.Equal(t, fromYAML, fromTOML)
}
