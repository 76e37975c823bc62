package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/legendre/legendre"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseReal(t *testing.T) {

	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"-3", -3},
		{"pi", math.Pi},
		{"-pi", -math.Pi},
		{"+pi", math.Pi},
		{"2pi", 2 * math.Pi},
		{"0.5*pi", 0.5 * math.Pi},
		{" PI ", math.Pi},
	} {
		t.Run(tc.in, func(t *testing.T) {
			have, err := parseReal(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, have)
		})
	}

	for _, in := range []string{"", "x", "twopi", "1..2"} {
		_, err := parseReal(in)
		require.Error(t, err, in)
	}
}

func TestGetFunction(t *testing.T) {

	f, err := getFunction("SIN")
	require.NoError(t, err)
	require.Equal(t, math.Sin(1), f(1))

	f, err = getFunction("sign")
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 0, 1}, []float64{f(-2), f(0), f(2)})

	_, err = getFunction("tan")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expsqrt")
}

func TestLoadConfig(t *testing.T) {

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 4\nn: 20\na: 0\nb: 2\nfunction: exp\nseed: abc\n"), 0o600))

	cfg := DefaultConfig()
	require.NoError(t, LoadConfig(path, &cfg))

	require.Equal(t, legendre.ParametersLiteral{Count: 4, N: 20, A: 0, B: 2}, cfg.ParametersLiteral)
	require.Equal(t, "exp", cfg.Function)
	require.Equal(t, "abc", cfg.Seed)
	require.Equal(t, 21, cfg.Samples)

	require.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("count: [1, 2\n"), 0o600))
	require.Error(t, LoadConfig(bad, &cfg))
}

func TestCommands(t *testing.T) {

	t.Run("Integrate", func(t *testing.T) {
		out, err := execute(t, "integrate", "-f", "x2", "-a", "0", "-b", "1", "-n", "10")
		require.NoError(t, err)
		require.Contains(t, out, "= 0.33333333333333")
	})

	t.Run("Integrate/OddResolution", func(t *testing.T) {
		_, err := execute(t, "integrate", "-n", "7")
		require.ErrorIs(t, err, legendre.ErrInvalidArgument)
	})

	t.Run("Basis", func(t *testing.T) {
		out, err := execute(t, "basis", "-c", "3", "-n", "100", "-a", "-1", "-b", "1")
		require.NoError(t, err)
		require.Contains(t, out, "P_0")
		require.Contains(t, out, "P_2")
		require.NotContains(t, out, "P_3")
	})

	t.Run("Basis/Degenerate", func(t *testing.T) {
		_, err := execute(t, "basis", "-c", "8", "-n", "4")
		require.ErrorIs(t, err, legendre.ErrDegenerateBasis)
	})

	t.Run("Project", func(t *testing.T) {
		out, err := execute(t, "project", "-f", "cos", "-c", "6", "-n", "200", "-a", "-pi", "-b", "pi", "-s", "5")
		require.NoError(t, err)
		require.Contains(t, out, "cos(x)")
		require.Contains(t, out, "MSE (quadrature)")
		require.Contains(t, out, "-3.141593")
		require.Contains(t, out, " 3.141593")
		require.Contains(t, out, "max |cos(x) - projection(x)| on the table")
	})

	t.Run("Project/FreshRandomness", func(t *testing.T) {
		out, err := execute(t, "project", "-f", "exp", "-c", "4", "-a", "0", "-b", "1", "--seed", "", "-s", "0")
		require.NoError(t, err)
		require.Contains(t, out, "Points  : 1024")
		require.NotContains(t, out, "projection(x)")
	})

	t.Run("Project/UnknownFunction", func(t *testing.T) {
		_, err := execute(t, "project", "-f", "tan")
		require.Error(t, err)
	})

	t.Run("Demo", func(t *testing.T) {
		out, err := execute(t)
		require.NoError(t, err)
		require.Contains(t, out, "sin(x)")
		require.Contains(t, out, "expsqrt(x)")
	})

	t.Run("ConfigFile", func(t *testing.T) {

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("count: 8\nn: 4\nfunction: x3\n"), 0o600))

		// The file alone gives a degenerate basis.
		_, err := execute(t, "basis", "--config", path)
		require.ErrorIs(t, err, legendre.ErrDegenerateBasis)

		// Explicit flags take precedence over the file.
		out, err := execute(t, "basis", "--config", path, "-c", "3", "-n", "50")
		require.NoError(t, err)
		require.Contains(t, out, "P_2")
		require.NotContains(t, out, "P_3")
	})
}
