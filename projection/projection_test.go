package projection

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/legendre/legendre"
	"github.com/tuneinsight/legendre/quadrature"
	"github.com/tuneinsight/legendre/utils/sampling"
)

func expSqrt(x float64) float64 {
	return math.Exp(math.Sqrt(math.Abs(x / 7)))
}

func newTestBasis(t testing.TB, count, n int, a, b float64) *legendre.Basis {
	basis, err := legendre.BuildLegendreBasis(count, n, a, b)
	require.NoError(t, err)
	return basis
}

func TestProject(t *testing.T) {

	t.Run("Scenario/SinIsOdd", func(t *testing.T) {

		basis := newTestBasis(t, 5, 200, -1, 1)

		approx, err := Project(basis, math.Sin, -1, 1)
		require.NoError(t, err)

		coeffs := approx.Coefficients()
		require.Len(t, coeffs, 5)

		for i, c := range coeffs {
			if i&1 == 0 {
				require.InDelta(t, 0, c, 1e-12)
			} else {
				require.Greater(t, math.Abs(c), 1e-3)
			}
		}

		require.Greater(t, math.Abs(coeffs[1]), math.Abs(coeffs[3]))
	})

	t.Run("Idempotence", func(t *testing.T) {

		basis := newTestBasis(t, 5, 200, -1, 1)

		want := []float64{2, 3, -1, 0, 0}

		f, err := NewApproximation(basis, want)
		require.NoError(t, err)

		approx, err := Project(basis, f.Evaluate, -1, 1)
		require.NoError(t, err)

		have := approx.Coefficients()
		for i := range want {
			require.InDelta(t, want[i], have[i], 1e-10)
		}

		for k := 0; k <= 20; k++ {
			x := -1 + float64(k)/10
			require.InDelta(t, f.Evaluate(x), approx.Evaluate(x), 1e-10)
		}
	})

	t.Run("Convergence", func(t *testing.T) {

		a, b, n := -math.Pi, math.Pi, 1000

		prev := math.Inf(1)

		for count := 1; count <= 11; count++ {

			approx, err := Project(newTestBasis(t, count, n, a, b), expSqrt, a, b)
			require.NoError(t, err)

			mse, err := MeanSquaredError(expSqrt, approx, a, b, n)
			require.NoError(t, err)

			require.LessOrEqual(t, mse, prev+1e-12, fmt.Sprintf("count=%d", count))
			prev = mse
		}

		require.Less(t, prev, 1e-3)
	})

	t.Run("Demo/Sin", func(t *testing.T) {

		a, b := -math.Pi, math.Pi

		approx, err := Project(newTestBasis(t, 11, 100, a, b), math.Sin, a, b)
		require.NoError(t, err)

		xs, err := quadrature.Nodes(a, b, 200)
		require.NoError(t, err)

		for i, y := range approx.Sample(xs) {
			require.InDelta(t, math.Sin(xs[i]), y, 1e-4)
		}
	})

	t.Run("Monomial", func(t *testing.T) {

		approx, err := Project(newTestBasis(t, 6, 200, 0, 2), math.Exp, 0, 2)
		require.NoError(t, err)

		p := approx.Monomial()
		require.Equal(t, 5, p.Degree())

		for k := 0; k <= 10; k++ {
			x := float64(k) / 5
			require.InDelta(t, approx.Evaluate(x), p.Evaluate(x), 1e-12)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {

		basis := newTestBasis(t, 11, 100, -math.Pi, math.Pi)

		c0, err := Coefficients(basis, expSqrt, -math.Pi, math.Pi, 100)
		require.NoError(t, err)

		for i := 0; i < 8; i++ {
			c1, err := Coefficients(basis, expSqrt, -math.Pi, math.Pi, 100)
			require.NoError(t, err)
			require.Equal(t, c0, c1)
		}
	})

	t.Run("WithResolution", func(t *testing.T) {

		basis := newTestBasis(t, 4, 100, -1, 1)

		coarse, err := Project(basis, math.Cos, -1, 1)
		require.NoError(t, err)

		fine, err := ProjectWithResolution(basis, math.Cos, -1, 1, 1000)
		require.NoError(t, err)

		require.Equal(t, basis, fine.Basis())

		cc, cf := coarse.Coefficients(), fine.Coefficients()
		for i := range cc {
			require.InDelta(t, cc[i], cf[i], 1e-6)
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {

		basis := newTestBasis(t, 3, 100, -1, 1)

		_, err := Project(nil, math.Sin, -1, 1)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Project(&legendre.Basis{}, math.Sin, -1, 1)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Project(basis, math.Sin, 1, 1)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Project(basis, math.Sin, 1, -1)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Project(basis, nil, -1, 1)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = ProjectWithResolution(basis, math.Sin, -1, 1, 7)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Project(basis, math.Log, -1, 1)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = NewApproximation(basis, []float64{1, 2})
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = NewApproximation(nil, []float64{1})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestApproximation(t *testing.T) {

	basis := newTestBasis(t, 3, 100, -1, 1)

	coeffs := []float64{1, 0, 0}
	approx, err := NewApproximation(basis, coeffs)
	require.NoError(t, err)

	coeffs[0] = 5
	require.Equal(t, []float64{1, 0, 0}, approx.Coefficients())

	out := approx.Coefficients()
	out[1] = 5
	require.Equal(t, []float64{1, 0, 0}, approx.Coefficients())

	// P_0 = 1/sqrt(2) on [-1, 1].
	require.InDelta(t, 1/math.Sqrt(2), approx.Evaluate(0.3), 1e-15)
}

func TestPrecisionStats(t *testing.T) {

	a, b := -math.Pi, math.Pi

	approx, err := Project(newTestBasis(t, 11, 100, a, b), math.Sin, a, b)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte{'l', 'e', 'g', 'e', 'n', 'd', 'r', 'e'})
	require.NoError(t, err)

	xs, err := sampling.Float64s(prng, a, b, 512)
	require.NoError(t, err)

	prec, err := GetPrecisionStats(math.Sin, approx, xs)
	require.NoError(t, err)

	t.Log(prec.String())

	require.Equal(t, 512, prec.Points)
	require.LessOrEqual(t, prec.MinDelta, prec.MedianDelta)
	require.LessOrEqual(t, prec.MedianDelta, prec.MaxDelta)
	require.LessOrEqual(t, prec.MinDelta, prec.MeanDelta)
	require.LessOrEqual(t, prec.MeanDelta, prec.MaxDelta)
	require.Less(t, prec.MaxDelta, 1e-4)
	require.LessOrEqual(t, prec.MSE, prec.MaxDelta*prec.MaxDelta)
	require.Greater(t, prec.MinPrecision, 13.0)
	require.GreaterOrEqual(t, prec.MaxPrecision, prec.MinPrecision)

	_, err = GetPrecisionStats(math.Sin, approx, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = GetPrecisionStats(nil, approx, xs)
	require.ErrorIs(t, err, ErrInvalidArgument)

	var empty *Approximation
	_, err = GetPrecisionStats(math.Sin, empty, xs)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMeanSquaredError(t *testing.T) {

	zero := legendre.NewPolynomial(nil)

	// 1/2 * int_{-1}^{1} x^2 dx = 1/3.
	mse, err := MeanSquaredError(func(x float64) float64 { return x }, zero, -1, 1, 10)
	require.NoError(t, err)
	require.InDelta(t, 1.0/3, mse, 1e-15)

	_, err = MeanSquaredError(nil, zero, -1, 1, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = MeanSquaredError(math.Sin, zero, -1, 1, 9)
	require.ErrorIs(t, err, ErrInvalidArgument)

	var empty *Approximation
	_, err = MeanSquaredError(math.Sin, empty, -1, 1, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func BenchmarkProject(b *testing.B) {

	basis := newTestBasis(b, 11, 1000, -math.Pi, math.Pi)

	b.Run("Coefficients", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := Project(basis, expSqrt, -math.Pi, math.Pi); err != nil {
				b.Fatal(err)
			}
		}
	})
}
