package projection

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/tuneinsight/legendre/quadrature"
)

// PrecisionStats is a struct storing statistics about the pointwise error |want(x) - have(x)|
// of an approximation over a set of evaluation points.
// Precisions are expressed in bits: log2(1/delta).
type PrecisionStats struct {
	MaxDelta    float64
	MinDelta    float64
	MeanDelta   float64
	MedianDelta float64
	STDDelta    float64

	// MSE is the mean of the squared errors over the evaluation points.
	MSE float64

	MinPrecision    float64
	MaxPrecision    float64
	MeanPrecision   float64
	MedianPrecision float64

	Points int
}

func (prec PrecisionStats) String() string {
	return fmt.Sprintf(`
┌─────────┬──────────┬────────────┐
│         │ Log2     │ Delta      │
├─────────┼──────────┼────────────┤
│MIN Prec │ %8.2f │ %10.3e │
│MAX Prec │ %8.2f │ %10.3e │
│AVG Prec │ %8.2f │ %10.3e │
│MED Prec │ %8.2f │ %10.3e │
└─────────┴──────────┴────────────┘
Err STD : %10.3e
MSE     : %10.3e
Points  : %d
`,
		prec.MinPrecision, prec.MaxDelta,
		prec.MaxPrecision, prec.MinDelta,
		prec.MeanPrecision, prec.MeanDelta,
		prec.MedianPrecision, prec.MedianDelta,
		prec.STDDelta,
		prec.MSE,
		prec.Points)
}

// GetPrecisionStats compares want and have at each point of xs.
// Returns an error wrapping [ErrInvalidArgument] if xs is empty or if want or have is nil.
func GetPrecisionStats(want quadrature.Function, have quadrature.Evaluator, xs []float64) (prec PrecisionStats, err error) {

	if len(xs) == 0 {
		return prec, fmt.Errorf("cannot GetPrecisionStats: no evaluation points: %w", ErrInvalidArgument)
	}

	if want == nil || isNil(have) {
		return prec, fmt.Errorf("cannot GetPrecisionStats: function is nil: %w", ErrInvalidArgument)
	}

	deltas := make([]float64, len(xs))
	squares := make([]float64, len(xs))

	for i, x := range xs {
		deltas[i] = math.Abs(want(x) - have.Evaluate(x))
		squares[i] = deltas[i] * deltas[i]
	}

	// stats only fails on empty inputs, which is excluded above.
	prec.MaxDelta, _ = stats.Max(deltas)
	prec.MinDelta, _ = stats.Min(deltas)
	prec.MeanDelta, _ = stats.Mean(deltas)
	prec.MedianDelta, _ = stats.Median(deltas)
	prec.STDDelta, _ = stats.StandardDeviation(deltas)
	prec.MSE, _ = stats.Mean(squares)

	prec.MinPrecision = deltaToPrecision(prec.MaxDelta)
	prec.MaxPrecision = deltaToPrecision(prec.MinDelta)
	prec.MeanPrecision = deltaToPrecision(prec.MeanDelta)
	prec.MedianPrecision = deltaToPrecision(prec.MedianDelta)

	prec.Points = len(xs)

	return
}

// MeanSquaredError returns 1/(b-a) * int_a^b (f(x) - g(x))^2 dx with the composite Simpson rule
// on n subintervals.
func MeanSquaredError(f quadrature.Function, g quadrature.Evaluator, a, b float64, n int) (mse float64, err error) {

	if f == nil || isNil(g) {
		return 0, fmt.Errorf("cannot MeanSquaredError: function is nil: %w", ErrInvalidArgument)
	}

	if mse, err = quadrature.Integrate(a, b, func(x float64) (y float64) {
		y = f(x) - g.Evaluate(x)
		return y * y
	}, n); err != nil {
		return 0, fmt.Errorf("cannot MeanSquaredError: %w", err)
	}

	return mse / (b - a), nil
}

// isNil reports whether e is nil or holds a nil *Approximation.
func isNil(e quadrature.Evaluator) bool {
	if e == nil {
		return true
	}
	approx, ok := e.(*Approximation)
	return ok && approx == nil
}

func deltaToPrecision(delta float64) float64 {
	return math.Log2(1 / delta)
}
