// Package quadrature implements composite Simpson integration of scalar functions on a finite interval.
package quadrature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// ErrInvalidArgument is returned when an interval, a resolution or a sampled input
// does not satisfy the preconditions of the composite Simpson rule.
var ErrInvalidArgument = errors.New("invalid argument")

// Function is a scalar function of a real variable.
type Function func(x float64) (y float64)

// Evaluator is implemented by any object that can be evaluated at a point.
type Evaluator interface {
	Evaluate(x float64) (y float64)
}

// Interval is a struct storing the domain [A, B] of an integration
// and the number of subintervals (Nodes) of its partition.
type Interval struct {
	A, B  float64
	Nodes int
}

// Validate checks that A < B, that both bounds are finite, that Nodes is even and at least 2
// and that the partition points are distinct in floating point.
func (inter Interval) Validate() (err error) {
	if err = checkInterval(inter.A, inter.B, inter.Nodes); err != nil {
		return
	}
	return checkNodes(nodes(inter.A, inter.B, inter.Nodes))
}

// Width returns B-A.
func (inter Interval) Width() float64 {
	return inter.B - inter.A
}

// Step returns the width of one subinterval.
func (inter Interval) Step() float64 {
	return (inter.B - inter.A) / float64(inter.Nodes)
}

// Points returns the Nodes+1 partition points of the interval.
func (inter Interval) Points() ([]float64, error) {
	return Nodes(inter.A, inter.B, inter.Nodes)
}

// Integrate integrates f over the interval, see [Integrate].
func (inter Interval) Integrate(f Function) (float64, error) {
	return Integrate(inter.A, inter.B, f, inter.Nodes)
}

// Nodes returns the n+1 equispaced points a = x_0 < x_1 < ... < x_n = b.
func Nodes(a, b float64, n int) (xs []float64, err error) {

	if err = checkInterval(a, b, n); err != nil {
		return nil, fmt.Errorf("cannot Nodes: %w", err)
	}

	xs = nodes(a, b, n)

	if err = checkNodes(xs); err != nil {
		return nil, fmt.Errorf("cannot Nodes: %w", err)
	}

	return
}

func nodes(a, b float64, n int) (xs []float64) {

	xs = make([]float64, n+1)

	h := (b - a) / float64(n)

	for i := range xs {
		xs[i] = a + float64(i)*h
	}

	// Pins the last node to b to avoid accumulating the rounding of h.
	xs[n] = b

	return
}

// Integrate approximates the integral of f over [a, b] with the composite Simpson rule
// on n equal subintervals (gonum's integrate.Simpsons on the uniform partition):
//
//	h/3 * [f(x_0) + 4*sum_{odd} f(x_i) + 2*sum_{even, interior} f(x_i) + f(x_n)]
//
// with h = (b-a)/n. n must be even and at least 2, and a < b.
// Returns an error wrapping [ErrInvalidArgument] if the preconditions are not met
// or if f is not finite at one of the nodes.
func Integrate(a, b float64, f Function, n int) (res float64, err error) {

	if f == nil {
		return 0, fmt.Errorf("cannot Integrate: integrand is nil: %w", ErrInvalidArgument)
	}

	if err = checkInterval(a, b, n); err != nil {
		return 0, fmt.Errorf("cannot Integrate: %w", err)
	}

	xs := nodes(a, b, n)

	if err = checkNodes(xs); err != nil {
		return 0, fmt.Errorf("cannot Integrate: %w", err)
	}

	fx := make([]float64, len(xs))
	for i, x := range xs {
		if fx[i] = f(x); math.IsNaN(fx[i]) || math.IsInf(fx[i], 0) {
			return 0, fmt.Errorf("cannot Integrate: integrand is not finite at x=%v: %w", x, ErrInvalidArgument)
		}
	}

	return integrate.Simpsons(xs, fx), nil
}

// IntegrateSampled approximates the integral over [a, b] of a function given by its values fx
// at the len(fx) equispaced nodes of [a, b], including both end-points.
// len(fx)-1 is the number of subintervals and must be even and at least 2.
// fx is not modified.
func IntegrateSampled(a, b float64, fx []float64) (res float64, err error) {

	if err = checkInterval(a, b, len(fx)-1); err != nil {
		return 0, fmt.Errorf("cannot IntegrateSampled: %w", err)
	}

	xs := nodes(a, b, len(fx)-1)

	if err = checkNodes(xs); err != nil {
		return 0, fmt.Errorf("cannot IntegrateSampled: %w", err)
	}

	for i := range fx {
		if math.IsNaN(fx[i]) || math.IsInf(fx[i], 0) {
			return 0, fmt.Errorf("cannot IntegrateSampled: sample %d is not finite: %w", i, ErrInvalidArgument)
		}
	}

	return integrate.Simpsons(xs, fx), nil
}

// InnerProduct returns the quadrature of x -> f(x)*g(x) over [a, b] with n subintervals.
func InnerProduct(a, b float64, f, g Function, n int) (float64, error) {

	if f == nil || g == nil {
		return 0, fmt.Errorf("cannot InnerProduct: function is nil: %w", ErrInvalidArgument)
	}

	return Integrate(a, b, func(x float64) (y float64) {
		return f(x) * g(x)
	}, n)
}

// checkNodes rejects partitions whose nodes collapse in floating point,
// which happens when b-a is below the resolution of a and b.
func checkNodes(xs []float64) error {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("interval [%v, %v] is too narrow for %d subintervals: %w", xs[0], xs[len(xs)-1], len(xs)-1, ErrInvalidArgument)
		}
	}
	return nil
}

func checkInterval(a, b float64, n int) error {

	switch {
	case math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0):
		return fmt.Errorf("interval bounds must be finite but are [%v, %v]: %w", a, b, ErrInvalidArgument)
	case a >= b:
		return fmt.Errorf("interval [%v, %v] requires a < b: %w", a, b, ErrInvalidArgument)
	case n < 2:
		return fmt.Errorf("number of subintervals must be at least 2 but is %d: %w", n, ErrInvalidArgument)
	case n&1 == 1:
		return fmt.Errorf("number of subintervals must be even but is %d: %w", n, ErrInvalidArgument)
	}

	return nil
}
