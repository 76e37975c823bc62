// Package projection implements the orthogonal projection of scalar functions onto an orthonormal
// polynomial basis and the reconstruction of the resulting approximation.
package projection

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tuneinsight/legendre/legendre"
	"github.com/tuneinsight/legendre/quadrature"
	"github.com/tuneinsight/legendre/utils"
)

// ErrInvalidArgument is the same sentinel as [quadrature.ErrInvalidArgument].
var ErrInvalidArgument = quadrature.ErrInvalidArgument

// Approximation is the function x -> sum_i c_i * P_i(x), where P_i are the polynomials of an
// orthonormal basis and c_i the projection coefficients of a target function.
// It holds its own copy of the coefficients and a reference to the (immutable) basis.
type Approximation struct {
	coeffs []float64
	basis  *legendre.Basis
}

// NewApproximation returns the approximation sum_i coeffs[i] * P_i.
// coeffs is copied and must have the length of the basis.
func NewApproximation(basis *legendre.Basis, coeffs []float64) (*Approximation, error) {

	if basis.Len() == 0 {
		return nil, fmt.Errorf("cannot NewApproximation: basis is empty: %w", ErrInvalidArgument)
	}

	if len(coeffs) != basis.Len() {
		return nil, fmt.Errorf("cannot NewApproximation: len(coeffs)=%d != basis.Len()=%d: %w", len(coeffs), basis.Len(), ErrInvalidArgument)
	}

	c := make([]float64, len(coeffs))
	copy(c, coeffs)

	return &Approximation{coeffs: c, basis: basis}, nil
}

// Project computes the coefficients c_i = <f, P_i> of f on the basis, with the quadrature resolution
// the basis was built with, and returns the approximation x -> sum_i c_i * P_i(x).
// [a, b] is the integration domain of the coefficients and is usually the domain of the basis.
// f must be safe for concurrent use, see [Coefficients].
func Project(basis *legendre.Basis, f quadrature.Function, a, b float64) (*Approximation, error) {

	if basis.Len() == 0 {
		return nil, fmt.Errorf("cannot Project: basis is empty: %w", ErrInvalidArgument)
	}

	return ProjectWithResolution(basis, f, a, b, basis.N())
}

// ProjectWithResolution is as [Project] with a caller-supplied quadrature resolution n.
// A resolution different from the one of the basis mixes two discretization errors.
func ProjectWithResolution(basis *legendre.Basis, f quadrature.Function, a, b float64, n int) (*Approximation, error) {

	coeffs, err := Coefficients(basis, f, a, b, n)
	if err != nil {
		return nil, fmt.Errorf("cannot Project: %w", err)
	}

	return &Approximation{coeffs: coeffs, basis: basis}, nil
}

// Coefficients returns the projection coefficients c_i = int_a^b f(x)P_i(x) dx, approximated with
// the composite Simpson rule on n subintervals.
// The coefficients are computed concurrently, f must therefore be safe for concurrent use.
// The result does not depend on the scheduling.
func Coefficients(basis *legendre.Basis, f quadrature.Function, a, b float64, n int) (coeffs []float64, err error) {

	switch {
	case basis.Len() == 0:
		return nil, fmt.Errorf("cannot Coefficients: basis is empty: %w", ErrInvalidArgument)
	case f == nil:
		return nil, fmt.Errorf("cannot Coefficients: function is nil: %w", ErrInvalidArgument)
	}

	// Fails before spawning any work on invalid domains.
	if err = (quadrature.Interval{A: a, B: b, Nodes: n}).Validate(); err != nil {
		return nil, fmt.Errorf("cannot Coefficients: %w", err)
	}

	coeffs = make([]float64, basis.Len())

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range coeffs {
		i := i
		g.Go(func() (err error) {
			P := basis.At(i)
			if coeffs[i], err = quadrature.InnerProduct(a, b, f, P.Evaluate, n); err != nil {
				return fmt.Errorf("coefficient %d: %w", i, err)
			}
			return
		})
	}

	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("cannot Coefficients: %w", err)
	}

	return
}

// Evaluate returns sum_i c_i * P_i(x).
func (approx *Approximation) Evaluate(x float64) (y float64) {
	for i, c := range approx.coeffs {
		y += c * approx.basis.Evaluate(i, x)
	}
	return
}

// Coefficients returns a copy of the projection coefficients.
func (approx *Approximation) Coefficients() (coeffs []float64) {
	coeffs = make([]float64, len(approx.coeffs))
	copy(coeffs, approx.coeffs)
	return
}

// Basis returns the basis the approximation is expressed in.
func (approx *Approximation) Basis() *legendre.Basis {
	return approx.basis
}

// Monomial returns the approximation as a single polynomial in the monomial basis.
func (approx *Approximation) Monomial() (p legendre.Polynomial) {
	for i, c := range approx.coeffs {
		p.Add(approx.basis.At(i), c)
	}
	return
}

// Sample evaluates the approximation at each point of xs.
func (approx *Approximation) Sample(xs []float64) []float64 {
	return utils.Apply(xs, approx.Evaluate)
}
