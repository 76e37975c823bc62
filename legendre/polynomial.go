package legendre

import (
	"github.com/google/go-cmp/cmp"
)

// Polynomial is a real polynomial in the monomial basis: Coeffs[i] is the coefficient of x^i.
// The zero value is the zero polynomial.
type Polynomial struct {
	Coeffs []float64
}

// NewPolynomial creates a new polynomial from a copy of the given monomial coefficients.
func NewPolynomial(coeffs []float64) Polynomial {
	Coeffs := make([]float64, len(coeffs))
	copy(Coeffs, coeffs)
	return Polynomial{Coeffs: Coeffs}
}

// NewMonomial returns x^degree.
func NewMonomial(degree int) Polynomial {
	Coeffs := make([]float64, degree+1)
	Coeffs[degree] = 1
	return Polynomial{Coeffs: Coeffs}
}

// Clone returns a deep copy of the polynomial.
func (p Polynomial) Clone() Polynomial {
	return NewPolynomial(p.Coeffs)
}

// Degree returns the degree of the polynomial, -1 for the zero-length polynomial.
// Trailing zero coefficients are counted.
func (p Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// Evaluate returns p(x) using Horner's scheme.
func (p Polynomial) Evaluate(x float64) (y float64) {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = y*x + p.Coeffs[i]
	}
	return
}

// Add sets p to p + scale * q, growing p if q has a larger degree.
func (p *Polynomial) Add(q Polynomial, scale float64) {

	if len(q.Coeffs) > len(p.Coeffs) {
		Coeffs := make([]float64, len(q.Coeffs))
		copy(Coeffs, p.Coeffs)
		p.Coeffs = Coeffs
	}

	for i, c := range q.Coeffs {
		p.Coeffs[i] += scale * c
	}
}

// Scale sets p to scale * p.
func (p *Polynomial) Scale(scale float64) {
	for i := range p.Coeffs {
		p.Coeffs[i] *= scale
	}
}

// Equal returns true if both polynomials have the same coefficients.
func (p Polynomial) Equal(other Polynomial) bool {
	return cmp.Equal(p.Coeffs, other.Coeffs)
}
