// Package legendre implements the construction of orthonormal polynomial bases on a finite interval
// by Gram-Schmidt orthogonalization of the monomials under a Simpson quadrature inner product.
// On a symmetric interval the resulting basis is the family of normalized Legendre polynomials.
package legendre

import (
	"fmt"
	"math"

	"github.com/tuneinsight/legendre/quadrature"
	"github.com/tuneinsight/legendre/utils"
)

// Basis is an ordered family of polynomials P_0, ..., P_{Count-1} that are pairwise orthonormal
// under the inner product <f, g> = int_a^b f(x)g(x) dx approximated by the composite Simpson rule
// with N subintervals. P_i has degree i.
// A Basis is immutable once built.
type Basis struct {
	params Parameters
	polys  []Polynomial
}

// BuildLegendreBasis returns the orthonormal basis of size count on [a, b] with a quadrature of
// resolution n, using [DefaultTolerance] as degeneracy threshold.
// See [NewBasis].
func BuildLegendreBasis(count, n int, a, b float64) (*Basis, error) {

	params, err := NewParametersFromLiteral(ParametersLiteral{
		Count: count,
		N:     n,
		A:     a,
		B:     b,
	})

	if err != nil {
		return nil, fmt.Errorf("cannot BuildLegendreBasis: %w", err)
	}

	return NewBasis(params)
}

// NewBasis orthonormalizes the monomials 1, x, ..., x^{Count-1} with the modified Gram-Schmidt process:
//
//	q_i = x^i
//	q_i = q_i - <q_i, P_j> P_j for j = 0, ..., i-1
//	P_i = q_i / sqrt(<q_i, q_i>)
//
// Returns an error wrapping [ErrDegenerateBasis] if
//   - the relative residual ||q_i|| / ||x^i|| is below the tolerance of the parameters or is not finite, or
//   - max_j |<P_i, P_j> - delta_ij| exceeds the square root of the tolerance.
//
// The first case happens when N is too small for the discrete inner product to separate polynomials
// of degree Count-1, the second when cancellation in double precision destroys the residuals, which
// occurs for large Count on intervals far from the origin or wide compared to [-1, 1].
func NewBasis(params Parameters) (basis *Basis, err error) {

	interval := params.Interval()
	tolerance := params.Tolerance()

	inner := func(p, q Polynomial) (float64, error) {
		return quadrature.InnerProduct(interval.A, interval.B, p.Evaluate, q.Evaluate, interval.Nodes)
	}

	polys := make([]Polynomial, params.Count())

	for i := range polys {

		q := NewMonomial(i)

		var ref float64
		if ref, err = inner(q, q); err != nil {
			return nil, degenerate(i, err)
		}

		for j := 0; j < i; j++ {

			var c float64
			if c, err = inner(q, polys[j]); err != nil {
				return nil, degenerate(i, err)
			}

			q.Add(polys[j], -c)
		}

		var norm float64
		if norm, err = inner(q, q); err != nil {
			return nil, degenerate(i, err)
		}

		norm = math.Sqrt(norm)

		if residual := norm / math.Sqrt(ref); math.IsNaN(residual) || residual < tolerance {
			return nil, fmt.Errorf("cannot NewBasis: relative residual norm of P_%d is %v (tolerance %v): %w", i, residual, tolerance, ErrDegenerateBasis)
		}

		q.Scale(1 / norm)

		polys[i] = q

		row := make([]float64, i+1)
		for j := range row {
			if row[j], err = inner(polys[i], polys[j]); err != nil {
				return nil, degenerate(i, err)
			}
		}

		if maxErr := utils.MaxAbsDiff(row, identityRow(i+1, i)); math.IsNaN(maxErr) || maxErr > math.Sqrt(tolerance) {
			return nil, fmt.Errorf("cannot NewBasis: P_%d is not orthonormal to the previous polynomials, error %v (tolerance %v): %w", i, maxErr, math.Sqrt(tolerance), ErrDegenerateBasis)
		}
	}

	return &Basis{params: params, polys: polys}, nil
}

// Parameters are validated, so a quadrature failure can only come from non-finite samples.
func degenerate(i int, err error) error {
	return fmt.Errorf("cannot NewBasis: P_%d: %v: %w", i, err, ErrDegenerateBasis)
}

// Parameters returns the parameters of the basis.
func (b *Basis) Parameters() Parameters {
	return b.params
}

// Interval returns the domain and quadrature resolution of the basis.
func (b *Basis) Interval() quadrature.Interval {
	return b.params.Interval()
}

// N returns the quadrature resolution of the basis.
func (b *Basis) N() int {
	return b.params.N()
}

// Len returns the number of polynomials of the basis.
func (b *Basis) Len() int {
	if b == nil {
		return 0
	}
	return len(b.polys)
}

// At returns a copy of the i-th polynomial of the basis.
// Panics if i is out of range.
func (b *Basis) At(i int) Polynomial {
	if i < 0 || i >= len(b.polys) {
		panic(fmt.Sprintf("cannot At: index %d out of range [0, %d)", i, len(b.polys)))
	}
	return b.polys[i].Clone()
}

// Evaluate returns P_i(x).
// Panics if i is out of range.
func (b *Basis) Evaluate(i int, x float64) float64 {
	if i < 0 || i >= len(b.polys) {
		panic(fmt.Sprintf("cannot Evaluate: index %d out of range [0, %d)", i, len(b.polys)))
	}
	return b.polys[i].Evaluate(x)
}

// Polynomials returns a deep copy of the polynomials of the basis.
func (b *Basis) Polynomials() (polys []Polynomial) {
	polys = make([]Polynomial, len(b.polys))
	for i := range polys {
		polys[i] = b.polys[i].Clone()
	}
	return
}

// Gram returns the matrix G[i][j] = <P_i, P_j> evaluated with the quadrature of the basis.
func (b *Basis) Gram() (G [][]float64, err error) {

	interval := b.Interval()

	G = make([][]float64, len(b.polys))
	for i := range G {
		G[i] = make([]float64, len(b.polys))
	}

	for i := range b.polys {
		for j := 0; j <= i; j++ {
			if G[i][j], err = quadrature.InnerProduct(interval.A, interval.B, b.polys[i].Evaluate, b.polys[j].Evaluate, interval.Nodes); err != nil {
				return nil, fmt.Errorf("cannot Gram: %w", err)
			}
			G[j][i] = G[i][j]
		}
	}

	return
}

// OrthonormalityError returns max_{i,j} |<P_i, P_j> - delta_ij|.
func (b *Basis) OrthonormalityError() (maxErr float64, err error) {

	var G [][]float64
	if G, err = b.Gram(); err != nil {
		return
	}

	for i := range G {
		maxErr = math.Max(maxErr, utils.MaxAbsDiff(G[i], identityRow(len(G), i)))
	}

	return
}

// identityRow returns the i-th row of the n x n identity matrix.
func identityRow(n, i int) (row []float64) {
	row = make([]float64, n)
	row[i] = 1
	return
}
