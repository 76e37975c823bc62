package legendre

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/zeebo/blake3"

	"github.com/tuneinsight/legendre/quadrature"
)

// DefaultTolerance is the relative residual norm ||q_i|| / ||x^i|| under which a Gram-Schmidt
// candidate is considered linearly dependent on the previous basis elements. Its square root
// bounds the deviation of the Gram matrix of the basis from the identity.
const DefaultTolerance = 1e-10

var (
	// ErrInvalidArgument is returned for malformed parameters. It is the same
	// sentinel as [quadrature.ErrInvalidArgument].
	ErrInvalidArgument = quadrature.ErrInvalidArgument

	// ErrDegenerateBasis is returned when the Gram-Schmidt process cannot produce an orthonormal
	// family in double precision, see [NewBasis].
	ErrDegenerateBasis = errors.New("degenerate basis")
)

// ParametersLiteral is a literal representation of the parameters of an orthonormal basis.
// It has public fields and is used to express unchecked user-defined parameters literally.
// Tolerance is optional and set to [DefaultTolerance] if zero, otherwise it must be in (0, 1).
type ParametersLiteral struct {
	Count     int     `json:"Count" yaml:"count"`
	N         int     `json:"N" yaml:"n"`
	A         float64 `json:"A" yaml:"a"`
	B         float64 `json:"B" yaml:"b"`
	Tolerance float64 `json:"Tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// Parameters represents a set of validated parameters of an orthonormal basis:
// its size, its domain and the quadrature resolution defining the inner product.
type Parameters struct {
	count     int
	interval  quadrature.Interval
	tolerance float64
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a [ParametersLiteral] specification.
// It returns an error wrapping [ErrInvalidArgument] if the literal is not valid.
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	if paramDef.Count < 1 {
		return params, fmt.Errorf("cannot NewParametersFromLiteral: Count must be at least 1 but is %d: %w", paramDef.Count, ErrInvalidArgument)
	}

	interval := quadrature.Interval{A: positiveZero(paramDef.A), B: positiveZero(paramDef.B), Nodes: paramDef.N}

	if err = interval.Validate(); err != nil {
		return params, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}

	tolerance := paramDef.Tolerance

	switch {
	case tolerance == 0:
		tolerance = DefaultTolerance
	case !(tolerance > 0 && tolerance < 1):
		return params, fmt.Errorf("cannot NewParametersFromLiteral: Tolerance must be in (0, 1) but is %v: %w", tolerance, ErrInvalidArgument)
	}

	return Parameters{
		count:     paramDef.Count,
		interval:  interval,
		tolerance: tolerance,
	}, nil
}

// positiveZero maps -0 to 0, so that equal bounds have the same JSON form and digest.
func positiveZero(x float64) float64 {
	if x == 0 {
		return 0
	}
	return x
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Count:     p.count,
		N:         p.interval.Nodes,
		A:         p.interval.A,
		B:         p.interval.B,
		Tolerance: p.tolerance,
	}
}

// Count returns the number of basis functions.
func (p Parameters) Count() int {
	return p.count
}

// N returns the number of subintervals of the quadrature.
func (p Parameters) N() int {
	return p.interval.Nodes
}

// A returns the lower bound of the domain.
func (p Parameters) A() float64 {
	return p.interval.A
}

// B returns the upper bound of the domain.
func (p Parameters) B() float64 {
	return p.interval.B
}

// Interval returns the domain and resolution of the quadrature.
func (p Parameters) Interval() quadrature.Interval {
	return p.interval
}

// Tolerance returns the degeneracy threshold of the relative Gram-Schmidt residual norms.
func (p Parameters) Tolerance() float64 {
	return p.tolerance
}

// Equal returns true if the receiver and other are the same parameter set.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// Digest returns a blake3 digest of the JSON representation of the parameters.
// Parameter sets built from the same literal have the same digest.
func (p Parameters) Digest() (digest [32]byte) {
	// Marshalling a struct of ints and finite floats cannot fail.
	data, _ := p.MarshalJSON()
	return blake3.Sum256(data)
}

// String returns a short human readable representation of the parameters.
func (p Parameters) String() string {
	return fmt.Sprintf("Count=%d/N=%d/[%v, %v]/Tol=%v", p.count, p.interval.Nodes, p.interval.A, p.interval.B, p.tolerance)
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
