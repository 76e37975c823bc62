/*
Package legendre approximates scalar functions on a closed interval [a, b] by their orthogonal projection
onto an orthonormal polynomial basis.

The basis is obtained by modified Gram-Schmidt orthogonalization of the monomials 1, x, ..., x^(count-1)
under the inner product <f, g> = int_a^b f(x)g(x) dx, itself evaluated with the composite Simpson rule.
On [-1, 1] it coincides, up to quadrature error, with the normalized Legendre polynomials.

The library is split into three packages:
  - quadrature: composite Simpson integration, partition nodes and inner products.
  - legendre: polynomials, basis parameters, basis construction and a concurrent basis cache.
  - projection: projection coefficients, reconstructed approximations and precision statistics.

The command line driver lives in cmd/legendre.
*/
package legendre
