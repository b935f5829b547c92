package threshold

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// parallelCutoff is the fragment count from which evaluation is spread
// over a worker pool.
const parallelCutoff = 64

// randomPolynomial returns t coefficients with coeffs[0] = secret and the
// remaining t-1 drawn from rng.
func randomPolynomial(g group.Group, secret group.Scalar, t int, rng io.Reader) ([]group.Scalar, error) {
	coeffs := make([]group.Scalar, t)
	coeffs[0] = g.NewScalar().Set(secret)
	for i := 1; i < t; i++ {
		c, err := g.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("%w: polynomial coefficient: %v", keys.ErrRandomness, err)
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

// evalPolynomial evaluates the polynomial at x using Horner's method.
func evalPolynomial(g group.Group, coeffs []group.Scalar, x group.Scalar) group.Scalar {
	result := g.NewScalar().Set(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = g.NewScalar().Mul(result, x)
		result = g.NewScalar().Add(result, coeffs[i])
	}
	return result
}

// evalAt evaluates the polynomial at each of the given indices. Large
// index sets are split into one contiguous chunk per available CPU.
// Index 0 is rejected since f(0) is the secret.
func evalAt(g group.Group, coeffs []group.Scalar, indices []uint16) ([]group.Scalar, error) {
	n := len(indices)
	shares := make([]group.Scalar, n)
	eval := func(from, to int) error {
		for i := from; i < to; i++ {
			if indices[i] == 0 {
				return fmt.Errorf("%w: position %d", ErrInvalidIndex, i)
			}
			x := g.NewScalar().SetUint64(uint64(indices[i]))
			shares[i] = evalPolynomial(g, coeffs, x)
		}
		return nil
	}
	if n < parallelCutoff {
		if err := eval(0, n); err != nil {
			return nil, err
		}
		return shares, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	var eg errgroup.Group
	eg.SetLimit(workers)
	for from := 0; from < n; from += chunk {
		to := min(from+chunk, n)
		eg.Go(func() error {
			return eval(from, to)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return shares, nil
}

// lagrangeCoefficient returns the Lagrange basis polynomial for index i
// over the given indices, evaluated at x:
//
//	prod_{j != i} (x - x_j) / (x_i - x_j)
//
// The indices must be distinct.
func lagrangeCoefficient(g group.Group, i uint16, indices []uint16, x group.Scalar) (group.Scalar, error) {
	xi := g.NewScalar().SetUint64(uint64(i))
	num := g.NewScalar().SetUint64(1)
	den := g.NewScalar().SetUint64(1)

	for _, j := range indices {
		if j == i {
			continue
		}
		xj := g.NewScalar().SetUint64(uint64(j))
		num = g.NewScalar().Mul(num, g.NewScalar().Sub(x, xj))
		den = g.NewScalar().Mul(den, g.NewScalar().Sub(xi, xj))
	}

	denInv, err := g.NewScalar().Invert(den)
	if err != nil {
		return nil, fmt.Errorf("%w: lagrange denominator is zero", ErrDuplicateIndex)
	}
	return g.NewScalar().Mul(num, denInv), nil
}

// interpolate evaluates at x the unique polynomial of degree len(indices)-1
// through the points (indices[k], values[k]).
func interpolate(g group.Group, indices []uint16, values []group.Scalar, x group.Scalar) (group.Scalar, error) {
	result := g.NewScalar()
	for k, i := range indices {
		lambda, err := lagrangeCoefficient(g, i, indices, x)
		if err != nil {
			return nil, err
		}
		result = g.NewScalar().Add(result, g.NewScalar().Mul(lambda, values[k]))
	}
	return result, nil
}

// interpolatePoints is interpolate in the exponent: it evaluates at x the
// polynomial whose values are only known as points values[k] = f(i_k)*P.
func interpolatePoints(g group.Group, indices []uint16, values []group.Point, x group.Scalar) (group.Point, error) {
	result := g.NewPoint()
	for k, i := range indices {
		lambda, err := lagrangeCoefficient(g, i, indices, x)
		if err != nil {
			return nil, err
		}
		result = g.NewPoint().Add(result, g.NewPoint().ScalarMult(lambda, values[k]))
	}
	return result, nil
}

// selectDistinct collapses exact duplicates and returns the positions of
// the first occurrence of every distinct index, in input order. Two entries
// with the same index but different values are an error, as is index zero.
func selectDistinct(n int, index func(int) uint16, same func(a, b int) bool) ([]int, error) {
	seen := make(map[uint16]int, n)
	var picked []int
	for k := 0; k < n; k++ {
		i := index(k)
		if i == 0 {
			return nil, ErrInvalidIndex
		}
		if prev, ok := seen[i]; ok {
			if !same(prev, k) {
				return nil, fmt.Errorf("%w: index %d", ErrDuplicateIndex, i)
			}
			continue
		}
		seen[i] = k
		picked = append(picked, k)
	}
	return picked, nil
}
