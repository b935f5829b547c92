package group

import (
	"io"
)

// Scalar represents an element of the scalar field associated with a
// cryptographic group. Scalars are integers modulo the group order and
// are used as private keys, polynomial coefficients and exponents in
// scalar multiplication.
//
// All arithmetic methods use a mutable receiver pattern: they modify
// the receiver, store the result in it, and return it. This allows for
// efficient method chaining while minimizing memory allocations.
//
// Implementations must ensure all operations produce results in the
// valid range [0, order).
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it.
	// Returns an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// SetUint64 sets the receiver to the small integer v and returns it.
	SetUint64(v uint64) Scalar
	// Bytes returns the canonical fixed-width big-endian encoding.
	Bytes() []byte
	// SetBytes sets the receiver from its canonical encoding and returns it.
	// Returns an error if the length is wrong or the value is not below
	// the group order. No reduction is performed.
	SetBytes(data []byte) (Scalar, error)
	// SetWideBytes interprets data as a big-endian integer of any length
	// and reduces it modulo the group order.
	SetWideBytes(data []byte) Scalar
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is zero.
	IsZero() bool
}

// Point represents an element of a cryptographic group, typically a point
// on an elliptic curve. Points support addition, subtraction, negation,
// and scalar multiplication.
//
// Like [Scalar], all arithmetic methods use a mutable receiver pattern
// for efficiency.
//
// The identity element (zero point, point at infinity) is the additive
// identity: P + Identity = P for all points P.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte
	// SetBytes sets the receiver from a compressed encoding and returns it.
	// Returns an error if the data is malformed, off the curve, or outside
	// the prime-order subgroup.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the identity element.
	IsIdentity() bool
	// InSubgroup reports whether the receiver lies on the curve and in
	// the prime-order subgroup.
	InSubgroup() bool
}

// Group provides factory methods for creating scalars and points,
// access to the group's generator, and utility functions for random
// scalar generation and hashing.
//
// A Group implementation encapsulates all curve-specific details, allowing
// the signature code to be generic over different elliptic curves.
// Points of one group must never be passed to the methods of another;
// IsElement tells them apart.
//
// Example usage:
//
//	g := bls12381.New().G1()
//	scalar, _ := g.RandomScalar(rand.Reader)
//	point := g.NewPoint().ScalarMult(scalar, g.Generator())
type Group interface {
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's base point.
	Generator() Point
	// RandomScalar returns a uniformly random non-zero scalar read from r.
	RandomScalar(r io.Reader) (Scalar, error)
	// IsElement reports whether p is a point of this group and not of
	// another group sharing the same scalar field. It does not check
	// subgroup membership.
	IsElement(p Point) bool
	// Order returns the group order as a big-endian byte slice.
	Order() []byte
	// ScalarSize returns the length of a canonical scalar encoding.
	ScalarSize() int
	// PointSize returns the length of a compressed point encoding.
	PointSize() int
}

// Pairing is a pair of prime-order groups of the same order r together
// with a bilinear map e: G1 x G2 -> GT.
//
// Both groups share one scalar field, so scalars created by either group
// may be used with points of the other.
type Pairing interface {
	// G1 returns the first source group.
	G1() Group
	// G2 returns the second source group.
	G2() Group
	// PairingCheck reports whether e(a[0], b[0]) * ... * e(a[k], b[k]) == 1.
	// Points in a must belong to G1 and points in b to G2.
	PairingCheck(a, b []Point) (bool, error)
}
