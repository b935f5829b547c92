// Package group defines abstract interfaces for the pairing-friendly
// groups used by the BLS and Penumbral signature code.
//
// This package provides four core interfaces that abstract over the
// mathematical operations needed for pairing-based signatures:
//
//   - [Scalar]: Elements of the scalar field (integers modulo the group order)
//   - [Point]: Elements of a group (points on an elliptic curve)
//   - [Group]: Factory and utility methods for creating scalars and points
//   - [Pairing]: Two groups of equal prime order joined by a bilinear map
//
// # Design Philosophy
//
// The interfaces use a mutable receiver pattern for efficiency. Operations
// like Add, Mul, and ScalarMult set the receiver to the result and return it,
// allowing method chaining while minimizing allocations:
//
//	// Compute a + b*c
//	result := g.NewScalar().Mul(b, c)
//	result = g.NewScalar().Add(a, result)
//
// All operations that can fail return errors rather than panicking, making
// error handling explicit and predictable.
//
// # Implementing a Pairing
//
// To implement these interfaces for a new curve:
//
//  1. Create a Scalar type that wraps your field element and implements [Scalar]
//  2. Create one Point type per source group, each implementing [Point]
//  3. Create a Group per source group and a [Pairing] tying them together
//
// See the bls12381 package for a complete implementation.
//
// # Security Considerations
//
// Implementations must ensure:
//
//   - Scalar arithmetic is performed modulo the group order
//   - Scalar decoding rejects non-canonical values instead of reducing them
//   - Random scalars are uniform and read only from the supplied source
//   - Invalid curve points and points outside the prime-order subgroup
//     are rejected in SetBytes
package group
