// Package bls12381 provides a BLS12-381 implementation of the
// [group.Pairing] interface for use with BLS and Penumbral signatures.
//
// BLS12-381 is a pairing-friendly Barreto-Lynn-Scott curve with embedding
// degree 12. Its two source groups have the same 255-bit prime order r:
//
//   - G1 is defined over Fp; compressed points are 48 bytes.
//   - G2 is defined over Fp2; compressed points are 96 bytes.
//
// This package wraps the BLS12-381 implementation from gnark-crypto,
// providing types that satisfy [group.Scalar], [group.Point], [group.Group]
// and [group.Pairing]. It also provides [Hasher], a hash-to-curve adapter
// for G2 that delegates to gnark-crypto's RFC 9380 implementation.
//
// # Usage
//
//	c := bls12381.New()
//	sk, err := keys.Random(c, rand.Reader)
//
// # Security
//
// Point decoding accepts compressed encodings only and rejects points that
// are off the curve or outside the prime-order subgroup. Scalar decoding
// rejects values that are not strictly below r. Random scalars are drawn
// with a 384-bit wide reduction, so their distribution is statistically
// indistinguishable from uniform.
package bls12381
