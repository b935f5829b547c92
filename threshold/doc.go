// Package threshold implements Shamir secret sharing of BLS private keys
// and threshold BLS signing.
//
// # Splitting and Recovery
//
// [Split] hides the private key x as the constant term of a random
// polynomial f of degree t-1 over the scalar field and hands out the
// evaluations f(1), ..., f(n) as [KeyFragment] values:
//
//	fragments, err := threshold.Split(sk, 3, 5, rand.Reader)
//
// Any t fragments determine f, so [Recover] rebuilds x = f(0) by Lagrange
// interpolation. Fewer than t fragments are consistent with every possible
// x: for any candidate secret there is exactly one polynomial of degree t-1
// through the known points and that candidate, and all of them are equally
// likely because the non-constant coefficients are uniform.
//
//	sk, err := threshold.Recover(fragments[:3], 3)
//
// Recover is strict. Fewer than t distinct fragments yield
// [ErrInsufficientFragments], two fragments with the same index and
// different shares yield [ErrDuplicateIndex], and extra fragments that do
// not lie on the interpolated polynomial yield [ErrInconsistentFragments].
// [RecoverVerified] additionally compares the result against a known
// public key.
//
// # Verifiable Dealing
//
// [SplitVerifiable] also returns Feldman commitments to the polynomial
// coefficients, with which every fragment holder can check its fragment
// using [VerifyFragment] without learning anything beyond the public key.
//
// # Threshold Signing
//
// A fragment can sign like a private key with [SignFragment]. Any t
// signature fragments on the same hashed message are combined by
// [AssembleSignature] into the signature x*H, which verifies under the
// original public key with bls.Verify. The private key itself is never
// reconstructed.
//
// # Encodings
//
// Fragments encode as a 2-byte big-endian index followed by the fixed-width
// share, and signature fragments as the index followed by the compressed
// signature.
package threshold
