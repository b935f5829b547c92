// Package keys implements BLS private and public keys.
//
// A [PrivateKey] is a non-zero scalar x modulo the group order r and a
// [PublicKey] is the point x*G in G1. Keys are immutable values; every
// method that exposes internal state returns a copy.
//
// Randomness is never taken from a global source. [Random] reads from the
// io.Reader it is given, which makes key generation reproducible in tests
// and lets callers choose the entropy source in production:
//
//	sk, err := keys.Random(bls12381.New(), rand.Reader)
//	if err != nil {
//		return err
//	}
//	pk := sk.PublicKey()
//
// # Encodings
//
// Private keys are 32-byte big-endian integers. Public keys use the
// 48-byte compressed G1 encoding. Decoding reports [ErrInvalidEncoding] for
// wrong lengths and [ErrInvalidScalar] or [ErrInvalidPoint] for values that
// are out of range, off the curve, outside the subgroup, or the identity.
package keys
