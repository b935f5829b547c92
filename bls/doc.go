// Package bls implements Boneh-Lynn-Shacham signatures over a pairing.
//
// Public keys live in G1 and signatures in G2. A signature on the hashed
// message H is S = x*H, and it is valid under X = x*G1 when
//
//	e(G1, S) == e(X, H)
//
// which [Verify] checks with a single multi-pairing evaluation.
//
// # Hashing
//
// This package never hashes raw messages while signing or verifying.
// Callers map messages to G2 with a [Hasher] and pass the resulting
// [HashedMessage]:
//
//	hasher := bls12381.NewHasher(bls.DSTSignature)
//	h, err := bls.HashMessage(bls12381.New(), hasher, []byte("hello"))
//	if err != nil {
//		return err
//	}
//	sig := bls.Sign(sk, h)
//	err = bls.Verify(sk.PublicKey(), h, sig)
//
// Keeping hash-to-curve behind an interface lets implementations be
// swapped without touching signing or verification.
//
// # Errors
//
// A signature that does not verify yields [ErrInvalidSignature]. That is an
// ordinary outcome, not a failure of the library. Inputs that are the
// identity or lie outside the prime-order subgroup yield
// [keys.ErrInvalidPoint] and are rejected before any pairing is computed.
package bls
