// Package penumbral implements proxy re-signature on top of package bls.
//
// A delegator with key pair (a, A) lets a delegatee with key pair (b, B)
// sign on its behalf through a proxy that never learns a or b. Both parties
// derive the same shared secret
//
//	s = HKDF-SHA256(a*B = b*A, salt = A || B)
//
// reduced modulo the group order. From it:
//
//   - the delegatee holds the [DesignatedKey] s and signs sigB = s*H,
//   - the delegator hands the proxy the [ResigningKey] rk = a/s together
//     with D = s*G1,
//   - the proxy checks sigB under D and returns rk*sigB = a*H with [Resign].
//
// The result verifies with plain bls.Verify under A:
//
//	rk, _ := penumbral.NewResigningKey(alice, bob.PublicKey())
//	dk, _ := penumbral.NewDesignatedKey(bob, alice.PublicKey())
//	sigA, err := penumbral.Resign(rk, dk.Sign(h), h)
//	err = bls.Verify(alice.PublicKey(), h, sigA)
//
// The proxy sees rk and D with rk*D = A. Recovering a or s from them is a
// discrete logarithm, and producing a*H' for a new message needs s*H',
// which is a computational Diffie-Hellman instance. The delegator learns s,
// but s is the output of a one-way KDF over b*A and carries no information
// about b. Designated signatures verify under neither A nor B.
//
// Whether a re-signature should be produced is left to the caller.
package penumbral
