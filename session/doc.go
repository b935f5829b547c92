// Package session provides a high-level API over the bls, threshold and
// penumbral packages. Every type here takes raw messages and hashes them
// with a [bls.Hasher] fixed at construction, so callers never handle
// curve points directly.
//
// For full control over hashing and encodings, use the lower-level
// packages directly.
//
// # Signing
//
//	hasher := bls12381.NewHasher(bls.DSTSignature)
//	signer, err := session.NewSigner(sk, hasher)
//	if err != nil {
//		return err
//	}
//	sig, err := signer.Sign(message)
//	err = session.Verify(hasher, signer.PublicKey(), message, sig)
//
// # Threshold Signing
//
// Each holder of a key fragment runs a [Participant] and sends its
// signature fragment to a coordinator, which collects them in a
// [SigningSession]:
//
//	sess, err := session.NewSigningSession(hasher, groupKey, commitments, t, message)
//	if err != nil {
//		return err
//	}
//
//	// For each fragment received from a participant
//	if err := sess.Add(fragment); err != nil {
//		// reject the sender
//	}
//
//	// Once sess.Ready()
//	sig, err := sess.Finalize()
//
// A SigningSession produces exactly one signature. [QuickSign] does the
// same in one call when all fragments are local.
//
// # Delegation
//
// A [Delegator] grants a [Proxy] for one delegatee. The delegatee signs
// with a [DesignatedSigner], and the proxy turns those signatures into
// signatures under the delegator's key:
//
//	proxy, err := alice.Grant(bob.PublicKey())
//	signer, err := session.NewDesignatedSigner(bobKey, alice.PublicKey(), hasher)
//	designated, err := signer.Sign(message)
//	sig, err := proxy.Resign(message, designated)
//
// The package does not decide whether a resignature should be produced.
//
// # Transport Agnostic
//
// This package does not handle network communication. You are responsible
// for distributing fragments, resigning keys and signatures between
// parties using your preferred transport. Encodings are provided by the
// Bytes methods and FromBytes functions of the lower-level packages.
package session
