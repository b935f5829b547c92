package penumbral

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

const (
	kdfInfo = "NUBLS-PENUMBRAL-V01-SHARED-SECRET"
	// Read 48 bytes from the KDF so the reduction mod r is statistically
	// uniform.
	kdfOutput = 48
)

// sharedSecret derives s = KDF(x*Peer, A||B) where A is the delegator and B
// the delegatee public key. The delegator calls it with (a, B) and the
// delegatee with (b, A); both arrive at the same s because a*B = b*A.
func sharedSecret(own *keys.PrivateKey, peer, delegator, delegatee *keys.PublicKey) (group.Scalar, error) {
	if own == nil || peer == nil {
		return nil, fmt.Errorf("%w: missing key", keys.ErrInvalidPoint)
	}
	g := own.Pairing().G1()
	dh := g.NewPoint().ScalarMult(own.Scalar(), peer.Point())

	salt := append(delegator.Bytes(), delegatee.Bytes()...)
	kdf := hkdf.New(sha256.New, dh.Bytes(), salt, []byte(kdfInfo))

	buf := make([]byte, kdfOutput)
	if _, err := io.ReadFull(kdf, buf); err != nil {
		return nil, fmt.Errorf("penumbral: shared secret: %w", err)
	}
	s := g.NewScalar().SetWideBytes(buf)
	if s.IsZero() {
		return nil, ErrDegenerateSecret
	}
	return s, nil
}
