package penumbral

import (
	"errors"
	"fmt"

	"github.com/f3rmion/nubls/bls"
	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// ErrDegenerateSecret is returned when the shared secret of a delegation
// reduces to zero. It happens with negligible probability.
var ErrDegenerateSecret = errors.New("penumbral: degenerate shared secret")

// ResigningKey is held by the proxy. It consists of rk = a/s and the
// designated verification point D = s*G1, where a is the delegator private
// key and s the shared secret of the delegation.
type ResigningKey struct {
	pairing    group.Pairing
	rk         group.Scalar
	designated *keys.PublicKey
	delegator  *keys.PublicKey
}

// DesignatedKey is the delegatee's signing key for one delegation. Its
// scalar is the shared secret s, so its signatures verify under neither
// party's public key.
type DesignatedKey struct {
	sk *keys.PrivateKey
}

// NewResigningKey is run by the delegator with its own private key and the
// delegatee's public key.
func NewResigningKey(delegator *keys.PrivateKey, delegatee *keys.PublicKey) (*ResigningKey, error) {
	if delegator == nil {
		return nil, fmt.Errorf("%w: missing delegator key", keys.ErrInvalidScalar)
	}
	s, err := sharedSecret(delegator, delegatee, delegator.PublicKey(), delegatee)
	if err != nil {
		return nil, err
	}

	p := delegator.Pairing()
	g := p.G1()
	sInv, err := g.NewScalar().Invert(s)
	if err != nil {
		return nil, ErrDegenerateSecret
	}
	return newResigningKey(p, g.NewScalar().Mul(delegator.Scalar(), sInv), g.NewPoint().ScalarMult(s, g.Generator()))
}

func newResigningKey(p group.Pairing, rk group.Scalar, designated group.Point) (*ResigningKey, error) {
	d, err := keys.NewPublicKey(p, designated)
	if err != nil {
		return nil, err
	}
	a, err := keys.NewPublicKey(p, p.G1().NewPoint().ScalarMult(rk, designated))
	if err != nil {
		return nil, err
	}
	return &ResigningKey{pairing: p, rk: rk, designated: d, delegator: a}, nil
}

// NewDesignatedKey is run by the delegatee with its own private key and the
// delegator's public key.
func NewDesignatedKey(delegatee *keys.PrivateKey, delegator *keys.PublicKey) (*DesignatedKey, error) {
	if delegatee == nil {
		return nil, fmt.Errorf("%w: missing delegatee key", keys.ErrInvalidScalar)
	}
	s, err := sharedSecret(delegatee, delegator, delegator, delegatee.PublicKey())
	if err != nil {
		return nil, err
	}
	sk, err := keys.NewPrivateKey(delegatee.Pairing(), s)
	if err != nil {
		return nil, err
	}
	return &DesignatedKey{sk: sk}, nil
}

// Sign produces a designated signature s*H. It is only meaningful as input
// to [Resign].
func (k *DesignatedKey) Sign(h *bls.HashedMessage) *bls.Signature {
	return bls.Sign(k.sk, h)
}

// PublicKey returns D = s*G1, the key designated signatures verify under.
func (k *DesignatedKey) PublicKey() *keys.PublicKey {
	return k.sk.PublicKey()
}

// Bytes returns the 32-byte designated scalar.
func (k *DesignatedKey) Bytes() []byte {
	return k.sk.Bytes()
}

// Equal reports whether k and o hold the same scalar.
func (k *DesignatedKey) Equal(o *DesignatedKey) bool {
	return o != nil && k.sk.Equal(o.sk)
}

// DesignatedKeyFromBytes decodes a designated key encoded with Bytes.
func DesignatedKeyFromBytes(p group.Pairing, data []byte) (*DesignatedKey, error) {
	sk, err := keys.PrivateKeyFromBytes(p, data)
	if err != nil {
		return nil, err
	}
	return &DesignatedKey{sk: sk}, nil
}

// Resign turns a designated signature on h into a signature on h under the
// delegator's public key.
//
// The designated signature is verified first, so a proxy never multiplies
// attacker-chosen points by rk. Failure is reported as
// [bls.ErrInvalidSignature] or [keys.ErrInvalidPoint].
func Resign(rk *ResigningKey, sig *bls.Signature, h *bls.HashedMessage) (*bls.Signature, error) {
	if rk == nil {
		return nil, fmt.Errorf("%w: missing resigning key", keys.ErrInvalidScalar)
	}
	if err := bls.Verify(rk.designated, h, sig); err != nil {
		return nil, fmt.Errorf("penumbral: designated signature: %w", err)
	}
	g2 := rk.pairing.G2()
	return bls.NewSignature(rk.pairing, g2.NewPoint().ScalarMult(rk.rk, sig.Point()))
}

// DesignatedPublicKey returns D = s*G1.
func (rk *ResigningKey) DesignatedPublicKey() *keys.PublicKey {
	return rk.designated
}

// DelegatorPublicKey returns rk*D, the key resigned signatures verify under.
func (rk *ResigningKey) DelegatorPublicKey() *keys.PublicKey {
	return rk.delegator
}

// Bytes returns the 32-byte scalar rk followed by the 48-byte compressed D.
func (rk *ResigningKey) Bytes() []byte {
	return append(rk.rk.Bytes(), rk.designated.Bytes()...)
}

// Equal reports whether rk and o encode the same key.
func (rk *ResigningKey) Equal(o *ResigningKey) bool {
	return o != nil && rk.rk.Equal(o.rk) && rk.designated.Equal(o.designated)
}

// String hides the key material.
func (rk *ResigningKey) String() string {
	return fmt.Sprintf("ResigningKey{Delegator: %s}", rk.delegator)
}

// ResigningKeyFromBytes decodes a resigning key encoded with Bytes.
func ResigningKeyFromBytes(p group.Pairing, data []byte) (*ResigningKey, error) {
	g := p.G1()
	want := g.ScalarSize() + g.PointSize()
	if len(data) != want {
		return nil, fmt.Errorf("%w: resigning key must be %d bytes, got %d", keys.ErrInvalidEncoding, want, len(data))
	}
	scalar, err := keys.DecodeScalar(p, data[:g.ScalarSize()])
	if err != nil {
		return nil, err
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: resigning key must be non-zero", keys.ErrInvalidScalar)
	}
	point, err := keys.DecodePoint(g, data[g.ScalarSize():])
	if err != nil {
		return nil, err
	}
	return newResigningKey(p, scalar, point)
}
