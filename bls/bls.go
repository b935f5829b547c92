package bls

import (
	"errors"
	"fmt"

	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// ErrInvalidSignature is returned when a well-formed signature does not
// verify. It is an expected outcome that callers branch on.
var ErrInvalidSignature = errors.New("invalid signature")

// Signature is a G2 point x*H(m).
type Signature struct {
	point group.Point
}

// NewSignature wraps a G2 point of p. G1 points, the identity and points
// outside the subgroup are rejected with [keys.ErrInvalidPoint].
func NewSignature(p group.Pairing, point group.Point) (*Signature, error) {
	if err := keys.ValidatePoint(p.G2(), point); err != nil {
		return nil, err
	}
	return &Signature{point: point}, nil
}

// SignatureFromBytes decodes a 96-byte compressed G2 signature.
func SignatureFromBytes(p group.Pairing, data []byte) (*Signature, error) {
	point, err := keys.DecodePoint(p.G2(), data)
	if err != nil {
		return nil, err
	}
	return &Signature{point: point}, nil
}

// Point returns the underlying G2 point. Callers must not modify it.
func (s *Signature) Point() group.Point {
	return s.point
}

// Bytes returns the compressed encoding of the signature.
func (s *Signature) Bytes() []byte {
	return s.point.Bytes()
}

// Equal reports whether s and o are the same point.
func (s *Signature) Equal(o *Signature) bool {
	return o != nil && s.point.Equal(o.point)
}

// String returns the hex encoding of the signature.
func (s *Signature) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}

// Sign returns x*H for the private key x and hashed message H.
func Sign(sk *keys.PrivateKey, h *HashedMessage) *Signature {
	g2 := sk.Pairing().G2()
	return &Signature{point: g2.NewPoint().ScalarMult(sk.Scalar(), h.point)}
}

// Verify checks e(G1, sig) == e(pk, H). It returns nil if the signature is
// valid, [ErrInvalidSignature] if it is not, and [keys.ErrInvalidPoint] if
// any input is missing or malformed.
func Verify(pk *keys.PublicKey, h *HashedMessage, sig *Signature) error {
	if pk == nil || h == nil || sig == nil {
		return fmt.Errorf("%w: missing verification input", keys.ErrInvalidPoint)
	}
	p := pk.Pairing()
	if err := keys.ValidatePoint(p.G2(), sig.point); err != nil {
		return err
	}
	if err := keys.ValidatePoint(p.G2(), h.point); err != nil {
		return err
	}

	// e(-G1, sig) * e(X, H) == 1
	g1 := p.G1()
	negGen := g1.NewPoint().Negate(g1.Generator())
	ok, err := p.PairingCheck([]group.Point{negGen, pk.Point()}, []group.Point{sig.point, h.point})
	if err != nil {
		return fmt.Errorf("%w: %v", keys.ErrInvalidPoint, err)
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

// VerifyBytes decodes sig and verifies it. A signature that cannot be
// decoded is reported as [ErrInvalidSignature] joined with the decoding
// error, so both errors.Is(err, ErrInvalidSignature) and the specific
// decoding error match.
func VerifyBytes(pk *keys.PublicKey, h *HashedMessage, sig []byte) error {
	if pk == nil {
		return fmt.Errorf("%w: missing public key", keys.ErrInvalidPoint)
	}
	s, err := SignatureFromBytes(pk.Pairing(), sig)
	if err != nil {
		return errors.Join(ErrInvalidSignature, err)
	}
	return Verify(pk, h, s)
}
