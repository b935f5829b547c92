package keys

import (
	"errors"
	"fmt"
	"io"

	"github.com/f3rmion/nubls/group"
)

var (
	// ErrInvalidEncoding is returned when an encoding has the wrong length
	// or format.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrInvalidScalar is returned for scalars that are out of range or zero
	// where a private key is expected.
	ErrInvalidScalar = errors.New("invalid scalar")
	// ErrInvalidPoint is returned for points that are off the curve, outside
	// the prime-order subgroup, or the identity.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrRandomness is returned when the random source fails. Callers must
	// treat it as fatal for the operation at hand.
	ErrRandomness = errors.New("randomness failure")
)

// PrivateKey is a non-zero scalar x. It is immutable once constructed.
type PrivateKey struct {
	pairing group.Pairing
	x       group.Scalar
}

// PublicKey is the G1 point X = x*G. It is immutable once constructed.
type PublicKey struct {
	pairing group.Pairing
	point   group.Point
}

// Random samples a private key uniformly from [1, r) using rng.
//
// rng must be safe for concurrent use if it is shared between goroutines;
// crypto/rand.Reader is. A failing rng is reported as [ErrRandomness].
func Random(p group.Pairing, rng io.Reader) (*PrivateKey, error) {
	x, err := p.G1().RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return &PrivateKey{pairing: p, x: x}, nil
}

// NewPrivateKey wraps the scalar x. It returns [ErrInvalidScalar] if x is zero.
// The scalar is copied.
func NewPrivateKey(p group.Pairing, x group.Scalar) (*PrivateKey, error) {
	if x == nil || x.IsZero() {
		return nil, fmt.Errorf("%w: private key must be non-zero", ErrInvalidScalar)
	}
	return &PrivateKey{pairing: p, x: p.G1().NewScalar().Set(x)}, nil
}

// PrivateKeyFromBytes decodes a 32-byte big-endian private key.
func PrivateKeyFromBytes(p group.Pairing, data []byte) (*PrivateKey, error) {
	x, err := DecodeScalar(p, data)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(p, x)
}

// Pairing returns the pairing the key belongs to.
func (k *PrivateKey) Pairing() group.Pairing {
	return k.pairing
}

// Scalar returns a copy of the secret scalar.
func (k *PrivateKey) Scalar() group.Scalar {
	return k.pairing.G1().NewScalar().Set(k.x)
}

// PublicKey derives x*G.
func (k *PrivateKey) PublicKey() *PublicKey {
	g1 := k.pairing.G1()
	return &PublicKey{
		pairing: k.pairing,
		point:   g1.NewPoint().ScalarMult(k.x, g1.Generator()),
	}
}

// Bytes returns the 32-byte big-endian encoding of the key.
func (k *PrivateKey) Bytes() []byte {
	return k.x.Bytes()
}

// Equal reports whether k and o hold the same scalar.
func (k *PrivateKey) Equal(o *PrivateKey) bool {
	return o != nil && k.x.Equal(o.x)
}

// NewPublicKey wraps a G1 point. The point must be in the prime-order
// subgroup of G1 and must not be the identity. The point is copied.
func NewPublicKey(p group.Pairing, point group.Point) (*PublicKey, error) {
	if err := ValidatePoint(p.G1(), point); err != nil {
		return nil, err
	}
	return &PublicKey{pairing: p, point: p.G1().NewPoint().Set(point)}, nil
}

// PublicKeyFromBytes decodes a 48-byte compressed G1 public key.
func PublicKeyFromBytes(p group.Pairing, data []byte) (*PublicKey, error) {
	point, err := DecodePoint(p.G1(), data)
	if err != nil {
		return nil, err
	}
	return &PublicKey{pairing: p, point: point}, nil
}

// Pairing returns the pairing the key belongs to.
func (k *PublicKey) Pairing() group.Pairing {
	return k.pairing
}

// Point returns a copy of the public G1 point.
func (k *PublicKey) Point() group.Point {
	return k.pairing.G1().NewPoint().Set(k.point)
}

// Bytes returns the compressed point encoding.
func (k *PublicKey) Bytes() []byte {
	return k.point.Bytes()
}

// Equal reports whether k and o are the same point.
func (k *PublicKey) Equal(o *PublicKey) bool {
	return o != nil && k.point.Equal(o.point)
}

// String returns the hex encoding of the key.
func (k *PublicKey) String() string {
	return fmt.Sprintf("%x", k.Bytes())
}
