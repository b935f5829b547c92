package bls

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// DSTSignature is the domain separation tag for hashing messages to G2.
// Designated and fragment signatures are hashed under it too, because
// resigned and assembled signatures must verify with plain [Verify].
const DSTSignature = "NUBLS-V01-CS01-with-BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"

// Hasher maps an arbitrary message to a point of the signature group.
// Implementations must be deterministic and bound to one domain
// separation tag. bls12381.Hasher is the default implementation.
type Hasher interface {
	HashToPoint(msg []byte) (group.Point, error)
}

// HashedMessage is a validated point of the signature group obtained by
// hashing a message. Signing and verification take a HashedMessage rather
// than raw bytes, so this package never depends on a particular
// hash-to-curve construction.
type HashedMessage struct {
	point group.Point
}

// HashMessage hashes msg with h and checks that the result is a valid
// point of the signature group of p.
func HashMessage(p group.Pairing, h Hasher, msg []byte) (*HashedMessage, error) {
	if h == nil {
		return nil, errors.New("hash to curve: no hasher")
	}
	point, err := h.HashToPoint(msg)
	if err != nil {
		return nil, fmt.Errorf("hash to curve: %w", err)
	}
	return NewHashedMessage(p, point)
}

// NewHashedMessage wraps a G2 point produced by an external hash-to-curve
// implementation. G1 points, the identity and points outside the subgroup
// are rejected with [keys.ErrInvalidPoint].
func NewHashedMessage(p group.Pairing, point group.Point) (*HashedMessage, error) {
	if err := keys.ValidatePoint(p.G2(), point); err != nil {
		return nil, err
	}
	return &HashedMessage{point: point}, nil
}

// HashedMessageFromBytes decodes a 96-byte compressed G2 point.
func HashedMessageFromBytes(p group.Pairing, data []byte) (*HashedMessage, error) {
	point, err := keys.DecodePoint(p.G2(), data)
	if err != nil {
		return nil, err
	}
	return &HashedMessage{point: point}, nil
}

// Point returns the underlying G2 point. Callers must not modify it.
func (h *HashedMessage) Point() group.Point {
	return h.point
}

// Bytes returns the compressed encoding of the point.
func (h *HashedMessage) Bytes() []byte {
	return h.point.Bytes()
}

// Blake2bHasher prehashes messages with Blake2b-512 before handing the
// digest to an inner Hasher. It lets large messages be hashed once in
// streaming fashion while the curve mapping always sees 64 bytes.
type Blake2bHasher struct {
	// Prefix is written before the message.
	// Default: "NUBLS-BLAKE2B512-PREHASH-v1"
	Prefix string
	// Inner maps the digest to the curve.
	Inner Hasher
}

// NewBlake2bHasher wraps inner with the default prefix.
func NewBlake2bHasher(inner Hasher) *Blake2bHasher {
	return &Blake2bHasher{
		Prefix: "NUBLS-BLAKE2B512-PREHASH-v1",
		Inner:  inner,
	}
}

// HashToPoint implements [Hasher].
func (h *Blake2bHasher) HashToPoint(msg []byte) (group.Point, error) {
	hasher, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	hasher.Write([]byte(h.Prefix))
	hasher.Write(msg)
	return h.Inner.HashToPoint(hasher.Sum(nil))
}
