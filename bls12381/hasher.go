package bls12381

import (
	"errors"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/f3rmion/nubls/group"
)

var errIdentityHash = errors.New("hash to curve produced the identity")

// Hasher maps messages to G2 using the RFC 9380 suite
// BLS12381G2_XMD:SHA-256_SSWU_RO_ implemented by gnark-crypto.
//
// Each Hasher is bound to one domain separation tag, so the same message
// hashed for different protocol roles yields unrelated points.
type Hasher struct {
	dst []byte
}

// NewHasher returns a Hasher for the domain separation tag dst.
func NewHasher(dst string) *Hasher {
	return &Hasher{dst: []byte(dst)}
}

// DST returns the domain separation tag.
func (h *Hasher) DST() string {
	return string(h.dst)
}

// HashToPoint hashes msg to a G2 point.
func (h *Hasher) HashToPoint(msg []byte) (group.Point, error) {
	q, err := curve.HashToG2(msg, h.dst)
	if err != nil {
		return nil, err
	}
	p := &G2Point{inner: q}
	if p.IsIdentity() {
		return nil, errIdentityHash
	}
	return p, nil
}
