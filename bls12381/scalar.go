package bls12381

import (
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/nubls/group"
)

// randomBytes is the number of bytes read per random scalar. Reducing
// 384 bits modulo the 255-bit order leaves a bias below 2^-128.
const randomBytes = 48

// maxResample bounds how many times RandomScalar retries after drawing zero.
const maxResample = 8

// Scalar represents an element of the BLS12-381 scalar field Fr.
// It implements [group.Scalar] by wrapping gnark-crypto's fr.Element,
// which keeps every value reduced modulo the group order r.
type Scalar struct {
	inner fr.Element
}

func newScalar() *Scalar {
	return &Scalar{}
}

// Add sets s to a + b (mod r) and returns s.
func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Sub sets s to a - b (mod r) and returns s.
func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	s.inner.Sub(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Mul sets s to a * b (mod r) and returns s.
func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.inner.Mul(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

// Negate sets s to -a (mod r) and returns s.
func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.inner.Neg(&a.(*Scalar).inner)
	return s
}

// Invert sets s to a^(-1) (mod r) and returns s.
// Returns an error if a is zero, as zero has no multiplicative inverse.
func (s *Scalar) Invert(a group.Scalar) (group.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, errors.New("cannot invert zero scalar")
	}
	s.inner.Inverse(&aScalar.inner)
	return s, nil
}

// Set copies the value of a into s and returns s.
func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

// SetUint64 sets s to v and returns s.
func (s *Scalar) SetUint64(v uint64) group.Scalar {
	s.inner.SetUint64(v)
	return s
}

// Bytes returns the scalar as a 32-byte big-endian representation.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// SetBytes sets s from a 32-byte big-endian encoding and returns s.
// Values that are not strictly below r are rejected.
func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if len(data) != fr.Bytes {
		return nil, fmt.Errorf("scalar encoding must be %d bytes, got %d", fr.Bytes, len(data))
	}
	if err := s.inner.SetBytesCanonical(data); err != nil {
		return nil, err
	}
	return s, nil
}

// SetWideBytes sets s to data interpreted as a big-endian integer
// reduced modulo r, and returns s.
func (s *Scalar) SetWideBytes(data []byte) group.Scalar {
	s.inner.SetBytes(data)
	return s
}

// Equal reports whether s and b represent the same scalar value.
func (s *Scalar) Equal(b group.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner)
}

// IsZero reports whether s is the zero scalar.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// String returns the scalar in hex. It exists for test failure messages.
func (s *Scalar) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}

func randomScalar(r io.Reader) (*Scalar, error) {
	var buf [randomBytes]byte
	for i := 0; i < maxResample; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		s := newScalar()
		s.inner.SetBytes(buf[:])
		if !s.IsZero() {
			return s, nil
		}
	}
	return nil, errors.New("random source returned only zero scalars")
}
