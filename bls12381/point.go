package bls12381

import (
	"fmt"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/f3rmion/nubls/group"
)

func bigInt(s group.Scalar) *big.Int {
	return s.(*Scalar).inner.BigInt(new(big.Int))
}

// G1Point represents a point of the BLS12-381 G1 group.
// It implements [group.Point] by wrapping gnark-crypto's G1Affine.
//
// The zero value is the point at infinity.
type G1Point struct {
	inner curve.G1Affine
}

// Add sets p to a + b and returns p.
func (p *G1Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*G1Point).inner, &b.(*G1Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *G1Point) Sub(a, b group.Point) group.Point {
	p.inner.Sub(&a.(*G1Point).inner, &b.(*G1Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *G1Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*G1Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *G1Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*G1Point).inner, bigInt(s))
	return p
}

// Set copies the value of a into p and returns p.
func (p *G1Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*G1Point).inner)
	return p
}

// Bytes returns the 48-byte compressed point encoding.
func (p *G1Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes sets p from a 48-byte compressed encoding and returns p.
// gnark-crypto checks that the decoded point is on the curve and in
// the prime-order subgroup.
func (p *G1Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != curve.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("G1 encoding must be %d bytes, got %d", curve.SizeOfG1AffineCompressed, len(data))
	}
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal reports whether p and b represent the same curve point.
func (p *G1Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*G1Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *G1Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// InSubgroup reports whether p is on the curve and in the r-torsion.
func (p *G1Point) InSubgroup() bool {
	return p.inner.IsOnCurve() && p.inner.IsInSubGroup()
}

// G2Point represents a point of the BLS12-381 G2 group.
// It implements [group.Point] by wrapping gnark-crypto's G2Affine.
//
// The zero value is the point at infinity.
type G2Point struct {
	inner curve.G2Affine
}

// Add sets p to a + b and returns p.
func (p *G2Point) Add(a, b group.Point) group.Point {
	p.inner.Add(&a.(*G2Point).inner, &b.(*G2Point).inner)
	return p
}

// Sub sets p to a - b and returns p.
func (p *G2Point) Sub(a, b group.Point) group.Point {
	p.inner.Sub(&a.(*G2Point).inner, &b.(*G2Point).inner)
	return p
}

// Negate sets p to -a and returns p.
func (p *G2Point) Negate(a group.Point) group.Point {
	p.inner.Neg(&a.(*G2Point).inner)
	return p
}

// ScalarMult sets p to s * q and returns p.
func (p *G2Point) ScalarMult(s group.Scalar, q group.Point) group.Point {
	p.inner.ScalarMultiplication(&q.(*G2Point).inner, bigInt(s))
	return p
}

// Set copies the value of a into p and returns p.
func (p *G2Point) Set(a group.Point) group.Point {
	p.inner.Set(&a.(*G2Point).inner)
	return p
}

// Bytes returns the 96-byte compressed point encoding.
func (p *G2Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

// SetBytes sets p from a 96-byte compressed encoding and returns p.
func (p *G2Point) SetBytes(data []byte) (group.Point, error) {
	if len(data) != curve.SizeOfG2AffineCompressed {
		return nil, fmt.Errorf("G2 encoding must be %d bytes, got %d", curve.SizeOfG2AffineCompressed, len(data))
	}
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, err
	}
	return p, nil
}

// Equal reports whether p and b represent the same curve point.
func (p *G2Point) Equal(b group.Point) bool {
	return p.inner.Equal(&b.(*G2Point).inner)
}

// IsIdentity reports whether p is the point at infinity.
func (p *G2Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// InSubgroup reports whether p is on the twist and in the r-torsion.
func (p *G2Point) InSubgroup() bool {
	return p.inner.IsOnCurve() && p.inner.IsInSubGroup()
}
