package bls12381

import (
	"fmt"
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/f3rmion/nubls/group"
)

var (
	g1Gen curve.G1Affine
	g2Gen curve.G2Affine
)

func init() {
	_, _, g1Gen, g2Gen = curve.Generators()
}

// Curve implements [group.Pairing] for BLS12-381.
//
// Curve is a zero-sized type. Create an instance with New, &Curve{} or
// new(Curve). It is safe for concurrent use.
type Curve struct{}

// New returns the BLS12-381 pairing.
func New() *Curve {
	return &Curve{}
}

// G1 returns the 48-byte compressed group, used for public keys.
func (c *Curve) G1() group.Group {
	return g1Group{}
}

// G2 returns the 96-byte compressed group, used for signatures and
// hashed messages.
func (c *Curve) G2() group.Group {
	return g2Group{}
}

// PairingCheck reports whether the product of e(a[i], b[i]) is one.
func (c *Curve) PairingCheck(a, b []group.Point) (bool, error) {
	if len(a) != len(b) {
		return false, fmt.Errorf("pairing check needs equal length inputs, got %d and %d", len(a), len(b))
	}
	p := make([]curve.G1Affine, len(a))
	q := make([]curve.G2Affine, len(b))
	for i := range a {
		g1, ok := a[i].(*G1Point)
		if !ok {
			return false, fmt.Errorf("pairing input %d is not a G1 point", i)
		}
		g2, ok := b[i].(*G2Point)
		if !ok {
			return false, fmt.Errorf("pairing input %d is not a G2 point", i)
		}
		p[i] = g1.inner
		q[i] = g2.inner
	}
	return curve.PairingCheck(p, q)
}

type g1Group struct{}

func (g1Group) NewScalar() group.Scalar { return newScalar() }

func (g1Group) NewPoint() group.Point { return &G1Point{} }

func (g1Group) Generator() group.Point { return &G1Point{inner: g1Gen} }

func (g1Group) RandomScalar(r io.Reader) (group.Scalar, error) { return randomScalar(r) }

func (g1Group) IsElement(p group.Point) bool {
	_, ok := p.(*G1Point)
	return ok
}

func (g1Group) Order() []byte { return fr.Modulus().Bytes() }

func (g1Group) ScalarSize() int { return fr.Bytes }

func (g1Group) PointSize() int { return curve.SizeOfG1AffineCompressed }

type g2Group struct{}

func (g2Group) NewScalar() group.Scalar { return newScalar() }

func (g2Group) NewPoint() group.Point { return &G2Point{} }

func (g2Group) Generator() group.Point { return &G2Point{inner: g2Gen} }

func (g2Group) RandomScalar(r io.Reader) (group.Scalar, error) { return randomScalar(r) }

func (g2Group) IsElement(p group.Point) bool {
	_, ok := p.(*G2Point)
	return ok
}

func (g2Group) Order() []byte { return fr.Modulus().Bytes() }

func (g2Group) ScalarSize() int { return fr.Bytes }

func (g2Group) PointSize() int { return curve.SizeOfG2AffineCompressed }
