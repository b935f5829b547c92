package keys

import (
	"fmt"

	"github.com/f3rmion/nubls/group"
)

// DecodeScalar decodes a canonical fixed-width scalar. A wrong length is
// reported as [ErrInvalidEncoding], a value not below the group order as
// [ErrInvalidScalar]. Zero is accepted.
func DecodeScalar(p group.Pairing, data []byte) (group.Scalar, error) {
	g := p.G1()
	if len(data) != g.ScalarSize() {
		return nil, fmt.Errorf("%w: scalar must be %d bytes, got %d", ErrInvalidEncoding, g.ScalarSize(), len(data))
	}
	s, err := g.NewScalar().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}
	return s, nil
}

// DecodePoint decodes a compressed point of g and validates it with
// [ValidatePoint]. A wrong length is reported as [ErrInvalidEncoding],
// anything else as [ErrInvalidPoint].
func DecodePoint(g group.Group, data []byte) (group.Point, error) {
	if len(data) != g.PointSize() {
		return nil, fmt.Errorf("%w: point must be %d bytes, got %d", ErrInvalidEncoding, g.PointSize(), len(data))
	}
	point, err := g.NewPoint().SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if err := ValidatePoint(g, point); err != nil {
		return nil, err
	}
	return point, nil
}

// ValidatePoint rejects nil points, points of a group other than g, the
// identity, and points outside the prime-order subgroup. Every point taken
// from a caller goes through it before it is used in a pairing.
func ValidatePoint(g group.Group, point group.Point) error {
	switch {
	case point == nil:
		return fmt.Errorf("%w: nil point", ErrInvalidPoint)
	case !g.IsElement(point):
		return fmt.Errorf("%w: %T is not an element of the expected group", ErrInvalidPoint, point)
	case point.IsIdentity():
		return fmt.Errorf("%w: identity element", ErrInvalidPoint)
	case !point.InSubgroup():
		return fmt.Errorf("%w: not in the prime-order subgroup", ErrInvalidPoint)
	}
	return nil
}
