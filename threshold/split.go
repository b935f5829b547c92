package threshold

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// MaxFragments is the largest number of fragments a key can be split into.
// Fragment indices are encoded as 16-bit integers.
const MaxFragments = math.MaxUint16

const indexSize = 2

var (
	// ErrInvalidThreshold is returned when t or n is out of range, or when
	// the number of commitments does not match t.
	ErrInvalidThreshold = errors.New("invalid threshold parameters")

	// ErrInsufficientFragments is returned when fewer than t distinct
	// fragments are supplied.
	ErrInsufficientFragments = errors.New("insufficient fragments")

	// ErrDuplicateIndex is returned when two fragments share an index but
	// carry different values.
	ErrDuplicateIndex = errors.New("duplicate fragment index with different share")

	// ErrInvalidIndex is returned for fragment index 0.
	ErrInvalidIndex = errors.New("fragment index must be at least 1")

	// ErrInconsistentFragments is returned when more than t fragments are
	// supplied and they do not all lie on one polynomial of degree t-1.
	ErrInconsistentFragments = errors.New("fragments do not lie on one polynomial")

	// ErrInvalidFragment is returned when a key or signature fragment does
	// not match the Feldman commitments.
	ErrInvalidFragment = errors.New("fragment does not match commitments")

	// ErrPublicKeyMismatch is returned by [RecoverVerified] when the
	// recovered key does not match the expected public key.
	ErrPublicKeyMismatch = errors.New("recovered key does not match public key")
)

// KeyFragment is the evaluation f(Index) of the sharing polynomial.
type KeyFragment struct {
	pairing group.Pairing
	index   uint16
	share   group.Scalar
}

// Dealing is the output of [SplitVerifiable]: the fragments together with
// Feldman commitments C_j = a_j*G1 to the polynomial coefficients.
// Commitments[0] is the public key of the split private key.
type Dealing struct {
	Fragments   []*KeyFragment
	Commitments []group.Point
}

// Split divides sk into n fragments so that any t of them recover it.
//
// The sharing polynomial f has degree t-1, f(0) = x and its other
// coefficients are drawn from rng. Fragment i holds f(i) for i = 1..n.
// Any set of fewer than t fragments is independent of x.
//
// Requires 1 <= t <= n <= [MaxFragments].
func Split(sk *keys.PrivateKey, t, n int, rng io.Reader) ([]*KeyFragment, error) {
	d, err := split(sk, t, n, rng, false)
	if err != nil {
		return nil, err
	}
	return d.Fragments, nil
}

// SplitVerifiable is like [Split] but also publishes commitments that let
// each holder check its fragment with [VerifyFragment].
func SplitVerifiable(sk *keys.PrivateKey, t, n int, rng io.Reader) (*Dealing, error) {
	return split(sk, t, n, rng, true)
}

func split(sk *keys.PrivateKey, t, n int, rng io.Reader, commit bool) (*Dealing, error) {
	if t < 1 || n < t || n > MaxFragments {
		return nil, fmt.Errorf("%w: need 1 <= t <= n <= %d, got t=%d n=%d", ErrInvalidThreshold, MaxFragments, t, n)
	}
	p := sk.Pairing()
	g := p.G1()

	coeffs, err := randomPolynomial(g, sk.Scalar(), t, rng)
	if err != nil {
		return nil, err
	}

	indices := make([]uint16, n)
	for i := range indices {
		indices[i] = uint16(i + 1)
	}
	shares, err := evalAt(g, coeffs, indices)
	if err != nil {
		return nil, err
	}
	fragments := make([]*KeyFragment, n)
	for i, s := range shares {
		fragments[i] = &KeyFragment{pairing: p, index: indices[i], share: s}
	}

	d := &Dealing{Fragments: fragments}
	if commit {
		d.Commitments = make([]group.Point, t)
		for j, c := range coeffs {
			d.Commitments[j] = g.NewPoint().ScalarMult(c, g.Generator())
		}
	}
	return d, nil
}

// VerifyFragment checks share*G1 == sum_j C_j * index^j.
func VerifyFragment(f *KeyFragment, commitments []group.Point) error {
	if len(commitments) == 0 {
		return fmt.Errorf("%w: no commitments", ErrInvalidFragment)
	}
	g := f.pairing.G1()
	lhs := g.NewPoint().ScalarMult(f.share, g.Generator())
	rhs, err := publicShare(g, f.index, commitments)
	if err != nil {
		return err
	}
	if !lhs.Equal(rhs) {
		return fmt.Errorf("%w: index %d", ErrInvalidFragment, f.index)
	}
	return nil
}

// publicShare computes f(index)*G1 from the commitments alone.
func publicShare(g group.Group, index uint16, commitments []group.Point) (group.Point, error) {
	x := g.NewScalar().SetUint64(uint64(index))
	xPower := g.NewScalar().SetUint64(1)
	acc := g.NewPoint()
	for j, c := range commitments {
		if c == nil || !c.InSubgroup() {
			return nil, fmt.Errorf("%w: commitment %d", keys.ErrInvalidPoint, j)
		}
		acc = g.NewPoint().Add(acc, g.NewPoint().ScalarMult(xPower, c))
		xPower = g.NewScalar().Mul(xPower, x)
	}
	return acc, nil
}

// NewKeyFragment builds a fragment from its parts. The share is copied.
func NewKeyFragment(p group.Pairing, index uint16, share group.Scalar) (*KeyFragment, error) {
	if index == 0 {
		return nil, ErrInvalidIndex
	}
	return &KeyFragment{pairing: p, index: index, share: p.G1().NewScalar().Set(share)}, nil
}

// KeyFragmentFromBytes decodes a 2-byte big-endian index followed by a
// canonical scalar.
func KeyFragmentFromBytes(p group.Pairing, data []byte) (*KeyFragment, error) {
	want := indexSize + p.G1().ScalarSize()
	if len(data) != want {
		return nil, fmt.Errorf("%w: fragment must be %d bytes, got %d", keys.ErrInvalidEncoding, want, len(data))
	}
	share, err := keys.DecodeScalar(p, data[indexSize:])
	if err != nil {
		return nil, err
	}
	return NewKeyFragment(p, binary.BigEndian.Uint16(data), share)
}

// Pairing returns the pairing the fragment belongs to.
func (f *KeyFragment) Pairing() group.Pairing {
	return f.pairing
}

// Index returns the evaluation point of the fragment.
func (f *KeyFragment) Index() uint16 {
	return f.index
}

// Share returns a copy of the fragment value f(Index).
func (f *KeyFragment) Share() group.Scalar {
	return f.pairing.G1().NewScalar().Set(f.share)
}

// PublicShare returns f(Index)*G1, the key a fragment signature verifies
// under.
func (f *KeyFragment) PublicShare() group.Point {
	g := f.pairing.G1()
	return g.NewPoint().ScalarMult(f.share, g.Generator())
}

// Bytes returns the 2-byte big-endian index followed by the share.
func (f *KeyFragment) Bytes() []byte {
	out := binary.BigEndian.AppendUint16(nil, f.index)
	return append(out, f.share.Bytes()...)
}

// Equal reports whether f and o have the same index and share.
func (f *KeyFragment) Equal(o *KeyFragment) bool {
	return o != nil && f.index == o.index && f.share.Equal(o.share)
}

// String hides the share.
func (f *KeyFragment) String() string {
	return fmt.Sprintf("KeyFragment{Index: %d}", f.index)
}
