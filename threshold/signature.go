package threshold

import (
	"encoding/binary"
	"fmt"

	"github.com/f3rmion/nubls/bls"
	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// SignatureFragment is a BLS signature f(Index)*H made with one key
// fragment. Any t fragments for the same message assemble into the
// signature of the split key.
type SignatureFragment struct {
	pairing group.Pairing
	index   uint16
	sig     *bls.Signature
}

// SignFragment signs h with the fragment's share.
func SignFragment(f *KeyFragment, h *bls.HashedMessage) (*SignatureFragment, error) {
	g2 := f.pairing.G2()
	sig, err := bls.NewSignature(f.pairing, g2.NewPoint().ScalarMult(f.share, h.Point()))
	if err != nil {
		return nil, err
	}
	return &SignatureFragment{pairing: f.pairing, index: f.index, sig: sig}, nil
}

// VerifySignatureFragment checks a fragment signature against the public
// share derived from the dealing commitments.
func VerifySignatureFragment(sf *SignatureFragment, commitments []group.Point, h *bls.HashedMessage) error {
	if len(commitments) == 0 {
		return fmt.Errorf("%w: no commitments", ErrInvalidFragment)
	}
	share, err := publicShare(sf.pairing.G1(), sf.index, commitments)
	if err != nil {
		return err
	}
	pk, err := keys.NewPublicKey(sf.pairing, share)
	if err != nil {
		return err
	}
	return bls.Verify(pk, h, sf.sig)
}

// AssembleSignature combines at least t signature fragments on the same
// message into a signature that verifies under the public key of the split
// private key. Preconditions and errors match [Recover].
func AssembleSignature(fragments []*SignatureFragment, t int) (*bls.Signature, error) {
	if t < 1 {
		return nil, fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidThreshold, t)
	}
	for k, f := range fragments {
		if f == nil {
			return nil, fmt.Errorf("%w: fragment %d is nil", ErrInsufficientFragments, k)
		}
	}

	picked, err := selectDistinct(len(fragments),
		func(k int) uint16 { return fragments[k].index },
		func(a, b int) bool { return fragments[a].sig.Equal(fragments[b].sig) },
	)
	if err != nil {
		return nil, err
	}
	if len(picked) < t {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientFragments, t, len(picked))
	}

	g2 := fragments[0].pairing.G2()
	indices := make([]uint16, t)
	values := make([]group.Point, t)
	for k := 0; k < t; k++ {
		indices[k] = fragments[picked[k]].index
		values[k] = fragments[picked[k]].sig.Point()
	}

	combined, err := interpolatePoints(g2, indices, values, g2.NewScalar())
	if err != nil {
		return nil, err
	}

	for _, k := range picked[t:] {
		extra := fragments[k]
		want, err := interpolatePoints(g2, indices, values, g2.NewScalar().SetUint64(uint64(extra.index)))
		if err != nil {
			return nil, err
		}
		if !want.Equal(extra.sig.Point()) {
			return nil, fmt.Errorf("%w: index %d", ErrInconsistentFragments, extra.index)
		}
	}
	return bls.NewSignature(fragments[0].pairing, combined)
}

// SignatureFragmentFromBytes decodes a 2-byte big-endian index followed by
// a compressed G2 signature.
func SignatureFragmentFromBytes(p group.Pairing, data []byte) (*SignatureFragment, error) {
	want := indexSize + p.G2().PointSize()
	if len(data) != want {
		return nil, fmt.Errorf("%w: signature fragment must be %d bytes, got %d", keys.ErrInvalidEncoding, want, len(data))
	}
	index := binary.BigEndian.Uint16(data)
	if index == 0 {
		return nil, ErrInvalidIndex
	}
	sig, err := bls.SignatureFromBytes(p, data[indexSize:])
	if err != nil {
		return nil, err
	}
	return &SignatureFragment{pairing: p, index: index, sig: sig}, nil
}

// Index returns the index of the key fragment that produced the signature.
func (sf *SignatureFragment) Index() uint16 {
	return sf.index
}

// Signature returns the fragment signature.
func (sf *SignatureFragment) Signature() *bls.Signature {
	return sf.sig
}

// Bytes returns the 2-byte big-endian index followed by the signature.
func (sf *SignatureFragment) Bytes() []byte {
	out := binary.BigEndian.AppendUint16(nil, sf.index)
	return append(out, sf.sig.Bytes()...)
}
