package threshold

import (
	"fmt"

	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
)

// Recover reconstructs the private key from at least t fragments.
//
// Fragments may arrive in any order; exact duplicates are ignored. The
// first t distinct fragments define the polynomial and f(0) is obtained by
// Lagrange interpolation. Every further fragment must lie on the same
// polynomial, otherwise [ErrInconsistentFragments] is returned instead of a
// key that may be wrong.
func Recover(fragments []*KeyFragment, t int) (*keys.PrivateKey, error) {
	secret, p, err := recoverScalar(fragments, t)
	if err != nil {
		return nil, err
	}
	return keys.NewPrivateKey(p, secret)
}

// RecoverVerified is [Recover] followed by a check that the recovered key
// matches pk.
func RecoverVerified(fragments []*KeyFragment, t int, pk *keys.PublicKey) (*keys.PrivateKey, error) {
	sk, err := Recover(fragments, t)
	if err != nil {
		return nil, err
	}
	if !sk.PublicKey().Equal(pk) {
		return nil, ErrPublicKeyMismatch
	}
	return sk, nil
}

func recoverScalar(fragments []*KeyFragment, t int) (group.Scalar, group.Pairing, error) {
	if t < 1 {
		return nil, nil, fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidThreshold, t)
	}
	for k, f := range fragments {
		if f == nil {
			return nil, nil, fmt.Errorf("%w: fragment %d is nil", ErrInsufficientFragments, k)
		}
	}

	picked, err := selectDistinct(len(fragments),
		func(k int) uint16 { return fragments[k].index },
		func(a, b int) bool { return fragments[a].share.Equal(fragments[b].share) },
	)
	if err != nil {
		return nil, nil, err
	}
	if len(picked) < t {
		return nil, nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientFragments, t, len(picked))
	}

	p := fragments[0].pairing
	g := p.G1()
	indices := make([]uint16, t)
	values := make([]group.Scalar, t)
	for k := 0; k < t; k++ {
		indices[k] = fragments[picked[k]].index
		values[k] = fragments[picked[k]].share
	}

	secret, err := interpolate(g, indices, values, g.NewScalar())
	if err != nil {
		return nil, nil, err
	}

	for _, k := range picked[t:] {
		extra := fragments[k]
		want, err := interpolate(g, indices, values, g.NewScalar().SetUint64(uint64(extra.index)))
		if err != nil {
			return nil, nil, err
		}
		if !want.Equal(extra.share) {
			return nil, nil, fmt.Errorf("%w: index %d", ErrInconsistentFragments, extra.index)
		}
	}
	return secret, p, nil
}
