package threshold

import (
	"bytes"
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/nubls/bls"
	"github.com/f3rmion/nubls/bls12381"
	"github.com/f3rmion/nubls/keys"
)

func newKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	sk, err := keys.Random(bls12381.New(), rand.Reader)
	require.NoError(t, err)
	return sk
}

func pick(fragments []*KeyFragment, positions ...int) []*KeyFragment {
	out := make([]*KeyFragment, len(positions))
	for i, p := range positions {
		out[i] = fragments[p]
	}
	return out
}

func shuffled[T any](r *mrand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestSplitRecoverAllThresholds(t *testing.T) {
	sk := newKey(t)
	r := mrand.New(mrand.NewPCG(1, 2))

	for n := 1; n <= 20; n++ {
		for th := 1; th <= n; th++ {
			t.Run(fmt.Sprintf("%d_of_%d", th, n), func(t *testing.T) {
				fragments, err := Split(sk, th, n, rand.Reader)
				require.NoError(t, err)
				require.Len(t, fragments, n)

				for size := th; size <= n; size += max(1, (n-th)/2) {
					subset := shuffled(r, fragments)[:size]
					got, err := Recover(subset, th)
					require.NoError(t, err, "subset size %d", size)
					assert.True(t, got.Equal(sk), "subset size %d", size)
				}

				got, err := Recover(fragments, th)
				require.NoError(t, err)
				assert.True(t, got.Equal(sk))
			})
		}
	}
}

func TestRecoverBelowThreshold(t *testing.T) {
	sk := newKey(t)

	t.Run("Insufficient", func(t *testing.T) {
		fragments, err := Split(sk, 4, 6, rand.Reader)
		require.NoError(t, err)
		_, err = Recover(fragments[:3], 4)
		require.ErrorIs(t, err, ErrInsufficientFragments)
		_, err = Recover(nil, 1)
		require.ErrorIs(t, err, ErrInsufficientFragments)
	})

	t.Run("IndependentOfSecret", func(t *testing.T) {
		// Interpolating t-1 fragments as if they were a full set must never
		// land on the secret, and the outputs must not repeat.
		seen := make(map[string]bool)
		for trial := 0; trial < 50; trial++ {
			fragments, err := Split(sk, 3, 5, rand.Reader)
			require.NoError(t, err)

			guess, err := Recover(fragments[:2], 2)
			require.NoError(t, err)
			assert.False(t, guess.Equal(sk), "trial %d recovered the secret", trial)

			key := string(guess.Bytes())
			assert.False(t, seen[key], "trial %d repeated an output", trial)
			seen[key] = true
		}
	})

	t.Run("SingleFragmentRevealsNothing", func(t *testing.T) {
		for trial := 0; trial < 20; trial++ {
			fragments, err := Split(sk, 2, 3, rand.Reader)
			require.NoError(t, err)
			for _, f := range fragments {
				assert.False(t, f.Share().Equal(sk.Scalar()))
			}
		}
	})
}

func TestSeededVector(t *testing.T) {
	c := bls12381.New()
	rng := mrand.NewChaCha8([32]byte{'n', 'u', 'b', 'l', 's'})

	x0, err := keys.Random(c, rng)
	require.NoError(t, err)

	again, err := keys.Random(c, mrand.NewChaCha8([32]byte{'n', 'u', 'b', 'l', 's'}))
	require.NoError(t, err)
	require.True(t, x0.Equal(again), "seeded key generation must be reproducible")

	fragments, err := Split(x0, 3, 5, rng)
	require.NoError(t, err)

	got, err := Recover(pick(fragments, 0, 2, 4), 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(x0))

	_, err = Recover(pick(fragments, 0, 1), 3)
	require.ErrorIs(t, err, ErrInsufficientFragments)
}

func TestSplitParameters(t *testing.T) {
	sk := newKey(t)

	for _, tc := range []struct{ t, n int }{
		{0, 3},
		{4, 3},
		{-1, 2},
		{1, MaxFragments + 1},
	} {
		_, err := Split(sk, tc.t, tc.n, rand.Reader)
		assert.ErrorIs(t, err, ErrInvalidThreshold, "t=%d n=%d", tc.t, tc.n)
	}

	_, err := Recover(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestSplitRandomnessFailure(t *testing.T) {
	sk := newKey(t)
	_, err := Split(sk, 3, 5, bytes.NewReader(make([]byte, 10)))
	require.ErrorIs(t, err, keys.ErrRandomness)
}

func TestSplitOneOfOne(t *testing.T) {
	sk := newKey(t)
	fragments, err := Split(sk, 1, 1, rand.Reader)
	require.NoError(t, err)
	// A degree-0 polynomial hands out the secret itself.
	assert.True(t, fragments[0].Share().Equal(sk.Scalar()))
}

func TestSplitParallel(t *testing.T) {
	sk := newKey(t)
	n := parallelCutoff * 3
	fragments, err := Split(sk, 5, n, rand.Reader)
	require.NoError(t, err)
	require.Len(t, fragments, n)

	for i, f := range fragments {
		require.Equal(t, uint16(i+1), f.Index())
	}

	got, err := Recover(pick(fragments, 0, 50, 100, 150, n-1), 5)
	require.NoError(t, err)
	assert.True(t, got.Equal(sk))

	got, err = Recover(fragments, 5)
	require.NoError(t, err)
	assert.True(t, got.Equal(sk))
}

func TestEvalAtRejectsZeroIndex(t *testing.T) {
	g := bls12381.New().G1()
	coeffs, err := randomPolynomial(g, g.NewScalar().SetUint64(7), 3, rand.Reader)
	require.NoError(t, err)

	for _, n := range []int{5, parallelCutoff * 2} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			indices := make([]uint16, n)
			for i := range indices {
				indices[i] = uint16(i + 1)
			}
			shares, err := evalAt(g, coeffs, indices)
			require.NoError(t, err)
			require.Len(t, shares, n)
			for i, s := range shares {
				x := g.NewScalar().SetUint64(uint64(indices[i]))
				require.True(t, s.Equal(evalPolynomial(g, coeffs, x)))
			}

			// A zero in the last chunk must still surface.
			indices[n-1] = 0
			shares, err = evalAt(g, coeffs, indices)
			require.ErrorIs(t, err, ErrInvalidIndex)
			require.Nil(t, shares)
		})
	}
}

func TestRecoverDuplicates(t *testing.T) {
	sk := newKey(t)
	c := sk.Pairing()
	fragments, err := Split(sk, 3, 5, rand.Reader)
	require.NoError(t, err)

	t.Run("ExactDuplicatesCollapse", func(t *testing.T) {
		_, err := Recover(pick(fragments, 0, 0, 1), 3)
		require.ErrorIs(t, err, ErrInsufficientFragments)

		got, err := Recover(pick(fragments, 0, 0, 1, 2), 3)
		require.NoError(t, err)
		assert.True(t, got.Equal(sk))
	})

	t.Run("ConflictingShare", func(t *testing.T) {
		one := c.G1().NewScalar().SetUint64(1)
		forged, err := NewKeyFragment(c, fragments[1].Index(), c.G1().NewScalar().Add(fragments[1].Share(), one))
		require.NoError(t, err)

		_, err = Recover([]*KeyFragment{fragments[0], fragments[1], forged, fragments[2]}, 3)
		require.ErrorIs(t, err, ErrDuplicateIndex)
	})

	t.Run("ZeroIndex", func(t *testing.T) {
		_, err := NewKeyFragment(c, 0, fragments[0].Share())
		require.ErrorIs(t, err, ErrInvalidIndex)

		bad := &KeyFragment{pairing: c, index: 0, share: fragments[0].Share()}
		_, err = Recover([]*KeyFragment{bad, fragments[1], fragments[2]}, 2)
		require.ErrorIs(t, err, ErrInvalidIndex)
	})

	t.Run("OrderIrrelevant", func(t *testing.T) {
		got, err := Recover(pick(fragments, 4, 1, 3), 3)
		require.NoError(t, err)
		assert.True(t, got.Equal(sk))
	})
}

func TestRecoverInconsistent(t *testing.T) {
	sk := newKey(t)
	c := sk.Pairing()
	fragments, err := Split(sk, 3, 5, rand.Reader)
	require.NoError(t, err)

	one := c.G1().NewScalar().SetUint64(1)
	tampered, err := NewKeyFragment(c, 5, c.G1().NewScalar().Add(fragments[4].Share(), one))
	require.NoError(t, err)

	subset := append(pick(fragments, 0, 1, 2, 3), tampered)
	_, err = Recover(subset, 3)
	require.ErrorIs(t, err, ErrInconsistentFragments)

	// Mixing fragments of two different dealings is detected too.
	other, err := Split(sk, 3, 5, rand.Reader)
	require.NoError(t, err)
	_, err = Recover([]*KeyFragment{fragments[0], fragments[1], fragments[2], other[3]}, 3)
	require.ErrorIs(t, err, ErrInconsistentFragments)
}

func TestRecoverVerified(t *testing.T) {
	sk := newKey(t)
	fragments, err := Split(sk, 2, 3, rand.Reader)
	require.NoError(t, err)

	got, err := RecoverVerified(fragments[1:], 2, sk.PublicKey())
	require.NoError(t, err)
	assert.True(t, got.Equal(sk))

	_, err = RecoverVerified(fragments[1:], 2, newKey(t).PublicKey())
	require.ErrorIs(t, err, ErrPublicKeyMismatch)
}

func TestKeyFragmentEncoding(t *testing.T) {
	sk := newKey(t)
	c := sk.Pairing()
	fragments, err := Split(sk, 2, 3, rand.Reader)
	require.NoError(t, err)

	for _, f := range fragments {
		encoded := f.Bytes()
		require.Len(t, encoded, 34)

		restored, err := KeyFragmentFromBytes(c, encoded)
		require.NoError(t, err)
		assert.True(t, restored.Equal(f))
	}

	_, err = KeyFragmentFromBytes(c, make([]byte, 33))
	require.ErrorIs(t, err, keys.ErrInvalidEncoding)

	zeroIndex := fragments[0].Bytes()
	zeroIndex[0], zeroIndex[1] = 0, 0
	_, err = KeyFragmentFromBytes(c, zeroIndex)
	require.ErrorIs(t, err, ErrInvalidIndex)

	outOfRange := append([]byte{0, 1}, c.G1().Order()...)
	_, err = KeyFragmentFromBytes(c, outOfRange)
	require.ErrorIs(t, err, keys.ErrInvalidScalar)

	assert.NotContains(t, fragments[0].String(), fmt.Sprintf("%x", fragments[0].Share().Bytes()))
}

func TestVerifiableSplit(t *testing.T) {
	sk := newKey(t)
	c := sk.Pairing()

	d, err := SplitVerifiable(sk, 3, 5, rand.Reader)
	require.NoError(t, err)
	require.Len(t, d.Commitments, 3)
	assert.True(t, d.Commitments[0].Equal(sk.PublicKey().Point()))

	for _, f := range d.Fragments {
		require.NoError(t, VerifyFragment(f, d.Commitments))
		assert.True(t, f.PublicShare().Equal(c.G1().NewPoint().ScalarMult(f.Share(), c.G1().Generator())))
	}

	one := c.G1().NewScalar().SetUint64(1)
	bad, err := NewKeyFragment(c, 2, c.G1().NewScalar().Add(d.Fragments[1].Share(), one))
	require.NoError(t, err)
	require.ErrorIs(t, VerifyFragment(bad, d.Commitments), ErrInvalidFragment)
	require.ErrorIs(t, VerifyFragment(d.Fragments[0], nil), ErrInvalidFragment)
}

func TestThresholdSigning(t *testing.T) {
	sk := newKey(t)
	c := sk.Pairing()
	pk := sk.PublicKey()

	d, err := SplitVerifiable(sk, 3, 5, rand.Reader)
	require.NoError(t, err)

	h, err := bls.HashMessage(bls12381.New(), bls12381.NewHasher(bls.DSTSignature), []byte("threshold message"))
	require.NoError(t, err)

	sigFragments := make([]*SignatureFragment, len(d.Fragments))
	for i, f := range d.Fragments {
		sf, err := SignFragment(f, h)
		require.NoError(t, err)
		require.NoError(t, VerifySignatureFragment(sf, d.Commitments, h))
		sigFragments[i] = sf
	}

	subsets := [][]int{
		{0, 1, 2},
		{0, 2, 4},
		{4, 3, 1},
		{0, 1, 2, 3, 4},
	}
	want := bls.Sign(sk, h)
	for _, subset := range subsets {
		t.Run(fmt.Sprint(subset), func(t *testing.T) {
			chosen := make([]*SignatureFragment, len(subset))
			for i, p := range subset {
				chosen[i] = sigFragments[p]
			}
			sig, err := AssembleSignature(chosen, 3)
			require.NoError(t, err)
			require.NoError(t, bls.Verify(pk, h, sig))
			assert.True(t, sig.Equal(want))
		})
	}

	t.Run("Insufficient", func(t *testing.T) {
		_, err := AssembleSignature(sigFragments[:2], 3)
		require.ErrorIs(t, err, ErrInsufficientFragments)
	})

	t.Run("WrongMessageFragment", func(t *testing.T) {
		other, err := bls.HashMessage(bls12381.New(), bls12381.NewHasher(bls.DSTSignature), []byte("other"))
		require.NoError(t, err)
		sf, err := SignFragment(d.Fragments[3], other)
		require.NoError(t, err)

		require.ErrorIs(t, VerifySignatureFragment(sf, d.Commitments, h), bls.ErrInvalidSignature)

		_, err = AssembleSignature(append(sigFragments[:3:3], sf), 3)
		require.ErrorIs(t, err, ErrInconsistentFragments)
	})

	t.Run("Encoding", func(t *testing.T) {
		encoded := sigFragments[0].Bytes()
		require.Len(t, encoded, 98)
		restored, err := SignatureFragmentFromBytes(c, encoded)
		require.NoError(t, err)
		assert.Equal(t, sigFragments[0].Index(), restored.Index())
		assert.True(t, restored.Signature().Equal(sigFragments[0].Signature()))

		_, err = SignatureFragmentFromBytes(c, encoded[:97])
		require.ErrorIs(t, err, keys.ErrInvalidEncoding)
	})
}
