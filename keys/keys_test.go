package keys

import (
	"bytes"
	"crypto/rand"
	"errors"
	mrand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/nubls/bls12381"
	"github.com/f3rmion/nubls/group"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestRandom(t *testing.T) {
	c := bls12381.New()

	t.Run("Distinct", func(t *testing.T) {
		a, err := Random(c, rand.Reader)
		require.NoError(t, err)
		b, err := Random(c, rand.Reader)
		require.NoError(t, err)
		assert.False(t, a.Equal(b))
		assert.False(t, a.Scalar().IsZero())
	})

	t.Run("Deterministic", func(t *testing.T) {
		seed := [32]byte{1, 2, 3}
		a, err := Random(c, mrand.NewChaCha8(seed))
		require.NoError(t, err)
		b, err := Random(c, mrand.NewChaCha8(seed))
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("ReaderFailure", func(t *testing.T) {
		_, err := Random(c, failingReader{})
		require.ErrorIs(t, err, ErrRandomness)
	})

	t.Run("ShortReader", func(t *testing.T) {
		_, err := Random(c, bytes.NewReader([]byte{1, 2, 3}))
		require.ErrorIs(t, err, ErrRandomness)
	})
}

func TestPublicKey(t *testing.T) {
	c := bls12381.New()
	sk, err := Random(c, rand.Reader)
	require.NoError(t, err)

	pk := sk.PublicKey()
	assert.True(t, pk.Equal(sk.PublicKey()), "public key derivation must be deterministic")

	g1 := c.G1()
	want := g1.NewPoint().ScalarMult(sk.Scalar(), g1.Generator())
	assert.True(t, pk.Point().Equal(want))
}

func TestPrivateKeyEncoding(t *testing.T) {
	c := bls12381.New()

	t.Run("Roundtrip", func(t *testing.T) {
		sk, err := Random(c, rand.Reader)
		require.NoError(t, err)

		encoded := sk.Bytes()
		require.Len(t, encoded, 32)

		restored, err := PrivateKeyFromBytes(c, encoded)
		require.NoError(t, err)
		assert.True(t, restored.Equal(sk))
	})

	t.Run("WrongLength", func(t *testing.T) {
		_, err := PrivateKeyFromBytes(c, make([]byte, 31))
		require.ErrorIs(t, err, ErrInvalidEncoding)
		_, err = PrivateKeyFromBytes(c, make([]byte, 33))
		require.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := PrivateKeyFromBytes(c, c.G1().Order())
		require.ErrorIs(t, err, ErrInvalidScalar)
		_, err = PrivateKeyFromBytes(c, bytes.Repeat([]byte{0xff}, 32))
		require.ErrorIs(t, err, ErrInvalidScalar)
	})

	t.Run("Zero", func(t *testing.T) {
		_, err := PrivateKeyFromBytes(c, make([]byte, 32))
		require.ErrorIs(t, err, ErrInvalidScalar)
	})
}

func TestPublicKeyEncoding(t *testing.T) {
	c := bls12381.New()

	t.Run("Roundtrip", func(t *testing.T) {
		sk, err := Random(c, rand.Reader)
		require.NoError(t, err)
		pk := sk.PublicKey()

		encoded := pk.Bytes()
		require.Len(t, encoded, 48)

		restored, err := PublicKeyFromBytes(c, encoded)
		require.NoError(t, err)
		assert.True(t, restored.Equal(pk))
	})

	t.Run("WrongLength", func(t *testing.T) {
		_, err := PublicKeyFromBytes(c, make([]byte, 96))
		require.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Identity", func(t *testing.T) {
		identity := c.G1().NewPoint().Bytes()
		_, err := PublicKeyFromBytes(c, identity)
		require.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("NotOnCurve", func(t *testing.T) {
		_, err := PublicKeyFromBytes(c, bytes.Repeat([]byte{0xff}, 48))
		require.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("NewPublicKeyRejectsIdentity", func(t *testing.T) {
		_, err := NewPublicKey(c, c.G1().NewPoint())
		require.ErrorIs(t, err, ErrInvalidPoint)
	})

	t.Run("NewPublicKeyRejectsG2Point", func(t *testing.T) {
		var pk *PublicKey
		var err error
		require.NotPanics(t, func() {
			pk, err = NewPublicKey(c, c.G2().Generator())
		})
		require.ErrorIs(t, err, ErrInvalidPoint)
		assert.Nil(t, pk)
	})
}

func TestValidatePoint(t *testing.T) {
	c := bls12381.New()
	g1, g2 := c.G1(), c.G2()

	require.NoError(t, ValidatePoint(g1, g1.Generator()))
	require.NoError(t, ValidatePoint(g2, g2.Generator()))

	for name, tc := range map[string]struct {
		g     group.Group
		point group.Point
	}{
		"Nil":        {g1, nil},
		"G2InG1":     {g1, g2.Generator()},
		"G1InG2":     {g2, g1.Generator()},
		"IdentityG1": {g1, g1.NewPoint()},
		"IdentityG2": {g2, g2.NewPoint()},
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, ValidatePoint(tc.g, tc.point), ErrInvalidPoint)
		})
	}
}

func TestNewPrivateKey(t *testing.T) {
	c := bls12381.New()

	_, err := NewPrivateKey(c, c.G1().NewScalar())
	require.ErrorIs(t, err, ErrInvalidScalar)

	x := c.G1().NewScalar().SetUint64(7)
	sk, err := NewPrivateKey(c, x)
	require.NoError(t, err)

	// The key keeps its own copy.
	x.SetUint64(8)
	assert.True(t, sk.Scalar().Equal(c.G1().NewScalar().SetUint64(7)))
}
