package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/f3rmion/nubls/bls"
	"github.com/f3rmion/nubls/group"
	"github.com/f3rmion/nubls/keys"
	"github.com/f3rmion/nubls/threshold"
)

// ErrSessionConsumed is returned by a [SigningSession] that has already
// produced its signature.
var ErrSessionConsumed = errors.New("session already consumed")

// SigningSession collects signature fragments for one message until the
// threshold is reached. Each session produces at most one signature.
//
// A SigningSession is safe for concurrent use, so fragments may be added
// from several goroutines as they arrive.
type SigningSession struct {
	mu          sync.Mutex
	pk          *keys.PublicKey
	commitments []group.Point
	hashed      *bls.HashedMessage
	message     []byte
	threshold   int
	fragments   map[uint16]*threshold.SignatureFragment
	consumed    bool
}

// NewSigningSession creates a session for message that assembles a
// signature valid under pk from t fragments.
//
// If commitments are given, every fragment is checked against its public
// share when it is added, so a bad fragment is attributed to its sender
// instead of spoiling the assembled signature. The commitments slice is
// copied.
func NewSigningSession(hasher bls.Hasher, pk *keys.PublicKey, commitments []group.Point, t int, message []byte) (*SigningSession, error) {
	if pk == nil {
		return nil, errors.New("public key is required")
	}
	if t < 1 {
		return nil, fmt.Errorf("%w: threshold must be at least 1, got %d", threshold.ErrInvalidThreshold, t)
	}
	if len(commitments) > 0 && len(commitments) != t {
		return nil, fmt.Errorf("%w: %d commitments for threshold %d", threshold.ErrInvalidThreshold, len(commitments), t)
	}
	h, err := bls.HashMessage(pk.Pairing(), hasher, message)
	if err != nil {
		return nil, err
	}

	// Copy message to prevent external modification
	msgCopy := make([]byte, len(message))
	copy(msgCopy, message)

	return &SigningSession{
		pk:          pk,
		commitments: append([]group.Point(nil), commitments...),
		hashed:      h,
		message:     msgCopy,
		threshold:   t,
		fragments:   make(map[uint16]*threshold.SignatureFragment),
	}, nil
}

// Message returns the message being signed.
func (s *SigningSession) Message() []byte {
	return s.message
}

// Add records a signature fragment. Adding the same fragment twice is a
// no-op; a different fragment for a known index is rejected with
// [threshold.ErrDuplicateIndex].
func (s *SigningSession) Add(sf *threshold.SignatureFragment) error {
	if sf == nil {
		return errors.New("signature fragment is required")
	}
	if len(s.commitments) > 0 {
		if err := threshold.VerifySignatureFragment(sf, s.commitments, s.hashed); err != nil {
			return fmt.Errorf("fragment %d: %w", sf.Index(), err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed {
		return ErrSessionConsumed
	}
	if prev, ok := s.fragments[sf.Index()]; ok {
		if prev.Signature().Equal(sf.Signature()) {
			return nil
		}
		return fmt.Errorf("%w: index %d", threshold.ErrDuplicateIndex, sf.Index())
	}
	s.fragments[sf.Index()] = sf
	return nil
}

// Ready reports whether enough fragments have been collected.
func (s *SigningSession) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fragments) >= s.threshold
}

// Finalize assembles the signature and checks it under the session's
// public key.
//
// A successful call consumes the session. A failed call leaves the
// collected fragments in place so that missing ones can still be added.
//
// Without commitments a bad fragment is only detected here and cannot be
// attributed or removed, so every later Finalize on the session fails
// too. Pass commitments to [NewSigningSession] to reject bad fragments in
// [SigningSession.Add] instead.
func (s *SigningSession) Finalize() (*bls.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed {
		return nil, ErrSessionConsumed
	}
	fragments := make([]*threshold.SignatureFragment, 0, len(s.fragments))
	for _, sf := range s.fragments {
		fragments = append(fragments, sf)
	}

	sig, err := threshold.AssembleSignature(fragments, s.threshold)
	if err != nil {
		return nil, err
	}
	if err := bls.Verify(s.pk, s.hashed, sig); err != nil {
		return nil, fmt.Errorf("assembled signature: %w", err)
	}
	s.consumed = true
	return sig, nil
}

// IsConsumed returns true if this session has already produced a signature.
func (s *SigningSession) IsConsumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumed
}

// QuickSign performs a complete threshold signing operation when all key
// fragments are local.
//
// This is useful for testing or single-machine threshold setups. For
// distributed signing, use [Participant] and [SigningSession] instead.
//
// The fragments must contain at least t distinct fragments of one key.
func QuickSign(hasher bls.Hasher, fragments []*threshold.KeyFragment, t int, message []byte) (*bls.Signature, error) {
	if len(fragments) == 0 || fragments[0] == nil {
		return nil, fmt.Errorf("%w: no key fragments provided", threshold.ErrInsufficientFragments)
	}
	h, err := bls.HashMessage(fragments[0].Pairing(), hasher, message)
	if err != nil {
		return nil, err
	}

	sigFragments := make([]*threshold.SignatureFragment, len(fragments))
	for i, f := range fragments {
		if f == nil {
			return nil, fmt.Errorf("%w: fragment %d is nil", threshold.ErrInsufficientFragments, i)
		}
		sf, err := threshold.SignFragment(f, h)
		if err != nil {
			return nil, err
		}
		sigFragments[i] = sf
	}
	return threshold.AssembleSignature(sigFragments, t)
}
