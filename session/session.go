package session

import (
	"errors"
	"fmt"

	"github.com/f3rmion/nubls/bls"
	"github.com/f3rmion/nubls/keys"
	"github.com/f3rmion/nubls/threshold"
)

// Signer signs raw messages with one private key. Create instances using
// [NewSigner].
type Signer struct {
	sk     *keys.PrivateKey
	hasher bls.Hasher
}

// NewSigner binds a private key to the hasher used for every message it
// signs. The verifier must use a hasher with the same domain tag.
func NewSigner(sk *keys.PrivateKey, hasher bls.Hasher) (*Signer, error) {
	if sk == nil {
		return nil, errors.New("private key is required")
	}
	if hasher == nil {
		return nil, errors.New("hasher is required")
	}
	return &Signer{sk: sk, hasher: hasher}, nil
}

// PublicKey returns the key signatures verify under.
func (s *Signer) PublicKey() *keys.PublicKey {
	return s.sk.PublicKey()
}

// Sign hashes message and signs it.
func (s *Signer) Sign(message []byte) (*bls.Signature, error) {
	h, err := bls.HashMessage(s.sk.Pairing(), s.hasher, message)
	if err != nil {
		return nil, err
	}
	return bls.Sign(s.sk, h), nil
}

// Verify hashes message and checks sig under pk.
//
// Returns nil if the signature is valid, or an error describing why it's invalid.
func Verify(hasher bls.Hasher, pk *keys.PublicKey, message []byte, sig *bls.Signature) error {
	if pk == nil {
		return fmt.Errorf("%w: missing public key", keys.ErrInvalidPoint)
	}
	h, err := bls.HashMessage(pk.Pairing(), hasher, message)
	if err != nil {
		return err
	}
	return bls.Verify(pk, h, sig)
}

// Participant holds one key fragment and produces signature fragments for
// threshold signing.
type Participant struct {
	fragment *threshold.KeyFragment
	hasher   bls.Hasher
}

// NewParticipant creates a participant for the given fragment.
func NewParticipant(fragment *threshold.KeyFragment, hasher bls.Hasher) (*Participant, error) {
	if fragment == nil {
		return nil, errors.New("key fragment is required")
	}
	if hasher == nil {
		return nil, errors.New("hasher is required")
	}
	return &Participant{fragment: fragment, hasher: hasher}, nil
}

// Index returns the index of this participant's fragment.
func (p *Participant) Index() uint16 {
	return p.fragment.Index()
}

// Sign produces this participant's signature fragment on message.
func (p *Participant) Sign(message []byte) (*threshold.SignatureFragment, error) {
	h, err := bls.HashMessage(p.fragment.Pairing(), p.hasher, message)
	if err != nil {
		return nil, err
	}
	sf, err := threshold.SignFragment(p.fragment, h)
	if err != nil {
		return nil, fmt.Errorf("participant %d: %w", p.fragment.Index(), err)
	}
	return sf, nil
}
