package session

import (
	"errors"
	"fmt"

	"github.com/f3rmion/nubls/bls"
	"github.com/f3rmion/nubls/keys"
	"github.com/f3rmion/nubls/penumbral"
)

// Delegator lets other parties sign on its behalf through a [Proxy].
type Delegator struct {
	sk     *keys.PrivateKey
	hasher bls.Hasher
}

// NewDelegator creates the delegator side of a delegation.
func NewDelegator(sk *keys.PrivateKey, hasher bls.Hasher) (*Delegator, error) {
	if sk == nil {
		return nil, errors.New("private key is required")
	}
	if hasher == nil {
		return nil, errors.New("hasher is required")
	}
	return &Delegator{sk: sk, hasher: hasher}, nil
}

// PublicKey returns the key resigned signatures verify under.
func (d *Delegator) PublicKey() *keys.PublicKey {
	return d.sk.PublicKey()
}

// Grant derives a resigning key for delegatee and wraps it in a proxy.
// The proxy can be handed to a third party; it holds no private key.
func (d *Delegator) Grant(delegatee *keys.PublicKey) (*Proxy, error) {
	rk, err := penumbral.NewResigningKey(d.sk, delegatee)
	if err != nil {
		return nil, err
	}
	return NewProxy(rk, d.hasher)
}

// DesignatedSigner is the delegatee side of a delegation. Its signatures
// are only useful as input to a [Proxy].
type DesignatedSigner struct {
	dk     *penumbral.DesignatedKey
	hasher bls.Hasher
}

// NewDesignatedSigner derives the designated key of the delegatee sk
// toward delegator.
func NewDesignatedSigner(sk *keys.PrivateKey, delegator *keys.PublicKey, hasher bls.Hasher) (*DesignatedSigner, error) {
	if hasher == nil {
		return nil, errors.New("hasher is required")
	}
	dk, err := penumbral.NewDesignatedKey(sk, delegator)
	if err != nil {
		return nil, err
	}
	return &DesignatedSigner{dk: dk, hasher: hasher}, nil
}

// Sign hashes message and produces a designated signature.
func (s *DesignatedSigner) Sign(message []byte) (*bls.Signature, error) {
	h, err := bls.HashMessage(s.dk.PublicKey().Pairing(), s.hasher, message)
	if err != nil {
		return nil, err
	}
	return s.dk.Sign(h), nil
}

// Proxy resigns designated signatures on raw messages.
type Proxy struct {
	rk     *penumbral.ResigningKey
	hasher bls.Hasher
}

// NewProxy wraps a resigning key received from a delegator.
func NewProxy(rk *penumbral.ResigningKey, hasher bls.Hasher) (*Proxy, error) {
	if rk == nil {
		return nil, errors.New("resigning key is required")
	}
	if hasher == nil {
		return nil, errors.New("hasher is required")
	}
	return &Proxy{rk: rk, hasher: hasher}, nil
}

// ResigningKey returns the key held by the proxy.
func (p *Proxy) ResigningKey() *penumbral.ResigningKey {
	return p.rk
}

// Resign turns a designated signature on message into a signature under
// the delegator's public key. The output is verified before it is returned.
func (p *Proxy) Resign(message []byte, sig *bls.Signature) (*bls.Signature, error) {
	h, err := bls.HashMessage(p.rk.DelegatorPublicKey().Pairing(), p.hasher, message)
	if err != nil {
		return nil, err
	}
	out, err := penumbral.Resign(p.rk, sig, h)
	if err != nil {
		return nil, err
	}
	if err := bls.Verify(p.rk.DelegatorPublicKey(), h, out); err != nil {
		return nil, fmt.Errorf("resigned signature: %w", err)
	}
	return out, nil
}
