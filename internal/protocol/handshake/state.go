package handshake

import (
	"io"
	"math/big"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

// State is one phase of the exchange. Wipe zeroes any secret material the
// state owns; a wiped state must not be used again.
type State interface {
	Kind() domain.SessionState
	Wipe()
}

// Uninitialized is the starting state. It owns nothing.
type Uninitialized struct{}

func (*Uninitialized) Kind() domain.SessionState { return domain.StateUninitialized }
func (*Uninitialized) Wipe()                     {}

// ParamsReceived holds validated domain parameters. Retained is the key pair
// of a failed exchange, reused by the next GenerateKeyPair; it is zero after
// a fresh parameter fetch.
type ParamsReceived struct {
	Params   domain.DomainParameters
	Retained domain.KeyPair
}

// Start validates params and enters ParamsReceived.
func Start(params domain.DomainParameters) (*ParamsReceived, error) {
	if err := crypto.ValidateParameters(params); err != nil {
		return nil, err
	}
	return &ParamsReceived{Params: params}, nil
}

func (*ParamsReceived) Kind() domain.SessionState { return domain.StateParamsReceived }

// Wipe discards the retained key pair, if any.
func (s *ParamsReceived) Wipe() {
	crypto.WipeInt(s.Retained.PrivateExponent())
	s.Retained = domain.KeyPair{}
}

// GenerateKeyPair moves to KeyPairGenerated. A retained key pair is reused;
// otherwise a new one is drawn from rng.
func (s *ParamsReceived) GenerateKeyPair(rng io.Reader) (*KeyPairGenerated, bool, error) {
	if !s.Retained.IsZero() {
		return &KeyPairGenerated{Params: s.Params, KeyPair: s.Retained}, true, nil
	}
	kp, err := crypto.GenerateKeyPair(rng, s.Params)
	if err != nil {
		return nil, false, err
	}
	return &KeyPairGenerated{Params: s.Params, KeyPair: kp}, false, nil
}

// KeyPairGenerated holds our key pair, ready to be exchanged.
type KeyPairGenerated struct {
	Params  domain.DomainParameters
	KeyPair domain.KeyPair
}

func (*KeyPairGenerated) Kind() domain.SessionState { return domain.StateKeyPairGenerated }

// Wipe zeroes the private exponent.
func (s *KeyPairGenerated) Wipe() {
	crypto.WipeInt(s.KeyPair.PrivateExponent())
	s.KeyPair = domain.KeyPair{}
}

// PublicValue is what we send to the peer.
func (s *KeyPairGenerated) PublicValue() *big.Int {
	return new(big.Int).Set(s.KeyPair.Public)
}

// Abort returns to ParamsReceived keeping the key pair for the next attempt.
// The receiver must not be wiped afterwards; ownership moves to the result.
func (s *KeyPairGenerated) Abort() *ParamsReceived {
	return &ParamsReceived{Params: s.Params, Retained: s.KeyPair}
}

// Complete computes the shared secret with the peer's public value, derives
// the symmetric key with kdf and enters Ready. The shared secret is wiped
// once the key is derived. An out-of-range peer value fails with
// crypto.ErrInvalidPeerKey and leaves the receiver usable.
func (s *KeyPairGenerated) Complete(peerPublic *big.Int, kdf crypto.KDF) (*Ready, error) {
	if kdf == nil {
		kdf = crypto.DeriveSymmetricKey
	}
	secret, err := crypto.ComputeSharedSecret(peerPublic, s.KeyPair, s.Params)
	if err != nil {
		return nil, err
	}
	key := kdf(secret)
	secret.Wipe()
	return &Ready{
		Params:     s.Params,
		KeyPair:    s.KeyPair,
		PeerPublic: new(big.Int).Set(peerPublic),
		key:        key,
	}, nil
}
