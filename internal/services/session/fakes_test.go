package session_test

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

var errUnreachable = errors.New("connection refused")

// fakeSource serves fixed parameters after popping any queued failures.
type fakeSource struct {
	mu     sync.Mutex
	params domain.DomainParameters
	fail   []error
	block  bool
	calls  int
}

func (s *fakeSource) FetchParameters(ctx context.Context) (domain.DomainParameters, error) {
	s.mu.Lock()
	s.calls++
	var err error
	if len(s.fail) > 0 {
		err, s.fail = s.fail[0], s.fail[1:]
	}
	block := s.block
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return domain.DomainParameters{}, ctx.Err()
	}
	if err != nil {
		return domain.DomainParameters{}, err
	}
	return s.params, nil
}

// fakePeer plays the other side of the exchange with its own key pair.
type fakePeer struct {
	mu       sync.Mutex
	params   domain.DomainParameters
	kdf      crypto.KDF
	fail     []error
	override *big.Int
	// called receives once per exchange before any blocking.
	called chan struct{}
	// release, when non-nil, holds each exchange until closed or ctx ends.
	release chan struct{}
	seen    []*big.Int
	key     domain.SymmetricKey
}

func newFakePeer(params domain.DomainParameters) *fakePeer {
	return &fakePeer{params: params, kdf: crypto.DeriveSymmetricKey}
}

func (p *fakePeer) ExchangePublicValue(ctx context.Context, own *big.Int) (*big.Int, error) {
	p.mu.Lock()
	p.seen = append(p.seen, new(big.Int).Set(own))
	var err error
	if len(p.fail) > 0 {
		err, p.fail = p.fail[0], p.fail[1:]
	}
	called, release := p.called, p.release
	p.mu.Unlock()

	if called != nil {
		called <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if p.override != nil {
		return p.override, nil
	}

	kp, err := crypto.GenerateKeyPair(nil, p.params)
	if err != nil {
		return nil, err
	}
	secret, err := crypto.ComputeSharedSecret(own, kp, p.params)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.key = p.kdf(secret)
	p.mu.Unlock()
	return kp.Public, nil
}

func (p *fakePeer) sent() []*big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*big.Int(nil), p.seen...)
}

func (p *fakePeer) decrypt(env domain.EncryptedEnvelope) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return crypto.Decrypt(p.key, env)
}
