package session

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/pion/logging"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
	"dhlink/internal/protocol/handshake"
)

// DefaultTimeout bounds each network step when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// weakModulusBits is the size below which a served group is logged as weak.
const weakModulusBits = 512

// Config configures a Service.
type Config struct {
	// Params supplies the domain parameters. Required.
	Params domain.ParameterSource

	// Peer answers the public value exchange. Required.
	Peer domain.PeerExchange

	// Rand is the entropy source for key pairs and IVs.
	// If nil, crypto/rand is used.
	Rand io.Reader

	// KDF derives the symmetric key from the shared secret.
	// If nil, crypto.DeriveSymmetricKey is used.
	KDF crypto.KDF

	// Timeout bounds every network step. Zero selects DefaultTimeout.
	Timeout time.Duration

	// LoggerFactory for creating loggers. If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Service is the session orchestrator.
//
// It drives the handshake through its states:
//   - FetchParameters: Uninitialized -> ParamsReceived.
//   - GenerateKeyPair: ParamsReceived -> KeyPairGenerated.
//   - ExchangeKeys: KeyPairGenerated -> Ready, or back to ParamsReceived
//     with the key pair retained when the peer fails.
//
// Establish runs whichever of these remain. Every Service owns its own key
// material; two services never share state.
type Service struct {
	params  domain.ParameterSource
	peer    domain.PeerExchange
	rng     io.Reader
	kdf     crypto.KDF
	timeout time.Duration
	log     logging.LeveledLogger

	mu    sync.Mutex
	state handshake.State
	// epoch increments whenever the state is discarded; a step compares it
	// before applying its result.
	epoch uint64
	busy  bool
}

// New constructs a Service in the Uninitialized state.
func New(cfg Config) *Service {
	s := &Service{
		params:  cfg.Params,
		peer:    cfg.Peer,
		rng:     cfg.Rand,
		kdf:     cfg.KDF,
		timeout: cfg.Timeout,
		state:   &handshake.Uninitialized{},
	}
	if s.rng == nil {
		s.rng = crypto.SecureRandom()
	}
	if s.kdf == nil {
		s.kdf = crypto.DeriveSymmetricKey
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("session")
	}
	return s
}

// State returns the current phase.
func (s *Service) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Kind()
}

// Parameters returns the agreed domain parameters once they are received.
func (s *Service) Parameters() (domain.DomainParameters, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch st := s.state.(type) {
	case *handshake.ParamsReceived:
		return st.Params, true
	case *handshake.KeyPairGenerated:
		return st.Params, true
	case *handshake.Ready:
		return st.Params, true
	default:
		return domain.DomainParameters{}, false
	}
}

// KeyFingerprint returns a fingerprint of the session key when Ready.
func (s *Service) KeyFingerprint() (domain.Fingerprint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.(*handshake.Ready)
	if !ok {
		return "", false
	}
	return r.Fingerprint(), true
}

// FetchParameters asks the parameter source for the group and validates it.
//
// On any failure the session stays Uninitialized and the call may be
// retried; the error wraps ErrParametersUnavailable.
func (s *Service) FetchParameters(ctx context.Context) error {
	_, epoch, err := s.begin(domain.StateUninitialized, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	stepCtx, cancel := context.WithTimeout(ctx, s.timeout)
	params, fetchErr := s.params.FetchParameters(stepCtx)
	cancel()

	// Primality testing a large modulus is slow; keep it outside the lock.
	var next *handshake.ParamsReceived
	if fetchErr == nil {
		next, fetchErr = handshake.Start(params)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return ErrSuperseded
	}
	s.busy = false

	if fetchErr != nil {
		if s.log != nil {
			s.log.Warnf("parameter fetch failed after %s: %v", time.Since(start), fetchErr)
		}
		return fmt.Errorf("%w: %w", ErrParametersUnavailable, fetchErr)
	}
	if s.log != nil {
		if params.BitLen() < weakModulusBits {
			s.log.Warnf("served modulus is only %d bits", params.BitLen())
		}
		s.log.Debugf("parameters received: %s in %s", params, time.Since(start))
	}
	s.state = next
	return nil
}

// GenerateKeyPair draws our key pair, or reuses the one retained from a
// failed exchange.
func (s *Service) GenerateKeyPair() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrStepInProgress
	}
	pr, ok := s.state.(*handshake.ParamsReceived)
	if !ok {
		return s.wrongStateLocked(domain.StateParamsReceived)
	}

	kg, reused, err := pr.GenerateKeyPair(s.rng)
	if err != nil {
		return err
	}
	s.state = kg
	if s.log != nil {
		s.log.Debugf("key pair ready: public=%s reused=%t",
			crypto.FingerprintInt(kg.KeyPair.Public), reused)
	}
	return nil
}

// Regenerate discards the current or retained key pair so the next
// GenerateKeyPair draws a fresh one. It is valid in ParamsReceived and
// KeyPairGenerated.
func (s *Service) Regenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrStepInProgress
	}
	switch st := s.state.(type) {
	case *handshake.ParamsReceived:
		st.Wipe()
	case *handshake.KeyPairGenerated:
		params := st.Params
		st.Wipe()
		s.state = &handshake.ParamsReceived{Params: params}
	default:
		return s.wrongStateLocked(domain.StateParamsReceived)
	}
	if s.log != nil {
		s.log.Debug("key pair discarded")
	}
	return nil
}

// ExchangeKeys sends our public value, validates the peer's and derives the
// session key.
//
// A peer failure, timeout or out-of-range peer value returns to
// ParamsReceived keeping the key pair, wrapped in ErrHandshakeFailed (and
// crypto.ErrInvalidPeerKey for a bad value). If ctx itself is cancelled the
// exchange counts as abandoned and all state is discarded.
func (s *Service) ExchangeKeys(ctx context.Context) error {
	var own *big.Int
	st, epoch, err := s.begin(domain.StateKeyPairGenerated, func(st handshake.State) {
		own = st.(*handshake.KeyPairGenerated).PublicValue()
	})
	if err != nil {
		return err
	}
	kg := st.(*handshake.KeyPairGenerated)

	start := time.Now()
	stepCtx, cancel := context.WithTimeout(ctx, s.timeout)
	peerPublic, exErr := s.peer.ExchangePublicValue(stepCtx, own)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return ErrSuperseded
	}
	s.busy = false

	if exErr != nil {
		if ctx.Err() != nil {
			s.discardLocked()
			if s.log != nil {
				s.log.Infof("exchange abandoned, state discarded: %v", ctx.Err())
			}
			return fmt.Errorf("%w: abandoned: %w", ErrHandshakeFailed, exErr)
		}
		s.state = kg.Abort()
		if s.log != nil {
			s.log.Warnf("exchange failed after %s, key pair retained: %v", time.Since(start), exErr)
		}
		return fmt.Errorf("%w: %w", ErrHandshakeFailed, exErr)
	}

	ready, err := kg.Complete(peerPublic, s.kdf)
	if err != nil {
		s.state = kg.Abort()
		if s.log != nil {
			s.log.Warnf("peer value rejected: %v", err)
		}
		return fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}
	s.state = ready
	if s.log != nil {
		s.log.Infof("session ready: peer=%s key=%s in %s",
			crypto.FingerprintInt(peerPublic), ready.Fingerprint(), time.Since(start))
	}
	return nil
}

// Establish runs the remaining handshake steps until the session is Ready or
// a step fails. It is a no-op when already Ready.
func (s *Service) Establish(ctx context.Context) error {
	for {
		var err error
		switch s.State() {
		case domain.StateUninitialized:
			err = s.FetchParameters(ctx)
		case domain.StateParamsReceived:
			err = s.GenerateKeyPair()
		case domain.StateKeyPairGenerated:
			err = s.ExchangeKeys(ctx)
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Refresh wipes the current key at once and runs the full handshake again.
// Any step in flight is superseded. The peer is not told; it must refresh
// too before old and new messages interoperate.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.discardLocked()
	s.mu.Unlock()
	if s.log != nil {
		s.log.Info("refreshing session")
	}
	return s.Establish(ctx)
}

// Reset wipes all key material and returns to Uninitialized.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
	if s.log != nil {
		s.log.Info("session reset")
	}
}

// Encrypt seals plaintext under the session key with a fresh IV.
func (s *Service) Encrypt(plaintext []byte) (domain.EncryptedEnvelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.(*handshake.Ready)
	if !ok {
		return domain.EncryptedEnvelope{}, ErrSessionNotEstablished
	}
	return r.Encrypt(s.rng, plaintext)
}

// Decrypt opens an envelope under the session key. A failure leaves the
// session Ready.
func (s *Service) Decrypt(envelope domain.EncryptedEnvelope) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.(*handshake.Ready)
	if !ok {
		return nil, ErrSessionNotEstablished
	}
	return r.Decrypt(envelope)
}

// begin reserves the session for a network step that starts in want. If
// snapshot is non-nil it runs under the lock, so it may read the state before
// a concurrent Reset wipes it.
func (s *Service) begin(
	want domain.SessionState,
	snapshot func(handshake.State),
) (handshake.State, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, 0, ErrStepInProgress
	}
	if s.state.Kind() != want {
		return nil, 0, s.wrongStateLocked(want)
	}
	if snapshot != nil {
		snapshot(s.state)
	}
	s.busy = true
	return s.state, s.epoch, nil
}

func (s *Service) discardLocked() {
	s.state.Wipe()
	s.state = &handshake.Uninitialized{}
	s.epoch++
	s.busy = false
}

func (s *Service) wrongStateLocked(want domain.SessionState) error {
	return fmt.Errorf("%w: in %s, need %s", ErrWrongState, s.state.Kind(), want)
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
