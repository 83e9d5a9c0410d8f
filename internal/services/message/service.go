package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pion/logging"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

var (
	// ErrUnreadable marks a received envelope that did not decrypt under the
	// current key. It is set on DecryptedMessage.Err, never returned.
	ErrUnreadable = errors.New("message: unreadable under current key")

	// ErrOutbox is returned by Send when the message went out but could not
	// be logged locally. The returned ID is valid.
	ErrOutbox = errors.New("message: sent but not recorded in outbox")
)

// Session is the part of a session the message service needs.
type Session interface {
	domain.Cipher
	KeyFingerprint() (domain.Fingerprint, bool)
}

// Config configures a Service.
type Config struct {
	// Session provides encryption. Required.
	Session Session

	// Transport carries envelopes. Required.
	Transport domain.MessageTransport

	// Outbox records sent envelopes. Optional.
	Outbox domain.OutboxStore

	// Now stamps outbox records. If nil, time.Now is used.
	Now func() time.Time

	// LoggerFactory for creating loggers. If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Service sends and receives messages under the session key.
//
// High-level flow:
//   - Send: encrypt under the session key, post via the transport, then log
//     the envelope to the outbox.
//   - Receive: fetch envelopes, decrypt each, then ack the ones handled.
type Service struct {
	session   Session
	transport domain.MessageTransport
	outbox    domain.OutboxStore
	now       func() time.Time
	log       logging.LeveledLogger
}

// New constructs a Message Service.
func New(cfg Config) *Service {
	s := &Service{
		session:   cfg.Session,
		transport: cfg.Transport,
		outbox:    cfg.Outbox,
		now:       cfg.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if cfg.LoggerFactory != nil {
		s.log = cfg.LoggerFactory.NewLogger("message")
	}
	return s
}

// Send encrypts plaintext and posts it.
//
// Encryption failures (including a session that is not ready) return before
// anything is sent. If the outbox write fails after a successful post, the
// ID is returned together with an error wrapping ErrOutbox.
func (s *Service) Send(
	ctx context.Context,
	to domain.Username,
	plaintext []byte,
) (domain.MessageID, error) {
	env, err := s.session.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	// Fingerprint now; a concurrent refresh may replace the key before the
	// post returns.
	fp, _ := s.session.KeyFingerprint()

	id, err := s.transport.SendEnvelope(ctx, env)
	if err != nil {
		return "", fmt.Errorf("send to %q: %w", to, err)
	}
	if s.log != nil {
		s.log.Debugf("sent %s to %s under key %s (%d bytes)", id, to, fp, len(env.Ciphertext))
	}

	if s.outbox == nil {
		return id, nil
	}
	rec := domain.OutboxRecord{
		ID:             id,
		To:             to,
		Envelope:       env,
		KeyFingerprint: fp,
		SentUTC:        s.now().UTC().Unix(),
	}
	if err := s.outbox.AppendOutbox(rec); err != nil {
		if s.log != nil {
			s.log.Warnf("outbox write failed for %s: %v", id, err)
		}
		return id, fmt.Errorf("%w: %w", ErrOutbox, err)
	}
	return id, nil
}

// Receive fetches up to limit queued messages and decrypts them in order.
//
// An envelope that fails to decrypt is returned with Err wrapping
// ErrUnreadable and crypto.ErrDecryptionFailed; it still counts as handled.
// Any other decrypt error (for example the session being reset mid-batch)
// stops processing and leaves the rest queued. Only handled messages are
// acked.
func (s *Service) Receive(ctx context.Context, limit int) ([]domain.DecryptedMessage, error) {
	msgs, err := s.transport.FetchMessages(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	out := make([]domain.DecryptedMessage, 0, len(msgs))
	var stopErr error
	for _, m := range msgs {
		dm := domain.DecryptedMessage{ID: m.ID, From: m.From, Timestamp: m.Timestamp}
		plain, err := s.session.Decrypt(m.Envelope)
		switch {
		case err == nil:
			dm.Plaintext = plain
		case errors.Is(err, crypto.ErrDecryptionFailed):
			dm.Err = fmt.Errorf("%w: %w", ErrUnreadable, err)
			if s.log != nil {
				s.log.Warnf("message %s from %s unreadable", m.ID, m.From)
			}
		default:
			stopErr = fmt.Errorf("decrypt %s: %w", m.ID, err)
		}
		if stopErr != nil {
			break
		}
		out = append(out, dm)
	}

	// Ack only what we handled. If zero, do nothing.
	if len(out) > 0 {
		if err := s.transport.AckMessages(ctx, len(out)); err != nil {
			return out, fmt.Errorf("ack %d messages: %w", len(out), err)
		}
	}
	return out, stopErr
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
