package responder

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/monnand/dhkx"
	"github.com/pion/logging"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

var (
	// ErrNoSession is returned when a user has not completed an exchange.
	ErrNoSession = errors.New("responder: no key established for user")

	// ErrUnknownMessage is returned for a message ID the responder never
	// stored.
	ErrUnknownMessage = errors.New("responder: unknown message")

	// ErrMissingUser is returned when a request names no user.
	ErrMissingUser = errors.New("responder: missing user")
)

// relayName is the sender of receipts and the recipient of submitted
// messages.
const relayName domain.Username = "relay"

// maxKeyDraws bounds the redraws in privateKey.
const maxKeyDraws = 1024

// Receipt prefixes queued back to the sender of a message.
const (
	receiptOK         = "ack:"
	receiptUnreadable = "unreadable:"
)

// Config configures a Responder.
type Config struct {
	// Params is the group served to clients. If zero, the RFC 3526 1536-bit
	// MODP group is used.
	Params domain.DomainParameters

	// KDF derives per-user keys. If nil, crypto.DeriveSymmetricKey is used.
	KDF crypto.KDF

	// Rand feeds private keys and receipt IVs. If nil, crypto/rand is used.
	Rand io.Reader

	// Now stamps messages. If nil, time.Now is used.
	Now func() time.Time

	// LoggerFactory for creating loggers. If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Responder holds per-user keys, received messages and outgoing mailboxes.
// It is safe for concurrent use.
type Responder struct {
	params domain.DomainParameters
	group  *dhkx.DHGroup
	kdf    crypto.KDF
	rng    io.Reader
	now    func() time.Time
	log    logging.LeveledLogger

	mu        sync.Mutex
	keys      map[domain.Username]*domain.SymmetricKey
	received  map[domain.MessageID]domain.Message
	mailboxes map[domain.Username][]domain.Message
	nextID    uint64
}

// New constructs a Responder.
func New(cfg Config) *Responder {
	r := &Responder{
		params:    cfg.Params,
		kdf:       cfg.KDF,
		rng:       cfg.Rand,
		now:       cfg.Now,
		keys:      make(map[domain.Username]*domain.SymmetricKey),
		received:  make(map[domain.MessageID]domain.Message),
		mailboxes: make(map[domain.Username][]domain.Message),
	}
	if r.params.Modulus == nil || r.params.Generator == nil {
		r.params = crypto.RFC3526Group5()
	}
	if r.kdf == nil {
		r.kdf = crypto.DeriveSymmetricKey
	}
	if r.rng == nil {
		r.rng = crypto.SecureRandom()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if cfg.LoggerFactory != nil {
		r.log = cfg.LoggerFactory.NewLogger("responder")
	}
	r.group = dhkx.CreateGroup(
		new(big.Int).Set(r.params.Modulus),
		new(big.Int).Set(r.params.Generator),
	)
	return r
}

// Parameters returns the served group.
func (r *Responder) Parameters() domain.DomainParameters {
	return r.params
}

// Exchange answers a client's public value. It draws a fresh private key for
// this exchange, replaces any key previously held for user and returns the
// responder's public value.
func (r *Responder) Exchange(user domain.Username, clientPublic *big.Int) (*big.Int, error) {
	if user == "" {
		return nil, ErrMissingUser
	}
	// dhkx bounds-checks too, but only sees magnitudes.
	if !crypto.ValidPublicValue(clientPublic, r.params) {
		return nil, crypto.ErrInvalidPeerKey
	}

	priv, err := r.privateKey()
	if err != nil {
		return nil, err
	}
	shared, err := r.group.ComputeKey(dhkx.NewPublicKey(clientPublic.Bytes()), priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrInvalidPeerKey, err)
	}

	// dhkx pads to the modulus length; the KDF hashes the minimal encoding.
	padded := shared.Bytes()
	secret := domain.NewSharedSecret(new(big.Int).SetBytes(padded))
	crypto.Wipe(padded)
	key := r.kdf(secret)
	secret.Wipe()

	public := new(big.Int).SetBytes(priv.Bytes())
	fp := crypto.FingerprintKey(key)

	r.mu.Lock()
	crypto.WipeKey(r.keys[user])
	r.keys[user] = &key
	r.mu.Unlock()

	if r.log != nil {
		r.log.Infof("key established for %s: client=%s key=%s",
			user, crypto.FingerprintInt(clientPublic), fp)
	}
	return public, nil
}

// privateKey draws a dhkx key whose exponent lies in [2, p-2]. dhkx samples
// from (0, p) and hides the exponent, so the excluded draws are recognised by
// their public value: x = 1 gives g and x = p-1 gives 1.
func (r *Responder) privateKey() (*dhkx.DHKey, error) {
	one := big.NewInt(1)
	for i := 0; i < maxKeyDraws; i++ {
		priv, err := r.group.GeneratePrivateKey(r.rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", crypto.ErrInsufficientRandomness, err)
		}
		y := new(big.Int).SetBytes(priv.Bytes())
		if y.Cmp(one) != 0 && y.Cmp(r.params.Generator) != 0 {
			return priv, nil
		}
	}
	return nil, fmt.Errorf("%w: no usable private key in %d draws",
		crypto.ErrInsufficientRandomness, maxKeyDraws)
}

// KeyFingerprint returns the fingerprint of the key held for user.
func (r *Responder) KeyFingerprint(user domain.Username) (domain.Fingerprint, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[user]
	if !ok {
		return "", false
	}
	return crypto.FingerprintKey(*key), true
}

// Forget drops the key held for user. Messages they sent can no longer be
// revealed.
func (r *Responder) Forget(user domain.Username) {
	r.mu.Lock()
	defer r.mu.Unlock()
	crypto.WipeKey(r.keys[user])
	delete(r.keys, user)
}

// Submit stores an envelope from user and queues an encrypted receipt back.
//
// The receipt reads "ack:<id>" if the envelope decrypted under the user's
// key, "unreadable:<id>" otherwise. Submit fails only when user has no key.
func (r *Responder) Submit(user domain.Username, env domain.EncryptedEnvelope) (domain.MessageID, error) {
	if user == "" {
		return "", ErrMissingUser
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.keys[user]
	if !ok {
		return "", ErrNoSession
	}
	r.nextID++
	id := domain.MessageID(fmt.Sprintf("m%d", r.nextID))
	r.received[id] = domain.Message{
		ID:        id,
		From:      user,
		To:        relayName,
		Envelope:  env,
		Timestamp: r.now().UTC().Unix(),
	}

	receipt := receiptOK + string(id)
	plain, err := crypto.Decrypt(*key, env)
	if err != nil {
		receipt = receiptUnreadable + string(id)
		if r.log != nil {
			r.log.Warnf("message %s from %s did not decrypt", id, user)
		}
	} else {
		crypto.Wipe(plain)
	}
	if err := r.queueLocked(user, key, []byte(receipt)); err != nil {
		// The message is stored; only the receipt is lost.
		if r.log != nil {
			r.log.Errorf("receipt for %s not queued: %v", id, err)
		}
	}
	return id, nil
}

// Reveal decrypts a message user sent, with the key currently held for user.
// After the user refreshes, older messages no longer decrypt. Messages sent
// by someone else are reported as unknown.
func (r *Responder) Reveal(user domain.Username, id domain.MessageID) (domain.Message, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.received[id]
	if !ok || msg.From != user {
		return domain.Message{}, nil, ErrUnknownMessage
	}
	key, ok := r.keys[msg.From]
	if !ok {
		return msg, nil, ErrNoSession
	}
	plain, err := crypto.Decrypt(*key, msg.Envelope)
	if err != nil {
		return msg, nil, err
	}
	return msg, plain, nil
}

// Fetch returns up to limit queued messages for user, oldest first. A limit
// of zero or less returns all.
func (r *Responder) Fetch(user domain.Username, limit int) []domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.mailboxes[user]
	if limit <= 0 || limit > len(q) {
		limit = len(q)
	}
	return append([]domain.Message(nil), q[:limit]...)
}

// Ack drops the first count queued messages for user and returns how many
// were dropped.
func (r *Responder) Ack(user domain.Username, count int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.mailboxes[user]
	if count < 0 {
		count = 0
	}
	if count > len(q) {
		count = len(q)
	}
	r.mailboxes[user] = q[count:]
	return count
}

func (r *Responder) queueLocked(user domain.Username, key *domain.SymmetricKey, plaintext []byte) error {
	env, err := crypto.Encrypt(r.rng, *key, plaintext)
	if err != nil {
		return err
	}
	r.nextID++
	r.mailboxes[user] = append(r.mailboxes[user], domain.Message{
		ID:        domain.MessageID(fmt.Sprintf("m%d", r.nextID)),
		From:      relayName,
		To:        user,
		Envelope:  env,
		Timestamp: r.now().UTC().Unix(),
	})
	return nil
}
