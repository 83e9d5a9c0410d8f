package handshake

import (
	"io"
	"math/big"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

// Ready is the established state. It owns the derived symmetric key; the key
// is reachable only through Encrypt, Decrypt and Fingerprint.
type Ready struct {
	Params     domain.DomainParameters
	KeyPair    domain.KeyPair
	PeerPublic *big.Int
	key        domain.SymmetricKey
}

func (*Ready) Kind() domain.SessionState { return domain.StateReady }

// Wipe zeroes the symmetric key and the private exponent.
func (r *Ready) Wipe() {
	crypto.WipeKey(&r.key)
	crypto.WipeInt(r.KeyPair.PrivateExponent())
	r.KeyPair = domain.KeyPair{}
}

// Encrypt seals plaintext under the session key with a fresh IV from rng.
func (r *Ready) Encrypt(rng io.Reader, plaintext []byte) (domain.EncryptedEnvelope, error) {
	return crypto.Encrypt(rng, r.key, plaintext)
}

// Decrypt opens an envelope sealed under the session key.
func (r *Ready) Decrypt(envelope domain.EncryptedEnvelope) ([]byte, error) {
	return crypto.Decrypt(r.key, envelope)
}

// Fingerprint identifies the session key without revealing it.
func (r *Ready) Fingerprint() domain.Fingerprint {
	return crypto.FingerprintKey(r.key)
}
