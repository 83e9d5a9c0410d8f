package interfaces

import (
	"context"

	domaintypes "dhlink/internal/domain/types"
)

// Cipher is the encrypt/decrypt capability a ready session exposes to
// message-composition code.
type Cipher interface {
	Encrypt(plaintext []byte) (domaintypes.EncryptedEnvelope, error)
	Decrypt(envelope domaintypes.EncryptedEnvelope) ([]byte, error)
}

// SessionService runs the key exchange and, once ready, encrypts and decrypts.
type SessionService interface {
	Cipher
	Establish(ctx context.Context) error
	Refresh(ctx context.Context) error
	Reset()
	State() domaintypes.SessionState
	KeyFingerprint() (domaintypes.Fingerprint, bool)
}

// MessageService encrypts, sends, fetches and decrypts messages.
type MessageService interface {
	Send(
		ctx context.Context,
		to domaintypes.Username,
		plaintext []byte,
	) (domaintypes.MessageID, error)
	Receive(ctx context.Context, limit int) ([]domaintypes.DecryptedMessage, error)
}
