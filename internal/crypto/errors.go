package crypto

import "errors"

var (
	// ErrInsufficientRandomness is returned when the random source fails or
	// cannot produce a usable sample. It is not retryable.
	ErrInsufficientRandomness = errors.New("crypto: insufficient randomness")

	// ErrInvalidPeerKey is returned when a peer public value lies outside (0, p).
	ErrInvalidPeerKey = errors.New("crypto: invalid peer public value")

	// ErrDecryptionFailed is returned for any envelope that cannot be opened
	// under the given key.
	ErrDecryptionFailed = errors.New("crypto: decryption failed")

	// ErrInvalidParameters is returned when domain parameters are malformed.
	ErrInvalidParameters = errors.New("crypto: invalid domain parameters")

	// ErrInvalidKeyPair is returned when a key pair has not been generated.
	ErrInvalidKeyPair = errors.New("crypto: key pair not generated")

	// ErrInvalidEncoding is returned when a wire integer cannot be parsed.
	ErrInvalidEncoding = errors.New("crypto: invalid integer encoding")

	// ErrUnknownKDF is returned by KDFByName for unsupported names.
	ErrUnknownKDF = errors.New("crypto: unknown key derivation function")
)
