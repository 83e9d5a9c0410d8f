package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"dhlink/internal/domain"
)

// KDF names accepted by KDFByName.
const (
	KDFSHA256     = "sha256"
	KDFHKDFSHA256 = "hkdf-sha256"
)

var hkdfInfo = []byte("dhlink/v1 aes-256-cbc")

// KDF maps a shared secret to a symmetric key. Both parties must use the same
// one.
type KDF func(secret domain.SharedSecret) domain.SymmetricKey

// DeriveSymmetricKey hashes the minimal big-endian encoding of the secret with
// SHA-256. It takes no salt or context so that any peer hashing the same bytes
// arrives at the same key.
func DeriveSymmetricKey(secret domain.SharedSecret) domain.SymmetricKey {
	b := secret.Bytes()
	defer Wipe(b)
	return domain.SymmetricKey(sha256.Sum256(b))
}

// DeriveSymmetricKeyHKDF runs HKDF-SHA256 over the same bytes with a fixed
// info label. It is not interoperable with DeriveSymmetricKey.
func DeriveSymmetricKeyHKDF(secret domain.SharedSecret) domain.SymmetricKey {
	b := secret.Bytes()
	defer Wipe(b)
	var key domain.SymmetricKey
	r := hkdf.New(sha256.New, b, nil, hkdfInfo)
	// HKDF-SHA256 can emit up to 8160 bytes; 32 never fails.
	_, _ = io.ReadFull(r, key[:])
	return key
}

// KDFByName resolves a configured KDF name. The empty name selects
// DeriveSymmetricKey.
func KDFByName(name string) (KDF, error) {
	switch name {
	case "", KDFSHA256:
		return DeriveSymmetricKey, nil
	case KDFHKDFSHA256:
		return DeriveSymmetricKeyHKDF, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, name)
	}
}
