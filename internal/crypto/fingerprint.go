package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"dhlink/internal/domain"
)

var keyFingerprintLabel = []byte("dhlink key fingerprint")

// Fingerprint returns a short hex fingerprint of a public value.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(pub []byte) domain.Fingerprint {
	sum := sha256.Sum256(pub)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}

// FingerprintInt fingerprints the minimal big-endian encoding of v.
func FingerprintInt(v *big.Int) domain.Fingerprint {
	if v == nil {
		return ""
	}
	return Fingerprint(v.Bytes())
}

// FingerprintKey returns a label-separated fingerprint of a symmetric key so
// both parties can compare keys without revealing them.
func FingerprintKey(key domain.SymmetricKey) domain.Fingerprint {
	h := sha256.New()
	h.Write(keyFingerprintLabel)
	h.Write(key[:])
	sum := h.Sum(nil)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
