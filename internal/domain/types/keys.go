package types

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"math/big"
)

// SymmetricKeySize is the length of a derived key in bytes (AES-256).
const SymmetricKeySize = 32

// KeyPair is one party's Diffie-Hellman key pair.
//
// The private exponent is unexported and never rendered by fmt or
// encoding/json; only the public value leaves the process.
type KeyPair struct {
	private *big.Int
	Public  *big.Int
}

// NewKeyPair assembles a key pair from its private exponent and public value.
func NewKeyPair(private, public *big.Int) KeyPair {
	return KeyPair{private: private, Public: public}
}

// PrivateExponent returns the secret exponent. Callers must not log or
// transmit it.
func (k KeyPair) PrivateExponent() *big.Int { return k.private }

// IsZero reports whether the key pair has not been generated.
func (k KeyPair) IsZero() bool { return k.private == nil || k.Public == nil }

// String implements fmt.Stringer without the private exponent.
func (k KeyPair) String() string {
	if k.Public == nil {
		return "KeyPair(empty)"
	}
	return fmt.Sprintf("KeyPair(public=%d bits, private=redacted)", k.Public.BitLen())
}

// GoString keeps %#v from reaching the private field.
func (k KeyPair) GoString() string { return k.String() }

// MarshalJSON emits the public value only.
func (k KeyPair) MarshalJSON() ([]byte, error) {
	if k.Public == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(struct {
		Public string `json:"public"`
	}{Public: "0x" + k.Public.Text(16)})
}

// SharedSecret is the value both parties compute from the exchange. It lives
// only in memory.
type SharedSecret struct {
	value *big.Int
}

// NewSharedSecret wraps v.
func NewSharedSecret(v *big.Int) SharedSecret { return SharedSecret{value: v} }

// Bytes returns the minimal big-endian encoding of the secret.
func (s SharedSecret) Bytes() []byte {
	if s.value == nil {
		return nil
	}
	return s.value.Bytes()
}

// Int returns a copy of the secret as an integer.
func (s SharedSecret) Int() *big.Int {
	if s.value == nil {
		return nil
	}
	return new(big.Int).Set(s.value)
}

// Equal reports whether two secrets hold the same value.
func (s SharedSecret) Equal(o SharedSecret) bool {
	if s.value == nil || o.value == nil {
		return s.value == o.value
	}
	return s.value.Cmp(o.value) == 0
}

// Wipe zeroes the words backing the secret. Copies returned by Int are not
// affected.
func (s SharedSecret) Wipe() {
	if s.value == nil {
		return
	}
	words := s.value.Bits()
	for i := range words {
		words[i] = 0
	}
	s.value.SetInt64(0)
}

// String implements fmt.Stringer without revealing the value.
func (s SharedSecret) String() string { return "SharedSecret(redacted)" }

// GoString keeps %#v from reaching the value.
func (s SharedSecret) GoString() string { return s.String() }

// SymmetricKey is the AES-256 key derived from a SharedSecret.
type SymmetricKey [SymmetricKeySize]byte

// Slice returns the key as a []byte aliasing k, so wiping the slice wipes
// the key.
func (k *SymmetricKey) Slice() []byte { return k[:] }

// Equal compares two keys in constant time.
func (k SymmetricKey) Equal(o SymmetricKey) bool {
	return subtle.ConstantTimeCompare(k[:], o[:]) == 1
}

// String implements fmt.Stringer without revealing key bytes.
func (k SymmetricKey) String() string { return "SymmetricKey(redacted)" }

// GoString keeps %#v from reaching the key bytes.
func (k SymmetricKey) GoString() string { return k.String() }
