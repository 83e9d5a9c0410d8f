package crypto_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

func testKey(t *testing.T, secret int64) domain.SymmetricKey {
	t.Helper()
	return crypto.DeriveSymmetricKey(domain.NewSharedSecret(big.NewInt(secret)))
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKey(t, 2)
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 1000} {
		pt := bytes.Repeat([]byte{'m'}, n)
		env, err := crypto.Encrypt(nil, key, pt)
		if err != nil {
			t.Fatalf("Encrypt(len=%d): %v", n, err)
		}
		ct, err := base64.StdEncoding.DecodeString(env.Ciphertext)
		if err != nil {
			t.Fatalf("ciphertext not base64: %v", err)
		}
		if want := (n/16 + 1) * 16; len(ct) != want {
			t.Fatalf("len=%d: ciphertext %d bytes, want %d", n, len(ct), want)
		}
		got, err := crypto.Decrypt(key, env)
		if err != nil {
			t.Fatalf("Decrypt(len=%d): %v", n, err)
		}
		if !bytes.Equal(got, pt) {
			t.Fatalf("len=%d: round trip mismatch", n)
		}
	}
}

// CBC-AES256 vector from NIST SP 800-38A F.2.5, first block.
func TestEncrypt_KnownAnswer(t *testing.T) {
	keyBytes, _ := hex.DecodeString("603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4")
	iv, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a")
	wantFirst, _ := hex.DecodeString("f58c4c04d6e5f1ba779eabfb5f7bfbd6")

	var key domain.SymmetricKey
	copy(key[:], keyBytes)
	env, err := crypto.Encrypt(&byteReader{data: iv}, key, pt)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if env.IV != base64.StdEncoding.EncodeToString(iv) {
		t.Fatalf("IV = %s, want the bytes drawn from the source", env.IV)
	}
	ct, _ := base64.StdEncoding.DecodeString(env.Ciphertext)
	if len(ct) != 32 {
		t.Fatalf("ciphertext %d bytes, want 32 (one data block and one pad block)", len(ct))
	}
	if !bytes.Equal(ct[:16], wantFirst) {
		t.Fatalf("first block = %x, want %x", ct[:16], wantFirst)
	}
	got, err := crypto.Decrypt(key, env)
	if err != nil || !bytes.Equal(got, pt) {
		t.Fatalf("Decrypt = %x, %v", got, err)
	}
}

func TestEncrypt_FreshIVPerMessage(t *testing.T) {
	key := testKey(t, 2)
	pt := []byte("same plaintext")
	seenIV := map[string]bool{}
	seenCT := map[string]bool{}
	for i := 0; i < 64; i++ {
		env, err := crypto.Encrypt(nil, key, pt)
		if err != nil {
			t.Fatal(err)
		}
		if seenIV[env.IV] || seenCT[env.Ciphertext] {
			t.Fatalf("message %d repeated an IV or ciphertext", i)
		}
		seenIV[env.IV] = true
		seenCT[env.Ciphertext] = true
	}
}

func TestEncrypt_RandomnessFailure(t *testing.T) {
	_, err := crypto.Encrypt(failingReader{}, testKey(t, 2), []byte("hi"))
	if !errors.Is(err, crypto.ErrInsufficientRandomness) {
		t.Fatalf("err = %v, want ErrInsufficientRandomness", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	// Fixed IV and keys keep this deterministic: CBC carries no MAC, so a wrong
	// key is only caught when the garbage fails the padding check.
	iv := bytes.Repeat([]byte{0x42}, 16)
	env, err := crypto.Encrypt(&byteReader{data: iv}, testKey(t, 2), []byte("attack at dawn"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := crypto.Decrypt(testKey(t, 3), env); !errors.Is(err, crypto.ErrDecryptionFailed) {
		t.Fatalf("err = %v, want ErrDecryptionFailed", err)
	}
}

// Without a MAC a wrong key is caught only by the padding check. Sweeping the
// last IV byte over every value makes exactly one candidate end in 0x01, so
// at least one decryption succeeds and returns bytes that were never sent.
func TestDecrypt_WrongKeyCanPassPadding(t *testing.T) {
	key := testKey(t, 3)
	ct := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x5a}, 16))

	passed := 0
	for i := 0; i < 256; i++ {
		iv := make([]byte, 16)
		iv[15] = byte(i)
		pt, err := crypto.Decrypt(key, domain.EncryptedEnvelope{
			Ciphertext: ct,
			IV:         base64.StdEncoding.EncodeToString(iv),
		})
		if err != nil {
			if !errors.Is(err, crypto.ErrDecryptionFailed) {
				t.Fatalf("iv %d: err = %v", i, err)
			}
			continue
		}
		passed++
		if len(pt) >= 16 {
			t.Fatalf("iv %d: padding not stripped, got %d bytes", i, len(pt))
		}
	}
	if passed == 0 {
		t.Fatal("no candidate passed the padding check")
	}
}

func TestDecrypt_MalformedEnvelopes(t *testing.T) {
	key := testKey(t, 2)
	good, err := crypto.Encrypt(nil, key, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	b64 := base64.StdEncoding.EncodeToString
	cases := map[string]domain.EncryptedEnvelope{
		"ciphertext not base64": {Ciphertext: "!!!", IV: good.IV},
		"iv not base64":         {Ciphertext: good.Ciphertext, IV: "%%%"},
		"short iv":              {Ciphertext: good.Ciphertext, IV: b64(make([]byte, 8))},
		"empty ciphertext":      {Ciphertext: "", IV: good.IV},
		"partial block":         {Ciphertext: b64(make([]byte, 20)), IV: good.IV},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := crypto.Decrypt(key, env); !errors.Is(err, crypto.ErrDecryptionFailed) {
				t.Fatalf("err = %v, want ErrDecryptionFailed", err)
			}
		})
	}
}
