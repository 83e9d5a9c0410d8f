package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"dhlink/internal/domain"
)

// IVSize is the CBC initialisation vector length in bytes.
const IVSize = aes.BlockSize

// Encrypt seals plaintext with AES-256-CBC and PKCS#7 padding under a fresh
// IV read from rng (nil selects the platform CSPRNG). No variant accepts a
// caller-supplied IV.
func Encrypt(
	rng io.Reader,
	key domain.SymmetricKey,
	plaintext []byte,
) (domain.EncryptedEnvelope, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return domain.EncryptedEnvelope{}, err
	}
	iv := make([]byte, IVSize)
	if err := readRandom(rng, iv); err != nil {
		return domain.EncryptedEnvelope{}, err
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer Wipe(padded)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return domain.EncryptedEnvelope{
		Ciphertext: B64(ct),
		IV:         B64(iv),
	}, nil
}

// Decrypt opens an envelope produced by Encrypt. Every failure, from bad
// base64 to bad padding, is reported as ErrDecryptionFailed.
//
// CBC carries no MAC, so the padding check is the only integrity signal. A
// wrong key or altered ciphertext passes it roughly once in 256 tries and
// yields garbage with a nil error; a nil error does not prove the key.
func Decrypt(key domain.SymmetricKey, envelope domain.EncryptedEnvelope) ([]byte, error) {
	ct, err := base64.StdEncoding.DecodeString(envelope.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not base64", ErrDecryptionFailed)
	}
	iv, err := base64.StdEncoding.DecodeString(envelope.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv is not base64", ErrDecryptionFailed)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes", ErrDecryptionFailed, IVSize)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not whole blocks", ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)

	out, ok := pkcs7Unpad(pt, aes.BlockSize)
	if !ok {
		Wipe(pt)
		return nil, ErrDecryptionFailed
	}
	return out, nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad checks every padding byte without branching on their values.
func pkcs7Unpad(b []byte, blockSize int) ([]byte, bool) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, blockSize)
	tail := b[len(b)-blockSize:]
	for i := 0; i < blockSize; i++ {
		inPad := subtle.ConstantTimeLessOrEq(blockSize-i, n)
		match := subtle.ConstantTimeByteEq(tail[i], byte(n))
		// Bytes inside the pad must match; bytes outside are unconstrained.
		good &= match | (inPad ^ 1)
	}
	if good != 1 {
		return nil, false
	}
	return b[:len(b)-n], true
}
