package crypto_test

import (
	"errors"
	"math/big"
	"testing"

	"dhlink/internal/domain"
)

// byteReader returns the queued bytes in order and then fails.
type byteReader struct {
	data []byte
}

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, errors.New("byteReader exhausted")
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

// zeroReader returns an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// failingReader always fails.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy source offline") }

func toyParams() domain.DomainParameters {
	return domain.DomainParameters{Modulus: big.NewInt(23), Generator: big.NewInt(5)}
}

func mustInt(t *testing.T, s string, base int) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		t.Fatalf("bad integer literal %q", s)
	}
	return v
}
