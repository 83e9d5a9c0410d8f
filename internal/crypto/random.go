package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// SecureRandom returns the platform CSPRNG. Every function in this package
// that takes an io.Reader falls back to it when given nil.
func SecureRandom() io.Reader { return rand.Reader }

func randOrDefault(rng io.Reader) io.Reader {
	if rng == nil {
		return rand.Reader
	}
	return rng
}

// readRandom fills b completely or fails with ErrInsufficientRandomness.
func readRandom(rng io.Reader, b []byte) error {
	if _, err := io.ReadFull(randOrDefault(rng), b); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientRandomness, err)
	}
	return nil
}
