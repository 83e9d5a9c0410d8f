package crypto

import (
	"fmt"
	"io"
	"math/big"

	"dhlink/internal/domain"
)

// maxSampleAttempts bounds rejection sampling. Even for p = 5 a healthy source
// lands in range one draw in 8, so exhausting this means the source is stuck.
const maxSampleAttempts = 1024

// GenerateKeyPair draws a private exponent x uniformly from [2, p-2) using
// rng (nil selects the platform CSPRNG) and returns it with g^x mod p.
func GenerateKeyPair(rng io.Reader, params domain.DomainParameters) (domain.KeyPair, error) {
	if err := checkParameters(params); err != nil {
		return domain.KeyPair{}, err
	}
	x, err := samplePrivateExponent(rng, params.Modulus)
	if err != nil {
		return domain.KeyPair{}, err
	}
	public := ModPow(params.Generator, x, params.Modulus)
	return domain.NewKeyPair(x, public), nil
}

// samplePrivateExponent reads ceil(bitlen(p)/8) bytes per draw, clears the
// bits above bitlen(p) and rejects anything outside [2, p-2).
func samplePrivateExponent(rng io.Reader, p *big.Int) (*big.Int, error) {
	upper := new(big.Int).Sub(p, two)
	bitLen := p.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	defer Wipe(buf)
	mask := byte(0xff >> uint(len(buf)*8-bitLen))

	x := new(big.Int)
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		if err := readRandom(rng, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		x.SetBytes(buf)
		if x.Cmp(two) >= 0 && x.Cmp(upper) < 0 {
			return x, nil
		}
	}
	WipeInt(x)
	return nil, fmt.Errorf(
		"%w: no in-range sample after %d draws",
		ErrInsufficientRandomness,
		maxSampleAttempts,
	)
}
