package crypto

import (
	"math/big"

	"dhlink/internal/domain"
)

// ComputeSharedSecret returns peerPublic^x mod p for our private exponent x.
//
// peerPublic must lie in (0, p); anything else fails with ErrInvalidPeerKey
// before any exponentiation happens.
func ComputeSharedSecret(
	peerPublic *big.Int,
	own domain.KeyPair,
	params domain.DomainParameters,
) (domain.SharedSecret, error) {
	if err := checkParameters(params); err != nil {
		return domain.SharedSecret{}, err
	}
	if !ValidPublicValue(peerPublic, params) {
		return domain.SharedSecret{}, ErrInvalidPeerKey
	}
	if own.IsZero() {
		return domain.SharedSecret{}, ErrInvalidKeyPair
	}
	s := ModPow(peerPublic, own.PrivateExponent(), params.Modulus)
	return domain.NewSharedSecret(s), nil
}

// ValidPublicValue reports whether v lies in (0, p).
func ValidPublicValue(v *big.Int, params domain.DomainParameters) bool {
	return v != nil && params.Modulus != nil &&
		v.Sign() > 0 && v.Cmp(params.Modulus) < 0
}
