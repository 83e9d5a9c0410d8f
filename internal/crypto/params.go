package crypto

import (
	"fmt"
	"math/big"

	"dhlink/internal/domain"
)

// primalityRounds is the Miller-Rabin round count for ValidateParameters.
const primalityRounds = 20

var (
	two  = big.NewInt(2)
	five = big.NewInt(5)
)

// ValidateParameters checks that p is a probable prime large enough to leave
// a non-empty private exponent range, and that 2 <= g < p.
func ValidateParameters(params domain.DomainParameters) error {
	if err := checkParameters(params); err != nil {
		return err
	}
	if !params.Modulus.ProbablyPrime(primalityRounds) {
		return fmt.Errorf("%w: modulus is not prime", ErrInvalidParameters)
	}
	return nil
}

// checkParameters is the cheap structural subset of ValidateParameters.
func checkParameters(params domain.DomainParameters) error {
	p, g := params.Modulus, params.Generator
	if p == nil || g == nil {
		return fmt.Errorf("%w: missing modulus or generator", ErrInvalidParameters)
	}
	if p.Cmp(five) < 0 {
		return fmt.Errorf("%w: modulus must be at least 5", ErrInvalidParameters)
	}
	if g.Cmp(two) < 0 || g.Cmp(p) >= 0 {
		return fmt.Errorf("%w: generator out of range", ErrInvalidParameters)
	}
	return nil
}
