package types

import (
	"fmt"
	"math/big"
)

// DomainParameters are the public values both parties agree on before an
// exchange: a prime modulus p and a generator g with 2 <= g < p.
//
// The integers are shared between copies; treat them as read-only.
type DomainParameters struct {
	Modulus   *big.Int
	Generator *big.Int
}

// BitLen returns the bit length of the modulus.
func (p DomainParameters) BitLen() int {
	if p.Modulus == nil {
		return 0
	}
	return p.Modulus.BitLen()
}

// String describes the group without printing the full modulus.
func (p DomainParameters) String() string {
	if p.Modulus == nil || p.Generator == nil {
		return "DomainParameters(unset)"
	}
	return fmt.Sprintf("DomainParameters(%d-bit, g=%s)", p.Modulus.BitLen(), p.Generator.String())
}
