package crypto

import "math/big"

// ModPow returns base^exponent mod modulus using right-to-left binary
// (square-and-multiply) exponentiation.
//
// base is first reduced into [0, modulus). modulus must be positive and
// exponent non-negative; like math/big division by zero, violating either
// panics. ModPow(x, e, 1) is 0.
func ModPow(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Sign() <= 0 {
		panic("crypto: ModPow with non-positive modulus")
	}
	if exponent.Sign() < 0 {
		panic("crypto: ModPow with negative exponent")
	}

	result := new(big.Int).Mod(big.NewInt(1), modulus)
	b := new(big.Int).Mod(base, modulus)
	n := exponent.BitLen()
	for i := 0; i < n; i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		if i+1 < n {
			b.Mul(b, b)
			b.Mod(b, modulus)
		}
	}
	return result
}
