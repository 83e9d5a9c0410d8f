package crypto

import (
	"math/big"

	"dhlink/internal/domain"
)

// rfc3526Group5Hex is the 1536-bit MODP prime of RFC 3526 section 2.
const rfc3526Group5Hex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1" +
	"29024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
	"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245" +
	"E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D" +
	"C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F" +
	"83655D23DCA3AD961C62F356208552BB9ED529077096966D" +
	"670C354E4ABC9804F1746C08CA237327FFFFFFFFFFFFFFFF"

// RFC3526Group5 returns the 1536-bit MODP group with generator 2. Each call
// returns fresh integers.
func RFC3526Group5() domain.DomainParameters {
	p, ok := new(big.Int).SetString(rfc3526Group5Hex, 16)
	if !ok {
		panic("crypto: bad RFC 3526 group 5 constant")
	}
	return domain.DomainParameters{Modulus: p, Generator: big.NewInt(2)}
}
