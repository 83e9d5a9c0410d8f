package crypto

import (
	"math/big"
	"runtime"

	"dhlink/internal/domain"
)

// Wipe zeroes the provided buffer. This is best-effort and aims to
// reduce the chance of the compiler eliding the write.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	// Ensure b is considered live until after the loop.
	runtime.KeepAlive(&b)
}

// WipeInt zeroes the words backing x and sets it to 0. Copies made earlier
// by math/big during arithmetic are out of reach.
//
//go:noinline
func WipeInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(&words)
	x.SetInt64(0)
}

// WipeKey zeroes a derived symmetric key in place.
func WipeKey(k *domain.SymmetricKey) {
	if k == nil {
		return
	}
	Wipe(k.Slice())
}
