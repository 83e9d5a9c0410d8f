package crypto_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"dhlink/internal/crypto"
)

func TestModPow_KnownValues(t *testing.T) {
	cases := []struct {
		base, exp, mod, want int64
	}{
		{5, 6, 23, 8},
		{5, 15, 23, 19},
		{19, 6, 23, 2},
		{8, 15, 23, 2},
		{2, 10, 1000, 24},
		{3, 1, 7, 3},
		{10, 3, 7, 6},
		{-2, 3, 5, 2},
		{7, 5, 1, 0},
	}
	for _, c := range cases {
		got := crypto.ModPow(big.NewInt(c.base), big.NewInt(c.exp), big.NewInt(c.mod))
		if got.Cmp(big.NewInt(c.want)) != 0 {
			t.Errorf("ModPow(%d, %d, %d) = %s, want %d", c.base, c.exp, c.mod, got, c.want)
		}
	}
}

func TestModPow_ZeroExponentIsOne(t *testing.T) {
	for _, m := range []int64{2, 3, 23, 1 << 40} {
		for _, b := range []int64{0, 1, 5, 1 << 50} {
			got := crypto.ModPow(big.NewInt(b), big.NewInt(0), big.NewInt(m))
			if got.Cmp(big.NewInt(1)) != 0 {
				t.Errorf("ModPow(%d, 0, %d) = %s, want 1", b, m, got)
			}
		}
	}
}

func TestModPow_ZeroBaseIsZero(t *testing.T) {
	for _, e := range []int64{1, 2, 17, 1 << 30} {
		got := crypto.ModPow(big.NewInt(0), big.NewInt(e), big.NewInt(23))
		if got.Sign() != 0 {
			t.Errorf("ModPow(0, %d, 23) = %s, want 0", e, got)
		}
	}
}

func TestModPow_MatchesBigExpOnLargeOperands(t *testing.T) {
	p := crypto.RFC3526Group5().Modulus
	for i := 0; i < 8; i++ {
		base, err := rand.Int(rand.Reader, new(big.Int).Lsh(p, 1))
		if err != nil {
			t.Fatalf("rand.Int: %v", err)
		}
		exp, err := rand.Int(rand.Reader, p)
		if err != nil {
			t.Fatalf("rand.Int: %v", err)
		}
		want := new(big.Int).Exp(base, exp, p)
		if got := crypto.ModPow(base, exp, p); got.Cmp(want) != 0 {
			t.Fatalf("iteration %d: ModPow disagrees with big.Int.Exp", i)
		}
	}
}

func TestModPow_DoesNotMutateInputs(t *testing.T) {
	base, exp, mod := big.NewInt(45), big.NewInt(13), big.NewInt(23)
	_ = crypto.ModPow(base, exp, mod)
	if base.Int64() != 45 || exp.Int64() != 13 || mod.Int64() != 23 {
		t.Fatalf("inputs mutated: base=%s exp=%s mod=%s", base, exp, mod)
	}
}

func TestModPow_PanicsOnInvalidInput(t *testing.T) {
	cases := map[string][3]*big.Int{
		"zero modulus":      {big.NewInt(2), big.NewInt(3), big.NewInt(0)},
		"negative modulus":  {big.NewInt(2), big.NewInt(3), big.NewInt(-7)},
		"negative exponent": {big.NewInt(2), big.NewInt(-1), big.NewInt(7)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			crypto.ModPow(in[0], in[1], in[2])
		})
	}
}
