package crypto_test

import (
	"errors"
	"math/big"
	"testing"

	"dhlink/internal/crypto"
)

func TestEncodePublicValue(t *testing.T) {
	cases := map[int64]string{0: "0x0", 8: "0x8", 255: "0xff", 4096: "0x1000"}
	for v, want := range cases {
		if got := crypto.EncodePublicValue(big.NewInt(v)); got != want {
			t.Errorf("EncodePublicValue(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestParsePublicValue(t *testing.T) {
	ok := map[string]int64{"0xff": 255, "ff": 255, "0XFF": 255, " 0x13 ": 19, "0x0": 0}
	for in, want := range ok {
		v, err := crypto.ParsePublicValue(in)
		if err != nil {
			t.Fatalf("ParsePublicValue(%q): %v", in, err)
		}
		if v.Int64() != want {
			t.Fatalf("ParsePublicValue(%q) = %s, want %d", in, v, want)
		}
	}
	for _, in := range []string{"", "0x", "-0x1", "0x-1", "0xzz", "12_3", "+ff"} {
		if _, err := crypto.ParsePublicValue(in); !errors.Is(err, crypto.ErrInvalidEncoding) {
			t.Errorf("ParsePublicValue(%q): err = %v, want ErrInvalidEncoding", in, err)
		}
	}
}

func TestParsePublicValue_RoundTrip(t *testing.T) {
	p := crypto.RFC3526Group5().Modulus
	v := new(big.Int).Sub(p, big.NewInt(12345))
	got, err := crypto.ParsePublicValue(crypto.EncodePublicValue(v))
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(v) != 0 {
		t.Fatal("round trip changed the value")
	}
}

func TestParseInteger(t *testing.T) {
	cases := map[string]int64{
		"23":   23,
		"2":    2,
		"0x17": 23,
		"ff":   255,
		"1f":   31,
	}
	for in, want := range cases {
		v, err := crypto.ParseInteger(in)
		if err != nil {
			t.Fatalf("ParseInteger(%q): %v", in, err)
		}
		if v.Int64() != want {
			t.Fatalf("ParseInteger(%q) = %s, want %d", in, v, want)
		}
	}
	if _, err := crypto.ParseInteger("xyz"); !errors.Is(err, crypto.ErrInvalidEncoding) {
		t.Fatalf("ParseInteger(xyz): err = %v", err)
	}
}

func TestParseInteger_BareHexModulus(t *testing.T) {
	want := crypto.RFC3526Group5().Modulus
	got, err := crypto.ParseInteger(want.Text(16))
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(want) != 0 {
		t.Fatal("bare hex modulus parsed incorrectly")
	}
}

func TestFingerprint(t *testing.T) {
	a := crypto.FingerprintInt(big.NewInt(8))
	if len(a) != 20 {
		t.Fatalf("fingerprint length %d, want 20", len(a))
	}
	if a != crypto.FingerprintInt(big.NewInt(8)) {
		t.Fatal("fingerprint not deterministic")
	}
	if a == crypto.FingerprintInt(big.NewInt(19)) {
		t.Fatal("distinct values share a fingerprint")
	}
	if crypto.FingerprintInt(nil) != "" {
		t.Fatal("nil value should have an empty fingerprint")
	}
}
