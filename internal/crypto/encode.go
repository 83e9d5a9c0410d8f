package crypto

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// EncodePublicValue renders v as "0x" followed by its shortest lowercase hex
// digits. Both parties must use this exact form.
func EncodePublicValue(v *big.Int) string {
	return "0x" + v.Text(16)
}

// ParsePublicValue parses a hex public value, with or without the "0x"
// prefix. Decimal is never accepted here.
func ParsePublicValue(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	digits, _ := trimHexPrefix(s)
	return parseDigits(s, digits, 16)
}

// ParseInteger parses a parameter-source integer. A "0x" prefix selects hex,
// a string of decimal digits is decimal, and any other string of hex digits
// is hex.
func ParseInteger(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if digits, ok := trimHexPrefix(s); ok {
		return parseDigits(s, digits, 16)
	}
	if isDecimal(s) {
		return parseDigits(s, s, 10)
	}
	return parseDigits(s, s, 16)
}

func trimHexPrefix(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], true
	}
	return s, false
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseDigits(orig, digits string, base int) (*big.Int, error) {
	// SetString would accept a sign and underscores; wire integers carry neither.
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, truncate(orig))
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, truncate(orig))
	}
	return v, nil
}

func truncate(s string) string {
	const limit = 24
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
