package saldeo

import (
	"net/url"
	"strings"
)

// Encode applies Saldeo's canonical URL-encoding to raw.
//
// The provider validates request signatures against its own encoder, which
// differs from standard query escaping in two ways: a space is always "+"
// (never "%20"), and the hex digits of every percent-escape are uppercase.
// Any divergence here is rejected by the provider as an authentication
// failure, not a schema error.
func Encode(raw string) string {
	encoded := url.QueryEscape(raw)

	// Normalize to the provider's rules regardless of how the standard
	// escaper rendered spaces and hex digits.
	encoded = strings.ReplaceAll(encoded, "%20", "+")

	var b strings.Builder
	b.Grow(len(encoded))
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c == '%' && i+2 < len(encoded) {
			b.WriteByte('%')
			b.WriteByte(upperHex(encoded[i+1]))
			b.WriteByte(upperHex(encoded[i+2]))
			i += 2
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func upperHex(c byte) byte {
	if c >= 'a' && c <= 'f' {
		return c - ('a' - 'A')
	}
	return c
}
