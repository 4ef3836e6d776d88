// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streaming

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// tokenAlphabet maps decimal digits to the letters FeatBit servers expect in
// connection tokens.
var tokenAlphabet = [10]byte{'Q', 'B', 'W', 'S', 'P', 'H', 'D', 'X', 'Z', 'U'}

// newToken builds a connection token for secret at the given Unix
// millisecond timestamp, splicing the encoded timestamp at a random offset.
func newToken(secret string, timestamp int64) string {
	trimmed := strings.TrimRight(secret, "=")
	start := 2
	if len(trimmed) > 0 {
		start = max(rand.IntN(len(trimmed)), 2)
	}
	return buildToken(trimmed, timestamp, start)
}

// buildToken lays out the token as
// encode(start, 3) + encode(len(ts), 2) + secret[:start] + ts + secret[start:].
func buildToken(trimmedSecret string, timestamp int64, start int) string {
	start = min(start, len(trimmedSecret))
	ts := encodeDigits(strconv.FormatInt(timestamp, 10))

	var b strings.Builder
	b.WriteString(encodeNumber(start, 3))
	b.WriteString(encodeNumber(len(ts), 2))
	b.WriteString(trimmedSecret[:start])
	b.WriteString(ts)
	b.WriteString(trimmedSecret[start:])
	return b.String()
}

// encodeNumber zero-pads n to width digits (keeping the lowest ones) and
// encodes it.
func encodeNumber(n, width int) string {
	s := strings.Repeat("0", width) + strconv.Itoa(n)
	return encodeDigits(s[len(s)-width:])
}

func encodeDigits(digits string) string {
	out := make([]byte, len(digits))
	for i := range len(digits) {
		out[i] = tokenAlphabet[digits[i]-'0']
	}
	return string(out)
}
