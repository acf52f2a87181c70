// File: pkg/aggregate/binary.go
package aggregate

import (
	"strings"
	"unicode/utf8"
)

// replacementChar is the marker substituted for undecodable bytes.
const replacementChar = "�"

// DecodeLossy converts raw bytes to a string, substituting one U+FFFD for each
// byte that is not part of a valid UTF-8 sequence.
func DecodeLossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	var builder strings.Builder
	builder.Grow(len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			builder.WriteString(replacementChar)
			i++
			continue
		}
		builder.WriteRune(r)
		i += size
	}
	return builder.String()
}

// IsProbablyBinary reports whether lossily decoded text should be treated as
// binary. A NUL character anywhere is a strong binary signal; otherwise the
// text is binary when its replacement-character density exceeds
// maxReplacementRatio. Empty text is not binary.
func IsProbablyBinary(text string, maxReplacementRatio float64) bool {
	if strings.ContainsRune(text, '\x00') {
		return true
	}

	totalLength := utf8.RuneCountInString(text)
	if totalLength == 0 {
		return false
	}

	replacementCount := strings.Count(text, replacementChar)
	return float64(replacementCount)/float64(totalLength) > maxReplacementRatio
}
