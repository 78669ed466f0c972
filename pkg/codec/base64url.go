package codec

import "strings"

// ToStandard converts URL-safe base64 text to the standard alphabet
// and restores '=' padding to a multiple of four characters. It is
// total over any input and a no-op on text that is already standard
// and padded; malformed input surfaces later, at base64 decoding.
func ToStandard(s string) string {
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	if need := (4 - len(s)%4) % 4; need > 0 {
		s += strings.Repeat("=", need)
	}
	return s
}

// ToURLSafe converts standard base64 text to the URL-safe alphabet and
// strips '=' padding, producing the unpadded wire form the deflate
// variant uses. Total over any input.
func ToURLSafe(s string) string {
	s = strings.TrimRight(s, "=")
	s = strings.ReplaceAll(s, "+", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}

// replaceURLSafe substitutes the URL-safe alphabet characters without
// touching padding. The ZIP variant uses this on decode: its inputs
// arrive padded, and ragged padding must stay visible to the base64
// decoder instead of being repaired.
func replaceURLSafe(s string) string {
	s = strings.ReplaceAll(s, "-", "+")
	return strings.ReplaceAll(s, "_", "/")
}
