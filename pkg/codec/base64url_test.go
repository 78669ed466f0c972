package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStandard(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"url-safe unpadded", "ab-_cd", "ab+/cd=="},
		{"already standard and padded", "ab+/cd==", "ab+/cd=="},
		{"needs two padding chars", "abcdef", "abcdef=="},
		{"needs one padding char", "abcdefg", "abcdefg="},
		{"multiple of four", "abcd", "abcd"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToStandard(tt.input))
		})
	}
}

func TestToStandard_Idempotent(t *testing.T) {
	once := ToStandard("ab-_cdQ")
	assert.Equal(t, once, ToStandard(once))
}

func TestToStandard_PaddingInvariant(t *testing.T) {
	// (L + need) must always land on a multiple of four, with need in
	// [0, 3].
	for length := 0; length < 32; length++ {
		input := strings.Repeat("A", length)
		padded := ToStandard(input)

		need := len(padded) - length
		assert.GreaterOrEqual(t, need, 0, "length %d", length)
		assert.LessOrEqual(t, need, 3, "length %d", length)
		assert.Zero(t, len(padded)%4, "length %d", length)
	}
}

func TestToURLSafe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"standard padded", "ab+/cd==", "ab-_cd"},
		{"already url-safe", "ab-_cd", "ab-_cd"},
		{"no padding to strip", "abcd", "abcd"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToURLSafe(tt.input))
		})
	}
}

func TestAlphabetRoundTrip(t *testing.T) {
	standard := "SGVsbG8+IHdvcmxkPz8/IQ=="
	assert.Equal(t, standard, ToStandard(ToURLSafe(standard)))
}
