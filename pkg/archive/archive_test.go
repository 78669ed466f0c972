package archive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSingle_ProducesZipArchive(t *testing.T) {
	data, err := WriteSingle("data.json", []byte(`{"script":"x"}`))
	require.NoError(t, err)

	// ZIP local file header magic
	assert.True(t, bytes.HasPrefix(data, []byte{0x50, 0x4b, 0x03, 0x04}))
}

func TestWriteSingle_Deterministic(t *testing.T) {
	content := []byte(`{"currentSessionType":"groovy"}`)

	first, err := WriteSingle("data.json", content)
	require.NoError(t, err)
	second, err := WriteSingle("data.json", content)
	require.NoError(t, err)

	assert.Equal(t, first, second, "archive bytes must not depend on wall-clock time")
}

func TestReadSingle_RoundTrip(t *testing.T) {
	content := []byte(`{"functionName":"processData"}`)

	data, err := WriteSingle("data.json", content)
	require.NoError(t, err)

	got, err := ReadSingle(data, "data.json")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReadSingle_MissingEntry(t *testing.T) {
	data, err := WriteSingle("data.json", []byte("{}"))
	require.NoError(t, err)

	_, err = ReadSingle(data, "other.json")
	assert.ErrorContains(t, err, `"other.json" not found`)
}

func TestReadSingle_NotAnArchive(t *testing.T) {
	_, err := ReadSingle([]byte("definitely not a zip"), "data.json")
	assert.ErrorContains(t, err, "opening archive")
}
