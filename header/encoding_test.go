package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContentEncoding_KnownTokens(t *testing.T) {
	cases := map[string]ContentEncoding{
		"":       Identity,
		"identity": Identity,
		"gzip":   Gzip,
		"x-gzip": Gzip,
		"deflate": Deflate,
		"br":     Brotli,
		"GZIP":   Gzip,
	}

	for raw, want := range cases {
		got, ok := ParseContentEncoding(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseContentEncoding_Unknown(t *testing.T) {
	got, ok := ParseContentEncoding("compress")
	assert.False(t, ok)
	assert.False(t, got.CanDecode())
}

func TestContentEncoding_IsCompressed(t *testing.T) {
	assert.False(t, Identity.IsCompressed())
	assert.True(t, Gzip.IsCompressed())
	assert.True(t, Brotli.IsCompressed())
}

func TestContentEncoding_String(t *testing.T) {
	assert.Equal(t, "gzip", Gzip.String())
	assert.Equal(t, "identity", Identity.String())
}
