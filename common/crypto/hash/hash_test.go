package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashBasics(t *testing.T) {
	require := require.New(t)

	var h Hash
	h.Empty()
	require.True(h.IsEmpty(), "Empty")

	// BLAKE2b-256 of the empty string.
	require.Equal(
		"0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		h.String(),
		"empty hash digest",
	)

	h2 := NewFromBytes([]byte("hello"), []byte(" world"))
	h3 := NewFromBytes([]byte("hello world"))
	require.True(h2.Equal(&h3), "FromBytes is over the concatenation")
	require.False(h2.IsEmpty(), "non-empty digest")
}

func TestHashTextRoundTrip(t *testing.T) {
	require := require.New(t)

	h := NewFromBytes([]byte("some data"))
	text, err := h.MarshalText()
	require.NoError(err, "MarshalText")

	var dec Hash
	err = dec.UnmarshalText(text)
	require.NoError(err, "UnmarshalText")
	require.True(h.Equal(&dec), "text round trip")

	err = dec.UnmarshalHex("invalid")
	require.Error(err, "UnmarshalHex(invalid)")

	err = dec.UnmarshalHex("ffff")
	require.Equal(ErrMalformed, err, "UnmarshalHex(short)")
}

func TestHashBuilder(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	_, _ = b.Write([]byte("chunk 1"))
	_, _ = b.Write([]byte("chunk 2"))

	expected := NewFromBytes([]byte("chunk 1chunk 2"))
	built := b.Build()
	require.True(expected.Equal(&built), "Builder matches one-shot hash")
}
