package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

func testAddr() (a [32]byte) {
	for i := range a {
		a[i] = byte(i)
	}
	return
}

func TestURefStringRoundTrip(t *testing.T) {
	require := require.New(t)

	u := NewURef(testAddr(), AccessReadAddWrite)
	s := u.String()
	require.Equal(
		"uref-000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f-007",
		s,
		"uref string form",
	)

	dec, err := URefFromString(s)
	require.NoError(err, "URefFromString")
	require.Equal(u, dec, "string round trip")

	_, err = URefFromString("not-a-uref")
	require.ErrorIs(err, ErrMalformedURef, "bad prefix")

	_, err = URefFromString("uref-zzzz-007")
	require.ErrorIs(err, ErrMalformedURef, "bad hex")
}

func TestURefByteRoundTrip(t *testing.T) {
	require := require.New(t)

	u := NewURef(testAddr(), AccessRead)
	b := append(u.Bytes(), 0xAA)
	require.Len(u.Bytes(), URefSerializedSize, "serialized size")

	dec, rest, err := URefFromBytes(b)
	require.NoError(err, "URefFromBytes")
	require.Equal(u, dec, "byte round trip")
	require.Equal([]byte{0xAA}, rest, "remainder")

	_, _, err = URefFromBytes(b[:10])
	require.Error(err, "short buffer")
}

func TestKeyVariants(t *testing.T) {
	require := require.New(t)

	keys := []Key{
		NewAccountKey(hash.NewFromBytes([]byte("an account"))),
		NewHashKey(testAddr()),
		NewURefKey(NewURef(testAddr(), AccessReadAddWrite)),
		NewEraInfoKey(42),
		NewBalanceKey(testAddr()),
	}

	for _, k := range keys {
		// Byte round trip.
		dec, rest, err := KeyFromBytes(append(k.Bytes(), 0x01))
		require.NoError(err, "KeyFromBytes(%s)", k)
		require.Equal([]byte{0x01}, rest, "remainder for %s", k)
		require.True(k.Equal(dec), "byte round trip for %s", k)

		// String round trip.
		dec2, err := KeyFromString(k.String())
		require.NoError(err, "KeyFromString(%s)", k)
		require.True(k.Equal(dec2), "string round trip for %s", k)
	}
}

func TestKeyStringForms(t *testing.T) {
	require := require.New(t)

	k := NewHashKey(testAddr())
	require.Equal(
		"hash-000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		k.String(),
		"hash key string form",
	)
	require.Equal("era-42", NewEraInfoKey(42).String(), "era key string form")

	_, err := KeyFromString("garbage-ffff")
	require.ErrorIs(err, ErrUnknownKeyTag, "unknown prefix")

	_, _, err = KeyFromBytes([]byte{0xEE})
	require.ErrorIs(err, ErrUnknownKeyTag, "unknown tag byte")
}
