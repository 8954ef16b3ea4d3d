package quantity

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func fromInt(n int) *Quantity {
	q := NewQuantity()
	q.inner.SetInt64(int64(n))
	return q
}

func (q *Quantity) eqInt(n int) bool {
	nq := fromInt(n)
	return q.Cmp(nq) == 0
}

func TestQuantityCtors(t *testing.T) {
	require := require.New(t)

	q := NewQuantity()
	require.NotNil(q, "NewQuantity")
	require.True(q.eqInt(0), "New value")

	q = fromInt(23)
	nq := q.Clone()
	_ = q.FromBigInt(big.NewInt(666))
	require.True(nq.eqInt(23), "Clone value")
}

func TestFromBigInt(t *testing.T) {
	require := require.New(t)

	var q Quantity
	err := q.FromBigInt(nil)
	require.Equal(ErrInvalidQuantity, err, "FromBigInt(nil)")

	err = q.FromBigInt(big.NewInt(-1))
	require.Equal(ErrInvalidQuantity, err, "FromBigInt(-1)")

	err = q.FromBigInt(big.NewInt(23))
	require.NoError(err, "FromBigInt(23)")
	require.True(q.eqInt(23), "FromBigInt(23) value")
}

func TestFromInt64(t *testing.T) {
	require := require.New(t)

	var q Quantity
	err := q.FromInt64(-1)
	require.Equal(ErrInvalidQuantity, err, "FromInt64(-1)")

	err = q.FromInt64(23)
	require.NoError(err, "FromInt64(23)")
	require.True(q.eqInt(23), "FromInt64(23) value")
}

func TestFromUint64(t *testing.T) {
	require := require.New(t)

	var q Quantity
	err := q.FromUint64(0xFFFFFFFFFFFFFFFF)
	require.NoError(err, "FromUint64(0xFFFFFFFFFFFFFFFF)")

	var p Quantity
	p.inner.SetUint64(0xFFFFFFFFFFFFFFFF)
	require.True(q.Cmp(&p) == 0)
}

func TestQuantityWireCodec(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		value  uint64
		rawHex string
	}{
		{0, "00"},
		{1, "0101"},
		{10, "010a"},
		{1000, "02e803"},
		{1000000, "0340420f"},
		{25000000000, "0500ba1dd205"},
		{18446744073709551615, "08ffffffffffffffff"},
	} {
		raw, err := hex.DecodeString(tc.rawHex)
		require.NoError(err, "DecodeString(%s)", tc.rawHex)

		q := NewFromUint64(tc.value)
		require.EqualValues(raw, q.ToWireBytes(), "serialization should match")

		var dec Quantity
		rest, err := dec.FromWireBytes(raw, 512)
		require.NoError(err, "deserialization should succeed")
		require.Len(rest, 0, "no remainder")
		require.Zero(dec.Cmp(q), "round trip matches")
	}
}

func TestQuantityWireWidthLimit(t *testing.T) {
	require := require.New(t)

	// 17 magnitude bytes cannot fit in 128 bits.
	blob := make([]byte, 18)
	blob[0] = 17
	blob[17] = 1

	var q Quantity
	_, err := q.FromWireBytes(blob, 128)
	require.Equal(ErrQuantityTooLarge, err, "oversized for U128")

	_, err = q.FromWireBytes(blob, 512)
	require.NoError(err, "fits in U512")

	// Non-minimal form: trailing zero magnitude byte.
	_, err = q.FromWireBytes([]byte{2, 0x01, 0x00}, 128)
	require.Equal(ErrMalformedQuantity, err, "non-minimal encoding")

	// Truncated magnitude.
	_, err = q.FromWireBytes([]byte{4, 0x01}, 128)
	require.Error(err, "truncated magnitude")
}

func TestQuantityCmp(t *testing.T) {
	require := require.New(t)

	q := fromInt(100)

	require.Equal(-1, q.Cmp(fromInt(9001)), "q.Cmp(9001)")
	require.Equal(0, q.Cmp(fromInt(100)), "q.Cmp(100)")
	require.Equal(1, q.Cmp(fromInt(42)), "q.Cmp(42)")

	require.False(q.IsZero(), "q.IsZero()")
	require.True(NewQuantity().IsZero(), "NewQuantity().IsZero()")
}

func TestQuantityString(t *testing.T) {
	require := require.New(t)

	require.Equal("123456", fromInt(123456).String(), "Positive integer")

	q, err := NewFromString("25000000000")
	require.NoError(err, "NewFromString")
	require.Equal("25000000000", q.String(), "String round trip")

	_, err = NewFromString("-5")
	require.Equal(ErrInvalidQuantity, err, "NewFromString(-5)")
}
