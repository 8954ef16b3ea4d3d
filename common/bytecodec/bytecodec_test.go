package bytecodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	require := require.New(t)

	v16, rest, err := FromBytesU16(ToBytesU16(0xBEEF))
	require.NoError(err, "FromBytesU16")
	require.Equal(uint16(0xBEEF), v16, "u16 round trip")
	require.Len(rest, 0, "u16 remainder")

	v32, rest, err := FromBytesU32(ToBytesU32(0xDEADBEEF))
	require.NoError(err, "FromBytesU32")
	require.Equal(uint32(0xDEADBEEF), v32, "u32 round trip")
	require.Len(rest, 0, "u32 remainder")

	// Above the 53-bit float-safe range on purpose.
	const big = uint64(0xFFFFFFFFFFFFFFFE)
	v64, rest, err := FromBytesU64(ToBytesU64(big))
	require.NoError(err, "FromBytesU64")
	require.Equal(big, v64, "u64 round trip")
	require.Len(rest, 0, "u64 remainder")

	i32, _, err := FromBytesI32(ToBytesI32(-42))
	require.NoError(err, "FromBytesI32")
	require.Equal(int32(-42), i32, "i32 round trip")

	i64, _, err := FromBytesI64(ToBytesI64(-1 << 40))
	require.NoError(err, "FromBytesI64")
	require.Equal(int64(-1<<40), i64, "i64 round trip")
}

func TestLittleEndianLayout(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0x01, 0x00}, ToBytesU16(1), "u16 layout")
	require.Equal([]byte{0x02, 0x01, 0x00, 0x00}, ToBytesU32(0x102), "u32 layout")
	require.Equal(
		[]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
		ToBytesU64(0x0102030405060708),
		"u64 layout",
	)
}

func TestStringCodec(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{3, 0, 0, 0, 'a', 's', 'd'}, ToBytesString("asd"), "string layout")

	s, rest, err := FromBytesString(append(ToBytesString("héllo"), 0xFF))
	require.NoError(err, "FromBytesString")
	require.Equal("héllo", s, "string round trip")
	require.Equal([]byte{0xFF}, rest, "string remainder")

	_, _, err = FromBytesString([]byte{10, 0, 0, 0, 'x'})
	require.ErrorIs(err, ErrBufferTooSmall, "truncated string body")
}

func TestBoolCodec(t *testing.T) {
	require := require.New(t)

	for _, v := range []bool{true, false} {
		got, _, err := FromBytesBool(ToBytesBool(v))
		require.NoError(err, "FromBytesBool")
		require.Equal(v, got, "bool round trip")
	}

	_, _, err := FromBytesBool([]byte{2})
	require.ErrorIs(err, ErrMalformedBool, "bool byte out of range")
}

func TestShortBuffers(t *testing.T) {
	require := require.New(t)

	_, _, err := FromBytesU16([]byte{1})
	require.ErrorIs(err, ErrBufferTooSmall, "short u16")
	_, _, err = FromBytesU32([]byte{1, 2, 3})
	require.ErrorIs(err, ErrBufferTooSmall, "short u32")
	_, _, err = FromBytesU64([]byte{1, 2, 3, 4, 5, 6, 7})
	require.ErrorIs(err, ErrBufferTooSmall, "short u64")
	_, _, err = TakeBytes([]byte{1, 2}, 3)
	require.ErrorIs(err, ErrBufferTooSmall, "short take")
}
