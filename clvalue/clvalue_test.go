package clvalue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	memorySigner "github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature/signers/memory"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
	"github.com/zephyrprotocol/zephyr-sdk/types"
)

func requireValueEq(t *testing.T, expected, actual Value, msg string) {
	t.Helper()
	require.True(t, cltype.Equal(expected.Type(), actual.Type()), "%s: type", msg)
	require.Equal(t, expected.Bytes(), actual.Bytes(), "%s: bytes", msg)
}

func testValues(t *testing.T) []Value {
	var addr [32]byte
	for i := range addr {
		addr[i] = byte(i)
	}
	amount, err := quantity.NewFromString("123456789012345678901234567890")
	require.NoError(t, err, "NewFromString")

	pk := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "clvalue test").Public()

	return []Value{
		Bool(true),
		Bool(false),
		I32(-17),
		I64(1 << 40),
		U8(255),
		U32(0xDEADBEEF),
		U64(1 << 60),
		NewU128FromUint64(12345),
		NewU256(amount),
		NewU512FromUint64(25000000000),
		Unit{},
		String("hello world"),
		NewKey(types.NewHashKey(addr)),
		NewURef(types.NewURef(addr, types.AccessReadAddWrite)),
		NewPublicKey(pk),
		NewSome(NewU512FromUint64(42)),
		NewNone(cltype.U512),
		NewList(cltype.NewOption(cltype.U512),
			NewSome(NewU512FromUint64(1)),
			NewNone(cltype.U512),
			NewSome(NewU512FromUint64(3)),
		),
		ByteArray(addr[:]),
		NewOk(U64(7), cltype.String),
		NewErr(String("boom"), cltype.U64),
		NewMap(cltype.String, cltype.U64,
			MapPair{String("a"), U64(1)},
			MapPair{String("b"), U64(2)},
		),
		NewTuple1(Bool(true)),
		NewTuple2(Bool(true), String("x")),
		NewTuple3(Bool(false), String("y"), NewMap(cltype.String, cltype.U64,
			MapPair{String("k"), U64(9)},
		)),
	}
}

func TestByteRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, v := range testValues(t) {
		if _, isAny := v.(Any); isAny {
			continue
		}
		blob := append(v.Bytes(), 0x5A)
		dec, rest, err := FromBytesByType(v.Type(), blob)
		require.NoError(err, "FromBytesByType(%s)", v.Type())
		require.Equal([]byte{0x5A}, rest, "remainder for %s", v.Type())
		requireValueEq(t, v, dec, v.Type().String())
	}
}

func TestWithTypeRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, v := range testValues(t) {
		blob := append(ToBytesWithType(v), 0xA5)
		dec, rest, err := FromBytesWithType(blob)
		require.NoError(err, "FromBytesWithType(%s)", v.Type())
		require.Equal([]byte{0xA5}, rest, "remainder for %s", v.Type())
		requireValueEq(t, v, dec, v.Type().String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, v := range testValues(t) {
		raw, err := ToJSON(v)
		require.NoError(err, "ToJSON(%s)", v.Type())

		dec, err := FromJSON(raw)
		require.NoError(err, "FromJSON(%s)", v.Type())
		requireValueEq(t, v, dec, v.Type().String())
	}
}

func TestOptionEncoding(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0}, NewNone(cltype.U512).Bytes(), "None is a bare 0 byte")
	require.Equal(
		[]byte{1, 1, 42},
		NewSome(NewU512FromUint64(42)).Bytes(),
		"Some is 1 then the inner bytes",
	)
}

func TestListElementTypeNotRepeated(t *testing.T) {
	require := require.New(t)

	l := NewList(cltype.U32, U32(1), U32(2))
	// u32 count plus exactly two u32 payloads, no per-element tags.
	require.Len(l.Bytes(), 4+4+4, "list layout")
	require.Equal(append(bytecodec.ToBytesU32(2),
		1, 0, 0, 0, 2, 0, 0, 0), l.Bytes(), "list bytes")
}

func TestU512String(t *testing.T) {
	require := require.New(t)

	v := NewU512FromUint64(25000000000)
	require.Equal("25000000000", v.String(), "decimal string form")
	require.Equal([]byte{5, 0x00, 0xBA, 0x1D, 0xD2, 0x05}, v.Bytes(), "wire bytes")
}

func TestShortBufferIsTerminal(t *testing.T) {
	require := require.New(t)

	_, _, err := FromBytesByType(cltype.U64, []byte{1, 2, 3})
	require.ErrorIs(err, bytecodec.ErrBufferTooSmall, "short u64")

	_, _, err = FromBytesByType(cltype.NewList(cltype.U64), []byte{2, 0, 0, 0, 1})
	require.ErrorIs(err, bytecodec.ErrBufferTooSmall, "short list element")

	_, _, err = FromBytesByType(cltype.NewByteArray(8), []byte{1, 2})
	require.ErrorIs(err, bytecodec.ErrBufferTooSmall, "short byte array")
}

func TestTrailingBytesRejectedInExactMode(t *testing.T) {
	require := require.New(t)

	blob := append(U32(7).Bytes(), 0xEE)
	_, err := FromBytesByTypeExact(cltype.U32, blob)
	require.ErrorIs(err, ErrTrailingBytes, "trailing bytes")
}

func TestAnyConsumesRemainder(t *testing.T) {
	require := require.New(t)

	v, rest, err := FromBytesByType(cltype.Any, []byte{1, 2, 3})
	require.NoError(err, "FromBytesByType(Any)")
	require.Len(rest, 0, "Any consumes everything")
	require.Equal([]byte{1, 2, 3}, v.Bytes(), "Any bytes")
}
