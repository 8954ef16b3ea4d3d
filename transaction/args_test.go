package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/clvalue"
)

func TestArgsInsertAndGet(t *testing.T) {
	require := require.New(t)

	args := NewArgs()
	require.NoError(args.Insert("amount", clvalue.NewU512FromUint64(100)), "Insert amount")
	require.NoError(args.Insert("memo", clvalue.String("hi")), "Insert memo")
	require.Equal(2, args.Len(), "Len")

	v, ok := args.Get("memo")
	require.True(ok, "Get memo")
	require.Equal(clvalue.String("hi"), v, "Get memo value")

	_, ok = args.Get("missing")
	require.False(ok, "Get missing")

	err := args.Insert("amount", clvalue.U32(1))
	require.ErrorIs(err, ErrDuplicateArg, "Insert duplicate")

	names := args.Named()
	require.Equal("amount", names[0].Name, "insertion order")
	require.Equal("memo", names[1].Name, "insertion order")
}

func TestArgsBytesRoundTrip(t *testing.T) {
	require := require.New(t)

	args := NewArgs().
		MustInsert("amount", clvalue.NewU512FromUint64(25_000_000_000)).
		MustInsert("flag", clvalue.Bool(true)).
		MustInsert("maybe", clvalue.NewNone(cltype.String)).
		MustInsert("ids", clvalue.NewList(cltype.U64, clvalue.U64(1), clvalue.U64(2)))

	decoded, rest, err := ArgsFromBytes(args.Bytes())
	require.NoError(err, "ArgsFromBytes")
	require.Empty(rest, "ArgsFromBytes remainder")
	require.Equal(args.Bytes(), decoded.Bytes(), "byte round trip")
	require.Equal(args.Len(), decoded.Len(), "arg count")
}

func TestArgsJSONNameEscaping(t *testing.T) {
	require := require.New(t)

	// Names with control characters and non-ASCII text must survive the
	// JSON form byte for byte.
	args := NewArgs().
		MustInsert("x\x00y", clvalue.U32(7)).
		MustInsert("tab\there", clvalue.Bool(true)).
		MustInsert("héllo", clvalue.String("ok"))

	raw, err := json.Marshal(args)
	require.NoError(err, "Marshal")
	require.True(json.Valid(raw), "Marshal output is valid JSON")

	var decoded Args
	require.NoError(json.Unmarshal(raw, &decoded), "Unmarshal")
	require.Equal(args.Bytes(), decoded.Bytes(), "JSON round trip")
	_, ok := decoded.Get("x\x00y")
	require.True(ok, "Get control-character name")
}

func TestArgsJSONRoundTrip(t *testing.T) {
	require := require.New(t)

	args := NewArgs().
		MustInsert("amount", clvalue.NewU512FromUint64(42)).
		MustInsert("name", clvalue.String("validator"))

	raw, err := json.Marshal(args)
	require.NoError(err, "Marshal")

	decoded := NewArgs()
	require.NoError(json.Unmarshal(raw, decoded), "Unmarshal")
	require.Equal(args.Bytes(), decoded.Bytes(), "JSON round trip")
}

func TestArgsJSONDuplicateRejected(t *testing.T) {
	require := require.New(t)

	one, err := clvalue.ToJSON(clvalue.U32(1))
	require.NoError(err, "ToJSON")
	raw := []byte(`[["a",` + string(one) + `],["a",` + string(one) + `]]`)

	decoded := NewArgs()
	err = json.Unmarshal(raw, decoded)
	require.ErrorIs(err, ErrDuplicateArg, "duplicate name on the wire")
}
