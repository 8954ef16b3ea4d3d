package cltype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testTypes() []CLType {
	return []CLType{
		Bool, I32, I64, U8, U32, U64, U128, U256, U512,
		Unit, String, Key, URef, Any, PublicKey,
		NewOption(U512),
		NewList(NewOption(U512)),
		NewByteArray(32),
		NewResult(U64, String),
		NewMap(String, U64),
		NewTuple1(Bool),
		NewTuple2(Bool, String),
		NewTuple3(Bool, String, NewMap(String, U64)),
		NewOption(NewTuple2(NewByteArray(20), NewList(U8))),
	}
}

func TestByteRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, typ := range testTypes() {
		b := typ.ToBytes()
		dec, rest, err := FromBytes(append(b, 0x7F))
		require.NoError(err, "FromBytes(%s)", typ)
		require.Equal([]byte{0x7F}, rest, "remainder for %s", typ)
		require.True(Equal(typ, dec), "byte round trip for %s", typ)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, typ := range testTypes() {
		raw, err := json.Marshal(typ)
		require.NoError(err, "Marshal(%s)", typ)

		dec, err := FromJSON(raw)
		require.NoError(err, "FromJSON(%s)", typ)
		require.True(Equal(typ, dec), "JSON round trip for %s", typ)
	}
}

func TestJSONForms(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		typ  CLType
		json string
	}{
		{U512, `"U512"`},
		{NewOption(U512), `{"Option":"U512"}`},
		{NewByteArray(32), `{"ByteArray":32}`},
		{NewMap(String, U64), `{"Map":{"key":"String","value":"U64"}}`},
		{NewTuple2(Bool, String), `{"Tuple2":["Bool","String"]}`},
	} {
		raw, err := json.Marshal(tc.typ)
		require.NoError(err, "Marshal(%s)", tc.typ)
		require.JSONEq(tc.json, string(raw), "JSON form of %s", tc.typ)
	}
}

func TestParserErrors(t *testing.T) {
	require := require.New(t)

	_, err := FromJSON([]byte(`"NotAType"`))
	require.ErrorIs(err, ErrUnknownTypeName, "unknown primitive name")
	require.Contains(err.Error(), "NotAType", "error names the offender")

	_, err = FromJSON([]byte(`{"Option":"U512","List":"U8"}`))
	require.ErrorIs(err, ErrComplexTypeFormat, "more than one key")

	_, err = FromJSON([]byte(`{"Frobnicate":"U512"}`))
	require.ErrorIs(err, ErrJSONConstructorNotFound, "unknown constructor")

	_, err = FromJSON([]byte(`{"Tuple2":["Bool"]}`))
	require.ErrorIs(err, ErrComplexTypeFormat, "tuple arity mismatch")

	_, err = FromJSON([]byte(`{"Result":{"ok":"U64"}}`))
	require.ErrorIs(err, ErrComplexTypeFormat, "result missing err")

	_, _, err = FromBytes([]byte{0xEE})
	require.ErrorIs(err, ErrUnknownTypeTag, "unknown tag byte")

	_, _, err = FromBytes([]byte{byte(TagOption)})
	require.Error(err, "truncated composite")

	_, _, err = FromBytes(nil)
	require.Error(err, "empty buffer")
}

func TestDenseTagSpace(t *testing.T) {
	require := require.New(t)

	// Every tag 0..22 parses to exactly one variant.
	seen := make(map[string]bool)
	for tag := 0; tag <= 22; tag++ {
		blob := []byte{byte(tag)}
		switch Tag(tag) {
		case TagOption, TagList, TagTuple1:
			blob = append(blob, byte(TagBool))
		case TagByteArray:
			blob = append(blob, 4, 0, 0, 0)
		case TagResult, TagMap, TagTuple2:
			blob = append(blob, byte(TagBool), byte(TagBool))
		case TagTuple3:
			blob = append(blob, byte(TagBool), byte(TagBool), byte(TagBool))
		}
		typ, rest, err := FromBytes(blob)
		require.NoError(err, "FromBytes(tag %d)", tag)
		require.Len(rest, 0, "tag %d consumed", tag)
		require.Equal(Tag(tag), typ.Tag(), "tag %d round trip", tag)
		require.False(seen[typ.Name()+typ.String()], "tag %d is distinct", tag)
		seen[typ.Name()+typ.String()] = true
	}
}
