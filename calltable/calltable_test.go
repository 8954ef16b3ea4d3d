package calltable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicLayout(t *testing.T) {
	require := require.New(t)

	var s Serialization
	require.NoError(s.AddField(0, []byte{0x01}), "AddField(0)")
	require.NoError(s.AddField(1, []byte{0x02, 0x03}), "AddField(1)")

	expected := []byte{
		2, 0, 0, 0, // field count
		0, 0, 0, 0, 0, 0, // field 0: index 0, offset 0
		1, 0, 1, 0, 0, 0, // field 1: index 1, offset 1
		3, 0, 0, 0, // total payload size
		0x01, 0x02, 0x03, // payload
	}
	require.Equal(expected, s.ToBytes(), "exact byte layout")
}

func TestOrderingContract(t *testing.T) {
	require := require.New(t)

	var s Serialization
	require.NoError(s.AddField(0, []byte{1}), "AddField(0)")
	require.NoError(s.AddField(1, []byte{2}), "AddField(1)")
	require.NoError(s.AddField(2, []byte{3}), "AddField(2)")

	var skip Serialization
	require.NoError(skip.AddField(0, []byte{1}), "AddField(0)")
	err := skip.AddField(2, []byte{2})
	require.ErrorIs(err, ErrInvalidFieldIndex, "skipping an index fails")

	var reorder Serialization
	err = reorder.AddField(1, []byte{1})
	require.ErrorIs(err, ErrInvalidFieldIndex, "starting past zero fails")
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	values := [][]byte{
		{0xDE, 0xAD},
		{}, // zero-length fields are representable
		{0xBE, 0xEF, 0x00, 0x01},
		{0x42},
	}

	var s Serialization
	for i, v := range values {
		require.NoError(s.AddField(uint16(i), v), "AddField(%d)", i)
	}

	dec, rest, err := FromBytes(append(s.ToBytes(), 0xFF, 0xFE))
	require.NoError(err, "FromBytes")
	require.Equal([]byte{0xFF, 0xFE}, rest, "remainder past the table")
	require.Equal(len(values), dec.FieldCount(), "field count")

	for i, v := range values {
		got, ok := dec.GetField(uint16(i))
		require.True(ok, "GetField(%d) present", i)
		require.Equal(v, got, "GetField(%d) value", i)
	}

	_, ok := dec.GetField(uint16(len(values)))
	require.False(ok, "GetField past the end")
}

func TestEmptyTable(t *testing.T) {
	require := require.New(t)

	var s Serialization
	b := s.ToBytes()
	require.Equal([]byte{0, 0, 0, 0, 0, 0, 0, 0}, b, "empty table layout")

	dec, rest, err := FromBytes(b)
	require.NoError(err, "FromBytes(empty)")
	require.Len(rest, 0, "no remainder")
	require.Zero(dec.FieldCount(), "no fields")
}

func TestMalformed(t *testing.T) {
	require := require.New(t)

	_, _, err := FromBytes([]byte{1, 0, 0})
	require.Error(err, "truncated count")

	// Header announces one field but carries no header entry bytes.
	_, _, err = FromBytes([]byte{1, 0, 0, 0, 0, 0})
	require.Error(err, "truncated header")

	// A count the remaining buffer cannot possibly hold must be
	// rejected before anything is allocated for it.
	_, _, err = FromBytes([]byte{0xff, 0xff, 0xff, 0xff})
	require.ErrorIs(err, ErrMalformedTable, "oversized count")

	// Field offset beyond the payload.
	var s Serialization
	require.NoError(s.AddField(0, []byte{1, 2, 3}), "AddField")
	b := s.ToBytes()
	b[6] = 9 // field 0 offset
	_, _, err = FromBytes(b)
	require.ErrorIs(err, ErrMalformedTable, "offset out of range")

	// Non-sequential index in the serialized header.
	b = s.ToBytes()
	b[4] = 7 // field 0 index
	_, _, err = FromBytes(b)
	require.ErrorIs(err, ErrMalformedTable, "non-sequential index")
}
