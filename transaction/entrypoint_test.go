package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryPointCustomEncoding(t *testing.T) {
	require := require.New(t)

	ep := NewCustomEntryPoint("asd")
	require.Equal([]byte{0, 3, 0, 0, 0, 'a', 's', 'd'}, ep.Bytes(), "Custom bytes")
	require.True(ep.IsCustom(), "IsCustom")
	require.Equal("asd", ep.CustomName(), "CustomName")
	require.Equal("asd", ep.String(), "String")
}

func TestEntryPointRoundTrips(t *testing.T) {
	require := require.New(t)

	for _, ep := range []EntryPoint{
		NewCustomEntryPoint("mint"),
		EntryPointTransfer,
		EntryPointAddBid,
		EntryPointWithdrawBid,
		EntryPointDelegate,
		EntryPointUndelegate,
		EntryPointRedelegate,
		EntryPointActivateBid,
		EntryPointChangeBidPublicKey,
		EntryPointCall,
	} {
		decoded, rest, err := EntryPointFromBytes(ep.Bytes())
		require.NoError(err, "EntryPointFromBytes(%s)", ep)
		require.Empty(rest, "remainder (%s)", ep)
		require.Equal(ep, decoded, "legacy round trip (%s)", ep)

		decoded, err = entryPointFromCalltable(ep.CalltableBytes())
		require.NoError(err, "entryPointFromCalltable(%s)", ep)
		require.Equal(ep, decoded, "calltable round trip (%s)", ep)

		raw, err := json.Marshal(ep)
		require.NoError(err, "Marshal(%s)", ep)
		var fromJSON EntryPoint
		require.NoError(json.Unmarshal(raw, &fromJSON), "Unmarshal(%s)", ep)
		require.Equal(ep, fromJSON, "JSON round trip (%s)", ep)
	}
}

func TestEntryPointJSONForms(t *testing.T) {
	require := require.New(t)

	raw, err := json.Marshal(EntryPointTransfer)
	require.NoError(err, "Marshal(Transfer)")
	require.JSONEq(`"Transfer"`, string(raw), "built-in form")

	raw, err = json.Marshal(NewCustomEntryPoint("stake"))
	require.NoError(err, "Marshal(Custom)")
	require.JSONEq(`{"Custom":"stake"}`, string(raw), "custom form")
}

func TestEntryPointUnknown(t *testing.T) {
	require := require.New(t)

	_, _, err := EntryPointFromBytes([]byte{200})
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown tag")

	var ep EntryPoint
	require.ErrorIs(ep.UnmarshalJSON([]byte(`"Snorkel"`)), ErrUnknownVariantTag, "unknown name")
	require.ErrorIs(ep.UnmarshalJSON([]byte(`{"Bespoke":"x"}`)), ErrUnknownVariantTag, "unknown constructor")
}
