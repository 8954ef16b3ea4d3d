package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

func testInvocationTargets() []InvocationTarget {
	version := uint32(3)
	return []InvocationTarget{
		ByHash{Addr: hash.NewFromBytes([]byte("contract"))},
		ByName{Name: "market"},
		ByPackageHash{Addr: hash.NewFromBytes([]byte("package"))},
		ByPackageHash{Addr: hash.NewFromBytes([]byte("package")), Version: &version},
		ByPackageName{Name: "registry"},
		ByPackageName{Name: "registry", Version: &version},
	}
}

func TestInvocationTargetRoundTrips(t *testing.T) {
	require := require.New(t)

	for _, target := range testInvocationTargets() {
		decoded, rest, err := InvocationTargetFromBytes(target.Bytes())
		require.NoError(err, "InvocationTargetFromBytes(%#v)", target)
		require.Empty(rest, "remainder (%#v)", target)
		require.Equal(target, decoded, "legacy round trip (%#v)", target)

		raw, err := json.Marshal(target)
		require.NoError(err, "Marshal(%#v)", target)
		fromJSON, err := InvocationTargetFromJSON(raw)
		require.NoError(err, "InvocationTargetFromJSON(%#v)", target)
		require.Equal(target, fromJSON, "JSON round trip (%#v)", target)
	}
}

func TestTargetRoundTrips(t *testing.T) {
	require := require.New(t)

	targets := []Target{
		Native{},
		Stored{ID: ByName{Name: "market"}, Runtime: RuntimeVmV1},
		Session{ModuleBytes: []byte{0xde, 0xad, 0xbe, 0xef}, Runtime: RuntimeVmV1, IsInstallUpgrade: true},
	}
	for _, target := range targets {
		decoded, rest, err := TargetFromBytes(target.Bytes())
		require.NoError(err, "TargetFromBytes(%#v)", target)
		require.Empty(rest, "remainder (%#v)", target)
		require.Equal(target, decoded, "legacy round trip (%#v)", target)

		decoded, err = targetFromCalltable(target.CalltableBytes())
		require.NoError(err, "targetFromCalltable(%#v)", target)
		require.Equal(target, decoded, "calltable round trip (%#v)", target)

		raw, err := json.Marshal(target)
		require.NoError(err, "Marshal(%#v)", target)
		fromJSON, err := TargetFromJSON(raw)
		require.NoError(err, "TargetFromJSON(%#v)", target)
		require.Equal(target, fromJSON, "JSON round trip (%#v)", target)
	}
}

func TestTargetNativeJSONForm(t *testing.T) {
	require := require.New(t)

	raw, err := json.Marshal(Native{})
	require.NoError(err, "Marshal(Native)")
	require.JSONEq(`"Native"`, string(raw), "bare name form")
}

func TestRuntimeName(t *testing.T) {
	require := require.New(t)

	raw, err := json.Marshal(RuntimeVmV1)
	require.NoError(err, "Marshal(RuntimeVmV1)")
	require.JSONEq(`"VmZephyrV1"`, string(raw), "runtime name")

	var r TransactionRuntime
	require.NoError(json.Unmarshal(raw, &r), "Unmarshal runtime")
	require.Equal(RuntimeVmV1, r, "runtime round trip")

	err = json.Unmarshal([]byte(`"VmOtherV1"`), &r)
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown runtime name")
}

func TestTargetUnknownVariants(t *testing.T) {
	require := require.New(t)

	_, _, err := TargetFromBytes([]byte{9})
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown target tag")

	_, _, err = InvocationTargetFromBytes([]byte{9})
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown invocation tag")

	_, err = TargetFromJSON([]byte(`{"Teleport":{}}`))
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown target constructor")
}
