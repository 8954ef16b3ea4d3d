package transaction

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	memorySigner "github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature/signers/memory"
)

func TestPricingModeRoundTrips(t *testing.T) {
	require := require.New(t)

	modes := []PricingMode{
		PaymentLimited{PaymentAmount: 10_000, GasPriceTolerance: 2, StandardPayment: true},
		Fixed{GasPriceTolerance: 1},
		Prepaid{Receipt: hash.NewFromBytes([]byte("receipt"))},
	}
	for _, mode := range modes {
		decoded, rest, err := PricingModeFromBytes(mode.Bytes())
		require.NoError(err, "PricingModeFromBytes(%#v)", mode)
		require.Empty(rest, "remainder (%#v)", mode)
		require.Equal(mode, decoded, "legacy round trip (%#v)", mode)

		decoded, err = pricingModeFromCalltable(mode.CalltableBytes())
		require.NoError(err, "pricingModeFromCalltable(%#v)", mode)
		require.Equal(mode, decoded, "calltable round trip (%#v)", mode)

		raw, err := json.Marshal(mode)
		require.NoError(err, "Marshal(%#v)", mode)
		fromJSON, err := PricingModeFromJSON(raw)
		require.NoError(err, "PricingModeFromJSON(%#v)", mode)
		require.Equal(mode, fromJSON, "JSON round trip (%#v)", mode)
	}
}

func TestPricingModeUnknown(t *testing.T) {
	require := require.New(t)

	_, _, err := PricingModeFromBytes([]byte{7})
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown tag")

	_, err = PricingModeFromJSON([]byte(`{"Gratis":{}}`))
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown constructor")

	_, err = PricingModeFromJSON([]byte(`{"Fixed":{},"Prepaid":{}}`))
	require.ErrorIs(err, ErrMalformedTransaction, "multiple keys")
}

func TestSchedulingRoundTrips(t *testing.T) {
	require := require.New(t)

	schedules := []Scheduling{
		Standard{},
		FutureEra{Era: 123456},
		FutureTimestamp{Timestamp: NewTimestamp(time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC))},
	}
	for _, sched := range schedules {
		decoded, rest, err := SchedulingFromBytes(sched.Bytes())
		require.NoError(err, "SchedulingFromBytes(%#v)", sched)
		require.Empty(rest, "remainder (%#v)", sched)
		require.Equal(sched, decoded, "legacy round trip (%#v)", sched)

		decoded, err = schedulingFromCalltable(sched.CalltableBytes())
		require.NoError(err, "schedulingFromCalltable(%#v)", sched)
		require.Equal(sched, decoded, "calltable round trip (%#v)", sched)

		raw, err := json.Marshal(sched)
		require.NoError(err, "Marshal(%#v)", sched)
		fromJSON, err := SchedulingFromJSON(raw)
		require.NoError(err, "SchedulingFromJSON(%#v)", sched)
		require.Equal(sched, fromJSON, "JSON round trip (%#v)", sched)
	}
}

func TestInitiatorAddrRoundTrips(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "initiator round trips")
	initiators := []InitiatorAddr{
		InitiatorPublicKey{PublicKey: signer.Public()},
		InitiatorAccountHash{Hash: signer.Public().AccountHash()},
	}
	for _, initiator := range initiators {
		decoded, rest, err := InitiatorAddrFromBytes(initiator.Bytes())
		require.NoError(err, "InitiatorAddrFromBytes(%T)", initiator)
		require.Empty(rest, "remainder (%T)", initiator)
		require.Equal(initiator, decoded, "legacy round trip (%T)", initiator)

		decoded, err = initiatorAddrFromCalltable(initiator.CalltableBytes())
		require.NoError(err, "initiatorAddrFromCalltable(%T)", initiator)
		require.Equal(initiator, decoded, "calltable round trip (%T)", initiator)

		raw, err := json.Marshal(initiator)
		require.NoError(err, "Marshal(%T)", initiator)
		fromJSON, err := InitiatorAddrFromJSON(raw)
		require.NoError(err, "InitiatorAddrFromJSON(%T)", initiator)
		require.Equal(initiator, fromJSON, "JSON round trip (%T)", initiator)
	}
}

func TestInitiatorAccountHashDerivation(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "account hash derivation")
	byKey := InitiatorPublicKey{PublicKey: signer.Public()}
	byHash := InitiatorAccountHash{Hash: signer.Public().AccountHash()}
	require.Equal(byHash.AccountHash(), byKey.AccountHash(), "derived account hash")
}
