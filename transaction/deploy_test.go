package transaction

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/clvalue"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	memorySigner "github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature/signers/memory"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
)

func testContractHash() hash.Hash {
	return hash.NewFromBytes([]byte("stored contract"))
}

func testTransferDeploy(signer signature.Signer) *Deploy {
	recipient := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "deploy recipient")
	header := &DeployHeader{
		Account:   signer.Public(),
		Timestamp: NewTimestamp(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)),
		TTL:       NewDuration(30 * time.Minute),
		GasPrice:  1,
		ChainName: "zephyr-test",
	}
	payment := NewStandardPayment(quantity.NewFromUint64(100_000_000))
	session := NewTransferSession(quantity.NewFromUint64(25_000_000_000), recipient.Public(), nil)
	return NewDeploy(header, payment, session)
}

func TestDeploySignAndValidate(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "deploy signer")
	d := testTransferDeploy(signer)
	require.NoError(d.Validate(), "unsigned Validate")

	require.NoError(d.Sign(signer), "Sign")
	require.NoError(d.Validate(), "signed Validate")

	amount, ok := d.Session.ItemArgs().Get("amount")
	require.True(ok, "session amount arg")
	require.Equal("25000000000", amount.(clvalue.U512).String(), "session amount value")
}

func TestDeployBytesRoundTrip(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmSecp256k1, "deploy bytes")
	d := testTransferDeploy(signer)
	require.NoError(d.Sign(signer), "Sign")

	decoded, rest, err := DeployFromBytes(d.Bytes())
	require.NoError(err, "DeployFromBytes")
	require.Empty(rest, "remainder")
	require.Equal(d.Hash, decoded.Hash, "hash preserved")
	require.Equal(d.Bytes(), decoded.Bytes(), "byte round trip")
}

func TestDeployJSONRoundTrip(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "deploy json")
	d := testTransferDeploy(signer)
	require.NoError(d.Sign(signer), "Sign")

	raw, err := json.Marshal(d)
	require.NoError(err, "Marshal")

	var decoded Deploy
	require.NoError(json.Unmarshal(raw, &decoded), "Unmarshal")
	require.Equal(d.Hash, decoded.Hash, "hash preserved")
	require.Equal(d.Bytes(), decoded.Bytes(), "JSON round trip")
}

func TestDeployTamperDetection(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "deploy tamper")
	d := testTransferDeploy(signer)
	require.NoError(d.Sign(signer), "Sign")

	tampered := *d
	tampered.Session = NewTransferSession(quantity.NewFromUint64(1), signer.Public(), nil)
	err := tampered.Validate()
	require.ErrorIs(err, ErrInvalidBodyHash, "session tamper")

	wrongHash := *d
	wrongHash.Hash[0] ^= 0xff
	err = wrongHash.Validate()
	require.ErrorIs(err, ErrInvalidDeployHash, "hash tamper")
	require.ErrorIs(err, ErrInvalidApprovalSignature, "hash tamper breaks approvals")
}

func TestExecutableDeployItemRoundTrips(t *testing.T) {
	require := require.New(t)

	version := uint32(7)
	args := NewArgs().MustInsert("amount", clvalue.NewU512FromUint64(1))
	items := []ExecutableDeployItem{
		ModuleBytes{ModuleBytes: []byte{0x00, 0x61, 0x73, 0x6d}, Args: args},
		StoredContractByHash{Hash: testContractHash(), EntryPoint: "mint", Args: args},
		StoredContractByName{Name: "token", EntryPoint: "mint", Args: args},
		StoredVersionedContractByHash{Hash: testContractHash(), Version: &version, EntryPoint: "mint", Args: args},
		StoredVersionedContractByName{Name: "token", EntryPoint: "mint", Args: args},
		Transfer{Args: args},
	}
	for _, item := range items {
		decoded, rest, err := ExecutableDeployItemFromBytes(item.Bytes())
		require.NoError(err, "ExecutableDeployItemFromBytes(%T)", item)
		require.Empty(rest, "remainder (%T)", item)
		require.Equal(item.Bytes(), decoded.Bytes(), "byte round trip (%T)", item)

		raw, err := json.Marshal(item)
		require.NoError(err, "Marshal(%T)", item)
		fromJSON, err := ExecutableDeployItemFromJSON(raw)
		require.NoError(err, "ExecutableDeployItemFromJSON(%T)", item)
		require.Equal(item.Bytes(), fromJSON.Bytes(), "JSON round trip (%T)", item)
	}

	_, _, err := ExecutableDeployItemFromBytes([]byte{42})
	require.ErrorIs(err, ErrUnknownVariantTag, "unknown item tag")
}
