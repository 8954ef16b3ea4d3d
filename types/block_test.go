package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	memorySigner "github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature/signers/memory"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
)

func testBlockV1() *BlockV1 {
	proposer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "block proposer").Public()
	validator := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "block validator").Public()
	return &BlockV1{
		Hash: hash.NewFromBytes([]byte("block")),
		Header: BlockHeaderV1{
			ParentHash:      hash.NewFromBytes([]byte("parent")),
			StateRootHash:   hash.NewFromBytes([]byte("state")),
			BodyHash:        hash.NewFromBytes([]byte("body")),
			RandomBit:       true,
			AccumulatedSeed: hash.NewFromBytes([]byte("seed")),
			EraEnd: &EraEndV1{
				Equivocators: []signature.PublicKey{validator},
				Rewards:      []EraReward{{Validator: validator, Amount: 1000}},
				NextEraValidatorWeights: []ValidatorWeight{
					{Validator: validator, Weight: quantity.NewFromUint64(500)},
				},
			},
			Timestamp:       1700000000000,
			EraID:           42,
			Height:          9001,
			ProtocolVersion: "1.5.6",
			Proposer:        proposer,
		},
		DeployHashes:   []hash.Hash{hash.NewFromBytes([]byte("d1"))},
		TransferHashes: []hash.Hash{hash.NewFromBytes([]byte("t1"))},
	}
}

func TestBlockV2FromV1(t *testing.T) {
	require := require.New(t)

	v1 := testBlockV1()
	v2 := NewBlockV2FromV1(v1)

	require.Equal(v1.Hash, v2.Hash, "hash carried over")
	require.Equal(v1.Header.ParentHash, v2.ParentHash, "parent hash")
	require.Equal(v1.Header.EraID, v2.EraID, "era id")
	require.Equal(v1.Header.Height, v2.Height, "height")
	require.Equal(v1.Header.Timestamp, v2.Timestamp, "timestamp")
	require.Equal(v1.Header.Proposer, v2.Proposer, "proposer")
	require.Equal(uint8(1), v2.CurrentGasPrice, "implicit gas price")

	require.Len(v2.TransactionHashes, 2, "deploys and transfers merged")
	require.Equal(v1.DeployHashes[0], v2.TransactionHashes[0], "deploy hash first")
	require.Equal(v1.TransferHashes[0], v2.TransactionHashes[1], "transfer hash second")

	require.NotNil(v2.EraEnd, "era end converted")
	require.Equal(uint8(1), v2.EraEnd.NextEraGasPrice, "era end implicit gas price")
	require.Len(v2.EraEnd.Rewards, 1, "rewards converted")
	require.Equal("1000", v2.EraEnd.Rewards[0].Amount.String(), "reward amount widened")
	require.Equal(v1.Header.EraEnd.Equivocators, v2.EraEnd.Equivocators, "equivocators")
}

func TestBlockV2FromV1NoEraEnd(t *testing.T) {
	require := require.New(t)

	v1 := testBlockV1()
	v1.Header.EraEnd = nil
	v2 := NewBlockV2FromV1(v1)
	require.Nil(v2.EraEnd, "no era end to convert")
}

func TestBlockOrigin(t *testing.T) {
	require := require.New(t)

	v1 := testBlockV1()
	b := NewBlockFromV1(v1)
	back, ok := b.GetBlockV1()
	require.True(ok, "GetBlockV1")
	require.Equal(v1, back, "origin preserved")
	require.Equal(v1.Hash, b.Hash, "view hash")

	v2 := NewBlockV2FromV1(v1)
	b = NewBlockFromV2(v2)
	_, ok = b.GetBlockV1()
	require.False(ok, "GetBlockV1 on v2 origin")
}
