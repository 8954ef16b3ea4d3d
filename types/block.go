package types

import (
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
)

// ValidatorWeight is a validator's consensus weight for an era.
type ValidatorWeight struct {
	Validator signature.PublicKey `json:"validator"`
	Weight    *quantity.Quantity  `json:"weight"`
}

// EraReward is a single validator's reward in the old era-end report.
type EraReward struct {
	Validator signature.PublicKey `json:"validator"`
	Amount    uint64              `json:"amount"`
}

// EraEndV1 is the era-end report carried by old format blocks. Rewards
// are flat u64 amounts and the next era's gas price is implicit.
type EraEndV1 struct {
	Equivocators            []signature.PublicKey `json:"equivocators"`
	InactiveValidators      []signature.PublicKey `json:"inactive_validators"`
	Rewards                 []EraReward           `json:"rewards"`
	NextEraValidatorWeights []ValidatorWeight     `json:"next_era_validator_weights"`
}

// EraEndV2 is the era-end report carried by current format blocks.
// Rewards are wide integers to survive motes-denominated amounts and
// the next era's gas price is explicit.
type EraEndV2 struct {
	Equivocators            []signature.PublicKey `json:"equivocators"`
	InactiveValidators      []signature.PublicKey `json:"inactive_validators"`
	Rewards                 []EraRewardV2         `json:"rewards"`
	NextEraValidatorWeights []ValidatorWeight     `json:"next_era_validator_weights"`
	NextEraGasPrice         uint8                 `json:"next_era_gas_price"`
}

// EraRewardV2 is a single validator's reward in the current era-end
// report.
type EraRewardV2 struct {
	Validator signature.PublicKey `json:"validator"`
	Amount    *quantity.Quantity  `json:"amount"`
}

// NewEraEndV2FromV1 structurally converts an old era-end report to the
// current one. The next era gas price defaults to 1, the only value
// the old format could express.
func NewEraEndV2FromV1(v1 *EraEndV1) *EraEndV2 {
	if v1 == nil {
		return nil
	}
	rewards := make([]EraRewardV2, 0, len(v1.Rewards))
	for _, r := range v1.Rewards {
		rewards = append(rewards, EraRewardV2{
			Validator: r.Validator,
			Amount:    quantity.NewFromUint64(r.Amount),
		})
	}
	return &EraEndV2{
		Equivocators:            v1.Equivocators,
		InactiveValidators:      v1.InactiveValidators,
		Rewards:                 rewards,
		NextEraValidatorWeights: v1.NextEraValidatorWeights,
		NextEraGasPrice:         1,
	}
}

// BlockHeaderV1 is the header of an old format block.
type BlockHeaderV1 struct {
	ParentHash      hash.Hash           `json:"parent_hash"`
	StateRootHash   hash.Hash           `json:"state_root_hash"`
	BodyHash        hash.Hash           `json:"body_hash"`
	RandomBit       bool                `json:"random_bit"`
	AccumulatedSeed hash.Hash           `json:"accumulated_seed"`
	EraEnd          *EraEndV1           `json:"era_end,omitempty"`
	Timestamp       uint64              `json:"timestamp"`
	EraID           uint64              `json:"era_id"`
	Height          uint64              `json:"height"`
	ProtocolVersion string              `json:"protocol_version"`
	Proposer        signature.PublicKey `json:"proposer"`
}

// BlockV1 is an old format block.
type BlockV1 struct {
	Hash           hash.Hash     `json:"hash"`
	Header         BlockHeaderV1 `json:"header"`
	DeployHashes   []hash.Hash   `json:"deploy_hashes"`
	TransferHashes []hash.Hash   `json:"transfer_hashes"`
}

// BlockV2 is a current format block. Deploy and transfer hashes of the
// old format both surface as transaction hashes.
type BlockV2 struct {
	Hash              hash.Hash           `json:"hash"`
	ParentHash        hash.Hash           `json:"parent_hash"`
	StateRootHash     hash.Hash           `json:"state_root_hash"`
	BodyHash          hash.Hash           `json:"body_hash"`
	RandomBit         bool                `json:"random_bit"`
	AccumulatedSeed   hash.Hash           `json:"accumulated_seed"`
	EraEnd            *EraEndV2           `json:"era_end,omitempty"`
	Timestamp         uint64              `json:"timestamp"`
	EraID             uint64              `json:"era_id"`
	Height            uint64              `json:"height"`
	ProtocolVersion   string              `json:"protocol_version"`
	Proposer          signature.PublicKey `json:"proposer"`
	CurrentGasPrice   uint8               `json:"current_gas_price"`
	TransactionHashes []hash.Hash         `json:"transaction_hashes"`
}

// NewBlockV2FromV1 structurally converts an old format block to the
// current one. Hashes carry over unchanged; nothing is recomputed.
func NewBlockV2FromV1(v1 *BlockV1) *BlockV2 {
	txs := make([]hash.Hash, 0, len(v1.DeployHashes)+len(v1.TransferHashes))
	txs = append(txs, v1.DeployHashes...)
	txs = append(txs, v1.TransferHashes...)
	return &BlockV2{
		Hash:              v1.Hash,
		ParentHash:        v1.Header.ParentHash,
		StateRootHash:     v1.Header.StateRootHash,
		BodyHash:          v1.Header.BodyHash,
		RandomBit:         v1.Header.RandomBit,
		AccumulatedSeed:   v1.Header.AccumulatedSeed,
		EraEnd:            NewEraEndV2FromV1(v1.Header.EraEnd),
		Timestamp:         v1.Header.Timestamp,
		EraID:             v1.Header.EraID,
		Height:            v1.Header.Height,
		ProtocolVersion:   v1.Header.ProtocolVersion,
		Proposer:          v1.Header.Proposer,
		CurrentGasPrice:   1,
		TransactionHashes: txs,
	}
}

// Block is a uniform view over the two block formats, preserving which
// format it came from.
type Block struct {
	BlockV2

	originV1 *BlockV1
}

// NewBlockFromV1 builds the uniform view of an old format block.
func NewBlockFromV1(v1 *BlockV1) *Block {
	return &Block{BlockV2: *NewBlockV2FromV1(v1), originV1: v1}
}

// NewBlockFromV2 builds the uniform view of a current format block.
func NewBlockFromV2(v2 *BlockV2) *Block {
	return &Block{BlockV2: *v2}
}

// GetBlockV1 returns the source old format block, or false if the
// block did not originate from one.
func (b *Block) GetBlockV1() (*BlockV1, bool) {
	return b.originV1, b.originV1 != nil
}
