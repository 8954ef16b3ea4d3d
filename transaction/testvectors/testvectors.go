// Package testvectors generates deterministic signed transaction test
// vectors, for cross-implementation serialization checks.
package testvectors

import (
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	memorySigner "github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature/signers/memory"
	"github.com/zephyrprotocol/zephyr-sdk/transaction"
)

const keySeedPrefix = "zephyr-sdk test vectors: "

// TestVector is a signed transaction test vector.
type TestVector struct {
	Kind            string              `json:"kind"`
	Tx              interface{}         `json:"tx"`
	EncodedTx       []byte              `json:"encoded_tx"`
	Hash            hash.Hash           `json:"hash"`
	SignerPublicKey signature.PublicKey `json:"signer_public_key"`
	Valid           bool                `json:"valid"`
}

// MakeDeployVector signs a deploy with a vector signer derived from
// kind and packages it as a test vector.
func MakeDeployVector(kind string, d *transaction.Deploy, valid bool) TestVector {
	signer := VectorSigner(kind)
	if err := d.Sign(signer); err != nil {
		panic(err)
	}
	return TestVector{
		Kind:            kind,
		Tx:              d,
		EncodedTx:       d.Bytes(),
		Hash:            d.Hash,
		SignerPublicKey: signer.Public(),
		Valid:           valid,
	}
}

// MakeTransactionV1Vector signs a transaction with a vector signer
// derived from kind and packages it as a test vector.
func MakeTransactionV1Vector(kind string, tx *transaction.TransactionV1, valid bool) TestVector {
	signer := VectorSigner(kind)
	if err := tx.Sign(signer); err != nil {
		panic(err)
	}
	return TestVector{
		Kind:            kind,
		Tx:              tx,
		EncodedTx:       tx.Bytes(),
		Hash:            tx.Hash,
		SignerPublicKey: signer.Public(),
		Valid:           valid,
	}
}

// VectorSigner returns the deterministic signer used for vectors of
// the given kind.
func VectorSigner(kind string) signature.Signer {
	return memorySigner.NewTestSigner(signature.AlgorithmEd25519, keySeedPrefix+kind)
}
