package transaction

import (
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

// Transaction is a uniform read view over the two transaction formats.
// It is constructed from a Deploy or a TransactionV1 and preserves the
// origin, so the exact original can always be recovered.
type Transaction struct {
	Hash          hash.Hash
	ChainName     string
	Timestamp     Timestamp
	TTL           Duration
	InitiatorAddr InitiatorAddr
	Args          *Args
	Approvals     []Approval

	origin origin
}

// origin is the variant payload holding the source object. Exactly one
// field is set.
type origin struct {
	deploy *Deploy
	v1     *TransactionV1
}

// NewTransactionFromDeploy builds the uniform view of a deploy. The
// hash bytes are the deploy hash, unchanged.
func NewTransactionFromDeploy(d *Deploy) *Transaction {
	return &Transaction{
		Hash:          d.Hash,
		ChainName:     d.Header.ChainName,
		Timestamp:     d.Header.Timestamp,
		TTL:           d.Header.TTL,
		InitiatorAddr: InitiatorPublicKey{PublicKey: d.Header.Account},
		Args:          d.Session.ItemArgs(),
		Approvals:     d.Approvals,
		origin:        origin{deploy: d},
	}
}

// NewTransactionFromTransactionV1 builds the uniform view of a unified
// payload era transaction. The hash bytes are the transaction hash,
// unchanged.
func NewTransactionFromTransactionV1(t *TransactionV1) *Transaction {
	return &Transaction{
		Hash:          t.Hash,
		ChainName:     t.Payload.ChainName,
		Timestamp:     t.Payload.Timestamp,
		TTL:           t.Payload.TTL,
		InitiatorAddr: t.Payload.InitiatorAddr,
		Args:          t.Payload.Args,
		Approvals:     t.Approvals,
		origin:        origin{v1: t},
	}
}

// GetDeploy returns the source deploy, or false if the transaction did
// not originate from one.
func (t *Transaction) GetDeploy() (*Deploy, bool) {
	return t.origin.deploy, t.origin.deploy != nil
}

// GetTransactionV1 returns the source unified payload transaction, or
// false if the transaction did not originate from one.
func (t *Transaction) GetTransactionV1() (*TransactionV1, bool) {
	return t.origin.v1, t.origin.v1 != nil
}

// Validate delegates to the origin's validation.
func (t *Transaction) Validate() error {
	if t.origin.deploy != nil {
		return t.origin.deploy.Validate()
	}
	return t.origin.v1.Validate()
}
