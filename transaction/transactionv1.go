package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
)

// TransactionV1 is a signed unified payload era transaction.
//
// The hash covers the payload bytes; every approval signs the hash.
type TransactionV1 struct {
	Hash      hash.Hash
	Payload   *TransactionV1Payload
	Approvals []Approval
}

// NewTransactionV1 constructs an unsigned transaction from a payload,
// computing its hash.
func NewTransactionV1(payload *TransactionV1Payload) *TransactionV1 {
	return &TransactionV1{
		Hash:    hash.NewFromBytes(payload.Bytes()),
		Payload: payload,
	}
}

// PayloadFromHeaderBody lifts a header+body era transaction into the
// unified payload form, after verifying the header's body hash
// commitment. The resulting payload hashes differently from the
// header: the two eras have independent transaction hashes.
func PayloadFromHeaderBody(header *TransactionV1Header, body *TransactionV1Body) (*TransactionV1Payload, error) {
	if err := header.checkBodyHash(body); err != nil {
		return nil, err
	}
	return &TransactionV1Payload{
		InitiatorAddr: header.InitiatorAddr,
		Timestamp:     header.Timestamp,
		TTL:           header.TTL,
		ChainName:     header.ChainName,
		PricingMode:   header.PricingMode,
		Args:          body.Args,
		Target:        body.Target,
		EntryPoint:    body.EntryPoint,
		Scheduling:    body.Scheduling,
	}, nil
}

// Sign appends an approval by the given signer over the transaction
// hash.
func (t *TransactionV1) Sign(signer signature.Signer) error {
	approval, err := NewApproval(signer, t.Hash[:])
	if err != nil {
		return err
	}
	t.Approvals = append(t.Approvals, approval)
	return nil
}

// Validate checks the hash commitment and every approval signature,
// aggregating all failures.
func (t *TransactionV1) Validate() error {
	var errs *multierror.Error

	computed := hash.NewFromBytes(t.Payload.Bytes())
	if !t.Hash.Equal(&computed) {
		errs = multierror.Append(errs, fmt.Errorf("%w: have %s, computed %s", ErrInvalidTransactionHash, t.Hash, computed))
	}
	for i, approval := range t.Approvals {
		if !approval.Verify(t.Hash[:]) {
			errs = multierror.Append(errs, fmt.Errorf("%w: approval %d by %s", ErrInvalidApprovalSignature, i, approval.Signer))
		}
	}
	return errs.ErrorOrNil()
}

// Bytes returns the canonical byte encoding: a calltable whose fields
// are the hash, the payload and the approvals.
func (t *TransactionV1) Bytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, t.Hash[:]).
		MustAddField(1, t.Payload.Bytes()).
		MustAddField(2, approvalsBytes(t.Approvals))
	return s.ToBytes()
}

// TransactionV1FromBytes decodes and validates a transaction from the
// front of data and returns the remainder. Decoding fails if the hash
// commitment or any approval signature does not check out.
func TransactionV1FromBytes(data []byte) (*TransactionV1, []byte, error) {
	s, rest, err := calltable.FromBytes(data)
	if err != nil {
		return nil, nil, err
	}
	if s.FieldCount() != 3 {
		return nil, nil, fmt.Errorf("%w: transaction has %d fields, want 3", ErrMalformedTransaction, s.FieldCount())
	}

	var t TransactionV1

	hashRaw, _ := s.GetField(0)
	if len(hashRaw) != hash.Size {
		return nil, nil, fmt.Errorf("%w: transaction hash field", ErrMalformedTransaction)
	}
	copy(t.Hash[:], hashRaw)

	payloadRaw, _ := s.GetField(1)
	payload, payloadRest, err := PayloadFromBytes(payloadRaw)
	if err != nil {
		return nil, nil, err
	}
	if len(payloadRest) != 0 {
		return nil, nil, fmt.Errorf("%w: trailing bytes after payload", ErrMalformedTransaction)
	}
	t.Payload = payload

	approvalsRaw, _ := s.GetField(2)
	approvals, approvalsRest, err := approvalsFromBytes(approvalsRaw)
	if err != nil {
		return nil, nil, err
	}
	if len(approvalsRest) != 0 {
		return nil, nil, fmt.Errorf("%w: trailing bytes after approvals", ErrMalformedTransaction)
	}
	t.Approvals = approvals

	if err = t.Validate(); err != nil {
		return nil, nil, err
	}
	return &t, rest, nil
}

// transactionV1JSON is the JSON wire form of a signed transaction.
type transactionV1JSON struct {
	Hash      hash.Hash             `json:"hash"`
	Payload   *TransactionV1Payload `json:"payload"`
	Approvals []Approval            `json:"approvals"`
}

// MarshalJSON encodes the transaction for the JSON wire.
func (t *TransactionV1) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionV1JSON{
		Hash:      t.Hash,
		Payload:   t.Payload,
		Approvals: t.Approvals,
	})
}

// UnmarshalJSON decodes and validates a transaction from the JSON
// wire.
func (t *TransactionV1) UnmarshalJSON(data []byte) error {
	var raw transactionV1JSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if raw.Payload == nil {
		return fmt.Errorf("%w: missing payload", ErrMalformedTransaction)
	}
	decoded := TransactionV1{
		Hash:      raw.Hash,
		Payload:   raw.Payload,
		Approvals: raw.Approvals,
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*t = decoded
	return nil
}
