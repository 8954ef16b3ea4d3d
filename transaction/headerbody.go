package transaction

import (
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

// TransactionV1Body is the execution portion of a header+body era
// transaction.
type TransactionV1Body struct {
	Args       *Args      `json:"args"`
	Target     Target     `json:"target"`
	EntryPoint EntryPoint `json:"entry_point"`
	Scheduling Scheduling `json:"scheduling"`
}

// Bytes returns the canonical byte encoding: the concatenated legacy
// encodings of the args, target, entry point and scheduling.
func (b *TransactionV1Body) Bytes() []byte {
	out := b.Args.Bytes()
	out = append(out, b.Target.Bytes()...)
	out = append(out, b.EntryPoint.Bytes()...)
	return append(out, b.Scheduling.Bytes()...)
}

// Hash returns the body hash committed to by the header.
func (b *TransactionV1Body) Hash() hash.Hash {
	return hash.NewFromBytes(b.Bytes())
}

// BodyFromBytes decodes a body from the front of data and returns the
// remainder.
func BodyFromBytes(data []byte) (*TransactionV1Body, []byte, error) {
	var b TransactionV1Body
	var err error
	rest := data
	if b.Args, rest, err = ArgsFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if b.Target, rest, err = TargetFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if b.EntryPoint, rest, err = EntryPointFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if b.Scheduling, rest, err = SchedulingFromBytes(rest); err != nil {
		return nil, nil, err
	}
	return &b, rest, nil
}

// TransactionV1Header is the signed portion of a header+body era
// transaction. It commits to the body through the body hash; its own
// hash is the transaction hash.
type TransactionV1Header struct {
	ChainName     string        `json:"chain_name"`
	Timestamp     Timestamp     `json:"timestamp"`
	TTL           Duration      `json:"ttl"`
	BodyHash      hash.Hash     `json:"body_hash"`
	PricingMode   PricingMode   `json:"pricing_mode"`
	InitiatorAddr InitiatorAddr `json:"initiator_addr"`
}

// Bytes returns the canonical byte encoding: chain name, timestamp,
// ttl, body hash, pricing mode, initiator, concatenated in that order.
func (h *TransactionV1Header) Bytes() []byte {
	out := bytecodec.ToBytesString(h.ChainName)
	out = append(out, h.Timestamp.Bytes()...)
	out = append(out, h.TTL.Bytes()...)
	out = append(out, h.BodyHash[:]...)
	out = append(out, h.PricingMode.Bytes()...)
	return append(out, h.InitiatorAddr.Bytes()...)
}

// Hash returns the transaction hash of a header+body era transaction.
func (h *TransactionV1Header) Hash() hash.Hash {
	return hash.NewFromBytes(h.Bytes())
}

// HeaderFromBytes decodes a header from the front of data and returns
// the remainder.
func HeaderFromBytes(data []byte) (*TransactionV1Header, []byte, error) {
	var h TransactionV1Header
	var err error
	rest := data
	if h.ChainName, rest, err = bytecodec.FromBytesString(rest); err != nil {
		return nil, nil, err
	}
	if h.Timestamp, rest, err = TimestampFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if h.TTL, rest, err = DurationFromBytes(rest); err != nil {
		return nil, nil, err
	}
	raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
	if err != nil {
		return nil, nil, err
	}
	copy(h.BodyHash[:], raw)
	if h.PricingMode, rest, err = PricingModeFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if h.InitiatorAddr, rest, err = InitiatorAddrFromBytes(rest); err != nil {
		return nil, nil, err
	}
	return &h, rest, nil
}

// checkBodyHash verifies the header's body hash commitment.
func (h *TransactionV1Header) checkBodyHash(body *TransactionV1Body) error {
	bodyHash := body.Hash()
	if !h.BodyHash.Equal(&bodyHash) {
		return fmt.Errorf("%w: have %s, computed %s", ErrInvalidBodyHash, h.BodyHash, bodyHash)
	}
	return nil
}
