package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
)

// Initiator address variant tags.
const (
	initiatorTagPublicKey   uint8 = 0
	initiatorTagAccountHash uint8 = 1
)

// InitiatorAddr identifies the account that initiated a transaction,
// either by its public key or by its derived account hash.
type InitiatorAddr interface {
	json.Marshaler

	// Bytes returns the legacy byte encoding.
	Bytes() []byte

	// CalltableBytes returns the unified payload era encoding.
	CalltableBytes() []byte

	// AccountHash returns the account hash of the initiator, deriving
	// it if the initiator is identified by public key.
	AccountHash() hash.Hash

	isInitiatorAddr()
}

// InitiatorPublicKey identifies the initiator by public key.
type InitiatorPublicKey struct {
	PublicKey signature.PublicKey
}

// Bytes returns the legacy byte encoding.
func (i InitiatorPublicKey) Bytes() []byte {
	return append([]byte{initiatorTagPublicKey}, i.PublicKey.Bytes()...)
}

// CalltableBytes returns the unified payload era encoding.
func (i InitiatorPublicKey) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{initiatorTagPublicKey}).
		MustAddField(1, i.PublicKey.Bytes())
	return t.ToBytes()
}

// AccountHash derives the initiator's account hash from the key.
func (i InitiatorPublicKey) AccountHash() hash.Hash {
	return i.PublicKey.AccountHash()
}

// MarshalJSON encodes the variant as a single-key object.
func (i InitiatorPublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]signature.PublicKey{"PublicKey": i.PublicKey})
}

func (i InitiatorPublicKey) isInitiatorAddr() {}

// InitiatorAccountHash identifies the initiator by account hash alone.
type InitiatorAccountHash struct {
	Hash hash.Hash
}

// Bytes returns the legacy byte encoding.
func (i InitiatorAccountHash) Bytes() []byte {
	return append([]byte{initiatorTagAccountHash}, i.Hash[:]...)
}

// CalltableBytes returns the unified payload era encoding.
func (i InitiatorAccountHash) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{initiatorTagAccountHash}).
		MustAddField(1, i.Hash[:])
	return t.ToBytes()
}

// AccountHash returns the account hash.
func (i InitiatorAccountHash) AccountHash() hash.Hash {
	return i.Hash
}

// MarshalJSON encodes the variant as a single-key object.
func (i InitiatorAccountHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]hash.Hash{"AccountHash": i.Hash})
}

func (i InitiatorAccountHash) isInitiatorAddr() {}

// InitiatorAddrFromBytes decodes a legacy encoded initiator address
// from the front of data and returns the remainder.
func InitiatorAddrFromBytes(data []byte) (InitiatorAddr, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	switch tag {
	case initiatorTagPublicKey:
		pk, rest, err := signature.FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return InitiatorPublicKey{PublicKey: pk}, rest, nil
	case initiatorTagAccountHash:
		var i InitiatorAccountHash
		raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(i.Hash[:], raw)
		return i, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: initiator tag %d", ErrUnknownVariantTag, tag)
	}
}

// InitiatorAddrFromJSON decodes an initiator address from its
// single-key JSON object form.
func InitiatorAddrFromJSON(data []byte) (InitiatorAddr, error) {
	key, raw, err := singleKey(data)
	if err != nil {
		return nil, err
	}
	switch key {
	case "PublicKey":
		var i InitiatorPublicKey
		if err := json.Unmarshal(raw, &i.PublicKey); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return i, nil
	case "AccountHash":
		var i InitiatorAccountHash
		if err := json.Unmarshal(raw, &i.Hash); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("%w: initiator %q", ErrUnknownVariantTag, key)
	}
}

// initiatorAddrFromCalltable decodes a unified payload era initiator
// address from a serialized calltable.
func initiatorAddrFromCalltable(data []byte) (InitiatorAddr, error) {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after initiator", ErrMalformedTransaction)
	}
	tagField, ok := t.GetField(0)
	if !ok || len(tagField) != 1 {
		return nil, fmt.Errorf("%w: initiator missing tag field", ErrMalformedTransaction)
	}

	raw, ok := t.GetField(1)
	if !ok {
		return nil, fmt.Errorf("%w: initiator missing value field", ErrMalformedTransaction)
	}
	switch tagField[0] {
	case initiatorTagPublicKey:
		pk, pkRest, err := signature.FromBytes(raw)
		if err != nil || len(pkRest) != 0 {
			return nil, fmt.Errorf("%w: initiator public key field", ErrMalformedTransaction)
		}
		return InitiatorPublicKey{PublicKey: pk}, nil
	case initiatorTagAccountHash:
		var i InitiatorAccountHash
		if len(raw) != hash.Size {
			return nil, fmt.Errorf("%w: initiator account hash field", ErrMalformedTransaction)
		}
		copy(i.Hash[:], raw)
		return i, nil
	default:
		return nil, fmt.Errorf("%w: initiator tag %d", ErrUnknownVariantTag, tagField[0])
	}
}
