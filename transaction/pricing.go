package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

// Pricing mode variant tags.
const (
	pricingTagPaymentLimited uint8 = 0
	pricingTagFixed          uint8 = 1
	pricingTagPrepaid        uint8 = 2
)

// PricingMode describes how a transaction pays for execution.
//
// The variant set is closed: PaymentLimited, Fixed and Prepaid.
type PricingMode interface {
	json.Marshaler

	// Bytes returns the legacy (header+body era) byte encoding: the
	// variant tag followed by the variant's fields.
	Bytes() []byte

	// CalltableBytes returns the unified payload era encoding, a
	// calltable whose field 0 is the variant tag.
	CalltableBytes() []byte

	isPricingMode()
}

// PaymentLimited is the pricing mode with a caller-specified payment
// amount and gas price tolerance.
type PaymentLimited struct {
	PaymentAmount     uint64 `json:"payment_amount"`
	GasPriceTolerance uint8  `json:"gas_price_tolerance"`
	StandardPayment   bool   `json:"standard_payment"`
}

// Bytes returns the legacy byte encoding.
func (p PaymentLimited) Bytes() []byte {
	out := []byte{pricingTagPaymentLimited}
	out = append(out, bytecodec.ToBytesU64(p.PaymentAmount)...)
	out = append(out, p.GasPriceTolerance)
	return append(out, bytecodec.ToBytesBool(p.StandardPayment)...)
}

// CalltableBytes returns the unified payload era encoding.
func (p PaymentLimited) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{pricingTagPaymentLimited}).
		MustAddField(1, bytecodec.ToBytesU64(p.PaymentAmount)).
		MustAddField(2, []byte{p.GasPriceTolerance}).
		MustAddField(3, bytecodec.ToBytesBool(p.StandardPayment))
	return t.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (p PaymentLimited) MarshalJSON() ([]byte, error) {
	type alias PaymentLimited
	return json.Marshal(map[string]alias{"PaymentLimited": alias(p)})
}

func (p PaymentLimited) isPricingMode() {}

// Fixed is the pricing mode where cost is derived from the current gas
// price and the transaction category.
type Fixed struct {
	GasPriceTolerance uint8 `json:"gas_price_tolerance"`
}

// Bytes returns the legacy byte encoding.
func (p Fixed) Bytes() []byte {
	return []byte{pricingTagFixed, p.GasPriceTolerance}
}

// CalltableBytes returns the unified payload era encoding.
func (p Fixed) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{pricingTagFixed}).
		MustAddField(1, []byte{p.GasPriceTolerance})
	return t.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (p Fixed) MarshalJSON() ([]byte, error) {
	type alias Fixed
	return json.Marshal(map[string]alias{"Fixed": alias(p)})
}

func (p Fixed) isPricingMode() {}

// Prepaid is the pricing mode backed by a previously purchased
// reservation, identified by its receipt hash.
type Prepaid struct {
	Receipt hash.Hash `json:"receipt"`
}

// Bytes returns the legacy byte encoding.
func (p Prepaid) Bytes() []byte {
	return append([]byte{pricingTagPrepaid}, p.Receipt[:]...)
}

// CalltableBytes returns the unified payload era encoding.
func (p Prepaid) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{pricingTagPrepaid}).
		MustAddField(1, p.Receipt[:])
	return t.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (p Prepaid) MarshalJSON() ([]byte, error) {
	type alias Prepaid
	return json.Marshal(map[string]alias{"Prepaid": alias(p)})
}

func (p Prepaid) isPricingMode() {}

// PricingModeFromJSON decodes a pricing mode from its single-key JSON
// object form.
func PricingModeFromJSON(data []byte) (PricingMode, error) {
	key, raw, err := singleKey(data)
	if err != nil {
		return nil, err
	}
	switch key {
	case "PaymentLimited":
		var p PaymentLimited
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("transaction: malformed PaymentLimited: %w", err)
		}
		return p, nil
	case "Fixed":
		var p Fixed
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("transaction: malformed Fixed: %w", err)
		}
		return p, nil
	case "Prepaid":
		var p Prepaid
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("transaction: malformed Prepaid: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: pricing mode %q", ErrUnknownVariantTag, key)
	}
}

// PricingModeFromBytes decodes a legacy encoded pricing mode from the
// front of data and returns the remainder.
func PricingModeFromBytes(data []byte) (PricingMode, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	switch tag {
	case pricingTagPaymentLimited:
		var p PaymentLimited
		if p.PaymentAmount, rest, err = bytecodec.FromBytesU64(rest); err != nil {
			return nil, nil, err
		}
		if p.GasPriceTolerance, rest, err = bytecodec.FromBytesU8(rest); err != nil {
			return nil, nil, err
		}
		if p.StandardPayment, rest, err = bytecodec.FromBytesBool(rest); err != nil {
			return nil, nil, err
		}
		return p, rest, nil
	case pricingTagFixed:
		var p Fixed
		if p.GasPriceTolerance, rest, err = bytecodec.FromBytesU8(rest); err != nil {
			return nil, nil, err
		}
		return p, rest, nil
	case pricingTagPrepaid:
		var p Prepaid
		raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(p.Receipt[:], raw)
		return p, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: pricing mode tag %d", ErrUnknownVariantTag, tag)
	}
}

// pricingModeFromCalltable decodes a unified payload era pricing mode
// from a serialized calltable.
func pricingModeFromCalltable(data []byte) (PricingMode, error) {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after pricing mode", ErrMalformedTransaction)
	}
	tagField, ok := t.GetField(0)
	if !ok || len(tagField) != 1 {
		return nil, fmt.Errorf("%w: pricing mode missing tag field", ErrMalformedTransaction)
	}

	switch tagField[0] {
	case pricingTagPaymentLimited:
		var p PaymentLimited
		if err := readU64Field(t, 1, &p.PaymentAmount); err != nil {
			return nil, err
		}
		if err := readU8Field(t, 2, &p.GasPriceTolerance); err != nil {
			return nil, err
		}
		if err := readBoolField(t, 3, &p.StandardPayment); err != nil {
			return nil, err
		}
		return p, nil
	case pricingTagFixed:
		var p Fixed
		if err := readU8Field(t, 1, &p.GasPriceTolerance); err != nil {
			return nil, err
		}
		return p, nil
	case pricingTagPrepaid:
		var p Prepaid
		raw, ok := t.GetField(1)
		if !ok || len(raw) != hash.Size {
			return nil, fmt.Errorf("%w: prepaid receipt field", ErrMalformedTransaction)
		}
		copy(p.Receipt[:], raw)
		return p, nil
	default:
		return nil, fmt.Errorf("%w: pricing mode tag %d", ErrUnknownVariantTag, tagField[0])
	}
}

// singleKey unwraps a single-key JSON object into its key and value.
func singleKey(data []byte) (string, json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one key, got %d", ErrMalformedTransaction, len(obj))
	}
	for k, v := range obj {
		return k, v, nil
	}
	panic("unreachable")
}

// Calltable field readers shared by the tagged-union decoders.

func readU8Field(t *calltable.Serialization, index uint16, dst *uint8) error {
	raw, ok := t.GetField(index)
	if !ok || len(raw) != 1 {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	*dst = raw[0]
	return nil
}

func readBoolField(t *calltable.Serialization, index uint16, dst *bool) error {
	raw, ok := t.GetField(index)
	if !ok {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	v, rest, err := bytecodec.FromBytesBool(raw)
	if err != nil || len(rest) != 0 {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	*dst = v
	return nil
}

func readU64Field(t *calltable.Serialization, index uint16, dst *uint64) error {
	raw, ok := t.GetField(index)
	if !ok {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	v, rest, err := bytecodec.FromBytesU64(raw)
	if err != nil || len(rest) != 0 {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	*dst = v
	return nil
}

func readStringField(t *calltable.Serialization, index uint16, dst *string) error {
	raw, ok := t.GetField(index)
	if !ok {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	v, rest, err := bytecodec.FromBytesString(raw)
	if err != nil || len(rest) != 0 {
		return fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	*dst = v
	return nil
}
