package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// Entry point variant tags.
const (
	entryPointTagCustom             uint8 = 0
	entryPointTagTransfer           uint8 = 1
	entryPointTagAddBid             uint8 = 2
	entryPointTagWithdrawBid        uint8 = 3
	entryPointTagDelegate           uint8 = 4
	entryPointTagUndelegate         uint8 = 5
	entryPointTagRedelegate         uint8 = 6
	entryPointTagActivateBid        uint8 = 7
	entryPointTagChangeBidPublicKey uint8 = 8
	entryPointTagCall               uint8 = 9
)

// entryPointNames maps non-custom tags to their canonical names.
var entryPointNames = map[uint8]string{
	entryPointTagTransfer:           "Transfer",
	entryPointTagAddBid:             "AddBid",
	entryPointTagWithdrawBid:        "WithdrawBid",
	entryPointTagDelegate:           "Delegate",
	entryPointTagUndelegate:         "Undelegate",
	entryPointTagRedelegate:         "Redelegate",
	entryPointTagActivateBid:        "ActivateBid",
	entryPointTagChangeBidPublicKey: "ChangeBidPublicKey",
	entryPointTagCall:               "Call",
}

// entryPointTags is the inverse of entryPointNames.
var entryPointTags = func() map[string]uint8 {
	m := make(map[string]uint8, len(entryPointNames))
	for tag, name := range entryPointNames {
		m[name] = tag
	}
	return m
}()

// EntryPoint identifies the operation a transaction invokes: one of the
// built-in native operations, or a named custom contract entry point.
type EntryPoint struct {
	tag  uint8
	name string
}

// Built-in entry points.
var (
	EntryPointTransfer           = EntryPoint{tag: entryPointTagTransfer}
	EntryPointAddBid             = EntryPoint{tag: entryPointTagAddBid}
	EntryPointWithdrawBid        = EntryPoint{tag: entryPointTagWithdrawBid}
	EntryPointDelegate           = EntryPoint{tag: entryPointTagDelegate}
	EntryPointUndelegate         = EntryPoint{tag: entryPointTagUndelegate}
	EntryPointRedelegate         = EntryPoint{tag: entryPointTagRedelegate}
	EntryPointActivateBid        = EntryPoint{tag: entryPointTagActivateBid}
	EntryPointChangeBidPublicKey = EntryPoint{tag: entryPointTagChangeBidPublicKey}
	EntryPointCall               = EntryPoint{tag: entryPointTagCall}
)

// NewCustomEntryPoint returns the entry point for a named custom
// contract method.
func NewCustomEntryPoint(name string) EntryPoint {
	return EntryPoint{tag: entryPointTagCustom, name: name}
}

// IsCustom reports whether this is a custom entry point.
func (e EntryPoint) IsCustom() bool {
	return e.tag == entryPointTagCustom
}

// IsNative reports whether this entry point targets the native transfer
// interface rather than stored or session code.
func (e EntryPoint) IsNative() bool {
	return e.tag == entryPointTagTransfer
}

// CustomName returns the method name of a custom entry point, or the
// empty string for built-in ones.
func (e EntryPoint) CustomName() string {
	return e.name
}

// String returns the canonical name of the entry point.
func (e EntryPoint) String() string {
	if e.IsCustom() {
		return e.name
	}
	return entryPointNames[e.tag]
}

// Bytes returns the legacy byte encoding: the variant tag, followed by
// the length-prefixed method name for custom entry points.
func (e EntryPoint) Bytes() []byte {
	if e.IsCustom() {
		return append([]byte{entryPointTagCustom}, bytecodec.ToBytesString(e.name)...)
	}
	return []byte{e.tag}
}

// CalltableBytes returns the unified payload era encoding.
func (e EntryPoint) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{e.tag})
	if e.IsCustom() {
		s.MustAddField(1, bytecodec.ToBytesString(e.name))
	}
	return s.ToBytes()
}

// MarshalJSON encodes built-in entry points as their bare name and
// custom ones as a single-key object.
func (e EntryPoint) MarshalJSON() ([]byte, error) {
	if e.IsCustom() {
		return json.Marshal(map[string]string{"Custom": e.name})
	}
	name, ok := entryPointNames[e.tag]
	if !ok {
		return nil, fmt.Errorf("%w: entry point tag %d", ErrUnknownVariantTag, e.tag)
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes either JSON form.
func (e *EntryPoint) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		tag, ok := entryPointTags[name]
		if !ok {
			return fmt.Errorf("%w: entry point %q", ErrUnknownVariantTag, name)
		}
		*e = EntryPoint{tag: tag}
		return nil
	}

	key, raw, err := singleKey(data)
	if err != nil {
		return err
	}
	if key != "Custom" {
		return fmt.Errorf("%w: entry point %q", ErrUnknownVariantTag, key)
	}
	var custom string
	if err := json.Unmarshal(raw, &custom); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	*e = NewCustomEntryPoint(custom)
	return nil
}

// EntryPointFromBytes decodes a legacy encoded entry point from the
// front of data and returns the remainder.
func EntryPointFromBytes(data []byte) (EntryPoint, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return EntryPoint{}, nil, err
	}
	if tag == entryPointTagCustom {
		name, rest, err := bytecodec.FromBytesString(rest)
		if err != nil {
			return EntryPoint{}, nil, err
		}
		return NewCustomEntryPoint(name), rest, nil
	}
	if _, ok := entryPointNames[tag]; !ok {
		return EntryPoint{}, nil, fmt.Errorf("%w: entry point tag %d", ErrUnknownVariantTag, tag)
	}
	return EntryPoint{tag: tag}, rest, nil
}

// entryPointFromCalltable decodes a unified payload era entry point
// from a serialized calltable.
func entryPointFromCalltable(data []byte) (EntryPoint, error) {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return EntryPoint{}, err
	}
	if len(rest) != 0 {
		return EntryPoint{}, fmt.Errorf("%w: trailing bytes after entry point", ErrMalformedTransaction)
	}
	tagField, ok := t.GetField(0)
	if !ok || len(tagField) != 1 {
		return EntryPoint{}, fmt.Errorf("%w: entry point missing tag field", ErrMalformedTransaction)
	}
	tag := tagField[0]
	if tag == entryPointTagCustom {
		var name string
		if err := readStringField(t, 1, &name); err != nil {
			return EntryPoint{}, err
		}
		return NewCustomEntryPoint(name), nil
	}
	if _, ok := entryPointNames[tag]; !ok {
		return EntryPoint{}, fmt.Errorf("%w: entry point tag %d", ErrUnknownVariantTag, tag)
	}
	return EntryPoint{tag: tag}, nil
}
