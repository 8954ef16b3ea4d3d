package transaction

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

// TransactionRuntime identifies the execution engine a stored or
// session target runs on.
type TransactionRuntime uint8

// Supported runtimes.
const (
	RuntimeVmV1 TransactionRuntime = 0
)

// String returns the canonical runtime name.
func (r TransactionRuntime) String() string {
	switch r {
	case RuntimeVmV1:
		return "VmZephyrV1"
	default:
		return fmt.Sprintf("[unknown runtime: %d]", uint8(r))
	}
}

// MarshalJSON encodes the runtime as its canonical name.
func (r TransactionRuntime) MarshalJSON() ([]byte, error) {
	if r != RuntimeVmV1 {
		return nil, fmt.Errorf("%w: runtime %d", ErrUnknownVariantTag, uint8(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the runtime from its canonical name.
func (r *TransactionRuntime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if s != "VmZephyrV1" {
		return fmt.Errorf("%w: runtime %q", ErrUnknownVariantTag, s)
	}
	*r = RuntimeVmV1
	return nil
}

// Invocation target variant tags.
const (
	invocationTagByHash        uint8 = 0
	invocationTagByName        uint8 = 1
	invocationTagByPackageHash uint8 = 2
	invocationTagByPackageName uint8 = 3
)

// InvocationTarget identifies the stored entity a transaction invokes.
//
// The variant set is closed: ByHash, ByName, ByPackageHash and
// ByPackageName.
type InvocationTarget interface {
	json.Marshaler

	// Bytes returns the legacy byte encoding, the variant tag followed
	// by the variant's fields.
	Bytes() []byte

	// CalltableBytes returns the unified payload era encoding.
	CalltableBytes() []byte

	isInvocationTarget()
}

// ByHash invokes a contract by its addressable entity hash.
type ByHash struct {
	Addr hash.Hash
}

// Bytes returns the legacy byte encoding.
func (t ByHash) Bytes() []byte {
	return append([]byte{invocationTagByHash}, t.Addr[:]...)
}

// CalltableBytes returns the unified payload era encoding.
func (t ByHash) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{invocationTagByHash}).
		MustAddField(1, t.Addr[:])
	return s.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (t ByHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"ByHash": t.Addr.String()})
}

func (t ByHash) isInvocationTarget() {}

// ByName invokes a contract by the name under which the initiating
// account stored it.
type ByName struct {
	Name string
}

// Bytes returns the legacy byte encoding.
func (t ByName) Bytes() []byte {
	return append([]byte{invocationTagByName}, bytecodec.ToBytesString(t.Name)...)
}

// CalltableBytes returns the unified payload era encoding.
func (t ByName) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{invocationTagByName}).
		MustAddField(1, bytecodec.ToBytesString(t.Name))
	return s.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (t ByName) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"ByName": t.Name})
}

func (t ByName) isInvocationTarget() {}

// ByPackageHash invokes a contract through its package hash, optionally
// pinned to a specific contract version.
type ByPackageHash struct {
	Addr    hash.Hash
	Version *uint32
}

// Bytes returns the legacy byte encoding.
func (t ByPackageHash) Bytes() []byte {
	out := append([]byte{invocationTagByPackageHash}, t.Addr[:]...)
	return append(out, optionalU32Bytes(t.Version)...)
}

// CalltableBytes returns the unified payload era encoding.
func (t ByPackageHash) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{invocationTagByPackageHash}).
		MustAddField(1, t.Addr[:]).
		MustAddField(2, optionalU32Bytes(t.Version))
	return s.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (t ByPackageHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"ByPackageHash": map[string]interface{}{
			"addr":    t.Addr.String(),
			"version": t.Version,
		},
	})
}

func (t ByPackageHash) isInvocationTarget() {}

// ByPackageName invokes a contract through a named package, optionally
// pinned to a specific contract version.
type ByPackageName struct {
	Name    string
	Version *uint32
}

// Bytes returns the legacy byte encoding.
func (t ByPackageName) Bytes() []byte {
	out := append([]byte{invocationTagByPackageName}, bytecodec.ToBytesString(t.Name)...)
	return append(out, optionalU32Bytes(t.Version)...)
}

// CalltableBytes returns the unified payload era encoding.
func (t ByPackageName) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{invocationTagByPackageName}).
		MustAddField(1, bytecodec.ToBytesString(t.Name)).
		MustAddField(2, optionalU32Bytes(t.Version))
	return s.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (t ByPackageName) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"ByPackageName": map[string]interface{}{
			"name":    t.Name,
			"version": t.Version,
		},
	})
}

func (t ByPackageName) isInvocationTarget() {}

// InvocationTargetFromBytes decodes a legacy encoded invocation target
// from the front of data and returns the remainder.
func InvocationTargetFromBytes(data []byte) (InvocationTarget, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	switch tag {
	case invocationTagByHash:
		var t ByHash
		raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(t.Addr[:], raw)
		return t, rest, nil
	case invocationTagByName:
		var t ByName
		if t.Name, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		return t, rest, nil
	case invocationTagByPackageHash:
		var t ByPackageHash
		raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(t.Addr[:], raw)
		if t.Version, rest, err = optionalU32FromBytes(rest); err != nil {
			return nil, nil, err
		}
		return t, rest, nil
	case invocationTagByPackageName:
		var t ByPackageName
		if t.Name, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if t.Version, rest, err = optionalU32FromBytes(rest); err != nil {
			return nil, nil, err
		}
		return t, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: invocation target tag %d", ErrUnknownVariantTag, tag)
	}
}

// InvocationTargetFromJSON decodes an invocation target from its
// single-key JSON object form.
func InvocationTargetFromJSON(data []byte) (InvocationTarget, error) {
	key, raw, err := singleKey(data)
	if err != nil {
		return nil, err
	}
	switch key {
	case "ByHash":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		var t ByHash
		if err := t.Addr.UnmarshalHex(s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return t, nil
	case "ByName":
		var t ByName
		if err := json.Unmarshal(raw, &t.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return t, nil
	case "ByPackageHash":
		var body struct {
			Addr    string  `json:"addr"`
			Version *uint32 `json:"version"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		t := ByPackageHash{Version: body.Version}
		if err := t.Addr.UnmarshalHex(body.Addr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return t, nil
	case "ByPackageName":
		var body struct {
			Name    string  `json:"name"`
			Version *uint32 `json:"version"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return ByPackageName{Name: body.Name, Version: body.Version}, nil
	default:
		return nil, fmt.Errorf("%w: invocation target %q", ErrUnknownVariantTag, key)
	}
}

// invocationTargetFromCalltable decodes a unified payload era
// invocation target from a serialized calltable.
func invocationTargetFromCalltable(t *calltable.Serialization) (InvocationTarget, error) {
	tagField, ok := t.GetField(0)
	if !ok || len(tagField) != 1 {
		return nil, fmt.Errorf("%w: invocation target missing tag field", ErrMalformedTransaction)
	}
	switch tagField[0] {
	case invocationTagByHash:
		var v ByHash
		raw, ok := t.GetField(1)
		if !ok || len(raw) != hash.Size {
			return nil, fmt.Errorf("%w: invocation target addr field", ErrMalformedTransaction)
		}
		copy(v.Addr[:], raw)
		return v, nil
	case invocationTagByName:
		var v ByName
		if err := readStringField(t, 1, &v.Name); err != nil {
			return nil, err
		}
		return v, nil
	case invocationTagByPackageHash:
		var v ByPackageHash
		raw, ok := t.GetField(1)
		if !ok || len(raw) != hash.Size {
			return nil, fmt.Errorf("%w: invocation target addr field", ErrMalformedTransaction)
		}
		copy(v.Addr[:], raw)
		var err error
		if v.Version, err = readOptionalU32Field(t, 2); err != nil {
			return nil, err
		}
		return v, nil
	case invocationTagByPackageName:
		var v ByPackageName
		if err := readStringField(t, 1, &v.Name); err != nil {
			return nil, err
		}
		var err error
		if v.Version, err = readOptionalU32Field(t, 2); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: invocation target tag %d", ErrUnknownVariantTag, tagField[0])
	}
}

// Transaction target variant tags.
const (
	targetTagNative  uint8 = 0
	targetTagStored  uint8 = 1
	targetTagSession uint8 = 2
)

// Target describes where a transaction executes: the native transfer
// interface, a stored contract, or inline session module bytes.
type Target interface {
	json.Marshaler

	// Bytes returns the legacy byte encoding.
	Bytes() []byte

	// CalltableBytes returns the unified payload era encoding.
	CalltableBytes() []byte

	isTarget()
}

// Native targets the built-in transfer interface.
type Native struct{}

// Bytes returns the legacy byte encoding.
func (t Native) Bytes() []byte {
	return []byte{targetTagNative}
}

// CalltableBytes returns the unified payload era encoding.
func (t Native) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{targetTagNative})
	return s.ToBytes()
}

// MarshalJSON encodes the variant as its bare name.
func (t Native) MarshalJSON() ([]byte, error) {
	return json.Marshal("Native")
}

func (t Native) isTarget() {}

// Stored targets a stored contract through an invocation target.
type Stored struct {
	ID      InvocationTarget
	Runtime TransactionRuntime
}

// Bytes returns the legacy byte encoding.
func (t Stored) Bytes() []byte {
	out := []byte{targetTagStored}
	out = append(out, t.ID.Bytes()...)
	return append(out, byte(t.Runtime))
}

// CalltableBytes returns the unified payload era encoding.
func (t Stored) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{targetTagStored}).
		MustAddField(1, t.ID.CalltableBytes()).
		MustAddField(2, []byte{byte(t.Runtime)})
	return s.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (t Stored) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"Stored": map[string]interface{}{
			"id":      t.ID,
			"runtime": t.Runtime,
		},
	})
}

func (t Stored) isTarget() {}

// Session targets inline module bytes shipped with the transaction.
type Session struct {
	ModuleBytes      []byte
	Runtime          TransactionRuntime
	IsInstallUpgrade bool
}

// Bytes returns the legacy byte encoding.
func (t Session) Bytes() []byte {
	out := []byte{targetTagSession}
	out = append(out, bytecodec.ToBytesBool(t.IsInstallUpgrade)...)
	out = append(out, bytecodec.ToBytesBytes(t.ModuleBytes)...)
	return append(out, byte(t.Runtime))
}

// CalltableBytes returns the unified payload era encoding.
func (t Session) CalltableBytes() []byte {
	var s calltable.Serialization
	s.MustAddField(0, []byte{targetTagSession}).
		MustAddField(1, bytecodec.ToBytesBool(t.IsInstallUpgrade)).
		MustAddField(2, bytecodec.ToBytesBytes(t.ModuleBytes)).
		MustAddField(3, []byte{byte(t.Runtime)})
	return s.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object. Module bytes
// render as hex.
func (t Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"Session": map[string]interface{}{
			"module_bytes":       fmt.Sprintf("%x", t.ModuleBytes),
			"runtime":            t.Runtime,
			"is_install_upgrade": t.IsInstallUpgrade,
		},
	})
}

func (t Session) isTarget() {}

// TargetFromBytes decodes a legacy encoded target from the front of
// data and returns the remainder.
func TargetFromBytes(data []byte) (Target, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	switch tag {
	case targetTagNative:
		return Native{}, rest, nil
	case targetTagStored:
		var t Stored
		if t.ID, rest, err = InvocationTargetFromBytes(rest); err != nil {
			return nil, nil, err
		}
		var rt uint8
		if rt, rest, err = bytecodec.FromBytesU8(rest); err != nil {
			return nil, nil, err
		}
		t.Runtime = TransactionRuntime(rt)
		return t, rest, nil
	case targetTagSession:
		var t Session
		if t.IsInstallUpgrade, rest, err = bytecodec.FromBytesBool(rest); err != nil {
			return nil, nil, err
		}
		if t.ModuleBytes, rest, err = bytecodec.FromBytesBytes(rest); err != nil {
			return nil, nil, err
		}
		var rt uint8
		if rt, rest, err = bytecodec.FromBytesU8(rest); err != nil {
			return nil, nil, err
		}
		t.Runtime = TransactionRuntime(rt)
		return t, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: target tag %d", ErrUnknownVariantTag, tag)
	}
}

// TargetFromJSON decodes a target from its JSON form: the bare string
// "Native" or a single-key object for the other variants.
func TargetFromJSON(data []byte) (Target, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name != "Native" {
			return nil, fmt.Errorf("%w: target %q", ErrUnknownVariantTag, name)
		}
		return Native{}, nil
	}

	key, raw, err := singleKey(data)
	if err != nil {
		return nil, err
	}
	switch key {
	case "Stored":
		var body struct {
			ID      json.RawMessage    `json:"id"`
			Runtime TransactionRuntime `json:"runtime"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		id, err := InvocationTargetFromJSON(body.ID)
		if err != nil {
			return nil, err
		}
		return Stored{ID: id, Runtime: body.Runtime}, nil
	case "Session":
		var body struct {
			ModuleBytes      string             `json:"module_bytes"`
			Runtime          TransactionRuntime `json:"runtime"`
			IsInstallUpgrade bool               `json:"is_install_upgrade"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		mod, err := hex.DecodeString(body.ModuleBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: module bytes: %v", ErrMalformedTransaction, err)
		}
		return Session{
			ModuleBytes:      mod,
			Runtime:          body.Runtime,
			IsInstallUpgrade: body.IsInstallUpgrade,
		}, nil
	default:
		return nil, fmt.Errorf("%w: target %q", ErrUnknownVariantTag, key)
	}
}

// targetFromCalltable decodes a unified payload era target from a
// serialized calltable.
func targetFromCalltable(data []byte) (Target, error) {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after target", ErrMalformedTransaction)
	}
	tagField, ok := t.GetField(0)
	if !ok || len(tagField) != 1 {
		return nil, fmt.Errorf("%w: target missing tag field", ErrMalformedTransaction)
	}

	switch tagField[0] {
	case targetTagNative:
		return Native{}, nil
	case targetTagStored:
		var v Stored
		idRaw, ok := t.GetField(1)
		if !ok {
			return nil, fmt.Errorf("%w: stored target id field", ErrMalformedTransaction)
		}
		inner, innerRest, err := calltable.FromBytes(idRaw)
		if err != nil {
			return nil, err
		}
		if len(innerRest) != 0 {
			return nil, fmt.Errorf("%w: trailing bytes after invocation target", ErrMalformedTransaction)
		}
		if v.ID, err = invocationTargetFromCalltable(inner); err != nil {
			return nil, err
		}
		var rt uint8
		if err := readU8Field(t, 2, &rt); err != nil {
			return nil, err
		}
		v.Runtime = TransactionRuntime(rt)
		return v, nil
	case targetTagSession:
		var v Session
		if err := readBoolField(t, 1, &v.IsInstallUpgrade); err != nil {
			return nil, err
		}
		modRaw, ok := t.GetField(2)
		if !ok {
			return nil, fmt.Errorf("%w: session module bytes field", ErrMalformedTransaction)
		}
		mod, modRest, err := bytecodec.FromBytesBytes(modRaw)
		if err != nil || len(modRest) != 0 {
			return nil, fmt.Errorf("%w: session module bytes field", ErrMalformedTransaction)
		}
		v.ModuleBytes = mod
		var rt uint8
		if err := readU8Field(t, 3, &rt); err != nil {
			return nil, err
		}
		v.Runtime = TransactionRuntime(rt)
		return v, nil
	default:
		return nil, fmt.Errorf("%w: target tag %d", ErrUnknownVariantTag, tagField[0])
	}
}

// optionalU32Bytes encodes an optional u32 as a presence byte followed
// by the value when present.
func optionalU32Bytes(v *uint32) []byte {
	if v == nil {
		return []byte{0}
	}
	return append([]byte{1}, bytecodec.ToBytesU32(*v)...)
}

// optionalU32FromBytes decodes an optional u32 from the front of data.
func optionalU32FromBytes(data []byte) (*uint32, []byte, error) {
	present, rest, err := bytecodec.FromBytesBool(data)
	if err != nil {
		return nil, nil, err
	}
	if !present {
		return nil, rest, nil
	}
	v, rest, err := bytecodec.FromBytesU32(rest)
	if err != nil {
		return nil, nil, err
	}
	return &v, rest, nil
}

func readOptionalU32Field(t *calltable.Serialization, index uint16) (*uint32, error) {
	raw, ok := t.GetField(index)
	if !ok {
		return nil, fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	v, rest, err := optionalU32FromBytes(raw)
	if err != nil || len(rest) != 0 {
		return nil, fmt.Errorf("%w: field %d", ErrMalformedTransaction, index)
	}
	return v, nil
}
