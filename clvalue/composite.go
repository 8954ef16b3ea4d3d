package clvalue

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// Option is an optional value. A nil Inner is the None case; the inner
// type descriptor is carried explicitly so that None still knows its
// full type.
type Option struct {
	InnerType cltype.CLType
	Inner     Value
}

// NewSome constructs a present Option around a value.
func NewSome(inner Value) Option {
	return Option{InnerType: inner.Type(), Inner: inner}
}

// NewNone constructs an absent Option of the given inner type.
func NewNone(innerType cltype.CLType) Option {
	return Option{InnerType: innerType}
}

// IsNone returns true iff the option is absent.
func (v Option) IsNone() bool { return v.Inner == nil }

// Type returns the value's type descriptor.
func (v Option) Type() cltype.CLType { return cltype.NewOption(v.InnerType) }

// Bytes returns the canonical byte encoding: a presence byte followed
// by the inner value's bytes if present.
func (v Option) Bytes() []byte {
	if v.IsNone() {
		return []byte{0}
	}
	return append([]byte{1}, v.Inner.Bytes()...)
}

// String returns the value in human readable form.
func (v Option) String() string {
	if v.IsNone() {
		return "None"
	}
	return fmt.Sprintf("Some(%s)", v.Inner)
}

func (v Option) isValue() {}

// List is a homogeneous list of values. The element type is carried
// once, in the type descriptor, never per element.
type List struct {
	ElemType cltype.CLType
	Elems    []Value
}

// NewList constructs a list of the given element type.
func NewList(elemType cltype.CLType, elems ...Value) List {
	return List{ElemType: elemType, Elems: elems}
}

// Type returns the value's type descriptor.
func (v List) Type() cltype.CLType { return cltype.NewList(v.ElemType) }

// Bytes returns the canonical byte encoding: a u32 element count
// followed by the concatenated element encodings.
func (v List) Bytes() []byte {
	out := bytecodec.ToBytesU32(uint32(len(v.Elems)))
	for _, e := range v.Elems {
		out = append(out, e.Bytes()...)
	}
	return out
}

// String returns the value in human readable form.
func (v List) String() string {
	parts := make([]string, 0, len(v.Elems))
	for _, e := range v.Elems {
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (v List) isValue() {}

// ByteArray is a fixed-size byte array value. Its size is part of its
// type.
type ByteArray []byte

// Type returns the value's type descriptor.
func (v ByteArray) Type() cltype.CLType { return cltype.NewByteArray(uint32(len(v))) }

// Bytes returns the raw bytes; the length lives in the type, so there
// is no prefix.
func (v ByteArray) Bytes() []byte { return append([]byte{}, v...) }

// String returns the bytes in hex form.
func (v ByteArray) String() string { return hex.EncodeToString(v) }

func (v ByteArray) isValue() {}

// MapPair is a single key-value entry of a Map value.
type MapPair struct {
	Key   Value
	Value Value
}

// Map is an ordered key-value mapping. Iteration order is construction
// order and is preserved by the codecs, which keeps hashes
// deterministic.
type Map struct {
	KeyType   cltype.CLType
	ValueType cltype.CLType
	Pairs     []MapPair
}

// NewMap constructs a map with the given key and value types.
func NewMap(keyType, valueType cltype.CLType, pairs ...MapPair) Map {
	return Map{KeyType: keyType, ValueType: valueType, Pairs: pairs}
}

// Append adds a key-value pair, preserving insertion order.
func (v *Map) Append(key, value Value) {
	v.Pairs = append(v.Pairs, MapPair{Key: key, Value: value})
}

// Get returns the value stored under a key with the given human
// readable form.
func (v Map) Get(key string) (Value, bool) {
	for _, p := range v.Pairs {
		if p.Key.String() == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Type returns the value's type descriptor.
func (v Map) Type() cltype.CLType { return cltype.NewMap(v.KeyType, v.ValueType) }

// Bytes returns the canonical byte encoding: a u32 entry count
// followed by concatenated key and value encodings per entry.
func (v Map) Bytes() []byte {
	out := bytecodec.ToBytesU32(uint32(len(v.Pairs)))
	for _, p := range v.Pairs {
		out = append(out, p.Key.Bytes()...)
		out = append(out, p.Value.Bytes()...)
	}
	return out
}

// String returns the value in human readable form.
func (v Map) String() string {
	parts := make([]string, 0, len(v.Pairs))
	for _, p := range v.Pairs {
		parts = append(parts, fmt.Sprintf("%s:%s", p.Key, p.Value))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (v Map) isValue() {}

// Tuple1 is a single element tuple value.
type Tuple1 struct {
	V0 Value
}

// NewTuple1 constructs a Tuple1 value.
func NewTuple1(v0 Value) Tuple1 { return Tuple1{V0: v0} }

// Type returns the value's type descriptor.
func (v Tuple1) Type() cltype.CLType { return cltype.NewTuple1(v.V0.Type()) }

// Bytes returns the canonical byte encoding.
func (v Tuple1) Bytes() []byte { return v.V0.Bytes() }

// String returns the value in human readable form.
func (v Tuple1) String() string { return fmt.Sprintf("(%s)", v.V0) }

func (v Tuple1) isValue() {}

// Tuple2 is a two element tuple value.
type Tuple2 struct {
	V0 Value
	V1 Value
}

// NewTuple2 constructs a Tuple2 value.
func NewTuple2(v0, v1 Value) Tuple2 { return Tuple2{V0: v0, V1: v1} }

// Type returns the value's type descriptor.
func (v Tuple2) Type() cltype.CLType { return cltype.NewTuple2(v.V0.Type(), v.V1.Type()) }

// Bytes returns the canonical byte encoding.
func (v Tuple2) Bytes() []byte { return append(v.V0.Bytes(), v.V1.Bytes()...) }

// String returns the value in human readable form.
func (v Tuple2) String() string { return fmt.Sprintf("(%s,%s)", v.V0, v.V1) }

func (v Tuple2) isValue() {}

// Tuple3 is a three element tuple value.
type Tuple3 struct {
	V0 Value
	V1 Value
	V2 Value
}

// NewTuple3 constructs a Tuple3 value.
func NewTuple3(v0, v1, v2 Value) Tuple3 { return Tuple3{V0: v0, V1: v1, V2: v2} }

// Type returns the value's type descriptor.
func (v Tuple3) Type() cltype.CLType {
	return cltype.NewTuple3(v.V0.Type(), v.V1.Type(), v.V2.Type())
}

// Bytes returns the canonical byte encoding.
func (v Tuple3) Bytes() []byte {
	out := append(v.V0.Bytes(), v.V1.Bytes()...)
	return append(out, v.V2.Bytes()...)
}

// String returns the value in human readable form.
func (v Tuple3) String() string { return fmt.Sprintf("(%s,%s,%s)", v.V0, v.V1, v.V2) }

func (v Tuple3) isValue() {}

// Result is an ok-or-error value. Both arm types are carried so the
// absent arm's type is never lost.
type Result struct {
	OkType  cltype.CLType
	ErrType cltype.CLType
	IsOk    bool
	Inner   Value
}

// NewOk constructs an ok Result.
func NewOk(inner Value, errType cltype.CLType) Result {
	return Result{OkType: inner.Type(), ErrType: errType, IsOk: true, Inner: inner}
}

// NewErr constructs an error Result.
func NewErr(inner Value, okType cltype.CLType) Result {
	return Result{OkType: okType, ErrType: inner.Type(), IsOk: false, Inner: inner}
}

// Type returns the value's type descriptor.
func (v Result) Type() cltype.CLType { return cltype.NewResult(v.OkType, v.ErrType) }

// Bytes returns the canonical byte encoding: an arm byte (1 for ok, 0
// for error) followed by the inner value's bytes.
func (v Result) Bytes() []byte {
	arm := byte(0)
	if v.IsOk {
		arm = 1
	}
	return append([]byte{arm}, v.Inner.Bytes()...)
}

// String returns the value in human readable form.
func (v Result) String() string {
	if v.IsOk {
		return fmt.Sprintf("Ok(%s)", v.Inner)
	}
	return fmt.Sprintf("Err(%s)", v.Inner)
}

func (v Result) isValue() {}
