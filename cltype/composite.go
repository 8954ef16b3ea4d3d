package cltype

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// Option is the type of optional values of an inner type.
type Option struct {
	Inner CLType
}

// NewOption constructs an Option type descriptor.
func NewOption(inner CLType) Option { return Option{Inner: inner} }

// Tag returns the variant's tag byte.
func (t Option) Tag() Tag { return TagOption }

// Name returns the variant's wire name.
func (t Option) Name() string { return "Option" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t Option) ToBytes() []byte {
	return append([]byte{byte(TagOption)}, t.Inner.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object.
func (t Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]CLType{"Option": t.Inner})
}

// String returns a human readable representation of the type.
func (t Option) String() string { return fmt.Sprintf("Option<%s>", t.Inner) }

func (t Option) isCLType() {}

// List is the type of homogeneous lists of an inner type.
type List struct {
	Inner CLType
}

// NewList constructs a List type descriptor.
func NewList(inner CLType) List { return List{Inner: inner} }

// Tag returns the variant's tag byte.
func (t List) Tag() Tag { return TagList }

// Name returns the variant's wire name.
func (t List) Name() string { return "List" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t List) ToBytes() []byte {
	return append([]byte{byte(TagList)}, t.Inner.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object.
func (t List) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]CLType{"List": t.Inner})
}

// String returns a human readable representation of the type.
func (t List) String() string { return fmt.Sprintf("List<%s>", t.Inner) }

func (t List) isCLType() {}

// ByteArray is the type of fixed-size byte arrays.
type ByteArray struct {
	Size uint32
}

// NewByteArray constructs a ByteArray type descriptor.
func NewByteArray(size uint32) ByteArray { return ByteArray{Size: size} }

// Tag returns the variant's tag byte.
func (t ByteArray) Tag() Tag { return TagByteArray }

// Name returns the variant's wire name.
func (t ByteArray) Name() string { return "ByteArray" }

// ToBytes returns the canonical byte encoding of the descriptor.
//
// The size is carried as a plain u32, not wrapped in further type
// info.
func (t ByteArray) ToBytes() []byte {
	return append([]byte{byte(TagByteArray)}, bytecodec.ToBytesU32(t.Size)...)
}

// MarshalJSON encodes the type as a single-key object.
func (t ByteArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]uint32{"ByteArray": t.Size})
}

// String returns a human readable representation of the type.
func (t ByteArray) String() string { return fmt.Sprintf("ByteArray[%d]", t.Size) }

func (t ByteArray) isCLType() {}

// Result is the type of ok-or-error values.
type Result struct {
	Ok  CLType
	Err CLType
}

// NewResult constructs a Result type descriptor.
func NewResult(ok, errType CLType) Result { return Result{Ok: ok, Err: errType} }

// Tag returns the variant's tag byte.
func (t Result) Tag() Tag { return TagResult }

// Name returns the variant's wire name.
func (t Result) Name() string { return "Result" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t Result) ToBytes() []byte {
	out := append([]byte{byte(TagResult)}, t.Ok.ToBytes()...)
	return append(out, t.Err.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object.
func (t Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]CLType{
		"Result": {"ok": t.Ok, "err": t.Err},
	})
}

// String returns a human readable representation of the type.
func (t Result) String() string { return fmt.Sprintf("Result<%s,%s>", t.Ok, t.Err) }

func (t Result) isCLType() {}

// Map is the type of key-value mappings.
type Map struct {
	Key   CLType
	Value CLType
}

// NewMap constructs a Map type descriptor.
func NewMap(key, value CLType) Map { return Map{Key: key, Value: value} }

// Tag returns the variant's tag byte.
func (t Map) Tag() Tag { return TagMap }

// Name returns the variant's wire name.
func (t Map) Name() string { return "Map" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t Map) ToBytes() []byte {
	out := append([]byte{byte(TagMap)}, t.Key.ToBytes()...)
	return append(out, t.Value.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object.
func (t Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]CLType{
		"Map": {"key": t.Key, "value": t.Value},
	})
}

// String returns a human readable representation of the type.
func (t Map) String() string { return fmt.Sprintf("Map<%s,%s>", t.Key, t.Value) }

func (t Map) isCLType() {}

// Tuple1 is the type of single element tuples.
type Tuple1 struct {
	T0 CLType
}

// NewTuple1 constructs a Tuple1 type descriptor.
func NewTuple1(t0 CLType) Tuple1 { return Tuple1{T0: t0} }

// Tag returns the variant's tag byte.
func (t Tuple1) Tag() Tag { return TagTuple1 }

// Name returns the variant's wire name.
func (t Tuple1) Name() string { return "Tuple1" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t Tuple1) ToBytes() []byte {
	return append([]byte{byte(TagTuple1)}, t.T0.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object over an array of
// the element types.
func (t Tuple1) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CLType{"Tuple1": {t.T0}})
}

// String returns a human readable representation of the type.
func (t Tuple1) String() string { return fmt.Sprintf("Tuple1<%s>", t.T0) }

func (t Tuple1) isCLType() {}

// Tuple2 is the type of two element tuples.
type Tuple2 struct {
	T0 CLType
	T1 CLType
}

// NewTuple2 constructs a Tuple2 type descriptor.
func NewTuple2(t0, t1 CLType) Tuple2 { return Tuple2{T0: t0, T1: t1} }

// Tag returns the variant's tag byte.
func (t Tuple2) Tag() Tag { return TagTuple2 }

// Name returns the variant's wire name.
func (t Tuple2) Name() string { return "Tuple2" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t Tuple2) ToBytes() []byte {
	out := append([]byte{byte(TagTuple2)}, t.T0.ToBytes()...)
	return append(out, t.T1.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object over an array of
// the element types.
func (t Tuple2) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CLType{"Tuple2": {t.T0, t.T1}})
}

// String returns a human readable representation of the type.
func (t Tuple2) String() string { return fmt.Sprintf("Tuple2<%s,%s>", t.T0, t.T1) }

func (t Tuple2) isCLType() {}

// Tuple3 is the type of three element tuples.
type Tuple3 struct {
	T0 CLType
	T1 CLType
	T2 CLType
}

// NewTuple3 constructs a Tuple3 type descriptor.
func NewTuple3(t0, t1, t2 CLType) Tuple3 { return Tuple3{T0: t0, T1: t1, T2: t2} }

// Tag returns the variant's tag byte.
func (t Tuple3) Tag() Tag { return TagTuple3 }

// Name returns the variant's wire name.
func (t Tuple3) Name() string { return "Tuple3" }

// ToBytes returns the canonical byte encoding of the descriptor.
func (t Tuple3) ToBytes() []byte {
	out := append([]byte{byte(TagTuple3)}, t.T0.ToBytes()...)
	out = append(out, t.T1.ToBytes()...)
	return append(out, t.T2.ToBytes()...)
}

// MarshalJSON encodes the type as a single-key object over an array of
// the element types.
func (t Tuple3) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CLType{"Tuple3": {t.T0, t.T1, t.T2}})
}

// String returns a human readable representation of the type.
func (t Tuple3) String() string { return fmt.Sprintf("Tuple3<%s,%s,%s>", t.T0, t.T1, t.T2) }

func (t Tuple3) isCLType() {}
