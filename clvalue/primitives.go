package clvalue

import (
	"encoding/hex"
	"strconv"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
	"github.com/zephyrprotocol/zephyr-sdk/types"
)

// Bool is a boolean value.
type Bool bool

// Type returns the value's type descriptor.
func (v Bool) Type() cltype.CLType { return cltype.Bool }

// Bytes returns the canonical byte encoding of the value.
func (v Bool) Bytes() []byte { return bytecodec.ToBytesBool(bool(v)) }

// String returns the value in human readable form.
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

func (v Bool) isValue() {}

// I32 is a signed 32-bit value.
type I32 int32

// Type returns the value's type descriptor.
func (v I32) Type() cltype.CLType { return cltype.I32 }

// Bytes returns the canonical byte encoding of the value.
func (v I32) Bytes() []byte { return bytecodec.ToBytesI32(int32(v)) }

// String returns the value in human readable form.
func (v I32) String() string { return strconv.FormatInt(int64(v), 10) }

func (v I32) isValue() {}

// I64 is a signed 64-bit value.
type I64 int64

// Type returns the value's type descriptor.
func (v I64) Type() cltype.CLType { return cltype.I64 }

// Bytes returns the canonical byte encoding of the value.
func (v I64) Bytes() []byte { return bytecodec.ToBytesI64(int64(v)) }

// String returns the value in human readable form.
func (v I64) String() string { return strconv.FormatInt(int64(v), 10) }

func (v I64) isValue() {}

// U8 is an unsigned 8-bit value.
type U8 uint8

// Type returns the value's type descriptor.
func (v U8) Type() cltype.CLType { return cltype.U8 }

// Bytes returns the canonical byte encoding of the value.
func (v U8) Bytes() []byte { return bytecodec.ToBytesU8(uint8(v)) }

// String returns the value in human readable form.
func (v U8) String() string { return strconv.FormatUint(uint64(v), 10) }

func (v U8) isValue() {}

// U32 is an unsigned 32-bit value.
type U32 uint32

// Type returns the value's type descriptor.
func (v U32) Type() cltype.CLType { return cltype.U32 }

// Bytes returns the canonical byte encoding of the value.
func (v U32) Bytes() []byte { return bytecodec.ToBytesU32(uint32(v)) }

// String returns the value in human readable form.
func (v U32) String() string { return strconv.FormatUint(uint64(v), 10) }

func (v U32) isValue() {}

// U64 is an unsigned 64-bit value.
type U64 uint64

// Type returns the value's type descriptor.
func (v U64) Type() cltype.CLType { return cltype.U64 }

// Bytes returns the canonical byte encoding of the value.
func (v U64) Bytes() []byte { return bytecodec.ToBytesU64(uint64(v)) }

// String returns the value in human readable form.
func (v U64) String() string { return strconv.FormatUint(uint64(v), 10) }

func (v U64) isValue() {}

// wideUint is the shared representation of the U128/U256/U512 wide
// unsigned values.
type wideUint struct {
	value *quantity.Quantity
}

func newWideUint(q *quantity.Quantity) wideUint {
	if q == nil {
		q = quantity.NewQuantity()
	}
	return wideUint{value: q.Clone()}
}

// Value returns the underlying quantity.
func (v wideUint) Value() *quantity.Quantity { return v.value }

// Bytes returns the canonical byte encoding of the value.
func (v wideUint) Bytes() []byte { return v.value.ToWireBytes() }

// String returns the value in decimal form.
func (v wideUint) String() string { return v.value.String() }

// U128 is an unsigned 128-bit value.
type U128 struct{ wideUint }

// NewU128 constructs a U128 from a quantity.
func NewU128(q *quantity.Quantity) U128 { return U128{newWideUint(q)} }

// NewU128FromUint64 constructs a U128 from a uint64.
func NewU128FromUint64(n uint64) U128 { return NewU128(quantity.NewFromUint64(n)) }

// Type returns the value's type descriptor.
func (v U128) Type() cltype.CLType { return cltype.U128 }

func (v U128) isValue() {}

// U256 is an unsigned 256-bit value.
type U256 struct{ wideUint }

// NewU256 constructs a U256 from a quantity.
func NewU256(q *quantity.Quantity) U256 { return U256{newWideUint(q)} }

// NewU256FromUint64 constructs a U256 from a uint64.
func NewU256FromUint64(n uint64) U256 { return NewU256(quantity.NewFromUint64(n)) }

// Type returns the value's type descriptor.
func (v U256) Type() cltype.CLType { return cltype.U256 }

func (v U256) isValue() {}

// U512 is an unsigned 512-bit value, the chain's token amount type.
type U512 struct{ wideUint }

// NewU512 constructs a U512 from a quantity.
func NewU512(q *quantity.Quantity) U512 { return U512{newWideUint(q)} }

// NewU512FromUint64 constructs a U512 from a uint64.
func NewU512FromUint64(n uint64) U512 { return NewU512(quantity.NewFromUint64(n)) }

// Type returns the value's type descriptor.
func (v U512) Type() cltype.CLType { return cltype.U512 }

func (v U512) isValue() {}

// Unit is the empty value.
type Unit struct{}

// Type returns the value's type descriptor.
func (v Unit) Type() cltype.CLType { return cltype.Unit }

// Bytes returns the canonical byte encoding of the value, which is
// empty.
func (v Unit) Bytes() []byte { return []byte{} }

// String returns the value in human readable form.
func (v Unit) String() string { return "()" }

func (v Unit) isValue() {}

// String is a string value.
type String string

// Type returns the value's type descriptor.
func (v String) Type() cltype.CLType { return cltype.String }

// Bytes returns the canonical byte encoding of the value.
func (v String) Bytes() []byte { return bytecodec.ToBytesString(string(v)) }

// String returns the value itself.
func (v String) String() string { return string(v) }

func (v String) isValue() {}

// Key is a global-state key value.
type Key struct {
	Key types.Key
}

// NewKey constructs a Key value.
func NewKey(k types.Key) Key { return Key{Key: k} }

// Type returns the value's type descriptor.
func (v Key) Type() cltype.CLType { return cltype.Key }

// Bytes returns the canonical byte encoding of the value.
func (v Key) Bytes() []byte { return v.Key.Bytes() }

// String returns the key's prefixed string form.
func (v Key) String() string { return v.Key.String() }

func (v Key) isValue() {}

// URef is an unforgeable-reference value.
type URef struct {
	URef types.URef
}

// NewURef constructs a URef value.
func NewURef(u types.URef) URef { return URef{URef: u} }

// Type returns the value's type descriptor.
func (v URef) Type() cltype.CLType { return cltype.URef }

// Bytes returns the canonical byte encoding of the value.
func (v URef) Bytes() []byte { return v.URef.Bytes() }

// String returns the uref's string form.
func (v URef) String() string { return v.URef.String() }

func (v URef) isValue() {}

// PublicKey is a public-key value.
type PublicKey struct {
	PublicKey signature.PublicKey
}

// NewPublicKey constructs a PublicKey value.
func NewPublicKey(pk signature.PublicKey) PublicKey { return PublicKey{PublicKey: pk} }

// Type returns the value's type descriptor.
func (v PublicKey) Type() cltype.CLType { return cltype.PublicKey }

// Bytes returns the canonical algorithm-tagged byte encoding.
func (v PublicKey) Bytes() []byte { return v.PublicKey.Bytes() }

// String returns the key's tagged hex form.
func (v PublicKey) String() string { return v.PublicKey.String() }

func (v PublicKey) isValue() {}

// Any is an opaque value with no further structure. Decoding an Any
// consumes the remainder of the buffer, so it can only appear last in
// any composite encoding.
type Any []byte

// Type returns the value's type descriptor.
func (v Any) Type() cltype.CLType { return cltype.Any }

// Bytes returns the raw bytes.
func (v Any) Bytes() []byte { return append([]byte{}, v...) }

// String returns the bytes in hex form.
func (v Any) String() string { return hex.EncodeToString(v) }

func (v Any) isValue() {}
