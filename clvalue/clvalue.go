// Package clvalue implements the runtime values of the chain's value
// type system.
//
// A Value pairs a runtime value with its cltype descriptor. Canonical
// byte encodings never embed type tags; a value is made self-describing
// only by the "with type" wrapper, which is the form named arguments
// use on the wire.
package clvalue

import (
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/errors"
)

// moduleName is the module name used for error definitions.
const moduleName = "clvalue"

var (
	// ErrUnsupportedType is the error returned when a type descriptor
	// has no value codec.
	ErrUnsupportedType = errors.New(moduleName, 1, "clvalue: unsupported type")

	// ErrTrailingBytes is the error returned when a buffer holds more
	// bytes than the value being decoded consumes.
	ErrTrailingBytes = errors.New(moduleName, 2, "clvalue: trailing bytes after value")

	// ErrMalformedValue is the error returned when value bytes are not
	// a valid encoding for their type.
	ErrMalformedValue = errors.New(moduleName, 3, "clvalue: malformed value encoding")
)

// Value is a runtime value tagged with its CLType.
//
// The variant set is closed: only types in this package implement it.
type Value interface {
	fmt.Stringer

	// Type returns the value's type descriptor.
	Type() cltype.CLType

	// Bytes returns the canonical byte encoding of the value, with no
	// embedded type information.
	Bytes() []byte

	isValue()
}

// ToBytesWithType returns the self-describing wire form of a value:
// the u32 length-prefixed value bytes followed by the type's own
// bytes. This is the form named arguments embed.
func ToBytesWithType(v Value) []byte {
	out := bytecodec.ToBytesBytes(v.Bytes())
	return append(out, v.Type().ToBytes()...)
}

// FromBytesWithType parses a self-describing value from the front of
// data and returns the remainder.
func FromBytesWithType(data []byte) (Value, []byte, error) {
	valueBytes, rest, err := bytecodec.FromBytesBytes(data)
	if err != nil {
		return nil, nil, err
	}
	typ, rest, err := cltype.FromBytes(rest)
	if err != nil {
		return nil, nil, err
	}
	v, err := FromBytesByTypeExact(typ, valueBytes)
	if err != nil {
		return nil, nil, err
	}
	return v, rest, nil
}

// FromBytesByTypeExact parses a value of the given type that must
// consume the entire buffer.
func FromBytesByTypeExact(t cltype.CLType, data []byte) (Value, error) {
	v, rest, err := FromBytesByType(t, data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d left", ErrTrailingBytes, len(rest))
	}
	return v, nil
}
