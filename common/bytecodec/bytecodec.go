// Package bytecodec implements the primitive little-endian codecs used
// by every canonical byte format in this SDK.
//
// All multi-byte integers are little-endian. Strings are encoded as a
// u32 byte-length prefix followed by the raw UTF-8 bytes. Decoders
// consume exactly the bytes belonging to the value and return the
// unread remainder, so composite decoders can be chained without any
// out-of-band length bookkeeping.
package bytecodec

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrBufferTooSmall is the error returned when a byte buffer is
	// shorter than the value being decoded requires.
	ErrBufferTooSmall = errors.New("bytecodec: buffer size is too small")

	// ErrMalformedBool is the error returned when a boolean byte is
	// neither 0 nor 1.
	ErrMalformedBool = errors.New("bytecodec: malformed boolean byte")
)

// ToBytesU8 encodes a uint8.
func ToBytesU8(v uint8) []byte {
	return []byte{v}
}

// ToBytesU16 encodes a uint16 as 2 little-endian bytes.
func ToBytesU16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// ToBytesU32 encodes a uint32 as 4 little-endian bytes.
func ToBytesU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// ToBytesU64 encodes a uint64 as 8 little-endian bytes.
func ToBytesU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// ToBytesI32 encodes an int32 as 4 little-endian bytes (two's complement).
func ToBytesI32(v int32) []byte {
	return ToBytesU32(uint32(v))
}

// ToBytesI64 encodes an int64 as 8 little-endian bytes (two's complement).
func ToBytesI64(v int64) []byte {
	return ToBytesU64(uint64(v))
}

// ToBytesBool encodes a bool as a single 0 or 1 byte.
func ToBytesBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// ToBytesString encodes a string as a u32 byte-length prefix followed
// by the raw UTF-8 bytes.
func ToBytesString(s string) []byte {
	b := make([]byte, 0, 4+len(s))
	b = append(b, ToBytesU32(uint32(len(s)))...)
	return append(b, s...)
}

// ToBytesBytes encodes a byte slice as a u32 length prefix followed by
// the bytes themselves.
func ToBytesBytes(v []byte) []byte {
	b := make([]byte, 0, 4+len(v))
	b = append(b, ToBytesU32(uint32(len(v)))...)
	return append(b, v...)
}

// FromBytesU8 decodes a uint8 and returns the remainder.
func FromBytesU8(data []byte) (uint8, []byte, error) {
	if len(data) < 1 {
		return 0, nil, ErrBufferTooSmall
	}
	return data[0], data[1:], nil
}

// FromBytesU16 decodes a little-endian uint16 and returns the remainder.
func FromBytesU16(data []byte) (uint16, []byte, error) {
	if len(data) < 2 {
		return 0, nil, ErrBufferTooSmall
	}
	return binary.LittleEndian.Uint16(data), data[2:], nil
}

// FromBytesU32 decodes a little-endian uint32 and returns the remainder.
func FromBytesU32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, ErrBufferTooSmall
	}
	return binary.LittleEndian.Uint32(data), data[4:], nil
}

// FromBytesU64 decodes a little-endian uint64 and returns the remainder.
//
// The full 64-bit range is preserved; callers that need to interoperate
// with environments lacking 64-bit integers should go through
// common/quantity instead of narrowing the result.
func FromBytesU64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, ErrBufferTooSmall
	}
	return binary.LittleEndian.Uint64(data), data[8:], nil
}

// FromBytesI32 decodes a little-endian int32 and returns the remainder.
func FromBytesI32(data []byte) (int32, []byte, error) {
	v, rest, err := FromBytesU32(data)
	return int32(v), rest, err
}

// FromBytesI64 decodes a little-endian int64 and returns the remainder.
func FromBytesI64(data []byte) (int64, []byte, error) {
	v, rest, err := FromBytesU64(data)
	return int64(v), rest, err
}

// FromBytesBool decodes a single boolean byte and returns the remainder.
func FromBytesBool(data []byte) (bool, []byte, error) {
	if len(data) < 1 {
		return false, nil, ErrBufferTooSmall
	}
	switch data[0] {
	case 0:
		return false, data[1:], nil
	case 1:
		return true, data[1:], nil
	default:
		return false, nil, ErrMalformedBool
	}
}

// FromBytesString decodes a u32 length-prefixed UTF-8 string and
// returns the remainder.
func FromBytesString(data []byte) (string, []byte, error) {
	b, rest, err := FromBytesBytes(data)
	if err != nil {
		return "", nil, err
	}
	return string(b), rest, nil
}

// FromBytesBytes decodes a u32 length-prefixed byte slice and returns
// the remainder.
func FromBytesBytes(data []byte) ([]byte, []byte, error) {
	n, rest, err := FromBytesU32(data)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < uint64(n) {
		return nil, nil, ErrBufferTooSmall
	}
	out := make([]byte, n)
	copy(out, rest[:n])
	return out, rest[n:], nil
}

// TakeBytes slices off exactly n bytes and returns them with the
// remainder.
func TakeBytes(data []byte, n int) ([]byte, []byte, error) {
	if n < 0 || len(data) < n {
		return nil, nil, ErrBufferTooSmall
	}
	out := make([]byte, n)
	copy(out, data[:n])
	return out, data[n:], nil
}
