// Package calltable implements the indexed-field binary container that
// backs every structured object in the unified transaction payload
// format.
//
// The serialized layout is:
//
//	u32 field count
//	u16 index ++ u32 offset, repeated per field
//	u32 total payload size
//	concatenated field payload bytes
//
// All integers are little-endian. Offsets are byte offsets into the
// concatenated payload, not into the whole buffer. Fields must be added
// in strictly sequential index order starting at zero; the layout has
// no way to represent anything else, so the writer refuses it up front
// instead of producing bytes that cannot round-trip.
package calltable

import (
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/errors"
)

// moduleName is the module name used for error definitions.
const moduleName = "calltable"

var (
	// ErrInvalidFieldIndex is the error returned when a field is added
	// out of sequential index order.
	ErrInvalidFieldIndex = errors.New(moduleName, 1, "calltable: field index added out of order")

	// ErrMalformedTable is the error returned when a serialized table's
	// header and payload disagree.
	ErrMalformedTable = errors.New(moduleName, 2, "calltable: malformed serialized table")
)

// Field is a single indexed field of a serialization.
type Field struct {
	// Index is the field's index within the table.
	Index uint16

	// Offset is the byte offset of the field's value within the
	// concatenated payload.
	Offset uint32

	// Value is the field's raw payload bytes.
	Value []byte
}

// Serialization is an ordered collection of indexed fields.
//
// The zero value is ready for use.
type Serialization struct {
	fields      []Field
	payloadSize uint32
}

// AddField appends a field with the given index and value bytes.
//
// The index must equal the current field count: fields are added
// 0, 1, 2, ... with no gaps and no reordering.
func (s *Serialization) AddField(index uint16, value []byte) error {
	if int(index) != len(s.fields) {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidFieldIndex, index, len(s.fields))
	}
	s.fields = append(s.fields, Field{
		Index:  index,
		Offset: s.payloadSize,
		Value:  append([]byte{}, value...),
	})
	s.payloadSize += uint32(len(value))
	return nil
}

// MustAddField is AddField that panics on an ordering violation, for
// use by serializers whose field order is statically correct.
func (s *Serialization) MustAddField(index uint16, value []byte) *Serialization {
	if err := s.AddField(index, value); err != nil {
		panic(err)
	}
	return s
}

// GetField returns the raw value bytes for a field index.
func (s *Serialization) GetField(index uint16) ([]byte, bool) {
	if int(index) >= len(s.fields) {
		return nil, false
	}
	return s.fields[index].Value, true
}

// FieldCount returns the number of fields in the table.
func (s *Serialization) FieldCount() int {
	return len(s.fields)
}

// ToBytes serializes the table.
func (s *Serialization) ToBytes() []byte {
	out := make([]byte, 0, 4+len(s.fields)*6+4+int(s.payloadSize))
	out = append(out, bytecodec.ToBytesU32(uint32(len(s.fields)))...)
	for _, f := range s.fields {
		out = append(out, bytecodec.ToBytesU16(f.Index)...)
		out = append(out, bytecodec.ToBytesU32(f.Offset)...)
	}
	out = append(out, bytecodec.ToBytesU32(s.payloadSize)...)
	for _, f := range s.fields {
		out = append(out, f.Value...)
	}
	return out
}

// FromBytes deserializes a table, returning the remainder of the
// buffer past the table's payload.
//
// Field boundaries are reconstructed by pairing each field's recorded
// offset with the next field's offset, or the total payload size for
// the last field.
func FromBytes(data []byte) (*Serialization, []byte, error) {
	count, rest, err := bytecodec.FromBytesU32(data)
	if err != nil {
		return nil, nil, err
	}

	// Each header entry takes 6 bytes, so the remaining buffer bounds
	// the plausible count. Checking before allocating keeps a hostile
	// 4-byte count from driving a huge allocation.
	if count > uint32(len(rest))/6 {
		return nil, nil, fmt.Errorf("%w: field count %d exceeds buffer", ErrMalformedTable, count)
	}

	type header struct {
		index  uint16
		offset uint32
	}
	headers := make([]header, 0, count)
	for i := uint32(0); i < count; i++ {
		var h header
		if h.index, rest, err = bytecodec.FromBytesU16(rest); err != nil {
			return nil, nil, err
		}
		if h.offset, rest, err = bytecodec.FromBytesU32(rest); err != nil {
			return nil, nil, err
		}
		headers = append(headers, h)
	}

	payloadSize, rest, err := bytecodec.FromBytesU32(rest)
	if err != nil {
		return nil, nil, err
	}
	payload, rest, err := bytecodec.TakeBytes(rest, int(payloadSize))
	if err != nil {
		return nil, nil, err
	}

	var s Serialization
	for i, h := range headers {
		if int(h.index) != i {
			return nil, nil, fmt.Errorf("%w: field %d has index %d", ErrMalformedTable, i, h.index)
		}
		end := payloadSize
		if i+1 < len(headers) {
			end = headers[i+1].offset
		}
		if h.offset > end || end > payloadSize {
			return nil, nil, fmt.Errorf("%w: field %d offset out of range", ErrMalformedTable, i)
		}
		if err = s.AddField(h.index, payload[h.offset:end]); err != nil {
			return nil, nil, err
		}
	}
	if s.payloadSize != payloadSize {
		return nil, nil, fmt.Errorf("%w: payload size mismatch", ErrMalformedTable)
	}

	return &s, rest, nil
}
