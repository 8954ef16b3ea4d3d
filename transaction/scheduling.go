package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// Scheduling variant tags.
const (
	schedulingTagStandard        uint8 = 0
	schedulingTagFutureEra       uint8 = 1
	schedulingTagFutureTimestamp uint8 = 2
)

// Scheduling describes when a transaction becomes eligible for
// execution.
type Scheduling interface {
	json.Marshaler

	// Bytes returns the legacy byte encoding.
	Bytes() []byte

	// CalltableBytes returns the unified payload era encoding.
	CalltableBytes() []byte

	isScheduling()
}

// Standard schedules a transaction for immediate execution.
type Standard struct{}

// Bytes returns the legacy byte encoding.
func (s Standard) Bytes() []byte {
	return []byte{schedulingTagStandard}
}

// CalltableBytes returns the unified payload era encoding.
func (s Standard) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{schedulingTagStandard})
	return t.ToBytes()
}

// MarshalJSON encodes the variant as its bare name.
func (s Standard) MarshalJSON() ([]byte, error) {
	return json.Marshal("Standard")
}

func (s Standard) isScheduling() {}

// FutureEra defers execution until the given era.
type FutureEra struct {
	Era uint64
}

// Bytes returns the legacy byte encoding.
func (s FutureEra) Bytes() []byte {
	return append([]byte{schedulingTagFutureEra}, bytecodec.ToBytesU64(s.Era)...)
}

// CalltableBytes returns the unified payload era encoding.
func (s FutureEra) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{schedulingTagFutureEra}).
		MustAddField(1, bytecodec.ToBytesU64(s.Era))
	return t.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (s FutureEra) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]uint64{"FutureEra": s.Era})
}

func (s FutureEra) isScheduling() {}

// FutureTimestamp defers execution until the given timestamp.
type FutureTimestamp struct {
	Timestamp Timestamp
}

// Bytes returns the legacy byte encoding.
func (s FutureTimestamp) Bytes() []byte {
	return append([]byte{schedulingTagFutureTimestamp}, s.Timestamp.Bytes()...)
}

// CalltableBytes returns the unified payload era encoding.
func (s FutureTimestamp) CalltableBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, []byte{schedulingTagFutureTimestamp}).
		MustAddField(1, s.Timestamp.Bytes())
	return t.ToBytes()
}

// MarshalJSON encodes the variant as a single-key object.
func (s FutureTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Timestamp{"FutureTimestamp": s.Timestamp})
}

func (s FutureTimestamp) isScheduling() {}

// SchedulingFromBytes decodes a legacy encoded scheduling from the
// front of data and returns the remainder.
func SchedulingFromBytes(data []byte) (Scheduling, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	switch tag {
	case schedulingTagStandard:
		return Standard{}, rest, nil
	case schedulingTagFutureEra:
		var s FutureEra
		if s.Era, rest, err = bytecodec.FromBytesU64(rest); err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	case schedulingTagFutureTimestamp:
		var s FutureTimestamp
		if s.Timestamp, rest, err = TimestampFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: scheduling tag %d", ErrUnknownVariantTag, tag)
	}
}

// SchedulingFromJSON decodes a scheduling from its JSON form: the bare
// string "Standard" or a single-key object for the deferred variants.
func SchedulingFromJSON(data []byte) (Scheduling, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name != "Standard" {
			return nil, fmt.Errorf("%w: scheduling %q", ErrUnknownVariantTag, name)
		}
		return Standard{}, nil
	}

	key, raw, err := singleKey(data)
	if err != nil {
		return nil, err
	}
	switch key {
	case "FutureEra":
		var s FutureEra
		if err := json.Unmarshal(raw, &s.Era); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return s, nil
	case "FutureTimestamp":
		var s FutureTimestamp
		if err := json.Unmarshal(raw, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: scheduling %q", ErrUnknownVariantTag, key)
	}
}

// schedulingFromCalltable decodes a unified payload era scheduling from
// a serialized calltable.
func schedulingFromCalltable(data []byte) (Scheduling, error) {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after scheduling", ErrMalformedTransaction)
	}
	tagField, ok := t.GetField(0)
	if !ok || len(tagField) != 1 {
		return nil, fmt.Errorf("%w: scheduling missing tag field", ErrMalformedTransaction)
	}

	switch tagField[0] {
	case schedulingTagStandard:
		return Standard{}, nil
	case schedulingTagFutureEra:
		var s FutureEra
		if err := readU64Field(t, 1, &s.Era); err != nil {
			return nil, err
		}
		return s, nil
	case schedulingTagFutureTimestamp:
		var ms uint64
		if err := readU64Field(t, 1, &ms); err != nil {
			return nil, err
		}
		return FutureTimestamp{Timestamp: Timestamp(ms)}, nil
	default:
		return nil, fmt.Errorf("%w: scheduling tag %d", ErrUnknownVariantTag, tagField[0])
	}
}
