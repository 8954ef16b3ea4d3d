package cltype

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// simpleByTag is the primitive lookup table used by the byte parser.
var simpleByTag = func() map[Tag]Simple {
	m := make(map[Tag]Simple, len(simpleByName))
	for _, s := range simpleByName {
		m[s.tag] = s
	}
	return m
}()

// FromBytes parses a type descriptor from the front of data and
// returns the remainder.
//
// This is the single byte-level dispatch point for the whole variant
// set.
func FromBytes(data []byte) (CLType, []byte, error) {
	tagByte, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	tag := Tag(tagByte)

	if s, ok := simpleByTag[tag]; ok {
		return s, rest, nil
	}

	switch tag {
	case TagOption:
		inner, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewOption(inner), rest, nil
	case TagList:
		inner, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewList(inner), rest, nil
	case TagByteArray:
		size, rest, err := bytecodec.FromBytesU32(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewByteArray(size), rest, nil
	case TagResult:
		okType, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		errType, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewResult(okType, errType), rest, nil
	case TagMap:
		keyType, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		valueType, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewMap(keyType, valueType), rest, nil
	case TagTuple1:
		t0, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewTuple1(t0), rest, nil
	case TagTuple2:
		t0, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		t1, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewTuple2(t0, t1), rest, nil
	case TagTuple3:
		t0, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		t1, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		t2, rest, err := FromBytes(rest)
		if err != nil {
			return nil, nil, err
		}
		return NewTuple3(t0, t1, t2), rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownTypeTag, tagByte)
	}
}

// FromJSON parses a type descriptor from its JSON form: a bare string
// for primitives, a single-key object for composites.
//
// This is the single JSON-level dispatch point for the whole variant
// set.
func FromJSON(data []byte) (CLType, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		s, ok := simpleByName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTypeName, name)
		}
		return s, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComplexTypeFormat, err)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one key, got %d", ErrComplexTypeFormat, len(obj))
	}

	var key string
	var raw json.RawMessage
	for k, v := range obj {
		key, raw = k, v
	}

	switch key {
	case "Option":
		inner, err := FromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewOption(inner), nil
	case "List":
		inner, err := FromJSON(raw)
		if err != nil {
			return nil, err
		}
		return NewList(inner), nil
	case "ByteArray":
		var size uint32
		if err := json.Unmarshal(raw, &size); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrComplexTypeFormat, err)
		}
		return NewByteArray(size), nil
	case "Result":
		var pair struct {
			Ok  json.RawMessage `json:"ok"`
			Err json.RawMessage `json:"err"`
		}
		if err := json.Unmarshal(raw, &pair); err != nil || pair.Ok == nil || pair.Err == nil {
			return nil, fmt.Errorf("%w: Result needs ok and err", ErrComplexTypeFormat)
		}
		okType, err := FromJSON(pair.Ok)
		if err != nil {
			return nil, err
		}
		errType, err := FromJSON(pair.Err)
		if err != nil {
			return nil, err
		}
		return NewResult(okType, errType), nil
	case "Map":
		var pair struct {
			Key   json.RawMessage `json:"key"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &pair); err != nil || pair.Key == nil || pair.Value == nil {
			return nil, fmt.Errorf("%w: Map needs key and value", ErrComplexTypeFormat)
		}
		keyType, err := FromJSON(pair.Key)
		if err != nil {
			return nil, err
		}
		valueType, err := FromJSON(pair.Value)
		if err != nil {
			return nil, err
		}
		return NewMap(keyType, valueType), nil
	case "Tuple1":
		elems, err := tupleElems(raw, 1)
		if err != nil {
			return nil, err
		}
		return NewTuple1(elems[0]), nil
	case "Tuple2":
		elems, err := tupleElems(raw, 2)
		if err != nil {
			return nil, err
		}
		return NewTuple2(elems[0], elems[1]), nil
	case "Tuple3":
		elems, err := tupleElems(raw, 3)
		if err != nil {
			return nil, err
		}
		return NewTuple3(elems[0], elems[1], elems[2]), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrJSONConstructorNotFound, key)
	}
}

func tupleElems(raw json.RawMessage, n int) ([]CLType, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComplexTypeFormat, err)
	}
	if len(items) != n {
		return nil, fmt.Errorf("%w: expected %d tuple elements, got %d", ErrComplexTypeFormat, n, len(items))
	}
	out := make([]CLType, 0, n)
	for _, item := range items {
		t, err := FromJSON(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
