package clvalue

import (
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
	"github.com/zephyrprotocol/zephyr-sdk/types"
)

// FromBytesByType parses a value of the given type from the front of
// data and returns the remainder.
//
// This is the single byte-level dispatch point for the whole variant
// set. Decoding consumes exactly the bytes belonging to the type;
// there is no backtracking, and a short buffer is a hard error.
func FromBytesByType(t cltype.CLType, data []byte) (Value, []byte, error) {
	switch tt := t.(type) {
	case cltype.Simple:
		return simpleFromBytes(tt, data)
	case cltype.Option:
		present, rest, err := bytecodec.FromBytesBool(data)
		if err != nil {
			return nil, nil, err
		}
		if !present {
			return NewNone(tt.Inner), rest, nil
		}
		inner, rest, err := FromBytesByType(tt.Inner, rest)
		if err != nil {
			return nil, nil, err
		}
		return NewSome(inner), rest, nil
	case cltype.List:
		count, rest, err := bytecodec.FromBytesU32(data)
		if err != nil {
			return nil, nil, err
		}
		list := NewList(tt.Inner)
		for i := uint32(0); i < count; i++ {
			var elem Value
			if elem, rest, err = FromBytesByType(tt.Inner, rest); err != nil {
				return nil, nil, err
			}
			list.Elems = append(list.Elems, elem)
		}
		return list, rest, nil
	case cltype.ByteArray:
		raw, rest, err := bytecodec.TakeBytes(data, int(tt.Size))
		if err != nil {
			return nil, nil, err
		}
		return ByteArray(raw), rest, nil
	case cltype.Result:
		isOk, rest, err := bytecodec.FromBytesBool(data)
		if err != nil {
			return nil, nil, err
		}
		if isOk {
			inner, rest, err := FromBytesByType(tt.Ok, rest)
			if err != nil {
				return nil, nil, err
			}
			return NewOk(inner, tt.Err), rest, nil
		}
		inner, rest, err := FromBytesByType(tt.Err, rest)
		if err != nil {
			return nil, nil, err
		}
		return NewErr(inner, tt.Ok), rest, nil
	case cltype.Map:
		count, rest, err := bytecodec.FromBytesU32(data)
		if err != nil {
			return nil, nil, err
		}
		m := NewMap(tt.Key, tt.Value)
		for i := uint32(0); i < count; i++ {
			var key, value Value
			if key, rest, err = FromBytesByType(tt.Key, rest); err != nil {
				return nil, nil, err
			}
			if value, rest, err = FromBytesByType(tt.Value, rest); err != nil {
				return nil, nil, err
			}
			m.Append(key, value)
		}
		return m, rest, nil
	case cltype.Tuple1:
		v0, rest, err := FromBytesByType(tt.T0, data)
		if err != nil {
			return nil, nil, err
		}
		return NewTuple1(v0), rest, nil
	case cltype.Tuple2:
		v0, rest, err := FromBytesByType(tt.T0, data)
		if err != nil {
			return nil, nil, err
		}
		v1, rest, err := FromBytesByType(tt.T1, rest)
		if err != nil {
			return nil, nil, err
		}
		return NewTuple2(v0, v1), rest, nil
	case cltype.Tuple3:
		v0, rest, err := FromBytesByType(tt.T0, data)
		if err != nil {
			return nil, nil, err
		}
		v1, rest, err := FromBytesByType(tt.T1, rest)
		if err != nil {
			return nil, nil, err
		}
		v2, rest, err := FromBytesByType(tt.T2, rest)
		if err != nil {
			return nil, nil, err
		}
		return NewTuple3(v0, v1, v2), rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func simpleFromBytes(t cltype.Simple, data []byte) (Value, []byte, error) {
	switch t.Tag() {
	case cltype.TagBool:
		v, rest, err := bytecodec.FromBytesBool(data)
		return Bool(v), rest, err
	case cltype.TagI32:
		v, rest, err := bytecodec.FromBytesI32(data)
		return I32(v), rest, err
	case cltype.TagI64:
		v, rest, err := bytecodec.FromBytesI64(data)
		return I64(v), rest, err
	case cltype.TagU8:
		v, rest, err := bytecodec.FromBytesU8(data)
		return U8(v), rest, err
	case cltype.TagU32:
		v, rest, err := bytecodec.FromBytesU32(data)
		return U32(v), rest, err
	case cltype.TagU64:
		v, rest, err := bytecodec.FromBytesU64(data)
		return U64(v), rest, err
	case cltype.TagU128:
		return wideFromBytes(data, 128)
	case cltype.TagU256:
		return wideFromBytes(data, 256)
	case cltype.TagU512:
		return wideFromBytes(data, 512)
	case cltype.TagUnit:
		return Unit{}, data, nil
	case cltype.TagString:
		v, rest, err := bytecodec.FromBytesString(data)
		return String(v), rest, err
	case cltype.TagKey:
		k, rest, err := types.KeyFromBytes(data)
		if err != nil {
			return nil, nil, err
		}
		return NewKey(k), rest, nil
	case cltype.TagURef:
		u, rest, err := types.URefFromBytes(data)
		if err != nil {
			return nil, nil, err
		}
		return NewURef(u), rest, nil
	case cltype.TagPublicKey:
		pk, rest, err := signature.FromBytes(data)
		if err != nil {
			return nil, nil, err
		}
		return NewPublicKey(pk), rest, nil
	case cltype.TagAny:
		// Any has no length information of its own: it soaks up the
		// rest of the buffer.
		return Any(append([]byte{}, data...)), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func wideFromBytes(data []byte, bits uint) (Value, []byte, error) {
	q := quantity.NewQuantity()
	rest, err := q.FromWireBytes(data, bits)
	if err != nil {
		return nil, nil, err
	}
	switch bits {
	case 128:
		return NewU128(q), rest, nil
	case 256:
		return NewU256(q), rest, nil
	default:
		return NewU512(q), rest, nil
	}
}
