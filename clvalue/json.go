package clvalue

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
)

// jsonEnvelope is the JSON wire form of a value: the type descriptor,
// the hex encoded canonical value bytes, and a best-effort parsed
// rendering.
//
// The bytes field is authoritative on decode; parsed is advisory only.
type jsonEnvelope struct {
	CLType json.RawMessage `json:"cl_type"`
	Bytes  string          `json:"bytes"`
	Parsed interface{}     `json:"parsed,omitempty"`
}

// ToJSON encodes a value into its JSON wire form.
func ToJSON(v Value) (json.RawMessage, error) {
	typeJSON, err := json.Marshal(v.Type())
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonEnvelope{
		CLType: typeJSON,
		Bytes:  hex.EncodeToString(v.Bytes()),
		Parsed: Parsed(v),
	})
}

// FromJSON decodes a value from its JSON wire form. The value is
// reconstructed from cl_type and bytes; the parsed field is ignored.
func FromJSON(data []byte) (Value, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("clvalue: malformed json envelope: %w", err)
	}
	if env.CLType == nil {
		return nil, fmt.Errorf("%w: missing cl_type", ErrMalformedValue)
	}
	typ, err := cltype.FromJSON(env.CLType)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(env.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: bytes not hex: %v", ErrMalformedValue, err)
	}
	return FromBytesByTypeExact(typ, raw)
}

// Parsed returns the advisory human-oriented JSON rendering of a
// value.
func Parsed(v Value) interface{} {
	switch vv := v.(type) {
	case Bool:
		return bool(vv)
	case I32:
		return int32(vv)
	case I64:
		return int64(vv)
	case U8:
		return uint8(vv)
	case U32:
		return uint32(vv)
	case U64:
		return uint64(vv)
	case U128, U256, U512:
		// Decimal string: these exceed every JSON number range.
		return v.String()
	case Unit:
		return nil
	case String:
		return string(vv)
	case Key, URef, PublicKey:
		return v.String()
	case Any:
		return hex.EncodeToString(vv)
	case ByteArray:
		return hex.EncodeToString(vv)
	case Option:
		if vv.IsNone() {
			return nil
		}
		return Parsed(vv.Inner)
	case List:
		out := make([]interface{}, 0, len(vv.Elems))
		for _, e := range vv.Elems {
			out = append(out, Parsed(e))
		}
		return out
	case Map:
		out := make([]map[string]interface{}, 0, len(vv.Pairs))
		for _, p := range vv.Pairs {
			out = append(out, map[string]interface{}{
				"key":   Parsed(p.Key),
				"value": Parsed(p.Value),
			})
		}
		return out
	case Tuple1:
		return []interface{}{Parsed(vv.V0)}
	case Tuple2:
		return []interface{}{Parsed(vv.V0), Parsed(vv.V1)}
	case Tuple3:
		return []interface{}{Parsed(vv.V0), Parsed(vv.V1), Parsed(vv.V2)}
	case Result:
		if vv.IsOk {
			return map[string]interface{}{"Ok": Parsed(vv.Inner)}
		}
		return map[string]interface{}{"Err": Parsed(vv.Inner)}
	default:
		return nil
	}
}
