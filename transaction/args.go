package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/clvalue"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// NamedArg is a single named argument.
type NamedArg struct {
	Name  string
	Value clvalue.Value
}

// Args is an insertion-ordered mapping from unique argument names to
// values. Order is part of the canonical encoding, so it is preserved
// through every codec.
type Args struct {
	args []NamedArg
}

// NewArgs constructs an empty argument list.
func NewArgs() *Args {
	return &Args{}
}

// Insert appends a named argument. A repeated name is a hard error.
func (a *Args) Insert(name string, value clvalue.Value) error {
	for _, arg := range a.args {
		if arg.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateArg, name)
		}
	}
	a.args = append(a.args, NamedArg{Name: name, Value: value})
	return nil
}

// MustInsert is Insert that panics on a duplicate name, for use by
// builders with statically distinct names.
func (a *Args) MustInsert(name string, value clvalue.Value) *Args {
	if err := a.Insert(name, value); err != nil {
		panic(err)
	}
	return a
}

// Get returns the value stored under name.
func (a *Args) Get(name string) (clvalue.Value, bool) {
	for _, arg := range a.args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Len returns the number of arguments.
func (a *Args) Len() int {
	return len(a.args)
}

// Named returns the arguments in insertion order.
func (a *Args) Named() []NamedArg {
	return append([]NamedArg{}, a.args...)
}

// Bytes returns the canonical byte encoding: a u32 count followed by
// each argument's length-prefixed name and self-describing value.
func (a *Args) Bytes() []byte {
	out := bytecodec.ToBytesU32(uint32(len(a.args)))
	for _, arg := range a.args {
		out = append(out, bytecodec.ToBytesString(arg.Name)...)
		out = append(out, clvalue.ToBytesWithType(arg.Value)...)
	}
	return out
}

// ArgsFromBytes decodes arguments from the front of data and returns
// the remainder.
func ArgsFromBytes(data []byte) (*Args, []byte, error) {
	count, rest, err := bytecodec.FromBytesU32(data)
	if err != nil {
		return nil, nil, err
	}

	a := NewArgs()
	for i := uint32(0); i < count; i++ {
		var name string
		if name, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		var value clvalue.Value
		if value, rest, err = clvalue.FromBytesWithType(rest); err != nil {
			return nil, nil, err
		}
		if err = a.Insert(name, value); err != nil {
			return nil, nil, err
		}
	}
	return a, rest, nil
}

// MarshalJSON encodes the arguments as an array of [name, value]
// pairs. An array rather than an object keeps duplicate names
// representable on the wire, where they must then be rejected by the
// decoder instead of being silently collapsed.
func (a *Args) MarshalJSON() ([]byte, error) {
	pairs := make([]json.RawMessage, 0, len(a.args))
	for _, arg := range a.args {
		valueJSON, err := clvalue.ToJSON(arg.Value)
		if err != nil {
			return nil, err
		}
		nameJSON, err := json.Marshal(arg.Name)
		if err != nil {
			return nil, err
		}
		pair, err := json.Marshal([]json.RawMessage{nameJSON, valueJSON})
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes an array of [name, value] pairs, rejecting
// duplicate names.
func (a *Args) UnmarshalJSON(data []byte) error {
	var pairs [][]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("transaction: malformed args: %w", err)
	}

	decoded := NewArgs()
	for _, pair := range pairs {
		if len(pair) != 2 {
			return fmt.Errorf("%w: args pair must have 2 elements", ErrMalformedTransaction)
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return fmt.Errorf("transaction: malformed arg name: %w", err)
		}
		value, err := clvalue.FromJSON(pair[1])
		if err != nil {
			return err
		}
		if err = decoded.Insert(name, value); err != nil {
			return err
		}
	}

	*a = *decoded
	return nil
}
