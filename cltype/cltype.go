// Package cltype implements the closed set of type descriptors for the
// chain's value type system.
//
// A CLType describes the shape of a value without containing the value
// itself. Every variant encodes to a dense tag byte followed by the
// recursive encoding of any nested types, and to a parallel JSON form:
// bare strings for primitives and single-key objects for composites.
package cltype

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/common/errors"
)

// moduleName is the module name used for error definitions.
const moduleName = "cltype"

var (
	// ErrUnknownTypeTag is the error returned when a type tag byte is
	// not part of the closed variant set.
	ErrUnknownTypeTag = errors.New(moduleName, 1, "cltype: unknown type tag")

	// ErrUnknownTypeName is the error returned when a primitive type
	// name is not recognized.
	ErrUnknownTypeName = errors.New(moduleName, 2, "cltype: unknown type name")

	// ErrComplexTypeFormat is the error returned when a composite JSON
	// type is not a single-key object.
	ErrComplexTypeFormat = errors.New(moduleName, 3, "cltype: complex type format invalid")

	// ErrJSONConstructorNotFound is the error returned when a composite
	// JSON key does not name a known constructor.
	ErrJSONConstructorNotFound = errors.New(moduleName, 4, "cltype: json constructor not found")
)

// Tag is a CLType variant tag byte.
type Tag uint8

// The dense tag space of the closed variant set.
const (
	TagBool      Tag = 0
	TagI32       Tag = 1
	TagI64       Tag = 2
	TagU8        Tag = 3
	TagU32       Tag = 4
	TagU64       Tag = 5
	TagU128      Tag = 6
	TagU256      Tag = 7
	TagU512      Tag = 8
	TagUnit      Tag = 9
	TagString    Tag = 10
	TagKey       Tag = 11
	TagURef      Tag = 12
	TagOption    Tag = 13
	TagList      Tag = 14
	TagByteArray Tag = 15
	TagResult    Tag = 16
	TagMap       Tag = 17
	TagTuple1    Tag = 18
	TagTuple2    Tag = 19
	TagTuple3    Tag = 20
	TagAny       Tag = 21
	TagPublicKey Tag = 22
)

// CLType is a type descriptor in the value type system.
//
// The variant set is closed: only types in this package implement it.
type CLType interface {
	json.Marshaler
	fmt.Stringer

	// Tag returns the variant's tag byte.
	Tag() Tag

	// Name returns the variant's wire name.
	Name() string

	// ToBytes returns the canonical byte encoding of the descriptor.
	ToBytes() []byte

	isCLType()
}

// Simple is a primitive CLType carrying no nested types.
type Simple struct {
	tag  Tag
	name string
}

// The primitive type descriptors.
var (
	Bool      = Simple{TagBool, "Bool"}
	I32       = Simple{TagI32, "I32"}
	I64       = Simple{TagI64, "I64"}
	U8        = Simple{TagU8, "U8"}
	U32       = Simple{TagU32, "U32"}
	U64       = Simple{TagU64, "U64"}
	U128      = Simple{TagU128, "U128"}
	U256      = Simple{TagU256, "U256"}
	U512      = Simple{TagU512, "U512"}
	Unit      = Simple{TagUnit, "Unit"}
	String    = Simple{TagString, "String"}
	Key       = Simple{TagKey, "Key"}
	URef      = Simple{TagURef, "URef"}
	Any       = Simple{TagAny, "Any"}
	PublicKey = Simple{TagPublicKey, "PublicKey"}
)

// simpleByName is the primitive-name lookup table used by the JSON
// parser.
var simpleByName = map[string]Simple{
	"Bool":      Bool,
	"I32":       I32,
	"I64":       I64,
	"U8":        U8,
	"U32":       U32,
	"U64":       U64,
	"U128":      U128,
	"U256":      U256,
	"U512":      U512,
	"Unit":      Unit,
	"String":    String,
	"Key":       Key,
	"URef":      URef,
	"Any":       Any,
	"PublicKey": PublicKey,
}

// Tag returns the variant's tag byte.
func (s Simple) Tag() Tag { return s.tag }

// Name returns the variant's wire name.
func (s Simple) Name() string { return s.name }

// ToBytes returns the canonical byte encoding of the descriptor.
func (s Simple) ToBytes() []byte { return []byte{byte(s.tag)} }

// MarshalJSON encodes the primitive as its bare wire name.
func (s Simple) MarshalJSON() ([]byte, error) { return json.Marshal(s.name) }

// String returns the wire name.
func (s Simple) String() string { return s.name }

func (s Simple) isCLType() {}

// Equal returns true iff two type descriptors describe the same type.
func Equal(a, b CLType) bool {
	if a == nil || b == nil {
		return a == b
	}
	ab, bb := a.ToBytes(), b.ToBytes()
	if len(ab) != len(bb) {
		return false
	}
	for i := range ab {
		if ab[i] != bb[i] {
			return false
		}
	}
	return true
}
