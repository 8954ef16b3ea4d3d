// Package types defines the leaf chain types referenced by the value
// type system and the transaction envelopes.
package types

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/errors"
)

// moduleName is the module name used for error definitions.
const moduleName = "types"

var (
	// ErrMalformedURef is the error returned when a URef is malformed.
	ErrMalformedURef = errors.New(moduleName, 1, "types: malformed uref")

	// ErrMalformedKey is the error returned when a key is malformed.
	ErrMalformedKey = errors.New(moduleName, 2, "types: malformed key")

	// ErrUnknownKeyTag is the error returned when a key tag byte or
	// string prefix is not recognized.
	ErrUnknownKeyTag = errors.New(moduleName, 3, "types: unknown key tag")

	_ encoding.TextMarshaler   = URef{}
	_ encoding.TextUnmarshaler = (*URef)(nil)
)

// URefAddrSize is the size of a URef address in bytes.
const URefAddrSize = 32

// URefSerializedSize is the size of a byte-serialized URef.
const URefSerializedSize = URefAddrSize + 1

// AccessRights is the access-rights bit set of a URef.
type AccessRights uint8

const (
	// AccessNone grants no rights.
	AccessNone AccessRights = 0
	// AccessRead grants read access.
	AccessRead AccessRights = 1
	// AccessWrite grants write access.
	AccessWrite AccessRights = 2
	// AccessAdd grants add (commutative write) access.
	AccessAdd AccessRights = 4
	// AccessReadAddWrite grants the full set of rights.
	AccessReadAddWrite AccessRights = AccessRead | AccessWrite | AccessAdd
)

// URef is an unforgeable reference: a 32-byte address paired with an
// access-rights byte.
type URef struct {
	Address [URefAddrSize]byte
	Access  AccessRights
}

// NewURef constructs a URef from an address and access rights.
func NewURef(address [URefAddrSize]byte, access AccessRights) URef {
	return URef{Address: address, Access: access}
}

// Bytes returns the canonical byte encoding: address then access byte.
func (u URef) Bytes() []byte {
	out := make([]byte, 0, URefSerializedSize)
	out = append(out, u.Address[:]...)
	return append(out, byte(u.Access))
}

// String returns the wire string form, e.g.
// "uref-<hex address>-007".
func (u URef) String() string {
	return fmt.Sprintf("uref-%s-%03d", hex.EncodeToString(u.Address[:]), u.Access)
}

// MarshalText encodes a URef into its wire string form.
func (u URef) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText decodes a text marshaled URef.
func (u *URef) UnmarshalText(text []byte) error {
	parsed, err := URefFromString(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// URefFromString parses the "uref-<hex>-<rights>" wire string form.
func URefFromString(s string) (URef, error) {
	rem, ok := strings.CutPrefix(s, "uref-")
	if !ok {
		return URef{}, fmt.Errorf("%w: missing uref prefix", ErrMalformedURef)
	}
	addrHex, rightsStr, ok := strings.Cut(rem, "-")
	if !ok {
		return URef{}, fmt.Errorf("%w: missing access rights", ErrMalformedURef)
	}
	addr, err := hex.DecodeString(addrHex)
	if err != nil || len(addr) != URefAddrSize {
		return URef{}, fmt.Errorf("%w: bad address", ErrMalformedURef)
	}
	rights, err := strconv.ParseUint(rightsStr, 10, 8)
	if err != nil || rights > uint64(AccessReadAddWrite) {
		return URef{}, fmt.Errorf("%w: bad access rights", ErrMalformedURef)
	}

	var u URef
	copy(u.Address[:], addr)
	u.Access = AccessRights(rights)
	return u, nil
}

// URefFromBytes decodes a URef from the front of data and returns the
// remainder.
func URefFromBytes(data []byte) (URef, []byte, error) {
	raw, rest, err := bytecodec.TakeBytes(data, URefSerializedSize)
	if err != nil {
		return URef{}, nil, err
	}
	var u URef
	copy(u.Address[:], raw[:URefAddrSize])
	u.Access = AccessRights(raw[URefAddrSize])
	if u.Access > AccessReadAddWrite {
		return URef{}, nil, fmt.Errorf("%w: bad access rights", ErrMalformedURef)
	}
	return u, rest, nil
}
