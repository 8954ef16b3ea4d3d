// Package quantity implements an arbitrary-precision unsigned quantity
// with the canonical on-wire codec used by the chain's wide numeric
// types (U128/U256/U512).
package quantity

import (
	"encoding"
	"errors"
	"math/big"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

var (
	// ErrInvalidQuantity is the error returned when a quantity is
	// missing or negative.
	ErrInvalidQuantity = errors.New("quantity: invalid quantity")

	// ErrQuantityTooLarge is the error returned when a quantity does
	// not fit in the width it is being encoded into.
	ErrQuantityTooLarge = errors.New("quantity: quantity exceeds bit width")

	// ErrMalformedQuantity is the error returned when an encoded
	// quantity is not in minimal form.
	ErrMalformedQuantity = errors.New("quantity: malformed encoding")

	_ encoding.TextMarshaler   = (*Quantity)(nil)
	_ encoding.TextUnmarshaler = (*Quantity)(nil)
)

// Quantity is an arbitrary-precision unsigned integer.
type Quantity struct {
	inner big.Int
}

// Clone copies a Quantity.
func (q *Quantity) Clone() *Quantity {
	tmp := NewQuantity()
	tmp.inner.Set(&q.inner)
	return tmp
}

// FromBigInt converts from a big.Int to a Quantity.
func (q *Quantity) FromBigInt(n *big.Int) error {
	if n == nil || !isValid(n) {
		return ErrInvalidQuantity
	}

	q.inner.Set(n)
	return nil
}

// FromInt64 converts from an int64 to a Quantity.
func (q *Quantity) FromInt64(n int64) error {
	return q.FromBigInt(big.NewInt(n))
}

// FromUint64 converts from a uint64 to a Quantity.
func (q *Quantity) FromUint64(n uint64) error {
	var tmp big.Int
	tmp.SetUint64(n)
	return q.FromBigInt(&tmp)
}

// ToBigInt returns the Quantity as a big.Int.
func (q *Quantity) ToBigInt() *big.Int {
	var tmp big.Int
	tmp.Set(&q.inner)
	return &tmp
}

// Cmp returns -1 if q < other, 0 if q == other, and 1 if q > other.
func (q *Quantity) Cmp(other *Quantity) int {
	return q.inner.Cmp(&other.inner)
}

// IsZero returns true iff the quantity is zero.
func (q *Quantity) IsZero() bool {
	return q.inner.Sign() == 0
}

// String returns the string representation of q.
func (q Quantity) String() string {
	// Return the string representation of the inner value even if
	// it is invalid, for purposes such as error messages.
	return q.inner.String()
}

// MarshalText encodes a Quantity into decimal text form.
func (q Quantity) MarshalText() ([]byte, error) {
	return q.inner.MarshalText()
}

// UnmarshalText decodes a text marshaled Quantity.
func (q *Quantity) UnmarshalText(text []byte) error {
	var tmp big.Int
	if err := tmp.UnmarshalText(text); err != nil {
		return err
	}
	return q.FromBigInt(&tmp)
}

// ToWireBytes returns the canonical wire encoding: a u8 byte-count
// prefix followed by the minimal little-endian magnitude. Zero encodes
// as a bare zero count.
func (q *Quantity) ToWireBytes() []byte {
	mag := q.inner.Bytes() // big-endian, minimal
	out := make([]byte, 1+len(mag))
	out[0] = byte(len(mag))
	for i, b := range mag {
		out[1+len(mag)-1-i] = b
	}
	return out
}

// FromWireBytes decodes a canonical wire encoded quantity, enforcing
// the given maximum width in bits, and returns the remainder.
func (q *Quantity) FromWireBytes(data []byte, maxBits uint) ([]byte, error) {
	n, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, err
	}
	if uint(n) > (maxBits+7)/8 {
		return nil, ErrQuantityTooLarge
	}
	raw, rest, err := bytecodec.TakeBytes(rest, int(n))
	if err != nil {
		return nil, err
	}
	// Minimal form: no trailing zero byte in little-endian magnitude.
	if n > 0 && raw[n-1] == 0 {
		return nil, ErrMalformedQuantity
	}
	be := make([]byte, len(raw))
	for i, b := range raw {
		be[len(raw)-1-i] = b
	}
	var tmp big.Int
	tmp.SetBytes(be)
	if tmp.BitLen() > int(maxBits) {
		return nil, ErrQuantityTooLarge
	}
	q.inner.Set(&tmp)
	return rest, nil
}

// NewQuantity creates a new Quantity, initialized to zero.
func NewQuantity() *Quantity {
	return &Quantity{}
}

// NewFromUint64 creates a new Quantity from a uint64 or panics on
// failure.
func NewFromUint64(n uint64) *Quantity {
	q := NewQuantity()
	if err := q.FromUint64(n); err != nil {
		panic(err)
	}
	return q
}

// NewFromString creates a new Quantity from a decimal string.
func NewFromString(s string) (*Quantity, error) {
	q := NewQuantity()
	if err := q.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return q, nil
}

func isValid(n *big.Int) bool {
	return n.Sign() >= 0
}
