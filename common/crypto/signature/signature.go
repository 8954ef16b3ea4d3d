// Package signature provides wrapper types around the algorithm-tagged
// public keys and signatures used by the chain.
//
// On the wire both public keys and signatures carry a one byte
// algorithm prefix (1 for Ed25519, 2 for Secp256k1) followed by the raw
// key or signature bytes.
package signature

import (
	"bytes"
	"crypto/sha256"
	"encoding"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

// RawSignatureSize is the size of an untagged signature in bytes. Both
// supported algorithms produce 64 byte signatures.
const RawSignatureSize = 64

var (
	// ErrMalformedPublicKey is the error returned when a public key is
	// malformed.
	ErrMalformedPublicKey = errors.New("signature: malformed public key")

	// ErrMalformedSignature is the error returned when a signature is
	// malformed.
	ErrMalformedSignature = errors.New("signature: malformed signature")

	// ErrUnsupportedAlgorithm is the error returned when an algorithm
	// tag byte is not part of the supported set.
	ErrUnsupportedAlgorithm = errors.New("signature: unsupported algorithm")

	// ErrVerifyFailed is the error returned when a signature does not
	// verify against the expected public key and message.
	ErrVerifyFailed = errors.New("signature: signature verification failed")

	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = RawSignature{}
	_ encoding.TextUnmarshaler   = (*RawSignature)(nil)
)

// Algorithm is a signature algorithm tag.
type Algorithm uint8

const (
	// AlgorithmEd25519 is the Ed25519 signature algorithm.
	AlgorithmEd25519 Algorithm = 1

	// AlgorithmSecp256k1 is the ECDSA over secp256k1 signature
	// algorithm, over the SHA-256 digest of the message.
	AlgorithmSecp256k1 Algorithm = 2
)

// String returns the lowercase name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("[unknown algorithm: %d]", uint8(a))
	}
}

// KeySize returns the size of a raw public key for the algorithm.
func (a Algorithm) KeySize() int {
	switch a {
	case AlgorithmEd25519:
		return ed25519.PublicKeySize
	case AlgorithmSecp256k1:
		return secp256k1.PubKeyBytesLenCompressed
	default:
		return 0
	}
}

// PublicKey is an algorithm-tagged public key.
type PublicKey struct {
	algorithm Algorithm
	key       []byte
}

// NewPublicKey constructs a public key from an algorithm and raw key
// bytes.
func NewPublicKey(algorithm Algorithm, key []byte) (PublicKey, error) {
	size := algorithm.KeySize()
	if size == 0 {
		return PublicKey{}, ErrUnsupportedAlgorithm
	}
	if len(key) != size {
		return PublicKey{}, ErrMalformedPublicKey
	}
	if algorithm == AlgorithmSecp256k1 {
		if _, err := secp256k1.ParsePubKey(key); err != nil {
			return PublicKey{}, ErrMalformedPublicKey
		}
	}
	return PublicKey{algorithm: algorithm, key: append([]byte{}, key...)}, nil
}

// Algorithm returns the key's algorithm tag.
func (k PublicKey) Algorithm() Algorithm {
	return k.algorithm
}

// Bytes returns the tagged wire encoding of the public key.
func (k PublicKey) Bytes() []byte {
	out := make([]byte, 0, 1+len(k.key))
	out = append(out, byte(k.algorithm))
	return append(out, k.key...)
}

// IsZero returns true iff the public key is uninitialized.
func (k PublicKey) IsZero() bool {
	return k.algorithm == 0 && len(k.key) == 0
}

// Verify returns true iff the signature is valid for the public key
// over the message.
func (k PublicKey) Verify(message []byte, sig RawSignature) bool {
	if sig.algorithm != k.algorithm || len(sig.raw) != RawSignatureSize {
		return false
	}

	switch k.algorithm {
	case AlgorithmEd25519:
		return ed25519.Verify(ed25519.PublicKey(k.key), message, sig.raw)
	case AlgorithmSecp256k1:
		pub, err := secp256k1.ParsePubKey(k.key)
		if err != nil {
			return false
		}
		var r, s secp256k1.ModNScalar
		if overflow := r.SetByteSlice(sig.raw[:32]); overflow {
			return false
		}
		if overflow := s.SetByteSlice(sig.raw[32:]); overflow {
			return false
		}
		digest := sha256.Sum256(message)
		return secpecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
	default:
		return false
	}
}

// AccountHash returns the account hash derived from the public key:
// the digest of the lowercase algorithm name, a zero separator byte
// and the raw key bytes.
func (k PublicKey) AccountHash() hash.Hash {
	return hash.NewFromBytes([]byte(k.algorithm.String()), []byte{0}, k.key)
}

// MarshalBinary encodes a public key into tagged binary form.
func (k PublicKey) MarshalBinary() ([]byte, error) {
	return k.Bytes(), nil
}

// UnmarshalBinary decodes a tagged binary marshaled public key.
func (k *PublicKey) UnmarshalBinary(data []byte) error {
	pk, rest, err := FromBytes(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return ErrMalformedPublicKey
	}
	*k = pk
	return nil
}

// MarshalText encodes a public key into the hexadecimal tagged form
// used on the JSON wire.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(k.Bytes())), nil
}

// UnmarshalText decodes a text marshaled public key.
func (k *PublicKey) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	return k.UnmarshalBinary(b)
}

// UnmarshalHex deserializes a hexadecimal text string into the given
// type.
func (k *PublicKey) UnmarshalHex(text string) error {
	return k.UnmarshalText([]byte(text))
}

// Equal compares vs another public key for equality.
func (k PublicKey) Equal(cmp PublicKey) bool {
	return k.algorithm == cmp.algorithm && bytes.Equal(k.key, cmp.key)
}

// String returns a string representation of the public key.
func (k PublicKey) String() string {
	return hex.EncodeToString(k.Bytes())
}

// FromBytes decodes a tagged public key from the front of data and
// returns the remainder.
func FromBytes(data []byte) (PublicKey, []byte, error) {
	if len(data) < 1 {
		return PublicKey{}, nil, ErrMalformedPublicKey
	}
	algorithm := Algorithm(data[0])
	size := algorithm.KeySize()
	if size == 0 {
		return PublicKey{}, nil, ErrUnsupportedAlgorithm
	}
	if len(data) < 1+size {
		return PublicKey{}, nil, ErrMalformedPublicKey
	}
	pk, err := NewPublicKey(algorithm, data[1:1+size])
	if err != nil {
		return PublicKey{}, nil, err
	}
	return pk, data[1+size:], nil
}

// RawSignature is an algorithm-tagged signature.
type RawSignature struct {
	algorithm Algorithm
	raw       []byte
}

// NewRawSignature constructs a signature from an algorithm and raw
// signature bytes.
func NewRawSignature(algorithm Algorithm, raw []byte) (RawSignature, error) {
	if algorithm.KeySize() == 0 {
		return RawSignature{}, ErrUnsupportedAlgorithm
	}
	if len(raw) != RawSignatureSize {
		return RawSignature{}, ErrMalformedSignature
	}
	return RawSignature{algorithm: algorithm, raw: append([]byte{}, raw...)}, nil
}

// Algorithm returns the signature's algorithm tag.
func (r RawSignature) Algorithm() Algorithm {
	return r.algorithm
}

// Bytes returns the tagged wire encoding of the signature.
func (r RawSignature) Bytes() []byte {
	out := make([]byte, 0, 1+len(r.raw))
	out = append(out, byte(r.algorithm))
	return append(out, r.raw...)
}

// MarshalText encodes a signature into the hexadecimal tagged form
// used on the JSON wire.
func (r RawSignature) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(r.Bytes())), nil
}

// UnmarshalText decodes a text marshaled signature.
func (r *RawSignature) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != 1+RawSignatureSize {
		return ErrMalformedSignature
	}
	sig, err := NewRawSignature(Algorithm(b[0]), b[1:])
	if err != nil {
		return err
	}
	*r = sig
	return nil
}

// Equal compares vs another signature for equality.
func (r RawSignature) Equal(cmp RawSignature) bool {
	return r.algorithm == cmp.algorithm && bytes.Equal(r.raw, cmp.raw)
}

// String returns a string representation of the signature.
func (r RawSignature) String() string {
	return hex.EncodeToString(r.Bytes())
}

// Signature is a signature bundled with the public key that produced
// it.
type Signature struct {
	// PublicKey is the public key that produced the signature.
	PublicKey PublicKey `json:"public_key"`

	// Signature is the actual tagged signature.
	Signature RawSignature `json:"signature"`
}

// Sign generates a signature with the signer over the message.
func Sign(signer Signer, message []byte) (*Signature, error) {
	raw, err := signer.Sign(message)
	if err != nil {
		return nil, err
	}

	return &Signature{PublicKey: signer.Public(), Signature: raw}, nil
}

// Verify returns true iff the signature is valid over the given
// message.
func (s *Signature) Verify(message []byte) bool {
	return s.PublicKey.Verify(message, s.Signature)
}
