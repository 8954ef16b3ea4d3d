// Package memory provides a memory backed Signer, primarily for use in
// testing and key generation tooling.
package memory

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
)

// SignerName is the name used to identify the memory backed signer.
const SignerName = "memory"

// SeedSize is the size of a deterministic signer seed in bytes.
const SeedSize = 32

var (
	_ signature.Signer = (*Signer)(nil)
	_ signature.Signer = (*secpSigner)(nil)
)

// Signer is a memory backed Ed25519 signer.
type Signer struct {
	privateKey ed25519.PrivateKey
}

// Public returns the PublicKey corresponding to the signer.
func (s *Signer) Public() signature.PublicKey {
	pk, err := signature.NewPublicKey(
		signature.AlgorithmEd25519,
		s.privateKey.Public().(ed25519.PublicKey),
	)
	if err != nil {
		panic("signature/memory: invalid ed25519 public key: " + err.Error())
	}
	return pk
}

// Sign generates a tagged signature with the private key over the
// message.
func (s *Signer) Sign(message []byte) (signature.RawSignature, error) {
	raw := ed25519.Sign(s.privateKey, message)
	return signature.NewRawSignature(signature.AlgorithmEd25519, raw)
}

// String returns anything but the actual private key backing the
// Signer.
func (s *Signer) String() string {
	return "[redacted ed25519 private key]"
}

// Reset tears down the Signer by obliterating the private key that
// backs it.
func (s *Signer) Reset() {
	for i := range s.privateKey {
		s.privateKey[i] = 0
	}
}

type secpSigner struct {
	privateKey *secp256k1.PrivateKey
}

func (s *secpSigner) Public() signature.PublicKey {
	pk, err := signature.NewPublicKey(
		signature.AlgorithmSecp256k1,
		s.privateKey.PubKey().SerializeCompressed(),
	)
	if err != nil {
		panic("signature/memory: invalid secp256k1 public key: " + err.Error())
	}
	return pk
}

func (s *secpSigner) Sign(message []byte) (signature.RawSignature, error) {
	digest := sha256.Sum256(message)
	sig := secpecdsa.Sign(s.privateKey, digest[:])
	r := sig.R()
	ss := sig.S()
	var raw [signature.RawSignatureSize]byte
	rb := r.Bytes()
	sb := ss.Bytes()
	copy(raw[:32], rb[:])
	copy(raw[32:], sb[:])
	return signature.NewRawSignature(signature.AlgorithmSecp256k1, raw[:])
}

func (s *secpSigner) String() string {
	return "[redacted secp256k1 private key]"
}

func (s *secpSigner) Reset() {
	s.privateKey.Zero()
}

// NewSigner generates a new signer for the given algorithm using
// entropy from rng (crypto/rand if nil).
func NewSigner(algorithm signature.Algorithm, rng io.Reader) (signature.Signer, error) {
	if rng == nil {
		rng = rand.Reader
	}

	switch algorithm {
	case signature.AlgorithmEd25519:
		_, privateKey, err := ed25519.GenerateKey(rng)
		if err != nil {
			return nil, err
		}
		return &Signer{privateKey: privateKey}, nil
	case signature.AlgorithmSecp256k1:
		var seed [SeedSize]byte
		if _, err := io.ReadFull(rng, seed[:]); err != nil {
			return nil, err
		}
		return NewFromSeed(signature.AlgorithmSecp256k1, seed[:])
	default:
		return nil, signature.ErrUnsupportedAlgorithm
	}
}

// NewFromSeed creates a new deterministic signer from a 32 byte seed.
func NewFromSeed(algorithm signature.Algorithm, seed []byte) (signature.Signer, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("signature/memory: bad seed size: %d", len(seed))
	}

	switch algorithm {
	case signature.AlgorithmEd25519:
		return &Signer{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
	case signature.AlgorithmSecp256k1:
		priv := secp256k1.PrivKeyFromBytes(seed)
		if priv.Key.IsZero() {
			return nil, fmt.Errorf("signature/memory: degenerate secp256k1 seed")
		}
		return &secpSigner{privateKey: priv}, nil
	default:
		return nil, signature.ErrUnsupportedAlgorithm
	}
}

// NewTestSigner generates a deterministic signer from a test name,
// suitable for generating reproducible test vectors.
func NewTestSigner(algorithm signature.Algorithm, name string) signature.Signer {
	seed := hash.NewFromBytes([]byte(SignerName + ": " + name))
	signer, err := NewFromSeed(algorithm, seed[:])
	if err != nil {
		panic(err)
	}
	return signer
}
