package signature_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	memorySigner "github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature/signers/memory"
)

func TestPublicKeyTaggedEncoding(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "tagged encoding")
	pk := signer.Public()

	b := pk.Bytes()
	require.Len(b, 33, "ed25519 tagged key length")
	require.Equal(byte(signature.AlgorithmEd25519), b[0], "algorithm tag")

	var dec signature.PublicKey
	require.NoError(dec.UnmarshalBinary(b), "UnmarshalBinary")
	require.True(pk.Equal(dec), "binary round trip")

	text, err := pk.MarshalText()
	require.NoError(err, "MarshalText")
	require.Equal("01", string(text[:2]), "hex prefix carries tag")
	var dec2 signature.PublicKey
	require.NoError(dec2.UnmarshalText(text), "UnmarshalText")
	require.True(pk.Equal(dec2), "text round trip")
}

func TestPublicKeyFromBytesRemainder(t *testing.T) {
	require := require.New(t)

	signer := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "remainder")
	blob := append(signer.Public().Bytes(), 0xAA, 0xBB)

	pk, rest, err := signature.FromBytes(blob)
	require.NoError(err, "FromBytes")
	require.True(pk.Equal(signer.Public()), "decoded key")
	require.Equal([]byte{0xAA, 0xBB}, rest, "remainder")

	_, _, err = signature.FromBytes([]byte{42})
	require.ErrorIs(err, signature.ErrUnsupportedAlgorithm, "unknown tag")

	_, _, err = signature.FromBytes([]byte{1, 2, 3})
	require.ErrorIs(err, signature.ErrMalformedPublicKey, "short key")
}

func TestSignVerify(t *testing.T) {
	for _, algorithm := range []signature.Algorithm{
		signature.AlgorithmEd25519,
		signature.AlgorithmSecp256k1,
	} {
		t.Run(algorithm.String(), func(t *testing.T) {
			require := require.New(t)

			signer := memorySigner.NewTestSigner(algorithm, "sign verify")
			message := []byte("a transaction hash stand-in")

			sig, err := signature.Sign(signer, message)
			require.NoError(err, "Sign")
			require.True(sig.Verify(message), "signature verifies")
			require.False(sig.Verify([]byte("some other message")), "verify rejects other message")

			// Signature from a different key must not verify.
			other := memorySigner.NewTestSigner(algorithm, "some other signer")
			sig.PublicKey = other.Public()
			require.False(sig.Verify(message), "verify rejects wrong key")
		})
	}
}

func TestSignerDeterminism(t *testing.T) {
	require := require.New(t)

	a := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "determinism")
	b := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "determinism")
	require.True(a.Public().Equal(b.Public()), "same name, same key")

	c := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "determinism 2")
	require.False(a.Public().Equal(c.Public()), "different name, different key")
}

func TestAccountHash(t *testing.T) {
	require := require.New(t)

	e := memorySigner.NewTestSigner(signature.AlgorithmEd25519, "account hash")
	s := memorySigner.NewTestSigner(signature.AlgorithmSecp256k1, "account hash")

	require.NotEqual(
		e.Public().AccountHash(),
		s.Public().AccountHash(),
		"account hash is algorithm separated",
	)
	require.Equal(
		e.Public().AccountHash(),
		e.Public().AccountHash(),
		"account hash is deterministic",
	)
}
