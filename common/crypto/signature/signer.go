package signature

// Signer is an opaque interface for private keys that is capable of
// producing signatures, in the spirit of crypto.Signer.
//
// The message passed to Sign is typically a transaction hash. Signing
// may suspend on implementations backed by external or hardware
// signers, which is why it returns an error rather than panicking.
type Signer interface {
	// Public returns the PublicKey corresponding to the signer.
	Public() PublicKey

	// Sign generates a tagged signature with the private key over the
	// message.
	Sign(message []byte) (RawSignature, error)

	// String returns the string representation of a Signer, which MUST
	// not include any sensitive information.
	String() string

	// Reset tears down the Signer and obliterates any sensitive state
	// if any.
	Reset()
}
