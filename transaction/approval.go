package transaction

import (
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
)

// minApprovalSize is the smallest possible serialized approval: a
// tagged Ed25519 public key followed by a tagged raw signature.
const minApprovalSize = 1 + 32 + 1 + signature.RawSignatureSize

// Approval is a signer's endorsement of a transaction hash.
type Approval struct {
	Signer    signature.PublicKey    `json:"signer"`
	Signature signature.RawSignature `json:"signature"`
}

// NewApproval signs the given transaction hash bytes with the signer.
func NewApproval(signer signature.Signer, hashBytes []byte) (Approval, error) {
	raw, err := signer.Sign(hashBytes)
	if err != nil {
		return Approval{}, err
	}
	return Approval{Signer: signer.Public(), Signature: raw}, nil
}

// Verify reports whether the approval's signature is valid over the
// given transaction hash bytes.
func (a Approval) Verify(hashBytes []byte) bool {
	return a.Signer.Verify(hashBytes, a.Signature)
}

// Bytes returns the byte encoding: tagged signer key followed by the
// tagged signature.
func (a Approval) Bytes() []byte {
	return append(a.Signer.Bytes(), a.Signature.Bytes()...)
}

// ApprovalFromBytes decodes an approval from the front of data and
// returns the remainder.
func ApprovalFromBytes(data []byte) (Approval, []byte, error) {
	var a Approval
	signer, rest, err := signature.FromBytes(data)
	if err != nil {
		return Approval{}, nil, err
	}
	a.Signer = signer
	raw, rest, err := bytecodec.TakeBytes(rest, 1+signature.RawSignatureSize)
	if err != nil {
		return Approval{}, nil, err
	}
	if a.Signature, err = signature.NewRawSignature(signature.Algorithm(raw[0]), raw[1:]); err != nil {
		return Approval{}, nil, err
	}
	return a, rest, nil
}

// approvalsBytes encodes a slice of approvals as a u32 count followed
// by each approval's bytes.
func approvalsBytes(approvals []Approval) []byte {
	out := bytecodec.ToBytesU32(uint32(len(approvals)))
	for _, a := range approvals {
		out = append(out, a.Bytes()...)
	}
	return out
}

// approvalsFromBytes decodes a slice of approvals from the front of
// data and returns the remainder.
func approvalsFromBytes(data []byte) ([]Approval, []byte, error) {
	count, rest, err := bytecodec.FromBytesU32(data)
	if err != nil {
		return nil, nil, err
	}
	// Bound the allocation by what the buffer could possibly hold so a
	// hostile count cannot force a huge allocation.
	if count > uint32(len(rest)/minApprovalSize) {
		return nil, nil, fmt.Errorf("%w: approval count %d exceeds buffer", ErrMalformedTransaction, count)
	}
	approvals := make([]Approval, 0, count)
	for i := uint32(0); i < count; i++ {
		var a Approval
		if a, rest, err = ApprovalFromBytes(rest); err != nil {
			return nil, nil, err
		}
		approvals = append(approvals, a)
	}
	return approvals, rest, nil
}
