// Package transaction implements the chain's transaction envelopes:
// the legacy Deploy, the TransactionV1 across its two wire revisions,
// and the unified Transaction view over all of them.
package transaction

import (
	"github.com/zephyrprotocol/zephyr-sdk/common/errors"
)

// moduleName is the module name used for error definitions.
const moduleName = "transaction"

var (
	// ErrInvalidBodyHash is the error returned when a recomputed body
	// hash disagrees with the stored one.
	ErrInvalidBodyHash = errors.New(moduleName, 1, "transaction: invalid body hash")

	// ErrInvalidTransactionHash is the error returned when a recomputed
	// transaction hash disagrees with the stored one.
	ErrInvalidTransactionHash = errors.New(moduleName, 2, "transaction: invalid transaction hash")

	// ErrInvalidDeployHash is the error returned when a recomputed
	// deploy hash disagrees with the stored one.
	ErrInvalidDeployHash = errors.New(moduleName, 3, "transaction: invalid deploy hash")

	// ErrInvalidApprovalSignature is the error returned when an
	// approval's signature does not verify against the transaction
	// hash.
	ErrInvalidApprovalSignature = errors.New(moduleName, 4, "transaction: invalid approval signature")

	// ErrDuplicateArg is the error returned when argument
	// deserialization encounters a repeated name.
	ErrDuplicateArg = errors.New(moduleName, 5, "transaction: duplicate named argument")

	// ErrUnknownVariantTag is the error returned when a tagged-union
	// discriminant is not part of the known set.
	ErrUnknownVariantTag = errors.New(moduleName, 6, "transaction: unknown variant tag")

	// ErrMalformedTransaction is the error returned when a serialized
	// transaction is structurally invalid.
	ErrMalformedTransaction = errors.New(moduleName, 7, "transaction: malformed transaction")

	// ErrMalformedDuration is the error returned when a humanized
	// duration string cannot be parsed.
	ErrMalformedDuration = errors.New(moduleName, 8, "transaction: malformed duration")
)
