package transaction

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/zephyrprotocol/zephyr-sdk/cltype"
	"github.com/zephyrprotocol/zephyr-sdk/clvalue"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/signature"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
)

// Executable deploy item variant tags.
const (
	deployItemTagModuleBytes                   uint8 = 0
	deployItemTagStoredContractByHash          uint8 = 1
	deployItemTagStoredContractByName          uint8 = 2
	deployItemTagStoredVersionedContractByHash uint8 = 3
	deployItemTagStoredVersionedContractByName uint8 = 4
	deployItemTagTransfer                      uint8 = 5
)

// ExecutableDeployItem is the payment or session portion of a deploy.
//
// The variant set is closed: ModuleBytes, StoredContractByHash,
// StoredContractByName, StoredVersionedContractByHash,
// StoredVersionedContractByName and Transfer.
type ExecutableDeployItem interface {
	json.Marshaler

	// Bytes returns the byte encoding, the variant tag followed by the
	// variant's fields.
	Bytes() []byte

	// ItemArgs returns the item's runtime arguments.
	ItemArgs() *Args

	isExecutableDeployItem()
}

// ModuleBytes executes raw module bytes shipped with the deploy. Empty
// module bytes select the standard payment contract.
type ModuleBytes struct {
	ModuleBytes []byte
	Args        *Args
}

// Bytes returns the byte encoding.
func (m ModuleBytes) Bytes() []byte {
	out := []byte{deployItemTagModuleBytes}
	out = append(out, bytecodec.ToBytesBytes(m.ModuleBytes)...)
	return append(out, m.Args.Bytes()...)
}

// ItemArgs returns the item's runtime arguments.
func (m ModuleBytes) ItemArgs() *Args { return m.Args }

// MarshalJSON encodes the variant as a single-key object.
func (m ModuleBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"ModuleBytes": map[string]interface{}{
			"module_bytes": hex.EncodeToString(m.ModuleBytes),
			"args":         m.Args,
		},
	})
}

func (m ModuleBytes) isExecutableDeployItem() {}

// StoredContractByHash invokes an entry point of a stored contract by
// its hash.
type StoredContractByHash struct {
	Hash       hash.Hash
	EntryPoint string
	Args       *Args
}

// Bytes returns the byte encoding.
func (s StoredContractByHash) Bytes() []byte {
	out := append([]byte{deployItemTagStoredContractByHash}, s.Hash[:]...)
	out = append(out, bytecodec.ToBytesString(s.EntryPoint)...)
	return append(out, s.Args.Bytes()...)
}

// ItemArgs returns the item's runtime arguments.
func (s StoredContractByHash) ItemArgs() *Args { return s.Args }

// MarshalJSON encodes the variant as a single-key object.
func (s StoredContractByHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"StoredContractByHash": map[string]interface{}{
			"hash":        s.Hash.String(),
			"entry_point": s.EntryPoint,
			"args":        s.Args,
		},
	})
}

func (s StoredContractByHash) isExecutableDeployItem() {}

// StoredContractByName invokes an entry point of a contract stored
// under a name in the deploying account.
type StoredContractByName struct {
	Name       string
	EntryPoint string
	Args       *Args
}

// Bytes returns the byte encoding.
func (s StoredContractByName) Bytes() []byte {
	out := append([]byte{deployItemTagStoredContractByName}, bytecodec.ToBytesString(s.Name)...)
	out = append(out, bytecodec.ToBytesString(s.EntryPoint)...)
	return append(out, s.Args.Bytes()...)
}

// ItemArgs returns the item's runtime arguments.
func (s StoredContractByName) ItemArgs() *Args { return s.Args }

// MarshalJSON encodes the variant as a single-key object.
func (s StoredContractByName) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"StoredContractByName": map[string]interface{}{
			"name":        s.Name,
			"entry_point": s.EntryPoint,
			"args":        s.Args,
		},
	})
}

func (s StoredContractByName) isExecutableDeployItem() {}

// StoredVersionedContractByHash invokes a versioned contract through
// its package hash.
type StoredVersionedContractByHash struct {
	Hash       hash.Hash
	Version    *uint32
	EntryPoint string
	Args       *Args
}

// Bytes returns the byte encoding.
func (s StoredVersionedContractByHash) Bytes() []byte {
	out := append([]byte{deployItemTagStoredVersionedContractByHash}, s.Hash[:]...)
	out = append(out, optionalU32Bytes(s.Version)...)
	out = append(out, bytecodec.ToBytesString(s.EntryPoint)...)
	return append(out, s.Args.Bytes()...)
}

// ItemArgs returns the item's runtime arguments.
func (s StoredVersionedContractByHash) ItemArgs() *Args { return s.Args }

// MarshalJSON encodes the variant as a single-key object.
func (s StoredVersionedContractByHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"StoredVersionedContractByHash": map[string]interface{}{
			"hash":        s.Hash.String(),
			"version":     s.Version,
			"entry_point": s.EntryPoint,
			"args":        s.Args,
		},
	})
}

func (s StoredVersionedContractByHash) isExecutableDeployItem() {}

// StoredVersionedContractByName invokes a versioned contract through a
// named package.
type StoredVersionedContractByName struct {
	Name       string
	Version    *uint32
	EntryPoint string
	Args       *Args
}

// Bytes returns the byte encoding.
func (s StoredVersionedContractByName) Bytes() []byte {
	out := append([]byte{deployItemTagStoredVersionedContractByName}, bytecodec.ToBytesString(s.Name)...)
	out = append(out, optionalU32Bytes(s.Version)...)
	out = append(out, bytecodec.ToBytesString(s.EntryPoint)...)
	return append(out, s.Args.Bytes()...)
}

// ItemArgs returns the item's runtime arguments.
func (s StoredVersionedContractByName) ItemArgs() *Args { return s.Args }

// MarshalJSON encodes the variant as a single-key object.
func (s StoredVersionedContractByName) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"StoredVersionedContractByName": map[string]interface{}{
			"name":        s.Name,
			"version":     s.Version,
			"entry_point": s.EntryPoint,
			"args":        s.Args,
		},
	})
}

func (s StoredVersionedContractByName) isExecutableDeployItem() {}

// Transfer invokes the native transfer interface.
type Transfer struct {
	Args *Args
}

// Bytes returns the byte encoding.
func (t Transfer) Bytes() []byte {
	return append([]byte{deployItemTagTransfer}, t.Args.Bytes()...)
}

// ItemArgs returns the item's runtime arguments.
func (t Transfer) ItemArgs() *Args { return t.Args }

// MarshalJSON encodes the variant as a single-key object.
func (t Transfer) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"Transfer": map[string]interface{}{
			"args": t.Args,
		},
	})
}

func (t Transfer) isExecutableDeployItem() {}

// ExecutableDeployItemFromBytes decodes an item from the front of data
// and returns the remainder.
func ExecutableDeployItemFromBytes(data []byte) (ExecutableDeployItem, []byte, error) {
	tag, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return nil, nil, err
	}
	switch tag {
	case deployItemTagModuleBytes:
		var m ModuleBytes
		if m.ModuleBytes, rest, err = bytecodec.FromBytesBytes(rest); err != nil {
			return nil, nil, err
		}
		if m.Args, rest, err = ArgsFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return m, rest, nil
	case deployItemTagStoredContractByHash:
		var s StoredContractByHash
		raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(s.Hash[:], raw)
		if s.EntryPoint, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if s.Args, rest, err = ArgsFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	case deployItemTagStoredContractByName:
		var s StoredContractByName
		if s.Name, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if s.EntryPoint, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if s.Args, rest, err = ArgsFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	case deployItemTagStoredVersionedContractByHash:
		var s StoredVersionedContractByHash
		raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(s.Hash[:], raw)
		if s.Version, rest, err = optionalU32FromBytes(rest); err != nil {
			return nil, nil, err
		}
		if s.EntryPoint, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if s.Args, rest, err = ArgsFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	case deployItemTagStoredVersionedContractByName:
		var s StoredVersionedContractByName
		if s.Name, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if s.Version, rest, err = optionalU32FromBytes(rest); err != nil {
			return nil, nil, err
		}
		if s.EntryPoint, rest, err = bytecodec.FromBytesString(rest); err != nil {
			return nil, nil, err
		}
		if s.Args, rest, err = ArgsFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return s, rest, nil
	case deployItemTagTransfer:
		var t Transfer
		if t.Args, rest, err = ArgsFromBytes(rest); err != nil {
			return nil, nil, err
		}
		return t, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: deploy item tag %d", ErrUnknownVariantTag, tag)
	}
}

// ExecutableDeployItemFromJSON decodes an item from its single-key
// JSON object form.
func ExecutableDeployItemFromJSON(data []byte) (ExecutableDeployItem, error) {
	key, raw, err := singleKey(data)
	if err != nil {
		return nil, err
	}

	var body struct {
		ModuleBytes string          `json:"module_bytes"`
		Hash        string          `json:"hash"`
		Name        string          `json:"name"`
		Version     *uint32         `json:"version"`
		EntryPoint  string          `json:"entry_point"`
		Args        json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	args := NewArgs()
	if body.Args != nil {
		if err := json.Unmarshal(body.Args, args); err != nil {
			return nil, err
		}
	}

	switch key {
	case "ModuleBytes":
		mod, err := hex.DecodeString(body.ModuleBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: module bytes: %v", ErrMalformedTransaction, err)
		}
		return ModuleBytes{ModuleBytes: mod, Args: args}, nil
	case "StoredContractByHash":
		item := StoredContractByHash{EntryPoint: body.EntryPoint, Args: args}
		if err := item.Hash.UnmarshalHex(body.Hash); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return item, nil
	case "StoredContractByName":
		return StoredContractByName{Name: body.Name, EntryPoint: body.EntryPoint, Args: args}, nil
	case "StoredVersionedContractByHash":
		item := StoredVersionedContractByHash{Version: body.Version, EntryPoint: body.EntryPoint, Args: args}
		if err := item.Hash.UnmarshalHex(body.Hash); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
		}
		return item, nil
	case "StoredVersionedContractByName":
		return StoredVersionedContractByName{Name: body.Name, Version: body.Version, EntryPoint: body.EntryPoint, Args: args}, nil
	case "Transfer":
		return Transfer{Args: args}, nil
	default:
		return nil, fmt.Errorf("%w: deploy item %q", ErrUnknownVariantTag, key)
	}
}

// NewStandardPayment returns the conventional payment item: empty
// module bytes with the payment amount argument.
func NewStandardPayment(amount *quantity.Quantity) ModuleBytes {
	args := NewArgs().MustInsert("amount", clvalue.NewU512(amount))
	return ModuleBytes{Args: args}
}

// NewTransferSession returns a native transfer session item moving the
// given amount to the target account, with an optional transfer id.
func NewTransferSession(amount *quantity.Quantity, target signature.PublicKey, id *uint64) Transfer {
	args := NewArgs().
		MustInsert("amount", clvalue.NewU512(amount)).
		MustInsert("target", clvalue.NewPublicKey(target))
	if id != nil {
		args.MustInsert("id", clvalue.NewSome(clvalue.U64(*id)))
	} else {
		args.MustInsert("id", clvalue.NewNone(cltype.U64))
	}
	return Transfer{Args: args}
}

// DeployHeader is the signed portion of a deploy. It commits to the
// payment and session items through the body hash; its own hash is the
// deploy hash.
type DeployHeader struct {
	Account      signature.PublicKey `json:"account"`
	Timestamp    Timestamp           `json:"timestamp"`
	TTL          Duration            `json:"ttl"`
	GasPrice     uint64              `json:"gas_price"`
	BodyHash     hash.Hash           `json:"body_hash"`
	Dependencies []hash.Hash         `json:"dependencies"`
	ChainName    string              `json:"chain_name"`
}

// Bytes returns the canonical byte encoding: account, timestamp, ttl,
// gas price, body hash, dependencies, chain name, in that order.
func (h *DeployHeader) Bytes() []byte {
	out := h.Account.Bytes()
	out = append(out, h.Timestamp.Bytes()...)
	out = append(out, h.TTL.Bytes()...)
	out = append(out, bytecodec.ToBytesU64(h.GasPrice)...)
	out = append(out, h.BodyHash[:]...)
	out = append(out, bytecodec.ToBytesU32(uint32(len(h.Dependencies)))...)
	for _, dep := range h.Dependencies {
		out = append(out, dep[:]...)
	}
	return append(out, bytecodec.ToBytesString(h.ChainName)...)
}

// Hash returns the deploy hash.
func (h *DeployHeader) Hash() hash.Hash {
	return hash.NewFromBytes(h.Bytes())
}

// DeployHeaderFromBytes decodes a header from the front of data and
// returns the remainder.
func DeployHeaderFromBytes(data []byte) (*DeployHeader, []byte, error) {
	var h DeployHeader
	var err error
	rest := data
	if h.Account, rest, err = signature.FromBytes(rest); err != nil {
		return nil, nil, err
	}
	if h.Timestamp, rest, err = TimestampFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if h.TTL, rest, err = DurationFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if h.GasPrice, rest, err = bytecodec.FromBytesU64(rest); err != nil {
		return nil, nil, err
	}
	raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
	if err != nil {
		return nil, nil, err
	}
	copy(h.BodyHash[:], raw)
	count, rest, err := bytecodec.FromBytesU32(rest)
	if err != nil {
		return nil, nil, err
	}
	for i := uint32(0); i < count; i++ {
		var dep hash.Hash
		raw, rest, err = bytecodec.TakeBytes(rest, hash.Size)
		if err != nil {
			return nil, nil, err
		}
		copy(dep[:], raw)
		h.Dependencies = append(h.Dependencies, dep)
	}
	if h.ChainName, rest, err = bytecodec.FromBytesString(rest); err != nil {
		return nil, nil, err
	}
	return &h, rest, nil
}

// Deploy is a signed legacy era transaction with separate payment and
// session items.
type Deploy struct {
	Hash      hash.Hash
	Header    *DeployHeader
	Payment   ExecutableDeployItem
	Session   ExecutableDeployItem
	Approvals []Approval
}

// deployBodyHash computes the body hash over the payment and session
// item bytes.
func deployBodyHash(payment, session ExecutableDeployItem) hash.Hash {
	return hash.NewFromBytes(payment.Bytes(), session.Bytes())
}

// NewDeploy constructs an unsigned deploy, computing the header's body
// hash and the deploy hash.
func NewDeploy(header *DeployHeader, payment, session ExecutableDeployItem) *Deploy {
	header.BodyHash = deployBodyHash(payment, session)
	return &Deploy{
		Hash:    header.Hash(),
		Header:  header,
		Payment: payment,
		Session: session,
	}
}

// Sign appends an approval by the given signer over the deploy hash.
func (d *Deploy) Sign(signer signature.Signer) error {
	approval, err := NewApproval(signer, d.Hash[:])
	if err != nil {
		return err
	}
	d.Approvals = append(d.Approvals, approval)
	return nil
}

// Validate checks the body hash and deploy hash commitments and every
// approval signature, aggregating all failures.
func (d *Deploy) Validate() error {
	var errs *multierror.Error

	bodyHash := deployBodyHash(d.Payment, d.Session)
	if !d.Header.BodyHash.Equal(&bodyHash) {
		errs = multierror.Append(errs, fmt.Errorf("%w: have %s, computed %s", ErrInvalidBodyHash, d.Header.BodyHash, bodyHash))
	}
	computed := d.Header.Hash()
	if !d.Hash.Equal(&computed) {
		errs = multierror.Append(errs, fmt.Errorf("%w: have %s, computed %s", ErrInvalidDeployHash, d.Hash, computed))
	}
	for i, approval := range d.Approvals {
		if !approval.Verify(d.Hash[:]) {
			errs = multierror.Append(errs, fmt.Errorf("%w: approval %d by %s", ErrInvalidApprovalSignature, i, approval.Signer))
		}
	}
	return errs.ErrorOrNil()
}

// Bytes returns the canonical byte encoding: header, hash, payment,
// session, approvals, concatenated in that order.
func (d *Deploy) Bytes() []byte {
	out := d.Header.Bytes()
	out = append(out, d.Hash[:]...)
	out = append(out, d.Payment.Bytes()...)
	out = append(out, d.Session.Bytes()...)
	return append(out, approvalsBytes(d.Approvals)...)
}

// DeployFromBytes decodes and validates a deploy from the front of
// data and returns the remainder.
func DeployFromBytes(data []byte) (*Deploy, []byte, error) {
	var d Deploy
	var err error
	rest := data
	if d.Header, rest, err = DeployHeaderFromBytes(rest); err != nil {
		return nil, nil, err
	}
	raw, rest, err := bytecodec.TakeBytes(rest, hash.Size)
	if err != nil {
		return nil, nil, err
	}
	copy(d.Hash[:], raw)
	if d.Payment, rest, err = ExecutableDeployItemFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if d.Session, rest, err = ExecutableDeployItemFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if d.Approvals, rest, err = approvalsFromBytes(rest); err != nil {
		return nil, nil, err
	}
	if err = d.Validate(); err != nil {
		return nil, nil, err
	}
	return &d, rest, nil
}

// deployJSON is the JSON wire form of a signed deploy.
type deployJSON struct {
	Hash      hash.Hash       `json:"hash"`
	Header    *DeployHeader   `json:"header"`
	Payment   json.RawMessage `json:"payment"`
	Session   json.RawMessage `json:"session"`
	Approvals []Approval      `json:"approvals"`
}

// MarshalJSON encodes the deploy for the JSON wire.
func (d *Deploy) MarshalJSON() ([]byte, error) {
	payment, err := json.Marshal(d.Payment)
	if err != nil {
		return nil, err
	}
	session, err := json.Marshal(d.Session)
	if err != nil {
		return nil, err
	}
	return json.Marshal(deployJSON{
		Hash:      d.Hash,
		Header:    d.Header,
		Payment:   payment,
		Session:   session,
		Approvals: d.Approvals,
	})
}

// UnmarshalJSON decodes and validates a deploy from the JSON wire.
func (d *Deploy) UnmarshalJSON(data []byte) error {
	var raw deployJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if raw.Header == nil {
		return fmt.Errorf("%w: missing header", ErrMalformedTransaction)
	}
	payment, err := ExecutableDeployItemFromJSON(raw.Payment)
	if err != nil {
		return err
	}
	session, err := ExecutableDeployItemFromJSON(raw.Session)
	if err != nil {
		return err
	}
	decoded := Deploy{
		Hash:      raw.Hash,
		Header:    raw.Header,
		Payment:   payment,
		Session:   session,
		Approvals: raw.Approvals,
	}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*d = decoded
	return nil
}
