package types

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
)

// KeyTag is the variant tag of a global-state key.
type KeyTag uint8

const (
	// KeyTagAccount addresses an account by its account hash.
	KeyTagAccount KeyTag = 0
	// KeyTagHash addresses a stored contract by hash.
	KeyTagHash KeyTag = 1
	// KeyTagURef addresses an unforgeable reference.
	KeyTagURef KeyTag = 2
	// KeyTagTransfer addresses a transfer record.
	KeyTagTransfer KeyTag = 3
	// KeyTagDeployInfo addresses a deploy-info record.
	KeyTagDeployInfo KeyTag = 4
	// KeyTagEraInfo addresses an era-info record.
	KeyTagEraInfo KeyTag = 5
	// KeyTagBalance addresses a purse balance.
	KeyTagBalance KeyTag = 6
	// KeyTagDictionary addresses a dictionary item.
	KeyTagDictionary KeyTag = 9
)

// keyPrefixes maps string-form prefixes to key tags.
var keyPrefixes = []struct {
	prefix string
	tag    KeyTag
}{
	{"account-hash-", KeyTagAccount},
	{"hash-", KeyTagHash},
	{"transfer-", KeyTagTransfer},
	{"deploy-", KeyTagDeployInfo},
	{"era-", KeyTagEraInfo},
	{"balance-", KeyTagBalance},
	{"dictionary-", KeyTagDictionary},
}

var (
	_ encoding.TextMarshaler   = Key{}
	_ encoding.TextUnmarshaler = (*Key)(nil)
)

// Key is a tagged global-state key.
//
// All variants except URef and EraInfo carry a 32-byte address. URef
// carries a full URef, EraInfo a u64 era identifier.
type Key struct {
	Tag KeyTag

	Addr [32]byte // every variant but URef and EraInfo
	URef URef     // KeyTagURef only
	Era  uint64   // KeyTagEraInfo only
}

// NewAccountKey constructs an account key from an account hash.
func NewAccountKey(accountHash hash.Hash) Key {
	return Key{Tag: KeyTagAccount, Addr: accountHash}
}

// NewHashKey constructs a contract-hash key.
func NewHashKey(addr [32]byte) Key {
	return Key{Tag: KeyTagHash, Addr: addr}
}

// NewURefKey constructs a URef key.
func NewURefKey(uref URef) Key {
	return Key{Tag: KeyTagURef, URef: uref}
}

// NewEraInfoKey constructs an era-info key.
func NewEraInfoKey(era uint64) Key {
	return Key{Tag: KeyTagEraInfo, Era: era}
}

// NewBalanceKey constructs a purse-balance key.
func NewBalanceKey(purseAddr [32]byte) Key {
	return Key{Tag: KeyTagBalance, Addr: purseAddr}
}

// Bytes returns the canonical byte encoding: the tag byte followed by
// the variant payload.
func (k Key) Bytes() []byte {
	out := []byte{byte(k.Tag)}
	switch k.Tag {
	case KeyTagURef:
		return append(out, k.URef.Bytes()...)
	case KeyTagEraInfo:
		return append(out, bytecodec.ToBytesU64(k.Era)...)
	default:
		return append(out, k.Addr[:]...)
	}
}

// String returns the prefixed wire string form.
func (k Key) String() string {
	switch k.Tag {
	case KeyTagURef:
		return k.URef.String()
	case KeyTagEraInfo:
		return fmt.Sprintf("era-%d", k.Era)
	default:
		for _, p := range keyPrefixes {
			if p.tag == k.Tag {
				return p.prefix + hex.EncodeToString(k.Addr[:])
			}
		}
		return fmt.Sprintf("[unknown key tag %d]-%s", k.Tag, hex.EncodeToString(k.Addr[:]))
	}
}

// Equal compares vs another key for equality.
func (k Key) Equal(cmp Key) bool {
	if k.Tag != cmp.Tag {
		return false
	}
	switch k.Tag {
	case KeyTagURef:
		return k.URef == cmp.URef
	case KeyTagEraInfo:
		return k.Era == cmp.Era
	default:
		return k.Addr == cmp.Addr
	}
}

// MarshalText encodes a Key into its wire string form.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a text marshaled Key.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := KeyFromString(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KeyFromString parses the prefixed wire string form of a key.
func KeyFromString(s string) (Key, error) {
	if strings.HasPrefix(s, "uref-") {
		u, err := URefFromString(s)
		if err != nil {
			return Key{}, err
		}
		return NewURefKey(u), nil
	}
	if rem, ok := strings.CutPrefix(s, "era-"); ok {
		var era uint64
		if _, err := fmt.Sscanf(rem, "%d", &era); err != nil {
			return Key{}, fmt.Errorf("%w: bad era", ErrMalformedKey)
		}
		return NewEraInfoKey(era), nil
	}
	for _, p := range keyPrefixes {
		rem, ok := strings.CutPrefix(s, p.prefix)
		if !ok || p.tag == KeyTagEraInfo {
			continue
		}
		raw, err := hex.DecodeString(rem)
		if err != nil || len(raw) != 32 {
			return Key{}, fmt.Errorf("%w: bad address for %q", ErrMalformedKey, p.prefix)
		}
		k := Key{Tag: p.tag}
		copy(k.Addr[:], raw)
		return k, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKeyTag, s)
}

// KeyFromBytes decodes a key from the front of data and returns the
// remainder.
func KeyFromBytes(data []byte) (Key, []byte, error) {
	tagByte, rest, err := bytecodec.FromBytesU8(data)
	if err != nil {
		return Key{}, nil, err
	}
	tag := KeyTag(tagByte)

	switch tag {
	case KeyTagURef:
		u, rest, err := URefFromBytes(rest)
		if err != nil {
			return Key{}, nil, err
		}
		return NewURefKey(u), rest, nil
	case KeyTagEraInfo:
		era, rest, err := bytecodec.FromBytesU64(rest)
		if err != nil {
			return Key{}, nil, err
		}
		return NewEraInfoKey(era), rest, nil
	case KeyTagAccount, KeyTagHash, KeyTagTransfer, KeyTagDeployInfo, KeyTagBalance, KeyTagDictionary:
		raw, rest, err := bytecodec.TakeBytes(rest, 32)
		if err != nil {
			return Key{}, nil, err
		}
		k := Key{Tag: tag}
		copy(k.Addr[:], raw)
		return k, rest, nil
	default:
		return Key{}, nil, fmt.Errorf("%w: %d", ErrUnknownKeyTag, tagByte)
	}
}
