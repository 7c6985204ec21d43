package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// IdentityLen is the fixed width of an account identifier in bytes.
const IdentityLen = 32

// Identity is an opaque fixed-width account identifier. The all-zero value
// is a sentinel meaning "no valid owner" and is never accepted as a sender
// or recipient.
type Identity [IdentityLen]byte

// ZeroIdentity is the reserved sentinel identifier.
var ZeroIdentity Identity

// IdentityFromBytes builds an Identity from a raw byte slice.
func IdentityFromBytes(b []byte) (Identity, error) {
	var id Identity
	if len(b) != IdentityLen {
		return id, fmt.Errorf("ledger: identity must be %d bytes, got %d", IdentityLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// ParseIdentity parses a hex-encoded identity, with or without a 0x prefix.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Identity{}, fmt.Errorf("ledger: parse identity: %w", err)
	}
	return IdentityFromBytes(b)
}

// IsZero reports whether the identity is the reserved zero sentinel.
func (id Identity) IsZero() bool {
	return id == ZeroIdentity
}

// String returns the 0x-prefixed hex encoding of the identity.
func (id Identity) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Bytes returns a copy of the raw identifier bytes.
func (id Identity) Bytes() []byte {
	b := make([]byte, IdentityLen)
	copy(b, id[:])
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
