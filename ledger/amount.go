package ledger

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
)

// Amount is an unsigned fixed-width quantity of token units. All arithmetic
// is checked: operations that would wrap return an error instead.
type Amount struct {
	u uint256.Int
}

// NewAmount builds an Amount from a uint64.
func NewAmount(v uint64) Amount {
	var a Amount
	a.u.SetUint64(v)
	return a
}

// ParseAmount parses a decimal string into an Amount.
func ParseAmount(s string) (Amount, error) {
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("ledger: parse amount %q: %w", s, err)
	}
	return Amount{u: *u}, nil
}

// Add returns a+b, or an error if the sum overflows.
func (a Amount) Add(b Amount) (Amount, error) {
	var sum Amount
	if _, overflow := sum.u.AddOverflow(&a.u, &b.u); overflow {
		return Amount{}, fmt.Errorf("%w: amount overflow", ErrCustom)
	}
	return sum, nil
}

// Sub returns a-b, or an error if b exceeds a.
func (a Amount) Sub(b Amount) (Amount, error) {
	var diff Amount
	if _, underflow := diff.u.SubOverflow(&a.u, &b.u); underflow {
		return Amount{}, fmt.Errorf("%w: amount underflow", ErrCustom)
	}
	return diff, nil
}

// Cmp compares a and b, returning -1, 0, or 1.
func (a Amount) Cmp(b Amount) int {
	return a.u.Cmp(&b.u)
}

// Less reports whether a < b.
func (a Amount) Less(b Amount) bool {
	return a.u.Lt(&b.u)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.u.IsZero()
}

// Uint64 returns the amount as a uint64. It panics if the value does not fit;
// callers that cannot guarantee the range should use String instead.
func (a Amount) Uint64() uint64 {
	if !a.u.IsUint64() {
		panic("ledger: amount does not fit in uint64")
	}
	return a.u.Uint64()
}

// String returns the decimal representation of the amount.
func (a Amount) String() string {
	return a.u.Dec()
}

// MarshalText implements encoding.TextMarshaler as a decimal string.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler from a decimal string.
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalCBOR encodes the amount as a minimal big-endian byte string.
func (a Amount) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a.u.Bytes())
}

// UnmarshalCBOR decodes a big-endian byte string.
func (a *Amount) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("ledger: decode amount: %w", err)
	}
	if len(b) > 32 {
		return fmt.Errorf("ledger: decode amount: %d bytes exceeds 256 bits", len(b))
	}
	a.u.SetBytes(b)
	return nil
}
