package ledger

import "errors"

// Every rejection is an expected, recoverable outcome returned to the
// caller. No operation panics, and a failed operation leaves state
// untouched and emits no event.
var (
	// ErrInsufficientBalance means the sender's balance cannot cover the value.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	// ErrInsufficientAllowance means the spender's remaining allowance cannot
	// cover the value.
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")
	// ErrZeroSenderAddress means the zero sentinel was used in a sender role.
	ErrZeroSenderAddress = errors.New("ledger: zero sender address")
	// ErrZeroRecipientAddress means the zero sentinel was used in a recipient
	// (or spender) role.
	ErrZeroRecipientAddress = errors.New("ledger: zero recipient address")
	// ErrSafeTransferCheck means the recipient is a programmatic account and
	// is rejected. The wrapped message carries the reason.
	ErrSafeTransferCheck = errors.New("ledger: safe transfer check failed")
	// ErrCustom is the extension point for implementation-specific
	// rejections not covered by the kinds above.
	ErrCustom = errors.New("ledger: operation rejected")
)
