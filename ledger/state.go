package ledger

import (
	"fmt"
)

type allowanceKey struct {
	owner   Identity
	spender Identity
}

// State is the owned ledger state: the fixed total supply plus the balance
// and allowance mappings. Absence of a key reads as zero. State methods are
// total functions of (current state, explicit caller, arguments): they
// validate completely before mutating, so a failed operation leaves the
// state untouched.
type State struct {
	totalSupply Amount
	balances    map[Identity]Amount
	allowances  map[allowanceKey]Amount
}

// NewState creates a ledger state with the whole supply credited to the
// creator, and returns the construction Transfer event (From absent,
// To = creator). The zero sentinel is not a valid creator.
func NewState(creator Identity, totalSupply Amount) (*State, TransferEvent, error) {
	if creator.IsZero() {
		return nil, TransferEvent{}, ErrZeroRecipientAddress
	}
	s := &State{
		totalSupply: totalSupply,
		balances:    make(map[Identity]Amount),
		allowances:  make(map[allowanceKey]Amount),
	}
	s.balances[creator] = totalSupply
	return s, TransferEvent{To: &creator, Value: totalSupply}, nil
}

// TotalSupply returns the fixed total supply.
func (s *State) TotalSupply() Amount {
	return s.totalSupply
}

// BalanceOf returns the account's balance, zero if never credited.
func (s *State) BalanceOf(owner Identity) Amount {
	return s.balances[owner]
}

// Allowance returns the remaining amount spender may move from owner,
// zero if never set.
func (s *State) Allowance(owner, spender Identity) Amount {
	return s.allowances[allowanceKey{owner: owner, spender: spender}]
}

// NumAccounts returns the number of accounts that have ever been credited.
func (s *State) NumAccounts() int {
	return len(s.balances)
}

// Transfer moves value from the caller's account to another. The check
// order is a contract: insufficient balance wins over a zero recipient.
func (s *State) Transfer(from, to Identity, value Amount, isContract func(Identity) bool) (TransferEvent, error) {
	if s.BalanceOf(from).Less(value) {
		return TransferEvent{}, ErrInsufficientBalance
	}
	if from.IsZero() {
		return TransferEvent{}, ErrZeroSenderAddress
	}
	if to.IsZero() {
		return TransferEvent{}, ErrZeroRecipientAddress
	}
	if isContract != nil && isContract(to) {
		return TransferEvent{}, fmt.Errorf("%w: recipient is a contract account", ErrSafeTransferCheck)
	}
	if err := s.move(from, to, value); err != nil {
		return TransferEvent{}, err
	}
	return TransferEvent{From: &from, To: &to, Value: value}, nil
}

// TransferFrom moves value out of from's account using spender's prior
// approval. The allowance decrement and the balance movement apply
// together or not at all.
func (s *State) TransferFrom(spender, from, to Identity, value Amount, isContract func(Identity) bool) (TransferEvent, error) {
	allowance := s.Allowance(from, spender)
	if allowance.Less(value) {
		return TransferEvent{}, ErrInsufficientAllowance
	}
	if s.BalanceOf(from).Less(value) {
		return TransferEvent{}, ErrInsufficientBalance
	}
	if from.IsZero() {
		return TransferEvent{}, ErrZeroSenderAddress
	}
	if to.IsZero() {
		return TransferEvent{}, ErrZeroRecipientAddress
	}
	if isContract != nil && isContract(to) {
		return TransferEvent{}, fmt.Errorf("%w: recipient is a contract account", ErrSafeTransferCheck)
	}
	remaining, err := allowance.Sub(value)
	if err != nil {
		return TransferEvent{}, ErrInsufficientAllowance
	}
	if err := s.move(from, to, value); err != nil {
		return TransferEvent{}, err
	}
	s.allowances[allowanceKey{owner: from, spender: spender}] = remaining
	return TransferEvent{From: &from, To: &to, Value: value}, nil
}

// Approve sets (not adds) spender's allowance over owner's tokens,
// overwriting any prior value. It performs no zero-identity checks and
// cannot fail; approve after approve silently discards the previous
// allowance.
func (s *State) Approve(owner, spender Identity, value Amount) (ApprovalEvent, error) {
	s.allowances[allowanceKey{owner: owner, spender: spender}] = value
	return ApprovalEvent{Owner: owner, Spender: spender, Value: value}, nil
}

// IncreaseAllowance raises spender's allowance by added. A zero spender is
// rejected with the recipient error kind, matching the source contract.
func (s *State) IncreaseAllowance(owner, spender Identity, added Amount) (ApprovalEvent, error) {
	allowance := s.Allowance(owner, spender)
	if owner.IsZero() {
		return ApprovalEvent{}, ErrZeroSenderAddress
	}
	if spender.IsZero() {
		return ApprovalEvent{}, ErrZeroRecipientAddress
	}
	raised, err := allowance.Add(added)
	if err != nil {
		return ApprovalEvent{}, err
	}
	s.allowances[allowanceKey{owner: owner, spender: spender}] = raised
	return ApprovalEvent{Owner: owner, Spender: spender, Value: raised}, nil
}

// DecreaseAllowance lowers spender's allowance by subtracted.
func (s *State) DecreaseAllowance(owner, spender Identity, subtracted Amount) (ApprovalEvent, error) {
	allowance := s.Allowance(owner, spender)
	if allowance.Less(subtracted) {
		return ApprovalEvent{}, ErrInsufficientAllowance
	}
	if owner.IsZero() {
		return ApprovalEvent{}, ErrZeroSenderAddress
	}
	if spender.IsZero() {
		return ApprovalEvent{}, ErrZeroRecipientAddress
	}
	lowered, err := allowance.Sub(subtracted)
	if err != nil {
		return ApprovalEvent{}, ErrInsufficientAllowance
	}
	s.allowances[allowanceKey{owner: owner, spender: spender}] = lowered
	return ApprovalEvent{Owner: owner, Spender: spender, Value: lowered}, nil
}

// move debits from and credits to, applying both writes or neither.
func (s *State) move(from, to Identity, value Amount) error {
	debited, err := s.BalanceOf(from).Sub(value)
	if err != nil {
		return ErrInsufficientBalance
	}
	if from == to {
		// Debit and credit cancel out.
		return nil
	}
	credited, err := s.BalanceOf(to).Add(value)
	if err != nil {
		return err
	}
	s.balances[from] = debited
	s.balances[to] = credited
	return nil
}

// CheckInvariants verifies the conservation law (sum of balances equals
// total supply) and that the zero sentinel holds nothing.
func (s *State) CheckInvariants() error {
	sum := NewAmount(0)
	for owner, bal := range s.balances {
		if owner.IsZero() && !bal.IsZero() {
			return fmt.Errorf("%w: zero identity holds %s units", ErrCustom, bal)
		}
		var err error
		sum, err = sum.Add(bal)
		if err != nil {
			return fmt.Errorf("%w: balance sum overflow", ErrCustom)
		}
	}
	if sum.Cmp(s.totalSupply) != 0 {
		return fmt.Errorf("%w: conservation violated: balances sum to %s, supply is %s",
			ErrCustom, sum, s.totalSupply)
	}
	return nil
}
