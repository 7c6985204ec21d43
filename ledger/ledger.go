// Package ledger implements a fungible-token ledger: a fixed total supply
// of divisible units tracked across accounts, with transfers and delegated
// spending rights (allowances).
//
// The ledger itself is a synchronous state machine. It assumes a hosting
// environment that authenticates callers (ExecutionContext), serializes
// invocations, and delivers notifications (EventSink); it implements
// neither. Every operation either commits fully, emitting at most one
// event, or fails with a recoverable error and no state change.
package ledger

// Ledger exposes the token protocol over an owned State, consulting the
// ExecutionContext for the caller identity and the contract-account
// predicate, and emitting notifications to the EventSink.
type Ledger struct {
	state *State
	exec  ExecutionContext
	sink  EventSink
}

// New wraps a State with its two collaborators. A nil sink discards events.
func New(state *State, exec ExecutionContext, sink EventSink) *Ledger {
	if sink == nil {
		sink = NopSink{}
	}
	return &Ledger{state: state, exec: exec, sink: sink}
}

// State returns the underlying ledger state.
func (l *Ledger) State() *State {
	return l.state
}

// TotalSupply returns the fixed total supply.
func (l *Ledger) TotalSupply() Amount {
	return l.state.TotalSupply()
}

// BalanceOf returns the account's balance, zero if never credited.
func (l *Ledger) BalanceOf(owner Identity) Amount {
	return l.state.BalanceOf(owner)
}

// Allowance returns the remaining amount spender may move from owner.
func (l *Ledger) Allowance(owner, spender Identity) Amount {
	return l.state.Allowance(owner, spender)
}

// Transfer moves value from the caller to another account.
func (l *Ledger) Transfer(to Identity, value Amount) error {
	ev, err := l.state.Transfer(l.exec.Caller(), to, value, l.exec.IsContract)
	if err != nil {
		return err
	}
	l.sink.Emit(ev)
	return nil
}

// TransferFrom moves value out of from's account using the caller's
// prior approval.
func (l *Ledger) TransferFrom(from, to Identity, value Amount) error {
	ev, err := l.state.TransferFrom(l.exec.Caller(), from, to, value, l.exec.IsContract)
	if err != nil {
		return err
	}
	l.sink.Emit(ev)
	return nil
}

// Approve sets spender's allowance over the caller's tokens.
func (l *Ledger) Approve(spender Identity, value Amount) error {
	ev, err := l.state.Approve(l.exec.Caller(), spender, value)
	if err != nil {
		return err
	}
	l.sink.Emit(ev)
	return nil
}

// IncreaseAllowance raises spender's allowance over the caller's tokens.
func (l *Ledger) IncreaseAllowance(spender Identity, added Amount) error {
	ev, err := l.state.IncreaseAllowance(l.exec.Caller(), spender, added)
	if err != nil {
		return err
	}
	l.sink.Emit(ev)
	return nil
}

// DecreaseAllowance lowers spender's allowance over the caller's tokens.
func (l *Ledger) DecreaseAllowance(spender Identity, subtracted Amount) error {
	ev, err := l.state.DecreaseAllowance(l.exec.Caller(), spender, subtracted)
	if err != nil {
		return err
	}
	l.sink.Emit(ev)
	return nil
}
