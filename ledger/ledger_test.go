package ledger

import (
	"errors"
	"testing"
)

// testContext is a fake hosting environment for exercising the protocol
// surface: a settable caller and a set of contract accounts.
type testContext struct {
	caller    Identity
	contracts map[Identity]bool
}

func (c *testContext) Caller() Identity            { return c.caller }
func (c *testContext) IsContract(id Identity) bool { return c.contracts[id] }

func TestLedgerScenario(t *testing.T) {
	alice, bob, carol, dave := ident(1), ident(2), ident(3), ident(4)

	exec := &testContext{caller: alice}
	rec := &EventRecorder{}
	st, genesis, err := NewState(alice, NewAmount(1000))
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	rec.Emit(genesis)
	l := New(st, exec, rec)

	if got := l.TotalSupply(); got.Cmp(NewAmount(1000)) != 0 {
		t.Errorf("TotalSupply() = %s, want 1000", got)
	}
	if got := l.BalanceOf(alice); got.Cmp(NewAmount(1000)) != 0 {
		t.Errorf("BalanceOf(alice) = %s, want 1000", got)
	}

	if err := l.Transfer(bob, NewAmount(300)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if got := l.BalanceOf(alice); got.Cmp(NewAmount(700)) != 0 {
		t.Errorf("BalanceOf(alice) = %s, want 700", got)
	}
	if got := l.BalanceOf(bob); got.Cmp(NewAmount(300)) != 0 {
		t.Errorf("BalanceOf(bob) = %s, want 300", got)
	}

	if err := l.Approve(carol, NewAmount(100)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	exec.caller = carol
	if err := l.TransferFrom(alice, dave, NewAmount(60)); err != nil {
		t.Fatalf("TransferFrom failed: %v", err)
	}
	if got := l.Allowance(alice, carol); got.Cmp(NewAmount(40)) != 0 {
		t.Errorf("Allowance(alice, carol) = %s, want 40", got)
	}
	if got := l.BalanceOf(alice); got.Cmp(NewAmount(640)) != 0 {
		t.Errorf("BalanceOf(alice) = %s, want 640", got)
	}
	if got := l.BalanceOf(dave); got.Cmp(NewAmount(60)) != 0 {
		t.Errorf("BalanceOf(dave) = %s, want 60", got)
	}

	// Genesis, two transfers, one approval.
	if len(rec.Events) != 4 {
		t.Fatalf("recorded %d events, want 4", len(rec.Events))
	}
	wantTypes := []string{EventTypeTransfer, EventTypeTransfer, EventTypeApproval, EventTypeTransfer}
	for i, want := range wantTypes {
		if got := rec.Events[i].Type(); got != want {
			t.Errorf("event %d type = %s, want %s", i, got, want)
		}
	}

	// A reset recorder collects only what follows.
	rec.Reset()
	exec.caller = bob
	if err := l.Transfer(dave, NewAmount(1)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if len(rec.Events) != 1 || rec.Events[0].Type() != EventTypeTransfer {
		t.Errorf("after reset recorded %d events, want the single transfer", len(rec.Events))
	}
}

func TestLedgerFailureEmitsNothing(t *testing.T) {
	alice, bob, eve := ident(1), ident(2), ident(5)

	exec := &testContext{caller: eve}
	rec := &EventRecorder{}
	st, _, _ := NewState(alice, NewAmount(1000))
	l := New(st, exec, rec)

	if err := l.Transfer(bob, NewAmount(1)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Transfer = %v, want ErrInsufficientBalance", err)
	}
	if !l.BalanceOf(eve).IsZero() {
		t.Errorf("BalanceOf(eve) = %s, want 0", l.BalanceOf(eve))
	}
	if len(rec.Events) != 0 {
		t.Errorf("recorded %d events after failed transfer, want 0", len(rec.Events))
	}
}

func TestLedgerRejectsContractRecipient(t *testing.T) {
	alice := ident(1)
	vault := ident(9)

	exec := &testContext{caller: alice, contracts: map[Identity]bool{vault: true}}
	rec := &EventRecorder{}
	st, _, _ := NewState(alice, NewAmount(1000))
	l := New(st, exec, rec)

	if err := l.Transfer(vault, NewAmount(10)); !errors.Is(err, ErrSafeTransferCheck) {
		t.Fatalf("Transfer = %v, want ErrSafeTransferCheck", err)
	}
	if len(rec.Events) != 0 {
		t.Errorf("recorded %d events after rejected transfer, want 0", len(rec.Events))
	}
}
