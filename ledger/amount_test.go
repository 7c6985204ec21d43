package ledger

import (
	"errors"
	"testing"
)

func TestAmountArithmetic(t *testing.T) {
	a, b := NewAmount(70), NewAmount(30)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum.Cmp(NewAmount(100)) != 0 {
		t.Errorf("70+30 = %s, want 100", sum)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if diff.Cmp(NewAmount(40)) != 0 {
		t.Errorf("70-30 = %s, want 40", diff)
	}

	if _, err := b.Sub(a); !errors.Is(err, ErrCustom) {
		t.Errorf("30-70 = %v, want underflow rejection", err)
	}

	max, err := ParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if err != nil {
		t.Fatalf("ParseAmount failed: %v", err)
	}
	if _, err := max.Add(NewAmount(1)); !errors.Is(err, ErrCustom) {
		t.Errorf("max+1 = %v, want overflow rejection", err)
	}
}

func TestAmountUint64(t *testing.T) {
	if got := NewAmount(70).Uint64(); got != 70 {
		t.Errorf("Uint64() = %d, want 70", got)
	}

	big, err := ParseAmount("18446744073709551616") // 2^64
	if err != nil {
		t.Fatalf("ParseAmount failed: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Uint64 on an oversized amount did not panic")
		}
	}()
	big.Uint64()
}

func TestAmountText(t *testing.T) {
	a, err := ParseAmount("340282366920938463463374607431768211456") // 2^128
	if err != nil {
		t.Fatalf("ParseAmount failed: %v", err)
	}
	text, err := a.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	var back Amount
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if back.Cmp(a) != 0 {
		t.Errorf("round trip = %s, want %s", back, a)
	}

	if _, err := ParseAmount("not-a-number"); err == nil {
		t.Error("ParseAmount accepted garbage")
	}
	if _, err := ParseAmount("-5"); err == nil {
		t.Error("ParseAmount accepted a negative value")
	}
}

func TestIdentityParse(t *testing.T) {
	id := ident(0xab)

	parsed, err := ParseIdentity(id.String())
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}
	if parsed != id {
		t.Errorf("round trip = %s, want %s", parsed, id)
	}

	if _, err := ParseIdentity("0xdeadbeef"); err == nil {
		t.Error("ParseIdentity accepted a short identity")
	}
	if !ZeroIdentity.IsZero() {
		t.Error("ZeroIdentity.IsZero() = false")
	}
	if id.IsZero() {
		t.Error("non-zero identity reported as zero")
	}
}
