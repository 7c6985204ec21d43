package host_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-tokenledger/host"
	"github.com/pflow-xyz/go-tokenledger/journal"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

func testIdentity(b byte) ledger.Identity {
	var id ledger.Identity
	id[ledger.IdentityLen-1] = b
	return id
}

func testConfig(t *testing.T) host.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := host.DefaultConfig()
	cfg.JournalPath = filepath.Join(dir, "ledger.db")
	cfg.SnapshotPath = filepath.Join(dir, "ledger.snapshot")
	cfg.Creator = testIdentity(1)
	cfg.TotalSupply = ledger.NewAmount(1000)
	return cfg
}

func TestHostLifecycle(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol, dave := testIdentity(1), testIdentity(2), testIdentity(3), testIdentity(4)
	cfg := testConfig(t)

	h, err := host.Create(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := h.Transfer(ctx, alice, bob, ledger.NewAmount(300)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := h.Approve(ctx, alice, carol, ledger.NewAmount(100)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if err := h.TransferFrom(ctx, carol, alice, dave, ledger.NewAmount(60)); err != nil {
		t.Fatalf("TransferFrom failed: %v", err)
	}

	if got := h.BalanceOf(alice); got.Cmp(ledger.NewAmount(640)) != 0 {
		t.Errorf("BalanceOf(alice) = %s, want 640", got)
	}
	if got := h.Allowance(alice, carol); got.Cmp(ledger.NewAmount(40)) != 0 {
		t.Errorf("Allowance(alice, carol) = %s, want 40", got)
	}

	records, err := h.Events(ctx, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	// Genesis transfer, transfer, approval, transfer.
	if len(records) != 4 {
		t.Fatalf("journal has %d records, want 4", len(records))
	}
	if records[0].Type != ledger.EventTypeTransfer {
		t.Errorf("genesis record type = %s, want Transfer", records[0].Type)
	}
	var genesis ledger.TransferEvent
	if err := records[0].Decode(&genesis); err != nil {
		t.Fatalf("decode genesis: %v", err)
	}
	if genesis.From != nil {
		t.Errorf("genesis From = %v, want absent", genesis.From)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen from the checkpoint; state and journal position survive.
	reopened, err := host.Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()

	if got := reopened.BalanceOf(dave); got.Cmp(ledger.NewAmount(60)) != 0 {
		t.Errorf("BalanceOf(dave) after reopen = %s, want 60", got)
	}
	if err := reopened.Transfer(ctx, dave, bob, ledger.NewAmount(10)); err != nil {
		t.Fatalf("Transfer after reopen failed: %v", err)
	}
	records, err = reopened.Events(ctx, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("journal has %d records after reopen, want 5", len(records))
	}
}

func TestHostRejectionLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	eve, bob := testIdentity(5), testIdentity(2)

	h, err := host.Create(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer h.Close()

	if err := h.Transfer(ctx, eve, bob, ledger.NewAmount(1)); !errors.Is(err, ledger.ErrInsufficientBalance) {
		t.Fatalf("Transfer = %v, want ErrInsufficientBalance", err)
	}

	records, err := h.Events(ctx, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("journal has %d records, want only genesis", len(records))
	}
}

func TestHostContractRecipient(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	vault := testIdentity(9)
	cfg.Contracts = []ledger.Identity{vault}

	h, err := host.Create(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer h.Close()

	if err := h.Transfer(ctx, cfg.Creator, vault, ledger.NewAmount(10)); !errors.Is(err, ledger.ErrSafeTransferCheck) {
		t.Fatalf("Transfer = %v, want ErrSafeTransferCheck", err)
	}

	h.Registry().Unregister(vault)
	if err := h.Transfer(ctx, cfg.Creator, vault, ledger.NewAmount(10)); err != nil {
		t.Errorf("Transfer after unregister failed: %v", err)
	}
}

func TestHostPublisher(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	h, err := host.Create(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer h.Close()

	var published []*journal.Record
	h.SetPublisher(func(r *journal.Record) { published = append(published, r) })

	if err := h.Transfer(ctx, cfg.Creator, testIdentity(2), ledger.NewAmount(5)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published %d records, want 1", len(published))
	}
	if published[0].Type != ledger.EventTypeTransfer {
		t.Errorf("published type = %s, want Transfer", published[0].Type)
	}
}

func TestCreateTwiceFails(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	h, err := host.Create(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	h.Close()

	if _, err := host.Create(ctx, cfg, zerolog.Nop()); !errors.Is(err, host.ErrAlreadyInitialized) {
		t.Errorf("second Create = %v, want ErrAlreadyInitialized", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.toml")
	body := `
journal_path = "token.db"
snapshot_path = "token.snapshot"
stream = "main-token"
total_supply = "1000000"
creator = "0x0000000000000000000000000000000000000000000000000000000000000001"
contracts = ["0x0000000000000000000000000000000000000000000000000000000000000009"]
listen_addr = ":9000"
check_invariants = false
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := host.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Stream != "main-token" {
		t.Errorf("Stream = %q, want main-token", cfg.Stream)
	}
	if cfg.TotalSupply.Cmp(ledger.NewAmount(1_000_000)) != 0 {
		t.Errorf("TotalSupply = %s, want 1000000", cfg.TotalSupply)
	}
	if cfg.Creator != testIdentity(1) {
		t.Errorf("Creator = %s, want identity 1", cfg.Creator)
	}
	if len(cfg.Contracts) != 1 || cfg.Contracts[0] != testIdentity(9) {
		t.Errorf("Contracts = %v, want [identity 9]", cfg.Contracts)
	}
	if cfg.CheckInvariants {
		t.Error("CheckInvariants = true, want false")
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want :9000", cfg.ListenAddr)
	}

	if _, err := host.LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig accepted a missing file")
	}
}
