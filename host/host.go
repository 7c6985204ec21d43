// Package host is a reference hosting environment for the ledger: it
// authenticates nothing itself but carries an already-authenticated caller
// identity into each invocation, serializes invocations against the state,
// journals emitted events, and checkpoints state to disk.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-tokenledger/journal"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

// ErrAlreadyInitialized means Create found an existing journal stream.
var ErrAlreadyInitialized = errors.New("host: ledger already initialized")

// invocation is the per-call execution context handed to the core.
type invocation struct {
	caller   ledger.Identity
	registry *ContractRegistry
}

func (in invocation) Caller() ledger.Identity { return in.caller }

func (in invocation) IsContract(id ledger.Identity) bool { return in.registry.Contains(id) }

// Host owns a ledger state and its collaborators. One invocation owns the
// entire state for its duration; the mutex enforces that discipline.
type Host struct {
	mu       sync.Mutex
	cfg      Config
	state    *ledger.State
	registry *ContractRegistry
	store    journal.Store
	version  int
	publish  func(*journal.Record)
	log      zerolog.Logger
}

// Create builds a fresh ledger from cfg.Creator and cfg.TotalSupply,
// journals the construction event, and writes the first checkpoint.
func Create(ctx context.Context, cfg Config, log zerolog.Logger) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	state, genesis, err := ledger.NewState(cfg.Creator, cfg.TotalSupply)
	if err != nil {
		store.Close()
		return nil, err
	}
	rec, err := journal.NewRecord(cfg.Stream, genesis.Type(), genesis)
	if err != nil {
		store.Close()
		return nil, err
	}
	version, err := store.Append(ctx, cfg.Stream, -1, []*journal.Record{rec})
	if err != nil {
		store.Close()
		if errors.Is(err, journal.ErrConcurrencyConflict) {
			return nil, ErrAlreadyInitialized
		}
		return nil, fmt.Errorf("host: journal genesis: %w", err)
	}

	h := newHost(cfg, state, store, version, log)
	if err := h.writeSnapshot(); err != nil {
		store.Close()
		return nil, err
	}
	h.log.Info().Str("stream", cfg.Stream).
		Str("creator", cfg.Creator.String()).
		Str("total_supply", cfg.TotalSupply.String()).
		Msg("ledger created")
	return h, nil
}

// Open restores a hosted ledger from its checkpoint and journal.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SnapshotPath == "" {
		return nil, fmt.Errorf("host: open requires a snapshot_path")
	}
	data, err := os.ReadFile(cfg.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("host: read checkpoint: %w", err)
	}
	snap, err := ledger.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	state, err := ledger.RestoreState(snap)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	version, err := store.StreamVersion(ctx, cfg.Stream)
	if err != nil {
		store.Close()
		return nil, err
	}

	h := newHost(cfg, state, store, version, log)
	h.log.Info().Str("stream", cfg.Stream).Int("version", version).Msg("ledger opened")
	return h, nil
}

func newHost(cfg Config, state *ledger.State, store journal.Store, version int, log zerolog.Logger) *Host {
	registry := NewContractRegistry()
	for _, id := range cfg.Contracts {
		registry.Register(id)
	}
	return &Host{
		cfg:      cfg,
		state:    state,
		registry: registry,
		store:    store,
		version:  version,
		log:      log,
	}
}

func openStore(cfg Config) (journal.Store, error) {
	if cfg.JournalPath == "" {
		return journal.NewMemoryStore(), nil
	}
	return journal.NewSQLiteStore(cfg.JournalPath)
}

// SetPublisher installs a hook invoked with every journalled record after
// commit, in order.
func (h *Host) SetPublisher(fn func(*journal.Record)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.publish = fn
}

// Registry returns the host's contract-account registry.
func (h *Host) Registry() *ContractRegistry {
	return h.registry
}

// TotalSupply returns the fixed total supply.
func (h *Host) TotalSupply() ledger.Amount {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.TotalSupply()
}

// BalanceOf returns an account's balance.
func (h *Host) BalanceOf(owner ledger.Identity) ledger.Amount {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.BalanceOf(owner)
}

// Allowance returns the remaining amount spender may move from owner.
func (h *Host) Allowance(owner, spender ledger.Identity) ledger.Amount {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Allowance(owner, spender)
}

// Events reads journalled records from fromVersion onward.
func (h *Host) Events(ctx context.Context, fromVersion int) ([]*journal.Record, error) {
	return h.store.Read(ctx, h.cfg.Stream, fromVersion)
}

// Transfer moves value from caller to another account.
func (h *Host) Transfer(ctx context.Context, caller, to ledger.Identity, value ledger.Amount) error {
	return h.invoke(ctx, "transfer", caller, func(l *ledger.Ledger) error {
		return l.Transfer(to, value)
	})
}

// TransferFrom moves value out of from's account using caller's approval.
func (h *Host) TransferFrom(ctx context.Context, caller, from, to ledger.Identity, value ledger.Amount) error {
	return h.invoke(ctx, "transfer_from", caller, func(l *ledger.Ledger) error {
		return l.TransferFrom(from, to, value)
	})
}

// Approve sets spender's allowance over caller's tokens.
func (h *Host) Approve(ctx context.Context, caller, spender ledger.Identity, value ledger.Amount) error {
	return h.invoke(ctx, "approve", caller, func(l *ledger.Ledger) error {
		return l.Approve(spender, value)
	})
}

// IncreaseAllowance raises spender's allowance over caller's tokens.
func (h *Host) IncreaseAllowance(ctx context.Context, caller, spender ledger.Identity, added ledger.Amount) error {
	return h.invoke(ctx, "increase_allowance", caller, func(l *ledger.Ledger) error {
		return l.IncreaseAllowance(spender, added)
	})
}

// DecreaseAllowance lowers spender's allowance over caller's tokens.
func (h *Host) DecreaseAllowance(ctx context.Context, caller, spender ledger.Identity, subtracted ledger.Amount) error {
	return h.invoke(ctx, "decrease_allowance", caller, func(l *ledger.Ledger) error {
		return l.DecreaseAllowance(spender, subtracted)
	})
}

// Close releases the journal store.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Close()
}

func (h *Host) invoke(ctx context.Context, op string, caller ledger.Identity, fn func(*ledger.Ledger) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.state.Snapshot()
	rec := &ledger.EventRecorder{}
	l := ledger.New(h.state, invocation{caller: caller, registry: h.registry}, rec)

	if err := fn(l); err != nil {
		h.log.Warn().Str("op", op).Str("caller", caller.String()).Err(err).Msg("operation rejected")
		return err
	}

	if h.cfg.CheckInvariants {
		if err := h.state.CheckInvariants(); err != nil {
			h.rollback(before)
			h.log.Error().Str("op", op).Err(err).Msg("invariant check failed, rolled back")
			return err
		}
	}

	records := make([]*journal.Record, 0, len(rec.Events))
	for _, e := range rec.Events {
		r, err := journal.NewRecord(h.cfg.Stream, e.Type(), e)
		if err != nil {
			h.rollback(before)
			return err
		}
		records = append(records, r)
	}
	head, err := h.store.Append(ctx, h.cfg.Stream, h.version, records)
	if err != nil {
		h.rollback(before)
		return fmt.Errorf("host: journal append: %w", err)
	}
	h.version = head

	if err := h.writeSnapshot(); err != nil {
		// The journal already holds the records; keep the state, which now
		// leads the checkpoint, and surface the error.
		h.log.Error().Str("op", op).Err(err).Msg("checkpoint write failed")
		return err
	}

	if h.publish != nil {
		for _, r := range records {
			h.publish(r)
		}
	}
	h.log.Info().Str("op", op).Str("caller", caller.String()).Int("version", h.version).Msg("operation committed")
	return nil
}

func (h *Host) rollback(snap *ledger.Snapshot) {
	// The snapshot was taken from a valid state, so restoring cannot fail.
	if state, err := ledger.RestoreState(snap); err == nil {
		h.state = state
	}
}

func (h *Host) writeSnapshot() error {
	if h.cfg.SnapshotPath == "" {
		return nil
	}
	data, err := h.state.Snapshot().Encode()
	if err != nil {
		return err
	}
	tmp := h.cfg.SnapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("host: write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, h.cfg.SnapshotPath); err != nil {
		return fmt.Errorf("host: replace checkpoint: %w", err)
	}
	return nil
}
