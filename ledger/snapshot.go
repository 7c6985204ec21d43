package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// BalanceEntry is one account's balance in a snapshot.
type BalanceEntry struct {
	Owner   Identity `cbor:"owner" json:"owner"`
	Balance Amount   `cbor:"balance" json:"balance"`
}

// AllowanceEntry is one (owner, spender) allowance in a snapshot.
type AllowanceEntry struct {
	Owner     Identity `cbor:"owner" json:"owner"`
	Spender   Identity `cbor:"spender" json:"spender"`
	Allowance Amount   `cbor:"allowance" json:"allowance"`
}

// Snapshot is a value-typed, deterministically ordered copy of the ledger
// state, suitable for durable checkpoints.
type Snapshot struct {
	TotalSupply Amount           `cbor:"total_supply" json:"total_supply"`
	Balances    []BalanceEntry   `cbor:"balances" json:"balances"`
	Allowances  []AllowanceEntry `cbor:"allowances" json:"allowances"`
}

// Snapshot captures the current state. Entries are sorted by identity so
// two equal states encode identically.
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{
		TotalSupply: s.totalSupply,
		Balances:    make([]BalanceEntry, 0, len(s.balances)),
		Allowances:  make([]AllowanceEntry, 0, len(s.allowances)),
	}
	for owner, bal := range s.balances {
		snap.Balances = append(snap.Balances, BalanceEntry{Owner: owner, Balance: bal})
	}
	sort.Slice(snap.Balances, func(i, j int) bool {
		return bytes.Compare(snap.Balances[i].Owner[:], snap.Balances[j].Owner[:]) < 0
	})
	for key, allowance := range s.allowances {
		snap.Allowances = append(snap.Allowances, AllowanceEntry{
			Owner:     key.owner,
			Spender:   key.spender,
			Allowance: allowance,
		})
	}
	sort.Slice(snap.Allowances, func(i, j int) bool {
		a, b := snap.Allowances[i], snap.Allowances[j]
		if c := bytes.Compare(a.Owner[:], b.Owner[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(a.Spender[:], b.Spender[:]) < 0
	})
	return snap
}

// RestoreState rebuilds a State from a snapshot, verifying the
// conservation law before returning it.
func RestoreState(snap *Snapshot) (*State, error) {
	s := &State{
		totalSupply: snap.TotalSupply,
		balances:    make(map[Identity]Amount, len(snap.Balances)),
		allowances:  make(map[allowanceKey]Amount, len(snap.Allowances)),
	}
	for _, e := range snap.Balances {
		if _, dup := s.balances[e.Owner]; dup {
			return nil, fmt.Errorf("ledger: snapshot has duplicate balance for %s", e.Owner)
		}
		s.balances[e.Owner] = e.Balance
	}
	for _, e := range snap.Allowances {
		key := allowanceKey{owner: e.Owner, spender: e.Spender}
		if _, dup := s.allowances[key]; dup {
			return nil, fmt.Errorf("ledger: snapshot has duplicate allowance for %s/%s", e.Owner, e.Spender)
		}
		s.allowances[key] = e.Allowance
	}
	if err := s.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("ledger: snapshot invalid: %w", err)
	}
	return s, nil
}

// Encode serializes the snapshot as CBOR.
func (snap *Snapshot) Encode() ([]byte, error) {
	data, err := cbor.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a CBOR snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("ledger: decode snapshot: %w", err)
	}
	return &snap, nil
}
