package host

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

// Config describes a hosted ledger instance.
type Config struct {
	// JournalPath is the sqlite database file for the event journal.
	// Empty selects an in-memory journal.
	JournalPath string
	// SnapshotPath is the CBOR state checkpoint file. Empty disables
	// durable checkpoints.
	SnapshotPath string
	// Stream is the journal stream the token's events are appended to.
	Stream string
	// TotalSupply and Creator parameterize ledger construction.
	TotalSupply ledger.Amount
	Creator     ledger.Identity
	// Contracts are identities registered as programmatic accounts.
	Contracts []ledger.Identity
	// ListenAddr is the websocket feed listen address.
	ListenAddr string
	// CheckInvariants enables the conservation check after every commit.
	CheckInvariants bool
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
}

// DefaultConfig returns the configuration used when a field is not set.
func DefaultConfig() Config {
	return Config{
		JournalPath:     "ledger.db",
		SnapshotPath:    "ledger.snapshot",
		Stream:          "token",
		ListenAddr:      ":8473",
		CheckInvariants: true,
		LogLevel:        "info",
	}
}

type fileConfig struct {
	JournalPath     string   `toml:"journal_path"`
	SnapshotPath    string   `toml:"snapshot_path"`
	Stream          string   `toml:"stream"`
	TotalSupply     string   `toml:"total_supply"`
	Creator         string   `toml:"creator"`
	Contracts       []string `toml:"contracts"`
	ListenAddr      string   `toml:"listen_addr"`
	CheckInvariants bool     `toml:"check_invariants"`
	LogLevel        string   `toml:"log_level"`
}

// LoadConfig reads a TOML config file, applying defaults for absent keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("host: load config: %w", err)
	}

	if meta.IsDefined("journal_path") {
		cfg.JournalPath = strings.TrimSpace(raw.JournalPath)
	}
	if meta.IsDefined("snapshot_path") {
		cfg.SnapshotPath = strings.TrimSpace(raw.SnapshotPath)
	}
	if meta.IsDefined("stream") {
		cfg.Stream = strings.TrimSpace(raw.Stream)
	}
	if meta.IsDefined("total_supply") {
		cfg.TotalSupply, err = ledger.ParseAmount(strings.TrimSpace(raw.TotalSupply))
		if err != nil {
			return Config{}, fmt.Errorf("host: parse total_supply: %w", err)
		}
	}
	if meta.IsDefined("creator") {
		cfg.Creator, err = ledger.ParseIdentity(strings.TrimSpace(raw.Creator))
		if err != nil {
			return Config{}, fmt.Errorf("host: parse creator: %w", err)
		}
	}
	if meta.IsDefined("contracts") {
		cfg.Contracts = make([]ledger.Identity, 0, len(raw.Contracts))
		for _, s := range raw.Contracts {
			id, err := ledger.ParseIdentity(strings.TrimSpace(s))
			if err != nil {
				return Config{}, fmt.Errorf("host: parse contract identity %q: %w", s, err)
			}
			cfg.Contracts = append(cfg.Contracts, id)
		}
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("check_invariants") {
		cfg.CheckInvariants = raw.CheckInvariants
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	if c.Stream == "" {
		return fmt.Errorf("host: config: stream must not be empty")
	}
	return nil
}
