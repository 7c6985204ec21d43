package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-tokenledger/host"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

const defaultConfigPath = "ledger.toml"

func newLogger(cfg host.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openHost loads the config and opens the hosted ledger it describes.
func openHost(ctx context.Context, configPath string) (*host.Host, host.Config, error) {
	cfg, err := host.LoadConfig(configPath)
	if err != nil {
		return nil, host.Config{}, err
	}
	h, err := host.Open(ctx, cfg, newLogger(cfg))
	if err != nil {
		return nil, host.Config{}, err
	}
	return h, cfg, nil
}

func identityArg(role, value string) (ledger.Identity, error) {
	if value == "" {
		return ledger.Identity{}, fmt.Errorf("%s identity required", role)
	}
	id, err := ledger.ParseIdentity(value)
	if err != nil {
		return ledger.Identity{}, fmt.Errorf("%s: %w", role, err)
	}
	return id, nil
}

func amountArg(role, value string) (ledger.Amount, error) {
	if value == "" {
		return ledger.Amount{}, fmt.Errorf("%s amount required", role)
	}
	a, err := ledger.ParseAmount(value)
	if err != nil {
		return ledger.Amount{}, fmt.Errorf("%s: %w", role, err)
	}
	return a, nil
}
