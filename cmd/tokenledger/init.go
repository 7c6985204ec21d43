package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-tokenledger/host"
)

func initLedger(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	creator := fs.String("creator", "", "Creator identity (overrides config)")
	supply := fs.String("supply", "", "Total supply (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger init [options]

Create a new ledger: the whole supply is credited to the creator and the
construction event starts the journal.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tokenledger init --config ledger.toml
  tokenledger init --creator 0x01... --supply 1000000
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := host.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *creator != "" {
		cfg.Creator, err = identityArg("creator", *creator)
		if err != nil {
			return err
		}
	}
	if *supply != "" {
		cfg.TotalSupply, err = amountArg("supply", *supply)
		if err != nil {
			return err
		}
	}

	h, err := host.Create(context.Background(), cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer h.Close()

	fmt.Printf("Created ledger: supply %s credited to %s\n", cfg.TotalSupply, cfg.Creator)
	return nil
}
