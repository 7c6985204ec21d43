package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	caller := fs.String("caller", "", "Authenticated caller identity (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger transfer [options] <to> <value>

Move units from the caller's account to another account.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tokenledger transfer --caller 0x01... 0x02... 300
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("recipient and value required")
	}
	from, err := identityArg("caller", *caller)
	if err != nil {
		return err
	}
	to, err := identityArg("recipient", fs.Arg(0))
	if err != nil {
		return err
	}
	value, err := amountArg("value", fs.Arg(1))
	if err != nil {
		return err
	}

	ctx := context.Background()
	h, _, err := openHost(ctx, *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Transfer(ctx, from, to, value); err != nil {
		return err
	}
	fmt.Printf("Transferred %s to %s\n", value, to)
	return nil
}

func transferFrom(args []string) error {
	fs := flag.NewFlagSet("transfer-from", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	caller := fs.String("caller", "", "Authenticated caller (spender) identity (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger transfer-from [options] <from> <to> <value>

Move units out of another account using a prior approval. The caller is
the spender and must hold sufficient allowance.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		fs.Usage()
		return fmt.Errorf("from, to and value required")
	}
	spender, err := identityArg("caller", *caller)
	if err != nil {
		return err
	}
	from, err := identityArg("from", fs.Arg(0))
	if err != nil {
		return err
	}
	to, err := identityArg("to", fs.Arg(1))
	if err != nil {
		return err
	}
	value, err := amountArg("value", fs.Arg(2))
	if err != nil {
		return err
	}

	ctx := context.Background()
	h, _, err := openHost(ctx, *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.TransferFrom(ctx, spender, from, to, value); err != nil {
		return err
	}
	fmt.Printf("Transferred %s from %s to %s\n", value, from, to)
	return nil
}
