package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func supply(args []string) error {
	fs := flag.NewFlagSet("supply", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	h, _, err := openHost(context.Background(), *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	fmt.Println(h.TotalSupply())
	return nil
}

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger balance [options] <owner>

Show an account's balance. Accounts never credited read as zero.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("owner identity required")
	}
	owner, err := identityArg("owner", fs.Arg(0))
	if err != nil {
		return err
	}

	h, _, err := openHost(context.Background(), *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	fmt.Println(h.BalanceOf(owner))
	return nil
}

func allowance(args []string) error {
	fs := flag.NewFlagSet("allowance", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenledger allowance [options] <owner> <spender>

Show how much the spender may still move out of the owner's balance.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("owner and spender identities required")
	}
	owner, err := identityArg("owner", fs.Arg(0))
	if err != nil {
		return err
	}
	spender, err := identityArg("spender", fs.Arg(1))
	if err != nil {
		return err
	}

	h, _, err := openHost(context.Background(), *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	fmt.Println(h.Allowance(owner, spender))
	return nil
}
