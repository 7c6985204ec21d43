package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-tokenledger/host"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

// allowanceOp factors the shared shape of approve/increase/decrease.
func allowanceOp(name, verb string, apply func(ctx context.Context, h *host.Host, caller, spender ledger.Identity, value ledger.Amount) error) func([]string) error {
	return func(args []string) error {
		fs := flag.NewFlagSet(name, flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file")
		caller := fs.String("caller", "", "Authenticated caller (owner) identity (required)")

		fs.Usage = func() {
			fmt.Fprintf(os.Stderr, `Usage: tokenledger %s [options] <spender> <value>

%s a spender's allowance over the caller's tokens.

Options:
`, name, verb)
			fs.PrintDefaults()
		}

		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() < 2 {
			fs.Usage()
			return fmt.Errorf("spender and value required")
		}
		owner, err := identityArg("caller", *caller)
		if err != nil {
			return err
		}
		spender, err := identityArg("spender", fs.Arg(0))
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

		if err := apply(ctx, h, owner, spender, value); err != nil {
			return err
		}
		fmt.Printf("Allowance for %s is now %s\n", spender, h.Allowance(owner, spender))
		return nil
	}
}

var approve = allowanceOp("approve", "Set",
	func(ctx context.Context, h *host.Host, caller, spender ledger.Identity, value ledger.Amount) error {
		return h.Approve(ctx, caller, spender, value)
	})

var increaseAllowance = allowanceOp("increase-allowance", "Raise",
	func(ctx context.Context, h *host.Host, caller, spender ledger.Identity, value ledger.Amount) error {
		return h.IncreaseAllowance(ctx, caller, spender, value)
	})

var decreaseAllowance = allowanceOp("decrease-allowance", "Lower",
	func(ctx context.Context, h *host.Host, caller, spender ledger.Identity, value ledger.Amount) error {
		return h.DecreaseAllowance(ctx, caller, spender, value)
	})
