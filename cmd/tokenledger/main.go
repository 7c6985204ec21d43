package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	run := func(fn func([]string) error) {
		if err := fn(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch command {
	case "init":
		run(initLedger)
	case "supply":
		run(supply)
	case "balance":
		run(balance)
	case "allowance":
		run(allowance)
	case "transfer":
		run(transfer)
	case "transfer-from":
		run(transferFrom)
	case "approve":
		run(approve)
	case "increase-allowance":
		run(increaseAllowance)
	case "decrease-allowance":
		run(decreaseAllowance)
	case "events":
		run(events)
	case "serve":
		run(serve)
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("tokenledger version 0.1.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokenledger - fungible-token ledger tool

Usage:
  tokenledger <command> [options]

Commands:
  init                Create a ledger from a config file
  supply              Show the total supply
  balance             Show an account's balance
  allowance           Show a spender's remaining allowance
  transfer            Move units from the caller to another account
  transfer-from       Move units out of an account using an approval
  approve             Set a spender's allowance
  increase-allowance  Raise a spender's allowance
  decrease-allowance  Lower a spender's allowance
  events              Show or export the event journal
  serve               Stream events to websocket clients
  version             Show version
  help                Show this help

Run 'tokenledger <command> -h' for command options.`)
}
