package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pflow-xyz/go-tokenledger/export"
	"github.com/pflow-xyz/go-tokenledger/journal"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	from := fs.Int("from", 0, "First journal version to show")
	csvOut := fs.Bool("csv", false, "Write records as CSV")
	jsonlOut := fs.Bool("jsonl", false, "Write records as JSON lines")
	output := fs.String("o", "", "Output file (default stdout)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: tokenledger events [options]

Show or export the event journal.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *csvOut && *jsonlOut {
		return fmt.Errorf("choose one of -csv or -jsonl")
	}

	ctx := context.Background()
	h, _, err := openHost(ctx, *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	records, err := h.Events(ctx, *from)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch {
	case *csvOut:
		return export.WriteCSV(out, records)
	case *jsonlOut:
		return export.WriteJSONL(out, records)
	default:
		printRecords(out, records)
		return nil
	}
}

func printRecords(out io.Writer, records []*journal.Record) {
	for _, r := range records {
		fmt.Fprintf(out, "%4d  %-9s %s  %s\n", r.Version, r.Type, r.Timestamp.Format("2006-01-02 15:04:05"), r.Data)
	}
}
