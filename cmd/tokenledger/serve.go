package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/pflow-xyz/go-tokenledger/host/feed"
)

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	listen := fs.String("listen", "", "Listen address (overrides config)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: tokenledger serve [options]

Open the ledger and stream committed events to websocket
clients connected at /events.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	h, cfg, err := openHost(ctx, *configPath)
	if err != nil {
		return err
	}
	defer h.Close()

	addr := cfg.ListenAddr
	if *listen != "" {
		addr = *listen
	}

	log := newLogger(cfg)
	hub := feed.NewHub(log)
	defer hub.Close()
	h.SetPublisher(hub.Publish)

	mux := http.NewServeMux()
	mux.Handle("/events", hub.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	log.Info().Str("addr", addr).Msg("serving event feed")
	fmt.Printf("Listening on %s (websocket feed at /events)\n", addr)
	return http.ListenAndServe(addr, mux)
}
