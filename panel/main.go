package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jsandbrook/home-maintenance/panel/adapters/authority"
	"github.com/jsandbrook/home-maintenance/panel/adapters/tui"
	"github.com/jsandbrook/home-maintenance/panel/config"
	"github.com/jsandbrook/home-maintenance/panel/core"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", config.DefaultPath(), "panel configuration file")
	flag.Parse()

	if err := run(configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	log, closeLog, err := makeLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client := authority.NewClient(cfg.AuthorityAddress, cfg.RequestTimeout, log)
	store := core.NewStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := store.Reload(ctx); err != nil {
		log.Warn("initial load failed, starting with an empty view", "error", err)
	}
	cancel()

	return tui.Run(store, cfg, cfg.RequestTimeout)
}

// makeLogger writes to the configured file, or discards everything: the
// terminal belongs to the interface.
func makeLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return log, func() { _ = f.Close() }, nil
}
