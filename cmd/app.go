// Package cmd implements the CLI application to manage a fortress ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/lmittmann/tint"

	"github.com/fortressfin/fortress"
	"github.com/fortressfin/fortress/config"
	"github.com/fortressfin/fortress/store"
)

// Commands lists every subcommand; a main package registers them all.
var Commands = []subcommands.Command{
	&fundAddCmd{},
	&fundRatioCmd{},
	&fundRemoveCmd{},
	&fundListCmd{},
	&surplusCmd{},
	&investCmd{},
	&historyCmd{},
	&historyClearCmd{},
	&milestoneAddCmd{},
	&milestoneDoneCmd{},
	&milestoneRemoveCmd{},
	&milestoneListCmd{},
	&milestoneDueCmd{},
	&exportCmd{},
	&reportCmd{},
	&statusCmd{},
	&watchCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", "", "Path to the config file (default: XDG config dir)")
var storageDir = flag.String("storage-dir", "", "Override the storage directory")

// SetupLogging configures colored structured logging on stderr.
func SetupLogging() {
	level := slog.LevelInfo
	if os.Getenv("FORT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{Level: level}),
	))
}

// loadConfig reads the config file, falling back to defaults on any problem.
func loadConfig() config.Config {
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("ignoring unreadable config", "err", err)
	}
	if *storageDir != "" {
		cfg.Storage.Dir = *storageDir
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = config.DataDir()
	}
	return cfg
}

// openLedger acquires the durable store and loads the ledger document.
// The caller owns the returned store and must Close it.
func openLedger(ctx context.Context) (*fortress.Ledger, store.Store, config.Config, error) {
	cfg := loadConfig()
	st, err := store.Open(store.Options{
		Dir:           cfg.Storage.Dir,
		FallbackLimit: cfg.Storage.FallbackLimitBytes,
	})
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("could not acquire any storage backend: %w", err)
	}
	return fortress.Open(ctx, st, cfg.Ledger.Currency), st, cfg, nil
}

// exit reports err and converts it to an exit status. A StorageError is a
// non-fatal state for the model (the mutation is applied in memory) but a
// one-shot command exits right after, so the unsaved change would be lost:
// it is reported as a failure with an explicit warning.
func exit(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	var serr *fortress.StorageError
	if errors.As(err, &serr) {
		fmt.Fprintf(os.Stderr, "Warning: change not persisted (%v); re-run once storage is available\n", serr.Err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when no style can be detected.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
