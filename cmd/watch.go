package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/fortressfin/fortress"
	"github.com/fortressfin/fortress/remind"
	"github.com/fortressfin/fortress/store"
)

type watchCmd struct {
	schedule string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the milestone reminder daemon" }
func (*watchCmd) Usage() string {
	return `fort watch [-schedule <cron>]

  Checks for due milestones on a cron schedule (default from config,
  "@every 1m") and logs a reminder for each, at most once per day per
  milestone. Runs until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "schedule", "", "Cron schedule for the due check (default: config reminder.schedule)")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	st, err := store.Open(store.Options{
		Dir:           cfg.Storage.Dir,
		FallbackLimit: cfg.Storage.FallbackLimitBytes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// long-lived process: coalesce saves through the latest-wins queue
	wb := store.NewWriteback(st)
	defer func() {
		if err := wb.Close(); err != nil {
			slog.Warn("final save failed, latest changes are not durable", "err", err)
		}
	}()

	ledger := fortress.Open(ctx, wb, cfg.Ledger.Currency)

	schedule := c.schedule
	if schedule == "" {
		schedule = cfg.Reminder.Schedule
	}
	runner := remind.New(ledger, remind.LogNotifier{})
	if err := runner.Start(schedule); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer runner.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}
	return subcommands.ExitSuccess
}
