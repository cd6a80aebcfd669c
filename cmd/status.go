package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show storage backend and ledger totals" }
func (*statusCmd) Usage() string {
	return `fort status

  Shows which storage backend is in use, the configured surplus, the
  realized allocation total and the cumulative savings.
`
}

func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, cfg, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	fmt.Printf("storage:    %s (%s)\n", ledger.Kind(), cfg.Storage.Dir)
	fmt.Printf("surplus:    %s\n", ledger.Surplus())
	fmt.Printf("allocated:  %s across %d funds\n", ledger.Allocated(), len(ledger.Funds()))
	fmt.Printf("saved:      %s over %d entries\n", ledger.TotalSaved(), len(ledger.History()))
	fmt.Printf("milestones: %d active\n", len(ledger.ActiveMilestones()))
	return subcommands.ExitSuccess
}
