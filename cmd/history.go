package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list logged investments, most recent first" }
func (*historyCmd) Usage() string {
	return `fort history

  Lists all history entries in reverse-chronological order with the
  cumulative total saved.
`
}

func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	entries := ledger.History()
	if len(entries) == 0 {
		fmt.Println("No investments logged yet.")
		return subcommands.ExitSuccess
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("%s  %12s  %s\n", e.Date, e.Total, e.Summary)
	}
	fmt.Printf("Total saved: %s over %d entries\n", ledger.TotalSaved(), len(entries))
	return subcommands.ExitSuccess
}

type historyClearCmd struct {
	yes bool
}

func (*historyClearCmd) Name() string     { return "history-clear" }
func (*historyClearCmd) Synopsis() string { return "delete the entire investment history" }
func (*historyClearCmd) Usage() string {
	return `fort history-clear -y

  Deletes every history entry. This cannot be undone, which is why the -y
  flag is required.
`
}

func (c *historyClearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "confirm the deletion")
}

func (c *historyClearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: clearing history is irreversible, pass -y to confirm")
		return subcommands.ExitUsageError
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	if err := ledger.ClearHistory(); err != nil {
		return exit(err)
	}
	fmt.Println("History cleared.")
	return subcommands.ExitSuccess
}
