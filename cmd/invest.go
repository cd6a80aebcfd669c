package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/fortressfin/fortress"
)

type investCmd struct {
	amount string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "split the surplus across funds and log it" }
func (*investCmd) Usage() string {
	return `fort invest [-amount <n>]

  Runs the allocation engine: splits the monthly surplus (or -amount) across
  the active funds in display order, rounding each share half-up to the
  currency's minor unit, and appends the result to the history. The fund
  ratios are frozen into the entry as logged.

Usage Examples:
$ fort invest
$ fort invest -amount 50000
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount to allocate (default: the configured surplus)")
}

func (c *investCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, cfg, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	amount := ledger.Surplus()
	if c.amount != "" {
		if amount, err = parseAmount(c.amount, cfg.Ledger.Currency); err != nil {
			return exit(err)
		}
	}

	entry, err := ledger.LogInvestment(amount)
	var serr *fortress.StorageError
	if err != nil && !errors.As(err, &serr) {
		return exit(err)
	}

	fmt.Printf("Logged %s on %s\n", entry.Total, entry.Date)
	for _, s := range entry.Breakdown {
		fmt.Printf("  %-30s %8s  %s\n", s.FundName, s.Ratio, s.Amount)
	}
	if len(entry.Breakdown) == 0 {
		fmt.Printf("  %s\n", entry.Summary)
	}
	fmt.Printf("Total saved so far: %s\n", ledger.TotalSaved())
	// a storage error still means the entry was created in memory only
	return exit(err)
}
