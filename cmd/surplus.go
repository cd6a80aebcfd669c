package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/fortressfin/fortress"
)

type surplusCmd struct{}

func (*surplusCmd) Name() string     { return "surplus" }
func (*surplusCmd) Synopsis() string { return "set the monthly surplus available for allocation" }
func (*surplusCmd) Usage() string {
	return `fort surplus <amount>

  Records the monthly amount available for allocation across funds.

Usage Examples:
$ fort surplus 50000
`
}

func (*surplusCmd) SetFlags(f *flag.FlagSet) {}

func (c *surplusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected <amount>")
		return subcommands.ExitUsageError
	}
	ledger, st, cfg, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	amount, err := parseAmount(f.Arg(0), cfg.Ledger.Currency)
	if err != nil {
		return exit(err)
	}
	if err := ledger.SetSurplus(amount); err != nil {
		return exit(err)
	}
	fmt.Printf("Monthly surplus set to %s\n", amount)
	return subcommands.ExitSuccess
}

// parseAmount converts a CLI argument into Money in the ledger currency.
func parseAmount(arg, currency string) (fortress.Money, error) {
	d, err := decimal.NewFromString(arg)
	if err != nil {
		return fortress.Money{}, fortress.Validationf("invalid amount %q: want a number", arg)
	}
	return fortress.M(d, currency), nil
}
