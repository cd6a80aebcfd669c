package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/fortressfin/fortress"
)

type fundAddCmd struct{}

func (*fundAddCmd) Name() string     { return "fund-add" }
func (*fundAddCmd) Synopsis() string { return "add a fund with its allocation ratio" }
func (*fundAddCmd) Usage() string {
	return `fort fund-add <name> <ratio>

  Adds a fund to the active set. The ratio is a percentage of the surplus in
  [0, 100]. Ratios across funds are not required to sum to 100; the
  remainder stays unallocated.

Usage Examples:
$ fort fund-add "ICICI Savings" 50
`
}

func (*fundAddCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <name> and <ratio>")
		return subcommands.ExitUsageError
	}
	ratio, err := parseRatio(f.Arg(1))
	if err != nil {
		return exit(err)
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	if err := ledger.AddFund(f.Arg(0), ratio); err != nil {
		return exit(err)
	}
	fmt.Printf("Added fund %q at %s (allocated total: %s)\n", f.Arg(0), ratio, ledger.Allocated())
	return subcommands.ExitSuccess
}

type fundRatioCmd struct{}

func (*fundRatioCmd) Name() string     { return "fund-ratio" }
func (*fundRatioCmd) Synopsis() string { return "change the allocation ratio of a fund" }
func (*fundRatioCmd) Usage() string {
	return `fort fund-ratio <name> <ratio>

  Updates the percentage of surplus directed to an existing fund. Zero is
  permitted; past history entries are not affected.
`
}

func (*fundRatioCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundRatioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <name> and <ratio>")
		return subcommands.ExitUsageError
	}
	ratio, err := parseRatio(f.Arg(1))
	if err != nil {
		return exit(err)
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	if err := ledger.UpdateFundRatio(f.Arg(0), ratio); err != nil {
		return exit(err)
	}
	fmt.Printf("Fund %q now at %s (allocated total: %s)\n", f.Arg(0), ratio, ledger.Allocated())
	return subcommands.ExitSuccess
}

type fundRemoveCmd struct {
	yes bool
}

func (*fundRemoveCmd) Name() string     { return "fund-remove" }
func (*fundRemoveCmd) Synopsis() string { return "remove a fund from the active set" }
func (*fundRemoveCmd) Usage() string {
	return `fort fund-remove -y <name>

  Removes a fund from the active set. Past history entries keep their frozen
  breakdown; only future allocations are affected. The -y flag is required
  because the removal cannot be undone.
`
}

func (c *fundRemoveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "confirm the removal")
}

func (c *fundRemoveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected <name>")
		return subcommands.ExitUsageError
	}
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: removing a fund is irreversible, pass -y to confirm")
		return subcommands.ExitUsageError
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	if err := ledger.RemoveFund(f.Arg(0)); err != nil {
		return exit(err)
	}
	fmt.Printf("Removed fund %q\n", f.Arg(0))
	return subcommands.ExitSuccess
}

type fundListCmd struct{}

func (*fundListCmd) Name() string     { return "fund-list" }
func (*fundListCmd) Synopsis() string { return "list the active funds and their ratios" }
func (*fundListCmd) Usage() string {
	return `fort fund-list

  Lists the active funds in display order with the realized ratio sum.
`
}

func (*fundListCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	funds := ledger.Funds()
	if len(funds) == 0 {
		fmt.Println("No funds configured.")
		return subcommands.ExitSuccess
	}
	surplus := ledger.Surplus()
	for _, a := range funds {
		fmt.Printf("%-30s %8s  %s\n", a.FundName, a.Ratio, surplus.Share(a.Ratio).Round())
	}
	fmt.Printf("allocated: %s of %s\n", ledger.Allocated(), surplus)
	return subcommands.ExitSuccess
}

// parseRatio converts a CLI argument into a validated Percent.
func parseRatio(arg string) (fortress.Percent, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fortress.Validationf("invalid ratio %q: want a number in [0, 100]", arg)
	}
	p := fortress.Percent(v)
	if err := fortress.CheckRatio(p); err != nil {
		return 0, err
	}
	return p, nil
}
