package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/fortressfin/fortress"
	"github.com/fortressfin/fortress/renderer"
)

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render a summary of the ledger" }
func (*reportCmd) Usage() string {
	return `fort report

  Renders a markdown summary: surplus, cumulative savings, active
  allocations, recent history and upcoming milestones.
`
}

func (*reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	doc := ledger.Document()
	report := renderer.NewReport(doc, ledger.Kind().String(), fortress.Today())
	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
