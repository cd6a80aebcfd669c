package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/fortressfin/fortress"
)

type milestoneAddCmd struct{}

func (*milestoneAddCmd) Name() string     { return "milestone-add" }
func (*milestoneAddCmd) Synopsis() string { return "add a dated milestone" }
func (*milestoneAddCmd) Usage() string {
	return `fort milestone-add <title> <date>

  Adds a milestone with a target date in strict YYYY-MM-DD form. Due
  milestones are reported by 'fort milestone-due' and by the watch daemon.

Usage Examples:
$ fort milestone-add "Emergency fund complete" 2026-01-14
`
}

func (*milestoneAddCmd) SetFlags(f *flag.FlagSet) {}

func (c *milestoneAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <title> and <date>")
		return subcommands.ExitUsageError
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	m, err := ledger.AddMilestone(f.Arg(0), f.Arg(1))
	if err != nil {
		return exit(err)
	}
	fmt.Printf("Added milestone %s  %q due %s\n", shortID(m.ID), m.Title, m.Date)
	return subcommands.ExitSuccess
}

type milestoneDoneCmd struct{}

func (*milestoneDoneCmd) Name() string     { return "milestone-done" }
func (*milestoneDoneCmd) Synopsis() string { return "toggle a milestone's completed flag" }
func (*milestoneDoneCmd) Usage() string {
	return `fort milestone-done <id>

  Toggles the completed flag of a milestone. The id may be abbreviated to
  any unique prefix (see 'fort milestone-list').
`
}

func (*milestoneDoneCmd) SetFlags(f *flag.FlagSet) {}

func (c *milestoneDoneCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected <id>")
		return subcommands.ExitUsageError
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	id, err := resolveMilestone(ledger, f.Arg(0))
	if err != nil {
		return exit(err)
	}
	m, err := ledger.ToggleMilestone(id)
	if err != nil {
		return exit(err)
	}
	state := "active"
	if m.Completed {
		state = "completed"
	}
	fmt.Printf("Milestone %q is now %s\n", m.Title, state)
	return subcommands.ExitSuccess
}

type milestoneRemoveCmd struct{}

func (*milestoneRemoveCmd) Name() string     { return "milestone-remove" }
func (*milestoneRemoveCmd) Synopsis() string { return "remove a milestone" }
func (*milestoneRemoveCmd) Usage() string {
	return `fort milestone-remove <id>

  Removes a milestone. The id may be abbreviated to any unique prefix.
`
}

func (*milestoneRemoveCmd) SetFlags(f *flag.FlagSet) {}

func (c *milestoneRemoveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected <id>")
		return subcommands.ExitUsageError
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	id, err := resolveMilestone(ledger, f.Arg(0))
	if err != nil {
		return exit(err)
	}
	if err := ledger.RemoveMilestone(id); err != nil {
		return exit(err)
	}
	fmt.Println("Milestone removed.")
	return subcommands.ExitSuccess
}

type milestoneListCmd struct {
	all bool
}

func (*milestoneListCmd) Name() string     { return "milestone-list" }
func (*milestoneListCmd) Synopsis() string { return "list milestones" }
func (*milestoneListCmd) Usage() string {
	return `fort milestone-list [-all]

  Lists active milestones sorted ascending by target date. With -all,
  completed milestones are included at the end.
`
}

func (c *milestoneListCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "include completed milestones")
}

func (c *milestoneListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	active := ledger.ActiveMilestones()
	for _, m := range active {
		fmt.Printf("%s  %s  %s\n", shortID(m.ID), m.Date, m.Title)
	}
	if c.all {
		for _, m := range ledger.Milestones() {
			if m.Completed {
				fmt.Printf("%s  %s  %s (completed)\n", shortID(m.ID), m.Date, m.Title)
			}
		}
	}
	if len(active) == 0 && !c.all {
		fmt.Println("No active milestones.")
	}
	return subcommands.ExitSuccess
}

type milestoneDueCmd struct {
	on string
}

func (*milestoneDueCmd) Name() string     { return "milestone-due" }
func (*milestoneDueCmd) Synopsis() string { return "show milestones due on a date" }
func (*milestoneDueCmd) Usage() string {
	return `fort milestone-due [-on <date>]

  Shows active milestones whose target date matches the given date exactly
  (default: today). There is no fuzzy matching: tomorrow's milestones are
  not due today.
`
}

func (c *milestoneDueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "Date to check in YYYY-MM-DD form (default: today)")
}

func (c *milestoneDueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now := fortress.Today()
	if c.on != "" {
		var err error
		if now, err = fortress.ParseDate(c.on); err != nil {
			return exit(err)
		}
	}
	ledger, st, _, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	due := ledger.DueReminders(now)
	if len(due) == 0 {
		fmt.Printf("Nothing due on %s.\n", now)
		return subcommands.ExitSuccess
	}
	for _, m := range due {
		fmt.Printf("%s  %s\n", shortID(m.ID), m.Title)
	}
	return subcommands.ExitSuccess
}

// shortID abbreviates a milestone id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveMilestone expands an id prefix to the full milestone id. An exact
// match always wins; otherwise the prefix must be unique.
func resolveMilestone(ledger *fortress.Ledger, arg string) (string, error) {
	var matches []string
	for _, m := range ledger.Milestones() {
		if m.ID == arg {
			return arg, nil
		}
		if strings.HasPrefix(m.ID, arg) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return arg, nil // let the ledger report NotFound
	case 1:
		return matches[0], nil
	default:
		return "", fortress.Validationf("milestone id %q is ambiguous (%d matches)", arg, len(matches))
	}
}
