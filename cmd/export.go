package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/fortressfin/fortress"
)

type exportCmd struct {
	dir string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a timestamped backup snapshot" }
func (*exportCmd) Usage() string {
	return `fort export [-dir <path>]

  Writes the full ledger document as fortress_backup_<YYYY-MM-DD>.json.
  The snapshot is byte-identical in structure to the persisted form and can
  be restored by copying it over the fallback store file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "Directory to write the snapshot to (default: config export.dir or .)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, st, cfg, err := openLedger(ctx)
	if err != nil {
		return exit(err)
	}
	defer st.Close()

	dir := c.dir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	if dir == "" {
		dir = "."
	}

	doc := ledger.Document()
	snap, err := fortress.ExportSnapshot(&doc, fortress.Today())
	if err != nil {
		return exit(err)
	}
	path := filepath.Join(dir, snap.Filename)
	if err := os.WriteFile(path, snap.Content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %s\n", path)
	return subcommands.ExitSuccess
}
