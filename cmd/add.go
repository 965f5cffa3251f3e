package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add new participants to the ledger" }
func (*addCmd) Usage() string {
	return `tly add <name>...

  Adds one participant per name. Each name is applied independently: valid
  names are added even when others conflict, and all errors are reported.
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one name is required.")
		return subcommands.ExitUsageError
	}
	return applyArgs("add", f.Args())
}
