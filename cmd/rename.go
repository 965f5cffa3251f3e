package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a participant or a task" }
func (*renameCmd) Usage() string {
	return `tly rename <old> <new>

  Gives the participant or task a new name, rewriting every reference to it.
  Renaming never changes any balance.
`
}

func (*renameCmd) SetFlags(f *flag.FlagSet) {}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <old> <new>.")
		return subcommands.ExitUsageError
	}
	return applyArgs("rename", f.Args())
}
