package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a participant or task, or detach one from the other" }
func (*removeCmd) Usage() string {
	return `tly remove <name>
tly remove <participant> <task>

  With one argument, deletes the participant or task. Deleting a participant
  detaches them from tasks they merely share and cascades to delete the tasks
  they paid for. With two arguments, only detaches the participant from the
  task, leaving both in the ledger.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 || f.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <name> or <participant> <task>.")
		return subcommands.ExitUsageError
	}
	return applyArgs("remove", f.Args())
}
