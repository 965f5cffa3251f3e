package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type payCmd struct{}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record that a participant fronted the money for a task" }
func (*payCmd) Usage() string {
	return `tly pay <payer> <task> <amount>

  Records that the payer paid <amount> for the task, creating the task (and
  the payer) if needed. Paying again for the same task updates its cost, and
  a different payer takes over the task's ownership.
`
}

func (*payCmd) SetFlags(f *flag.FlagSet) {}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected <payer> <task> <amount>.")
		return subcommands.ExitUsageError
	}
	return applyArgs("pay", f.Args())
}
