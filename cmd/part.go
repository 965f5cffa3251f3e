package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type partCmd struct{}

func (*partCmd) Name() string     { return "part" }
func (*partCmd) Synopsis() string { return "associate participants with a task's cost sharing" }
func (*partCmd) Usage() string {
	return `tly part <task> <participant>...

  Adds the participants to the task, so they share its cost. Unknown
  participant names are created on the fly. The token "all" stands for every
  existing task (in task position) or every existing participant (in the
  participant list).
`
}

func (*partCmd) SetFlags(f *flag.FlagSet) {}

func (c *partCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: a task and at least one participant are required.")
		return subcommands.ExitUsageError
	}
	return applyArgs("part", f.Args())
}
