package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tally"
	"github.com/google/subcommands"
)

type printCmd struct{}

func (*printCmd) Name() string     { return "print" }
func (*printCmd) Synopsis() string { return "print balances and entity detail" }
func (*printCmd) Usage() string {
	return `tly print [-a | -t | <name>...]

  Without arguments, prints every participant's name and balance. With names,
  prints those participants' full detail. -a prints the full detail for every
  participant, -t the detail for every task.
`
}

func (*printCmd) SetFlags(f *flag.FlagSet) {}

func (c *printCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pc, err := tally.ParseCommand(strings.Join(append([]string{"print"}, f.Args()...), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	md, err := renderPrint(ledger, pc.(tally.Print))
	printMarkdown(md)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
