package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the snapshot file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `tly fmt

  Reads the snapshot file, re-establishing every ledger invariant, and writes
  it back in canonical form: participants before tasks, names in alphabetical
  order, two-space indentation. A corrupt snapshot is reported and left
  untouched.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %q.\n", *ledgerFile)
	return subcommands.ExitSuccess
}
