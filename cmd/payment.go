package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type paymentCmd struct{}

func (*paymentCmd) Name() string     { return "payment" }
func (*paymentCmd) Synopsis() string { return "record a direct transfer between two participants" }
func (*paymentCmd) Usage() string {
	return `tly payment <payer> <payee> <amount>

  Records that the payer handed <amount> directly to the payee, outside of
  any task. Both participants must already exist. The payer's balance goes
  down by the amount, the payee's goes up.
`
}

func (*paymentCmd) SetFlags(f *flag.FlagSet) {}

func (c *paymentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected <payer> <payee> <amount>.")
		return subcommands.ExitUsageError
	}
	return applyArgs("payment", f.Args())
}
