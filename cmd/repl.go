package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/tally"
	"github.com/google/subcommands"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive ledger session" }
func (*replCmd) Usage() string {
	return `tly repl

  Starts an interactive session reading one command per line. The ledger
  lives in memory; use 'save' and 'load' to persist it. Type 'bye' or press
  Ctrl+D to exit.
`
}

func (*replCmd) SetFlags(f *flag.FlagSet) {}

const replUsage = `usage:
  add NAME...
  part TASK PARTICIPANT...
  pay PARTICIPANT TASK AMOUNT
  payment PAYER PAYEE AMOUNT
  print [-a | -t | NAME...]
  rename OLD NEW
  remove NAME [TASK]
  query JSONPATH
  save [PATH]
  load PATH
`

func (c *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := Repl(os.Stdin, os.Stdout, ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Repl runs the interactive read loop: one command per line, fully applied
// (or rejected) before the next is read. Errors are printed and the loop
// keeps accepting commands.
func Repl(r io.Reader, w io.Writer, ledger *tally.Ledger) error {
	fmt.Fprint(w, replUsage)
	scanner := bufio.NewScanner(r)
	for fmt.Fprint(w, "tally> "); scanner.Scan(); fmt.Fprint(w, "tally> ") {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "bye" {
			return nil
		}
		c, err := tally.ParseCommand(line)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}

		switch v := c.(type) {
		case tally.Print:
			md, err := renderPrint(ledger, v)
			fmt.Fprint(w, md)
			if err != nil {
				fmt.Fprintln(w, err)
			}
		case tally.Save:
			if v.Path == "" {
				err = tally.EncodeSnapshot(w, ledger)
			} else {
				err = tally.SaveSnapshot(v.Path, ledger)
			}
			if err != nil {
				fmt.Fprintln(w, err)
			}
		case tally.Load:
			loaded, err := tally.LoadSnapshot(v.Path)
			if err != nil {
				// The in-memory ledger stays untouched on a failed load.
				fmt.Fprintln(w, err)
				continue
			}
			ledger = loaded
		case tally.Query:
			val, err := ledger.Query(v.Path)
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			out, err := json.Marshal(val)
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			fmt.Fprintln(w, string(out))
		default:
			if err := ledger.Apply(c); err != nil {
				fmt.Fprintln(w, err)
			}
		}
	}
	return scanner.Err()
}
