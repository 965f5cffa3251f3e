// Package cmd implements the CLI application to manage a shared-expense ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tally"
	"github.com/etnz/tally/renderer"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "tally.json", "Path to the ledger snapshot file (JSON format)")

// Commands lists every subcommand. A main package calls Register on each and
// Execute on the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&partCmd{},
	&payCmd{},
	&paymentCmd{},
	&printCmd{},
	&renameCmd{},
	&removeCmd{},
	&fmtCmd{},
	&queryCmd{},
	&replCmd{},
	&topicCmd{},
	&assistCmd{},
}

// DecodeLedger loads the ledger from the application's snapshot file.
// If the file does not exist, it returns a new empty ledger.
func DecodeLedger() (*tally.Ledger, error) {
	ledger, err := tally.LoadSnapshot(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, snapshot does not exist, starting with an empty ledger instead")
		return tally.NewLedger(), nil
	}
	return ledger, err
}

// EncodeLedger overwrites the application's snapshot file with the ledger.
func EncodeLedger(l *tally.Ledger) error {
	return tally.SaveSnapshot(*ledgerFile, l)
}

// applyArgs parses positional arguments as one core command, applies it to
// the ledger file and saves the result. Bulk commands apply their valid items
// even when some fail; the aggregated errors are reported after saving.
func applyArgs(verb string, args []string) subcommands.ExitStatus {
	c, err := tally.ParseCommand(strings.Join(append([]string{verb}, args...), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	applyErr := ledger.Apply(c)
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if applyErr != nil {
		fmt.Fprintln(os.Stderr, applyErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// renderPrint turns a print command into its markdown report.
func renderPrint(l *tally.Ledger, p tally.Print) (string, error) {
	switch {
	case p.All:
		return renderer.Participants(l)
	case p.Tasks:
		return renderer.Tasks(l), nil
	case len(p.Names) > 0:
		// Each name is rendered independently: the valid ones still make the
		// report, the failures are aggregated.
		var b strings.Builder
		var errs error
		for _, name := range p.Names {
			md, err := renderer.Participant(l, name)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			b.WriteString(md)
			b.WriteString("\n")
		}
		return b.String(), errs
	default:
		return renderer.Balances(l), nil
	}
}

// printMarkdown renders markdown for the terminal and writes it to stdout.
// If rendering fails, the raw markdown is printed instead.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
