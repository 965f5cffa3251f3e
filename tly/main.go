package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/tally/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: when invoked by the shell's completion machinery this
	// prints the candidates and exits.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.json"),
		},
	}
	for _, c := range cmd.Commands {
		completion.Sub[c.Name()] = &complete.Command{}
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
