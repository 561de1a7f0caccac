package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/equity/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)

	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		sub[c.Name()] = &complete.Command{}
	}

	// Shell completion: `COMP_INSTALL=1 eqc` installs it.
	completion := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"grants-file": predict.Files("*.jsonl"),
			"market-dir":  predict.Dirs("*"),
		},
	}
	completion.Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
