// Command ghs is a record keeper for a small greenhouse operation:
// produce deliveries, partners and settlements, kept locally and
// exportable as a paginated report.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/ogrod/greenhouse/cmd"
	"github.com/ogrod/greenhouse/logging"
)

func main() {
	logging.Setup()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// An unknown subcommand may be provided by an external ghs-<name>
	// binary on the PATH.
	if args := flag.Args(); len(args) > 0 && !cmd.IsRegistered(args[0]) {
		if ran, code := cmd.RunExtension(args[0], args[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
