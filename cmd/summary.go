package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ogrod/greenhouse"
	"github.com/ogrod/greenhouse/date"
	"github.com/ogrod/greenhouse/renderer"
)

type summaryCmd struct {
	date        string
	showAmounts bool
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display trailing-window totals and the latest records"
}
func (*summaryCmd) Usage() string {
	return `summary [-d <date>] [-amounts]

  Shows the dashboard: delivery totals over the last 7 days, settlement
  totals over the last 30 days, and the latest record of each kind.
  Settlement amounts are masked unless -amounts is given.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Reference date for the trailing windows (YYYY-MM-DD)")
	f.BoolVar(&c.showAmounts, "amounts", false, "Show settlement amounts")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	overview := greenhouse.BuildOverview(reg, day)
	printMarkdown(renderer.SummaryMarkdown(overview, reg.PartnerName, c.showAmounts))
	return subcommands.ExitSuccess
}
