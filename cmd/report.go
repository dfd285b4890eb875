package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ogrod/greenhouse"
	"github.com/ogrod/greenhouse/renderer"
)

type reportCmd struct {
	kind             string
	from             string
	to               string
	recipient        string
	sortBy           string
	order            string
	deliveryFields   string
	settlementFields string
	outputFile       string
	pageLines        int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "export a filtered, sorted record report" }
func (*reportCmd) Usage() string {
	return `report [-kind deliveries|settlements|both] [-from <date>] [-to <date>] [-r <partner>]
       [-sort date|quantity|amount] [-order asc|desc]
       [-delivery-fields <list>] [-settlement-fields <list>]
       [-o <file>] [-page-lines <n>]

  Builds a report over deliveries and/or settlements. Rows are filtered,
  sorted and reduced to the requested fields, then rendered to the
  terminal, or written to -o as a paginated plain-text document.

  Field lists are comma separated; an empty list means all fields.
  Delivery fields: date, quantity, boxes, recipient, destination, notes.
  Settlement fields: period, recipient, quantity, amount, notes.

Usage Examples:
# March deliveries for one partner, without notes.
$ ghs report -kind deliveries -from 2024-03-01 -to 2024-03-31 -r "Hofladen Krause" \
    -delivery-fields date,quantity,boxes,destination

# Everything, newest first, to a file.
$ ghs report -o greenhouse-report.txt
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "both", "Report content (deliveries, settlements, both)")
	f.StringVar(&c.from, "from", "", "Earliest date (inclusive)")
	f.StringVar(&c.to, "to", "", "Latest date (inclusive)")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.StringVar(&c.sortBy, "sort", "date", "Sort key (date, quantity, amount)")
	f.StringVar(&c.order, "order", "desc", "Sort order (asc, desc)")
	f.StringVar(&c.deliveryFields, "delivery-fields", "", "Delivery fields to include (comma separated, empty for all)")
	f.StringVar(&c.settlementFields, "settlement-fields", "", "Settlement fields to include (comma separated, empty for all)")
	f.StringVar(&c.outputFile, "o", "", "Write a paginated document to this file instead of the terminal")
	f.IntVar(&c.pageLines, "page-lines", renderer.DefaultPageLines, "Lines per document page")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := greenhouse.ReportOptions{}

	var err error
	if opts.Kind, err = greenhouse.ParseReportKind(c.kind); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if opts.From, err = parseOptionalDate(c.from); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if opts.To, err = parseOptionalDate(c.to); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if opts.SortBy, err = greenhouse.ParseSortKey(c.sortBy); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if opts.Order, err = greenhouse.ParseOrder(c.order); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if opts.DeliveryFields, err = greenhouse.ParseDeliveryFieldMask(c.deliveryFields); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if opts.SettlementFields, err = greenhouse.ParseSettlementFieldMask(c.settlementFields); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if c.recipient != "" {
		p, err := resolvePartner(reg, c.recipient)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		opts.RecipientID = p.ID
	}

	report := greenhouse.BuildReport(reg, opts)

	if c.outputFile == "" {
		printMarkdown(renderer.ReportMarkdown(report))
		return subcommands.ExitSuccess
	}

	out, err := os.Create(c.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create %q: %v\n", c.outputFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := renderer.WriteReport(out, report, c.pageLines); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote report to %s\n", c.outputFile)
	return subcommands.ExitSuccess
}
