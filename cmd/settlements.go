package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
	"github.com/ogrod/greenhouse"
	"github.com/ogrod/greenhouse/date"
	"github.com/ogrod/greenhouse/renderer"
)

// --- Add Settlement Command ---

type addSettlementCmd struct {
	from      string
	to        string
	recipient string
	quantity  float64
	amount    float64
	notes     string
}

func (*addSettlementCmd) Name() string     { return "add-settlement" }
func (*addSettlementCmd) Synopsis() string { return "record a payment covering a delivery period" }
func (*addSettlementCmd) Usage() string {
	return `add-settlement -from <date> -to <date> -r <partner> -q <kg> -a <amount> [-n <notes>]

  Records a settlement: a payment covering the deliveries of a date
  range for one partner.
`
}

func (c *addSettlementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Start of the covered period (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "End of the covered period (YYYY-MM-DD)")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.Float64Var(&c.quantity, "q", 0, "Settled quantity in kilograms")
	f.Float64Var(&c.amount, "a", 0, "Amount paid")
	f.StringVar(&c.notes, "n", "", "Optional notes")
}

func (c *addSettlementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.recipient == "" || c.quantity < 0 || c.amount < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	fromDate, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing from date: %v\n", err)
		return subcommands.ExitUsageError
	}
	toDate, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing to date: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	p, err := resolvePartner(reg, c.recipient)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s, err := reg.AddSettlement(greenhouse.SettlementFields{
		FromDate:    fromDate,
		ToDate:      toDate,
		RecipientID: p.ID,
		Quantity:    greenhouse.Q(c.quantity),
		AmountPaid:  greenhouse.A(c.amount),
		Notes:       c.notes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added settlement %s covering %s - %s\n", s.ID, s.FromDate, s.ToDate)
	return subcommands.ExitSuccess
}

// --- Edit Settlement Command ---

type editSettlementCmd struct {
	id        string
	from      string
	to        string
	recipient string
	quantity  float64
	amount    float64
	notes     string
}

func (*editSettlementCmd) Name() string     { return "edit-settlement" }
func (*editSettlementCmd) Synopsis() string { return "change fields of an existing settlement" }
func (*editSettlementCmd) Usage() string {
	return `edit-settlement -id <id> [-from <date>] [-to <date>] [-r <partner>] [-q <kg>] [-a <amount>] [-n <notes>]

  Updates a settlement in place. Only the given flags change; the id and
  creation time never do.
`
}

func (c *editSettlementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Settlement id")
	f.StringVar(&c.from, "from", "", "Start of the covered period (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "End of the covered period (YYYY-MM-DD)")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.Float64Var(&c.quantity, "q", 0, "Settled quantity in kilograms")
	f.Float64Var(&c.amount, "a", 0, "Amount paid")
	f.StringVar(&c.notes, "n", "", "Notes")
}

func (c *editSettlementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	existing, ok := reg.FindSettlement(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "no settlement with id %q\n", c.id)
		return subcommands.ExitFailure
	}

	// Start from the current fields and overlay the flags that were set.
	fields := existing.Fields()
	var flagErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "from":
			d, err := date.Parse(c.from)
			if err != nil {
				flagErr = err
				return
			}
			fields.FromDate = d
		case "to":
			d, err := date.Parse(c.to)
			if err != nil {
				flagErr = err
				return
			}
			fields.ToDate = d
		case "r":
			p, err := resolvePartner(reg, c.recipient)
			if err != nil {
				flagErr = err
				return
			}
			fields.RecipientID = p.ID
		case "q":
			fields.Quantity = greenhouse.Q(c.quantity)
		case "a":
			fields.AmountPaid = greenhouse.A(c.amount)
		case "n":
			fields.Notes = c.notes
		}
	})
	if flagErr != nil {
		fmt.Fprintln(os.Stderr, flagErr)
		return subcommands.ExitFailure
	}

	if _, err := reg.UpdateSettlement(c.id, fields); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated settlement %s\n", c.id)
	return subcommands.ExitSuccess
}

// --- Delete Settlement Command ---

type deleteSettlementCmd struct {
	id string
}

func (*deleteSettlementCmd) Name() string     { return "delete-settlement" }
func (*deleteSettlementCmd) Synopsis() string { return "remove a settlement" }
func (*deleteSettlementCmd) Usage() string {
	return `delete-settlement -id <id>
`
}

func (c *deleteSettlementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Settlement id")
}

func (c *deleteSettlementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	removed, err := reg.DeleteSettlement(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "no settlement with id %q\n", c.id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted settlement %s\n", c.id)
	return subcommands.ExitSuccess
}

// --- List Settlements Command ---

type listSettlementsCmd struct {
	from      string
	to        string
	recipient string
	amountMin float64
	amountMax float64
}

func (*listSettlementsCmd) Name() string     { return "list-settlements" }
func (*listSettlementsCmd) Synopsis() string { return "display settlements, filtered" }
func (*listSettlementsCmd) Usage() string {
	return `list-settlements [-from <date>] [-to <date>] [-r <partner>] [-min <amount>] [-max <amount>]

  Lists settlements, most recently recorded first. -from bounds the start
  and -to the end of the covered period; amount bounds are inclusive.
`
}

func (c *listSettlementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Earliest period start (inclusive)")
	f.StringVar(&c.to, "to", "", "Latest period end (inclusive)")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.Float64Var(&c.amountMin, "min", 0, "Minimum amount paid (inclusive)")
	f.Float64Var(&c.amountMax, "max", 0, "Maximum amount paid (inclusive)")
}

func (c *listSettlementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	filter := greenhouse.SettlementFilter{}
	if filter.From, err = parseOptionalDate(c.from); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if filter.To, err = parseOptionalDate(c.to); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.recipient != "" {
		p, err := resolvePartner(reg, c.recipient)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		filter.RecipientID = p.ID
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "min":
			filter.AmountMin = greenhouse.A(c.amountMin)
			filter.HasAmountMin = true
		case "max":
			filter.AmountMax = greenhouse.A(c.amountMax)
			filter.HasAmountMax = true
		}
	})

	settlements := greenhouse.FilterSettlements(reg.Settlements(), filter)
	// Most recently recorded first, matching the settlements view.
	sort.SliceStable(settlements, func(i, j int) bool {
		return settlements[j].CreatedAt.Before(settlements[i].CreatedAt)
	})

	printMarkdown(renderer.SettlementsMarkdown(settlements, reg.PartnerName))
	return subcommands.ExitSuccess
}
