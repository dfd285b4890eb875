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

// parseOptionalDate parses a date flag, where the empty string means
// "unset" (an open bound).
func parseOptionalDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// --- Add Delivery Command ---

type addDeliveryCmd struct {
	date        string
	quantity    float64
	boxes       int
	destination string
	recipient   string
	notes       string
	onDuplicate string
}

func (*addDeliveryCmd) Name() string     { return "add-delivery" }
func (*addDeliveryCmd) Synopsis() string { return "record a produce delivery" }
func (*addDeliveryCmd) Usage() string {
	return `add-delivery [-d <date>] -q <kg> -b <boxes> -dest <destination> -r <partner> [-n <notes>] [-on-duplicate cancel|add|replace]

  Records a delivery. One delivery per date is expected: when a delivery
  already exists on the given date the command stops, unless
  -on-duplicate says to add a second one or to replace the existing
  delivery's fields in place. See "ghs topic duplicates".
`
}

func (c *addDeliveryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Delivery date (YYYY-MM-DD)")
	f.Float64Var(&c.quantity, "q", 0, "Quantity in kilograms")
	f.IntVar(&c.boxes, "b", 0, "Number of boxes")
	f.StringVar(&c.destination, "dest", "", "Destination")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.StringVar(&c.notes, "n", "", "Optional notes")
	f.StringVar(&c.onDuplicate, "on-duplicate", "cancel", "What to do when a delivery already exists on that date (cancel, add, replace)")
}

func (c *addDeliveryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity < 0 || c.boxes < 0 || c.recipient == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
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

	p, err := resolvePartner(reg, c.recipient)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fields := greenhouse.DeliveryFields{
		Date:        day,
		Quantity:    greenhouse.Q(c.quantity),
		Boxes:       c.boxes,
		Destination: c.destination,
		RecipientID: p.ID,
		Notes:       c.notes,
	}

	// Pre-insert duplicate guard: detection here, policy chosen by the user.
	if existing, ok := reg.FindDeliveryByDate(day); ok {
		switch c.onDuplicate {
		case "add":
			// fall through to the insert below
		case "replace":
			if _, err := reg.UpdateDelivery(existing.ID, fields); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
			fmt.Printf("Replaced delivery %s on %s\n", existing.ID, day)
			return subcommands.ExitSuccess
		default:
			fmt.Fprintf(os.Stderr, "a delivery already exists on %s (id %s, %skg to %s)\n",
				day, existing.ID, existing.Quantity, existing.Destination)
			fmt.Fprintln(os.Stderr, "re-run with -on-duplicate add to keep both, or -on-duplicate replace to overwrite it")
			return subcommands.ExitFailure
		}
	}

	d, err := reg.AddDelivery(fields)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added delivery %s on %s\n", d.ID, d.Date)
	return subcommands.ExitSuccess
}

// --- Edit Delivery Command ---

type editDeliveryCmd struct {
	id          string
	date        string
	quantity    float64
	boxes       int
	destination string
	recipient   string
	notes       string
}

func (*editDeliveryCmd) Name() string     { return "edit-delivery" }
func (*editDeliveryCmd) Synopsis() string { return "change fields of an existing delivery" }
func (*editDeliveryCmd) Usage() string {
	return `edit-delivery -id <id> [-d <date>] [-q <kg>] [-b <boxes>] [-dest <destination>] [-r <partner>] [-n <notes>]

  Updates a delivery in place. Only the given flags change; the id and
  creation time never do.
`
}

func (c *editDeliveryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Delivery id")
	f.StringVar(&c.date, "d", "", "Delivery date (YYYY-MM-DD)")
	f.Float64Var(&c.quantity, "q", 0, "Quantity in kilograms")
	f.IntVar(&c.boxes, "b", 0, "Number of boxes")
	f.StringVar(&c.destination, "dest", "", "Destination")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.StringVar(&c.notes, "n", "", "Notes")
}

func (c *editDeliveryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	existing, ok := reg.FindDelivery(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "no delivery with id %q\n", c.id)
		return subcommands.ExitFailure
	}

	// Start from the current fields and overlay the flags that were set.
	fields := existing.Fields()
	var flagErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "d":
			day, err := date.Parse(c.date)
			if err != nil {
				flagErr = err
				return
			}
			fields.Date = day
		case "q":
			fields.Quantity = greenhouse.Q(c.quantity)
		case "b":
			fields.Boxes = c.boxes
		case "dest":
			fields.Destination = c.destination
		case "r":
			p, err := resolvePartner(reg, c.recipient)
			if err != nil {
				flagErr = err
				return
			}
			fields.RecipientID = p.ID
		case "n":
			fields.Notes = c.notes
		}
	})
	if flagErr != nil {
		fmt.Fprintln(os.Stderr, flagErr)
		return subcommands.ExitFailure
	}

	if _, err := reg.UpdateDelivery(c.id, fields); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated delivery %s\n", c.id)
	return subcommands.ExitSuccess
}

// --- Delete Delivery Command ---

type deleteDeliveryCmd struct {
	id string
}

func (*deleteDeliveryCmd) Name() string     { return "delete-delivery" }
func (*deleteDeliveryCmd) Synopsis() string { return "remove a delivery" }
func (*deleteDeliveryCmd) Usage() string {
	return `delete-delivery -id <id>
`
}

func (c *deleteDeliveryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Delivery id")
}

func (c *deleteDeliveryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	removed, err := reg.DeleteDelivery(c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "no delivery with id %q\n", c.id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted delivery %s\n", c.id)
	return subcommands.ExitSuccess
}

// --- List Deliveries Command ---

type listDeliveriesCmd struct {
	from        string
	to          string
	recipient   string
	destination string
	sortBy      string
	order       string
}

func (*listDeliveriesCmd) Name() string     { return "list-deliveries" }
func (*listDeliveriesCmd) Synopsis() string { return "display deliveries, filtered and sorted" }
func (*listDeliveriesCmd) Usage() string {
	return `list-deliveries [-from <date>] [-to <date>] [-r <partner>] [-dest <substring>] [-sort date|quantity] [-order asc|desc]

  Lists deliveries. Date bounds are inclusive; the destination filter is a
  case-insensitive substring match.
`
}

func (c *listDeliveriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Earliest delivery date (inclusive)")
	f.StringVar(&c.to, "to", "", "Latest delivery date (inclusive)")
	f.StringVar(&c.recipient, "r", "", "Recipient partner (id or name)")
	f.StringVar(&c.destination, "dest", "", "Destination substring")
	f.StringVar(&c.sortBy, "sort", "date", "Sort key (date, quantity)")
	f.StringVar(&c.order, "order", "desc", "Sort order (asc, desc)")
}

func (c *listDeliveriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	filter := greenhouse.DeliveryFilter{Destination: c.destination}
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
	key, err := greenhouse.ParseSortKey(c.sortBy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	order, err := greenhouse.ParseOrder(c.order)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	deliveries := greenhouse.FilterDeliveries(reg.Deliveries(), filter)
	deliveries = greenhouse.SortDeliveries(deliveries, key, order)

	printMarkdown(renderer.DeliveriesMarkdown(deliveries, reg.PartnerName))
	return subcommands.ExitSuccess
}
