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

// resolvePartner finds a partner by id, or by name when the name is
// unambiguous.
func resolvePartner(reg *greenhouse.Registry, idOrName string) (greenhouse.Partner, error) {
	if p, ok := reg.FindPartner(idOrName); ok {
		return p, nil
	}
	var matches []greenhouse.Partner
	for _, p := range reg.Partners() {
		if p.Name == idOrName {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return greenhouse.Partner{}, fmt.Errorf("no partner %q", idOrName)
	case 1:
		return matches[0], nil
	default:
		return greenhouse.Partner{}, fmt.Errorf("multiple partners named %q, use the id", idOrName)
	}
}

// --- Add Partner Command ---

type addPartnerCmd struct {
	name string
}

func (*addPartnerCmd) Name() string     { return "add-partner" }
func (*addPartnerCmd) Synopsis() string { return "declare a new delivery and settlement partner" }
func (*addPartnerCmd) Usage() string {
	return `add-partner -name <name>

  Declares a partner. Partner names are user-editable and need not be
  unique; the assigned id identifies the partner.
`
}

func (c *addPartnerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Partner name")
}

func (c *addPartnerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	p, err := reg.AddPartner(greenhouse.PartnerFields{Name: c.name})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added partner %q with id %s\n", p.Name, p.ID)
	return subcommands.ExitSuccess
}

// --- Rename Partner Command ---

type renamePartnerCmd struct {
	partner string
	name    string
}

func (*renamePartnerCmd) Name() string     { return "rename-partner" }
func (*renamePartnerCmd) Synopsis() string { return "change a partner's name" }
func (*renamePartnerCmd) Usage() string {
	return `rename-partner -r <id|name> -name <new name>

  Renames a partner. The id and creation time are unchanged; existing
  deliveries and settlements keep pointing at the same partner.
`
}

func (c *renamePartnerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.partner, "r", "", "Partner id or name")
	f.StringVar(&c.name, "name", "", "New partner name")
}

func (c *renamePartnerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.partner == "" || c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	p, err := resolvePartner(reg, c.partner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if _, err := reg.UpdatePartner(p.ID, greenhouse.PartnerFields{Name: c.name}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Renamed partner %q to %q\n", p.Name, c.name)
	return subcommands.ExitSuccess
}

// --- Delete Partner Command ---

type deletePartnerCmd struct {
	partner string
}

func (*deletePartnerCmd) Name() string     { return "delete-partner" }
func (*deletePartnerCmd) Synopsis() string { return "remove a partner" }
func (*deletePartnerCmd) Usage() string {
	return `delete-partner -r <id|name>

  Removes a partner. Deliveries and settlements referencing it are kept
  and will show an unknown recipient; a warning lists how many are
  affected, but the deletion is never blocked.
`
}

func (c *deletePartnerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.partner, "r", "", "Partner id or name")
}

func (c *deletePartnerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.partner == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	p, err := resolvePartner(reg, c.partner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	deliveries, settlements := reg.UsageOfPartner(p.ID)
	if deliveries > 0 || settlements > 0 {
		fmt.Fprintf(os.Stderr, "warning: partner %q is referenced by %d deliveries and %d settlements; those records will keep an unresolved recipient\n",
			p.Name, deliveries, settlements)
	}
	if _, err := reg.DeletePartner(p.ID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted partner %q\n", p.Name)
	return subcommands.ExitSuccess
}

// --- List Partners Command ---

type listPartnersCmd struct{}

func (*listPartnersCmd) Name() string     { return "list-partners" }
func (*listPartnersCmd) Synopsis() string { return "list partners with their usage counts" }
func (*listPartnersCmd) Usage() string {
	return `list-partners

  Lists all partners with the number of deliveries and settlements
  referencing each.
`
}

func (c *listPartnersCmd) SetFlags(f *flag.FlagSet) {}

func (c *listPartnersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, store, err := openRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	printMarkdown(renderer.PartnersMarkdown(reg.Partners(), reg.UsageOfPartner))
	return subcommands.ExitSuccess
}
