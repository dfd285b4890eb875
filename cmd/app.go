// Package cmd implements the CLI application to manage greenhouse
// records.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/ogrod/greenhouse"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addPartnerCmd{}, "partners")
	c.Register(&renamePartnerCmd{}, "partners")
	c.Register(&deletePartnerCmd{}, "partners")
	c.Register(&listPartnersCmd{}, "partners")

	c.Register(&addDeliveryCmd{}, "deliveries")
	c.Register(&editDeliveryCmd{}, "deliveries")
	c.Register(&deleteDeliveryCmd{}, "deliveries")
	c.Register(&listDeliveriesCmd{}, "deliveries")

	c.Register(&addSettlementCmd{}, "settlements")
	c.Register(&editSettlementCmd{}, "settlements")
	c.Register(&deleteSettlementCmd{}, "settlements")
	c.Register(&listSettlementsCmd{}, "settlements")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&topicCmd{}, "")
}

// appConfig is the process environment configuration, overridable by the
// top-level flags below.
type appConfig struct {
	DataDir string `env:"GREENHOUSE_DATA" envDefault:".greenhouse"`
	Store   string `env:"GREENHOUSE_STORE" envDefault:"dir"`
}

func loadConfig() appConfig {
	var c appConfig
	if err := env.Parse(&c); err != nil {
		slog.Warn("could not parse environment, using defaults", "err", err)
		return appConfig{DataDir: ".greenhouse", Store: "dir"}
	}
	return c
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var cfg = loadConfig()

var dataDir = flag.String("data", cfg.DataDir, "Path to the data directory")
var storeBackend = flag.String("store", cfg.Store, "Storage backend (dir or sqlite)")

// openStore opens the configured storage backend.
func openStore() (greenhouse.Store, error) {
	switch *storeBackend {
	case "dir":
		return greenhouse.NewDirStore(*dataDir), nil
	case "sqlite":
		if err := os.MkdirAll(*dataDir, 0755); err != nil {
			return nil, fmt.Errorf("could not create data directory %q: %w", *dataDir, err)
		}
		return greenhouse.OpenSQLiteStore(filepath.Join(*dataDir, "greenhouse.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want dir or sqlite)", *storeBackend)
	}
}

// openRegistry opens the store and loads the registry from it. The caller
// must Close the returned store.
func openRegistry() (*greenhouse.Registry, greenhouse.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	reg, err := greenhouse.NewRegistry(store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return reg, store, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
