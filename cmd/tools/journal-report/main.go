// Command journal-report renders a journalled run as an HTML chart page.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/targeting/internal/db"
	"github.com/banshee-data/targeting/internal/visualiser"
)

// Config holds the command-line options.
type Config struct {
	DBPath string
	RunID  string
	Output string
	List   bool
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.DBPath, "db", "journal.db", "Journal sqlite file")
	flag.StringVar(&cfg.RunID, "run", "", "Run id to render (defaults to the most recent run)")
	flag.StringVar(&cfg.Output, "output", "journal.html", "Output HTML file")
	flag.BoolVar(&cfg.List, "list", false, "List recorded runs and exit")

	flag.Parse()

	return cfg
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Printf("journal-report: %v", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	store, err := db.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	runs, err := store.Runs()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if cfg.List {
		for _, r := range runs {
			fmt.Printf("%s  %-20s  tick=%.4fs  %s\n", r.ID, r.Scenario, r.TickLength, r.StartedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	id := cfg.RunID
	if id == "" {
		if len(runs) == 0 {
			return fmt.Errorf("no runs recorded in %s", cfg.DBPath)
		}
		id = runs[0].ID
	}

	j, err := visualiser.LoadJournal(store, id)
	if err != nil {
		return fmt.Errorf("load run %s: %w", id, err)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output, err)
	}

	renderErr := visualiser.RenderJournal(f, j)
	if err := errors.Join(renderErr, f.Close()); err != nil {
		return fmt.Errorf("render journal: %w", err)
	}
	log.Printf("Wrote %d contact samples and %d solutions for run %s to %s",
		len(j.Contacts), len(j.Solutions), id, cfg.Output)
	return nil
}
