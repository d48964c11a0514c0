// Command targeting-sim runs a scenario headlessly and optionally journals
// it to sqlite and renders the final board.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/targeting/internal/config"
	"github.com/banshee-data/targeting/internal/db"
	"github.com/banshee-data/targeting/internal/monitoring"
	"github.com/banshee-data/targeting/internal/simulation"
	"github.com/banshee-data/targeting/internal/version"
	"github.com/banshee-data/targeting/internal/visualiser"
)

// Config holds the command-line options.
type Config struct {
	ScenarioPath string
	TuningPath   string
	JournalPath  string
	BoardPNG     string
	Debug        bool
	ShowVersion  bool
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.ScenarioPath, "scenario", "config/scenarios/crossing.yaml", "Path to the YAML scenario")
	flag.StringVar(&cfg.TuningPath, "config", "", "Path to a JSON tuning file (defaults to config/tuning.defaults.json)")
	flag.StringVar(&cfg.JournalPath, "journal", "", "sqlite file to journal the run into")
	flag.StringVar(&cfg.BoardPNG, "board", "", "Write the final contact board to this PNG file")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print the version and exit")

	flag.Parse()

	return cfg
}

func loadTuning(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.MustLoadDefaultConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

func main() {
	os.Exit(run(parseFlags()))
}

// run executes the command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(cfg Config) int {
	if cfg.ShowVersion {
		fmt.Println(version.String())
		return 0
	}
	monitoring.SetDebug(cfg.Debug)

	tuning, err := loadTuning(cfg.TuningPath)
	if err != nil {
		log.Printf("Failed to load tuning config: %v", err)
		return 1
	}
	scenario, err := simulation.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		log.Printf("Failed to load scenario: %v", err)
		return 1
	}

	sim, err := simulation.New(tuning, scenario)
	if err != nil {
		log.Printf("Failed to build simulation: %v", err)
		return 1
	}

	if cfg.JournalPath != "" {
		store, err := db.NewDB(cfg.JournalPath)
		if err != nil {
			log.Printf("Failed to open journal: %v", err)
			return 1
		}
		defer store.Close()

		rec, err := simulation.NewRecorder(store, scenario.Name, tuning.GetTickLength(), tuning.GetJournalEveryTicks())
		if err != nil {
			log.Printf("Failed to start journal run: %v", err)
			return 1
		}
		sim.SetRecorder(rec)
		log.Printf("Journalling run %s to %s", rec.Run().ID, cfg.JournalPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum, runErr := sim.Run(ctx)
	if runErr != nil {
		log.Printf("Run ended early: %v", runErr)
	}

	if cfg.BoardPNG != "" {
		impacts := visualiser.Impacts(sum.ImpactPoints())
		if err := visualiser.SaveBoardPNG(cfg.BoardPNG, sim.Manager().Board(), sim.Emitter(), impacts); err != nil {
			log.Printf("Failed to render board: %v", err)
		}
	}

	fmt.Fprintf(os.Stdout, "scenario=%s ticks=%d contacts=%d tracked=%d max_contacts=%d solutions=%d\n",
		sum.Scenario, sum.Ticks, sum.FinalContacts, sum.FinalTracked, sum.MaxContacts, sum.Solutions)
	if runErr != nil {
		return 1
	}
	return 0
}
