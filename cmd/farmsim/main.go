// Command farmsim runs a single sheep-farm simulation and reports the
// outcome.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/engine"
	"github.com/talgya/farmsim/internal/recorder"
	"github.com/talgya/farmsim/internal/scenario"
)

func main() {
	var (
		configPath  = flag.String("config", "farm.yaml", "base config file (defaults used when missing)")
		scenarioArg = flag.String("scenario", "", "scenario to run (empty = bare base config)")
		scenarioDir = flag.String("scenario-dir", "", "directory of custom scenario YAML files")
		seed        = flag.Int64("seed", 42, "simulation seed")
		years       = flag.Int("years", 0, "override sim_years (0 = keep config value)")
		dbPath      = flag.String("db", "", "record the run into this SQLite file")
		csvDir      = flag.String("out", "", "record the run as CSV files in this directory")
		listOnly    = flag.Bool("list", false, "list available scenarios and exit")
		showEvents  = flag.Int("events", 15, "print the last N events")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	repo := scenario.NewRepository()
	if *scenarioDir != "" {
		if err := repo.LoadDir(*scenarioDir); err != nil {
			slog.Error("failed to load scenario dir", "dir", *scenarioDir, "error", err)
			os.Exit(1)
		}
	}
	if *listOnly {
		for _, s := range repo.All() {
			fmt.Printf("  [%s] %s\n", s.Group, s.Name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	scenarioName := "base"
	if *scenarioArg != "" {
		s, err := repo.Get(*scenarioArg)
		if err != nil {
			slog.Error("unknown scenario", "error", err)
			os.Exit(1)
		}
		if cfg, err = s.Apply(cfg); err != nil {
			slog.Error("failed to apply scenario", "error", err)
			os.Exit(1)
		}
		scenarioName = s.Name
	}
	if *years > 0 {
		cfg.SimYears = *years
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting run",
		"scenario", scenarioName, "seed", *seed, "years", cfg.SimYears,
		"ewes", cfg.InitialEwes, "land_ha", cfg.LandArea)

	res := engine.NewFarm(&cfg, *seed).Run()

	if err := record(*dbPath, *csvDir, recorder.RunMeta{Scenario: scenarioName, Seed: *seed}, res); err != nil {
		slog.Error("failed to record run", "error", err)
		os.Exit(1)
	}

	printSummary(&cfg, res, *showEvents)
}

func record(dbPath, csvDir string, meta recorder.RunMeta, res *engine.Result) error {
	var sinks []recorder.Recorder
	if dbPath != "" {
		db, err := recorder.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		sinks = append(sinks, db)
	}
	if csvDir != "" {
		c, err := recorder.NewCSV(csvDir)
		if err != nil {
			return err
		}
		sinks = append(sinks, c)
	}
	for _, sink := range sinks {
		if err := sink.RecordRun(meta, res); err != nil {
			return err
		}
		if err := sink.Close(); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(cfg *config.FarmConfig, res *engine.Result, eventTail int) {
	last := res.Records[len(res.Records)-1]
	profit := last.Cash - cfg.Capital

	var hours float64
	var droughtDays int
	minBCS := res.Records[0].BCS
	for _, r := range res.Records {
		hours += r.LaborHours
		if r.Drought {
			droughtDays++
		}
		if r.BCS < minBCS {
			minBCS = r.BCS
		}
	}

	fmt.Println()
	fmt.Printf("final cash      %s\n", humanize.Commaf(last.Cash))
	fmt.Printf("profit          %s\n", humanize.Commaf(profit))
	fmt.Printf("herd            %d ewes, %d rams, %d lambs\n",
		last.Ewes, last.Rams, last.LambsMale+last.LambsFemale)
	fmt.Printf("hay in barn     %.0f bales\n", last.HayBales)
	fmt.Printf("body condition  %.2f (min %.2f)\n", last.BCS, minBCS)
	fmt.Printf("pasture health  %.2f\n", last.PastureHealth)
	fmt.Printf("labor           %s hours\n", humanize.Commaf(hours))
	fmt.Printf("drought days    %d\n", droughtDays)

	if eventTail > 0 && len(res.Events) > 0 {
		fmt.Println()
		start := len(res.Events) - eventTail
		if start < 0 {
			start = 0
		}
		for _, e := range res.Events[start:] {
			fmt.Printf("  %s\n", e.Description)
		}
	}
}
