// Command mclab runs Monte Carlo batches across scenarios: many seeded
// replications, optional sensitivity sweeps, and a per-scenario comparison
// table.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/montecarlo"
	"github.com/talgya/farmsim/internal/recorder"
	"github.com/talgya/farmsim/internal/scenario"
)

var paramByName = map[string]montecarlo.Param{
	"meat_price":  montecarlo.ParamMeatPrice,
	"fuel":        montecarlo.ParamFuel,
	"rain_growth": montecarlo.ParamRainGrowth,
	"local_quota": montecarlo.ParamLocalQuota,
	"bale_price":  montecarlo.ParamBalePrice,
	"fertility":   montecarlo.ParamFertility,
}

func main() {
	var (
		configPath  = flag.String("config", "farm.yaml", "base config file (defaults used when missing)")
		scenarioDir = flag.String("scenario-dir", "", "directory of custom scenario YAML files")
		groupsArg   = flag.String("groups", "", "comma-separated scenario groups (empty = all scenarios)")
		runs        = flag.Int("runs", 30, "replications per scenario")
		baseSeed    = flag.Int64("seed", 1000, "base seed; replication i uses seed+i")
		workers     = flag.Int("workers", runtime.NumCPU(), "parallel workers")
		sensArg     = flag.String("sens", "", "comma-separated sensitivity parameters")
		sensRange   = flag.Float64("range", 0.15, "sensitivity half-width r for uniform [1-r, 1+r]")
		laborArg    = flag.String("labor", "scenario", "labor cost policy: scenario, on, off")
		dbPath      = flag.String("db", "", "record the batch into this SQLite file")
		csvDir      = flag.String("out", "", "record the batch as CSV files in this directory")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	repo := scenario.NewRepository()
	if *scenarioDir != "" {
		if err := repo.LoadDir(*scenarioDir); err != nil {
			slog.Error("failed to load scenario dir", "dir", *scenarioDir, "error", err)
			os.Exit(1)
		}
	}
	scenarios := repo.All()
	if *groupsArg != "" {
		scenarios = repo.SelectGroups(strings.Split(*groupsArg, ","))
		if len(scenarios) == 0 {
			slog.Error("no scenarios match", "groups", *groupsArg)
			os.Exit(1)
		}
	}

	var sens []montecarlo.Param
	if *sensArg != "" {
		for _, name := range strings.Split(*sensArg, ",") {
			p, ok := paramByName[strings.TrimSpace(name)]
			if !ok {
				slog.Error("unknown sensitivity parameter", "name", name)
				os.Exit(1)
			}
			sens = append(sens, p)
		}
	}

	var labor montecarlo.LaborPolicy
	switch *laborArg {
	case "scenario":
		labor = montecarlo.LaborAsScenario
	case "on":
		labor = montecarlo.LaborAllOn
	case "off":
		labor = montecarlo.LaborAllOff
	default:
		slog.Error("unknown labor policy", "policy", *laborArg)
		os.Exit(1)
	}

	runner := &montecarlo.Runner{
		Base:             base,
		Scenarios:        scenarios,
		Runs:             *runs,
		BaseSeed:         *baseSeed,
		Sensitivity:      sens,
		SensitivityRange: *sensRange,
		Labor:            labor,
		Workers:          *workers,
	}
	batch, err := runner.Run()
	if err != nil {
		slog.Error("batch failed", "error", err)
		os.Exit(1)
	}

	if err := record(*dbPath, *csvDir, batch); err != nil {
		slog.Error("failed to record batch", "error", err)
		os.Exit(1)
	}

	printTable(batch)
}

func record(dbPath, csvDir string, batch *montecarlo.BatchResult) error {
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
		if err := sink.RecordSummaries(batch.BatchID, batch.Summaries); err != nil {
			return err
		}
		if err := sink.RecordQuarterly(batch.BatchID, batch.Quarterly); err != nil {
			return err
		}
		if err := sink.Close(); err != nil {
			return err
		}
	}
	return nil
}

type scenarioStats struct {
	name      string
	runs      int
	bankrupt  int
	profitSum float64
	profitMin float64
	profitMax float64
}

func printTable(batch *montecarlo.BatchResult) {
	byName := make(map[string]*scenarioStats)
	for _, s := range batch.Summaries {
		st, ok := byName[s.Scenario]
		if !ok {
			st = &scenarioStats{name: s.Scenario, profitMin: s.Profit, profitMax: s.Profit}
			byName[s.Scenario] = st
		}
		st.runs++
		st.profitSum += s.Profit
		if s.Bankrupt {
			st.bankrupt++
		}
		if s.Profit < st.profitMin {
			st.profitMin = s.Profit
		}
		if s.Profit > st.profitMax {
			st.profitMax = s.Profit
		}
	}

	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Printf("%-40s %6s %10s %14s %14s %14s\n",
		"scenario", "runs", "bankrupt", "avg profit", "worst", "best")
	for _, n := range names {
		st := byName[n]
		fmt.Printf("%-40s %6d %9.0f%% %14s %14s %14s\n",
			st.name, st.runs,
			100*float64(st.bankrupt)/float64(st.runs),
			humanize.Commaf(st.profitSum/float64(st.runs)),
			humanize.Commaf(st.profitMin),
			humanize.Commaf(st.profitMax))
	}
}
