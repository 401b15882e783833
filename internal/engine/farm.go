// Package engine runs the day-by-day farm simulation: it owns the mutable
// farm state and advances it through a fixed daily phase order so that a
// given seed always replays the identical five years.
package engine

import (
	"fmt"

	"github.com/talgya/farmsim/internal/breeding"
	"github.com/talgya/farmsim/internal/calendar"
	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/entropy"
	"github.com/talgya/farmsim/internal/feed"
	"github.com/talgya/farmsim/internal/herd"
	"github.com/talgya/farmsim/internal/weather"
)

// Starting body condition for a freshly stocked flock.
const initialBCS = 3.0

// Farm is the complete mutable state of one simulated farm.
type Farm struct {
	Config  *config.FarmConfig
	RNG     *entropy.Stream
	Weather *weather.State
	Herd    *herd.State

	Breeding breeding.Pipeline
	Feed     feed.State

	PastureHealth float64
	Cash          float64
	BCS           float64

	pastureHa float64 // grazing land, the share not reserved for hay

	Events    []Event
	Snapshots []AgeSnapshot
	Records   []DailyRecord
}

// NewFarm stocks a farm from the config and seeds its entropy stream. Two
// farms built from the same config and seed produce identical runs.
func NewFarm(cfg *config.FarmConfig, seed int64) *Farm {
	climate := cfg.ResolveClimate()
	return &Farm{
		Config:  cfg,
		RNG:     entropy.New(seed),
		Weather: weather.New(climate, seed),
		Herd:    herd.New(cfg.InitialEwes),
		Feed: feed.State{
			StockBales:   cfg.InitialHayBales,
			PerceivedBCS: initialBCS,
		},
		PastureHealth: 1.0,
		Cash:          cfg.Capital,
		BCS:           initialBCS,
		pastureHa:     cfg.LandArea * (1 - cfg.MeadowShare),
		Records:       make([]DailyRecord, 0, cfg.SimYears*calendar.DaysPerYear),
	}
}

// Run advances the farm through every simulated day and returns the full
// time series.
func (f *Farm) Run() *Result {
	days := f.Config.SimYears * calendar.DaysPerYear
	for t := 0; t < days; t++ {
		f.Step(t)
	}
	return &Result{
		Records:   f.Records,
		Events:    f.Events,
		Snapshots: f.Snapshots,
	}
}

// logf appends a dated event to the run log.
func (f *Farm) logf(t int, category, format string, args ...any) {
	d := calendar.FromDayIndex(t)
	f.Events = append(f.Events, Event{
		Day:         t,
		Description: fmt.Sprintf("%s  %s", d, fmt.Sprintf(format, args...)),
		Category:    category,
	})
}
