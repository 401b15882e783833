// Package recorder persists simulation output: single runs as daily time
// series plus events, and batch results as summary and quarterly tables.
package recorder

import (
	"github.com/talgya/farmsim/internal/engine"
	"github.com/talgya/farmsim/internal/montecarlo"
)

// RunMeta identifies one recorded run.
type RunMeta struct {
	Scenario string
	Seed     int64
}

// Recorder is a sink for simulation output.
type Recorder interface {
	RecordRun(meta RunMeta, res *engine.Result) error
	RecordSummaries(batchID string, sums []montecarlo.RunSummary) error
	RecordQuarterly(batchID string, rows []montecarlo.QuarterlySample) error
	Close() error
}

// Noop discards everything. Used when no output path is configured.
type Noop struct{}

func (Noop) RecordRun(RunMeta, *engine.Result) error                    { return nil }
func (Noop) RecordSummaries(string, []montecarlo.RunSummary) error      { return nil }
func (Noop) RecordQuarterly(string, []montecarlo.QuarterlySample) error { return nil }
func (Noop) Close() error                                               { return nil }
