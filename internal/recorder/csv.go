package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/talgya/farmsim/internal/engine"
	"github.com/talgya/farmsim/internal/montecarlo"
)

// CSV writes output as plain files in a directory: one daily file per run
// plus summary and quarterly tables per batch.
type CSV struct {
	dir string
}

// NewCSV prepares a directory sink.
func NewCSV(dir string) (*CSV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &CSV{dir: dir}, nil
}

// Close is a no-op; every write opens and closes its own file.
func (c *CSV) Close() error { return nil }

func (c *CSV) writeAll(name string, rows [][]string) error {
	f, err := os.Create(filepath.Join(c.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
func fi(v int) string     { return strconv.Itoa(v) }
func fb(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// RecordRun writes the daily table and the event log for one run.
func (c *CSV) RecordRun(meta RunMeta, res *engine.Result) error {
	prefix := fmt.Sprintf("run_%s_%d", sanitize(meta.Scenario), meta.Seed)

	daily := [][]string{{
		"day", "date", "cash", "ewes", "rams", "lambs", "pregnant",
		"hay_bales", "pending_bales", "feed_source", "bcs", "perceived_bcs",
		"pasture_health", "regime", "soil_moisture", "winter", "drought",
		"meat_price", "feed_cost", "variable_cost", "overhead_cost",
		"labor_cost", "labor_hours", "shock_cost", "income_meat",
		"income_hay", "income_subsidy", "sold_animals", "sold_hay",
	}}
	for _, r := range res.Records {
		variable := r.VetCost + r.ShearingCost + r.RamCost + r.MachineryCost + r.MowingCost + r.AdminCost
		daily = append(daily, []string{
			fi(r.Day), r.Date, ff(r.Cash), fi(r.Ewes), fi(r.Rams),
			fi(r.LambsMale + r.LambsFemale), fi(r.PregnantEwes),
			ff(r.HayBales), ff(r.PendingBales), r.FeedSource, ff(r.BCS), ff(r.PerceivedBCS),
			ff(r.PastureHealth), ff(r.Regime), ff(r.SoilMoisture), fb(r.Winter), fb(r.Drought),
			ff(r.MeatPrice), ff(r.FeedCost), ff(variable), ff(r.OverheadCost),
			ff(r.LaborCost), ff(r.LaborHours), ff(r.ShockCost), ff(r.IncomeMeat),
			ff(r.IncomeHay), ff(r.IncomeSubsidy), fi(r.SoldAnimals), ff(r.SoldHay),
		})
	}
	if err := c.writeAll(prefix+"_daily.csv", daily); err != nil {
		return err
	}

	events := [][]string{{"day", "category", "description"}}
	for _, e := range res.Events {
		events = append(events, []string{fi(e.Day), e.Category, e.Description})
	}
	return c.writeAll(prefix+"_events.csv", events)
}

// RecordSummaries writes the batch summary table.
func (c *CSV) RecordSummaries(batchID string, sums []montecarlo.RunSummary) error {
	rows := [][]string{{
		"batch_id", "scenario", "group", "seed", "initial_ewes", "land_area",
		"profit", "efficiency", "final_cash", "min_cash", "bankrupt", "min_bcs", "avg_bcs",
		"max_bcs", "final_herd", "final_pasture", "final_hay", "labor_hours",
		"drought_days", "winter_days",
	}}
	for _, s := range sums {
		rows = append(rows, []string{
			batchID, s.Scenario, s.Group, strconv.FormatInt(s.Seed, 10),
			fi(s.InitialEwes), ff(s.LandArea), ff(s.Profit), ff(s.Efficiency),
			ff(s.FinalCash), ff(s.MinCash), fb(s.Bankrupt), ff(s.MinBCS), ff(s.AvgBCS),
			ff(s.MaxBCS), fi(s.FinalHerd), ff(s.FinalPastureHealth),
			ff(s.FinalHayBales), ff(s.LaborHours), fi(s.DroughtDays), fi(s.WinterDays),
		})
	}
	return c.writeAll(fmt.Sprintf("batch_%s_summary.csv", batchID), rows)
}

// RecordQuarterly writes the batch quarter-end samples.
func (c *CSV) RecordQuarterly(batchID string, samples []montecarlo.QuarterlySample) error {
	rows := [][]string{{
		"batch_id", "scenario", "seed", "quarter", "cash", "ewes", "lambs",
		"hay_bales", "bcs", "pasture_health",
	}}
	for _, q := range samples {
		rows = append(rows, []string{
			batchID, q.Scenario, strconv.FormatInt(q.Seed, 10), q.Quarter,
			ff(q.Cash), fi(q.Ewes), fi(q.Lambs), ff(q.HayBales), ff(q.BCS), ff(q.PastureHealth),
		})
	}
	return c.writeAll(fmt.Sprintf("batch_%s_quarterly.csv", batchID), rows)
}

// sanitize makes a scenario name safe for a file name.
func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '.', r == '/', r == '(', r == ')':
			if len(out) > 0 && out[len(out)-1] != '_' {
				out = append(out, '_')
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '_' {
		out = out[:len(out)-1]
	}
	return string(out)
}
