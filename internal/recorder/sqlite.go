package recorder

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/farmsim/internal/engine"
	"github.com/talgya/farmsim/internal/montecarlo"
)

// SQLite stores runs in a single database file.
type SQLite struct {
	conn *sqlx.DB
}

// OpenSQLite opens or creates the database and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &SQLite{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario TEXT NOT NULL,
		seed INTEGER NOT NULL,
		day INTEGER NOT NULL,
		date TEXT NOT NULL,
		cash REAL NOT NULL,
		ewes INTEGER NOT NULL,
		rams INTEGER NOT NULL,
		lambs INTEGER NOT NULL,
		pregnant INTEGER NOT NULL,
		hay_bales REAL NOT NULL,
		pending_bales REAL NOT NULL,
		feed_source TEXT NOT NULL,
		bcs REAL NOT NULL,
		perceived_bcs REAL NOT NULL,
		pasture_health REAL NOT NULL,
		regime REAL NOT NULL,
		soil_moisture REAL NOT NULL,
		winter INTEGER NOT NULL,
		drought INTEGER NOT NULL,
		meat_price REAL NOT NULL,
		feed_cost REAL NOT NULL,
		variable_cost REAL NOT NULL,
		overhead_cost REAL NOT NULL,
		labor_cost REAL NOT NULL,
		labor_hours REAL NOT NULL,
		shock_cost REAL NOT NULL,
		income_meat REAL NOT NULL,
		income_hay REAL NOT NULL,
		income_subsidy REAL NOT NULL,
		sold_animals INTEGER NOT NULL,
		sold_hay REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario TEXT NOT NULL,
		seed INTEGER NOT NULL,
		day INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		scenario TEXT NOT NULL,
		grp TEXT NOT NULL,
		seed INTEGER NOT NULL,
		initial_ewes INTEGER NOT NULL,
		land_area REAL NOT NULL,
		profit REAL NOT NULL,
		efficiency REAL NOT NULL,
		final_cash REAL NOT NULL,
		min_cash REAL NOT NULL,
		bankrupt INTEGER NOT NULL,
		min_bcs REAL NOT NULL,
		avg_bcs REAL NOT NULL,
		max_bcs REAL NOT NULL,
		final_herd INTEGER NOT NULL,
		final_pasture REAL NOT NULL,
		final_hay REAL NOT NULL,
		labor_hours REAL NOT NULL,
		drought_days INTEGER NOT NULL,
		winter_days INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS quarterly (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		scenario TEXT NOT NULL,
		seed INTEGER NOT NULL,
		quarter TEXT NOT NULL,
		cash REAL NOT NULL,
		ewes INTEGER NOT NULL,
		lambs INTEGER NOT NULL,
		hay_bales REAL NOT NULL,
		bcs REAL NOT NULL,
		pasture_health REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_daily_run ON daily(scenario, seed, day);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(scenario, seed, day);
	CREATE INDEX IF NOT EXISTS idx_summaries_batch ON summaries(batch_id);
	CREATE INDEX IF NOT EXISTS idx_quarterly_batch ON quarterly(batch_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordRun writes a run's daily rows and events in one transaction,
// replacing any previous rows for the same scenario and seed.
func (db *SQLite) RecordRun(meta RunMeta, res *engine.Result) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM daily WHERE scenario = ? AND seed = ?", meta.Scenario, meta.Seed); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM events WHERE scenario = ? AND seed = ?", meta.Scenario, meta.Seed); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO daily
		(scenario, seed, day, date, cash, ewes, rams, lambs, pregnant,
		 hay_bales, pending_bales, feed_source, bcs, perceived_bcs,
		 pasture_health, regime, soil_moisture, winter, drought, meat_price,
		 feed_cost, variable_cost, overhead_cost, labor_cost, labor_hours,
		 shock_cost, income_meat, income_hay, income_subsidy, sold_animals, sold_hay)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range res.Records {
		variable := r.VetCost + r.ShearingCost + r.RamCost + r.MachineryCost + r.MowingCost + r.AdminCost
		_, err := stmt.Exec(
			meta.Scenario, meta.Seed, r.Day, r.Date, r.Cash,
			r.Ewes, r.Rams, r.LambsMale+r.LambsFemale, r.PregnantEwes,
			r.HayBales, r.PendingBales, r.FeedSource, r.BCS, r.PerceivedBCS,
			r.PastureHealth, r.Regime, r.SoilMoisture, boolInt(r.Winter), boolInt(r.Drought), r.MeatPrice,
			r.FeedCost, variable, r.OverheadCost, r.LaborCost, r.LaborHours,
			r.ShockCost, r.IncomeMeat, r.IncomeHay, r.IncomeSubsidy, r.SoldAnimals, r.SoldHay,
		)
		if err != nil {
			return fmt.Errorf("insert day %d: %w", r.Day, err)
		}
	}

	for _, e := range res.Events {
		_, err := tx.Exec(
			"INSERT INTO events (scenario, seed, day, description, category) VALUES (?, ?, ?, ?, ?)",
			meta.Scenario, meta.Seed, e.Day, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run recorded", "scenario", meta.Scenario, "seed", meta.Seed,
		"days", len(res.Records), "events", len(res.Events))
	return nil
}

// RecordSummaries appends a batch's summary rows.
func (db *SQLite) RecordSummaries(batchID string, sums []montecarlo.RunSummary) error {
	if len(sums) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range sums {
		_, err := tx.Exec(`INSERT INTO summaries
			(batch_id, scenario, grp, seed, initial_ewes, land_area, profit,
			 efficiency, final_cash, min_cash, bankrupt, min_bcs, avg_bcs, max_bcs,
			 final_herd, final_pasture, final_hay, labor_hours, drought_days, winter_days)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			batchID, s.Scenario, s.Group, s.Seed, s.InitialEwes, s.LandArea,
			s.Profit, s.Efficiency, s.FinalCash, s.MinCash, boolInt(s.Bankrupt),
			s.MinBCS, s.AvgBCS, s.MaxBCS, s.FinalHerd, s.FinalPastureHealth,
			s.FinalHayBales, s.LaborHours, s.DroughtDays, s.WinterDays,
		)
		if err != nil {
			return fmt.Errorf("insert summary %s/%d: %w", s.Scenario, s.Seed, err)
		}
	}
	return tx.Commit()
}

// RecordQuarterly appends a batch's quarter-end samples.
func (db *SQLite) RecordQuarterly(batchID string, rows []montecarlo.QuarterlySample) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range rows {
		_, err := tx.Exec(`INSERT INTO quarterly
			(batch_id, scenario, seed, quarter, cash, ewes, lambs, hay_bales, bcs, pasture_health)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			batchID, q.Scenario, q.Seed, q.Quarter, q.Cash, q.Ewes, q.Lambs,
			q.HayBales, q.BCS, q.PastureHealth,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentEvents returns the newest events for a run, most recent first.
func (db *SQLite) RecentEvents(meta RunMeta, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT day, description, category FROM events WHERE scenario = ? AND seed = ? ORDER BY id DESC LIMIT ?",
		meta.Scenario, meta.Seed, limit,
	)
	return events, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
