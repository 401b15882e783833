package engine

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/farmsim/internal/config"
)

var update = flag.Bool("update", false, "rewrite the golden run fixture")

// goldenConfig is the pinned reference farm: any change to model semantics
// or draw order shows up as a diff against the stored run.
func goldenConfig() *config.FarmConfig {
	cfg := config.Default()
	cfg.SimYears = 5
	cfg.LandArea = 40.0
	cfg.InitialEwes = 200
	cfg.BarnCapacity = 250
	cfg.MachineryMode = config.MachineryOwn
	cfg.IncludeLaborCost = true
	return &cfg
}

const goldenSeed = 1337420

func goldenRows(res *Result) [][]string {
	rows := [][]string{{"day", "date", "cash", "ewes", "lambs", "hay", "bcs", "pasture", "source"}}
	for _, r := range res.Records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Day),
			r.Date,
			fmt.Sprintf("%.4f", r.Cash),
			fmt.Sprintf("%d", r.Ewes),
			fmt.Sprintf("%d", r.LambsMale+r.LambsFemale),
			fmt.Sprintf("%.4f", r.HayBales),
			fmt.Sprintf("%.6f", r.BCS),
			fmt.Sprintf("%.6f", r.PastureHealth),
			r.FeedSource,
		})
	}
	return rows
}

func TestGoldenRun(t *testing.T) {
	path := filepath.Join("testdata", "golden.csv")
	res := NewFarm(goldenConfig(), goldenSeed).Run()
	rows := goldenRows(res)

	// Record the fixture when asked, or on first run when none exists yet.
	// Later runs diff against it.
	_, statErr := os.Stat(path)
	if *update || os.IsNotExist(statErr) {
		if err := os.MkdirAll("testdata", 0o755); err != nil {
			t.Fatal(err)
		}
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		w := csv.NewWriter(f)
		if err := w.WriteAll(rows); err != nil {
			t.Fatal(err)
		}
		t.Logf("wrote %s: %d rows", path, len(rows)-1)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(want) != len(rows) {
		t.Fatalf("row count drifted: fixture %d, run %d", len(want), len(rows))
	}
	for i := range want {
		for j := range want[i] {
			if want[i][j] != rows[i][j] {
				t.Fatalf("row %d col %d drifted: fixture %q, run %q", i, j, want[i][j], rows[i][j])
			}
		}
	}
}
