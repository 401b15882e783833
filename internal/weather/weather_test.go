package weather

import (
	"testing"

	"github.com/talgya/farmsim/internal/calendar"
	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/entropy"
)

func normalClimate() config.Climate {
	return config.Climate{GrassMod: 1.0, DroughtChance: 0.005, WinterLenMod: 1.0}
}

func TestRegimeStaysBounded(t *testing.T) {
	s := New(normalClimate(), 1)
	rng := entropy.New(1)
	for day := 0; day < 5000; day++ {
		s.UpdateRegime(rng)
		if s.Regime < RegimeMin || s.Regime > RegimeMax {
			t.Fatalf("day %d: regime %v out of bounds", day, s.Regime)
		}
	}
}

func TestRegimePersistsForitsTimer(t *testing.T) {
	s := New(normalClimate(), 1)
	rng := entropy.New(2)
	s.UpdateRegime(rng)
	first := s.Regime
	days := 1
	for s.RegimeDays > 0 {
		s.UpdateRegime(rng)
		if s.Regime != first {
			t.Fatalf("regime changed mid-spell")
		}
		days++
	}
	if days < 5 || days > 9 {
		t.Errorf("spell lasted %d days, want 5-9", days)
	}
}

func TestSeasonFlipsEventually(t *testing.T) {
	s := New(normalClimate(), 1)
	rng := entropy.New(3)

	sprung := false
	for doy := 1; doy <= 365; doy++ {
		tr := s.UpdateSeason(calendar.Date{DayOfYear: doy, Month: 1 + (doy-1)/31}, rng)
		if tr == SpringArrived {
			if doy <= s.WinterEndDay {
				t.Fatalf("spring arrived on day %d, boundary %d", doy, s.WinterEndDay)
			}
			sprung = true
			break
		}
	}
	if !sprung {
		t.Fatal("spring never arrived within the year")
	}

	// Past the winter-start boundary, winter comes back and redraws the
	// next boundary.
	wintered := false
	for doy := s.WinterStartDay + 1; doy <= s.WinterStartDay+120; doy++ {
		if s.UpdateSeason(calendar.Date{DayOfYear: doy, Month: 12}, rng) == WinterArrived {
			wintered = true
			break
		}
	}
	if !wintered {
		t.Fatal("winter never returned")
	}
	if s.WinterEndDay < 0 {
		t.Errorf("redrawn winter end day %d", s.WinterEndDay)
	}
}

func TestNoDroughtInWinterOrOffSeason(t *testing.T) {
	climate := normalClimate()
	climate.DroughtChance = 1.0 // would fire every eligible day
	s := New(climate, 1)
	rng := entropy.New(4)

	if s.DroughtToday(calendar.Date{Month: 7, DayOfYear: 190}, rng) {
		t.Error("drought during winter")
	}
	s.Winter = false
	if s.DroughtToday(calendar.Date{Month: 5, DayOfYear: 130}, rng) {
		t.Error("drought outside June-August")
	}
	if !s.DroughtToday(calendar.Date{Month: 7, DayOfYear: 190}, rng) {
		t.Error("certain drought did not fire in July")
	}
}

func TestRegimeModulatesDroughtOdds(t *testing.T) {
	climate := normalClimate()
	climate.DroughtChance = 0.1
	date := calendar.Date{Month: 7, DayOfYear: 190}

	count := func(regime float64, seed int64) int {
		s := New(climate, 1)
		s.Winter = false
		s.Regime = regime
		rng := entropy.New(seed)
		hits := 0
		for i := 0; i < 2000; i++ {
			if s.DroughtToday(date, rng) {
				hits++
			}
		}
		return hits
	}

	dry := count(0.6, 10)  // x5 -> p = 0.5
	wet := count(1.4, 10)  // x0.1 -> p = 0.01
	if dry <= wet*5 {
		t.Errorf("dry weeks should see far more droughts: dry=%d wet=%d", dry, wet)
	}
}

func TestSoilMoistureDeterministicAndBounded(t *testing.T) {
	a := New(normalClimate(), 99)
	b := New(normalClimate(), 99)
	for day := 0; day < 365; day++ {
		ma, mb := a.SoilMoisture(day), b.SoilMoisture(day)
		if ma != mb {
			t.Fatalf("day %d: moisture diverged for same seed", day)
		}
		if ma < 0 || ma > 1 {
			t.Fatalf("day %d: moisture %v out of [0,1]", day, ma)
		}
	}
}
