// Package weather models the stochastic weather the farm lives under: an
// autocorrelated humidity regime ("wet week" / "dry week"), a winter/summer
// season with fuzzy boundaries, and summer drought days.
package weather

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/farmsim/internal/calendar"
	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/entropy"
)

// Regime bounds; redraws clamp here as part of the model.
const (
	RegimeMin = 0.5
	RegimeMax = 1.5
)

// State is the daily weather state machine.
type State struct {
	Regime     float64 // around 1.0; <1 dry spell, >1 wet spell
	RegimeDays int     // days remaining before the regime is redrawn

	Winter         bool
	WinterEndDay   int // day-of-year past which spring may arrive
	WinterStartDay int // day-of-year past which winter may arrive

	Climate config.Climate

	noise opensimplex.Noise
}

// New initializes the weather for a run. Simulations start on January 1st in
// winter. The noise field drives the soil-moisture diagnostic only.
func New(climate config.Climate, seed int64) *State {
	return &State{
		Regime:         1.0,
		RegimeDays:     0,
		Winter:         true,
		WinterEndDay:   int(80 * climate.WinterLenMod),
		WinterStartDay: int(365 - 60*climate.WinterLenMod),
		Climate:        climate,
		noise:          opensimplex.NewNormalized(seed),
	}
}

// UpdateRegime redraws the humidity regime when its timer expires, then
// burns one day off the timer. Called once per simulated day.
func (s *State) UpdateRegime(rng *entropy.Stream) {
	if s.RegimeDays <= 0 {
		s.Regime = rng.NormalClamped(1.0, 0.25, RegimeMin, RegimeMax)
		s.RegimeDays = rng.IntBetween(5, 10)
	}
	s.RegimeDays--
}

// Transition is a season boundary crossing reported to the event log.
type Transition int

const (
	NoChange Transition = iota
	SpringArrived
	WinterArrived
)

// UpdateSeason applies the stochastic season flips: once the day-of-year is
// past the boundary, each day has a 10% chance to flip, so spring and winter
// never arrive on exactly the same date twice.
func (s *State) UpdateSeason(d calendar.Date, rng *entropy.Stream) Transition {
	if s.Winter && d.DayOfYear > s.WinterEndDay {
		if rng.Chance(0.1) {
			s.Winter = false
			return SpringArrived
		}
	} else if !s.Winter && d.DayOfYear > s.WinterStartDay {
		if rng.Chance(0.1) {
			s.Winter = true
			// Next winter gets a fresh length.
			s.WinterEndDay = int(rng.NormalMin(80*s.Climate.WinterLenMod, 10, 0))
			return WinterArrived
		}
	}
	return NoChange
}

// DroughtToday draws the daily drought Bernoulli. Droughts only happen on
// summer grazing days (June-August, outside winter); the humidity regime
// shifts the odds hard in either direction.
func (s *State) DroughtToday(d calendar.Date, rng *entropy.Stream) bool {
	if s.Winter || d.Month < 6 || d.Month > 8 {
		return false
	}
	p := s.Climate.DroughtChance
	if s.Regime < 0.8 {
		p *= 5.0
	} else if s.Regime > 1.2 {
		p *= 0.1
	}
	return rng.Chance(p)
}

// SoilMoisture returns a smooth [0,1] moisture index for day t: seeded
// simplex noise blended with the current regime. Diagnostic output only;
// nothing in the model feeds back from it.
func (s *State) SoilMoisture(t int) float64 {
	n := s.noise.Eval2(float64(t)*0.05, 0)
	m := 0.6*n + 0.4*(s.Regime-RegimeMin)/(RegimeMax-RegimeMin)
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}
