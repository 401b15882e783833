// Package herd keeps the population ledger: one age entry per breeding ewe
// in a contiguous arena, plus ram and lamb counts. The live ewe count is
// always len(EweAges).
package herd

import "github.com/talgya/farmsim/internal/entropy"

// Entry and promotion ages (years).
const (
	InitialStockAge = 3.0 // bought-in ewes and rams
	PromotionAge    = 0.6 // weaned ewe lambs joining the breeding ledger
)

// RamRatio is the target ewes-per-ram.
const RamRatio = 30

// PromotionShare is the fraction of female lambs retained for renewal,
// capacity permitting.
const PromotionShare = 0.8

// TurnoverTarget is the annual cull fraction the random cull tops up to.
const TurnoverTarget = 0.15

// State is the herd ledger.
type State struct {
	EweAges     []float32 // years; swap-remove on exit, order is meaningless
	Rams        int
	RamAge      float64
	LambsMale   int
	LambsFemale int
}

// New stocks the initial herd: ewes and rams bought in at breeding age.
func New(initialEwes int) *State {
	ages := make([]float32, initialEwes)
	for i := range ages {
		ages[i] = InitialStockAge
	}
	return &State{
		EweAges: ages,
		Rams:    NeededRams(initialEwes),
		RamAge:  InitialStockAge,
	}
}

// NeededRams returns the ram count for a given ewe count at the target ratio.
func NeededRams(ewes int) int {
	n := ewes / RamRatio
	if n < 1 {
		n = 1
	}
	return n
}

// Ewes returns the live breeding female count.
func (s *State) Ewes() int { return len(s.EweAges) }

// Adults returns ewes plus rams.
func (s *State) Adults() int { return len(s.EweAges) + s.Rams }

// Lambs returns the total lamb count.
func (s *State) Lambs() int { return s.LambsMale + s.LambsFemale }

// Total returns every animal on the farm.
func (s *State) Total() int { return s.Adults() + s.Lambs() }

// AgeOneDay advances every breeding animal by 1/365 of a year.
func (s *State) AgeOneDay() {
	for i := range s.EweAges {
		s.EweAges[i] += 1.0 / 365.0
	}
	s.RamAge += 1.0 / 365.0
}

// removeEwe swap-removes index i from the age arena.
func (s *State) removeEwe(i int) {
	last := len(s.EweAges) - 1
	s.EweAges[i] = s.EweAges[last]
	s.EweAges = s.EweAges[:last]
}

// mortalityMultiplier scales the base rate by body condition.
func mortalityMultiplier(bcs float64) float64 {
	switch {
	case bcs < 2.0:
		return 5.0
	case bcs < 2.5:
		return 2.0
	default:
		return 1.0
	}
}

// ApplyEweMortality draws one survival Bernoulli per ewe at the daily rate
// and removes the dead uniformly (death is not age-weighted). Returns deaths.
func (s *State) ApplyEweMortality(annualRate, bcs float64, rng *entropy.Stream) int {
	p := annualRate / 365.0 * mortalityMultiplier(bcs)
	deaths := 0
	for i := len(s.EweAges) - 1; i >= 0; i-- {
		if rng.Chance(p) {
			s.removeEwe(i)
			deaths++
		}
	}
	return deaths
}

// ApplyLambMortality draws binomial losses per sex. Low condition doubles
// lamb losses.
func (s *State) ApplyLambMortality(annualRate, bcs float64, rng *entropy.Stream) int {
	if s.Lambs() == 0 {
		return 0
	}
	p := annualRate / 365.0
	if bcs < 2.5 {
		p *= 2
	}
	dm := rng.Binomial(s.LambsMale, p)
	df := rng.Binomial(s.LambsFemale, p)
	s.LambsMale -= dm
	s.LambsFemale -= df
	return dm + df
}

// CullForTurnover removes every ewe above maxAge, then enough random ewes to
// reach the annual turnover target. Returns the cull count.
func (s *State) CullForTurnover(maxAge float64, rng *entropy.Stream) int {
	before := len(s.EweAges)
	target := int(float64(before) * TurnoverTarget)

	aged := 0
	for i := len(s.EweAges) - 1; i >= 0; i-- {
		if float64(s.EweAges[i]) > maxAge {
			s.removeEwe(i)
			aged++
		}
	}

	need := target - aged
	if need > 0 && len(s.EweAges) > need {
		for _, idx := range rng.SampleIndices(len(s.EweAges), need) {
			// Mark first, remove after: swap-remove would shift later picks.
			s.EweAges[idx] = -1
		}
		for i := len(s.EweAges) - 1; i >= 0; i-- {
			if s.EweAges[i] < 0 {
				s.removeEwe(i)
			}
		}
	}
	return before - len(s.EweAges)
}

// PromoteFemaleLambs moves up to 80% of female lambs into the breeding
// ledger at the promotion age, capped by the remaining barn capacity.
// Returns (kept, soldOff); the lamb count is zeroed either way.
func (s *State) PromoteFemaleLambs(barnCapacity int) (kept, sold int) {
	room := barnCapacity - len(s.EweAges)
	if room < 0 {
		room = 0
	}
	kept = int(float64(s.LambsFemale) * PromotionShare)
	if kept > room {
		kept = room
	}
	sold = s.LambsFemale - kept
	for i := 0; i < kept; i++ {
		s.EweAges = append(s.EweAges, PromotionAge)
	}
	s.LambsFemale = 0
	return kept, sold
}

// TopUpRams reports how many rams must be bought to restore the ratio and
// adds them to the ledger.
func (s *State) TopUpRams() int {
	need := NeededRams(len(s.EweAges))
	if s.Rams >= need {
		return 0
	}
	bought := need - s.Rams
	s.Rams = need
	return bought
}

// ReplaceRams swaps about half the rams for young stock, resetting the
// shared ram age. Returns the number bought.
func (s *State) ReplaceRams() int {
	n := int(float64(s.Rams)*0.5 + 0.5)
	if n < 1 {
		n = 1
	}
	s.RamAge = 2.0
	return n
}
