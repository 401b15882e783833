// Package breeding models the gestation pipeline: condition at mating sets
// the pregnant pool, condition through winter erodes it, and only survivors
// lamb in spring.
package breeding

import "github.com/talgya/farmsim/internal/entropy"

// Calendar anchors.
const (
	MatingMonth  = 10 // pool replenished October 1st
	MatingDay    = 1
	LambingMonth = 3 // births spread across March
)

// dailyLambingShare is the fraction of the remaining pregnant pool that
// lambs each day of the window.
const dailyLambingShare = 0.1

// abortionShare is the daily loss from the pool while the herd is starving.
const abortionShare = 0.05

// nursingDrain scales the BCS cost of a birth day by the fraction of the
// flock that lambed.
const nursingDrain = 0.4

// Pipeline carries the pregnant pool across the year.
type Pipeline struct {
	PregnantEwes int
}

// ConceptionRate is the three-tier step function of body condition at mating.
func ConceptionRate(bcs float64) float64 {
	switch {
	case bcs >= 3.0:
		return 0.95
	case bcs >= 2.5:
		return 0.70
	default:
		return 0.30
	}
}

// Mate fills the pool from the live ewes at the condition-driven rate.
func (p *Pipeline) Mate(liveEwes int, bcs float64) int {
	p.PregnantEwes = int(float64(liveEwes) * ConceptionRate(bcs))
	return p.PregnantEwes
}

// ApplyGestationRisk aborts a share of the pool on days the herd is starving
// (BCS below 2.0). No-op otherwise.
func (p *Pipeline) ApplyGestationRisk(bcs float64) int {
	if p.PregnantEwes <= 0 || bcs >= 2.0 {
		return 0
	}
	lost := int(float64(p.PregnantEwes) * abortionShare)
	p.PregnantEwes -= lost
	if p.PregnantEwes < 0 {
		p.PregnantEwes = 0
	}
	return lost
}

// Birth is one lambing day's outcome.
type Birth struct {
	Mothers     int
	LambsMale   int
	LambsFemale int
	BCSDrain    float64 // nursing cost, proportional to flock share lambing
}

// Lamb draws one lambing day: a binomial share of the pool gives birth, each
// mother yielding a stochastic number of lambs split evenly by sex.
func (p *Pipeline) Lamb(liveEwes int, fertilityMean, fertilityStd float64, rng *entropy.Stream) Birth {
	mothers := rng.Binomial(p.PregnantEwes, dailyLambingShare)
	if mothers == 0 {
		return Birth{}
	}
	p.PregnantEwes -= mothers

	fertility := rng.NormalMin(fertilityMean, fertilityStd, 0)
	lambs := int(float64(mothers) * fertility)
	males := lambs / 2

	denom := liveEwes
	if denom < 1 {
		denom = 1
	}
	return Birth{
		Mothers:     mothers,
		LambsMale:   males,
		LambsFemale: lambs - males,
		BCSDrain:    float64(mothers) / float64(denom) * nursingDrain,
	}
}
