// Package pasture models grass availability and the ecological
// degradation/recovery loop on pasture health.
package pasture

import "github.com/talgya/farmsim/internal/entropy"

// Health bounds. Health is simulation state and clamps at every update.
const (
	HealthMin = 0.1
	HealthMax = 1.0
)

// ProtectionThreshold is the hard cutoff below which the pasture is closed
// for recovery whenever hay is on hand.
const ProtectionThreshold = 0.5

// MinHayForProtection is the hay stock (bales) needed before the farmer will
// close a degraded pasture instead of grazing it into the ground.
const MinHayForProtection = 5.0

// yieldKgPerHa converts the dimensionless growth index into kg of grass per
// hectare per day.
const yieldKgPerHa = 35.0

// growthCurve is the seasonal growth index by month (1-12).
var growthCurve = [13]float64{0, 0, 0, 0.1, 0.5, 1.2, 1.1, 0.8, 0.6, 0.8, 0.4, 0.1, 0}

// GrowthIndex returns the deterministic part of the seasonal curve.
func GrowthIndex(month int) float64 {
	if month < 1 || month > 12 {
		return 0
	}
	return growthCurve[month]
}

// AvailableGrass draws today's grazeable grass in kg for the given pasture
// area. Consumes two normal draws: one on growth, one on the harvestable
// total.
func AvailableGrass(month int, areaHa, grassMod, health, regime float64, rng *entropy.Stream) float64 {
	growth := GrowthIndex(month) * grassMod * health * regime * rng.Normal(1.0, 0.1)
	avail := areaHa * yieldKgPerHa * growth * rng.Normal(1.0, 0.2)
	if avail < 0 {
		return 0
	}
	return avail
}

// Pressure is demand over availability; a dead pasture reads as extreme
// pressure, a rested one as zero.
func Pressure(demandKg, availableKg float64, resting bool) float64 {
	if resting {
		return 0
	}
	if availableKg <= 0 {
		return 10.0
	}
	return demandKg / availableKg
}

// UpdateHealth applies one day of the ecological loop: overgrazing past 95%
// of availability degrades, light use below 50% recovers.
func UpdateHealth(health, pressure, degradationRate, recoveryRate float64) float64 {
	switch {
	case pressure > 0.95:
		health -= (pressure - 0.95) * degradationRate
		if health < HealthMin {
			health = HealthMin
		}
	case pressure < 0.5:
		health += recoveryRate
		if health > HealthMax {
			health = HealthMax
		}
	}
	return health
}

// Protected reports whether the protection rule closes the pasture today:
// critical health and enough hay on hand to cover the herd.
func Protected(health, hayStockBales float64) bool {
	return health < ProtectionThreshold && hayStockBales > MinHayForProtection
}
