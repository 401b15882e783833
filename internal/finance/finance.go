// Package finance prices every cash flow on the farm: daily running costs,
// the autumn animal sale, hay trade, subsidies, and tax.
package finance

import (
	"math"

	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/entropy"
)

// Ledger is one day's cash movements by category. Cost fields are positive
// amounts to be subtracted from cash.
type Ledger struct {
	FeedCost      float64
	VetCost       float64
	ShearingCost  float64
	RamCost       float64
	MachineryCost float64
	MowingCost    float64
	AdminCost     float64
	OverheadCost  float64
	LaborCost     float64
	LaborHours    float64
	ShockCost     float64

	IncomeMeat    float64
	IncomeHay     float64
	IncomeSubsidy float64

	SoldAnimals int
	SoldHay     float64
}

// VariableCost rolls up the operational categories that sit between feed
// and overhead in the books.
func (l *Ledger) VariableCost() float64 {
	return l.VetCost + l.ShearingCost + l.RamCost + l.MachineryCost + l.MowingCost + l.AdminCost
}

// Income sums the day's revenue.
func (l *Ledger) Income() float64 {
	return l.IncomeMeat + l.IncomeHay + l.IncomeSubsidy
}

// NetCash is the day's cash delta.
func (l *Ledger) NetCash() float64 {
	return l.Income() - (l.FeedCost + l.VariableCost() + l.OverheadCost + l.LaborCost + l.ShockCost)
}

// MeatPrice draws the day's retail price. Easter demand lifts it through
// March and April.
func MeatPrice(month int, mean, std float64, rng *entropy.Stream) float64 {
	price := rng.NormalMin(mean, std, 0)
	if month == 3 || month == 4 {
		price *= 1.25
	}
	return price
}

// VetMultiplier doubles veterinary spend while the herd is in poor condition.
func VetMultiplier(bcs float64) float64 {
	if bcs < 2.5 {
		return 2.0
	}
	return 1.0
}

// MachineryResult reports the day's machinery spend for own-iron farms.
type MachineryResult struct {
	Cost      float64
	BrokeDown bool
}

// Machinery charges straight-line depreciation every day and rolls for a
// breakdown whose odds scale with worked land.
func Machinery(cfg *config.FarmConfig, rng *entropy.Stream) MachineryResult {
	if cfg.MachineryMode != config.MachineryOwn {
		return MachineryResult{}
	}
	res := MachineryResult{
		Cost: cfg.OwnMachineCapex / cfg.OwnMachineLife / 365,
	}
	if rng.Chance(cfg.MachineryFailureProb * cfg.LandArea) {
		res.Cost += rng.NormalMin(cfg.MachineryRepairMean, cfg.MachineryRepairStd, 0)
		res.BrokeDown = true
	}
	return res
}

// Admin is the paperwork cost with a power-law diseconomy of scale: every
// doubling of the flock past 50 head raises the per-day burden superlinearly.
func Admin(animals int, cfg *config.FarmConfig) float64 {
	n := animals
	if n < 1 {
		n = 1
	}
	return cfg.AdminBaseCost / 365 * math.Pow(float64(n)/50, cfg.AdminComplexity)
}

// Overhead is the fixed base, seasonally skewed toward summer, plus building
// upkeep by floor area.
func Overhead(month int, cfg *config.FarmConfig) float64 {
	seasonal := 0.8
	if month >= 6 && month <= 8 {
		seasonal = 1.5
	}
	base := cfg.OverheadBaseYear / 365 * seasonal
	upkeep := (cfg.BarnAreaM2 + cfg.HayBarnAreaM2) * cfg.BarnMaintenanceM2 / 365
	return base + upkeep
}

// Shearing charges the annual clip, one pass over the adult flock.
func Shearing(adults int, cfg *config.FarmConfig) float64 {
	return float64(adults) * cfg.CostShearing
}

// LaborHours is the day's worked time across herd, land, and buildings.
func LaborHours(adults int, cfg *config.FarmConfig) float64 {
	return (float64(adults)*cfg.LaborHoursPerEweYr +
		cfg.LandArea*cfg.LaborHoursPerHaYr +
		cfg.BarnAreaM2*cfg.LaborHoursBarnM2Yr +
		cfg.LaborHoursFixYr) / 365
}

// Shock rolls for an uninsured one-off: storm damage, a broken pump, a fine.
func Shock(cfg *config.FarmConfig, rng *entropy.Stream) float64 {
	if rng.Chance(cfg.ShockProbDaily) {
		return rng.NormalMin(cfg.ShockCostMean, cfg.ShockCostStd, 0)
	}
	return 0
}

// Subsidy pays the area and headage support for one installment.
func Subsidy(share float64, ewes int, cfg *config.FarmConfig, rng *entropy.Stream) float64 {
	perHa := rng.NormalMin(cfg.SubsidyHaMean, cfg.SubsidyHaStd, 0)
	return (cfg.LandArea*perHa + float64(ewes)*cfg.SubsidySheepMean) * share
}

// Tax is the annual land and building levy.
func Tax(cfg *config.FarmConfig) float64 {
	return cfg.LandArea*cfg.TaxLandHa + (cfg.BarnAreaM2+cfg.HayBarnAreaM2)*cfg.TaxBuildingM2
}
