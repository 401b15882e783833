package finance

import (
	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/entropy"
)

// HayBarnCapacity converts hay barn floor area into bale slots, stacked
// three meters high.
func HayBarnCapacity(cfg *config.FarmConfig) float64 {
	return cfg.HayBarnAreaM2 * 3.0 / cfg.BaleVolumeM3
}

// Harvest is one mowing pass over the meadows.
type Harvest struct {
	Bales    float64
	Cost     float64
	Overflow float64 // bales sold off for lack of barn space
	Income   float64
}

// Mow runs a cutting: stochastic per-hectare yield scaled by the climate,
// costed by machinery mode, with barn overflow sold at the summer price.
// yieldFactor discounts the second cut.
func Mow(cfg *config.FarmConfig, grassMod, yieldFactor, stockBales float64, rng *entropy.Stream) Harvest {
	meadowHa := cfg.LandArea * cfg.MeadowShare
	perHa := rng.NormalMin(cfg.HayYieldHaMean, cfg.HayYieldHaStd, 0) * grassMod * yieldFactor
	bales := meadowHa * perHa

	var cost float64
	if cfg.MachineryMode == config.MachineryOwn {
		cost = meadowHa*cfg.OwnMowFuelHa + bales*cfg.OwnBaleMaterial
	} else {
		cost = meadowHa*cfg.ServiceMowHa + bales*cfg.ServiceBalePcs
	}

	h := Harvest{Bales: bales, Cost: cost}
	capacity := HayBarnCapacity(cfg)
	if total := stockBales + bales; total > capacity {
		h.Overflow = total - capacity
		h.Bales = bales - h.Overflow
		h.Income = h.Overflow * cfg.PriceBaleSellSummer
	}
	return h
}

// WinterFeedBudget estimates the cash needed to carry the adults through a
// 180-day winter on market feed, plus a fixed floor for everything else,
// inflated by the configured safety margin.
func WinterFeedBudget(adults int, cfg *config.FarmConfig) float64 {
	feed := 180 * cfg.FeedIntakeEwe * cfg.CostFeedMarketMean * float64(adults)
	return (feed + 40000) * (1 + cfg.SafetyMargin)
}

// HaySale is the planner's pre-winter liquidation.
type HaySale struct {
	Bales  float64
	Income float64
}

// PlanHaySale decides whether to raise cash by selling hay before winter.
// Only runs when forecasting is enabled; sells at most 40% of stock.
func PlanHaySale(cash, stockBales float64, adults int, cfg *config.FarmConfig) HaySale {
	if !cfg.EnableForecasting {
		return HaySale{}
	}
	deficit := WinterFeedBudget(adults, cfg) - cash
	if deficit <= 0 {
		return HaySale{}
	}
	// Whole bales only, rounded up past the deficit.
	needed := float64(int(deficit/cfg.PriceBaleSellSummer) + 1)
	bales := min(stockBales*0.4, needed)
	if bales <= 0 {
		return HaySale{}
	}
	return HaySale{Bales: bales, Income: bales * cfg.PriceBaleSellSummer}
}
