package engine

import (
	"github.com/talgya/farmsim/internal/breeding"
	"github.com/talgya/farmsim/internal/calendar"
	"github.com/talgya/farmsim/internal/feed"
	"github.com/talgya/farmsim/internal/finance"
	"github.com/talgya/farmsim/internal/pasture"
	"github.com/talgya/farmsim/internal/weather"

	"github.com/dustin/go-humanize"
)

// Fixed working days of the farm year.
const (
	shearingMonth      = 5
	shearingDay        = 15
	firstCutMonth      = 6
	firstCutDay        = 10
	secondCutMonth     = 9
	secondCutDay       = 10
	saleMonth          = 10
	saleDay            = 15
	autumnSubsidyMonth = 11
	autumnSubsidyDay   = 20
	springSubsidyMonth = 4
	springSubsidyDay   = 20
)

// Step advances the farm by one day. The phase order is fixed: state reads
// in a phase see the writes of every earlier phase of the same day.
func (f *Farm) Step(t int) {
	cfg := f.Config
	d := calendar.FromDayIndex(t)
	var led finance.Ledger

	// Biology clock and the farmer's lagging read of it.
	f.Herd.AgeOneDay()
	f.Feed.UpdatePerception(f.BCS, cfg.DelayBCSPerception)

	// Weather and markets.
	f.Weather.UpdateRegime(f.RNG)
	meatPrice := finance.MeatPrice(d.Month, cfg.PriceMeatAvg, cfg.MeatPriceStd, f.RNG)
	switch f.Weather.UpdateSeason(d, f.RNG) {
	case weather.SpringArrived:
		f.logf(t, "weather", "spring arrived, pastures opening")
	case weather.WinterArrived:
		f.logf(t, "weather", "winter arrived, herd moving indoors")
	}

	// Feed logistics.
	if arrived := f.Feed.Arrivals(t); arrived > 0 {
		f.logf(t, "feed", "hay delivery: %.0f bales", arrived)
	}
	drought := f.Weather.DroughtToday(d, f.RNG)
	if drought {
		f.logf(t, "weather", "drought day, grazing suspended")
	}
	demand := float64(f.Herd.Adults())*cfg.FeedIntakeEwe + float64(f.Herd.Lambs())*cfg.FeedIntakeLamb
	if r := f.Feed.MaybeReorder(t, demand, f.Cash, cfg.PriceBaleSellWinter, cfg.BaleWeightKg, cfg.DelayFeedDelivery, f.RNG); r.Placed {
		led.FeedCost += r.Cost
		f.logf(t, "feed", "ordered %.0f bales for %s", r.Bales, humanize.Commaf(r.Cost))
	}

	// Feeding decision and the pasture's response. The ecological loop only
	// moves on grazing days; an indoor winter or drought day freezes health,
	// so recovery has to come from closing the pasture while grass grows.
	var out feed.Outcome
	if f.Weather.Winter || drought {
		out = f.Feed.FeedIndoors(f.BCS, demand, cfg.BaleWeightKg)
	} else {
		avail := pasture.AvailableGrass(d.Month, f.pastureHa, f.Weather.Climate.GrassMod, f.PastureHealth, f.Weather.Regime, f.RNG)
		protected := pasture.Protected(f.PastureHealth, f.Feed.StockBales)
		out = f.Feed.FeedGrazing(f.BCS, demand, avail, cfg.BaleWeightKg, protected)
		pressure := pasture.Pressure(demand, avail, protected)
		f.PastureHealth = pasture.UpdateHealth(f.PastureHealth, pressure, cfg.PastureDegradationRate, cfg.PastureRecoveryRate)
	}
	f.BCS = out.BCS
	led.FeedCost += out.Cost

	// Running costs. Veterinary spend is not accrued daily; the whole flock
	// is checked once, on the autumn sale day.
	vetMult := finance.VetMultiplier(f.BCS)
	mach := finance.Machinery(cfg, f.RNG)
	led.MachineryCost = mach.Cost
	if mach.BrokeDown {
		f.logf(t, "machinery", "machinery breakdown, repair %s", humanize.Commaf(mach.Cost))
	}
	led.AdminCost = finance.Admin(f.Herd.Total(), cfg)
	led.OverheadCost = finance.Overhead(d.Month, cfg)

	// Reproduction.
	if d.Month == breeding.MatingMonth && d.Day == breeding.MatingDay {
		pool := f.Breeding.Mate(f.Herd.Ewes(), f.BCS)
		f.logf(t, "herd", "mating: %d ewes in lamb", pool)
	}
	f.Breeding.ApplyGestationRisk(f.BCS)
	if d.Month == breeding.LambingMonth {
		birth := f.Breeding.Lamb(f.Herd.Ewes(), cfg.FertilityMean, cfg.FertilityStd, f.RNG)
		if birth.Mothers > 0 {
			f.Herd.LambsMale += birth.LambsMale
			f.Herd.LambsFemale += birth.LambsFemale
			f.BCS = max(feed.BCSMin, f.BCS-birth.BCSDrain)
			f.logf(t, "herd", "lambing: %d ewes delivered %d lambs", birth.Mothers, birth.LambsMale+birth.LambsFemale)
		}
	}

	// Fixed-date operations.
	if d.Month == shearingMonth && d.Day == shearingDay {
		led.ShearingCost = finance.Shearing(f.Herd.Adults(), cfg)
	}
	if (d.Month == firstCutMonth && d.Day == firstCutDay) || (d.Month == secondCutMonth && d.Day == secondCutDay) {
		factor := 1.0
		if d.Month == secondCutMonth {
			factor = 0.6
		}
		h := finance.Mow(cfg, f.Weather.Climate.GrassMod, factor, f.Feed.StockBales, f.RNG)
		f.Feed.StockBales += h.Bales
		led.MowingCost = h.Cost
		f.logf(t, "feed", "mowing: %.0f bales in the barn", h.Bales)
		if h.Overflow > 0 {
			led.IncomeHay += h.Income
			led.SoldHay += h.Overflow
			f.logf(t, "market", "hay barn full, sold %.0f overflow bales for %s", h.Overflow, humanize.Commaf(h.Income))
		}
	}
	if d.Month == saleMonth && d.Day == saleDay {
		f.runSaleDay(t, meatPrice, vetMult, &led)
	}

	// Transfers and fixed levies.
	if d.Month == autumnSubsidyMonth && d.Day == autumnSubsidyDay {
		led.IncomeSubsidy = finance.Subsidy(0.7, f.Herd.Ewes(), cfg, f.RNG)
	}
	if d.Month == springSubsidyMonth && d.Day == springSubsidyDay {
		led.IncomeSubsidy = finance.Subsidy(0.3, f.Herd.Ewes(), cfg, f.RNG)
	}
	if d.Month == 12 && d.Day == 31 {
		led.OverheadCost += finance.Tax(cfg)
	}

	// Labor and shocks.
	led.LaborHours = finance.LaborHours(f.Herd.Adults(), cfg)
	if cfg.IncludeLaborCost {
		led.LaborCost = led.LaborHours * cfg.WageHourly
	}
	if c := finance.Shock(cfg, f.RNG); c > 0 {
		led.ShockCost = c
		f.logf(t, "shock", "unexpected expense: %s", humanize.Commaf(c))
	}

	// Settle the books, then let the day's losses land.
	f.Cash += led.NetCash()
	f.Herd.ApplyEweMortality(cfg.MortalityEwe, f.BCS, f.RNG)
	f.Herd.ApplyLambMortality(cfg.MortalityLamb, f.BCS, f.RNG)

	if d.Day == 1 {
		f.snapshot(t, d)
	}
	f.record(t, d, meatPrice, drought, out, &led)
}

// runSaleDay runs the autumn market: pre-winter hay liquidation, the lamb and
// cull consignment, and flock renewal.
func (f *Farm) runSaleDay(t int, meatPrice, vetMult float64, led *finance.Ledger) {
	cfg := f.Config

	if s := finance.PlanHaySale(f.Cash, f.Feed.StockBales, f.Herd.Adults(), cfg); s.Bales > 0 {
		f.Feed.StockBales -= s.Bales
		led.IncomeHay += s.Income
		led.SoldHay += s.Bales
		f.logf(t, "market", "pre-winter hay sale: %.0f bales for %s", s.Bales, humanize.Commaf(s.Income))
	}

	males := f.Herd.LambsMale
	f.Herd.LambsMale = 0
	culls := f.Herd.CullForTurnover(cfg.MaxEweAge, f.RNG)
	kept, soldFemales := f.Herd.PromoteFemaleLambs(cfg.BarnCapacity)

	sale := finance.SellAnimals(males, soldFemales, culls, meatPrice, cfg)
	led.IncomeMeat += sale.Revenue
	led.SoldAnimals += sale.AnimalsSold
	if sale.AnimalsSold > 0 {
		f.logf(t, "market", "sale day: %d head for %s (%d at the local price), %d ewe lambs retained",
			sale.AnimalsSold, humanize.Commaf(sale.Revenue), sale.LocalSold, kept)
	}

	if bought := f.Herd.TopUpRams(); bought > 0 {
		led.RamCost += float64(bought) * cfg.PriceRamPurchase
		f.logf(t, "herd", "bought %d rams", bought)
	}
	if d := calendar.FromDayIndex(t); d.Year%2 == 0 {
		if n := f.Herd.ReplaceRams(); n > 0 {
			led.RamCost += float64(n) * cfg.PriceRamPurchase
			f.logf(t, "herd", "replaced %d rams with young stock", n)
		}
	}

	// Pre-winter health check on the whole adult flock.
	led.VetCost += float64(f.Herd.Adults()) * cfg.CostVetBase * vetMult / 2
}

func (f *Farm) snapshot(t int, d calendar.Date) {
	lambAge := (float64(d.DayOfYear) - 75) / 365
	if lambAge < 0 {
		lambAge = 0
	}
	ages := make([]float32, len(f.Herd.EweAges))
	copy(ages, f.Herd.EweAges)
	f.Snapshots = append(f.Snapshots, AgeSnapshot{
		Day:         t,
		Date:        d.String(),
		EweAges:     ages,
		Rams:        f.Herd.Rams,
		RamAge:      f.Herd.RamAge,
		LambsMale:   f.Herd.LambsMale,
		LambsFemale: f.Herd.LambsFemale,
		LambAge:     lambAge,
	})
}

func (f *Farm) record(t int, d calendar.Date, meatPrice float64, drought bool, out feed.Outcome, led *finance.Ledger) {
	f.Records = append(f.Records, DailyRecord{
		Day:  t,
		Date: d.String(),

		Cash:         f.Cash,
		Ewes:         f.Herd.Ewes(),
		Rams:         f.Herd.Rams,
		LambsMale:    f.Herd.LambsMale,
		LambsFemale:  f.Herd.LambsFemale,
		PregnantEwes: f.Breeding.PregnantEwes,

		HayBales:     f.Feed.StockBales,
		PendingBales: f.Feed.PendingBales(),
		FeedSource:   out.Source.String(),

		BCS:           f.BCS,
		PerceivedBCS:  f.Feed.PerceivedBCS,
		PastureHealth: f.PastureHealth,
		Regime:        f.Weather.Regime,
		SoilMoisture:  f.Weather.SoilMoisture(t),
		Winter:        f.Weather.Winter,
		Drought:       drought,
		MeatPrice:     meatPrice,

		FeedCost:      led.FeedCost,
		VetCost:       led.VetCost,
		ShearingCost:  led.ShearingCost,
		RamCost:       led.RamCost,
		MachineryCost: led.MachineryCost,
		MowingCost:    led.MowingCost,
		AdminCost:     led.AdminCost,
		OverheadCost:  led.OverheadCost,
		LaborCost:     led.LaborCost,
		LaborHours:    led.LaborHours,
		ShockCost:     led.ShockCost,

		IncomeMeat:    led.IncomeMeat,
		IncomeHay:     led.IncomeHay,
		IncomeSubsidy: led.IncomeSubsidy,

		SoldAnimals: led.SoldAnimals,
		SoldHay:     led.SoldHay,
	})
}
