package config

import "fmt"

// Validate rejects impossible configurations before a run starts. Simulation
// state (BCS, pasture health, weather regime) clamps as part of the model;
// configuration never clamps silently.
func (c FarmConfig) Validate() error {
	if c.SimYears < 1 {
		return fmt.Errorf("sim_years must be at least 1, got %d", c.SimYears)
	}
	if c.LandArea <= 0 {
		return fmt.Errorf("land_area must be positive, got %v", c.LandArea)
	}
	if c.MeadowShare < 0 || c.MeadowShare > 1 {
		return fmt.Errorf("meadow_share must be within [0,1], got %v", c.MeadowShare)
	}
	if c.BarnCapacity < 1 {
		return fmt.Errorf("barn_capacity must be at least 1, got %d", c.BarnCapacity)
	}
	if c.InitialEwes < 1 {
		return fmt.Errorf("initial_ewes must be at least 1, got %d", c.InitialEwes)
	}
	if c.InitialEwes > c.BarnCapacity {
		return fmt.Errorf("initial_ewes %d exceeds barn_capacity %d", c.InitialEwes, c.BarnCapacity)
	}
	if c.BarnAreaM2 < 0 || c.HayBarnAreaM2 < 0 {
		return fmt.Errorf("barn areas must not be negative")
	}
	if c.InitialHayBales < 0 {
		return fmt.Errorf("initial_hay_bales must not be negative, got %v", c.InitialHayBales)
	}
	if c.DelayBCSPerception < 1 {
		return fmt.Errorf("delay_bcs_perception must be at least 1 day, got %d", c.DelayBCSPerception)
	}
	if c.DelayFeedDelivery < 0 {
		return fmt.Errorf("delay_feed_delivery must not be negative, got %d", c.DelayFeedDelivery)
	}
	if c.MaxEweAge <= 0 {
		return fmt.Errorf("max_ewe_age must be positive, got %v", c.MaxEweAge)
	}

	switch c.MachineryMode {
	case MachineryServices, MachineryOwn:
	default:
		return fmt.Errorf("machinery_mode must be %q or %q, got %q", MachineryServices, MachineryOwn, c.MachineryMode)
	}
	switch c.ClimateProfile {
	case ClimateNormal, ClimateDry, ClimateMountain, ClimateCustom:
	default:
		return fmt.Errorf("climate_profile must be one of normal/dry/mountain/custom, got %q", c.ClimateProfile)
	}

	for _, p := range []struct {
		name string
		v    float64
	}{
		{"mortality_lamb_mean", c.MortalityLamb},
		{"mortality_ewe_mean", c.MortalityEwe},
		{"shock_prob_daily", c.ShockProbDaily},
		{"machinery_failure_prob_daily", c.MachineryFailureProb},
	} {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%s must be a probability within [0,1], got %v", p.name, p.v)
		}
	}

	// The additive drought override must leave a valid probability; this is
	// rejected here rather than clamped at runtime.
	if dc := c.ResolveClimate().DroughtChance; dc < 0 || dc > 1 {
		return fmt.Errorf("drought probability %v outside [0,1] after drought_prob_add %v", dc, c.DroughtProbAdd)
	}
	if c.RainGrowthGlobalMod < 0 {
		return fmt.Errorf("rain_growth_global_mod must not be negative, got %v", c.RainGrowthGlobalMod)
	}
	if c.WinterLenGlobalMod < 0 {
		return fmt.Errorf("winter_len_global_mod must not be negative, got %v", c.WinterLenGlobalMod)
	}

	if c.FertilityMean <= 0 {
		return fmt.Errorf("fertility_mean must be positive, got %v", c.FertilityMean)
	}
	if c.FeedIntakeEwe <= 0 || c.FeedIntakeLamb <= 0 {
		return fmt.Errorf("feed intakes must be positive")
	}
	if c.BaleWeightKg <= 0 || c.BaleVolumeM3 <= 0 {
		return fmt.Errorf("bale weight and volume must be positive")
	}
	if c.OwnMachineLife <= 0 {
		return fmt.Errorf("own_machine_life must be positive, got %v", c.OwnMachineLife)
	}
	if c.AdminComplexity < 0 {
		return fmt.Errorf("admin_complexity_factor must not be negative, got %v", c.AdminComplexity)
	}

	for _, p := range []struct {
		name string
		v    float64
	}{
		{"price_meat_avg", c.PriceMeatAvg},
		{"price_meat_wholesale", c.PriceMeatWholesale},
		{"price_bale_sell_winter", c.PriceBaleSellWinter},
		{"price_bale_sell_summer", c.PriceBaleSellSummer},
		{"price_ram_purchase", c.PriceRamPurchase},
	} {
		if p.v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", p.name, p.v)
		}
	}
	return nil
}
