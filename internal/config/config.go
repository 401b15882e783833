// Package config defines the immutable parameter bundle for one farm run.
// A FarmConfig is built by layering: defaults -> YAML file -> scenario
// overrides -> batch policies; it is treated as read-only once an engine
// takes it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MachineryMode selects how mowing and baling are paid for.
type MachineryMode string

const (
	MachineryServices MachineryMode = "services" // rented service rates per ha/bale
	MachineryOwn      MachineryMode = "own"      // owned equipment: depreciation, fuel, breakdown risk
)

// ClimateProfile selects the baseline weather parameters.
type ClimateProfile string

const (
	ClimateNormal   ClimateProfile = "normal"
	ClimateDry      ClimateProfile = "dry"
	ClimateMountain ClimateProfile = "mountain"
	ClimateCustom   ClimateProfile = "custom" // neutral base, driven purely by the override knobs
)

// FarmConfig holds every parameter of a single simulation run.
type FarmConfig struct {
	// Scale & land.
	SimYears      int     `yaml:"sim_years"`
	LandArea      float64 `yaml:"land_area"`       // ha
	MeadowShare   float64 `yaml:"meadow_share"`    // fraction of land reserved for hay
	BarnCapacity  int     `yaml:"barn_capacity"`   // max breeding ewes
	InitialEwes   int     `yaml:"initial_ewes"`    //
	BarnAreaM2    float64 `yaml:"barn_area_m2"`    //
	HayBarnAreaM2 float64 `yaml:"hay_barn_area_m2"`

	// Economics.
	Capital             float64 `yaml:"capital"`
	PriceMeatAvg        float64 `yaml:"price_meat_avg"` // retail, per kg
	MeatPriceStd        float64 `yaml:"meat_price_std"`
	MarketLocalLimit    int     `yaml:"market_local_limit"` // animals per year at retail price
	PriceMeatWholesale  float64 `yaml:"price_meat_wholesale"`
	InitialHayBales     float64 `yaml:"initial_hay_bales"`
	PriceBaleSellWinter float64 `yaml:"price_bale_sell_winter"`
	PriceBaleSellSummer float64 `yaml:"price_bale_sell_summer"`
	PriceRamPurchase    float64 `yaml:"price_ram_purchase"`

	// Ecological loop.
	PastureDegradationRate float64 `yaml:"pasture_degradation_rate"`
	PastureRecoveryRate    float64 `yaml:"pasture_recovery_rate"`

	// System dynamics delays.
	DelayBCSPerception int     `yaml:"delay_bcs_perception"` // days, information delay
	DelayFeedDelivery  int     `yaml:"delay_feed_delivery"`  // days, material delay
	MaxEweAge          float64 `yaml:"max_ewe_age"`          // years, culling threshold

	// Strategy.
	MachineryMode       MachineryMode  `yaml:"machinery_mode"`
	ClimateProfile      ClimateProfile `yaml:"climate_profile"`
	IncludeLaborCost    bool           `yaml:"include_labor_cost"`
	EnableForecasting   bool           `yaml:"enable_forecasting"`
	SafetyMargin        float64        `yaml:"safety_margin"`
	RainGrowthGlobalMod float64        `yaml:"rain_growth_global_mod"`
	DroughtProbAdd      float64        `yaml:"drought_prob_add"`
	WinterLenGlobalMod  float64        `yaml:"winter_len_global_mod"`

	// Cost rates.
	CostFeedOwnMean    float64 `yaml:"cost_feed_own_mean"`
	CostFeedMarketMean float64 `yaml:"cost_feed_market_mean"`
	CostVetBase        float64 `yaml:"cost_vet_base"`
	CostShearing       float64 `yaml:"cost_shearing"`
	AdminBaseCost      float64 `yaml:"admin_base_cost"`       // per year
	AdminComplexity    float64 `yaml:"admin_complexity_factor"` // power-law exponent

	// Machinery / service rates.
	ServiceMowHa         float64 `yaml:"service_mow_ha"`
	ServiceBalePcs       float64 `yaml:"service_bale_pcs"`
	OwnMowFuelHa         float64 `yaml:"own_mow_fuel_ha"`
	OwnBaleMaterial      float64 `yaml:"own_bale_material"`
	OwnMachineCapex      float64 `yaml:"own_machine_capex"`
	OwnMachineLife       float64 `yaml:"own_machine_life"` // years
	MachineryRepairMean  float64 `yaml:"machinery_repair_mean"`
	MachineryRepairStd   float64 `yaml:"machinery_repair_std"`
	MachineryFailureProb float64 `yaml:"machinery_failure_prob_daily"` // scaled by land area

	// Biology.
	FertilityMean    float64 `yaml:"fertility_mean"`
	FertilityStd     float64 `yaml:"fertility_std"`
	MortalityLamb    float64 `yaml:"mortality_lamb_mean"` // annual
	MortalityEwe     float64 `yaml:"mortality_ewe_mean"`  // annual
	FeedIntakeEwe    float64 `yaml:"feed_intake_ewe"`     // kg dry matter per day
	FeedIntakeLamb   float64 `yaml:"feed_intake_lamb"`
	HayYieldHaMean   float64 `yaml:"hay_yield_ha_mean"` // bales per ha
	HayYieldHaStd    float64 `yaml:"hay_yield_ha_std"`
	BaleWeightKg     float64 `yaml:"bale_weight_kg"`
	BaleVolumeM3     float64 `yaml:"bale_volume_m3"`

	// Subsidies.
	SubsidyHaMean    float64 `yaml:"subsidy_ha_mean"`
	SubsidyHaStd     float64 `yaml:"subsidy_ha_std"`
	SubsidySheepMean float64 `yaml:"subsidy_sheep_mean"`
	SubsidySheepStd  float64 `yaml:"subsidy_sheep_std"`

	// Fixed costs & shocks.
	TaxLandHa         float64 `yaml:"tax_land_ha"`
	TaxBuildingM2     float64 `yaml:"tax_building_m2"`
	OverheadBaseYear  float64 `yaml:"overhead_base_year"`
	BarnMaintenanceM2 float64 `yaml:"barn_maintenance_m2_year"`
	ShockProbDaily    float64 `yaml:"shock_prob_daily"`
	ShockCostMean     float64 `yaml:"shock_cost_mean"`
	ShockCostStd      float64 `yaml:"shock_cost_std"`

	// Labor.
	WageHourly          float64 `yaml:"wage_hourly"`
	LaborHoursPerEweYr  float64 `yaml:"labor_hours_per_ewe_year"`
	LaborHoursPerHaYr   float64 `yaml:"labor_hours_per_ha_year"`
	LaborHoursFixYr     float64 `yaml:"labor_hours_fix_year"`
	LaborHoursBarnM2Yr  float64 `yaml:"labor_hours_barn_m2_year"`
}

// Default returns the baseline "average farm" parameter set.
func Default() FarmConfig {
	return FarmConfig{
		SimYears: 5, LandArea: 30.0, MeadowShare: 0.25, BarnCapacity: 200, InitialEwes: 150,
		BarnAreaM2: 400.0, HayBarnAreaM2: 200.0,

		Capital: 250000.0, PriceMeatAvg: 85.0, MeatPriceStd: 10.0,
		MarketLocalLimit: 40, PriceMeatWholesale: 55.0,
		InitialHayBales: 50.0, PriceBaleSellWinter: 1200.0, PriceBaleSellSummer: 600.0,
		PriceRamPurchase: 10000.0,

		PastureDegradationRate: 0.01, PastureRecoveryRate: 0.002,
		DelayBCSPerception: 10, DelayFeedDelivery: 3, MaxEweAge: 8.0,

		MachineryMode: MachineryServices, ClimateProfile: ClimateNormal,
		IncludeLaborCost: true, EnableForecasting: true, SafetyMargin: 0.2,
		RainGrowthGlobalMod: 1.0, DroughtProbAdd: 0.0, WinterLenGlobalMod: 1.0,

		CostFeedOwnMean: 2.5, CostFeedMarketMean: 8.0,
		CostVetBase: 350.0, CostShearing: 50.0,
		AdminBaseCost: 5000.0, AdminComplexity: 1.5,

		ServiceMowHa: 3000.0, ServiceBalePcs: 200.0,
		OwnMowFuelHa: 400.0, OwnBaleMaterial: 50.0,
		OwnMachineCapex: 1000000.0, OwnMachineLife: 10.0,
		MachineryRepairMean: 20000.0, MachineryRepairStd: 5000.0,
		MachineryFailureProb: 0.0001,

		FertilityMean: 1.5, FertilityStd: 0.2,
		MortalityLamb: 0.10, MortalityEwe: 0.04,
		FeedIntakeEwe: 2.2, FeedIntakeLamb: 1.2,
		HayYieldHaMean: 12.0, HayYieldHaStd: 3.0,
		BaleWeightKg: 250.0, BaleVolumeM3: 1.4,

		SubsidyHaMean: 8500.0, SubsidyHaStd: 200.0,
		SubsidySheepMean: 603.0, SubsidySheepStd: 50.0,

		TaxLandHa: 500.0, TaxBuildingM2: 15.0,
		OverheadBaseYear: 40000.0, BarnMaintenanceM2: 60.0,
		ShockProbDaily: 0.005, ShockCostMean: 15000.0, ShockCostStd: 5000.0,

		WageHourly: 200.0, LaborHoursPerEweYr: 8.0, LaborHoursPerHaYr: 10.0,
		LaborHoursFixYr: 200.0, LaborHoursBarnM2Yr: 0.5,
	}
}

// Load reads a YAML config file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (FarmConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyOverrides layers an arbitrary named override set onto a config copy.
// Keys are the YAML field names, so scenario files need no recompilation to
// touch any parameter.
func ApplyOverrides(base FarmConfig, overrides map[string]any) (FarmConfig, error) {
	if len(overrides) == 0 {
		return base, nil
	}

	raw, err := yaml.Marshal(base)
	if err != nil {
		return base, fmt.Errorf("marshal base config: %w", err)
	}
	var merged map[string]any
	if err := yaml.Unmarshal(raw, &merged); err != nil {
		return base, fmt.Errorf("unmarshal base config: %w", err)
	}
	for k, v := range overrides {
		if _, known := merged[k]; !known {
			return base, fmt.Errorf("unknown config parameter %q", k)
		}
		merged[k] = v
	}

	out, err := yaml.Marshal(merged)
	if err != nil {
		return base, fmt.Errorf("marshal merged config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(out, &cfg); err != nil {
		return base, fmt.Errorf("apply overrides: %w", err)
	}
	return cfg, nil
}
