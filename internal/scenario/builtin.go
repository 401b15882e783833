package scenario

// Builtin returns the five built-in strategic scenarios. Group keys are the
// leading digits; custom scenarios load under group "C".
func Builtin() []Scenario {
	return []Scenario{
		{
			// Reference family farm: owned machinery, honest labor accounting.
			Name:  "1. Family Ideal (Baseline)",
			Group: "1",
			Overrides: map[string]any{
				"land_area":                40.0,
				"initial_ewes":             200,
				"barn_capacity":            250,
				"capital":                  800000.0,
				"machinery_mode":           "own",
				"include_labor_cost":       true,
				"climate_profile":          "normal",
				"admin_complexity_factor":  1.2,
				"labor_hours_per_ewe_year": 7.0,
			},
		},
		{
			// Small scale: everything outsourced, high per-head labor.
			Name:  "2. Hobby Garden (Small Scale)",
			Group: "2",
			Overrides: map[string]any{
				"land_area":                5.0,
				"initial_ewes":             25,
				"barn_capacity":            30,
				"capital":                  100000.0,
				"machinery_mode":           "services",
				"include_labor_cost":       true,
				"climate_profile":          "normal",
				"admin_base_cost":          500.0,
				"labor_hours_per_ewe_year": 12.0,
			},
		},
		{
			// Diseconomies of scale: big herd, steep admin exponent.
			Name:  "3. Agro Colossus (Inefficiency)",
			Group: "3",
			Overrides: map[string]any{
				"land_area":               300.0,
				"initial_ewes":            1500,
				"barn_capacity":           1600,
				"barn_area_m2":            4000.0,
				"capital":                 10000000.0,
				"machinery_mode":          "own",
				"own_machine_capex":       6000000.0,
				"include_labor_cost":      true,
				"admin_base_cost":         150000.0,
				"admin_complexity_factor": 1.8,
				"labor_hours_fix_year":    2500.0,
				"wage_hourly":             250.0,
			},
		},
		{
			// Environmental stress test: dry profile plus crisis overrides.
			Name:  "4. Climate Crisis (Stress Test)",
			Group: "4",
			Overrides: map[string]any{
				"land_area":              50.0,
				"initial_ewes":           200,
				"barn_capacity":          250,
				"capital":                500000.0,
				"climate_profile":        "dry",
				"rain_growth_global_mod": 0.6,
				"drought_prob_add":       0.15,
				"hay_yield_ha_mean":      6.0,
				"price_bale_sell_winter": 1500.0,
			},
		},
		{
			// High risk: worn-out machinery on thin capital.
			Name:  "5. Scrapyard (High Risk)",
			Group: "5",
			Overrides: map[string]any{
				"land_area":                    60.0,
				"initial_ewes":                 300,
				"barn_capacity":                350,
				"capital":                      100000.0,
				"machinery_mode":               "own",
				"own_machine_capex":            250000.0,
				"own_machine_life":             5.0,
				"machinery_repair_mean":        120000.0,
				"machinery_failure_prob_daily": 0.005,
				"safety_margin":                0.05,
			},
		},
	}
}
