package config

// Climate is the resolved weather parameterization: profile baseline with the
// user override knobs applied.
type Climate struct {
	GrassMod      float64 // multiplier on grass growth and hay yield
	DroughtChance float64 // base daily drought probability in summer
	WinterLenMod  float64 // multiplier on winter boundary days
}

// profileBase returns the baseline climate before overrides.
func profileBase(p ClimateProfile) Climate {
	switch p {
	case ClimateDry:
		return Climate{GrassMod: 0.7, DroughtChance: 0.02, WinterLenMod: 0.8}
	case ClimateMountain:
		return Climate{GrassMod: 1.2, DroughtChance: 0.001, WinterLenMod: 1.3}
	case ClimateCustom:
		return Climate{GrassMod: 1.0, DroughtChance: 0.0, WinterLenMod: 1.0}
	default:
		return Climate{GrassMod: 1.0, DroughtChance: 0.005, WinterLenMod: 1.0}
	}
}

// ResolveClimate combines the climate profile with the scenario override
// knobs. Validate guarantees the resulting drought probability is in [0, 1].
func (c FarmConfig) ResolveClimate() Climate {
	base := profileBase(c.ClimateProfile)
	return Climate{
		GrassMod:      base.GrassMod * c.RainGrowthGlobalMod,
		DroughtChance: base.DroughtChance + c.DroughtProbAdd,
		WinterLenMod:  base.WinterLenMod * c.WinterLenGlobalMod,
	}
}
