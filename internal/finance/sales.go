package finance

import "github.com/talgya/farmsim/internal/config"

// Carcass weights by class, kg per head.
const (
	weightMaleLamb   = 40.0
	weightFemaleLamb = 35.0
	weightCullEwe    = 60.0
)

// SaleResult is the autumn sale outcome.
type SaleResult struct {
	Revenue      float64
	AnimalsSold  int
	LocalSold    int     // head moved at the retail price
	BlendedPrice float64 // revenue-weighted price per kg across lambs
}

// SellAnimals prices the autumn consignment. A fixed local quota of head
// sells at the day's retail price, male lambs claiming it before sold
// females; everything past the quota moves wholesale. Cull ewes are heavier
// but only ever fetch the wholesale price.
func SellAnimals(maleLambs, femaleLambs, cullEwes int, retailPrice float64, cfg *config.FarmConfig) SaleResult {
	quota := cfg.MarketLocalLimit
	wholesale := cfg.PriceMeatWholesale

	var res SaleResult
	var lambKg float64

	sellClass := func(head int, kg float64) {
		local := min(head, quota)
		quota -= local
		res.Revenue += float64(local)*kg*retailPrice + float64(head-local)*kg*wholesale
		res.LocalSold += local
		res.AnimalsSold += head
		lambKg += float64(head) * kg
	}
	sellClass(maleLambs, weightMaleLamb)
	sellClass(femaleLambs, weightFemaleLamb)

	if lambKg > 0 {
		res.BlendedPrice = res.Revenue / lambKg
	}

	res.Revenue += float64(cullEwes) * weightCullEwe * wholesale
	res.AnimalsSold += cullEwes
	return res
}
