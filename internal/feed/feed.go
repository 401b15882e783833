// Package feed covers the farmer's side of nutrition: how body condition is
// perceived with a lag, when hay gets reordered, and what the herd actually
// eats on a given day.
package feed

import "github.com/talgya/farmsim/internal/entropy"

// Source labels where the day's nutrition came from.
type Source int

const (
	SourceGrazing Source = iota
	SourceGrazingHay
	SourceGrazingStarvation
	SourceHay
	SourceHayPastureRest
	SourceStarvationAwaiting
	SourceStarvationNoHay
)

var sourceNames = [...]string{
	"grazing",
	"grazing+hay",
	"grazing+starvation",
	"hay",
	"hay (pasture rest)",
	"starvation (awaiting delivery)",
	"starvation (no hay)",
}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return "unknown"
	}
	return sourceNames[s]
}

// Body condition bounds and daily deltas.
const (
	BCSMin = 1.5
	BCSMax = 4.0

	gainGrazing     = 0.004
	lossHayMaint    = 0.001
	lossStarvation  = 0.005
	lossSupplement  = 0.003
	lossBlindSpot   = 0.002
	hayMaintFloor   = 2.5
	perceptionFloor = 3.2
)

const (
	safetyFactor     = 1.2 // indoor demand buffer
	supplementFactor = 1.4 // grazing deficit buffer
	reorderCoverDays = 3.0
	orderCoverDays   = 7.0
	hayFeedCostBale  = 50.0
	grazingCostKg    = 0.2
)

// Order is hay bought but not yet in the barn.
type Order struct {
	DeliveryDay int
	Bales       float64
}

// State is the hay stock, the order book, and the farmer's lagged read of
// the herd's condition.
type State struct {
	StockBales   float64
	Orders       []Order
	PerceivedBCS float64
}

// UpdatePerception moves the farmer's estimate toward the true condition
// with an exponential lag of delayDays.
func (s *State) UpdatePerception(actual float64, delayDays int) {
	if delayDays < 1 {
		delayDays = 1
	}
	alpha := 1.0 / float64(delayDays)
	s.PerceivedBCS = s.PerceivedBCS*(1-alpha) + actual*alpha
}

// PendingBales sums undelivered orders.
func (s *State) PendingBales() float64 {
	var sum float64
	for _, o := range s.Orders {
		sum += o.Bales
	}
	return sum
}

// Arrivals moves due orders into stock and returns the bales delivered today.
func (s *State) Arrivals(today int) float64 {
	var arrived float64
	remaining := s.Orders[:0]
	for _, o := range s.Orders {
		if o.DeliveryDay <= today {
			arrived += o.Bales
		} else {
			remaining = append(remaining, o)
		}
	}
	s.Orders = remaining
	s.StockBales += arrived
	return arrived
}

// DailyBales is the indoor consumption rate including the safety buffer.
func DailyBales(demandKg, baleWeight float64) float64 {
	return demandKg * safetyFactor / baleWeight
}

// ReorderResult describes an order placed by MaybeReorder.
type ReorderResult struct {
	Placed bool
	Bales  float64
	Cost   float64
}

// MaybeReorder places a restock order when stock plus pending cover less
// than three days of consumption. The order covers a week at a stochastic
// winter price and is skipped when cash cannot cover it.
func (s *State) MaybeReorder(today int, demandKg float64, cash float64, winterBalePrice, baleWeight float64, deliveryDelay int, rng *entropy.Stream) ReorderResult {
	daily := DailyBales(demandKg, baleWeight)
	if s.StockBales+s.PendingBales() >= reorderCoverDays*daily {
		return ReorderResult{}
	}
	bales := orderCoverDays * daily
	price := rng.NormalMin(winterBalePrice, 100, 0)
	cost := bales * price
	if cost > cash {
		return ReorderResult{}
	}
	s.Orders = append(s.Orders, Order{DeliveryDay: today + deliveryDelay, Bales: bales})
	return ReorderResult{Placed: true, Bales: bales, Cost: cost}
}

// Outcome is one day's feeding decision.
type Outcome struct {
	Source    Source
	BCS       float64
	Cost      float64
	BalesFed  float64
	GrazedKg  float64
	Shortfall bool
}

// FeedIndoors is the winter or drought day: everything comes from the barn.
func (s *State) FeedIndoors(bcs, demandKg, baleWeight float64) Outcome {
	need := demandKg * safetyFactor / baleWeight
	fed := min(s.StockBales, need)
	s.StockBales -= fed
	out := Outcome{BalesFed: fed, Cost: fed * hayFeedCostBale}
	if fed < need {
		out.Source = SourceStarvationAwaiting
		out.BCS = max(BCSMin, bcs-lossStarvation)
		out.Shortfall = true
	} else {
		out.Source = SourceHay
		out.BCS = max(hayMaintFloor, bcs-lossHayMaint)
	}
	return out
}

// FeedGrazing is the growing-season day. availableKg is what the pasture
// offers; under protection it is treated as zero and hay carries the herd.
// Supplementing only happens when the farmer's perceived BCS has slipped,
// so a lagging perception leaves a real deficit uncovered.
func (s *State) FeedGrazing(bcs, demandKg, availableKg, baleWeight float64, protected bool) Outcome {
	effective := availableKg
	if protected {
		effective = 0
	}
	if effective >= demandKg {
		return Outcome{
			Source:   SourceGrazing,
			BCS:      min(BCSMax, bcs+gainGrazing),
			Cost:     demandKg * grazingCostKg,
			GrazedKg: demandKg,
		}
	}

	if s.PerceivedBCS < perceptionFloor || protected {
		deficit := demandKg - effective
		need := deficit * supplementFactor / baleWeight
		fed := min(s.StockBales, need)
		s.StockBales -= fed
		out := Outcome{
			BalesFed: fed,
			GrazedKg: effective,
			Cost:     effective*grazingCostKg + fed*hayFeedCostBale,
		}
		if fed < need {
			out.BCS = max(BCSMin, bcs-lossSupplement)
			out.Shortfall = true
			if protected {
				out.Source = SourceStarvationNoHay
			} else {
				out.Source = SourceGrazingStarvation
			}
		} else {
			out.BCS = bcs
			if protected {
				out.Source = SourceHayPastureRest
			} else {
				out.Source = SourceGrazingHay
			}
		}
		return out
	}

	// The herd is short but the farmer still reads the flock as fine.
	return Outcome{
		Source:   SourceGrazingStarvation,
		BCS:      max(BCSMin, bcs-lossBlindSpot),
		Cost:     effective * grazingCostKg,
		GrazedKg: effective,
	}
}
