package finance

import (
	"math"
	"testing"

	"github.com/talgya/farmsim/internal/config"
	"github.com/talgya/farmsim/internal/entropy"
)

func TestMowCostByMode(t *testing.T) {
	cfg := config.Default()
	cfg.HayYieldHaStd = 0 // deterministic yield

	service := Mow(&cfg, 1.0, 1.0, 0, entropy.New(9))
	cfg.MachineryMode = config.MachineryOwn
	own := Mow(&cfg, 1.0, 1.0, 0, entropy.New(9))

	if math.Abs(service.Bales-own.Bales) > 1e-9 {
		t.Fatalf("mode must not change yield: %f vs %f", service.Bales, own.Bales)
	}
	meadow := cfg.LandArea * cfg.MeadowShare
	wantService := meadow*cfg.ServiceMowHa + service.Bales*cfg.ServiceBalePcs
	if math.Abs(service.Cost-wantService) > 1e-6 {
		t.Fatalf("service cost = %f, want %f", service.Cost, wantService)
	}
	if own.Cost >= service.Cost {
		t.Fatalf("own iron should mow cheaper per pass: %f vs %f", own.Cost, service.Cost)
	}
}

func TestMowSecondCutDiscount(t *testing.T) {
	cfg := config.Default()
	cfg.HayYieldHaStd = 0
	first := Mow(&cfg, 1.0, 1.0, 0, entropy.New(9))
	second := Mow(&cfg, 1.0, 0.6, 0, entropy.New(9))
	if math.Abs(second.Bales-first.Bales*0.6) > 1e-9 {
		t.Fatalf("second cut = %f, want %f", second.Bales, first.Bales*0.6)
	}
}

func TestMowBarnOverflow(t *testing.T) {
	cfg := config.Default()
	cfg.HayYieldHaStd = 0
	capacity := HayBarnCapacity(&cfg)

	h := Mow(&cfg, 1.0, 1.0, capacity-10, entropy.New(9))
	if h.Overflow <= 0 {
		t.Fatal("nearly full barn should overflow on a cut")
	}
	if math.Abs((capacity-10+h.Bales)-capacity) > 1e-6 {
		t.Fatalf("kept bales should top the barn out: kept=%f overflow=%f", h.Bales, h.Overflow)
	}
	if math.Abs(h.Income-h.Overflow*cfg.PriceBaleSellSummer) > 1e-6 {
		t.Fatalf("overflow income = %f for %f bales", h.Income, h.Overflow)
	}
}

func TestPlanHaySale(t *testing.T) {
	cfg := config.Default()

	// Cash-rich farms hold their hay.
	if s := PlanHaySale(1e8, 500, 150, &cfg); s.Bales != 0 {
		t.Fatalf("no sale expected with deep pockets: %+v", s)
	}

	// Broke farms sell, but never more than 40% of stock.
	s := PlanHaySale(0, 500, 150, &cfg)
	if s.Bales != 200 {
		t.Fatalf("capped sale = %f bales, want 200", s.Bales)
	}
	if math.Abs(s.Income-200*cfg.PriceBaleSellSummer) > 1e-6 {
		t.Fatalf("sale income = %f", s.Income)
	}

	// Small deficits sell whole bales, rounded up past the gap.
	budget := WinterFeedBudget(150, &cfg)
	s = PlanHaySale(budget-cfg.PriceBaleSellSummer*5, 500, 150, &cfg)
	if math.Abs(s.Bales-6) > 1e-9 {
		t.Fatalf("targeted sale = %f bales, want 6", s.Bales)
	}
	s = PlanHaySale(budget-cfg.PriceBaleSellSummer*4.5, 500, 150, &cfg)
	if math.Abs(s.Bales-5) > 1e-9 {
		t.Fatalf("fractional deficit = %f bales, want 5", s.Bales)
	}
	if s.Bales != math.Trunc(s.Bales) {
		t.Fatalf("sale must be whole bales: %f", s.Bales)
	}

	cfg.EnableForecasting = false
	if s := PlanHaySale(0, 500, 150, &cfg); s.Bales != 0 {
		t.Fatalf("planner disabled should never sell: %+v", s)
	}
}
