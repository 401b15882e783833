package pasture

import (
	"testing"

	"github.com/talgya/farmsim/internal/entropy"
)

func TestGrowthCurveShape(t *testing.T) {
	if GrowthIndex(1) != 0 || GrowthIndex(12) != 0 {
		t.Error("no growth in deep winter months")
	}
	if GrowthIndex(5) != 1.2 {
		t.Errorf("May peak = %v", GrowthIndex(5))
	}
	if GrowthIndex(0) != 0 || GrowthIndex(13) != 0 {
		t.Error("out-of-range months must read zero")
	}
}

func TestPressure(t *testing.T) {
	if got := Pressure(100, 200, false); got != 0.5 {
		t.Errorf("pressure = %v", got)
	}
	if got := Pressure(100, 0, false); got != 10.0 {
		t.Errorf("dead pasture pressure = %v", got)
	}
	if got := Pressure(100, 200, true); got != 0 {
		t.Errorf("rested pasture pressure = %v", got)
	}
}

func TestHealthDegradesUnderOvergrazing(t *testing.T) {
	h := UpdateHealth(1.0, 2.0, 0.01, 0.002)
	if h >= 1.0 {
		t.Errorf("health should degrade, got %v", h)
	}
	// Floor.
	h = UpdateHealth(0.11, 10.0, 1.0, 0.002)
	if h != HealthMin {
		t.Errorf("health floor = %v", h)
	}
}

func TestHealthRecoversUnderRest(t *testing.T) {
	h := UpdateHealth(0.5, 0.1, 0.01, 0.002)
	if h != 0.502 {
		t.Errorf("recovery step = %v", h)
	}
	if got := UpdateHealth(1.0, 0.0, 0.01, 0.002); got != HealthMax {
		t.Errorf("health cap = %v", got)
	}
	// Neutral band: no change.
	if got := UpdateHealth(0.7, 0.8, 0.01, 0.002); got != 0.7 {
		t.Errorf("neutral band moved health to %v", got)
	}
}

func TestProtectionRuleIsHardThreshold(t *testing.T) {
	if !Protected(0.3, 50) {
		t.Error("critical health with hay must close the pasture")
	}
	if Protected(0.5, 50) {
		t.Error("health exactly at threshold stays open")
	}
	if Protected(0.3, 5) {
		t.Error("no protection without hay reserve")
	}
}

func TestAvailableGrassNonNegativeAndScales(t *testing.T) {
	rng := entropy.New(77)
	for i := 0; i < 1000; i++ {
		if g := AvailableGrass(5, 30, 1.0, 1.0, 1.0, rng); g < 0 {
			t.Fatalf("negative grass %v", g)
		}
	}
	// Zero-growth months produce nothing.
	if g := AvailableGrass(1, 30, 1.0, 1.0, 1.0, rng); g != 0 {
		t.Errorf("January grass = %v", g)
	}
}
