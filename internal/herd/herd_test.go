package herd

import (
	"testing"

	"github.com/talgya/farmsim/internal/entropy"
)

func TestNewStocking(t *testing.T) {
	s := New(150)
	if s.Ewes() != 150 {
		t.Errorf("ewes = %d", s.Ewes())
	}
	if s.Rams != 5 {
		t.Errorf("rams = %d, want 150/30", s.Rams)
	}
	for _, a := range s.EweAges {
		if a != InitialStockAge {
			t.Fatalf("initial age %v", a)
		}
	}
	if small := New(10); small.Rams != 1 {
		t.Errorf("minimum one ram, got %d", small.Rams)
	}
}

func TestLedgerCountInvariant(t *testing.T) {
	s := New(200)
	rng := entropy.New(5)
	for day := 0; day < 365; day++ {
		s.AgeOneDay()
		s.ApplyEweMortality(0.04, 3.0, rng)
		if s.Ewes() != len(s.EweAges) {
			t.Fatalf("count diverged from ledger length")
		}
	}
	if s.Ewes() < 0 || s.Rams < 0 || s.LambsMale < 0 || s.LambsFemale < 0 {
		t.Fatal("negative population")
	}
}

func TestAgingIsContinuous(t *testing.T) {
	s := New(3)
	for i := 0; i < 365; i++ {
		s.AgeOneDay()
	}
	for _, a := range s.EweAges {
		if a < 3.99 || a > 4.01 {
			t.Errorf("age after a year = %v, want ~4.0", a)
		}
	}
	if s.RamAge < 3.99 || s.RamAge > 4.01 {
		t.Errorf("ram age = %v", s.RamAge)
	}
}

func TestLowConditionMultipliesMortality(t *testing.T) {
	count := func(bcs float64) int {
		s := New(200)
		rng := entropy.New(42)
		deaths := 0
		for day := 0; day < 365; day++ {
			deaths += s.ApplyEweMortality(0.04, bcs, rng)
			for s.Ewes() < 200 { // refill to keep exposure constant
				s.EweAges = append(s.EweAges, 3.0)
			}
		}
		return deaths
	}
	healthy := count(3.0)
	starving := count(1.8)
	if starving <= healthy*2 {
		t.Errorf("starvation mortality too tame: healthy=%d starving=%d", healthy, starving)
	}
}

func TestCullForTurnover(t *testing.T) {
	s := New(100)
	// Make 5 ewes too old; turnover target is 15, so 10 random culls follow.
	for i := 0; i < 5; i++ {
		s.EweAges[i] = 9.0
	}
	culled := s.CullForTurnover(8.0, entropy.New(1))
	if culled != 15 {
		t.Errorf("culled %d, want 15", culled)
	}
	if s.Ewes() != 85 {
		t.Errorf("remaining %d", s.Ewes())
	}
	for _, a := range s.EweAges {
		if a > 8.0 {
			t.Errorf("over-age ewe survived: %v", a)
		}
		if a < 0 {
			t.Errorf("cull marker leaked into ledger: %v", a)
		}
	}
}

func TestCullAgedOnlyWhenOverTarget(t *testing.T) {
	s := New(100)
	for i := 0; i < 40; i++ {
		s.EweAges[i] = 9.0
	}
	culled := s.CullForTurnover(8.0, entropy.New(1))
	if culled != 40 {
		t.Errorf("culled %d, want the 40 aged only", culled)
	}
}

func TestPromoteFemaleLambsRespectsCapacity(t *testing.T) {
	s := New(90)
	s.LambsFemale = 50
	kept, sold := s.PromoteFemaleLambs(100)
	if kept != 10 { // 80% of 50 is 40, but only 10 slots free
		t.Errorf("kept %d", kept)
	}
	if sold != 40 {
		t.Errorf("sold %d", sold)
	}
	if s.Ewes() != 100 || s.LambsFemale != 0 {
		t.Errorf("post-promotion state: ewes=%d lambsF=%d", s.Ewes(), s.LambsFemale)
	}
	for _, a := range s.EweAges[90:] {
		if a != PromotionAge {
			t.Errorf("promoted at age %v", a)
		}
	}
}

func TestRamManagement(t *testing.T) {
	s := New(60) // 2 rams
	for i := 0; i < 60; i++ {
		s.EweAges = append(s.EweAges, 3.0) // growth to 120 ewes
	}
	bought := s.TopUpRams()
	if bought != 2 || s.Rams != 4 {
		t.Errorf("top-up bought %d, rams %d", bought, s.Rams)
	}
	if again := s.TopUpRams(); again != 0 {
		t.Errorf("second top-up bought %d", again)
	}

	replaced := s.ReplaceRams()
	if replaced != 2 {
		t.Errorf("replaced %d, want half of 4", replaced)
	}
	if s.RamAge != 2.0 {
		t.Errorf("ram age after replacement = %v", s.RamAge)
	}
}
