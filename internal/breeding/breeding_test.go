package breeding

import (
	"testing"

	"github.com/talgya/farmsim/internal/entropy"
)

func TestConceptionTiers(t *testing.T) {
	cases := []struct {
		bcs  float64
		want float64
	}{
		{3.5, 0.95},
		{3.0, 0.95},
		{2.9, 0.70},
		{2.5, 0.70},
		{2.4, 0.30},
		{1.0, 0.30},
	}
	for _, c := range cases {
		if got := ConceptionRate(c.bcs); got != c.want {
			t.Errorf("ConceptionRate(%.1f) = %.2f, want %.2f", c.bcs, got, c.want)
		}
	}
}

func TestMatePoolSize(t *testing.T) {
	var p Pipeline
	if got := p.Mate(100, 3.2); got != 95 {
		t.Fatalf("healthy flock: pool = %d, want 95", got)
	}
	if got := p.Mate(100, 2.7); got != 70 {
		t.Fatalf("middling flock: pool = %d, want 70", got)
	}
	if got := p.Mate(100, 2.0); got != 30 {
		t.Fatalf("thin flock: pool = %d, want 30", got)
	}
}

func TestGestationRisk(t *testing.T) {
	p := Pipeline{PregnantEwes: 100}

	if lost := p.ApplyGestationRisk(2.5); lost != 0 || p.PregnantEwes != 100 {
		t.Fatalf("no loss expected above threshold, got lost=%d pool=%d", lost, p.PregnantEwes)
	}
	if lost := p.ApplyGestationRisk(1.8); lost != 5 || p.PregnantEwes != 95 {
		t.Fatalf("starving day: lost=%d pool=%d, want 5/95", lost, p.PregnantEwes)
	}

	// Pool attrition bottoms out at small integers where the 5% share
	// truncates to zero.
	p.PregnantEwes = 10
	for i := 0; i < 200; i++ {
		p.ApplyGestationRisk(1.5)
	}
	if p.PregnantEwes < 0 {
		t.Fatalf("pool went negative: %d", p.PregnantEwes)
	}
}

func TestLambingDrainsPool(t *testing.T) {
	rng := entropy.New(42)
	p := Pipeline{PregnantEwes: 200}

	total := 0
	for day := 0; day < 31 && p.PregnantEwes > 0; day++ {
		b := p.Lamb(200, 1.5, 0.3, rng)
		if b.Mothers < 0 || b.LambsMale < 0 || b.LambsFemale < 0 {
			t.Fatalf("negative birth counts: %+v", b)
		}
		if b.Mothers > 0 && b.LambsMale+b.LambsFemale == 0 && b.BCSDrain <= 0 {
			t.Fatalf("mothers without drain: %+v", b)
		}
		total += b.Mothers
	}
	if total+p.PregnantEwes != 200 {
		t.Fatalf("mothers %d + remaining %d != initial 200", total, p.PregnantEwes)
	}
}

func TestLambingDeterministic(t *testing.T) {
	run := func() []Birth {
		rng := entropy.New(7)
		p := Pipeline{PregnantEwes: 150}
		var out []Birth
		for i := 0; i < 31; i++ {
			out = append(out, p.Lamb(150, 1.5, 0.3, rng))
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("day %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLambEmptyPool(t *testing.T) {
	rng := entropy.New(1)
	var p Pipeline
	if b := p.Lamb(100, 1.5, 0.3, rng); b != (Birth{}) {
		t.Fatalf("empty pool should not lamb: %+v", b)
	}
}
