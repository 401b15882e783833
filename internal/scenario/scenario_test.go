package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/farmsim/internal/config"
)

func TestBuiltinApplyAndValidate(t *testing.T) {
	base := config.Default()
	for _, s := range Builtin() {
		cfg, err := s.Apply(base)
		if err != nil {
			t.Fatalf("%s: %v", s.Name, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: built-in scenario must validate: %v", s.Name, err)
		}
	}
}

func TestFamilyIdealOverrides(t *testing.T) {
	repo := NewRepository()
	s, err := repo.Get("1. Family Ideal (Baseline)")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Apply(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LandArea != 40 || cfg.InitialEwes != 200 || cfg.BarnCapacity != 250 {
		t.Errorf("scale overrides not applied: %+v", cfg)
	}
	if cfg.MachineryMode != config.MachineryOwn {
		t.Errorf("machinery mode = %q", cfg.MachineryMode)
	}
	if cfg.AdminComplexity != 1.2 {
		t.Errorf("admin complexity = %v", cfg.AdminComplexity)
	}
}

func TestGetSuggestsClosestName(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Get("5. Scrapyard (High Rsik)")
	if err == nil {
		t.Fatal("expected lookup error")
	}
	if !strings.Contains(err.Error(), "did you mean") || !strings.Contains(err.Error(), "Scrapyard") {
		t.Errorf("error should suggest the closest scenario: %v", err)
	}
}

func TestLoadDirAndGroups(t *testing.T) {
	dir := t.TempDir()
	body := "name: \"C. My Optimized Flock\"\noverrides:\n  initial_ewes: 80\n  land_area: 12.0\n"
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository()
	if err := repo.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	s, err := repo.Get("C. My Optimized Flock")
	if err != nil {
		t.Fatal(err)
	}
	if s.Group != "C" {
		t.Errorf("custom scenario group = %q, want C", s.Group)
	}

	sel := repo.SelectGroups([]string{"1", "C"})
	if len(sel) != 2 {
		t.Fatalf("group selection returned %d scenarios", len(sel))
	}

	groups := repo.Groups()
	if len(groups) != 6 { // 1-5 plus C
		t.Errorf("groups = %v", groups)
	}
}

func TestLoadDirMissingIsFine(t *testing.T) {
	repo := NewRepository()
	if err := repo.LoadDir(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
}
