// Package scenario holds the named configuration override sets used by the
// Monte Carlo harness: a built-in strategic catalog plus user-defined
// scenarios loaded from a YAML directory at runtime.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/talgya/farmsim/internal/config"
)

// Scenario is a named override set layered onto a baseline config.
type Scenario struct {
	Name      string         `yaml:"name"`
	Group     string         `yaml:"group"` // selection key, first rune of the name by convention
	Overrides map[string]any `yaml:"overrides"`
}

// Apply layers the scenario onto a base configuration.
func (s Scenario) Apply(base config.FarmConfig) (config.FarmConfig, error) {
	cfg, err := config.ApplyOverrides(base, s.Overrides)
	if err != nil {
		return base, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return cfg, nil
}

// Repository merges the built-in catalog with custom scenarios.
type Repository struct {
	scenarios map[string]Scenario
}

// NewRepository returns a repository preloaded with the built-in catalog.
func NewRepository() *Repository {
	r := &Repository{scenarios: make(map[string]Scenario)}
	for _, s := range Builtin() {
		r.scenarios[s.Name] = s
	}
	return r
}

// Add registers (or replaces) a scenario.
func (r *Repository) Add(s Scenario) {
	if s.Group == "" && s.Name != "" {
		s.Group = string([]rune(s.Name)[0])
	}
	r.scenarios[s.Name] = s
}

// LoadDir reads every *.yaml file in dir as a custom scenario. A missing
// directory is not an error; custom scenarios are optional.
func (r *Repository) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read scenario dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read scenario %s: %w", path, err)
		}
		var s Scenario
		if err := yaml.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parse scenario %s: %w", path, err)
		}
		if s.Name == "" {
			return fmt.Errorf("scenario %s has no name", path)
		}
		r.Add(s)
	}
	return nil
}

// Get looks up a scenario by exact name; on a miss the error suggests the
// closest known name.
func (r *Repository) Get(name string) (Scenario, error) {
	if s, ok := r.scenarios[name]; ok {
		return s, nil
	}

	best, bestDist := "", -1
	for known := range r.scenarios {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(known))
		if bestDist < 0 || d < bestDist {
			best, bestDist = known, d
		}
	}
	if best != "" {
		return Scenario{}, fmt.Errorf("unknown scenario %q (did you mean %q?)", name, best)
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}

// All returns every scenario sorted by name.
func (r *Repository) All() []Scenario {
	out := make([]Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Groups returns the sorted distinct group keys.
func (r *Repository) Groups() []string {
	seen := map[string]bool{}
	for _, s := range r.scenarios {
		seen[s.Group] = true
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// SelectGroups returns scenarios whose group key is in the given set, sorted
// by name. An empty selection returns everything.
func (r *Repository) SelectGroups(groups []string) []Scenario {
	if len(groups) == 0 {
		return r.All()
	}
	want := map[string]bool{}
	for _, g := range groups {
		want[g] = true
	}
	var out []Scenario
	for _, s := range r.All() {
		if want[s.Group] {
			out = append(out, s)
		}
	}
	return out
}
