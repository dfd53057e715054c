package score

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules are the per-category weights used when the provider does not publish
// a fantasy point total for a row.
type Rules struct {
	Singles      float64 `yaml:"singles"`
	Doubles      float64 `yaml:"doubles"`
	Triples      float64 `yaml:"triples"`
	HomeRuns     float64 `yaml:"home_runs"`
	RunsBattedIn float64 `yaml:"runs_batted_in"`
	Walks        float64 `yaml:"walks"`
	HitByPitch   float64 `yaml:"hit_by_pitch"`
	StolenBases  float64 `yaml:"stolen_bases"`
}

func DefaultRules() Rules {
	return Rules{
		Singles:      3,
		Doubles:      5,
		Triples:      8,
		HomeRuns:     10,
		RunsBattedIn: 2,
		Walks:        2,
		HitByPitch:   2,
		StolenBases:  5,
	}
}

// LoadRules reads weights from a YAML file. Categories missing from the file
// keep their default weight. An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read scoring rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("decode scoring rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) Validate() error {
	weights := map[string]float64{
		"singles":        r.Singles,
		"doubles":        r.Doubles,
		"triples":        r.Triples,
		"home_runs":      r.HomeRuns,
		"runs_batted_in": r.RunsBattedIn,
		"walks":          r.Walks,
		"hit_by_pitch":   r.HitByPitch,
		"stolen_bases":   r.StolenBases,
	}
	for name, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("scoring weight %s must be >= 0", name)
		}
	}
	return nil
}

// Score is the weighted sum of stats, rounded to cents like the stored column.
func (r Rules) Score(s Stats) float64 {
	total := s.Singles*r.Singles +
		s.Doubles*r.Doubles +
		s.Triples*r.Triples +
		s.HomeRuns*r.HomeRuns +
		s.RunsBattedIn*r.RunsBattedIn +
		s.Walks*r.Walks +
		s.HitByPitch*r.HitByPitch +
		s.StolenBases*r.StolenBases
	return math.Round(total*100) / 100
}
