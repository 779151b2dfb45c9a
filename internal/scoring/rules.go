package scoring

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tier adds Weight to the score when a feature value is strictly greater than Above.
type Tier struct {
	Above  float64 `yaml:"above"`
	Weight float64 `yaml:"weight"`
}

type Rules struct {
	Cap      float64           `yaml:"cap"`
	Cutoff   float64           `yaml:"cutoff"`
	Features map[string][]Tier `yaml:"features"`
}

func DefaultRules() Rules {
	return Rules{
		Cap:    1.0,
		Cutoff: 0.5,
		Features: map[string][]Tier{
			FeatureMotorTemp:    {{Above: 100, Weight: 0.4}, {Above: 85, Weight: 0.2}},
			FeatureVibrationRMS: {{Above: 5, Weight: 0.4}, {Above: 4, Weight: 0.2}},
			FeatureCurrent:      {{Above: 35, Weight: 0.4}, {Above: 30, Weight: 0.2}},
		},
	}
}

// LoadRules reads a YAML rule file. Cap and cutoff keep their default values
// when the file leaves them out.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	defaults := DefaultRules()
	rules := Rules{Cap: defaults.Cap, Cutoff: defaults.Cutoff}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) Validate() error {
	if math.IsNaN(r.Cap) || r.Cap <= 0 || r.Cap > 1 {
		return fmt.Errorf("cap must be in (0, 1], got %v", r.Cap)
	}
	if math.IsNaN(r.Cutoff) || r.Cutoff < 0 || r.Cutoff >= 1 {
		return fmt.Errorf("cutoff must be in [0, 1), got %v", r.Cutoff)
	}
	for name := range r.Features {
		if _, ok := Limits[name]; !ok {
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	sorted := r.sortedTiers()
	for _, name := range Features {
		tiers, ok := sorted[name]
		if !ok {
			return fmt.Errorf("feature %q has no tiers", name)
		}
		for i, tier := range tiers {
			if math.IsNaN(tier.Above) || math.IsInf(tier.Above, 0) {
				return fmt.Errorf("%s tier %d: threshold must be finite", name, i)
			}
			// negative weights would let a higher reading lower the score
			if math.IsNaN(tier.Weight) || math.IsInf(tier.Weight, 0) || tier.Weight < 0 {
				return fmt.Errorf("%s tier %d: weight must be a finite non-negative number", name, i)
			}
			if i > 0 && tier.Weight > tiers[i-1].Weight {
				return fmt.Errorf("%s: tier above %v outweighs tier above %v", name, tier.Above, tiers[i-1].Above)
			}
		}
	}
	return nil
}

// sortedTiers returns a copy of each feature's tiers ordered by descending threshold.
func (r Rules) sortedTiers() map[string][]Tier {
	out := make(map[string][]Tier, len(r.Features))
	for name, tiers := range r.Features {
		cp := append([]Tier(nil), tiers...)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].Above > cp[j].Above })
		out[name] = cp
	}
	return out
}
