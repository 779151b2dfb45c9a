package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

// ThresholdScorer sums per-feature tier weights. For each feature only the
// highest tier the value exceeds counts.
type ThresholdScorer struct {
	cap    float64
	cutoff float64
	tiers  map[string][]Tier
}

func NewThresholdScorer(rules Rules) (*ThresholdScorer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &ThresholdScorer{cap: rules.Cap, cutoff: rules.Cutoff, tiers: rules.sortedTiers()}, nil
}

// NewDefaultScorer returns the built-in placeholder rule set.
func NewDefaultScorer() *ThresholdScorer {
	s, err := NewThresholdScorer(DefaultRules())
	if err != nil {
		panic(err)
	}
	return s
}

func (s *ThresholdScorer) Score(reading Reading) Result {
	score := 0.0
	for _, feature := range Features {
		score += s.weight(feature, reading.Value(feature))
	}
	probability := math.Min(score, s.cap)
	prediction := 0
	if probability > s.cutoff {
		prediction = 1
	}
	return Result{Prediction: prediction, Probability: probability}
}

func (s *ThresholdScorer) weight(feature string, v float64) float64 {
	for _, tier := range s.tiers[feature] {
		if v > tier.Above {
			return tier.Weight
		}
	}
	return 0
}

// Round rounds a probability to three decimals, half away from zero.
func Round(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return p
	}
	v, _ := decimal.NewFromFloat(p).Round(3).Float64()
	return v
}
