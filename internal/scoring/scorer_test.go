package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScorerScenarios(t *testing.T) {
	tests := []struct {
		name        string
		reading     Reading
		prediction  int
		probability float64
		status      string
	}{
		{
			name:        "all nominal",
			reading:     Reading{MotorTemp: 65, VibrationRMS: 2.5, Current: 24},
			prediction:  0,
			probability: 0,
			status:      StatusNormal,
		},
		{
			name:        "all critical capped",
			reading:     Reading{MotorTemp: 105, VibrationRMS: 6, Current: 40},
			prediction:  1,
			probability: 1,
			status:      StatusAnomaly,
		},
		{
			name:        "three warnings",
			reading:     Reading{MotorTemp: 90, VibrationRMS: 4.5, Current: 32},
			prediction:  1,
			probability: 0.6,
			status:      StatusAnomaly,
		},
		{
			name:        "single critical stays normal",
			reading:     Reading{MotorTemp: 150, VibrationRMS: 1, Current: 10},
			prediction:  0,
			probability: 0.4,
			status:      StatusNormal,
		},
		{
			name:        "critical plus warning",
			reading:     Reading{MotorTemp: 20, VibrationRMS: 7, Current: 31},
			prediction:  1,
			probability: 0.6,
			status:      StatusAnomaly,
		},
		{
			name:        "two warnings at cutoff",
			reading:     Reading{MotorTemp: 86, VibrationRMS: 4.1, Current: 0},
			prediction:  0,
			probability: 0.4,
			status:      StatusNormal,
		},
	}
	s := NewDefaultScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Score(tt.reading)
			assert.Equal(t, tt.prediction, res.Prediction)
			assert.Equal(t, tt.probability, Round(res.Probability))
			assert.Equal(t, tt.status, res.Status())
		})
	}
}

func TestDefaultScorerStrictThresholds(t *testing.T) {
	s := NewDefaultScorer()
	tests := []struct {
		reading Reading
		want    float64
	}{
		{Reading{MotorTemp: 100}, 0.2},
		{Reading{MotorTemp: 100.01}, 0.4},
		{Reading{MotorTemp: 85}, 0},
		{Reading{MotorTemp: 85.001}, 0.2},
		{Reading{VibrationRMS: 5}, 0.2},
		{Reading{VibrationRMS: 5.0001}, 0.4},
		{Reading{VibrationRMS: 4}, 0},
		{Reading{Current: 35}, 0.2},
		{Reading{Current: 35.5}, 0.4},
		{Reading{Current: 30}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(s.Score(tt.reading).Probability), "%+v", tt.reading)
	}
}

func TestScoreBoundsAndCutoff(t *testing.T) {
	s := NewDefaultScorer()
	temps := []float64{0, 50, 85, 85.5, 100, 100.5, 200}
	vibs := []float64{0, 3, 4, 4.5, 5, 5.5, 20}
	currents := []float64{0, 25, 30, 30.5, 35, 35.5, 100}
	for _, temp := range temps {
		for _, vib := range vibs {
			for _, cur := range currents {
				r := Reading{MotorTemp: temp, VibrationRMS: vib, Current: cur}
				res := s.Score(r)
				require.GreaterOrEqual(t, res.Probability, 0.0)
				require.LessOrEqual(t, res.Probability, 1.0)
				require.Equal(t, res.Probability > 0.5, res.Prediction == 1, "%+v", r)
				require.Equal(t, res, s.Score(r), "scoring must be deterministic")
			}
		}
	}
}

func TestScoreMonotonic(t *testing.T) {
	s := NewDefaultScorer()
	base := Reading{MotorTemp: 50, VibrationRMS: 2, Current: 20}
	for _, feature := range Features {
		limit := Limits[feature]
		prev := -1.0
		for v := limit.Min; v <= limit.Max; v += 0.25 {
			r := base
			r.Set(feature, v)
			p := s.Score(r).Probability
			require.GreaterOrEqual(t, p, prev, "%s=%v", feature, v)
			prev = p
		}
	}
}

func TestThresholdScorerCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.Cutoff = 0.3
	rules.Features[FeatureCurrent] = []Tier{{Above: 10, Weight: 0.1}, {Above: 50, Weight: 0.9}}
	s, err := NewThresholdScorer(rules)
	require.NoError(t, err)

	res := s.Score(Reading{Current: 60})
	assert.Equal(t, 0.9, res.Probability)
	assert.True(t, res.Anomaly())

	res = s.Score(Reading{Current: 20})
	assert.Equal(t, 0.1, res.Probability)
	assert.False(t, res.Anomaly())
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.6, Round(0.2+0.2+0.2))
	assert.Equal(t, 0.123, Round(0.12345))
	assert.Equal(t, 0.125, Round(0.1245))
	assert.Equal(t, 1.0, Round(0.9999))
	assert.Equal(t, 0.0, Round(0))
}
