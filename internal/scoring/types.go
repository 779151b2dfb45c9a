package scoring

const (
	FeatureMotorTemp    = "motor_temp"
	FeatureVibrationRMS = "vibration_rms"
	FeatureCurrent      = "current"
)

// Features lists the reading fields in the order they are validated and scored.
var Features = []string{FeatureMotorTemp, FeatureVibrationRMS, FeatureCurrent}

const (
	StatusNormal  = "normal"
	StatusAnomaly = "anomalia"
)

type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Limits are the accepted sensor ranges, inclusive on both ends.
var Limits = map[string]Range{
	FeatureMotorTemp:    {Min: 0, Max: 200},
	FeatureVibrationRMS: {Min: 0, Max: 20},
	FeatureCurrent:      {Min: 0, Max: 100},
}

// Reading is one motor telemetry sample: temperature in °C, RMS vibration in
// mm/s and current in A.
type Reading struct {
	MotorTemp    float64 `json:"motor_temp"`
	VibrationRMS float64 `json:"vibration_rms"`
	Current      float64 `json:"current"`
}

func (r Reading) Value(feature string) float64 {
	switch feature {
	case FeatureMotorTemp:
		return r.MotorTemp
	case FeatureVibrationRMS:
		return r.VibrationRMS
	case FeatureCurrent:
		return r.Current
	}
	return 0
}

func (r *Reading) Set(feature string, v float64) {
	switch feature {
	case FeatureMotorTemp:
		r.MotorTemp = v
	case FeatureVibrationRMS:
		r.VibrationRMS = v
	case FeatureCurrent:
		r.Current = v
	}
}

type Result struct {
	Prediction  int
	Probability float64
}

func (r Result) Anomaly() bool {
	return r.Prediction == 1
}

func (r Result) Status() string {
	if r.Anomaly() {
		return StatusAnomaly
	}
	return StatusNormal
}

// Scorer maps a reading to a classification and a bounded risk score.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(reading Reading) Result
}
