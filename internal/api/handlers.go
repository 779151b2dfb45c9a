package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"motor-prediction-api/internal/scoring"
)

const (
	ServiceID      = "motor-prediction-api"
	ServiceName    = "Motor Prediction API"
	DefaultVersion = "1.0.0"
)

// EventPublisher sends a JSON-encodable payload to a subject.
type EventPublisher interface {
	Publish(subject string, payload any) error
}

type Handler struct {
	Scorer  scoring.Scorer
	Logger  *slog.Logger
	Version string

	// Events is optional. When set, anomaly results are published to AnomalySubject.
	Events         EventPublisher
	AnomalySubject string

	Now func() time.Time
}

type PredictResponse struct {
	Prediction  int             `json:"prediction"`
	Probability float64         `json:"probability"`
	Status      string          `json:"status"`
	Input       scoring.Reading `json:"input"`
}

func NewPredictResponse(reading scoring.Reading, result scoring.Result) PredictResponse {
	return PredictResponse{
		Prediction:  result.Prediction,
		Probability: scoring.Round(result.Probability),
		Status:      result.Status(),
		Input:       reading,
	}
}

type AnomalyEvent struct {
	EventID     string          `json:"event_id"`
	RequestID   string          `json:"request_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Prediction  int             `json:"prediction"`
	Probability float64         `json:"probability"`
	Input       scoring.Reading `json:"input"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type infoResponse struct {
	Service        string            `json:"service"`
	Version        string            `json:"version"`
	Endpoints      map[string]string `json:"endpoints"`
	ExampleRequest scoring.Reading   `json:"example_request"`
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	reading, err := readReading(r)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			writeError(w, reqErr.Status, reqErr.Message)
			return
		}
		h.logger().Error("predict failed", slog.String("request_id", RequestIDFromContext(r.Context())), slog.String("error", err.Error()))
		writeInternalError(w, err)
		return
	}
	resp := NewPredictResponse(reading, h.Scorer.Score(reading))
	if resp.Prediction == 1 {
		h.publishAnomaly(r, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) publishAnomaly(r *http.Request, resp PredictResponse) {
	if h.Events == nil || h.AnomalySubject == "" {
		return
	}
	requestID := RequestIDFromContext(r.Context())
	evt := AnomalyEvent{
		EventID:     uuid.NewString(),
		RequestID:   requestID,
		OccurredAt:  h.now().UTC(),
		Prediction:  resp.Prediction,
		Probability: resp.Probability,
		Input:       resp.Input,
	}
	if err := h.Events.Publish(h.AnomalySubject, evt); err != nil {
		h.logger().Warn("anomaly publish failed",
			slog.String("subject", h.AnomalySubject),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: ServiceID})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Service: ServiceName,
		Version: h.version(),
		Endpoints: map[string]string{
			"predict": "POST /predict",
			"health":  "GET /health",
		},
		ExampleRequest: scoring.Reading{MotorTemp: 65.0, VibrationRMS: 2.5, Current: 24.0},
	})
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func (h *Handler) version() string {
	if h.Version == "" {
		return DefaultVersion
	}
	return h.Version
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
