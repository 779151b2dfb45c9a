package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"motor-prediction-api/internal/scoring"
)

const maxBodyBytes = 1 << 20

// isJSONContentType accepts application/json and application/*+json, ignoring parameters.
func isJSONContentType(header string) bool {
	if strings.TrimSpace(header) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// readReading runs the predict checks in order and stops at the first failure.
// A *RequestError means the client sent something invalid; any other error is
// an internal failure.
func readReading(r *http.Request) (scoring.Reading, error) {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return scoring.Reading{}, badRequest(msgContentType)
	}
	fields, err := decodeObject(r)
	if err != nil {
		return scoring.Reading{}, err
	}
	reading, reqErr := ParseReading(fields)
	if reqErr != nil {
		return scoring.Reading{}, reqErr
	}
	if reqErr := ValidateReading(reading); reqErr != nil {
		return scoring.Reading{}, reqErr
	}
	return reading, nil
}

func decodeObject(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return nil, badRequest(msgInvalidJSON)
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodyBytes {
		return nil, &RequestError{Status: http.StatusRequestEntityTooLarge, Message: msgBodyTooLarge}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, badRequest(msgInvalidJSON)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, badRequest(msgInvalidJSON)
	}
	fields, ok := payload.(map[string]any)
	if !ok {
		return nil, badRequest(msgNotObject)
	}
	return fields, nil
}

// ParseReading checks that every feature is present, then converts each value
// to a float. Presence is checked for all fields before any conversion.
func ParseReading(fields map[string]any) (scoring.Reading, *RequestError) {
	for _, name := range scoring.Features {
		if _, ok := fields[name]; !ok {
			return scoring.Reading{}, badRequest("missing required field: %s", name)
		}
	}
	var reading scoring.Reading
	for _, name := range scoring.Features {
		v, ok := toFloat(fields[name])
		if !ok {
			return scoring.Reading{}, badRequest(msgNotNumeric)
		}
		reading.Set(name, v)
	}
	return reading, nil
}

// ValidateReading rejects the first feature outside its accepted range.
// NaN never falls inside a range.
func ValidateReading(reading scoring.Reading) *RequestError {
	for _, name := range scoring.Features {
		limit := scoring.Limits[name]
		if !limit.Contains(reading.Value(name)) {
			return badRequest("%s must be between %g and %g", name, limit.Min, limit.Max)
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case json.Number:
		return parseFloat(val.String())
	case float64:
		return val, true
	case string:
		return parseFloat(strings.TrimSpace(val))
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// parseFloat keeps out-of-range literals as ±Inf so they fail range
// validation rather than numeric conversion.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
