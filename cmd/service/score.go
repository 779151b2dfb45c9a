package main

import (
	"encoding/json"
	"errors"

	"github.com/urfave/cli/v2"

	"motor-prediction-api/internal/api"
	"motor-prediction-api/internal/scoring"
)

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score a single reading and print the prediction as JSON",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "motor-temp", Usage: "Motor temperature in °C", Required: true},
			&cli.Float64Flag{Name: "vibration-rms", Usage: "RMS vibration in mm/s", Required: true},
			&cli.Float64Flag{Name: "current", Usage: "Current in A", Required: true},
		},
		Action: runScore,
	}
}

func runScore(c *cli.Context) error {
	scorer, _, err := buildScorer(c.String("rules"))
	if err != nil {
		return err
	}
	reading := scoring.Reading{
		MotorTemp:    c.Float64("motor-temp"),
		VibrationRMS: c.Float64("vibration-rms"),
		Current:      c.Float64("current"),
	}
	if reqErr := api.ValidateReading(reading); reqErr != nil {
		return errors.New(reqErr.Message)
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(api.NewPredictResponse(reading, scorer.Score(reading)))
}
