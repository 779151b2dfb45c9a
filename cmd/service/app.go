package main

import (
	"io"

	"github.com/urfave/cli/v2"

	"motor-prediction-api/internal/config"
	"motor-prediction-api/internal/scoring"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:           "motor-prediction-api",
		Usage:          "Classify motor telemetry readings as normal or anomalous",
		Version:        version,
		Writer:         stdout,
		ErrWriter:      stderr,
		DefaultCommand: "serve",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   config.DefaultLogLevel,
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "rules",
				Usage:   "Path to a YAML scoring rule file; the built-in rule is used when empty",
				EnvVars: []string{"SCORING_RULES_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			scoreCommand(),
		},
	}
}

func buildScorer(rulesPath string) (scoring.Scorer, string, error) {
	if rulesPath == "" {
		return scoring.NewDefaultScorer(), "built-in", nil
	}
	rules, err := scoring.LoadRules(rulesPath)
	if err != nil {
		return nil, "", err
	}
	scorer, err := scoring.NewThresholdScorer(rules)
	if err != nil {
		return nil, "", err
	}
	return scorer, rulesPath, nil
}
