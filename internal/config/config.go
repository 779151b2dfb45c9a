package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"motor-prediction-api/internal/logging"
)

const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = "5000"
	DefaultAnomalySubject = "motor.anomaly"
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 10 * time.Second
	DefaultEnvFile        = ".env"
)

type Config struct {
	Host           string
	Port           string
	RulesPath      string
	NATSURL        string
	AnomalySubject string
	LogLevel       string
	AccessLog      bool
	RequestTimeout time.Duration
}

func Defaults() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		AnomalySubject: DefaultAnomalySubject,
		LogLevel:       DefaultLogLevel,
		RequestTimeout: DefaultRequestTimeout,
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c Config) Validate() error {
	var errs []error
	port, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("port must be a number between 1 and 65535, got %q", c.Port))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout))
	}
	if c.NATSURL != "" && strings.TrimSpace(c.AnomalySubject) == "" {
		errs = append(errs, errors.New("anomaly subject is required when a NATS URL is set"))
	}
	return errors.Join(errs...)
}

// LoadEnvFile exports the variables of a dotenv file into the process
// environment without overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
