// Package config loads the process configuration from the environment once
// at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds the settings of the API process. Values are fixed after Load.
type Config struct {
	HTTPAddr           string
	ShutdownTimeout    time.Duration
	LogLevel           string
	CORSAllowedOrigins []string

	MaxPolynomialDegree        int
	MaxPolynomialTreeDepth     int
	MaxPolynomialCount         int
	MaxReducedPolynomialDegree int
	MaxArithmeticSequenceCount int
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		HTTPAddr:                   ":8080",
		ShutdownTimeout:            5 * time.Second,
		LogLevel:                   "info",
		CORSAllowedOrigins:         []string{"*"},
		MaxPolynomialDegree:        10,
		MaxPolynomialTreeDepth:     10,
		MaxPolynomialCount:         1000,
		MaxReducedPolynomialDegree: 256,
		MaxArithmeticSequenceCount: 1_000_000,
	}
}

// Load reads the configuration from environment variables, falling back to
// Default for unset ones.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	var errs []error

	if v, ok := lookup("HTTP_ADDR"); ok {
		cfg.HTTPAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
		} else {
			cfg.ShutdownTimeout = d
		}
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	limits := []struct {
		name string
		dst  *int
	}{
		{"MAX_POLYNOMIAL_DEGREE", &cfg.MaxPolynomialDegree},
		{"MAX_POLYNOMIAL_TREE_DEPTH", &cfg.MaxPolynomialTreeDepth},
		{"MAX_POLYNOMIAL_COUNT", &cfg.MaxPolynomialCount},
		{"MAX_REDUCED_POLYNOMIAL_DEGREE", &cfg.MaxReducedPolynomialDegree},
		{"MAX_ARITHMETIC_SEQUENCE_COUNT", &cfg.MaxArithmeticSequenceCount},
	}
	for _, l := range limits {
		v, ok := lookup(l.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
			continue
		}
		*l.dst = n
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting and reports all violations at once.
func (c Config) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	positive := []struct {
		name  string
		value int
	}{
		{"MAX_POLYNOMIAL_DEGREE", c.MaxPolynomialDegree},
		{"MAX_POLYNOMIAL_TREE_DEPTH", c.MaxPolynomialTreeDepth},
		{"MAX_POLYNOMIAL_COUNT", c.MaxPolynomialCount},
		{"MAX_REDUCED_POLYNOMIAL_DEGREE", c.MaxReducedPolynomialDegree},
		{"MAX_ARITHMETIC_SEQUENCE_COUNT", c.MaxArithmeticSequenceCount},
	}
	for _, p := range positive {
		if p.value < 1 {
			errs = append(errs, fmt.Errorf("%s must be 1 or greater, got %d", p.name, p.value))
		}
	}

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
