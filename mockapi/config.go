package mockapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config drives the mock platform's responses
type Config struct {
	// Values is the prize value set served by GET /values
	Values []int `yaml:"values"`

	// Weights biases spin results, parallel to Values; empty = uniform
	Weights []int `yaml:"weights"`

	// Script, when set, replaces random results and is cycled in order
	Script []int `yaml:"script"`

	// FailFirst answers the next n requests with 503
	FailFirst int `yaml:"fail_first"`

	// CorruptFirst answers the next n successful requests with malformed JSON
	CorruptFirst int `yaml:"corrupt_first"`

	// Latency delays every response
	Latency time.Duration `yaml:"latency"`

	// Seed fixes the random source, 0 = time based
	Seed int64 `yaml:"seed"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns a value set spanning every win tier
func DefaultConfig() Config {
	return Config{
		Values:         []int{1000, 2500, 5000, 10000, 25000, 50000, 100000, 150000},
		Weights:        []int{30, 25, 18, 12, 7, 4, 3, 1},
		AllowedOrigins: []string{"*"},
	}
}

// Validate rejects configs that cannot produce a spin
func (c Config) Validate() error {
	if len(c.Values) == 0 {
		return errors.New("mockapi: empty value set")
	}
	if len(c.Weights) > 0 {
		if len(c.Weights) != len(c.Values) {
			return fmt.Errorf("mockapi: %d weights for %d values", len(c.Weights), len(c.Values))
		}
		total := 0
		for _, w := range c.Weights {
			if w < 0 {
				return errors.New("mockapi: negative weight")
			}
			total += w
		}
		if total == 0 {
			return errors.New("mockapi: weights sum to zero")
		}
	}
	if c.FailFirst < 0 || c.CorruptFirst < 0 || c.Latency < 0 {
		return errors.New("mockapi: negative fault counters or latency")
	}
	return nil
}

// SplitList splits a comma-separated flag value, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseInts parses a comma-separated list of integers
func ParseInts(s string) ([]int, error) {
	parts := SplitList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
