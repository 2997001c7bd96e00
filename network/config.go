package network

import "time"

// DefaultBaseURL is the production spinner platform
const DefaultBaseURL = "https://platform00.abzorbagames.com/eplatform/spinner"

// Config holds result service client configuration
type Config struct {
	// BaseURL prefixes every endpoint, trailing slash optional
	BaseURL string `yaml:"base_url"`

	// Spin request policy
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`

	// Value-set request policy
	ValuesTimeout time.Duration `yaml:"values_timeout"`
	ValuesRetries int           `yaml:"values_retries"`

	// RetryBackoff is the pause between attempts, 0 retries immediately
	RetryBackoff time.Duration `yaml:"retry_backoff"`

	// MaxBodySize caps how much of a response is read
	MaxBodySize int64 `yaml:"max_body_size"`
}

// DefaultConfig returns production defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       10 * time.Second,
		Retries:       1,
		ValuesTimeout: 8 * time.Second,
		ValuesRetries: 1,
		RetryBackoff:  0,
		MaxBodySize:   64 * 1024,
	}
}

// LocalConfig returns config pointed at a local mock platform
func LocalConfig(baseURL string) *Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	cfg.ValuesTimeout = 2 * time.Second
	return cfg
}
