package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/super-spinner/audio"
	"github.com/lixenwraith/super-spinner/logging"
	"github.com/lixenwraith/super-spinner/mockapi"
	"github.com/lixenwraith/super-spinner/network"
	"github.com/lixenwraith/super-spinner/reel"
	"github.com/lixenwraith/super-spinner/spinner"
)

// Environment overrides
const (
	EnvAPIBaseURL   = "SPINNER_API_BASE_URL"
	EnvAudioEnabled = "SPINNER_AUDIO_ENABLED"
	EnvLogLevel     = "SPINNER_LOG_LEVEL"
	EnvMetricsAddr  = "SPINNER_METRICS_ADDR"
)

// Config is the whole application configuration
type Config struct {
	API       network.Config          `yaml:"api"`
	Reel      reel.Layout             `yaml:"reel"`
	Spin      spinner.Config          `yaml:"spin"`
	Bootstrap spinner.BootstrapConfig `yaml:"bootstrap"`
	Audio     audio.Config            `yaml:"audio"`
	Log       logging.Config          `yaml:"log"`
	Metrics   MetricsConfig           `yaml:"metrics"`
	Server    ServerConfig            `yaml:"server"`
	UI        UIConfig                `yaml:"ui"`
}

// MetricsConfig controls the Prometheus endpoint, empty Addr disables serving
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// ServerConfig configures the mock platform binary
type ServerConfig struct {
	Addr string         `yaml:"addr"`
	Mock mockapi.Config `yaml:"mock"`
}

// UIConfig tunes the terminal front end
type UIConfig struct {
	// FrameRate is the loop tick rate in frames per second
	FrameRate int `yaml:"frame_rate"`
	// Window is how many reel rows are visible, odd so one row is centered
	Window int `yaml:"window"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		API:       *network.DefaultConfig(),
		Reel:      reel.DefaultLayout(),
		Spin:      spinner.DefaultConfig(),
		Bootstrap: spinner.DefaultBootstrapConfig(),
		Audio:     *audio.DefaultConfig(),
		Log:       logging.DefaultConfig(),
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
			Mock: mockapi.DefaultConfig(),
		},
		UI: UIConfig{FrameRate: 60, Window: 5},
	}
}

// Load reads path over the defaults and applies environment overrides
// An empty or missing path yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment via lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvAudioEnabled); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudioEnabled, err)
		}
		c.Audio.Enabled = enabled
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		c.Metrics.Addr = v
	}
	return nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url %q must be http(s)", c.API.BaseURL)
	}
	if c.API.Retries < 0 || c.API.ValuesRetries < 0 {
		return errors.New("api retries must not be negative")
	}
	if c.Reel.ItemSpacing <= reel.Epsilon {
		return fmt.Errorf("reel.item_spacing must be positive, got %g", c.Reel.ItemSpacing)
	}
	if err := c.Spin.Validate(); err != nil {
		return fmt.Errorf("spin: %w", err)
	}
	if c.Bootstrap.ReloadDelay < 0 {
		return errors.New("bootstrap.reload_delay must not be negative")
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := c.Server.Mock.Validate(); err != nil {
		return fmt.Errorf("server.mock: %w", err)
	}
	if c.UI.FrameRate <= 0 || c.UI.FrameRate > 240 {
		return fmt.Errorf("ui.frame_rate %d out of range", c.UI.FrameRate)
	}
	if c.UI.Window < 1 || c.UI.Window%2 == 0 {
		return fmt.Errorf("ui.window must be odd and positive, got %d", c.UI.Window)
	}
	return nil
}

// Network returns a copy of the client configuration
func (c *Config) Network() *network.Config {
	api := c.API
	return &api
}

// AudioConfig returns a copy of the audio configuration
func (c *Config) AudioConfig() *audio.Config {
	a := c.Audio
	return &a
}
