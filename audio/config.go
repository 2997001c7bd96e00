package audio

import "fmt"

// Config holds audio output and mix settings
type Config struct {
	Enabled bool `yaml:"enabled"`

	SampleRate int `yaml:"sample_rate"`
	// BufferMs is the speaker buffer length; larger avoids underruns at the cost of latency
	BufferMs int `yaml:"buffer_ms"`

	MasterVolume float64 `yaml:"master_volume"`
	LoopVolume   float64 `yaml:"loop_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	TickVolume   float64 `yaml:"tick_volume"`
}

// DefaultConfig returns the stock mix
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		SampleRate:   48000,
		BufferMs:     100,
		MasterVolume: 1.0,
		LoopVolume:   0.6,
		SFXVolume:    0.6,
		TickVolume:   1.0,
	}
}

// Validate rejects unusable output settings and clamps volumes into [0, 1]
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.BufferMs <= 0 {
		return fmt.Errorf("%w: buffer %dms", ErrInvalidConfig, c.BufferMs)
	}
	for _, v := range []*float64{&c.MasterVolume, &c.LoopVolume, &c.SFXVolume, &c.TickVolume} {
		*v = clampVolume(*v)
	}
	return nil
}

// volumeFor returns the effective gain of a sound type
func (c *Config) volumeFor(s SoundType) float64 {
	switch s {
	case SoundTick:
		return c.TickVolume * c.MasterVolume
	default:
		return c.SFXVolume * c.MasterVolume
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
