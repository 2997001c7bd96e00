package spinner

import (
	"fmt"
	"time"

	"github.com/lixenwraith/super-spinner/tween"
)

// Config holds spin animation tuning
type Config struct {
	// Loops is the number of full revolutions before landing
	Loops int `yaml:"loops"`

	FastDuration   time.Duration `yaml:"fast_duration"`
	SlowDuration   time.Duration `yaml:"slow_duration"`
	SettleDuration time.Duration `yaml:"settle_duration"`

	// SlowMotionPortion is the fraction of total distance covered by the slow phase
	SlowMotionPortion float64 `yaml:"slow_motion_portion"`

	FastEase string `yaml:"fast_ease"`
	SlowEase string `yaml:"slow_ease"`

	// SettleBounce is the bounce amplitude as a fraction of item spacing
	SettleBounce float64 `yaml:"settle_bounce"`

	Thresholds Thresholds `yaml:"thresholds"`

	// RequestTimeout bounds a whole spin request, 0 leaves it to the service
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultConfig returns the stock spin tuning
func DefaultConfig() Config {
	return Config{
		Loops:             6,
		FastDuration:      2800 * time.Millisecond,
		SlowDuration:      250 * time.Millisecond,
		SettleDuration:    300 * time.Millisecond,
		SlowMotionPortion: 0.04,
		FastEase:          "InOutCubic",
		SlowEase:          "OutQuad",
		SettleBounce:      0.08,
		Thresholds:        DefaultThresholds(),
	}
}

// Validate checks the tuning for values that would break forward motion
func (c Config) Validate() error {
	if c.Loops < 1 {
		return fmt.Errorf("loops must be >= 1, got %d", c.Loops)
	}
	if c.FastDuration < 0 || c.SlowDuration < 0 || c.SettleDuration < 0 {
		return fmt.Errorf("phase durations must not be negative")
	}
	if c.SlowMotionPortion < 0 || c.SlowMotionPortion >= 1 {
		return fmt.Errorf("slow motion portion must be in [0, 1), got %g", c.SlowMotionPortion)
	}
	for _, name := range []string{c.FastEase, c.SlowEase} {
		if _, err := tween.ByName(name); err != nil {
			return err
		}
		// Non-monotonic curves would move the reel backward
		if !tween.Monotonic(name) {
			return fmt.Errorf("ease %q overshoots and cannot drive travel", name)
		}
	}
	if c.SettleBounce < 0 {
		return fmt.Errorf("settle bounce must not be negative")
	}
	if c.Thresholds.Big > c.Thresholds.Mega {
		return fmt.Errorf("big threshold %d exceeds mega threshold %d", c.Thresholds.Big, c.Thresholds.Mega)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}
