package audio

import "errors"

// SoundType represents one-shot sound effects
type SoundType int

const (
	SoundTick     SoundType = iota // Center index changed
	SoundStop                      // Reel settled
	SoundWinSmall                  // Small tier result
	SoundWinBig                    // Big tier result
	SoundWinMega                   // Mega tier result
	SoundError                     // Request failed
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"tick", "stop", "win_small", "win_big", "win_mega", "error"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrInvalidConfig  = errors.New("invalid audio config")
)
