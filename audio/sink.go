package audio

import "github.com/lixenwraith/super-spinner/spinner"

// Player is the sound surface the spin sink drives
type Player interface {
	PlaySpinLoop()
	StopSpinLoop()
	Play(SoundType) bool
}

// Sink turns spin notifications into sounds
type Sink struct {
	spinner.NopSink
	player Player
}

// NewSink creates a sink playing through p
func NewSink(p Player) *Sink {
	return &Sink{player: p}
}

func (s *Sink) OnSpinStarted() { s.player.PlaySpinLoop() }

func (s *Sink) OnCenterChanged(int) { s.player.Play(SoundTick) }

func (s *Sink) OnSpinSettled() {
	s.player.StopSpinLoop()
	s.player.Play(SoundStop)
}

func (s *Sink) OnResultShown(_ int, tier spinner.WinTier) {
	s.player.Play(WinSound(tier))
}

func (s *Sink) OnError(string) {
	s.player.StopSpinLoop()
	s.player.Play(SoundError)
}

// WinSound maps a tier to its celebration sound
func WinSound(tier spinner.WinTier) SoundType {
	switch tier {
	case spinner.TierMega:
		return SoundWinMega
	case spinner.TierBig:
		return SoundWinBig
	default:
		return SoundWinSmall
	}
}
