package tween

import (
	"math"
	"time"
)

// Phase interpolates a scalar from From to To over Duration
type Phase struct {
	Name     string
	Duration time.Duration
	From     float64
	To       float64
	Ease     EaseFunc // nil = Linear
}

// At returns the phase value after elapsed time within the phase
func (p Phase) At(elapsed time.Duration) float64 {
	if p.Duration <= 0 || elapsed >= p.Duration {
		return p.To
	}
	if elapsed <= 0 {
		return p.From
	}
	ease := p.Ease
	if ease == nil {
		ease = Linear
	}
	t := clamp01(float64(elapsed) / float64(p.Duration))
	return p.From + (p.To-p.From)*ease(t)
}

// Timeline runs phases back to back
// Position is a pure function of elapsed time, so cancelling a timeline
// is simply not sampling it any more
type Timeline struct {
	Phases []Phase
}

// Duration returns the summed phase duration
func (tl Timeline) Duration() time.Duration {
	var d time.Duration
	for _, p := range tl.Phases {
		if p.Duration > 0 {
			d += p.Duration
		}
	}
	return d
}

// Position samples the timeline
// Returns the value, the active phase index and whether the timeline finished
func (tl Timeline) Position(elapsed time.Duration) (value float64, phase int, done bool) {
	if len(tl.Phases) == 0 {
		return 0, -1, true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	for i, p := range tl.Phases {
		d := p.Duration
		if d < 0 {
			d = 0
		}
		if elapsed < d {
			return p.At(elapsed), i, false
		}
		elapsed -= d
	}

	last := len(tl.Phases) - 1
	return tl.Phases[last].To, last, true
}

// Bounce returns a damped cosmetic displacement for progress t in [0, 1]
// Zero at both ends and bounded by amplitude
func Bounce(t, amplitude float64) float64 {
	t = clamp01(t)
	if t == 0 || t == 1 {
		return 0
	}
	return amplitude * math.Sin(t*2*math.Pi) * (1 - t)
}
