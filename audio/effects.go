package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a shaped oscillator note
func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// Sound builders

// createTick is a short high click for each item passing the marker
func createTick(rate beep.SampleRate) beep.Streamer {
	d := 25 * time.Millisecond
	return beep.Mix(
		newVolume(tone(2200, d, time.Millisecond, 20*time.Millisecond, WaveSquare, rate), 0.25),
		newVolume(tone(0, d, 0, 22*time.Millisecond, WaveNoise, rate), 0.1),
	)
}

// createStop is a low thunk as the reel locks
func createStop(rate beep.SampleRate) beep.Streamer {
	d := 140 * time.Millisecond
	return beep.Mix(
		newVolume(tone(110, d, 2*time.Millisecond, 120*time.Millisecond, WaveSine, rate), 0.8),
		newVolume(tone(220, d/2, 2*time.Millisecond, 60*time.Millisecond, WaveSquare, rate), 0.15),
	)
}

// createWin plays a rising arpeggio, longer and brighter for higher tiers
func createWin(s SoundType, rate beep.SampleRate) beep.Streamer {
	// C5 E5 G5 C6 E6 G6
	scale := []float64{523.25, 659.25, 783.99, 1046.50, 1318.51, 1567.98}

	notes, step, wave := 3, 90*time.Millisecond, WaveSine
	switch s {
	case SoundWinBig:
		notes, step, wave = 4, 80*time.Millisecond, WaveSquare
	case SoundWinMega:
		notes, step, wave = 6, 70*time.Millisecond, WaveSquare
	}

	seq := make([]beep.Streamer, 0, notes+1)
	for i := 0; i < notes; i++ {
		seq = append(seq, newVolume(tone(scale[i], step, 3*time.Millisecond, step/2, wave, rate), 0.5))
	}
	// Held final chord
	hold := 4 * step
	top := scale[notes-1]
	seq = append(seq, beep.Mix(
		newVolume(tone(top, hold, 5*time.Millisecond, hold*3/4, WaveSine, rate), 0.5),
		newVolume(tone(top/2, hold, 5*time.Millisecond, hold*3/4, WaveSine, rate), 0.3),
	))
	return beep.Seq(seq...)
}

// createError is a short harsh buzz
func createError(rate beep.SampleRate) beep.Streamer {
	d := 180 * time.Millisecond
	return newVolume(tone(100, d, 5*time.Millisecond, 80*time.Millisecond, WaveSaw, rate), 0.5)
}

// createSound returns the one-shot streamer for s at gain vol, nil for unknown types
func createSound(s SoundType, vol float64, rate beep.SampleRate) beep.Streamer {
	var st beep.Streamer
	switch s {
	case SoundTick:
		st = createTick(rate)
	case SoundStop:
		st = createStop(rate)
	case SoundWinSmall, SoundWinBig, SoundWinMega:
		st = createWin(s, rate)
	case SoundError:
		st = createError(rate)
	default:
		return nil
	}
	return newVolume(st, vol)
}

// whirGenerator is the endless spinning loop: a rotor hum with a click train
type whirGenerator struct {
	sr  beep.SampleRate
	pos int
}

func newWhirGenerator(sr beep.SampleRate) *whirGenerator {
	return &whirGenerator{sr: sr}
}

func (g *whirGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	clickEvery := g.sr.N(60 * time.Millisecond)
	clickLen := g.sr.N(4 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		hum := 0.12*math.Sin(2*math.Pi*95*t) + 0.05*math.Sin(2*math.Pi*190*t)
		wobble := 0.8 + 0.2*math.Sin(2*math.Pi*3*t)

		click := 0.0
		if p := g.pos % clickEvery; p < clickLen {
			click = 0.15 * (1 - float64(p)/float64(clickLen)) * math.Sin(2*math.Pi*1800*t)
		}

		sample := hum*wobble + click
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *whirGenerator) Err() error { return nil }
