package spinner

import (
	"time"

	"github.com/google/uuid"
	"github.com/lixenwraith/super-spinner/tween"
)

// SpinSession is one running spin animation toward a known result
// At most one session exists; starting a new one replaces the old
type SpinSession struct {
	ID          uuid.UUID
	Seq         uint64
	TargetValue int
	// TargetFound is false when the result was not in the value set and the reel lands on offset 0
	TargetFound bool
	Tier        WinTier
	Plan        SpinPlan

	timeline  tween.Timeline
	settle    tween.Phase
	bounceAmp float64

	elapsed  time.Duration
	phase    int
	landed   bool
	finished bool
}

func newSession(seq uint64, value int, found bool, tier WinTier, plan SpinPlan, tl tween.Timeline, bounceAmp float64) *SpinSession {
	s := &SpinSession{
		ID:          uuid.New(),
		Seq:         seq,
		TargetValue: value,
		TargetFound: found,
		Tier:        tier,
		Plan:        plan,
		timeline:    tl,
		bounceAmp:   bounceAmp,
	}
	if n := len(tl.Phases); n > 0 && tl.Phases[n-1].Name == PhaseSettle {
		s.settle = tl.Phases[n-1]
	}
	return s
}

// advance moves the session forward by dt
// Returns the sampled travel, the cosmetic settle displacement and whether
// the distance phases completed during this step
func (s *SpinSession) advance(dt time.Duration) (travel, bounce float64, justLanded bool) {
	if s.finished {
		return s.Plan.EndTravel, 0, false
	}
	if dt > 0 {
		s.elapsed += dt
	}

	value, phase, done := s.timeline.Position(s.elapsed)
	s.phase = phase
	travel = value

	if !s.landed && (done || s.timeline.Phases[phase].Name == PhaseSettle) {
		s.landed = true
		justLanded = true
		travel = s.Plan.EndTravel
	}

	if s.landed && !done && s.settle.Duration > 0 {
		into := s.elapsed - (s.timeline.Duration() - s.settle.Duration)
		t := float64(into) / float64(s.settle.Duration)
		bounce = tween.Bounce(t, s.bounceAmp)
	}

	if done {
		s.finished = true
		travel = s.Plan.EndTravel
		bounce = 0
	}
	return travel, bounce, justLanded
}

// Elapsed returns the animation time consumed so far
func (s *SpinSession) Elapsed() time.Duration { return s.elapsed }

// Duration returns the full animation length including settle
func (s *SpinSession) Duration() time.Duration { return s.timeline.Duration() }

// Phase returns the name of the active phase
func (s *SpinSession) Phase() string {
	if s.phase < 0 || s.phase >= len(s.timeline.Phases) {
		return ""
	}
	return s.timeline.Phases[s.phase].Name
}

// Landed reports whether travel reached EndTravel
func (s *SpinSession) Landed() bool { return s.landed }

// Finished reports whether the settle phase completed
func (s *SpinSession) Finished() bool { return s.finished }
