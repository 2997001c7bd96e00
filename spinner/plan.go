package spinner

import (
	"github.com/lixenwraith/super-spinner/reel"
	"github.com/lixenwraith/super-spinner/tween"
)

// Phase names as they appear in timelines and logs
const (
	PhaseFast       = "fast"
	PhaseSlowMotion = "slow"
	PhaseSettle     = "settle"
)

// SpinPlan is the travel distance computed for one result
type SpinPlan struct {
	StartTravel   float64
	CurrentOffset float64
	TargetOffset  float64
	LoopHeight    float64
	Loops         int

	// Delta is the forward distance from the current offset to the target, in [0, LoopHeight)
	Delta float64

	// EndTravel = StartTravel + Loops*LoopHeight + Delta
	EndTravel float64

	// FastEndTravel splits the fast phase from the slow-motion phase
	FastEndTravel float64
}

// PlanSpin computes how far to spin from travel to land on targetOffset
// Motion is always forward: a target behind the current offset is reached
// through the next loop rather than by reversing
func PlanSpin(travel, targetOffset, loopHeight float64, loops int, slowMotionPortion float64) SpinPlan {
	current := reel.Mod(travel, loopHeight)

	delta := targetOffset - current
	if delta < 0 {
		delta += loopHeight
	}
	// Folds float edge cases (delta == loopHeight) back into range
	delta = reel.Mod(delta, loopHeight)

	if loops < 0 {
		loops = 0
	}
	end := travel + float64(loops)*loopHeight + delta

	portion := slowMotionPortion
	if portion < 0 {
		portion = 0
	}
	if portion > 1 {
		portion = 1
	}

	return SpinPlan{
		StartTravel:   travel,
		CurrentOffset: current,
		TargetOffset:  targetOffset,
		LoopHeight:    loopHeight,
		Loops:         loops,
		Delta:         delta,
		EndTravel:     end,
		FastEndTravel: end - (end-travel)*portion,
	}
}

// Distance returns the total travel covered by the plan
func (p SpinPlan) Distance() float64 {
	return p.EndTravel - p.StartTravel
}

// timeline builds the phased travel animation for the plan
// The settle phase holds travel at EndTravel; its bounce is cosmetic
func (p SpinPlan) timeline(cfg Config, fast, slow tween.EaseFunc) tween.Timeline {
	phases := make([]tween.Phase, 0, 3)

	hasSlow := cfg.SlowDuration > 0 && p.FastEndTravel < p.EndTravel
	fastEnd := p.EndTravel
	if hasSlow {
		fastEnd = p.FastEndTravel
	}

	phases = append(phases, tween.Phase{
		Name:     PhaseFast,
		Duration: cfg.FastDuration,
		From:     p.StartTravel,
		To:       fastEnd,
		Ease:     fast,
	})
	if hasSlow {
		phases = append(phases, tween.Phase{
			Name:     PhaseSlowMotion,
			Duration: cfg.SlowDuration,
			From:     p.FastEndTravel,
			To:       p.EndTravel,
			Ease:     slow,
		})
	}
	phases = append(phases, tween.Phase{
		Name:     PhaseSettle,
		Duration: cfg.SettleDuration,
		From:     p.EndTravel,
		To:       p.EndTravel,
	})

	return tween.Timeline{Phases: phases}
}
