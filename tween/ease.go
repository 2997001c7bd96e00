package tween

import (
	"fmt"
	"math"
	"strings"
)

// EaseFunc maps normalized progress t in [0, 1] to eased progress
// All curves return 0 at t=0 and 1 at t=1
type EaseFunc func(t float64) float64

func Linear(t float64) float64 { return t }

func InQuad(t float64) float64 { return t * t }

func OutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func OutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// OutBack overshoots past 1 before settling; not monotonic
func OutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

var easeByName = map[string]EaseFunc{
	"linear":     Linear,
	"inquad":     InQuad,
	"outquad":    OutQuad,
	"inoutquad":  InOutQuad,
	"outcubic":   OutCubic,
	"inoutcubic": InOutCubic,
	"outback":    OutBack,
}

// ByName resolves a configured curve name, case and separator insensitive
func ByName(name string) (EaseFunc, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	if fn, ok := easeByName[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}

// Monotonic reports whether the curve never decreases, required for travel phases
func Monotonic(name string) bool {
	fn, err := ByName(name)
	if err != nil {
		return false
	}
	prev := fn(0)
	for i := 1; i <= 100; i++ {
		v := fn(float64(i) / 100)
		if v < prev {
			return false
		}
		prev = v
	}
	return true
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
