package tween

import (
	"math"
	"testing"
)

func TestEaseEndpoints(t *testing.T) {
	for name, fn := range easeByName {
		if v := fn(0); math.Abs(v) > 1e-9 {
			t.Errorf("%s(0) = %v, want 0", name, v)
		}
		if v := fn(1); math.Abs(v-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", name, v)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"InOutCubic", "in_out_cubic", "out-quad", "LINEAR"} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q) failed: %v", name, err)
		}
	}
	if _, err := ByName("elastic"); err == nil {
		t.Error("ByName(elastic) should fail")
	}
}

func TestMonotonic(t *testing.T) {
	for _, name := range []string{"linear", "inQuad", "outQuad", "inOutQuad", "outCubic", "inOutCubic"} {
		if !Monotonic(name) {
			t.Errorf("%s should be monotonic", name)
		}
	}
	if Monotonic("outBack") {
		t.Error("outBack overshoots and must not report monotonic")
	}
	if Monotonic("unknown") {
		t.Error("unknown curve must not report monotonic")
	}
}
