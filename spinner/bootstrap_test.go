package spinner

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/super-spinner/reel"
)

func newBootstrapFixture(t *testing.T, svc *fakeService) (*Bootstrap, *Orchestrator, *deferredSpawner, *recorder) {
	t.Helper()
	sp := &deferredSpawner{}
	rec := &recorder{}
	orch, err := New(reel.NewStrip(reel.DefaultLayout()), svc, rec, DefaultConfig(), WithSpawner(sp.spawn))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := NewBootstrap(svc, orch, rec, DefaultBootstrapConfig(), WithSpawner(sp.spawn))
	if err != nil {
		t.Fatalf("NewBootstrap: %v", err)
	}
	return b, orch, sp, rec
}

func TestBootstrapLoads(t *testing.T) {
	svc := &fakeService{values: []int{1000, 2000, 3000}}
	b, orch, sp, rec := newBootstrapFixture(t, svc)

	if orch.TapEnabled() {
		t.Fatal("tap enabled before load")
	}

	b.Start()
	if b.State() != LoadLoading {
		t.Fatalf("state = %v, want Loading", b.State())
	}
	sp.runAll()
	b.Update(frame)

	if b.State() != LoadReady {
		t.Fatalf("state = %v, want Ready", b.State())
	}
	if !orch.TapEnabled() || rec.count("tap") != 1 {
		t.Errorf("tap enabled=%v events=%v", orch.TapEnabled(), rec.events)
	}
	if orch.Strip().UniqueCount() != 3 {
		t.Errorf("strip count = %d, want 3", orch.Strip().UniqueCount())
	}
	// Default idle index 1 centers the second value
	if orch.CenterIndex() != 1 {
		t.Errorf("idle center = %d, want 1", orch.CenterIndex())
	}
	if len(rec.loading) != 2 || !rec.loading[0] || rec.loading[1] {
		t.Errorf("loading notifications = %v, want [true false]", rec.loading)
	}
}

func TestBootstrapFailureReloads(t *testing.T) {
	svc := &fakeService{valuesErr: errOffline}
	b, orch, sp, rec := newBootstrapFixture(t, svc)

	b.Start()
	sp.runAll()
	b.Update(frame)

	if b.State() != LoadFailed {
		t.Fatalf("state = %v, want Failed", b.State())
	}
	if !errors.Is(b.Err(), errOffline) {
		t.Errorf("Err = %v, want offline", b.Err())
	}
	if len(rec.errors) != 1 || rec.errors[0] != LoadFailedMessage {
		t.Errorf("errors = %v", rec.errors)
	}

	// Reload waits for loop time, not wall time
	b.Update(time.Second)
	if b.Attempts() != 1 || b.State() != LoadFailed {
		t.Fatalf("attempts=%d state=%v before reload delay", b.Attempts(), b.State())
	}
	b.Update(600 * time.Millisecond)
	if b.Attempts() != 2 || b.State() != LoadLoading {
		t.Fatalf("attempts=%d state=%v, want reload started", b.Attempts(), b.State())
	}

	sp.runAll()
	b.Update(frame)
	if b.State() != LoadFailed {
		t.Errorf("state = %v, want Failed again", b.State())
	}
	if orch.TapEnabled() || orch.Tap() {
		t.Error("tap enabled without a value set")
	}
	if rec.count("tap") != 0 {
		t.Errorf("tap notifications = %d, want 0", rec.count("tap"))
	}

	// Recovers once the service does
	svc.mu.Lock()
	svc.valuesErr = nil
	svc.values = []int{5, 10}
	svc.mu.Unlock()
	b.Update(2 * time.Second)
	sp.runAll()
	b.Update(frame)
	if b.State() != LoadReady || !orch.TapEnabled() {
		t.Errorf("state=%v tap=%v after recovery", b.State(), orch.TapEnabled())
	}
	if b.Err() != nil {
		t.Errorf("Err = %v after recovery", b.Err())
	}
}

func TestBootstrapEmptyValueSetFails(t *testing.T) {
	svc := &fakeService{values: []int{}}
	b, orch, sp, _ := newBootstrapFixture(t, svc)

	b.Start()
	sp.runAll()
	b.Update(frame)

	if b.State() != LoadFailed {
		t.Errorf("state = %v, want Failed", b.State())
	}
	if !errors.Is(b.Err(), reel.ErrEmptyValues) {
		t.Errorf("Err = %v, want ErrEmptyValues", b.Err())
	}
	if orch.TapEnabled() {
		t.Error("tap enabled after empty value set")
	}
}

func TestBootstrapClose(t *testing.T) {
	svc := &fakeService{values: []int{1, 2, 3}}
	b, orch, sp, _ := newBootstrapFixture(t, svc)

	b.Start()
	b.Close()
	sp.runAll()
	b.Update(frame)

	if b.State() == LoadReady || orch.TapEnabled() {
		t.Error("closed bootstrap applied a late value set")
	}
	b.Start()
	if sp.queued() != 0 {
		t.Error("Start after Close dispatched a fetch")
	}
}

func TestBootstrapRestartDropsStaleLoad(t *testing.T) {
	svc := &fakeService{values: []int{1, 2, 3}}
	b, _, sp, _ := newBootstrapFixture(t, svc)

	b.Start()
	b.Start()
	if sp.queued() != 2 {
		t.Fatalf("queued = %d, want 2", sp.queued())
	}
	sp.runAll()
	b.Update(frame)

	if b.State() != LoadReady {
		t.Errorf("state = %v, want Ready", b.State())
	}
	if b.Attempts() != 2 {
		t.Errorf("attempts = %d, want 2", b.Attempts())
	}
}
