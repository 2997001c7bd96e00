package spinner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/super-spinner/reel"
)

const frame = 16 * time.Millisecond

var errOffline = errors.New("offline")

// deferredSpawner holds spawned work until the test releases it
type deferredSpawner struct {
	mu  sync.Mutex
	fns []func()
}

func (d *deferredSpawner) spawn(fn func()) {
	d.mu.Lock()
	d.fns = append(d.fns, fn)
	d.mu.Unlock()
}

func (d *deferredSpawner) runAll() int {
	d.mu.Lock()
	fns := d.fns
	d.fns = nil
	d.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func (d *deferredSpawner) queued() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.fns)
}

// fakeService scripts value-set and spin responses
type fakeService struct {
	mu        sync.Mutex
	values    []int
	valuesErr error
	results   []int
	spinErr   error
	spins     int
	fetches   int
}

func (f *fakeService) FetchValueSet(ctx context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.valuesErr != nil {
		return nil, f.valuesErr
	}
	return append([]int(nil), f.values...), nil
}

func (f *fakeService) Spin(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spins++
	if f.spinErr != nil {
		return 0, f.spinErr
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(f.results) == 0 {
		return 0, errors.New("no scripted result")
	}
	v := f.results[0]
	f.results = f.results[1:]
	return v, nil
}

// recorder captures sink notifications in order
type recorder struct {
	events  []string
	centers []int
	offsets []float64
	errors  []string
	loading []bool
}

func (r *recorder) OnTravelUpdated(offset float64) { r.offsets = append(r.offsets, offset) }

func (r *recorder) OnCenterChanged(index int) {
	r.centers = append(r.centers, index)
	r.events = append(r.events, fmt.Sprintf("center:%d", index))
}

func (r *recorder) OnSpinStarted()     { r.events = append(r.events, "started") }
func (r *recorder) OnSpinSettled()     { r.events = append(r.events, "settled") }
func (r *recorder) OnResultDismissed() { r.events = append(r.events, "dismissed") }
func (r *recorder) OnTapEnabled()      { r.events = append(r.events, "tap") }

func (r *recorder) OnResultShown(value int, tier WinTier) {
	r.events = append(r.events, fmt.Sprintf("result:%d:%s", value, tier))
}

func (r *recorder) OnError(message string) {
	r.errors = append(r.errors, message)
	r.events = append(r.events, "error")
}

func (r *recorder) OnLoadingChanged(loading bool) { r.loading = append(r.loading, loading) }

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e == name {
			n++
		}
	}
	return n
}

func (r *recorder) indexOf(name string) int {
	for i, e := range r.events {
		if e == name {
			return i
		}
	}
	return -1
}

type fixture struct {
	orch  *Orchestrator
	svc   *fakeService
	sp    *deferredSpawner
	rec   *recorder
	strip *reel.Strip
}

// newFixture builds a ready orchestrator with idle index 0 so travel starts at offset 0
func newFixture(t *testing.T, values []int, cfg Config) *fixture {
	t.Helper()
	layout := reel.DefaultLayout()
	layout.IdleIndex = 0
	strip := reel.NewStrip(layout)

	f := &fixture{
		svc:   &fakeService{values: values},
		sp:    &deferredSpawner{},
		rec:   &recorder{},
		strip: strip,
	}
	orch, err := New(strip, f.svc, f.rec, cfg, WithSpawner(f.sp.spawn))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := orch.Rebuild(values); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	orch.EnableTap()
	f.orch = orch
	return f
}

// runUntil steps frames until the orchestrator reaches want or the frame budget runs out
func (f *fixture) runUntil(t *testing.T, want State, maxFrames int) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if f.orch.State() == want {
			return
		}
		f.orch.Update(frame)
	}
	if f.orch.State() != want {
		t.Fatalf("state = %v after %d frames, want %v", f.orch.State(), maxFrames, want)
	}
}
