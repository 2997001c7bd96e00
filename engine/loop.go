package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/event"
)

// DefaultTick is the fixed update step, roughly 60 updates per second
const DefaultTick = 16 * time.Millisecond

const (
	// maxCatchUp bounds fixed steps run for a single wake-up
	maxCatchUp = 5
	// maxBehind is how many ticks of backlog are kept before it is dropped
	maxBehind = 2
)

// Updater advances by a fixed step on the loop goroutine
type Updater interface {
	Update(dt time.Duration)
}

// UpdateFunc adapts a function to Updater
type UpdateFunc func(dt time.Duration)

func (f UpdateFunc) Update(dt time.Duration) { f(dt) }

// Loop is the single goroutine that owns the spinner
// Each step dispatches queued events, then runs updaters in registration order
// Rendering happens once per wake-up after the steps it ran
type Loop struct {
	tick   time.Duration
	clock  TimeProvider
	logger *zap.Logger

	router   *event.Router[*Loop]
	updaters []Updater
	render   func()

	next      time.Time
	tickCount atomic.Uint64

	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithClock replaces the monotonic clock
func WithClock(clock TimeProvider) LoopOption {
	return func(l *Loop) { l.clock = clock }
}

// WithLogger sets the loop logger
func WithLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop creates a loop consuming queue every tick; tick <= 0 uses DefaultTick
func NewLoop(queue *event.Queue, tick time.Duration, opts ...LoopOption) *Loop {
	if tick <= 0 {
		tick = DefaultTick
	}
	l := &Loop{
		tick:   tick,
		clock:  NewMonotonicTimeProvider(),
		logger: zap.NewNop(),
		router: event.NewRouter[*Loop](queue),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("loop")
	return l
}

// Handle registers fn for the given event types, must be called before Run
func (l *Loop) Handle(fn func(l *Loop, ev event.GameEvent), types ...event.EventType) {
	l.router.Register(event.HandlerFunc[*Loop]{Types: types, Fn: fn})
}

// AddUpdater appends u to the per-step update chain, must be called before Run
func (l *Loop) AddUpdater(u Updater) {
	l.updaters = append(l.updaters, u)
}

// SetRender sets the per-frame draw hook
func (l *Loop) SetRender(fn func()) {
	l.render = fn
}

// Step runs exactly one fixed update
func (l *Loop) Step() {
	l.router.DispatchAll(l)
	for _, u := range l.updaters {
		u.Update(l.tick)
	}
	l.tickCount.Add(1)
}

// Reset schedules the next step one tick from now
func (l *Loop) Reset() {
	l.next = l.clock.Now().Add(l.tick)
}

// Pump runs every step that is due and renders if any ran
// A backlog beyond maxBehind ticks is dropped rather than replayed
func (l *Loop) Pump() int {
	if l.next.IsZero() {
		l.Reset()
	}
	now := l.clock.Now()

	steps := 0
	for !now.Before(l.next) && steps < maxCatchUp {
		l.Step()
		l.next = l.next.Add(l.tick)
		steps++
		if l.Stopped() {
			break
		}
	}

	if behind := now.Sub(l.next); behind > l.tick*maxBehind {
		l.logger.Debug("dropping tick backlog", zap.Duration("behind", behind))
		l.next = now.Add(l.tick)
	}

	if steps > 0 && l.render != nil {
		l.render()
	}
	return steps
}

// Run drives Pump until ctx ends or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	l.Reset()
	timer := time.NewTimer(l.tick)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.stopCh:
			return nil
		case <-timer.C:
		}

		l.Pump()

		wait := l.next.Sub(l.clock.Now())
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

// Stop ends Run, safe to call from handlers and other goroutines
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.logger.Debug("loop stopped", zap.Uint64("ticks", l.tickCount.Load()))
	})
}

// Stopped reports whether Stop was called
func (l *Loop) Stopped() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}

// TickCount returns the number of steps run
func (l *Loop) TickCount() uint64 { return l.tickCount.Load() }

// Tick returns the fixed step length
func (l *Loop) Tick() time.Duration { return l.tick }

// Queue returns the queue the loop dispatches from
func (l *Loop) Queue() *event.Queue { return l.router.Queue() }
