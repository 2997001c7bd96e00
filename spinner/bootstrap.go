package spinner

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/event"
)

// LoadFailedMessage is surfaced while the value set cannot be loaded
const LoadFailedMessage = "Network error. Please try again."

// LoadState is the value-set loading phase
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadReady
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "Idle"
	case LoadLoading:
		return "Loading"
	case LoadReady:
		return "Ready"
	case LoadFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// BootstrapConfig tunes value-set loading
type BootstrapConfig struct {
	// ReloadDelay is loop time between a failed load and the next attempt, 0 disables reload
	ReloadDelay time.Duration `yaml:"reload_delay"`
}

// DefaultBootstrapConfig returns the stock loading policy
func DefaultBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{ReloadDelay: 1500 * time.Millisecond}
}

// Bootstrap loads the value set and hands it to the orchestrator
// Taps are enabled only after a successful load
type Bootstrap struct {
	cfg    BootstrapConfig
	src    ValueSource
	orch   *Orchestrator
	sink   Sink
	logger *zap.Logger
	spawn  Spawner

	queue *event.Queue

	state    LoadState
	seq      uint64
	cancel   context.CancelFunc
	reloadIn time.Duration
	attempts int
	lastErr  error
	closed   bool
}

// NewBootstrap wires a loader for orch reading from src
func NewBootstrap(src ValueSource, orch *Orchestrator, sink Sink, cfg BootstrapConfig, opts ...Option) (*Bootstrap, error) {
	if src == nil {
		return nil, errors.New("bootstrap: nil value source")
	}
	if orch == nil {
		return nil, errors.New("bootstrap: nil orchestrator")
	}
	if sink == nil {
		sink = NopSink{}
	}
	o := buildOptions(opts)
	return &Bootstrap{
		cfg:    cfg,
		src:    src,
		orch:   orch,
		sink:   sink,
		logger: o.logger.Named("bootstrap"),
		spawn:  o.spawn,
		queue:  event.NewQueue(),
	}, nil
}

// Start dispatches a value-set fetch, replacing any load in flight
func (b *Bootstrap) Start() {
	if b.closed {
		return
	}
	b.cancelLoad()

	b.seq++
	b.attempts++
	b.state = LoadLoading
	b.reloadIn = 0
	notifyLoading(b.sink, true)

	seq := b.seq
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	src, queue := b.src, b.queue
	b.logger.Debug("loading value set", zap.Int("attempt", b.attempts))

	b.spawn(func() {
		defer cancel()
		values, err := src.FetchValueSet(ctx)
		if err != nil {
			queue.Emit(event.EventValuesFailed, &event.ValuesPayload{Seq: seq, Err: err})
			return
		}
		queue.Emit(event.EventValuesLoaded, &event.ValuesPayload{Seq: seq, Values: values})
	})
}

// Update drains load results and counts down a scheduled reload
func (b *Bootstrap) Update(dt time.Duration) {
	if b.closed {
		b.queue.Consume()
		return
	}

	for _, ev := range b.queue.Consume() {
		p, ok := ev.Payload.(*event.ValuesPayload)
		if !ok || p.Seq != b.seq || b.state != LoadLoading {
			continue
		}
		b.cancel = nil

		switch ev.Type {
		case event.EventValuesLoaded:
			b.loaded(p.Values)
		case event.EventValuesFailed:
			b.failed(p.Err)
		}
	}

	if b.state == LoadFailed && b.reloadIn > 0 {
		b.reloadIn -= dt
		if b.reloadIn <= 0 {
			b.Start()
		}
	}
}

func (b *Bootstrap) loaded(values []int) {
	if err := b.orch.Rebuild(values); err != nil {
		b.failed(err)
		return
	}
	b.orch.EnableTap()
	b.state = LoadReady
	b.lastErr = nil
	notifyLoading(b.sink, false)
	b.logger.Info("value set ready", zap.Ints("values", values), zap.Int("attempts", b.attempts))
}

func (b *Bootstrap) failed(err error) {
	b.state = LoadFailed
	b.lastErr = err
	notifyLoading(b.sink, false)
	b.sink.OnError(LoadFailedMessage)
	b.logger.Warn("value set load failed",
		zap.Error(err),
		zap.Int("attempts", b.attempts),
		zap.Duration("reload_in", b.cfg.ReloadDelay),
	)
	if b.cfg.ReloadDelay > 0 {
		b.reloadIn = b.cfg.ReloadDelay
	}
}

func (b *Bootstrap) cancelLoad() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// Close cancels an in-flight load and stops reloads
func (b *Bootstrap) Close() {
	if b.closed {
		return
	}
	b.cancelLoad()
	b.closed = true
	b.reloadIn = 0
}

func (b *Bootstrap) State() LoadState { return b.state }

// Attempts returns how many loads were started
func (b *Bootstrap) Attempts() int { return b.attempts }

// Err returns the last load failure, nil after success
func (b *Bootstrap) Err() error { return b.lastErr }

// ReloadIn returns the loop time left before the next automatic load
func (b *Bootstrap) ReloadIn() time.Duration { return b.reloadIn }
