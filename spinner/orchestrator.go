package spinner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/event"
	"github.com/lixenwraith/super-spinner/fsm"
	"github.com/lixenwraith/super-spinner/reel"
	"github.com/lixenwraith/super-spinner/tween"
)

// SpinFailedMessage is surfaced to the player when a spin request fails
const SpinFailedMessage = "Network error. Please try again."

// pendingSpin tracks the single in-flight spin request
type pendingSpin struct {
	seq     uint64
	cancel  context.CancelFunc
	started time.Time
}

// Orchestrator drives the spin flow: tap, request, animate, present
// It is single-writer; every mutating method must run on the loop goroutine
// Results from the spawned request come back through an event queue drained in Update
type Orchestrator struct {
	cfg    Config
	strip  *reel.Strip
	svc    ResultService
	sink   Sink
	logger *zap.Logger
	spawn  Spawner

	machine *fsm.Machine[*Orchestrator]
	results *event.Queue

	fastEase tween.EaseFunc
	slowEase tween.EaseFunc

	// travel is the cumulative scroll distance, never decreasing during a spin
	travel     float64
	lastCenter int

	ready       bool // value set loaded, tap may be offered
	tapEnabled  bool
	resultShown bool
	closed      bool

	seq     uint64
	pending *pendingSpin
	session *SpinSession
	last    *SpinSession
}

// New creates an orchestrator over a strip and result service
// The strip may be unbuilt; taps stay disabled until Rebuild and EnableTap
func New(strip *reel.Strip, svc ResultService, sink Sink, cfg Config, opts ...Option) (*Orchestrator, error) {
	if strip == nil {
		return nil, errors.New("spinner: nil strip")
	}
	if svc == nil {
		return nil, errors.New("spinner: nil result service")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spinner config: %w", err)
	}
	if sink == nil {
		sink = NopSink{}
	}

	fast, err := tween.ByName(cfg.FastEase)
	if err != nil {
		return nil, fmt.Errorf("spinner fast ease: %w", err)
	}
	slow, err := tween.ByName(cfg.SlowEase)
	if err != nil {
		return nil, fmt.Errorf("spinner slow ease: %w", err)
	}
	o := buildOptions(opts)

	orch := &Orchestrator{
		cfg:      cfg,
		strip:    strip,
		svc:      svc,
		sink:     sink,
		logger:   o.logger.Named("spinner"),
		spawn:    o.spawn,
		results:  event.NewQueue(),
		fastEase: fast,
		slowEase: slow,
	}

	if err := orch.buildMachine(); err != nil {
		return nil, err
	}
	if err := orch.machine.Init(orch, StateIdle.id()); err != nil {
		return nil, fmt.Errorf("spinner init: %w", err)
	}
	if strip.Built() {
		orch.ResetTravel()
	}
	return orch, nil
}

func (o *Orchestrator) buildMachine() error {
	m := fsm.NewMachine[*Orchestrator]()
	m.AddState(StateIdle.id(), StateIdle.String())
	m.AddState(StateSpinning.id(), StateSpinning.String())
	m.AddState(StateShowingResult.id(), StateShowingResult.String())

	transitions := []struct {
		from State
		t    fsm.Transition[*Orchestrator]
	}{
		{StateIdle, fsm.Transition[*Orchestrator]{TargetID: StateSpinning.id(), Event: event.EventTap, Guard: (*Orchestrator).canSpin}},
		{StateSpinning, fsm.Transition[*Orchestrator]{TargetID: StateIdle.id(), Event: event.EventSpinFailed}},
		{StateSpinning, fsm.Transition[*Orchestrator]{TargetID: StateShowingResult.id(), Event: event.EventTick, Guard: (*Orchestrator).sessionFinished}},
		{StateShowingResult, fsm.Transition[*Orchestrator]{TargetID: StateIdle.id(), Event: event.EventTap}},
	}
	for _, tr := range transitions {
		if err := m.AddTransition(tr.from.id(), tr.t); err != nil {
			return fmt.Errorf("spinner machine: %w", err)
		}
	}

	m.OnEnter(StateIdle.id(), "offer_tap", (*Orchestrator).enterIdle)
	m.OnEnter(StateSpinning.id(), "begin_spin", (*Orchestrator).beginSpin)
	m.OnExit(StateSpinning.id(), "end_spin", (*Orchestrator).endSpin)
	m.OnEnter(StateShowingResult.id(), "show_result", (*Orchestrator).showResult)
	m.OnExit(StateShowingResult.id(), "dismiss_result", (*Orchestrator).dismissResult)

	o.machine = m
	return nil
}

// --- Guards ---

func (o *Orchestrator) canSpin() bool {
	return o.tapEnabled && !o.closed && o.strip.Built()
}

func (o *Orchestrator) sessionFinished() bool {
	return o.session != nil && o.session.Finished()
}

// --- Actions ---

func (o *Orchestrator) enterIdle() {
	if o.ready && !o.closed && o.strip.Built() {
		o.tapEnabled = true
		o.sink.OnTapEnabled()
	}
}

func (o *Orchestrator) beginSpin() {
	o.cancelInFlight()
	o.lastCenter = o.CenterIndex()
	o.tapEnabled = false
	if o.resultShown {
		o.resultShown = false
		o.sink.OnResultDismissed()
	}
	o.sink.OnSpinStarted()
	o.requestSpin()
}

func (o *Orchestrator) endSpin() {
	if o.pending != nil {
		o.pending.cancel()
		o.pending = nil
	}
	if o.session != nil {
		o.last = o.session
		o.session = nil
	}
}

func (o *Orchestrator) showResult() {
	s := o.last
	if s == nil {
		return
	}
	o.resultShown = true
	o.logger.Info("spin result",
		zap.Stringer("session", s.ID),
		zap.Int("value", s.TargetValue),
		zap.Stringer("tier", s.Tier),
		zap.Int("center", o.CenterIndex()),
	)
	o.sink.OnResultShown(s.TargetValue, s.Tier)
}

func (o *Orchestrator) dismissResult() {
	if o.resultShown {
		o.resultShown = false
		o.sink.OnResultDismissed()
	}
}

// --- Request lifecycle ---

func (o *Orchestrator) requestSpin() {
	o.seq++
	seq := o.seq

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if o.cfg.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), o.cfg.RequestTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	o.pending = &pendingSpin{seq: seq, cancel: cancel, started: time.Now()}

	svc, results := o.svc, o.results
	o.logger.Debug("spin requested", zap.Uint64("seq", seq))

	o.spawn(func() {
		defer cancel()
		value, err := svc.Spin(ctx)
		if err != nil {
			results.Emit(event.EventSpinFailed, &event.SpinResultPayload{Seq: seq, Err: err})
			return
		}
		results.Emit(event.EventSpinResolved, &event.SpinResultPayload{Seq: seq, Value: value})
	})
}

// cancelInFlight drops the pending request and active session; idempotent
func (o *Orchestrator) cancelInFlight() {
	if o.pending != nil {
		o.pending.cancel()
		o.pending = nil
	}
	o.session = nil
}

func (o *Orchestrator) drainResults() {
	for _, ev := range o.results.Consume() {
		p, ok := ev.Payload.(*event.SpinResultPayload)
		if !ok {
			continue
		}
		if o.closed || o.pending == nil || p.Seq != o.pending.seq || o.session != nil || o.State() != StateSpinning {
			o.logger.Debug("stale spin result dropped", zap.Uint64("seq", p.Seq), zap.Stringer("type", ev.Type))
			continue
		}

		latency := time.Since(o.pending.started)
		o.pending = nil

		switch ev.Type {
		case event.EventSpinResolved:
			o.logger.Debug("spin resolved", zap.Uint64("seq", p.Seq), zap.Int("value", p.Value), zap.Duration("latency", latency))
			o.startSession(p.Seq, p.Value)
		case event.EventSpinFailed:
			o.failSpin(p.Err)
		}
	}
}

func (o *Orchestrator) startSession(seq uint64, value int) {
	target, found := o.strip.TargetOffsetFor(value)
	if !found {
		o.logger.Warn("result value not in value set, landing on offset 0", zap.Int("value", value))
		notifyValueNotFound(o.sink, value)
	}

	plan := PlanSpin(o.travel, target, o.strip.LoopHeight(), o.cfg.Loops, o.cfg.SlowMotionPortion)
	tl := plan.timeline(o.cfg, o.fastEase, o.slowEase)
	amp := o.cfg.SettleBounce * o.strip.ItemSpacing()

	o.session = newSession(seq, value, found, o.cfg.Thresholds.Classify(value), plan, tl, amp)
	o.logger.Debug("spin session started",
		zap.Stringer("session", o.session.ID),
		zap.Float64("delta", plan.Delta),
		zap.Float64("end_travel", plan.EndTravel),
		zap.Duration("duration", tl.Duration()),
	)
}

func (o *Orchestrator) failSpin(err error) {
	o.logger.Warn("spin request failed", zap.Error(err))
	o.sink.OnError(SpinFailedMessage)
	o.machine.HandleEvent(o, event.EventSpinFailed)
}

func (o *Orchestrator) advance(dt time.Duration) {
	s := o.session
	travel, bounce, landed := s.advance(dt)
	if landed {
		travel = s.Plan.EndTravel
	}
	if travel > o.travel {
		o.travel = travel
	}

	o.sink.OnTravelUpdated(reel.Mod(o.travel+bounce, o.strip.LoopHeight()))

	if center := o.CenterIndex(); center != o.lastCenter {
		o.lastCenter = center
		o.sink.OnCenterChanged(center)
	}

	if s.Finished() {
		o.sink.OnSpinSettled()
	}
}

// --- Public operations ---

// Tap requests a spin, or dismisses a shown result
// Returns false when the tap was ignored
func (o *Orchestrator) Tap() bool {
	if o.closed {
		return false
	}
	handled := o.machine.HandleEvent(o, event.EventTap)
	if !handled {
		o.logger.Debug("tap ignored", zap.Stringer("state", o.State()), zap.Bool("tap_enabled", o.tapEnabled))
	}
	return handled
}

// Update drains async results, advances the active session and evaluates tick transitions
func (o *Orchestrator) Update(dt time.Duration) {
	if o.closed {
		o.results.Consume()
		return
	}
	o.drainResults()
	if o.State() == StateSpinning && o.session != nil && !o.session.Finished() {
		o.advance(dt)
	}
	o.machine.Update(o, dt)
}

// EnableTap offers the tap affordance once the value set is ready
func (o *Orchestrator) EnableTap() {
	if o.closed {
		return
	}
	o.ready = true
	if o.State() == StateIdle && !o.tapEnabled && o.strip.Built() {
		o.tapEnabled = true
		o.sink.OnTapEnabled()
	}
}

// Rebuild replaces the value set
// Cancels any request or session, returns to Idle and hides tap until EnableTap
func (o *Orchestrator) Rebuild(values []int) error {
	if o.closed {
		return errors.New("spinner: closed")
	}
	if err := o.strip.Build(values); err != nil {
		return fmt.Errorf("rebuild strip: %w", err)
	}

	o.cancelInFlight()
	o.ready = false
	o.tapEnabled = false
	if err := o.machine.Reset(o); err != nil {
		return fmt.Errorf("reset spinner: %w", err)
	}

	o.ResetTravel()
	o.lastCenter = o.CenterIndex()
	o.sink.OnTravelUpdated(o.Offset())
	o.sink.OnCenterChanged(o.lastCenter)

	o.logger.Info("value set built",
		zap.Int("count", o.strip.UniqueCount()),
		zap.Uint64("generation", o.strip.Generation()),
	)
	return nil
}

// ResetTravel re-seeds travel from the strip's idle offset
func (o *Orchestrator) ResetTravel() {
	o.travel = o.strip.IdleOffset()
}

// Close cancels everything in flight; later results are ignored
func (o *Orchestrator) Close() {
	if o.closed {
		return
	}
	o.cancelInFlight()
	o.closed = true
	o.tapEnabled = false
	o.results.Consume()
}

// --- Accessors ---

func (o *Orchestrator) State() State { return State(o.machine.State()) }

func (o *Orchestrator) Travel() float64 { return o.travel }

// Offset is travel reduced into [0, loopHeight)
func (o *Orchestrator) Offset() float64 {
	return reel.Mod(o.travel, o.strip.LoopHeight())
}

func (o *Orchestrator) CenterIndex() int {
	return o.strip.CenterIndex(o.Offset())
}

// Session returns the running spin session, nil when none
func (o *Orchestrator) Session() *SpinSession { return o.session }

// LastResult returns the most recently landed result
func (o *Orchestrator) LastResult() (value int, tier WinTier, ok bool) {
	if o.last == nil {
		return 0, TierSmall, false
	}
	return o.last.TargetValue, o.last.Tier, true
}

// Pending reports whether a spin request is awaiting its result
func (o *Orchestrator) Pending() bool { return o.pending != nil }

func (o *Orchestrator) TapEnabled() bool { return o.tapEnabled }

func (o *Orchestrator) ResultShown() bool { return o.resultShown }

func (o *Orchestrator) Strip() *reel.Strip { return o.strip }

func (o *Orchestrator) Config() Config { return o.cfg }

func (o *Orchestrator) Closed() bool { return o.closed }
