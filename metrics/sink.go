package metrics

import (
	"time"

	"github.com/lixenwraith/super-spinner/spinner"
)

// Sink records spin notifications into Metrics
// Called on the loop goroutine only
type Sink struct {
	m   *Metrics
	now func() time.Time

	started time.Time
}

var (
	_ spinner.Sink         = (*Sink)(nil)
	_ spinner.LoadObserver = (*Sink)(nil)
	_ spinner.MissObserver = (*Sink)(nil)
)

// NewSink creates a sink over m
func NewSink(m *Metrics) *Sink {
	return &Sink{m: m, now: time.Now}
}

func (s *Sink) OnTravelUpdated(float64) {}

func (s *Sink) OnCenterChanged(int) { s.m.CenterChanges.Inc() }

func (s *Sink) OnSpinStarted() {
	s.started = s.now()
	s.m.SpinsStarted.Inc()
	s.m.TapEnabled.Set(0)
}

func (s *Sink) OnSpinSettled() {
	s.m.SpinsSettled.Inc()
	if !s.started.IsZero() {
		s.m.SpinDuration.Observe(s.now().Sub(s.started).Seconds())
		s.started = time.Time{}
	}
}

func (s *Sink) OnResultShown(value int, tier spinner.WinTier) {
	s.m.Results.WithLabelValues(tier.String()).Inc()
	s.m.ResultValue.Observe(float64(value))
}

func (s *Sink) OnResultDismissed() {}

func (s *Sink) OnTapEnabled() { s.m.TapEnabled.Set(1) }

func (s *Sink) OnError(string) {
	s.m.Errors.Inc()
	s.started = time.Time{}
}

func (s *Sink) OnLoadingChanged(loading bool) {
	if loading {
		s.m.Loading.Set(1)
		return
	}
	s.m.Loading.Set(0)
}

func (s *Sink) OnValueNotFound(int) { s.m.ValueMisses.Inc() }
