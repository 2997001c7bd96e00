package spinner

// Sink receives presentation notifications from the orchestrator
// All calls happen on the loop goroutine; implementations must not block
type Sink interface {
	OnTravelUpdated(offset float64)
	OnCenterChanged(index int)
	OnSpinStarted()
	OnSpinSettled()
	OnResultShown(value int, tier WinTier)
	OnResultDismissed()
	OnTapEnabled()
	OnError(message string)
}

// LoadObserver is implemented by sinks that show value-set loading progress
type LoadObserver interface {
	OnLoadingChanged(loading bool)
}

// MissObserver is implemented by sinks that count results absent from the value set
type MissObserver interface {
	OnValueNotFound(value int)
}

// NopSink ignores every notification, embed it to implement a subset
type NopSink struct{}

func (NopSink) OnTravelUpdated(float64)    {}
func (NopSink) OnCenterChanged(int)        {}
func (NopSink) OnSpinStarted()             {}
func (NopSink) OnSpinSettled()             {}
func (NopSink) OnResultShown(int, WinTier) {}
func (NopSink) OnResultDismissed()         {}
func (NopSink) OnTapEnabled()              {}
func (NopSink) OnError(string)             {}

// Sinks fans every notification out in order
type Sinks []Sink

func (s Sinks) OnTravelUpdated(offset float64) {
	for _, k := range s {
		k.OnTravelUpdated(offset)
	}
}

func (s Sinks) OnCenterChanged(index int) {
	for _, k := range s {
		k.OnCenterChanged(index)
	}
}

func (s Sinks) OnSpinStarted() {
	for _, k := range s {
		k.OnSpinStarted()
	}
}

func (s Sinks) OnSpinSettled() {
	for _, k := range s {
		k.OnSpinSettled()
	}
}

func (s Sinks) OnResultShown(value int, tier WinTier) {
	for _, k := range s {
		k.OnResultShown(value, tier)
	}
}

func (s Sinks) OnResultDismissed() {
	for _, k := range s {
		k.OnResultDismissed()
	}
}

func (s Sinks) OnTapEnabled() {
	for _, k := range s {
		k.OnTapEnabled()
	}
}

func (s Sinks) OnError(message string) {
	for _, k := range s {
		k.OnError(message)
	}
}

// OnLoadingChanged forwards to members implementing LoadObserver
func (s Sinks) OnLoadingChanged(loading bool) {
	for _, k := range s {
		if lo, ok := k.(LoadObserver); ok {
			lo.OnLoadingChanged(loading)
		}
	}
}

// OnValueNotFound forwards to members implementing MissObserver
func (s Sinks) OnValueNotFound(value int) {
	for _, k := range s {
		if mo, ok := k.(MissObserver); ok {
			mo.OnValueNotFound(value)
		}
	}
}

func notifyValueNotFound(s Sink, value int) {
	if mo, ok := s.(MissObserver); ok {
		mo.OnValueNotFound(value)
	}
}

func notifyLoading(s Sink, loading bool) {
	if lo, ok := s.(LoadObserver); ok {
		lo.OnLoadingChanged(loading)
	}
}
