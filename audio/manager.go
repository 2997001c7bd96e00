package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// output abstracts the device so the manager runs without one in tests
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput plays through the process-wide beep speaker
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Close()               { speaker.Clear() }

// Manager owns the mixer and the spin loop
// Safe for concurrent use; every operation is a no-op until Initialize succeeds
type Manager struct {
	mu          sync.Mutex
	cfg         *Config
	out         output
	logger      *zap.Logger
	rate        beep.SampleRate
	mixer       *beep.Mixer
	loop        *beep.Ctrl
	initialized bool

	muted  atomic.Bool
	played [soundTypeCount]atomic.Int64
}

// NewManager creates a manager bound to the system speaker
func NewManager(cfg *Config, logger *zap.Logger) *Manager {
	return newManager(cfg, speakerOutput{}, logger)
}

func newManager(cfg *Config, out output, logger *zap.Logger) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		cfg:    cfg,
		out:    out,
		logger: logger.Named("audio"),
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
	}
	m.muted.Store(!cfg.Enabled)
	return m
}

// Initialize opens the output device and starts the mixer
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	buffer := m.rate.N(time.Duration(m.cfg.BufferMs) * time.Millisecond)
	if err := m.out.Init(m.rate, buffer); err != nil {
		return err
	}
	m.out.Play(m.mixer)
	m.initialized = true
	m.logger.Debug("audio initialized", zap.Int("sample_rate", m.cfg.SampleRate), zap.Int("buffer", buffer))
	return nil
}

// Close stops all sounds and releases the mixer
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	m.out.Lock()
	if m.loop != nil {
		m.loop.Paused = true
		m.loop = nil
	}
	m.mixer.Clear()
	m.out.Unlock()

	m.out.Close()
	m.initialized = false
}

// PlaySpinLoop starts the spinning loop, already running loops are left alone
func (m *Manager) PlaySpinLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted.Load() {
		return
	}
	if m.loop != nil && !m.loop.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(newWhirGenerator(m.rate), m.cfg.LoopVolume*m.cfg.MasterVolume)}
	m.out.Lock()
	m.mixer.Add(ctrl)
	m.out.Unlock()
	m.loop = ctrl
}

// StopSpinLoop stops the spinning loop
func (m *Manager) StopSpinLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loop == nil {
		return
	}
	m.out.Lock()
	// Silenced ctrl streams nothing; the mixer drops it once drained
	m.loop.Paused = true
	m.loop.Streamer = nil
	m.out.Unlock()
	m.loop = nil
}

// LoopActive reports whether the spinning loop is playing
func (m *Manager) LoopActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loop != nil && !m.loop.Paused
}

// Play queues a one-shot sound, returns false when muted or uninitialized
func (m *Manager) Play(s SoundType) bool {
	if s < 0 || s >= soundTypeCount {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted.Load() {
		return false
	}
	st := createSound(s, m.cfg.volumeFor(s), m.rate)
	if st == nil {
		return false
	}
	m.out.Lock()
	m.mixer.Add(st)
	m.out.Unlock()
	m.played[s].Add(1)
	return true
}

// ToggleMute flips mute and returns the new state; muting stops the loop
func (m *Manager) ToggleMute() bool {
	muted := !m.muted.Load()
	m.muted.Store(muted)
	if muted {
		m.StopSpinLoop()
	}
	m.logger.Debug("mute toggled", zap.Bool("muted", muted))
	return muted
}

// IsMuted reports the mute state
func (m *Manager) IsMuted() bool {
	return m.muted.Load()
}

// IsRunning reports whether the output is open
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Played returns how many times s was queued
func (m *Manager) Played(s SoundType) int64 {
	if s < 0 || s >= soundTypeCount {
		return 0
	}
	return m.played[s].Load()
}
