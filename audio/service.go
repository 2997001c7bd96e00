package audio

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Service wraps Manager as a hub-managed service
// Handles graceful degradation when no audio device is available
type Service struct {
	logger   *zap.Logger
	manager  *Manager
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional); an invalid config disables audio rather than failing startup
func (s *Service) Init(args ...any) error {
	cfg := DefaultConfig()
	if len(args) > 0 {
		if c, ok := args[0].(*Config); ok && c != nil {
			cfg = c
		}
	}
	if !cfg.Enabled {
		s.logger.Info("audio disabled by config")
		s.disabled.Store(true)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("audio disabled", zap.Error(err))
		s.disabled.Store(true)
		return nil
	}
	s.manager = NewManager(cfg, s.logger)
	return nil
}

// Start implements service.Service
// Opens the device; sets disabled on failure (no error returned)
func (s *Service) Start() error {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.logger.Warn("no audio device, running silent", zap.Error(err))
		s.disabled.Store(true)
		s.manager = nil
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.manager != nil && s.manager.IsRunning() {
		s.manager.Close()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the running manager, nil if disabled
func (s *Service) Manager() *Manager {
	if s.disabled.Load() {
		return nil
	}
	return s.manager
}

// Sink returns a spin sink, nil if audio is disabled
func (s *Service) Sink() *Sink {
	if m := s.Manager(); m != nil {
		return NewSink(m)
	}
	return nil
}
