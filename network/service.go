package network

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Service wraps Client as a hub-managed service
type Service struct {
	config *Config
	logger *zap.Logger
	http   *http.Client
	client *Client
}

// NewService creates a network service with default config
func NewService(logger *zap.Logger) *Service {
	return &Service{
		config: DefaultConfig(),
		logger: logger,
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4
	transport.IdleConnTimeout = 90 * time.Second
	s.http = &http.Client{Transport: transport}

	s.client = NewClient(s.config, s.http, s.logger)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.http != nil {
		s.http.CloseIdleConnections()
	}
	return nil
}

// Client returns the configured client, nil before Init
func (s *Service) Client() *Client {
	return s.client
}

// Config returns the active configuration
func (s *Service) Config() *Config {
	return s.config
}
