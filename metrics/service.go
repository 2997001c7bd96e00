package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/core"
)

const shutdownTimeout = 2 * time.Second

// Service exposes Metrics over HTTP as a hub-managed service
// An empty address keeps collection on but serves nothing
type Service struct {
	logger  *zap.Logger
	metrics *Metrics
	addr    string

	srv      *http.Server
	listener net.Listener
}

// NewService creates a metrics service with a fresh registry
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger.Named("metrics")}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "metrics"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: string listen address (optional)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if addr, ok := args[0].(string); ok {
			s.addr = addr
		}
	}
	s.metrics = New(s.addr != "")
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.addr == "" {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           Router(s.metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.srv
	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", zap.Error(err))
		}
	})
	s.logger.Info("metrics listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	s.srv = nil
	return err
}

// Metrics returns the collectors, nil before Init
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// Addr returns the bound address, empty when not serving
func (s *Service) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Router serves /metrics from m's registry
func Router(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}
