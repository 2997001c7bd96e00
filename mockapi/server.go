package mockapi

import (
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/network"
)

// Server is an in-process stand-in for the spinner platform
type Server struct {
	logger *zap.Logger

	mu           sync.Mutex
	cfg          Config
	rng          *rand.Rand
	scriptPos    int
	failLeft     int
	corruptLeft  int
	totalWeights int

	spins  atomic.Int64
	values atomic.Int64
	faults atomic.Int64

	router chi.Router
}

// New validates cfg and builds the router
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		logger:      logger.Named("mockapi"),
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(seed)),
		failLeft:    cfg.FailFirst,
		corruptLeft: cfg.CorruptFirst,
	}
	for _, w := range cfg.Weights {
		s.totalWeights += w
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", s.health)
	r.Group(func(rr chi.Router) {
		rr.Use(s.delay, s.injectFaults)
		rr.Get(network.PathValues, s.handleValues)
		rr.Post(network.PathSpin, s.handleSpin)
	})
	return r
}

// Handler returns the HTTP handler serving the platform routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetFailFirst makes the next n platform requests fail with 503
func (s *Server) SetFailFirst(n int) {
	s.mu.Lock()
	s.failLeft = n
	s.mu.Unlock()
}

// SetScript replaces the scripted result sequence, nil returns to weighted random
func (s *Server) SetScript(script []int) {
	s.mu.Lock()
	s.cfg.Script = append([]int(nil), script...)
	s.scriptPos = 0
	s.mu.Unlock()
}

// Stats reports how many requests each endpoint served and how many faults were injected
func (s *Server) Stats() (values, spins, faults int64) {
	return s.values.Load(), s.spins.Load(), s.faults.Load()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if d := s.cfg.Latency; d > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(d):
			}
		}
		next.ServeHTTP(w, r)
	})
}

// injectFaults answers with 503 or a malformed body while the injection counters last
func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail := s.failLeft > 0
		if fail {
			s.failLeft--
		}
		corrupt := !fail && s.corruptLeft > 0
		if corrupt {
			s.corruptLeft--
		}
		s.mu.Unlock()

		switch {
		case fail:
			s.faults.Add(1)
			s.logger.Debug("injected failure", zap.String("path", r.URL.Path))
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		case corrupt:
			s.faults.Add(1)
			s.logger.Debug("injected malformed body", zap.String("path", r.URL.Path))
			writeRaw(w, http.StatusOK, `{"spinner`)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (s *Server) handleValues(w http.ResponseWriter, r *http.Request) {
	s.values.Add(1)
	s.mu.Lock()
	values := append([]int(nil), s.cfg.Values...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, network.ValuesResponse{SpinnerValues: values})
}

func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	s.spins.Add(1)
	value := s.nextResult()
	s.logger.Debug("spin served", zap.Int("value", value), zap.String("request_id", r.Header.Get("X-Request-Id")))

	writeJSON(w, http.StatusOK, network.SpinResponse{SpinnerValue: &value})
}

func (s *Server) nextResult() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.cfg.Script); n > 0 {
		v := s.cfg.Script[s.scriptPos%n]
		s.scriptPos++
		return v
	}

	if s.totalWeights == 0 {
		return s.cfg.Values[s.rng.Intn(len(s.cfg.Values))]
	}
	pick := s.rng.Intn(s.totalWeights)
	for i, w := range s.cfg.Weights {
		if pick < w {
			return s.cfg.Values[i]
		}
		pick -= w
	}
	return s.cfg.Values[len(s.cfg.Values)-1]
}
