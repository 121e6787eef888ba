package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"loan-calculator/logger"
	"loan-calculator/service"
)

// ServerConfig carries everything the router and listener need. Zero
// RateLimitCapacity disables rate limiting.
type ServerConfig struct {
	Addr              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	CacheBackend      string

	// TrustProxy keys rate limiting on forwarded client addresses.
	TrustProxy bool
}

type Server struct {
	cfg      ServerConfig
	log      *logger.Logger
	router   chi.Router
	limiter  *RateLimiter
	loans    *LoanHandler
	pages    *PageHandler
	listener *http.Server
}

func NewServer(cfg ServerConfig, loanService *service.LoanService, log *logger.Logger) (*Server, error) {
	pages, err := NewPageHandler()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:   cfg,
		log:   log,
		loans: NewLoanHandler(loanService),
		pages: pages,
	}
	if cfg.RateLimitCapacity > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	}

	s.setupRoutes()

	s.listener = &http.Server{
		Addr:           cfg.Addr,
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 16,
	}

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(logger.Middleware(s.log))
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", s.pages.Index)
	r.Get("/healthz", s.handleHealth)
	r.Get("/static/*", s.pages.Static)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimitMiddleware(s.limiter))
		}
		r.Post("/calculate", s.loans.CalculateLoan)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"cache":  s.cfg.CacheBackend,
	})
}

func (s *Server) ListenAndServe() error {
	return s.listener.ListenAndServe()
}

// Shutdown drains in-flight requests and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		defer s.limiter.Stop()
	}
	return s.listener.Shutdown(ctx)
}
