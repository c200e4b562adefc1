package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/cache"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/config"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/metrics"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/middleware"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	cfg         *config.Config
	httpServer  *http.Server
	handler     http.Handler
	users       UserStore
	employers   EmployerStore
	jobs        JobStore
	analyzer    Analyzer
	cache       *cache.JobCache
	jwtService  *JWTService
	passwords   *config.PasswordConfig
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// Deps are the collaborators a Server is built from. Cache and Metrics
// may be nil.
type Deps struct {
	Users     UserStore
	Employers EmployerStore
	Jobs      JobStore
	Analyzer  Analyzer
	Cache     *cache.JobCache
	JWT       *JWTService
	Passwords *config.PasswordConfig
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	switch {
	case deps.Users == nil, deps.Employers == nil, deps.Jobs == nil:
		return nil, errors.New("server: stores are required")
	case deps.Analyzer == nil:
		return nil, errors.New("server: analyzer is required")
	case deps.JWT == nil || deps.Passwords == nil:
		return nil, errors.New("server: auth services are required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Server{
		cfg:        cfg,
		users:      deps.Users,
		employers:  deps.Employers,
		jobs:       deps.Jobs,
		analyzer:   deps.Analyzer,
		cache:      deps.Cache,
		jwtService: deps.JWT,
		passwords:  deps.Passwords,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}

	rl := cfg.RateLimit
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.NewConfig(
		rl.Enabled, rl.DefaultLimit, rl.DefaultWindow, rl.CleanupInterval, rl.Whitelist, rl.Blacklist,
	))

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	asUser := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireKind(middleware.KindUser, msgNotUser)(h))
	}
	asEmployer := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireKind(middleware.KindEmployer, msgNotEmployer)(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	if cfg.MetricsEnabled && s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// Resume analysis
	mux.HandleFunc("POST /api/analyze-resume", s.handleAnalyzeResume)

	// Job seekers
	mux.HandleFunc("POST /api/users/register", s.handleRegisterUser)
	mux.HandleFunc("POST /api/users/login", s.handleLoginUser)
	mux.Handle("GET /api/users/me", asUser(s.handleGetMe))
	mux.Handle("PUT /api/users/profile", asUser(s.handleUpdateUserProfile))

	// Employers
	mux.HandleFunc("POST /api/employers/register", s.handleRegisterEmployer)
	mux.HandleFunc("POST /api/employers/login", s.handleLoginEmployer)
	mux.Handle("GET /api/employers/profile", asEmployer(s.handleGetEmployerProfile))
	mux.Handle("PUT /api/employers/profile", asEmployer(s.handleUpdateEmployerProfile))
	mux.HandleFunc("GET /api/employers/{id}", s.handleGetPublicEmployer)

	// Jobs
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.Handle("POST /api/jobs", asEmployer(s.handleCreateJob))
	mux.Handle("PUT /api/jobs/{id}", auth(http.HandlerFunc(s.handleUpdateJob)))
	mux.Handle("DELETE /api/jobs/{id}", auth(http.HandlerFunc(s.handleDeleteJob)))

	mux.HandleFunc("/", s.handleNotFound)

	s.handler = s.withLogging(s.withCORS(s.withRateLimit(mux)))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr), zap.String("env", s.cfg.Env))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		defer s.rateLimiter.Stop()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS allows the web client at FrontendURL to call the API with credentials.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.cfg.FrontendURL)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, x-auth-token, Authorization")
		h.Set("Access-Control-Expose-Headers", middleware.TokenHeader)
		h.Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// withLogging logs every request and records request metrics under the
// matched route pattern.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		route := r.Pattern
		if _, path, ok := strings.Cut(route, " "); ok {
			route = path
		}
		s.metrics.ObserveRequest(route, r.Method, status, elapsed)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("duration", elapsed),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC(),
		Environment: s.cfg.Env,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusNotFound, "Not Found")
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorBody{Error: message})
}

// writeError maps err to a status code. Unexpected errors are logged and
// reported without internals.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, msgServerError)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	body := rateLimitBody{
		Error:     "Too many requests, please try again later.",
		Limit:     info.Limit,
		Remaining: info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		body.ResetAt = info.ResetTime.UTC().Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		body.RetryAfter = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, body)
}
