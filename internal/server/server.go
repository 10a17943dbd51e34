package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/recruiter-copilot/internal/server/ratelimit"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Composer is the subset of the prompt gateway the HTTP API exposes.
type Composer interface {
	ComposeJobPostingText(ctx context.Context, req types.JobPostingRequest) (string, bool)
	ComposeInterviewScriptText(ctx context.Context, title, skills string) (string, bool)
	ComposeResumeMatch(ctx context.Context, resumeText, jobDescription string) (*types.ResumeMatchResult, error)
	ComposeMarketAnalysis(ctx context.Context, title, seniority string) (*types.MarketAnalysisResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	composer    Composer
	defaultTone string
	rateLimiter *ratelimit.Limiter
	logger      *log.Logger
}

// Config holds server configuration
type Config struct {
	Port        int
	DefaultTone string
	RateLimit   *ratelimit.Config // nil disables rate limiting
	Logger      *log.Logger
}

// New creates a new server instance
func New(cfg Config, composer Composer) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}

	s := &Server{
		composer:    composer,
		defaultTone: cfg.DefaultTone,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
	}

	s.httpServer = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /job-posting", s.handleJobPosting)
	mux.HandleFunc("POST /interview-script", s.handleInterviewScript)
	mux.HandleFunc("POST /resume-match", s.handleResumeMatch)
	mux.HandleFunc("POST /resume-match/upload", s.handleResumeMatchUpload)
	mux.HandleFunc("POST /market-analysis", s.handleMarketAnalysis)

	// CORS wraps the limiter so 429 responses stay readable from browsers
	return s.withRequestID(s.withCORS(s.withLogging(s.withRateLimit(mux))))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown drains in-flight requests and stops background work.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Println("Server stopped")
	return nil
}

// withRequestID tags every request and response with a uuid.
// A well-formed incoming id is reused.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		r.Header.Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles model-backed routes per client address
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			retry := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.logger.Printf("[rate-limit] %s %s exceeded limit=%d retry_after=%ds", r.Method, r.URL.Path, info.Limit, retry)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		s.logger.Printf("[%s] %s %s %s", id, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		s.logger.Printf("[%s] %s %s completed in %v", id, r.Method, r.URL.Path, time.Since(start))
	})
}

// clientID uses the remote IP; forwarded headers are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure logs err and writes it with the status HTTPStatus picks.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	s.logger.Printf("[%s] %s %s failed (%d): %v", r.Header.Get(RequestIDHeader), r.Method, r.URL.Path, status, err)
	s.errorResponse(w, status, err.Error())
}
