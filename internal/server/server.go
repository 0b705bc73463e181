// Package server provides the HTTP REST API for the career assistant.
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
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/careerpilot/internal/analytics"
	"github.com/jonathan/careerpilot/internal/generate"
	"github.com/jonathan/careerpilot/internal/matching"
	"github.com/jonathan/careerpilot/internal/server/middleware"
	"github.com/jonathan/careerpilot/internal/server/ratelimit"
)

// HistoryLister lists a user's past generation records
type HistoryLister interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]analytics.Record, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	generator   *generate.Service
	scorer      *matching.Scorer
	history     HistoryLister
	resumes     *ResumeStore
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance. history may be nil when no database is
// configured; the recent-generations endpoint then responds 503.
func New(cfg Config, generator *generate.Service, scorer *matching.Scorer, history HistoryLister, resumes *ResumeStore, jwtService *JWTService) *Server {
	s := &Server{
		generator:   generator,
		scorer:      scorer,
		history:     history,
		resumes:     resumes,
		jwtService:  jwtService,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	authed := http.NewServeMux()
	authed.HandleFunc("POST /resume/upload", s.handleResumeUpload)
	authed.HandleFunc("POST /coverletter", s.handleCoverLetter)
	authed.HandleFunc("POST /interview/questions", s.handleInterviewQuestions)
	authed.HandleFunc("POST /interview/answers", s.handleInterviewAnswers)
	authed.HandleFunc("POST /portfolio/resume", s.handlePortfolioFromResume)
	authed.HandleFunc("POST /portfolio/qna", s.handlePortfolioFromQnA)
	authed.HandleFunc("POST /resume/generate", s.handleResumeGenerate)
	authed.HandleFunc("POST /resume/score", s.handleResumeScore)
	authed.HandleFunc("POST /resume/keyword-gap", s.handleKeywordGap)
	authed.HandleFunc("POST /resume/rewrite", s.handleAutoRewrite)
	authed.HandleFunc("POST /resume/skills-gap", s.handleSkillsGap)
	authed.HandleFunc("POST /resume/career-advice", s.handleCareerAdvice)
	authed.HandleFunc("POST /jobs/alerts", s.handleJobAlerts)
	authed.HandleFunc("GET /analytics/recent", s.handleRecentGenerations)
	mux.Handle("/", middleware.Auth(jwtService.ValidateToken)(authed))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Job alerts can score up to ten listings
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler (for tests)
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"}, "ok")
}

// jsonResponse writes the standard response envelope
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data, "message": message}); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error response in the standard envelope
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, nil, message)
}

// writeError maps an error to its HTTP status and writes the response
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP address) from the
// request.
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
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))
	s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
}
