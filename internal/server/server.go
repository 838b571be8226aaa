// Package server provides the HTTP API for facultyscout: one streaming match
// endpoint plus a health check.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"facultyscout/internal/llm"
)

// Config holds server configuration
type Config struct {
	Port   int
	APIKey string
	Model  string

	// Pipeline tunables, passed through to every run.
	SearchBreadth int
	BatchSize     int
	EnrichPages   bool
	UseBrowser    bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	client     llm.Client
	validate   *validator.Validate
	cfg        Config
}

// New creates a server backed by a Gemini generation client.
func New(cfg Config) (*Server, error) {
	client, err := llm.NewGeminiClient(context.Background(), cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	return NewWithClient(cfg, client), nil
}

// NewWithClient creates a server around an existing generation client.
func NewWithClient(cfg Config, client llm.Client) *Server {
	s := &Server{
		client:   client,
		validate: validator.New(),
		cfg:      cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streaming pipeline runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the configured handler chain (used by tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown.
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

	if err := s.client.Close(); err != nil {
		log.Printf("Warning: failed to close generation client: %v", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
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
