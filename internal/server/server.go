// Package server provides the HTTP REST API for the annotation suggestion engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/jd-annotator/internal/db"
	"github.com/jonathan/jd-annotator/internal/embedding"
	"github.com/jonathan/jd-annotator/internal/match"
	"github.com/jonathan/jd-annotator/internal/priors"
	"github.com/jonathan/jd-annotator/internal/taxonomy"
	"github.com/jonathan/jd-annotator/internal/types"
	"go.uber.org/zap"
)

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	APIKey         string
	EmbeddingModel string
	TaxonomyPath   string
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	database   *db.DB

	store     *priors.Store
	rebuilder *priors.Rebuilder
	engine    *match.Engine
	embedder  embedding.Client
	taxonomy  *types.Taxonomy

	log *zap.Logger
}

// New creates a server wired to Postgres and the Gemini embedding provider.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	embedder, err := embedding.NewGeminiClient(ctx, cfg.APIKey, cfg.EmbeddingModel)
	if err != nil {
		database.Close()
		return nil, err
	}

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		database.Close()
		return nil, err
	}

	s := NewWithDeps(cfg, Deps{
		Store:     priors.NewStore(database, log),
		Rebuilder: priors.NewRebuilder(database, embedder, tax, log),
		Engine:    match.NewEngine(log),
		Embedder:  embedder,
		Taxonomy:  tax,
	}, log)
	s.database = database
	return s, nil
}

// Deps are the collaborators a server operates on. Split out so tests can
// substitute an in-memory repository and a stub embedder.
type Deps struct {
	Store     *priors.Store
	Rebuilder *priors.Rebuilder
	Engine    *match.Engine
	Embedder  embedding.Client
	Taxonomy  *types.Taxonomy
}

// NewWithDeps creates a server over pre-built collaborators.
func NewWithDeps(cfg Config, deps Deps, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		store:     deps.Store,
		rebuilder: deps.Rebuilder,
		engine:    deps.Engine,
		embedder:  deps.Embedder,
		taxonomy:  deps.Taxonomy,
		log:       log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // rebuilds embed the whole corpus
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /suggest", s.handleSuggest)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("POST /rebuild", s.handleRebuild)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.embedder != nil {
		_ = s.embedder.Close()
	}
	if s.database != nil {
		s.database.Close()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
