package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/jd-annotator/internal/config"
	"github.com/jonathan/jd-annotator/internal/db"
	"github.com/jonathan/jd-annotator/internal/embedding"
	"github.com/jonathan/jd-annotator/internal/logger"
	"github.com/jonathan/jd-annotator/internal/match"
	"github.com/jonathan/jd-annotator/internal/priors"
	"github.com/jonathan/jd-annotator/internal/taxonomy"
	"github.com/jonathan/jd-annotator/internal/types"
	"go.uber.org/zap"
)

// loadAppConfig merges an optional --config file with environment fallbacks.
func loadAppConfig(configPath string) (config.Config, error) {
	cfg := config.Config{}

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		APIKey:              os.Getenv("GEMINI_API_KEY"),
		EmbeddingModel:      embedding.DefaultModel,
		SimilarityThreshold: match.DefaultSimilarityThreshold,
		KeywordConfidence:   match.DefaultKeywordConfidenceThreshold,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// app bundles the collaborators a command works with.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	database *db.DB
	store    *priors.Store
	engine   *match.Engine
	taxonomy *types.Taxonomy
}

// newApp wires logging, persistence, matching and the taxonomy. When no
// database is configured the store runs on an in-memory repository, so
// read-only commands still work (learning state just won't survive the
// process).
func newApp(ctx context.Context, configPath string, debug bool) (*app, error) {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	tax, err := taxonomy.Load(cfg.Taxonomy)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, taxonomy: tax}

	var repo priors.Repository
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		a.database = database
		repo = database
	} else {
		log.Warn("no database configured, learned state will not persist")
		repo = priors.NewMemoryRepository()
	}

	a.store = priors.NewStore(repo, log)
	a.engine = match.NewEngine(log)
	a.engine.SimilarityThreshold = cfg.SimilarityThreshold
	a.engine.KeywordConfidence = cfg.KeywordConfidence
	return a, nil
}

// newEmbedder creates the Gemini embedding client for commands that need one.
func (a *app) newEmbedder(ctx context.Context) (embedding.Client, error) {
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY (or api_key in the config file) is required")
	}
	return embedding.NewGeminiClient(ctx, a.cfg.APIKey, a.cfg.EmbeddingModel)
}

// close releases the app's resources.
func (a *app) close() {
	if a.database != nil {
		a.database.Close()
	}
	_ = a.log.Sync()
}
