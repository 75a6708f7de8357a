package main

import (
	"fmt"

	"github.com/jonathan/jd-annotator/internal/logger"
	"github.com/jonathan/jd-annotator/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes suggest, feedback, rebuild and stats endpoints.`,
	RunE:  runServe,
}

var (
	serveConfig string
	servePort   int
	serveDebug  bool
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to config JSON file")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadAppConfig(serveConfig)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL (or database_url in the config file) is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY (or api_key in the config file) is required")
	}

	log, err := logger.New(cfg.LogJSON, serveDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	srv, err := server.New(ctx, server.Config{
		Port:           servePort,
		DatabaseURL:    cfg.DatabaseURL,
		APIKey:         cfg.APIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		TaxonomyPath:   cfg.Taxonomy,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
