package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnav/career-copilot/internal/config"
	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/logging"
	"github.com/arnav/career-copilot/internal/server"
)

var (
	serveAddr       string
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing resume parsing, job analysis, customization, coaching, and application tracking endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080, or LISTEN_ADDR)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required (environment variable or config file)")
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	if addr == "" {
		addr = ":8080"
	}

	logger := logging.New(verbose || cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(context.Background(), server.Config{
		Addr:        addr,
		DatabaseURL: cfg.DatabaseURL,
		OutputDir:   cfg.OutputDir,
		LLM:         llm.DefaultConfig(cfg.GeminiAPIKey, cfg.GeminiRESTAPIKey),
		UseBrowser:  cfg.UseBrowser,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadConfig reads the optional config file and merges the environment.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}
	cfg.MergeEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
