package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerpilot/internal/analytics"
	"github.com/jonathan/careerpilot/internal/config"
	"github.com/jonathan/careerpilot/internal/feeds"
	"github.com/jonathan/careerpilot/internal/generate"
	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/matching"
	"github.com/jonathan/careerpilot/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the generation, matching and analytics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Config, error) {
	if serveConfigPath != "" {
		return config.Load(serveConfigPath)
	}
	return config.FromEnv(), nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	client := llm.NewChatClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)

	var recorder analytics.Recorder = analytics.NopRecorder{}
	var history server.HistoryLister
	if cfg.DatabaseURL != "" {
		store, err := analytics.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
		recorder = store
		history = store
	} else {
		log.Println("DATABASE_URL not set, analytics records will be discarded")
	}

	sources := make([]feeds.Source, 0, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sources = append(sources, feeds.NewRSSSource(feed.Name, feed.URL))
	}

	resumes, err := server.NewResumeStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	srv := server.New(
		server.Config{Port: cfg.Port},
		generate.NewService(client, recorder),
		matching.NewScorer(client, sources),
		history,
		resumes,
		server.NewJWTService(jwtConfig),
	)
	return srv.Start()
}
