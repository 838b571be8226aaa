package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facultyscout/internal/config"
	"facultyscout/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the streaming match endpoint. Progress events are delivered over SSE as the pipeline runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	port := cfg.Port
	if cmd.Flags().Changed("port") || port == 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:          port,
		APIKey:        apiKey,
		Model:         cfg.Model,
		SearchBreadth: cfg.SearchBreadth,
		BatchSize:     cfg.ExtractBatchSize,
		EnrichPages:   cfg.EnrichPages,
		UseBrowser:    cfg.UseBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
