package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"facultyscout/internal/config"
	"facultyscout/internal/llm"
	"facultyscout/internal/observability"
	"facultyscout/internal/pipeline"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one matching pipeline from the terminal",
	Long: `Runs the full pipeline once: query planning -> crawling -> extraction -> ranking.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runMatch,
}

var (
	matchConfigPath  string
	matchProfile     string
	matchProfileFile string
	matchCountries   []string
	matchAPIKey      string
	matchBreadth     int
	matchBatchSize   int
	matchEnrich      bool
	matchUseBrowser  bool
	matchVerbose     bool
)

func init() {
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	matchCmd.Flags().StringVarP(&matchProfile, "profile", "p", "", "Research profile text (mutually exclusive with --profile-file)")
	matchCmd.Flags().StringVar(&matchProfileFile, "profile-file", "", "Path to a text file containing the research profile")
	matchCmd.Flags().StringSliceVar(&matchCountries, "countries", nil, "Target country codes (ISO 3166-1 alpha-2)")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	matchCmd.Flags().IntVar(&matchBreadth, "search-breadth", 0, "Maximum planner queries to crawl")
	matchCmd.Flags().IntVar(&matchBatchSize, "batch-size", 0, "Pages per extraction prompt")
	matchCmd.Flags().BoolVar(&matchEnrich, "enrich-pages", false, "Fetch page bodies after crawling")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Headless rendering fallback during enrichment (requires Chrome)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed progress information")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if matchConfigPath != "" {
		loaded, err := config.Load(matchConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	mergeMatchFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	profileText, err := resolveProfileText()
	if err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (--api-key flag or GEMINI_API_KEY env var)")
	}

	ctx := cmd.Context()
	client, err := llm.NewGeminiClient(ctx, apiKey, cfg.Model)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stdout)
	tracker := pipeline.NewTracker()

	matches, err := pipeline.Run(ctx, pipeline.Options{
		Client:          client,
		ProfileText:     profileText,
		TargetCountries: matchCountries,
		SearchBreadth:   cfg.SearchBreadth,
		BatchSize:       cfg.ExtractBatchSize,
		EnrichPages:     cfg.EnrichPages,
		UseBrowser:      cfg.UseBrowser,
		OnEvent: func(ev pipeline.Event) {
			tracker.Record(ev)
			if cfg.Verbose {
				printer.PrintEvent(ev)
			}
		},
	})
	if cfg.Verbose {
		printer.PrintStageSummary(tracker)
	}
	if err != nil {
		return err
	}

	printer.PrintMatches(matches)
	return nil
}

// mergeMatchFlags applies flag values over the loaded config. Explicitly set
// flags always win; otherwise the config file value stands.
func mergeMatchFlags(cmd *cobra.Command, cfg *config.Config) {
	if matchAPIKey != "" {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("search-breadth") {
		cfg.SearchBreadth = matchBreadth
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.ExtractBatchSize = matchBatchSize
	}
	if cmd.Flags().Changed("enrich-pages") {
		cfg.EnrichPages = matchEnrich
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = matchUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = matchVerbose
	}
}

func resolveProfileText() (string, error) {
	if matchProfile != "" && matchProfileFile != "" {
		return "", fmt.Errorf("--profile and --profile-file are mutually exclusive")
	}
	if matchProfile != "" {
		return matchProfile, nil
	}
	if matchProfileFile != "" {
		data, err := os.ReadFile(matchProfileFile)
		if err != nil {
			return "", fmt.Errorf("failed to read profile file: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("a research profile is required (--profile or --profile-file)")
}
