package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/storyline/internal/config"
	"github.com/Yates-Labs/storyline/internal/imagery"
	"github.com/Yates-Labs/storyline/internal/logger"
	"github.com/Yates-Labs/storyline/internal/orchestrator"
	"github.com/Yates-Labs/storyline/internal/provider"
)

var (
	configFile string

	appConfig *config.Config
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storyline",
	Short: "Storyline - turn browsing history into stories",
	Long: `Storyline groups the pages you have been reading into thematic stories,
expands each story into five bite-sized learning chunks, and lets you chat
about what you learned.

Text is generated by OpenAI, Anthropic or Gemini. Without a configured
provider every command runs in mock mode with built-in sample content.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		appLogger = logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./storyline.yaml or ~/.storyline/storyline.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newPipeline wires the gateway and image resolver from the loaded config.
func newPipeline(cfg *config.Config, log *slog.Logger) *orchestrator.Pipeline {
	gateway := provider.NewGateway(
		provider.WithTimeout(cfg.RequestTimeout),
		provider.WithLogger(log),
	)

	var searcher imagery.Searcher
	if cfg.UnsplashAccessKey != "" {
		searcher = imagery.NewUnsplashSearcher(cfg.UnsplashAccessKey, "", nil)
	}
	resolver := imagery.NewResolver(searcher,
		imagery.WithLookupTimeout(cfg.ImageTimeout),
		imagery.WithLogger(log),
	)

	return orchestrator.NewPipeline(gateway, resolver,
		orchestrator.WithImageConcurrency(cfg.ImageConcurrency),
		orchestrator.WithLogger(log),
	)
}
