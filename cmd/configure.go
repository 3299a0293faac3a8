package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/storyline/internal/config"
	"github.com/Yates-Labs/storyline/internal/provider"
)

var (
	configureProvider string
	configureAPIKey   string
	configureModel    string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store provider credentials in the config file",
	Long: `Write the provider selection and API key to the config file used by
every other command (--config, or ~/.storyline/storyline.yaml by default).

Examples:
  storyline configure --provider openai --api-key sk-...
  storyline configure --provider gemini --api-key AIza... --model gemini-1.5-pro`,
	Args: cobra.NoArgs,
	// The target file may not exist yet, so the shared config is not loaded.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		return nil
	},
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().StringVar(&configureProvider, "provider", "", "Provider: openai, anthropic or gemini")
	configureCmd.Flags().StringVar(&configureAPIKey, "api-key", "", "Provider API key")
	configureCmd.Flags().StringVar(&configureModel, "model", "", "Model name (default: provider default)")
	_ = configureCmd.MarkFlagRequired("provider")
	_ = configureCmd.MarkFlagRequired("api-key")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	id, err := provider.ParseID(configureProvider)
	if err != nil {
		return err
	}

	path := configFile
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
	}

	p := provider.Config{Provider: id, APIKey: configureAPIKey, Model: configureModel}
	if err := config.SaveProvider(path, p); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Saved %s to %s", p, path)))
	return nil
}
