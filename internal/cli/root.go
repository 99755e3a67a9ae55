package cli

import (
	"fmt"

	"github.com/pizzly-labs/pizzly/internal/branding"
	"github.com/pizzly-labs/pizzly/internal/config"
	"github.com/pizzly-labs/pizzly/internal/logging"
	"github.com/pizzly-labs/pizzly/internal/providers"
	"github.com/pizzly-labs/pizzly/internal/registry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Shared by every command that reads descriptors; set up in PersistentPreRunE.
var (
	logger = zap.NewNop()
	reg    *registry.Registry
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` loads the OAuth integration descriptors found in a directory
(JSON, YAML and built-in providers), normalizes them and lets you inspect them
and check setup credentials before running an OAuth flow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		// Commands that manage their own state do not need a registry.
		if cmd.Name() == "version" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}
		return setupRegistry()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("dir", config.DefaultIntegrationsDir, "Directory containing integration descriptors")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(config.KeyIntegrationsDir, rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// setupRegistry builds the logger and the registry from the loaded settings.
func setupRegistry() error {
	l, err := logging.New(config.LogLevel())
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	logger = l.Named(branding.CLIName())

	reg = registry.New(config.IntegrationsDir(),
		registry.WithLogger(logger.Named("registry")),
		registry.WithBuilders(providers.Builders()),
		registry.WithConcurrency(config.LoadConcurrency()),
	)
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
