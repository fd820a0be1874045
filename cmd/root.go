package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedscout/internal/app"
	"feedscout/internal/config"
	"feedscout/internal/logging"
)

var (
	cfgFile   string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "feedscout",
	Short: "Browse and search a feed reader catalog",
	Long: `feedscout browses the categories, feeds and entries of a remote feed reader.
Categories and feeds can be named loosely: "tech", "AICodeKing" or a site URL
are resolved to catalog ids before searching.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is given, print help.
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		// An App already in the context (tests, embedding) is used as-is.
		if _, err := GetAppFromContext(cmd.Context()); err == nil {
			return nil
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, debugMode); err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store the app instance in the command's context
		cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Define a custom type for the context key to avoid collisions.
type contextKey string

const appKey contextKey = "app"

// WithApp returns a context carrying appInstance for the commands to use.
func WithApp(ctx context.Context, appInstance *app.App) context.Context {
	return context.WithValue(ctx, appKey, appInstance)
}

// Helper function to retrieve the app instance from context
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./config.yaml or $HOME/.feedscout/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check catalog connectivity and credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checking catalog at %s...\n", appInstance.Config.Catalog.BaseURL)

		user, err := appInstance.Catalog.Me(ctx)
		if err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}
		fmt.Fprintf(out, "%s authenticated as %s (id %d)\n", okLabel(), user.Username, user.ID)
		return nil
	},
}
