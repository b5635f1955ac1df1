// Package main provides the slackstatus CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/matsen/slackstatus/internal/config"
	"github.com/matsen/slackstatus/internal/slack"
	"github.com/matsen/slackstatus/internal/status"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// jsonOutput switches output from one line per workspace to JSON
	jsonOutput bool

	// configPath overrides the default config file location
	configPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like a missing action) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slackstatus <action>",
	Short: "Set or clear your Slack status in every workspace at once",
	Long: `slackstatus sets or clears your Slack status across several workspaces.

Actions:
  brb      "I'll Be Right Back!" with :brb: for 15 minutes
  lunch    "Lunch Time" with a random food emoji for 60 minutes
  custom   your --message and --emoji (default :speech_balloon:) for --time minutes
  clear    clear text, emoji and expiration
  <preset> any preset defined in the config file

Each workspace is addressed by a user token (users.profile:write scope)
read from an environment variable: SLACK_TOKEN_1 and SLACK_TOKEN_2 by
default, or the token_env entries of the config file. A .env file in the
current directory is loaded if present.

Prints one line per workspace. Use --json for machine-readable output.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeActions,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Load .env file if present (for SLACK_TOKEN_*)
	_ = godotenv.Load()

	// Assigned here because runStatus refers back to rootCmd
	rootCmd.RunE = runStatus

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of one line per workspace")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/slackstatus/config.yml)")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustBuildResolver builds the action resolver from config presets, exits on error.
func mustBuildResolver(cfg *config.Config) *status.Resolver {
	for name := range cfg.Presets {
		if isSubcommand(name) {
			exitWithError(ExitConfigError, "preset %q conflicts with the %q command", name, name)
		}
	}
	resolver, err := status.NewResolver(cfg.Presets)
	if err != nil {
		exitWithError(ExitConfigError, "loading presets: %v", err)
	}
	return resolver
}

// isSubcommand reports whether name is handled by a subcommand rather than as an action.
func isSubcommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return name == "help"
}

// newSlackClient creates the Slack client used for dispatch.
// Tests replace it to point at a local server.
var newSlackClient = func(cfg *config.Config) *slack.Client {
	return slack.NewClient(slack.WithTimeout(cfg.Timeout()))
}

// completeActions completes the action argument from built-ins and config presets.
func completeActions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}
	resolver, err := status.NewResolver(cfg.Presets)
	if err != nil {
		resolver, _ = status.NewResolver(nil)
	}
	return resolver.Actions(), cobra.ShellCompDirectiveNoFileComp
}
