package main

import (
	"context"
	"errors"
	"io"

	"github.com/matsen/slackstatus/internal/config"
	"github.com/matsen/slackstatus/internal/dispatch"
	"github.com/matsen/slackstatus/internal/status"
	"github.com/spf13/cobra"
)

var (
	emojiFlag   string
	messageFlag string
	timeFlag    int
	workersFlag int
)

func init() {
	rootCmd.Flags().StringVar(&emojiFlag, "emoji", "", "Custom emoji for the status (custom action)")
	rootCmd.Flags().StringVar(&messageFlag, "message", "", "Custom message for the status (custom action)")
	rootCmd.Flags().IntVar(&timeFlag, "time", 0, "Duration in minutes for the custom status")
	rootCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of workspaces to update concurrently (default from config, 1)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	resolver := mustBuildResolver(cfg)

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		if workersFlag < 1 || workersFlag > config.MaxWorkers {
			exitWithError(ExitError, "--workers must be between 1 and %d", config.MaxWorkers)
		}
		workers = workersFlag
	}

	opts := status.Options{
		Message: messageFlag,
		Emoji:   emojiFlag,
		Minutes: timeFlag,
	}
	result, err := executeStatus(cmd.Context(), cmd.OutOrStdout(), resolver, args[0], opts,
		newSlackClient(cfg), cfg.LoadAccounts(), workers, !jsonOutput)
	if err != nil {
		if errors.Is(err, status.ErrMissingArgument) {
			exitWithError(ExitError, "Custom status requires --message and --time arguments.")
		}
		exitWithError(ExitError, "%v", err)
	}

	if jsonOutput {
		if err := outputJSON(cmd.OutOrStdout(), result); err != nil {
			exitWithError(ExitError, "encoding JSON: %v", err)
		}
	}
	return nil
}

// executeStatus resolves action and, only if that succeeds, dispatches it.
func executeStatus(ctx context.Context, w io.Writer, resolver *status.Resolver, action string, opts status.Options,
	setter dispatch.ProfileSetter, accounts []config.Account, workers int, human bool) (StatusResult, error) {

	req, err := resolver.Resolve(action, opts)
	if err != nil {
		return StatusResult{}, err
	}
	return applyStatus(ctx, w, action, req, setter, accounts, workers, human), nil
}

// applyStatus dispatches req to every account. In human mode each outcome
// is printed to w as it is reported.
func applyStatus(ctx context.Context, w io.Writer, action string, req status.Request,
	setter dispatch.ProfileSetter, accounts []config.Account, workers int, human bool) StatusResult {

	opts := []dispatch.Option{dispatch.WithWorkers(workers)}
	if human {
		opts = append(opts, dispatch.WithReporter(humanReporter{w: w}))
	}

	outcomes := dispatch.New(setter, accounts, opts...).ApplyToAll(ctx, req)

	return StatusResult{
		Action:   action,
		Cleared:  req.IsClear(),
		Request:  req,
		Outcomes: outcomes,
		Summary:  dispatch.Summarize(outcomes),
	}
}
