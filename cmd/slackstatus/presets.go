package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available status actions",
	Long: `List the built-in actions and any presets defined in the config file.

Presets are added under the 'presets' key of config.yml:

  presets:
    meeting:
      text: In a meeting
      emoji: ":calendar:"
      minutes: 60`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	presets := mustBuildResolver(cfg).Describe()

	if jsonOutput {
		if err := outputJSON(cmd.OutOrStdout(), PresetsResponse{Presets: presets}); err != nil {
			exitWithError(ExitError, "encoding JSON: %v", err)
		}
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatPresetsHuman(presets))
	return nil
}
