package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// modelsCmd represents the models command.
var modelsCmd = newModelsCmd()

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models installed on the local backend",
		Long:  "List the models the local backend reports, ranked by capability (rank 0 is picked first by auto-selection).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wf, u, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			candidates, err := wf.Models(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing models: %w", err)
			}

			return u.DisplayModels(candidates)
		},
	}
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
