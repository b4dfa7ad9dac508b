package cmd

import (
	"github.com/spf13/cobra"
)

// languagesCmd represents the languages command.
var languagesCmd = newLanguagesCmd()

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their comment syntax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wf, u, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			return u.DisplayLanguages(wf.Languages())
		},
	}
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
