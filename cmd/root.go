// Package cmd provides the root command and CLI setup for gloss.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glossdev/gloss/internal/adapter"
	"github.com/glossdev/gloss/internal/config"
	"github.com/glossdev/gloss/internal/controller"
	"github.com/glossdev/gloss/internal/domain"
	m "github.com/glossdev/gloss/internal/model"
)

// workflow and ui are package-level so tests can swap in mocks. When nil,
// the command builds real ones from the loaded configuration.
var workflow domain.Workflow
var ui controller.UI

var (
	configFlag    string
	modelFlag     string
	outputDirFlag string
	parallelFlag  int
	noTUIFlag     bool
)

// rootCmd represents the base command.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gloss <file-or-directory> [output-file]",
		Short: "LLM-powered code commenting tool",
		Long: `Gloss adds explanatory comments to source files using a locally hosted
LLM (Ollama) or a cloud fallback, without altering any code lines.

Examples:
  gloss script.py                 write script_commented.py next to the input
  gloss script.py documented.py   write to an explicit output file
  gloss ./src                     process a directory recursively
  gloss ./src -o ./commented      mirror outputs under a parallel root

Requirements:
  - Ollama running locally: ollama serve
  - A model pulled: ollama pull mistral
  - or a cloud_api_key in the config file`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, _, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			runArgs := domain.RunArgs{
				Target:    m.Path(args[0]),
				OutputDir: m.Path(outputDirFlag),
				Workers:   parallelFlag,
			}
			if len(args) == 2 {
				runArgs.Output = m.Path(args[1])
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := wf.Run(ctx, runArgs)
			if err != nil {
				return err
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed", summary.Failed)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to the config file (created with defaults when absent)")
	cmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "model name, overrides the config (\"auto\" selects the best available)")
	cmd.PersistentFlags().BoolVar(&noTUIFlag, "no-tui", false, "disable the interactive progress display")
	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "mirror outputs under this root in directory mode")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of generation workers")

	return cmd
}

// buildWorkflow assembles the workflow and UI for a command invocation,
// honoring test-injected substitutes.
func buildWorkflow(cmd *cobra.Command) (domain.Workflow, controller.UI, error) {
	useTTY := !noTUIFlag && controller.IsTTY(cmd.OutOrStdout())

	u := ui
	if u == nil {
		u = controller.NewUI(cmd, useTTY)
	}

	if workflow != nil {
		return workflow, u, nil
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, err
	}

	if modelFlag != "" {
		cfg.Model = modelFlag
	}

	local := adapter.NewOllamaClient(cfg.APIEndpoint)
	cloud := adapter.NewOpenAIClient(cfg.CloudEndpoint, cfg.CloudAPIKey)

	return domain.NewWorkflow(adapter.NewLocalSourceFS(), local, cloud, u, cfg), u, nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
