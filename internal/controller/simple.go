package controller

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/glossdev/gloss/internal/model"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// SimpleUI implements UI using cobra Command's output, one line per event.
// It is the non-TTY front-end and the one used under --no-tui.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

var _ UI = (*SimpleUI)(nil)

// Start announces the queue size.
func (s *SimpleUI) Start(total int) error {
	s.printf("Processing %d file(s)\n", total)
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// ModelResolved prints the model chosen for the run.
func (s *SimpleUI) ModelResolved(model m.ActiveModel) {
	s.printf("Using %s model %s (%s)\n", model.Provider, model.Name, model.Endpoint)
}

// Warn prints an advisory message.
func (s *SimpleUI) Warn(msg string) {
	s.printf("%s %s\n", skipStyle.Render("!"), msg)
}

// FileStarted prints the file entering the pipeline.
func (s *SimpleUI) FileStarted(path m.Path) {
	s.printf("%s %s\n", dimStyle.Render("→"), path)
}

// FileCompleted prints the per-file outcome.
func (s *SimpleUI) FileCompleted(report m.FileReport) {
	switch report.Status {
	case m.StatusProcessed:
		s.printf("%s %s → %s (%d comment(s) added)\n",
			okStyle.Render("✓"), report.Source, report.Output, report.AddedComments)
	case m.StatusSkipped:
		s.printf("%s %s skipped: %s\n", skipStyle.Render("-"), report.Source, report.Reason)
	case m.StatusFailed:
		s.printf("%s %s failed: %s\n", failStyle.Render("✗"), report.Source, report.Reason)
	}

	for _, warn := range report.Warnings {
		s.printf("  %s %s\n", skipStyle.Render("!"), warn)
	}
}

// RunCompleted renders the summary table.
func (s *SimpleUI) RunCompleted(summary m.RunSummary) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Status", "Comments"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, report := range summary.Reports {
		comments := ""
		if report.Status == m.StatusProcessed {
			comments = fmt.Sprintf("%d", report.AddedComments)
		}

		table.Append([]string{string(report.Source), string(report.Status), comments})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(summary.Reports)),
		fmt.Sprintf("%d ok / %d skipped / %d failed", summary.Processed, summary.Skipped, summary.Failed),
		"",
	})

	table.Render()
	s.printf("\n%s", buf.String())
}

// DisplayModels renders the ranked backend model list.
func (s *SimpleUI) DisplayModels(candidates []m.ModelCandidate) error {
	if len(candidates) == 0 {
		s.printf("No models installed on the backend\n")
		return nil
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Model", "Provider", "Rank"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, c := range candidates {
		table.Append([]string{c.Name, string(c.Provider), fmt.Sprintf("%d", c.Rank)})
	}

	table.Render()
	s.printf("%s", buf.String())

	return nil
}

// DisplayLanguages renders the supported-language table.
func (s *SimpleUI) DisplayLanguages(profiles []m.LanguageProfile) error {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Language", "Extensions", "Line", "Block"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, p := range profiles {
		block := ""
		if p.BlockStart != "" {
			block = p.BlockStart + " " + p.BlockEnd
		}

		table.Append([]string{p.Name, strings.Join(p.Extensions, " "), p.LineComment, block})
	}

	table.Render()
	s.printf("%s", buf.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
