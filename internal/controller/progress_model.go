package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/glossdev/gloss/internal/model"
)

// maxRecent limits how many per-file result lines stay on screen.
const maxRecent = 8

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// progressModel is the Bubble Tea model rendering a batch run: a spinner
// with the file in flight, a progress bar, and the most recent results.
type progressModel struct {
	modelName string
	total     int
	done      int
	processed int
	skipped   int
	failed    int

	current  string
	recent   []string
	warnings []string
	finished bool

	spin spinner.Model
	bar  progress.Model
}

func newProgressModel(modelName string, total int, warnings []string) progressModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return progressModel{
		modelName: modelName,
		total:     total,
		warnings:  warnings,
		spin:      spin,
		bar:       progress.New(progress.WithDefaultGradient()),
	}
}

// Init starts the spinner ticking.
func (p progressModel) Init() tea.Cmd {
	return p.spin.Tick
}

// Update handles pipeline events forwarded by the TUI front-end.
func (p progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}

		return p, nil

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 60 {
			width = 60
		}

		if width > 0 {
			p.bar.Width = width
		}

		return p, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		p.spin, cmd = p.spin.Update(msg)

		return p, cmd

	case warnMsg:
		p.warnings = append(p.warnings, msg.text)
		return p, nil

	case fileStartedMsg:
		p.current = msg.path
		return p, nil

	case fileCompletedMsg:
		p.done++
		p.current = ""
		p.recent = append(p.recent, formatReportLine(msg.report))

		if len(p.recent) > maxRecent {
			p.recent = p.recent[len(p.recent)-maxRecent:]
		}

		switch msg.report.Status {
		case m.StatusProcessed:
			p.processed++
		case m.StatusSkipped:
			p.skipped++
		case m.StatusFailed:
			p.failed++
		}

		return p, nil

	case runCompletedMsg:
		p.finished = true
		p.processed = msg.summary.Processed
		p.skipped = msg.summary.Skipped
		p.failed = msg.summary.Failed

		return p, tea.Quit
	}

	return p, nil
}

// View renders the run state.
func (p progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("gloss · commenting %d file(s) with %s", p.total, p.modelName)))
	b.WriteString("\n\n")

	for _, warn := range p.warnings {
		b.WriteString(warnStyle.Render("! " + warn))
		b.WriteString("\n")
	}

	for _, line := range p.recent {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if p.finished {
		b.WriteString(fmt.Sprintf("\nDone: %d ok / %d skipped / %d failed\n", p.processed, p.skipped, p.failed))

		return b.String()
	}

	if p.current != "" {
		b.WriteString(p.spin.View())
		b.WriteString(currentStyle.Render(p.current))
		b.WriteString("\n")
	}

	percent := 0.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total)
	}

	b.WriteString("\n")
	b.WriteString(p.bar.ViewAs(percent))
	b.WriteString(fmt.Sprintf(" %d/%d\n", p.done, p.total))

	return b.String()
}

func formatReportLine(report m.FileReport) string {
	switch report.Status {
	case m.StatusProcessed:
		return fmt.Sprintf("%s %s (%d comment(s))", okStyle.Render("✓"), report.Source, report.AddedComments)
	case m.StatusSkipped:
		return fmt.Sprintf("%s %s skipped: %s", skipStyle.Render("-"), report.Source, report.Reason)
	default:
		return fmt.Sprintf("%s %s failed: %s", failStyle.Render("✗"), report.Source, report.Reason)
	}
}
