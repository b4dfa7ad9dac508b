package controller

import (
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/glossdev/gloss/internal/model"
)

// TUI implements UI using Bubble Tea for interactive batch-run display.
// Table-style listings (models, languages) are short and printed plainly.
type TUI struct {
	output io.Writer

	mu       sync.Mutex
	program  *tea.Program
	done     chan struct{}
	model    m.ActiveModel
	buffered []string // warnings raised before the program starts
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

var _ UI = (*TUI)(nil)

// Start launches the progress program for a run of total files.
func (t *TUI) Start(total int) error {
	t.mu.Lock()

	model := newProgressModel(t.model.Name, total, t.buffered)
	t.buffered = nil
	t.program = tea.NewProgram(model, tea.WithOutput(t.output))
	t.done = make(chan struct{})

	program := t.program
	done := t.done

	t.mu.Unlock()

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			_, _ = fmt.Fprintf(t.output, "display error: %v\n", err)
		}
	}()

	return nil
}

// Close waits for the progress program to finish rendering.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	<-done
}

// ModelResolved records the model announced before Start.
func (t *TUI) ModelResolved(model m.ActiveModel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.model = model
}

// Warn surfaces an advisory message.
func (t *TUI) Warn(msg string) {
	t.mu.Lock()
	program := t.program
	if program == nil {
		t.buffered = append(t.buffered, msg)
	}
	t.mu.Unlock()

	if program != nil {
		program.Send(warnMsg{text: msg})
	}
}

// FileStarted forwards the event to the progress program.
func (t *TUI) FileStarted(path m.Path) {
	t.send(fileStartedMsg{path: string(path)})
}

// FileCompleted forwards the event to the progress program.
func (t *TUI) FileCompleted(report m.FileReport) {
	t.send(fileCompletedMsg{report: report})
}

// RunCompleted forwards the summary; the program quits after rendering it.
func (t *TUI) RunCompleted(summary m.RunSummary) {
	t.send(runCompletedMsg{summary: summary})
}

// DisplayModels prints the ranked backend model list.
func (t *TUI) DisplayModels(candidates []m.ModelCandidate) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(t.output, "No models installed on the backend")
		return err
	}

	for _, c := range candidates {
		if _, err := fmt.Fprintf(t.output, "%2d  %s (%s)\n", c.Rank, c.Name, c.Provider); err != nil {
			return err
		}
	}

	return nil
}

// DisplayLanguages prints the supported-language table.
func (t *TUI) DisplayLanguages(profiles []m.LanguageProfile) error {
	for _, p := range profiles {
		block := ""
		if p.BlockStart != "" {
			block = "  block: " + p.BlockStart + " " + p.BlockEnd
		}

		if _, err := fmt.Fprintf(t.output, "%-12s %-24s line: %-3s%s\n",
			p.Name, strings.Join(p.Extensions, " "), p.LineComment, block); err != nil {
			return err
		}
	}

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}
