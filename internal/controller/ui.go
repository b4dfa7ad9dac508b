// Package controller provides console front-ends for batch runs.
package controller

import (
	m "github.com/glossdev/gloss/internal/model"
)

// UI is implemented by the console front-ends. Implementations must accept
// concurrent calls to the File* methods: the workflow may report from
// worker goroutines.
type UI interface {
	// Start is called once per run with the number of files queued.
	Start(total int) error
	// Close flushes and tears down the UI.
	Close()
	// ModelResolved announces the model chosen for the run.
	ModelResolved(model m.ActiveModel)
	// Warn surfaces an advisory message.
	Warn(msg string)
	// FileStarted announces that a file entered the pipeline.
	FileStarted(path m.Path)
	// FileCompleted reports the outcome for one file.
	FileCompleted(report m.FileReport)
	// RunCompleted renders the final summary.
	RunCompleted(summary m.RunSummary)
	// DisplayModels renders the ranked backend model list.
	DisplayModels(candidates []m.ModelCandidate) error
	// DisplayLanguages renders the supported-language table.
	DisplayLanguages(profiles []m.LanguageProfile) error
}
