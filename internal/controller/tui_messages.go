package controller

import (
	m "github.com/glossdev/gloss/internal/model"
)

// Message types.
type fileStartedMsg struct {
	path string
}

type fileCompletedMsg struct {
	report m.FileReport
}

type warnMsg struct {
	text string
}

type runCompletedMsg struct {
	summary m.RunSummary
}
