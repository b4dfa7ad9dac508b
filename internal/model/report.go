package model

// MergeResult is the outcome of reconciling model output with the original
// file. FinalText always preserves the original code lines.
type MergeResult struct {
	FinalText     string
	AddedComments int
	Warnings      []string
}

// FileStatus classifies the outcome of processing one file.
type FileStatus string

// Available FileStatus values.
const (
	StatusProcessed FileStatus = "processed"
	StatusSkipped   FileStatus = "skipped"
	StatusFailed    FileStatus = "failed"
)

// FileReport holds the result of processing a single source file.
type FileReport struct {
	Source        Path
	Output        Path // written output file, empty unless processed
	Status        FileStatus
	AddedComments int
	Warnings      []string
	Reason        string // skip reason or failure message
}

// RunSummary aggregates the results of a batch run.
type RunSummary struct {
	Processed int
	Skipped   int
	Failed    int
	Reports   []FileReport
}

// Add records a report and bumps the matching counter.
func (s *RunSummary) Add(report FileReport) {
	s.Reports = append(s.Reports, report)

	switch report.Status {
	case StatusProcessed:
		s.Processed++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}
