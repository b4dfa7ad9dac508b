package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glossdev/gloss/internal/adapter"
	"github.com/glossdev/gloss/internal/config"
	"github.com/glossdev/gloss/internal/controller"
	m "github.com/glossdev/gloss/internal/model"
)

const (
	outputSuffix = "_commented"
	outputPerm   = 0o644
	dirPerm      = 0o750
)

// retryBackoff is the pause before the single per-file retry. Variable so
// tests can shorten it.
var retryBackoff = 2 * time.Second

// RunArgs configures a batch run.
type RunArgs struct {
	Target    m.Path
	Output    m.Path // explicit output file, single-file mode only
	OutputDir m.Path // mirror root for directory mode
	Workers   int    // generation workers, 0 or 1 means sequential
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	// Run processes the target file or directory and returns the summary.
	// Per-file failures are recorded in the summary, never returned as an
	// error; the error return covers initialization failures (no model, bad
	// target path) and cancellation.
	Run(ctx context.Context, args RunArgs) (m.RunSummary, error)

	// Models returns the local backend's models ranked by capability.
	Models(ctx context.Context) ([]m.ModelCandidate, error)

	// Languages returns the supported-language table.
	Languages() []m.LanguageProfile
}

type workflow struct {
	fs         adapter.SourceFS
	local      adapter.LLMClient
	cloud      adapter.LLMClient
	ui         controller.UI
	cfg        config.Config
	classifier *Classifier
	selector   *Selector
	prompt     *PromptBuilder
	merger     *Merger
}

// NewWorkflow creates a Workflow wired to the provided adapters.
func NewWorkflow(fs adapter.SourceFS, local, cloud adapter.LLMClient, ui controller.UI, cfg config.Config) Workflow {
	return &workflow{
		fs:         fs,
		local:      local,
		cloud:      cloud,
		ui:         ui,
		cfg:        cfg,
		classifier: NewClassifier(),
		selector:   NewSelector(local, cfg),
		prompt:     NewPromptBuilder(cfg),
		merger:     NewMerger(),
	}
}

// Run resolves the model once, discovers the target files in lexical order
// and pushes each through the pipeline. Files fail independently.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.RunSummary, error) {
	active, warns, err := w.selector.Resolve(ctx)

	for _, warn := range warns {
		w.ui.Warn(warn)
	}

	if err != nil {
		return m.RunSummary{}, err
	}

	client := w.local
	if active.Provider == m.ProviderCloud {
		client = w.cloud
	}

	info, err := w.fs.FileInfo(args.Target)
	if err != nil {
		return m.RunSummary{}, fmt.Errorf("target path: %w", err)
	}

	dirMode := info.IsDir()

	var files []m.Path

	if dirMode {
		all, err := w.fs.ListFiles(args.Target)
		if err != nil {
			return m.RunSummary{}, fmt.Errorf("scanning %s: %w", args.Target, err)
		}

		files = w.filterCandidates(all, args)
	} else {
		files = []m.Path{args.Target}
	}

	w.ui.ModelResolved(active)

	if err := w.ui.Start(len(files)); err != nil {
		return m.RunSummary{}, err
	}

	defer w.ui.Close()

	workers := args.Workers
	if workers <= 0 {
		workers = 1
	}

	reports := make([]m.FileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Interrupted between files: the file in flight finishes (its
			// output is written atomically), queued files are not started.
			if err := gctx.Err(); err != nil {
				return err
			}

			reports[i] = w.processFile(gctx, client, active, path, args, dirMode)
			w.ui.FileCompleted(reports[i])

			return nil
		})
	}

	runErr := g.Wait()

	var summary m.RunSummary

	for _, report := range reports {
		if report.Status == "" {
			continue // cancelled before the file was started
		}

		summary.Add(report)
	}

	w.ui.RunCompleted(summary)

	return summary, runErr
}

// Models returns the ranked local model list for the models command.
func (w *workflow) Models(ctx context.Context) ([]m.ModelCandidate, error) {
	return w.selector.Candidates(ctx)
}

// Languages returns the supported-language table for the languages command.
func (w *workflow) Languages() []m.LanguageProfile {
	return w.classifier.Profiles()
}

// filterCandidates keeps only the files the run is configured to process:
// extensions from supported_extensions, excluding previously generated
// output files and anything under the output directory.
func (w *workflow) filterCandidates(all []m.Path, args RunArgs) []m.Path {
	outRoot := ""
	if args.OutputDir != "" {
		outRoot = string(args.OutputDir) + string(filepath.Separator)
	}

	var files []m.Path

	for _, path := range all {
		ext := strings.ToLower(filepath.Ext(string(path)))
		if !w.cfg.SupportsExtension(ext) {
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(string(path)), ext)
		if strings.HasSuffix(stem, outputSuffix) {
			continue // output of an earlier run
		}

		if outRoot != "" && strings.HasPrefix(string(path), outRoot) {
			continue
		}

		files = append(files, path)
	}

	return files
}

// processFile runs the full pipeline for one file and converts every error
// into a report entry so the batch continues.
func (w *workflow) processFile(ctx context.Context, client adapter.LLMClient, active m.ActiveModel, path m.Path, args RunArgs, dirMode bool) m.FileReport {
	report := m.FileReport{Source: path}

	profile, ok := w.classifier.Classify(path)
	if !ok {
		report.Status = m.StatusSkipped
		report.Reason = "unsupported file type"

		return report
	}

	raw, err := w.fs.ReadFile(path)
	if err != nil {
		report.Status = m.StatusFailed
		report.Reason = fmt.Sprintf("read: %v", err)

		return report
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		report.Status = m.StatusSkipped
		report.Reason = "empty file"

		return report
	}

	src := m.Source{Origin: path, Language: profile, Raw: raw, Size: int64(len(raw))}

	req, err := w.prompt.Build(src)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			report.Status = m.StatusSkipped
		} else {
			report.Status = m.StatusFailed
		}

		report.Reason = err.Error()

		return report
	}

	w.ui.FileStarted(path)

	output, err := w.generateWithRetry(ctx, client, active, req)
	if err != nil {
		report.Status = m.StatusFailed
		report.Reason = fmt.Sprintf("generation: %v", err)

		return report
	}

	result := w.merger.Merge(src, m.CommentResponse{Raw: output})
	report.AddedComments = result.AddedComments
	report.Warnings = result.Warnings

	outPath, err := w.outputPath(path, args, dirMode)
	if err != nil {
		report.Status = m.StatusFailed
		report.Reason = fmt.Sprintf("output path: %v", err)

		return report
	}

	if dirMode && args.OutputDir != "" {
		if err := w.fs.MkdirAll(m.Path(filepath.Dir(string(outPath))), dirPerm); err != nil {
			report.Status = m.StatusFailed
			report.Reason = fmt.Sprintf("output dir: %v", err)

			return report
		}
	}

	if err := w.fs.WriteFileAtomic(outPath, []byte(result.FinalText), outputPerm); err != nil {
		report.Status = m.StatusFailed
		report.Reason = fmt.Sprintf("write: %v", err)

		return report
	}

	report.Output = outPath
	report.Status = m.StatusProcessed

	return report
}

// generateWithRetry performs the generation call with one bounded retry.
func (w *workflow) generateWithRetry(ctx context.Context, client adapter.LLMClient, active m.ActiveModel, req m.CommentRequest) (string, error) {
	out, err := w.generateOnce(ctx, client, active, req)
	if err == nil {
		return out, nil
	}

	if ctx.Err() != nil {
		return "", err
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	out, retryErr := w.generateOnce(ctx, client, active, req)
	if retryErr != nil {
		return "", fmt.Errorf("retry failed: %w (first attempt: %v)", retryErr, err)
	}

	return out, nil
}

func (w *workflow) generateOnce(ctx context.Context, client adapter.LLMClient, active m.ActiveModel, req m.CommentRequest) (string, error) {
	callCtx := ctx

	if w.cfg.RequestTimeoutSeconds > 0 {
		var cancel context.CancelFunc

		callCtx, cancel = context.WithTimeout(ctx, time.Duration(w.cfg.RequestTimeoutSeconds)*time.Second)
		defer cancel()
	}

	return client.Generate(callCtx, adapter.GenerateParams{
		Model:       active.Name,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
}

// outputPath decides where the commented file is written.
func (w *workflow) outputPath(path m.Path, args RunArgs, dirMode bool) (m.Path, error) {
	if !dirMode {
		if args.Output != "" {
			return args.Output, nil
		}

		return derivedPath(path), nil
	}

	if args.OutputDir != "" {
		rel, err := w.fs.RelPath(args.Target, path)
		if err != nil {
			return "", err
		}

		return w.fs.JoinPath(string(args.OutputDir), string(rel)), nil
	}

	return derivedPath(path), nil
}

// derivedPath maps input.py to input_commented.py in the same directory.
func derivedPath(path m.Path) m.Path {
	p := string(path)
	ext := filepath.Ext(p)

	return m.Path(strings.TrimSuffix(p, ext) + outputSuffix + ext)
}
