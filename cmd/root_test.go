package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/glossdev/gloss/internal/controller"
	"github.com/glossdev/gloss/internal/domain"
	"github.com/glossdev/gloss/internal/domain/mocks"
	m "github.com/glossdev/gloss/internal/model"
)

// withMockWorkflow swaps the injected workflow and UI for the duration of
// one test and returns the buffer the UI writes to.
func withMockWorkflow(t *testing.T, wf domain.Workflow) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	uiCmd := &cobra.Command{}
	uiCmd.SetOut(buf)

	oldWorkflow, oldUI := workflow, ui
	workflow = wf
	ui = controller.NewSimpleUI(uiCmd)

	t.Cleanup(func() {
		workflow = oldWorkflow
		ui = oldUI

		configFlag = ""
		modelFlag = ""
		outputDirFlag = ""
		parallelFlag = 1
		noTUIFlag = false
	})

	return buf
}

func runArgsWith(match func(domain.RunArgs) bool) interface{} {
	return mock.MatchedBy(match)
}

func TestRootRunsTarget(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	var summary m.RunSummary
	summary.Add(m.FileReport{Source: "input.py", Status: m.StatusProcessed})

	wf.On("Run", mock.Anything, runArgsWith(func(args domain.RunArgs) bool {
		return args.Target == "input.py" && args.Output == "" && args.Workers == 1
	})).Return(summary, nil).Once()

	rootCmd.SetArgs([]string{"input.py"})
	assert.NoError(t, rootCmd.Execute())
}

func TestRootPassesExplicitOutput(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	wf.On("Run", mock.Anything, runArgsWith(func(args domain.RunArgs) bool {
		return args.Target == "input.py" && args.Output == "documented.py"
	})).Return(m.RunSummary{}, nil).Once()

	rootCmd.SetArgs([]string{"input.py", "documented.py"})
	assert.NoError(t, rootCmd.Execute())
}

func TestRootPassesFlags(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	wf.On("Run", mock.Anything, runArgsWith(func(args domain.RunArgs) bool {
		return args.Target == "./src" && args.OutputDir == "./mirror" && args.Workers == 4
	})).Return(m.RunSummary{}, nil).Once()

	rootCmd.SetArgs([]string{"./src", "--output-dir", "./mirror", "--parallel", "4"})
	assert.NoError(t, rootCmd.Execute())
}

func TestRootReportsFailures(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	var summary m.RunSummary
	summary.Add(m.FileReport{Source: "a.py", Status: m.StatusFailed, Reason: "generation: boom"})
	summary.Add(m.FileReport{Source: "b.py", Status: m.StatusFailed, Reason: "generation: boom"})

	wf.On("Run", mock.Anything, mock.Anything).Return(summary, nil).Once()

	rootCmd.SetArgs([]string{"./src"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 file(s) failed")
}

func TestRootPropagatesRunError(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	wf.On("Run", mock.Anything, mock.Anything).
		Return(m.RunSummary{}, errors.New("no model available")).Once()

	rootCmd.SetArgs([]string{"input.py"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model available")
}

func TestRootRejectsMissingTarget(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	rootCmd.SetArgs([]string{})
	assert.Error(t, rootCmd.Execute())
}

func TestModelsCommand(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	buf := withMockWorkflow(t, wf)

	wf.On("Models", mock.Anything).Return([]m.ModelCandidate{
		{Name: "mixtral:8x7b", Provider: m.ProviderLocal, Rank: 0},
		{Name: "mistral:latest", Provider: m.ProviderLocal, Rank: 4},
	}, nil).Once()

	rootCmd.SetArgs([]string{"models"})
	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "mixtral:8x7b")
	assert.Contains(t, out, "mistral:latest")
}

func TestModelsCommandBackendDown(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	withMockWorkflow(t, wf)

	wf.On("Models", mock.Anything).
		Return(nil, errors.New("backend unavailable")).Once()

	rootCmd.SetArgs([]string{"models"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestLanguagesCommand(t *testing.T) {
	wf := mocks.NewMockWorkflow(t)
	buf := withMockWorkflow(t, wf)

	wf.On("Languages").Return([]m.LanguageProfile{
		{ID: "python", Name: "Python", Extensions: []string{".py"}, LineComment: "#"},
	}).Once()

	rootCmd.SetArgs([]string{"languages"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Python")
}
