// Package adapter contains infrastructure adapters for the gloss CLI.
package adapter

import (
	"context"
	"errors"
)

// Sentinel errors reported by LLM backends.
var (
	// ErrBackendUnavailable means the backend could not be reached at all.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrGeneration means the backend was reached but returned an error payload.
	ErrGeneration = errors.New("generation failed")
)

// ModelInfo describes a model reported by a backend.
type ModelInfo struct {
	Name string
	Size int64
}

// GenerateParams carries a single generation call.
type GenerateParams struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// LLMClient is the request/response boundary to an LLM inference backend.
// Implementations must honor context cancellation on both calls.
type LLMClient interface {
	// ListModels returns the models installed on the backend. It fails with
	// ErrBackendUnavailable when the backend cannot be reached.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// Generate runs one completion and returns the raw output text.
	Generate(ctx context.Context, params GenerateParams) (string, error)
}
