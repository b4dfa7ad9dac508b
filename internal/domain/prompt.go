package domain

import (
	"errors"
	"fmt"

	"github.com/glossdev/gloss/internal/config"
	m "github.com/glossdev/gloss/internal/model"
)

// ErrFileTooLarge means a source exceeds the configured size threshold.
// The file is rejected before any network call rather than sent and
// truncated silently.
var ErrFileTooLarge = errors.New("file too large")

const promptTemplate = `You are an expert code commenter. Your task is to add helpful comments to the following %s code.

Rules:
1. Add comments above functions, classes, and complex logic blocks
2. Explain the purpose and parameters of functions
3. Keep comments concise but informative
4. Use single-line comments for simple statements
5. Don't over-comment obvious code
6. Preserve every existing line of code verbatim: do not rename, reorder, reformat, or delete anything
7. Add comment lines only

%s code to comment:
%s

Return ONLY the commented code, nothing else. Do not add markdown formatting or code blocks.`

// PromptBuilder assembles per-file generation requests.
type PromptBuilder struct {
	maxBytes    int64
	temperature float64
	maxTokens   int
}

// NewPromptBuilder creates a builder using the configured limits.
func NewPromptBuilder(cfg config.Config) *PromptBuilder {
	return &PromptBuilder{
		maxBytes:    cfg.MaxFileBytes,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Build constructs the instruction plus embedded source for one file. It
// fails with ErrFileTooLarge when the source exceeds the size threshold.
func (b *PromptBuilder) Build(src m.Source) (m.CommentRequest, error) {
	if b.maxBytes > 0 && src.Size > b.maxBytes {
		return m.CommentRequest{}, fmt.Errorf("%w: %s is %d bytes, limit is %d",
			ErrFileTooLarge, src.Origin, src.Size, b.maxBytes)
	}

	return m.CommentRequest{
		Prompt:      fmt.Sprintf(promptTemplate, src.Language.Name, src.Language.Name, string(src.Raw)),
		Language:    src.Language.ID,
		Temperature: b.temperature,
		MaxTokens:   b.maxTokens,
	}, nil
}
