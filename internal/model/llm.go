package model

// Provider identifies where a model is served from.
type Provider string

// Available Provider values.
const (
	ProviderLocal Provider = "local"
	ProviderCloud Provider = "cloud"
)

// ModelCandidate is a model discovered on a backend together with its
// capability rank. Lower rank means more capable; unknown model families
// rank below every known one.
type ModelCandidate struct {
	Name     string
	Provider Provider
	Rank     int
}

// ActiveModel is the single model selected for a whole run. It is resolved
// once and treated as read-only shared state afterwards.
type ActiveModel struct {
	Name     string
	Provider Provider
	Endpoint string
}

// CommentRequest is the per-file generation request sent to the backend.
type CommentRequest struct {
	Prompt      string
	Language    LanguageID
	Temperature float64
	MaxTokens   int
}

// CommentResponse holds the raw model output for one file.
type CommentResponse struct {
	Raw string
}
