package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/glossdev/gloss/internal/adapter"
	"github.com/glossdev/gloss/internal/config"
	m "github.com/glossdev/gloss/internal/model"
)

// ErrNoModelAvailable means neither a local model nor a cloud credential is
// available. It is fatal at run start: the user has to start the backend,
// pull a model, or configure a cloud key.
var ErrNoModelAvailable = errors.New("no model available")

// familyPreference orders known model families from most to least capable.
// Matching is by name prefix; a model that matches no family ranks below
// every known one.
var familyPreference = []string{
	"mixtral", // mixture-of-experts, strongest of the local families
	"llama3",
	"llama2",
	"codellama",
	"mistral",
	"neural-chat",
	"orca-mini",
}

// unknownRank is the rank assigned to models outside familyPreference.
var unknownRank = len(familyPreference)

// Selector resolves the active model once per run.
type Selector struct {
	local adapter.LLMClient
	cfg   config.Config
}

// NewSelector creates a Selector querying local for installed models.
func NewSelector(local adapter.LLMClient, cfg config.Config) *Selector {
	return &Selector{local: local, cfg: cfg}
}

// Resolve picks the model for this run. Local models win over the cloud;
// among local models a fixed family preference decides, with lexical name
// order breaking ties so selection is deterministic regardless of the
// order the backend lists models in. The returned warnings are advisory
// and do not prevent the run.
func (s *Selector) Resolve(ctx context.Context) (m.ActiveModel, []string, error) {
	var warnings []string

	candidates, err := s.Candidates(ctx)
	if err == nil && len(candidates) > 0 {
		if s.cfg.Model != "" && s.cfg.Model != "auto" {
			if !containsModel(candidates, s.cfg.Model) {
				warnings = append(warnings, fmt.Sprintf("configured model %q is not in the backend's model list", s.cfg.Model))
			}

			return m.ActiveModel{
				Name:     s.cfg.Model,
				Provider: m.ProviderLocal,
				Endpoint: s.cfg.APIEndpoint,
			}, warnings, nil
		}

		return m.ActiveModel{
			Name:     candidates[0].Name,
			Provider: m.ProviderLocal,
			Endpoint: s.cfg.APIEndpoint,
		}, warnings, nil
	}

	if err != nil {
		warnings = append(warnings, fmt.Sprintf("local backend not reachable: %v", err))
	}

	if s.cfg.CloudAPIKey != "" {
		return m.ActiveModel{
			Name:     s.cfg.CloudModel,
			Provider: m.ProviderCloud,
			Endpoint: s.cfg.CloudEndpoint,
		}, warnings, nil
	}

	return m.ActiveModel{}, warnings, fmt.Errorf(
		"%w: start the local backend (ollama serve), pull a model (ollama pull mistral), or set cloud_api_key",
		ErrNoModelAvailable)
}

// Candidates queries the local backend and returns its models ranked from
// most to least preferred.
func (s *Selector) Candidates(ctx context.Context) ([]m.ModelCandidate, error) {
	listCtx := ctx

	if s.cfg.ListTimeoutSeconds > 0 {
		var cancel context.CancelFunc

		listCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.ListTimeoutSeconds)*time.Second)
		defer cancel()
	}

	models, err := s.local.ListModels(listCtx)
	if err != nil {
		return nil, err
	}

	candidates := make([]m.ModelCandidate, 0, len(models))
	for _, info := range models {
		candidates = append(candidates, m.ModelCandidate{
			Name:     info.Name,
			Provider: m.ProviderLocal,
			Rank:     rankOf(info.Name),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rank != candidates[j].Rank {
			return candidates[i].Rank < candidates[j].Rank
		}

		return candidates[i].Name < candidates[j].Name
	})

	return candidates, nil
}

// rankOf returns the preference rank for a model name such as
// "mixtral:8x7b" or "llama3.1:latest".
func rankOf(name string) int {
	lower := strings.ToLower(name)

	for i, family := range familyPreference {
		if strings.HasPrefix(lower, family) {
			return i
		}
	}

	return unknownRank
}

func containsModel(candidates []m.ModelCandidate, name string) bool {
	for _, c := range candidates {
		if c.Name == name {
			return true
		}
	}

	return false
}
