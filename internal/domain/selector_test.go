package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/glossdev/gloss/internal/adapter"
	"github.com/glossdev/gloss/internal/adapter/mocks"
	"github.com/glossdev/gloss/internal/config"
	m "github.com/glossdev/gloss/internal/model"
)

func selectorConfig() config.Config {
	cfg := config.Default()
	cfg.Model = "auto"
	cfg.CloudAPIKey = ""

	return cfg
}

func TestResolve(t *testing.T) {
	t.Run("picks the highest ranked family", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{
			{Name: "orca-mini:3b"},
			{Name: "mistral:7b"},
			{Name: "mixtral:8x7b"},
			{Name: "llama2:13b"},
		}, nil)

		active, _, err := NewSelector(client, selectorConfig()).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "mixtral:8x7b", active.Name)
		assert.Equal(t, m.ProviderLocal, active.Provider)
	})

	t.Run("selection is independent of listing order", func(t *testing.T) {
		orders := [][]adapter.ModelInfo{
			{{Name: "mistral:7b"}, {Name: "llama2:13b"}, {Name: "neural-chat:7b"}},
			{{Name: "neural-chat:7b"}, {Name: "mistral:7b"}, {Name: "llama2:13b"}},
			{{Name: "llama2:13b"}, {Name: "neural-chat:7b"}, {Name: "mistral:7b"}},
		}

		for _, models := range orders {
			client := mocks.NewMockLLMClient(t)
			client.On("ListModels", mock.Anything).Return(models, nil)

			active, _, err := NewSelector(client, selectorConfig()).Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "llama2:13b", active.Name)
		}
	})

	t.Run("breaks rank ties by lexical name order", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{
			{Name: "mistral:v2"},
			{Name: "mistral:instruct"},
		}, nil)

		active, _, err := NewSelector(client, selectorConfig()).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "mistral:instruct", active.Name)
	})

	t.Run("unknown families rank below all known ones", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{
			{Name: "aaa-custom-model"},
			{Name: "orca-mini:3b"},
		}, nil)

		active, _, err := NewSelector(client, selectorConfig()).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "orca-mini:3b", active.Name)
	})

	t.Run("explicit model short-circuits ranking", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{
			{Name: "mixtral:8x7b"},
			{Name: "mistral:7b"},
		}, nil)

		cfg := selectorConfig()
		cfg.Model = "mistral:7b"

		active, warnings, err := NewSelector(client, cfg).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "mistral:7b", active.Name)
		assert.Empty(t, warnings)
	})

	t.Run("explicit model not installed warns but proceeds", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{
			{Name: "mistral:7b"},
		}, nil)

		cfg := selectorConfig()
		cfg.Model = "llama2:70b"

		active, warnings, err := NewSelector(client, cfg).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "llama2:70b", active.Name)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "llama2:70b")
	})

	t.Run("falls back to cloud when backend is unreachable", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return(nil, adapter.ErrBackendUnavailable)

		cfg := selectorConfig()
		cfg.CloudAPIKey = "sk-test"
		cfg.CloudModel = "gpt-3.5-turbo"

		active, warnings, err := NewSelector(client, cfg).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, m.ProviderCloud, active.Provider)
		assert.Equal(t, "gpt-3.5-turbo", active.Name)
		assert.NotEmpty(t, warnings)
	})

	t.Run("falls back to cloud when no local models exist", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{}, nil)

		cfg := selectorConfig()
		cfg.CloudAPIKey = "sk-test"

		active, _, err := NewSelector(client, cfg).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, m.ProviderCloud, active.Provider)
	})

	t.Run("fails when neither local nor cloud is available", func(t *testing.T) {
		client := mocks.NewMockLLMClient(t)
		client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{}, nil)

		_, _, err := NewSelector(client, selectorConfig()).Resolve(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoModelAvailable))
	})
}

func TestCandidatesRanking(t *testing.T) {
	client := mocks.NewMockLLMClient(t)
	client.On("ListModels", mock.Anything).Return([]adapter.ModelInfo{
		{Name: "zzz-exotic"},
		{Name: "codellama:13b"},
		{Name: "llama3.1:8b"},
		{Name: "neural-chat:7b"},
	}, nil)

	candidates, err := NewSelector(client, selectorConfig()).Candidates(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"llama3.1:8b", "codellama:13b", "neural-chat:7b", "zzz-exotic"}, names)
	assert.Equal(t, unknownRank, candidates[len(candidates)-1].Rank)
}
