package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapwort/internal/config"
	"snapwort/internal/llm"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildRegistry(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.Config
		wantFamilies []llm.Family
		wantModels   map[llm.Family][]string
	}{
		{
			name:         "nothing configured",
			cfg:          config.Config{OpenAIModel: "gpt-4o-mini"},
			wantFamilies: []llm.Family{},
		},
		{
			name: "groq registers both variants",
			cfg: config.Config{
				OpenAIKey: "sk-openai", OpenAIModel: "gpt-4o-mini",
				GroqKey: "gsk", GroqModel: "llama-3.3-70b-versatile", GroqSecondaryModel: "llama-3.1-8b-instant",
			},
			wantFamilies: []llm.Family{llm.FamilyOpenAI, llm.FamilyGroq},
			wantModels: map[llm.Family][]string{
				llm.FamilyOpenAI: {"gpt-4o-mini"},
				llm.FamilyGroq:   {"llama-3.3-70b-versatile", "llama-3.1-8b-instant"},
			},
		},
		{
			name: "identical secondary collapses to one variant",
			cfg: config.Config{
				GroqKey: "gsk", GroqModel: "llama-3.1-8b-instant", GroqSecondaryModel: "llama-3.1-8b-instant",
			},
			wantFamilies: []llm.Family{llm.FamilyGroq},
			wantModels:   map[llm.Family][]string{llm.FamilyGroq: {"llama-3.1-8b-instant"}},
		},
		{
			name:         "mistral needs an agent id",
			cfg:          config.Config{MistralKey: "mk"},
			wantFamilies: []llm.Family{},
		},
		{
			name:         "mistral agent",
			cfg:          config.Config{MistralKey: "mk", MistralAgentID: "ag-1"},
			wantFamilies: []llm.Family{llm.FamilyMistral},
			wantModels:   map[llm.Family][]string{llm.FamilyMistral: {"agent:ag-1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := BuildRegistry(tt.cfg, quietLogger())
			assert.Equal(t, tt.wantFamilies, reg.Families())
			for family, models := range tt.wantModels {
				var got []string
				for _, c := range reg.Variants(family) {
					got = append(got, c.Model())
				}
				assert.Equal(t, models, got, family)
			}
		})
	}
}

func TestBuildAssistantRequiresFallback(t *testing.T) {
	cfg := config.Config{
		GroqKey: "gsk", GroqModel: "llama-3.3-70b-versatile",
		DefaultProvider: "groq", FallbackProvider: "openai",
	}
	_, err := buildAssistant(cfg, quietLogger(), nil)
	require.ErrorIs(t, err, llm.ErrProviderUnavailable)

	cfg.OpenAIKey, cfg.OpenAIModel = "sk", "gpt-4o-mini"
	_, err = buildAssistant(cfg, quietLogger(), nil)
	require.NoError(t, err)

	cfg.DefaultProvider = "bard"
	_, err = buildAssistant(cfg, quietLogger(), nil)
	require.Error(t, err)
}

func TestSettings(t *testing.T) {
	cfg := config.Config{
		AnswerTemperature: 0.6, AnswerMaxTokens: 800,
		MetaTemperature: 0.3, MetaMaxTokens: 250,
		FollowUpMaxTokens: 600,
	}
	s := Settings(cfg, llm.FamilyGroq, llm.FamilyOpenAI)

	assert.Equal(t, llm.FamilyGroq, s.Default)
	assert.Equal(t, llm.FamilyOpenAI, s.Fallback)
	assert.Equal(t, llm.Options{Temperature: 0.6, MaxTokens: 800}, s.Answer)
	assert.Equal(t, llm.Options{Temperature: 0.3, MaxTokens: 250, Structured: true}, s.Meta)
	assert.Equal(t, llm.Options{Temperature: 0.6, MaxTokens: 600}, s.FollowUp)
}

func TestBuildStoreRejectsUnknownProvider(t *testing.T) {
	_, err := buildStore(config.Config{StoreProvider: "mongo"}, quietLogger())
	assert.Error(t, err)

	_, err = buildStore(config.Config{StoreProvider: "postgres"}, quietLogger())
	assert.Error(t, err)
}

func TestBuildTransportsRejectsUnknown(t *testing.T) {
	_, _, err := buildTransports(config.Config{BackupTransports: []string{"s3"}}, quietLogger(), nil)
	assert.Error(t, err)

	transports, nc, err := buildTransports(config.Config{}, quietLogger(), nil)
	require.NoError(t, err)
	assert.Nil(t, nc)
	assert.Empty(t, transports)
}
