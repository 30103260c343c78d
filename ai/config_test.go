package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.ClassifierModel)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("options override defaults", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://llm.internal:8080"),
			WithEmbeddingModel("text-embedding-3-small"),
			WithClassifierModel("gpt-4o-mini"),
			WithScorerModel("bge-reranker"),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://llm.internal:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://llm.internal:8080/v1", cfg.LLMHost)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ClassifierModel)
		assert.Equal(t, "bge-reranker", cfg.ScorerModel)
	})

	t.Run("separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed.internal:8080"),
			WithLLMHost("http://llm.internal:9090"),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://embed.internal:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://llm.internal:9090/v1", cfg.LLMHost)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:   "http://localhost:11434",
			LLMHost:         "http://localhost:11434/",
			EmbeddingModel:  "m1",
			ClassifierModel: "m2",
		}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	})

	t.Run("preserves existing v1 suffix", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434/v1"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("scorer model defaults to classifier model", func(t *testing.T) {
		cfg := &Config{ClassifierModel: "qwen2.5:3b"}
		cfg.Normalize()
		assert.Equal(t, "qwen2.5:3b", cfg.ScorerModel)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing llm host", func(c *Config) { c.LLMHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing classifier model", func(c *Config) { c.ClassifierModel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
