package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_AI_PER_HOUR", "7")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, ProviderOpenAI, cfg.AIProvider)
	assert.True(t, cfg.AIConfigured())
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, 7, cfg.AILimitPerHour)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.NoError(t, cfg.Validate())
}

func TestNewFallsBackOnBadNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_IP_PER_MINUTE", "lots")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.IPLimitPerMinute)
	assert.Equal(t, 20*time.Second, cfg.AITimeout)
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := New()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{AIProvider: "claude", IPLimitPerMinute: 1, AILimitPerHour: 0}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
	assert.Contains(t, err.Error(), "claude")
	assert.Contains(t, err.Error(), "rate limits")
}

func TestAIConfiguredWithoutKey(t *testing.T) {
	cfg := &Config{AIProvider: ProviderGemini}
	assert.False(t, cfg.AIConfigured())
}

func TestLoadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := "weights:\n  health: 2\n  work: 0.5\nthemes:\n  sleep: [tired, insomnia]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, tuning.Weights["health"])
	assert.Equal(t, []string{"tired", "insomnia"}, tuning.Themes["sleep"])
}

func TestLoadTuningRejectsNegativeWeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  work: -1\n"), 0o600))

	_, err := LoadTuning(path)
	assert.Error(t, err)
}

func TestLoadTuningEmptyPath(t *testing.T) {
	tuning, err := LoadTuning("")
	require.NoError(t, err)
	assert.Empty(t, tuning.Weights)
}
