package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/careerpilot",
		"llm": {"api_key": "key", "model": "openai/gpt-oss-20b"},
		"feeds": [{"name": "WeWorkRemotely", "url": "https://weworkremotely.com/rss"}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/careerpilot", cfg.DatabaseURL)
	assert.Equal(t, "key", cfg.LLM.APIKey)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, "WeWorkRemotely", cfg.Feeds[0].Name)
	// Defaults fill unset fields
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"port": 9090}`)
	t.Setenv("PORT", "7070")
	t.Setenv("GROQ_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080, LLM: LLM{APIKey: "key"}}
	assert.NoError(t, cfg.Validate())

	cfg.LLM.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.LLM.APIKey = "key"
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Port = 8080
	cfg.Feeds = []FeedSource{{Name: "x"}}
	assert.Error(t, cfg.Validate())
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	require.Error(t, err)
}

func TestNewJWTConfig_BadExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err := NewJWTConfig()
	require.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	require.Error(t, err)
}
