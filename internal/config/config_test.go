package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	// Keep godotenv from picking up a developer's .env.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ProviderHashing, cfg.EmbeddingProvider)
	assert.Equal(t, ProviderNone, cfg.NERProvider)
	assert.Equal(t, "gemini-embedding-001", cfg.EmbeddingModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.NERModel)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "data_store", cfg.DataDir)
	assert.False(t, cfg.Debug)
}

func TestLoad_APIKeyEnablesGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("WORKERS", "5")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.EmbeddingProvider)
	assert.Equal(t, ProviderAgent, cfg.NERProvider)
	assert.Equal(t, 5, cfg.Workers)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitProviderNeedsKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "Gemini")

	_, err := Load(New(), "")
	assert.ErrorContains(t, err, "GOOGLE_API_KEY")
}

func TestLoad_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("NER_PROVIDER", "spacy")

	_, err := Load(New(), "")
	assert.ErrorContains(t, err, `unknown NER_PROVIDER "spacy"`)
}

func TestLoad_ConfigFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "skilledge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data-dir: /srv/results\nworkers: 7\n"), 0o600))
	t.Setenv("WORKERS", "2")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/results", cfg.DataDir)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DATA_DIR=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DATA_DIR") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.DataDir)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateWorker(t *testing.T) {
	cfg := &Config{DBURL: "postgres://localhost/skilledge", R2Bucket: "uploads"}

	err := cfg.ValidateWorker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RABBITMQ_URL")
	assert.Contains(t, err.Error(), "R2_ACCCOUNT_ID")
	assert.NotContains(t, err.Error(), "DB_URL")
	assert.NotContains(t, err.Error(), "R2_BUCKET")

	cfg = &Config{
		DBURL: "db", RabbitMQURL: "amqp", R2AccountID: "acc",
		R2Bucket: "b", R2AccessKey: "ak", R2SecretKey: "sk",
	}
	assert.NoError(t, cfg.ValidateWorker())
}
