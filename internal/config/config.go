// Package config loads settings from .env, an optional config file, the
// environment and bound command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini  = "gemini"
	ProviderHashing = "hashing"
	ProviderAgent   = "agent"
	ProviderNone    = "none"
)

// Keys understood by viper, with the environment variable each is bound to.
const (
	KeyDBURL             = "db-url"
	KeyRabbitMQURL       = "rabbitmq-url"
	KeyR2AccountID       = "r2-account-id"
	KeyR2Bucket          = "r2-bucket"
	KeyR2AccessKey       = "r2-access-key"
	KeyR2SecretKey       = "r2-secret-key"
	KeyGoogleAPIKey      = "google-api-key"
	KeyEmbeddingProvider = "embedding-provider"
	KeyEmbeddingModel    = "embedding-model"
	KeyNERProvider       = "ner-provider"
	KeyNERModel          = "ner-model"
	KeyRedisURL          = "redis-url"
	KeyWorkers           = "workers"
	KeyDataDir           = "data-dir"
	KeyJSON              = "json"
	KeyDebug             = "debug"
)

var envBindings = map[string]string{
	KeyDBURL:             "DB_URL",
	KeyRabbitMQURL:       "RABBITMQ_URL",
	KeyR2AccountID:       "R2_ACCCOUNT_ID",
	KeyR2Bucket:          "R2_BUCKET",
	KeyR2AccessKey:       "R2_ACCESS_KEY",
	KeyR2SecretKey:       "R2_SECRET_KEY",
	KeyGoogleAPIKey:      "GOOGLE_API_KEY",
	KeyEmbeddingProvider: "EMBEDDING_PROVIDER",
	KeyEmbeddingModel:    "EMBEDDING_MODEL",
	KeyNERProvider:       "NER_PROVIDER",
	KeyNERModel:          "NER_MODEL",
	KeyRedisURL:          "REDIS_URL",
	KeyWorkers:           "WORKERS",
	KeyDataDir:           "DATA_DIR",
	KeyJSON:              "LOG_JSON",
	KeyDebug:             "DEBUG",
}

type Config struct {
	DBURL       string
	RabbitMQURL string

	R2AccountID string
	R2Bucket    string
	R2AccessKey string
	R2SecretKey string

	GoogleAPIKey      string
	EmbeddingProvider string
	EmbeddingModel    string
	NERProvider       string
	NERModel          string
	RedisURL          string

	Workers int
	DataDir string
	JSON    bool
	Debug   bool
}

// New returns a viper instance with defaults and environment bindings set.
// Callers bind their cobra flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyEmbeddingModel, "gemini-embedding-001")
	v.SetDefault(KeyNERModel, "gemini-2.5-flash")
	v.SetDefault(KeyWorkers, 3)
	v.SetDefault(KeyDataDir, "data_store")

	for key, env := range envBindings {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key, env)
	}
	return v
}

// Load reads .env (when present) and configFile (when set) and resolves the
// final settings.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	_ = godotenv.Load()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		DBURL:             v.GetString(KeyDBURL),
		RabbitMQURL:       v.GetString(KeyRabbitMQURL),
		R2AccountID:       v.GetString(KeyR2AccountID),
		R2Bucket:          v.GetString(KeyR2Bucket),
		R2AccessKey:       v.GetString(KeyR2AccessKey),
		R2SecretKey:       v.GetString(KeyR2SecretKey),
		GoogleAPIKey:      v.GetString(KeyGoogleAPIKey),
		EmbeddingProvider: strings.ToLower(strings.TrimSpace(v.GetString(KeyEmbeddingProvider))),
		EmbeddingModel:    v.GetString(KeyEmbeddingModel),
		NERProvider:       strings.ToLower(strings.TrimSpace(v.GetString(KeyNERProvider))),
		NERModel:          v.GetString(KeyNERModel),
		RedisURL:          v.GetString(KeyRedisURL),
		Workers:           v.GetInt(KeyWorkers),
		DataDir:           v.GetString(KeyDataDir),
		JSON:              v.GetBool(KeyJSON),
		Debug:             v.GetBool(KeyDebug),
	}

	if cfg.EmbeddingProvider == "" {
		cfg.EmbeddingProvider = ProviderHashing
		if cfg.GoogleAPIKey != "" {
			cfg.EmbeddingProvider = ProviderGemini
		}
	}
	if cfg.NERProvider == "" {
		cfg.NERProvider = ProviderNone
		if cfg.GoogleAPIKey != "" {
			cfg.NERProvider = ProviderAgent
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	var errs []error
	switch c.EmbeddingProvider {
	case ProviderGemini, ProviderHashing:
	default:
		errs = append(errs, fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.EmbeddingProvider))
	}
	switch c.NERProvider {
	case ProviderAgent, ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("unknown NER_PROVIDER %q", c.NERProvider))
	}
	if c.GoogleAPIKey == "" && (c.EmbeddingProvider == ProviderGemini || c.NERProvider == ProviderAgent) {
		errs = append(errs, errors.New("empty GOOGLE_API_KEY in env"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// ValidateWorker reports every setting the queue worker needs but lacks.
func (c *Config) ValidateWorker() error {
	required := []struct {
		env, value string
	}{
		{"DB_URL", c.DBURL},
		{"RABBITMQ_URL", c.RabbitMQURL},
		{"R2_ACCCOUNT_ID", c.R2AccountID},
		{"R2_BUCKET", c.R2Bucket},
		{"R2_ACCESS_KEY", c.R2AccessKey},
		{"R2_SECRET_KEY", c.R2SecretKey},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("empty %s in environment", r.env))
		}
	}
	return errors.Join(errs...)
}
