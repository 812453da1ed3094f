package main

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadolammi/skilledge/internal/analysis"
	"github.com/muhammadolammi/skilledge/internal/config"
	"github.com/muhammadolammi/skilledge/internal/embedding"
	"github.com/muhammadolammi/skilledge/internal/extract"
	"github.com/muhammadolammi/skilledge/internal/logger"
	"github.com/muhammadolammi/skilledge/internal/ner"
	"github.com/muhammadolammi/skilledge/internal/scoring"
	"github.com/muhammadolammi/skilledge/internal/skills"
	"go.uber.org/zap"
)

const embeddingCacheTTL = 7 * 24 * time.Hour

// newEmbedder picks the embedding backend and wraps it in the Redis cache
// when REDIS_URL is set. An unreachable Redis only disables the cache.
func newEmbedder(ctx context.Context, cfg *config.Config, log *zap.Logger) (embedding.Embedder, func(), error) {
	var base embedding.Embedder
	switch cfg.EmbeddingProvider {
	case config.ProviderGemini:
		g, err := embedding.NewGeminiEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		base = g
	default:
		base = embedding.NewHashingEmbedder(0)
	}

	noop := func() {}
	if cfg.RedisURL == "" {
		return base, noop, nil
	}
	rdb, err := embedding.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("embedding cache disabled", zap.Error(err))
		return base, noop, nil
	}
	cached := embedding.NewCachedEmbedder(base, embedding.NewRedisKV(rdb), embeddingCacheTTL, log)
	return cached, func() { _ = rdb.Close() }, nil
}

func newRecognizer(ctx context.Context, cfg *config.Config, log *zap.Logger) (ner.Recognizer, error) {
	if cfg.NERProvider != config.ProviderAgent {
		return ner.Nop{}, nil
	}
	rec, err := ner.NewAgentRecognizer(ctx, cfg.GoogleAPIKey, cfg.NERModel,
		logger.WithFields(log, zap.String(logger.FieldModel, cfg.NERModel)))
	if err != nil {
		return nil, fmt.Errorf("failed to create entity recognizer: %w", err)
	}
	return rec, nil
}

// newAnalyzer builds the full pipeline once per process. The returned
// cleanup releases the embedding cache connection.
func newAnalyzer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*analysis.Analyzer, func(), error) {
	emb, cleanup, err := newEmbedder(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	rec, err := newRecognizer(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	miner := skills.NewMiner(skills.DefaultVocabulary(), rec, log)
	scorer := scoring.NewScorer(emb, scoring.DefaultProfiles(),
		logger.WithFields(log, zap.String(logger.FieldModel, emb.Model())))

	log.Debug("analyzer ready",
		zap.String("embedding_provider", cfg.EmbeddingProvider),
		zap.String("ner_provider", cfg.NERProvider),
	)
	return analysis.New(extract.New(), miner, scorer, log), cleanup, nil
}
