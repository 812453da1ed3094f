package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/skilledge/internal/analysis"
	"github.com/muhammadolammi/skilledge/internal/database"
	"github.com/muhammadolammi/skilledge/internal/store"
	"go.uber.org/zap"
)

const (
	analysisQueue   = "analyses"
	updatesExchange = "analysis_updates"

	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// AnalysisRequest is the queue message asking for one résumé to be analysed.
type AnalysisRequest struct {
	ID       uuid.UUID `json:"id"`
	UserID   string    `json:"user_id"`
	ResumeID uuid.UUID `json:"resume_id"`
}

// StatusUpdate is published to the updates exchange on every status change.
type StatusUpdate struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Score      *int      `json:"score,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type analysisQueries interface {
	GetResumeByID(ctx context.Context, id uuid.UUID) (database.Resume, error)
	UpdateAnalysisStatus(ctx context.Context, arg database.UpdateAnalysisStatusParams) error
}

type downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type documentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, filename string, data []byte) (*analysis.Result, error)
}

type statusPublisher interface {
	Publish(ctx context.Context, update StatusUpdate) error
}

type WorkerConfig struct {
	DB          analysisQueries
	Store       store.Store
	Objects     downloader
	Analyzer    documentAnalyzer
	Publisher   statusPublisher
	RabbitMQURL string
	Logger      *zap.Logger
}
