package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/muhammadolammi/skilledge/internal/analysis"
	"github.com/muhammadolammi/skilledge/internal/database"
	"github.com/muhammadolammi/skilledge/internal/extract"
	"github.com/muhammadolammi/skilledge/internal/logger"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	downloadAttempts = 3
	saveAttempts     = 3
)

var errForeignResume = errors.New("resume does not belong to user")

// processAnalysis runs one queued analysis end to end. Downloads and result
// writes are retried; everything else fails the analysis immediately.
func processAnalysis(ctx context.Context, req AnalysisRequest, workerConfig *WorkerConfig) (*analysis.Result, error) {
	resume, err := workerConfig.DB.GetResumeByID(ctx, req.ResumeID)
	if err != nil {
		return nil, fmt.Errorf("error getting resume %s: %w", req.ResumeID, err)
	}
	if resume.UserID != req.UserID {
		return nil, errForeignResume
	}

	fileBytes, err := retry(downloadAttempts, func() ([]byte, error) {
		return workerConfig.Objects.Download(ctx, resume.ObjectKey)
	})
	if err != nil {
		return nil, fmt.Errorf("file download error: %w", err)
	}

	res, err := workerConfig.Analyzer.AnalyzeDocument(ctx, resumeFilename(resume), fileBytes)
	if err != nil {
		return nil, err
	}

	_, err = retry(saveAttempts, func() (any, error) {
		return nil, workerConfig.Store.Save(ctx, req.UserID, res)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis result after retries: %w", err)
	}
	return res, nil
}

// handleMessage decodes one delivery, runs it and reports every status change
// to the database and the updates exchange.
func handleMessage(ctx context.Context, body []byte, workerConfig *WorkerConfig, log *zap.Logger) {
	req := AnalysisRequest{}
	if err := json.Unmarshal(body, &req); err != nil {
		log.Error("error unmarshalling message body", zap.Error(err))
		return
	}
	log = logger.WithFields(log,
		zap.String(logger.FieldAnalysisID, req.ID.String()),
		zap.String(logger.FieldUserID, req.UserID),
		zap.String(logger.FieldResumeID, req.ResumeID.String()),
	)

	log.Info("processing analysis")
	setStatus(ctx, workerConfig, log, req, statusProcessing, "analysis started", nil)

	res, err := processAnalysis(ctx, req, workerConfig)
	if err != nil {
		log.Error("analysis failed", zap.Error(err))
		setStatus(ctx, workerConfig, log, req, statusFailed, failureMessage(err), nil)
		return
	}

	log.Info("analysis completed", zap.Int("score", res.Score))
	setStatus(ctx, workerConfig, log, req, statusCompleted, "analysis completed", &res.Score)
}

func setStatus(ctx context.Context, workerConfig *WorkerConfig, log *zap.Logger, req AnalysisRequest, status, message string, score *int) {
	errText := sql.NullString{}
	if status == statusFailed {
		errText = sql.NullString{String: message, Valid: true}
	}
	err := workerConfig.DB.UpdateAnalysisStatus(ctx, database.UpdateAnalysisStatusParams{
		Status: status,
		Error:  errText,
		ID:     req.ID,
	})
	if err != nil {
		log.Warn("failed to update analysis status", zap.String("status", status), zap.Error(err))
	}

	err = workerConfig.Publisher.Publish(ctx, StatusUpdate{
		AnalysisID: req.ID,
		UserID:     req.UserID,
		Status:     status,
		Message:    message,
		Score:      score,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		log.Warn("failed to publish update", zap.String("status", status), zap.Error(err))
	}
}

// failureMessage is the user-facing reason stored with a failed analysis.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, analysis.ErrInsufficientText):
		return analysis.ErrInsufficientText.Error()
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return extract.ErrUnsupportedFormat.Error()
	case errors.Is(err, extract.ErrExtractionFailed):
		return extract.ErrExtractionFailed.Error()
	case errors.Is(err, sql.ErrNoRows):
		return "resume not found"
	case errors.Is(err, errForeignResume):
		return errForeignResume.Error()
	default:
		return "analysis failed"
	}
}

func worker(ctx context.Context, id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) error {
	defer wg.Done()
	log := logger.WithFields(workerConfig.Logger, zap.Int(logger.FieldWorker, id+1))

	conn, err := amqp.Dial(workerConfig.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		analysisQueue, // queue name
		true,          // durable (survives broker restarts)
		false,         // auto-delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := ch.Consume(
		analysisQueue, // queue name
		"",            // consumer tag
		true,          // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq message: %w", err)
	}

	log.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopping")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			handleMessage(ctx, msg.Body, workerConfig, log)
		}
	}
}

// StartConsumerWorkerPool blocks until every worker has returned and reports
// the workers' errors joined together.
func (workerConfig *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	errs := make([]error, numWorkers)
	for i := range numWorkers {
		go func() {
			errs[i] = worker(ctx, i, workerConfig, &wg)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
