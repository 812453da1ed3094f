package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured field keys shared across the worker and the CLI.
const (
	FieldUserID     = "user_id"
	FieldResumeID   = "resume_id"
	FieldAnalysisID = "analysis_id"
	FieldWorker     = "worker"
	FieldModel      = "model"
	FieldService    = "service"
	FieldCommand    = "command"
)

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil. Fields with an empty key or a blank string value are dropped.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	kept := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Key) == "" {
			continue
		}
		if f.Type == zapcore.StringType && strings.TrimSpace(f.String) == "" {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return logger
	}
	return logger.With(kept...)
}
