package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how New builds a logger.
type Options struct {
	// Service and Command are attached to every entry when set.
	Service string
	Command string

	JSON  bool
	Debug bool

	// Output defaults to stderr.
	Output io.Writer
}

// Repeated entries with the same level and message are thinned to one in
// every sampleThereafter after the first sampleInitial within a second.
// Debug runs are never sampled.
const (
	sampleInitial    = 100
	sampleThereafter = 100
)

func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zapcore.EncoderConfig{
		MessageKey: "msg",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	out := zapcore.Lock(os.Stderr)
	if opts.Output != nil {
		out = zapcore.AddSync(opts.Output)
	}

	core := zapcore.NewCore(enc, out, zap.NewAtomicLevelAt(level))
	if !opts.Debug {
		core = zapcore.NewSamplerWithOptions(core, time.Second, sampleInitial, sampleThereafter)
	}

	var fields []zap.Field
	if opts.Service != "" {
		fields = append(fields, zap.String(FieldService, opts.Service))
	}
	if opts.Command != "" {
		fields = append(fields, zap.String(FieldCommand, opts.Command))
	}

	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))).With(fields...), nil
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
