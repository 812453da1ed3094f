// Package analysis runs the full résumé pipeline: text extraction, skill
// mining, scoring, job recommendation and interview questions.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/muhammadolammi/skilledge/internal/jobs"
	"github.com/muhammadolammi/skilledge/internal/logger"
	"github.com/muhammadolammi/skilledge/internal/qna"
	"github.com/muhammadolammi/skilledge/internal/scoring"
	"github.com/muhammadolammi/skilledge/internal/skills"
	"go.uber.org/zap"
)

// MinTextLength is the shortest trimmed text worth analysing.
const MinTextLength = 50

const previewLength = 1200

var ErrInsufficientText = errors.New("sorry, we couldn't extract enough text from the document")

// Result is the persisted outcome of one analysis.
type Result struct {
	Score         int                   `json:"score"`
	Summary       string                `json:"summary"`
	SkillsFound   []string              `json:"skills_found"`
	MissingSkills []string              `json:"missing_skills"`
	GoodSkills    []string              `json:"good_skills"`
	BestFitRole   string                `json:"best_fit_role,omitempty"`
	RoleScores    map[string]float64    `json:"role_scores,omitempty"`
	Jobs          []jobs.Recommendation `json:"jobs"`
	QnA           []qna.Item            `json:"qna"`
	AnalyzedAt    time.Time             `json:"analyzed_at"`
}

type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

type SkillMiner interface {
	Extract(ctx context.Context, text string) skills.Set
}

type FitScorer interface {
	Score(ctx context.Context, text string, found skills.Set) (scoring.Result, error)
}

// Analyzer wires the pipeline stages together. All stages are read-only
// after construction, so one Analyzer may serve concurrent callers as long
// as its collaborators do.
type Analyzer struct {
	extractor   TextExtractor
	miner       SkillMiner
	scorer      FitScorer
	recommender *jobs.Recommender
	generator   *qna.Generator
	logger      *zap.Logger
	now         func() time.Time
}

type Option func(*Analyzer)

// WithClock overrides the timestamp source for AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithRecommender replaces the default job catalog.
func WithRecommender(r *jobs.Recommender) Option {
	return func(a *Analyzer) { a.recommender = r }
}

// WithGenerator replaces the default question bank.
func WithGenerator(g *qna.Generator) Option {
	return func(a *Analyzer) { a.generator = g }
}

func New(extractor TextExtractor, miner SkillMiner, scorer FitScorer, log *zap.Logger, opts ...Option) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Analyzer{
		extractor:   extractor,
		miner:       miner,
		scorer:      scorer,
		recommender: jobs.NewRecommender(jobs.DefaultTemplates()),
		generator:   qna.NewGenerator(qna.DefaultTemplates()),
		logger:      log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeDocument extracts text from a PDF or DOCX upload and analyses it.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, filename string, data []byte) (*Result, error) {
	text, err := a.extractor.Extract(filename, data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}
	a.logger.Debug("extracted text",
		zap.String("file", filename),
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.String("preview", logger.TruncateForLog(text, previewLength)),
	)
	return a.AnalyzeText(ctx, text)
}

// AnalyzeText analyses already extracted résumé text.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*Result, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return nil, ErrInsufficientText
	}

	found := a.miner.Extract(ctx, text)
	a.logger.Debug("mined skills", zap.Strings("skills", found.Sorted()))

	scored, err := a.scorer.Score(ctx, text, found)
	if err != nil {
		return nil, fmt.Errorf("scoring resume: %w", err)
	}

	res := &Result{
		Score:         scored.Overall,
		Summary:       scoring.Summarize(scored),
		SkillsFound:   found.Sorted(),
		MissingSkills: nonNil(scored.MissingSkills),
		GoodSkills:    nonNil(scored.GoodSkills),
		BestFitRole:   scored.BestFitRole,
		Jobs:          a.recommender.Recommend(found),
		QnA:           a.generator.Generate(found),
		AnalyzedAt:    a.now().UTC(),
	}
	if len(scored.RoleScores) > 0 {
		res.RoleScores = scored.PerRole()
	}

	a.logger.Info("analysis complete",
		zap.Int("score", res.Score),
		zap.String("best_fit_role", res.BestFitRole),
		zap.Int("skills", len(res.SkillsFound)),
	)
	return res, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
