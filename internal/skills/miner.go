package skills

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/muhammadolammi/skilledge/internal/ner"
	"go.uber.org/zap"
)

// minTokenLength drops tokens this short or shorter. It also removes the
// single-letter language "c".
const minTokenLength = 2

// Miner finds skills in résumé text by combining an entity-recognition pass
// with whole-word matching against the vocabulary.
type Miner struct {
	vocab      Vocabulary
	patterns   []keywordPattern
	normalizer *Normalizer
	recognizer ner.Recognizer
	logger     *zap.Logger
}

type keywordPattern struct {
	skill string
	re    *regexp.Regexp
}

// MinerOption customises a Miner.
type MinerOption func(*Miner)

// WithNormalizer replaces the default alias table.
func WithNormalizer(n *Normalizer) MinerOption {
	return func(m *Miner) { m.normalizer = n }
}

// NewMiner compiles one whole-word pattern per vocabulary term. A nil
// recognizer disables the entity pass.
func NewMiner(vocab Vocabulary, recognizer ner.Recognizer, logger *zap.Logger, opts ...MinerOption) *Miner {
	if recognizer == nil {
		recognizer = ner.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Miner{
		vocab:      vocab,
		normalizer: defaultNormalizer,
		recognizer: recognizer,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, term := range vocab.Terms() {
		m.patterns = append(m.patterns, keywordPattern{
			skill: term,
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	return m
}

// Extract returns the skills found in text. It never fails: when the entity
// pass errors, the keyword matches alone are returned.
func (m *Miner) Extract(ctx context.Context, text string) Set {
	text = m.normalizer.Normalize(text)

	candidates := make([]string, 0)

	entities, err := m.recognizer.Recognize(ctx, text)
	if err != nil {
		m.logger.Warn("entity recognition failed, using keyword matches only", zap.Error(err))
	}
	for _, ent := range entities {
		if ner.IsSkillLike(ent.Label) {
			candidates = append(candidates, strings.ToLower(ent.Text))
		}
	}

	candidates = append(candidates, m.MatchKeywords(text)...)

	found := make(Set, len(candidates))
	for _, c := range candidates {
		if utf8.RuneCountInString(c) <= minTokenLength {
			continue
		}
		if c = strings.TrimSpace(c); c != "" {
			found.Add(c)
		}
	}

	m.logger.Debug("skills mined",
		zap.Int("entities", len(entities)),
		zap.Int("skills", found.Len()),
	)
	return found
}

// MatchKeywords returns the vocabulary terms occurring as whole words in
// already-normalized text, in vocabulary order.
func (m *Miner) MatchKeywords(normalized string) []string {
	var out []string
	for _, p := range m.patterns {
		for _, loc := range p.re.FindAllStringIndex(normalized, -1) {
			if wordBounded(normalized, loc[0], loc[1]) {
				out = append(out, p.skill)
				break
			}
		}
	}
	return out
}

// Vocabulary returns the vocabulary the miner matches against.
func (m *Miner) Vocabulary() Vocabulary { return m.vocab }
