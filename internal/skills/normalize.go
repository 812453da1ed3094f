// Package skills normalizes résumé text and mines canonical skills from it.
package skills

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AliasRule folds a surface variant into its canonical token.
// A match directly preceded by one of the NotAfter characters is left alone.
type AliasRule struct {
	Pattern     *regexp.Regexp
	Replacement string
	NotAfter    string
}

// DefaultAliases returns the built-in alias table. Rules apply in this order.
func DefaultAliases() []AliasRule {
	return []AliasRule{
		{Pattern: regexp.MustCompile(`\bjs\b`), Replacement: "javascript", NotAfter: "."},
		{Pattern: regexp.MustCompile(`\bpy\-?torch\b`), Replacement: "pytorch"},
		{Pattern: regexp.MustCompile(`\bsklearn\b`), Replacement: "scikit-learn"},
		{Pattern: regexp.MustCompile(`\bgoogle cloud\b`), Replacement: "gcp"},
		{Pattern: regexp.MustCompile(`\bms\s*excel\b`), Replacement: "excel"},
		{Pattern: regexp.MustCompile(`\breactjs\b`), Replacement: "react"},
		{Pattern: regexp.MustCompile(`\bnodejs\b`), Replacement: "node.js"},
	}
}

// Normalizer lowercases text and applies alias rules.
type Normalizer struct {
	aliases []AliasRule
}

func NewNormalizer(aliases []AliasRule) *Normalizer {
	return &Normalizer{aliases: aliases}
}

// Normalize lowercases text and rewrites aliases in declaration order.
// Replacements are literal.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	for _, rule := range n.aliases {
		text = rule.apply(text)
	}
	return text
}

func (r AliasRule) apply(text string) string {
	matches := r.Pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !wordBounded(text, m[0], m[1]) {
			continue
		}
		if r.NotAfter != "" && m[0] > 0 && strings.IndexByte(r.NotAfter, text[m[0]-1]) >= 0 {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(r.Replacement)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// wordBounded reports whether text[start:end] sits on word boundaries when
// every letter, digit and mark counts as a word character. Regexp \b only
// knows ASCII, so "éjs" would otherwise look like a standalone "js".
func wordBounded(text string, start, end int) bool {
	if start >= end {
		return false
	}
	first, _ := utf8.DecodeRuneInString(text[start:])
	lastRune, _ := utf8.DecodeLastRuneInString(text[:end])

	before := false
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		before = isWordRune(r)
	}
	after := false
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		after = isWordRune(r)
	}
	return before != isWordRune(first) && isWordRune(lastRune) != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

var defaultNormalizer = NewNormalizer(DefaultAliases())

// Normalize applies the default alias table.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}
