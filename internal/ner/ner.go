// Package ner runs the entity-recognition pass over résumé text.
package ner

import (
	"context"
	"strings"
)

// Labels kept by the skill miner.
const (
	LabelOrg      = "ORG"
	LabelProduct  = "PRODUCT"
	LabelLanguage = "LANGUAGE"
	LabelSkill    = "SKILL"
)

// Entity is a recognised span of text with its category label.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Recognizer extracts named entities from text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// Nop is a Recognizer that never finds anything. It is used when no model is
// configured, leaving the miner on keyword matching only.
type Nop struct{}

func (Nop) Recognize(context.Context, string) ([]Entity, error) { return nil, nil }

// IsSkillLike reports whether the label is one of the categories that can name a skill.
func IsSkillLike(label string) bool {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case LabelOrg, LabelProduct, LabelLanguage, LabelSkill:
		return true
	default:
		return false
	}
}
