// Package jobs ranks a fixed catalog of job templates by skill overlap.
package jobs

import (
	"math"
	"sort"

	"github.com/muhammadolammi/skilledge/internal/skills"
)

// MaxRecommendations caps the ranked list.
const MaxRecommendations = 5

// Template is a catalog entry.
type Template struct {
	Title  string
	Skills []string
	Why    string
}

// Recommendation is a ranked job with its match percentage.
type Recommendation struct {
	Title string `json:"title"`
	Match int    `json:"match"`
	Why   string `json:"why"`
}

// DefaultTemplates returns the built-in job catalog.
func DefaultTemplates() []Template {
	return []Template{
		{
			Title:  "Data Analyst (Python + SQL)",
			Skills: []string{"python", "pandas", "sql", "matplotlib"},
			Why:    "Strong fit if you have Python, SQL and basic data viz.",
		},
		{
			Title:  "Machine Learning Engineer",
			Skills: []string{"python", "scikit-learn", "tensorflow", "pytorch", "mlops"},
			Why:    "Match improves with ML frameworks and MLOps exposure.",
		},
		{
			Title:  "NLP Engineer",
			Skills: []string{"python", "nlp", "spacy", "transformers", "bert"},
			Why:    "Ideal for resumes with solid NLP toolchain skills.",
		},
		{
			Title:  "Data Engineer",
			Skills: []string{"python", "spark", "airflow", "aws", "gcp", "docker"},
			Why:    "Good alignment for data pipelines and cloud experience.",
		},
		{
			Title:  "Full-Stack (ML Apps)",
			Skills: []string{"python", "flask", "fastapi", "react", "docker"},
			Why:    "Build end-to-end ML apps with APIs and simple UIs.",
		},
	}
}

// Recommender scores every template against a skill set.
type Recommender struct {
	templates []Template
}

func NewRecommender(templates []Template) *Recommender {
	return &Recommender{templates: templates}
}

// Recommend returns at most five jobs, best match first. Ties keep catalog order.
func (r *Recommender) Recommend(found skills.Set) []Recommendation {
	recs := make([]Recommendation, 0, len(r.templates))
	for _, t := range r.templates {
		recs = append(recs, Recommendation{
			Title: t.Title,
			Match: MatchPercent(found, t.Skills),
			Why:   t.Why,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Match > recs[j].Match
	})

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// MatchPercent is round(100 * |found ∩ wanted| / |wanted|). Duplicate
// entries in wanted count once; an empty wanted list scores 0.
func MatchPercent(found skills.Set, wanted []string) int {
	want := skills.NewSet(wanted...)
	if want.Len() == 0 {
		return 0
	}
	hits := 0
	for skill := range want {
		if found.Has(skill) {
			hits++
		}
	}
	return int(math.Round(100 * float64(hits) / float64(want.Len())))
}
