// Package qna builds interview practice questions from detected skills.
package qna

import "github.com/muhammadolammi/skilledge/internal/skills"

// MaxItems caps the generated list.
const MaxItems = 8

// GeneralSkill tags the fallback questions.
const GeneralSkill = "general"

type Pair struct {
	Question string
	Answer   string
}

// Template maps a skill to its ordered question/answer pairs.
type Template map[string][]Pair

// Item is one generated question.
type Item struct {
	Skills   []string `json:"skills"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
}

// DefaultTemplates returns the built-in question bank.
func DefaultTemplates() Template {
	return Template{
		"python": {
			{
				Question: "Explain list vs tuple in Python. When would you use each?",
				Answer:   "Lists are mutable and suited for collections that change; tuples are immutable and can be used as dict keys or to enforce read-only semantics.",
			},
			{
				Question: "What are Python generators and why are they memory efficient?",
				Answer:   "They yield items lazily, producing values on demand without storing the whole sequence in memory.",
			},
		},
		"pandas": {
			{
				Question: "How do you handle missing values in pandas?",
				Answer:   "Common approaches: dropna, fillna with constants or statistics, or use interpolation; choice depends on data semantics.",
			},
		},
		"scikit-learn": {
			{
				Question: "How do you prevent data leakage in model training?",
				Answer:   "Split before transform; fit scalers/encoders on train only; use Pipelines and cross-validation appropriately.",
			},
		},
		"tensorflow": {
			{
				Question: "What is the difference between TensorFlow and Keras?",
				Answer:   "Keras is a high-level API that can run on top of TensorFlow; TF provides low-level ops and the runtime.",
			},
		},
		"nlp": {
			{
				Question: "What are word embeddings and why are they useful?",
				Answer:   "Dense vector representations capturing semantic similarity; useful for downstream NLP tasks.",
			},
		},
		"sql": {
			{
				Question: "How do you optimize a slow SQL query?",
				Answer:   "Check indexes, analyze EXPLAIN plan, reduce SELECT *, filter early, and avoid unnecessary joins/subqueries.",
			},
		},
	}
}

func fallbackItems() []Item {
	return []Item{
		{
			Skills:   []string{GeneralSkill},
			Question: "Walk me through a recent project you built.",
			Answer:   "Briefly outline the problem, your approach, tech stack, data, metrics, and outcome. Emphasize your impact.",
		},
		{
			Skills:   []string{GeneralSkill},
			Question: "How do you debug complex issues?",
			Answer:   "Reproduce reliably, isolate variables, add logging, write minimal failing tests, and iterate with hypotheses.",
		},
	}
}

type Generator struct {
	templates Template
}

func NewGenerator(templates Template) *Generator {
	return &Generator{templates: templates}
}

// Generate emits the first templated pair for each skill in alphabetical
// order. When no skill has a template the two general questions are returned.
func (g *Generator) Generate(found skills.Set) []Item {
	var items []Item
	for _, skill := range found.Sorted() {
		pairs := g.templates[skill]
		if len(pairs) == 0 {
			continue
		}
		items = append(items, Item{
			Skills:   []string{skill},
			Question: pairs[0].Question,
			Answer:   pairs[0].Answer,
		})
	}

	if len(items) == 0 {
		items = fallbackItems()
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return items
}
