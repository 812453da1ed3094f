package skills

// Vocabulary is the fixed set of canonical skills matched literally in résumé text.
type Vocabulary struct {
	terms []string
	index Set
}

// NewVocabulary builds a Vocabulary from lowercase canonical terms.
func NewVocabulary(terms ...string) Vocabulary {
	v := Vocabulary{index: make(Set, len(terms))}
	for _, term := range terms {
		if v.index.Has(term) {
			continue
		}
		v.index.Add(term)
		v.terms = append(v.terms, term)
	}
	return v
}

// DefaultVocabulary returns the built-in skill universe. The last row holds
// the terms required by job templates and role profiles.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(
		"python", "java", "c++", "c", "javascript", "typescript",
		"sql", "nosql", "pandas", "numpy", "scikit-learn", "tensorflow", "keras",
		"pytorch", "spacy", "nltk", "react", "flask", "django", "fastapi",
		"aws", "azure", "gcp", "docker", "kubernetes", "git", "linux",
		"machine learning", "deep learning", "data analysis", "data visualization",
		"html", "css", "powerbi", "tableau", "spark", "hadoop", "nlp",
		"matplotlib", "excel", "mlops", "transformers", "bert", "airflow", "node.js", "etl", "data pipeline",
	)
}

func (v Vocabulary) Contains(term string) bool { return v.index.Has(term) }

func (v Vocabulary) Len() int { return len(v.terms) }

// Terms returns the terms in declaration order.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Sorted returns the terms alphabetically.
func (v Vocabulary) Sorted() []string { return v.index.Sorted() }
