package skills

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Aliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "js", input: "Built UIs in JS", want: "built uis in javascript"},
		{name: "js not inside words", input: "objs and js2 stay", want: "objs and js2 stay"},
		{name: "pytorch", input: "Py-Torch and PyTorch", want: "pytorch and pytorch"},
		{name: "sklearn", input: "sklearn pipelines", want: "scikit-learn pipelines"},
		{name: "google cloud", input: "Google Cloud Run", want: "gcp run"},
		{name: "ms excel", input: "MS Excel and MSExcel", want: "excel and excel"},
		{name: "reactjs", input: "ReactJS hooks", want: "react hooks"},
		{name: "nodejs", input: "NodeJS services", want: "node.js services"},
		{name: "node.js untouched", input: "Node.js services", want: "node.js services"},
		{name: "lowercase only", input: "Python, SQL", want: "python, sql"},
		{name: "js glued to accented letters", input: "Éjs and jsé", want: "éjs and jsé"},
		{name: "js between guillemets", input: "«JS»", want: "«javascript»"},
		{name: "nodejs after accented letter", input: "ànodejs", want: "ànodejs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"JS, NodeJS, node.js, ReactJS, reactjs.js",
		"sklearn + py-torch on Google Cloud with MS  Excel",
		"Senior Engineer: Python, SQL, Pandas, Matplotlib",
		"js js js.js nodejs.nodejs",
		"éjs, «js», nodejsé, sklearn™",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizer_CustomTable(t *testing.T) {
	n := NewNormalizer([]AliasRule{
		{Pattern: regexp.MustCompile(`\bk8s\b`), Replacement: "kubernetes"},
		{Pattern: regexp.MustCompile(`\bgolang\b`), Replacement: "go"},
	})

	assert.Equal(t, "kubernetes and go", n.Normalize("K8s and Golang"))
}
