package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muhammadolammi/skilledge/internal/embedding"
	"github.com/muhammadolammi/skilledge/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder maps each default profile to its own axis and résumé text to
// a caller-chosen vector.
type axisEmbedder struct {
	resume []float32
	calls  []string
	err    error
}

func (a *axisEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	a.calls = append(a.calls, text)
	if a.err != nil {
		return nil, a.err
	}
	for i, p := range DefaultProfiles() {
		if text == strings.Join(p.Skills, ", ") {
			vec := make([]float32, 4)
			vec[i] = 1
			return vec, nil
		}
	}
	return a.resume, nil
}

func (a *axisEmbedder) Model() string { return "axis" }

func TestScore_EmptySkillSetShortCircuits(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{1, 0, 0, 0}}
	s := NewScorer(emb, DefaultProfiles(), nil)

	res, err := s.Score(context.Background(), "any text at all", skills.NewSet())
	require.NoError(t, err)

	assert.Equal(t, Result{Overall: 0, Reason: "No skills detected"}, res)
	assert.Empty(t, emb.calls, "no embedding computed")
	assert.Empty(t, res.PerRole())
}

func TestScore_AverageAcrossRoles(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{0.6, 0.8, 0, 0}}
	s := NewScorer(emb, DefaultProfiles(), nil)

	res, err := s.Score(context.Background(), "resume", skills.NewSet("python"))
	require.NoError(t, err)

	per := res.PerRole()
	assert.InDelta(t, 60.0, per["Data Analyst"], 0.001)
	assert.InDelta(t, 80.0, per["Machine Learning Engineer"], 0.001)
	assert.InDelta(t, 0.0, per["Full Stack Developer"], 0.001)
	assert.InDelta(t, 0.0, per["Data Engineer"], 0.001)

	assert.Equal(t, 35, res.Overall, "mean of all roles, not the best")
	assert.Equal(t, "Machine Learning Engineer", res.BestFitRole)
	assert.Equal(t, "Strongest alignment with Machine Learning Engineer role.", res.Reason)
}

func TestScore_TruncatesAverage(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{1, 1, 1, 0}}
	s := NewScorer(emb, DefaultProfiles(), nil)

	res, err := s.Score(context.Background(), "resume", skills.NewSet("python"))
	require.NoError(t, err)

	assert.InDelta(t, 57.74, res.RoleScores[0].Percent, 0.0001)
	assert.Equal(t, 43, res.Overall)
}

func TestScore_TieGoesToFirstRole(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{1, 1, 0, 0}}
	s := NewScorer(emb, DefaultProfiles(), nil)

	res, err := s.Score(context.Background(), "resume", skills.NewSet("python"))
	require.NoError(t, err)

	assert.Equal(t, res.RoleScores[0].Percent, res.RoleScores[1].Percent)
	assert.Equal(t, "Data Analyst", res.BestFitRole)
}

func TestScore_NegativeSimilarityClampsToZero(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{-1, -1, -1, -1}}
	s := NewScorer(emb, DefaultProfiles(), nil)

	res, err := s.Score(context.Background(), "resume", skills.NewSet("python"))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Overall)
	assert.InDelta(t, -50.0, res.RoleScores[0].Percent, 0.001)
}

func TestScore_ProfileEmbeddingsComputedOnce(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{1, 0, 0, 0}}
	s := NewScorer(emb, DefaultProfiles(), nil)
	ctx := context.Background()

	_, err := s.Score(ctx, "first", skills.NewSet("python"))
	require.NoError(t, err)
	_, err = s.Score(ctx, "second", skills.NewSet("python"))
	require.NoError(t, err)

	assert.Len(t, emb.calls, len(DefaultProfiles())+2)
}

func TestScore_EmbedderErrorPropagates(t *testing.T) {
	emb := &axisEmbedder{err: errors.New("quota exceeded")}
	s := NewScorer(emb, DefaultProfiles(), nil)

	_, err := s.Score(context.Background(), "resume", skills.NewSet("python"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestScore_MissingAndGoodSkills(t *testing.T) {
	emb := &axisEmbedder{resume: []float32{1, 0, 0, 0}}
	s := NewScorer(emb, DefaultProfiles(), nil)

	found := skills.NewSet("python", "sql", "docker", "kubeflow")
	res, err := s.Score(context.Background(), "resume", found)
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", res.BestFitRole)
	assert.Equal(t, []string{"data visualization", "excel", "matplotlib", "pandas"}, res.MissingSkills)
	assert.Equal(t, []string{"docker", "python", "sql"}, res.GoodSkills)
}

func TestScore_BoundsWithHashingEmbedder(t *testing.T) {
	s := NewScorer(embedding.NewHashingEmbedder(0), DefaultProfiles(), nil)
	ctx := context.Background()

	texts := []string{
		"Python, SQL, Pandas, Matplotlib",
		"React JavaScript Flask FastAPI Node.js Docker",
		"Spark Airflow Hadoop AWS GCP ETL data pipeline",
		"Gardening, cooking and long walks on the beach",
	}
	for _, text := range texts {
		res, err := s.Score(ctx, text, skills.NewSet("python"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Overall, 0, text)
		assert.LessOrEqual(t, res.Overall, 100, text)
		assert.Len(t, res.RoleScores, 4)
	}
}

func TestSummarize(t *testing.T) {
	res := Result{
		RoleScores: []RoleScore{
			{Role: "Data Analyst", Percent: 61.25},
			{Role: "Data Engineer", Percent: 40},
		},
		BestFitRole: "Data Analyst",
	}

	assert.Equal(t,
		"Resume aligns best with **Data Analyst** profile. Role fit scores: Data Analyst: 61.25%, Data Engineer: 40%",
		Summarize(res))
	assert.Equal(t,
		"Resume aligns best with **Generalist** profile. Role fit scores: none",
		Summarize(Result{Reason: ReasonNoSkills}))
}
