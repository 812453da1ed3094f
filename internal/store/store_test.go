package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muhammadolammi/skilledge/internal/analysis"
	"github.com/muhammadolammi/skilledge/internal/database"
	"github.com/muhammadolammi/skilledge/internal/jobs"
	"github.com/muhammadolammi/skilledge/internal/qna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(score int) *analysis.Result {
	return &analysis.Result{
		Score:         score,
		Summary:       "Resume aligns best with **Data Analyst** profile.",
		SkillsFound:   []string{"pandas", "python", "sql"},
		MissingSkills: []string{"excel"},
		GoodSkills:    []string{"pandas", "python", "sql"},
		BestFitRole:   "Data Analyst",
		RoleScores:    map[string]float64{"Data Analyst": 61.25},
		Jobs:          []jobs.Recommendation{{Title: "Data Analyst (Python + SQL)", Match: 75, Why: "fit"}},
		QnA:           []qna.Item{{Skills: []string{"python"}, Question: "q", Answer: "a"}},
		AnalyzedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileStore_RoundTripAndOverwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data_store"))
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "alice", sampleResult(40)))
	require.NoError(t, s.Save(ctx, "alice", sampleResult(55)))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, sampleResult(55), got)

	entries, err := os.ReadDir(filepath.Dir(s.Path("alice")))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice.json", entries[0].Name())
}

func TestFileStore_IndentedUTF8(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	res := sampleResult(10)
	res.Summary = "Résumé ✓"
	require.NoError(t, s.Save(context.Background(), "bob", res))

	raw, err := os.ReadFile(s.Path("bob"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"score\": 10")
	assert.Contains(t, string(raw), "Résumé ✓")
}

func TestFileStore_NotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSafeName(t *testing.T) {
	for _, id := range []string{"alice", "jane@example.com", "user-42_b.c"} {
		assert.Equal(t, id, SafeName(id))
	}

	tests := map[string]string{
		"../../etc/passwd": "_.._etc_passwd~",
		"a b/c":            "a_b_c~",
		"":                 "_~",
		"...":              "_~",
		" alice":           "_alice~",
	}
	for in, prefix := range tests {
		got := SafeName(in)
		assert.True(t, strings.HasPrefix(got, prefix), "%q -> %q", in, got)
		assert.Len(t, got, len(prefix)+16, in)
	}

	long := SafeName(strings.Repeat("a", 300))
	assert.LessOrEqual(t, len(long), maxNameLen+17)
}

func TestSafeName_DistinctUsersDistinctFiles(t *testing.T) {
	ids := []string{
		"jane+cv@x.com", "jane_cv@x.com", "jane cv@x.com", "jane/cv@x.com",
		"", "_", "...", "..", ".hidden", "hidden",
		strings.Repeat("a", 300), strings.Repeat("a", 301),
	}
	seen := map[string]string{}
	for _, id := range ids {
		name := SafeName(id)
		other, dup := seen[name]
		assert.False(t, dup, "%q and %q share %q", id, other, name)
		seen[name] = id
	}
}

func TestFileStore_SimilarIDsDoNotOverwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "jane+cv@x.com", sampleResult(90)))
	require.NoError(t, s.Save(ctx, "jane_cv@x.com", sampleResult(40)))

	got, err := s.Load(ctx, "jane+cv@x.com")
	require.NoError(t, err)
	assert.Equal(t, 90, got.Score)

	got, err = s.Load(ctx, "jane_cv@x.com")
	require.NoError(t, err)
	assert.Equal(t, 40, got.Score)
}

func TestFileStore_PathStaysInDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(s.Path("../../escape")))
}

type fakeQueries struct {
	rows    map[string]json.RawMessage
	saveErr error
}

func (f *fakeQueries) UpsertUserResult(_ context.Context, arg database.UpsertUserResultParams) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rows[arg.UserID] = arg.Result
	return nil
}

func (f *fakeQueries) GetUserResult(_ context.Context, userID string) (database.UserResult, error) {
	raw, ok := f.rows[userID]
	if !ok {
		return database.UserResult{}, sql.ErrNoRows
	}
	return database.UserResult{UserID: userID, Result: raw}, nil
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	q := &fakeQueries{rows: map[string]json.RawMessage{}}
	s := NewPostgresStore(q)

	require.NoError(t, s.Save(ctx, "alice", sampleResult(40)))
	require.NoError(t, s.Save(ctx, "alice", sampleResult(70)))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 70, got.Score)
	assert.Len(t, q.rows, 1)
}

func TestPostgresStore_Errors(t *testing.T) {
	ctx := context.Background()
	q := &fakeQueries{rows: map[string]json.RawMessage{}, saveErr: errors.New("connection reset")}
	s := NewPostgresStore(q)

	err := s.Save(ctx, "alice", sampleResult(1))
	assert.ErrorContains(t, err, "connection reset")

	_, err = s.Load(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	q.rows["broken"] = json.RawMessage(`{"score":`)
	_, err = s.Load(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

var _ Store = (*FileStore)(nil)
var _ Store = (*PostgresStore)(nil)
