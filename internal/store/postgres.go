package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muhammadolammi/skilledge/internal/analysis"
	"github.com/muhammadolammi/skilledge/internal/database"
)

// ResultQueries is the subset of database.Queries used by PostgresStore.
type ResultQueries interface {
	UpsertUserResult(ctx context.Context, arg database.UpsertUserResultParams) error
	GetUserResult(ctx context.Context, userID string) (database.UserResult, error)
}

// PostgresStore keeps results in the user_results table as JSONB.
type PostgresStore struct {
	db ResultQueries
}

func NewPostgresStore(db ResultQueries) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, userID string, res *analysis.Result) error {
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	err = s.db.UpsertUserResult(ctx, database.UpsertUserResultParams{
		UserID: userID,
		Result: body,
	})
	if err != nil {
		return fmt.Errorf("failed to save result for %s: %w", userID, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, userID string) (*analysis.Result, error) {
	row, err := s.db.GetUserResult(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result for %s: %w", userID, err)
	}

	var res analysis.Result
	if err := json.Unmarshal(row.Result, &res); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	return &res, nil
}
