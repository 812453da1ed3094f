package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const updateAnalysisStatus = `-- name: UpdateAnalysisStatus :exec
UPDATE analyses
SET status=$1, error=$2, updated_at=CURRENT_TIMESTAMP
WHERE id=$3
`

type UpdateAnalysisStatusParams struct {
	Status string
	Error  sql.NullString
	ID     uuid.UUID
}

func (q *Queries) UpdateAnalysisStatus(ctx context.Context, arg UpdateAnalysisStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateAnalysisStatus, arg.Status, arg.Error, arg.ID)
	return err
}
