package database

import (
	"context"
	"encoding/json"
)

const upsertUserResult = `-- name: UpsertUserResult :exec
INSERT INTO user_results (
user_id, result)
VALUES ( $1, $2)
ON CONFLICT (user_id)
DO UPDATE SET
    result = EXCLUDED.result,
    updated_at = CURRENT_TIMESTAMP
`

type UpsertUserResultParams struct {
	UserID string
	Result json.RawMessage
}

func (q *Queries) UpsertUserResult(ctx context.Context, arg UpsertUserResultParams) error {
	_, err := q.db.ExecContext(ctx, upsertUserResult, arg.UserID, arg.Result)
	return err
}

const getUserResult = `-- name: GetUserResult :one
SELECT user_id, result, created_at, updated_at FROM user_results WHERE user_id=$1
`

func (q *Queries) GetUserResult(ctx context.Context, userID string) (UserResult, error) {
	row := q.db.QueryRowContext(ctx, getUserResult, userID)
	var i UserResult
	err := row.Scan(
		&i.UserID,
		&i.Result,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
