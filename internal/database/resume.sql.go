package database

import (
	"context"

	"github.com/google/uuid"
)

const getResumeByID = `-- name: GetResumeByID :one
SELECT id, user_id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status, created_at FROM resumes WHERE id=$1
`

func (q *Queries) GetResumeByID(ctx context.Context, id uuid.UUID) (Resume, error) {
	row := q.db.QueryRowContext(ctx, getResumeByID, id)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.StorageProvider,
		&i.ObjectKey,
		&i.StorageUrl,
		&i.UploadStatus,
		&i.CreatedAt,
	)
	return i, err
}
