package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID        uuid.UUID
	UserID    string
	ResumeID  uuid.UUID
	Status    string
	Error     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Resume struct {
	ID               uuid.UUID
	UserID           string
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	StorageProvider  string
	ObjectKey        string
	StorageUrl       string
	UploadStatus     string
	CreatedAt        time.Time
}

type UserResult struct {
	UserID    string
	Result    json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
