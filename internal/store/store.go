// Package store persists the latest analysis result per user.
package store

import (
	"context"
	"errors"

	"github.com/muhammadolammi/skilledge/internal/analysis"
)

// ErrNotFound is returned by Load when a user has no stored result.
var ErrNotFound = errors.New("no results yet")

// Store keeps one result per user; Save overwrites any previous one.
type Store interface {
	Save(ctx context.Context, userID string, res *analysis.Result) error
	Load(ctx context.Context, userID string) (*analysis.Result, error)
}
