package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/muhammadolammi/skilledge/internal/analysis"
)

const maxNameLen = 64

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._@-]+`)

// FileStore writes one indented JSON document per user under dir.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file holding userID's result.
func (s *FileStore) Path(userID string) string {
	return filepath.Join(s.dir, SafeName(userID)+".json")
}

// Save writes through a temp file and rename so readers never see a
// partially written document.
func (s *FileStore) Save(_ context.Context, userID string, res *analysis.Result) error {
	body, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".result-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(userID)); err != nil {
		return fmt.Errorf("failed to store result for %s: %w", userID, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, userID string) (*analysis.Result, error) {
	body, err := os.ReadFile(s.Path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read result for %s: %w", userID, err)
	}

	var res analysis.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	return &res, nil
}

// SafeName maps a user id to a file name without path separators or
// leading dots. Ids that are already safe keep their name; any other id gets
// its sanitised form plus "~" and a SHA-256 prefix of the original. "~" never
// appears in a safe id, so distinct users never share a file.
func SafeName(userID string) string {
	if userID != "" && len(userID) <= maxNameLen && !unsafeChars.MatchString(userID) && userID[0] != '.' {
		return userID
	}

	clean := strings.TrimLeft(unsafeChars.ReplaceAllString(userID, "_"), ".")
	if len(clean) > maxNameLen {
		clean = clean[:maxNameLen]
	}
	if clean == "" {
		clean = "_"
	}
	sum := sha256.Sum256([]byte(userID))
	return clean + "~" + hex.EncodeToString(sum[:8])
}
