package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore writes objects under a local directory and serves URLs below a
// configured base. Suitable for single-host deployments and tests.
type FSStore struct {
	dir     string
	baseURL string
}

// NewFSStore creates a filesystem-backed blob store rooted at dir
func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FSStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *FSStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
