package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore persists uploads and generated reports under a base directory,
// mirroring the public/private split of the served /files tree.
type LocalStore struct {
	BaseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalStore{BaseDir: baseDir}
}

// Store writes data and returns the URL path the file is served under.
func (s *LocalStore) Store(ctx context.Context, data []byte, filename string, private bool) (string, error) {
	_ = ctx

	filename = filepath.Base(filename)
	dir := filepath.Join(s.BaseDir, "files")
	urlPrefix := "/files/"
	if private {
		dir = filepath.Join(s.BaseDir, "private", "files")
		urlPrefix = "/private/files/"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file %s: %w", path, err)
	}

	return urlPrefix + filename, nil
}

// Open resolves a stored file by its URL path for serving or inspection.
func (s *LocalStore) Open(ctx context.Context, urlPath string) (io.ReadCloser, error) {
	_ = ctx

	rel := strings.TrimPrefix(urlPath, "/")
	path := filepath.Join(s.BaseDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(path, filepath.Clean(s.BaseDir)) {
		return nil, fmt.Errorf("path %s escapes base dir", urlPath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}
