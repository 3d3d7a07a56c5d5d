package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores uploads on disk under a root directory. Files are served
// by the HTTP layer at /uploads. Intended for development and small
// single-node deployments.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates a disk-backed storage rooted at dir. baseURL is the
// public prefix files are served under (normally "/uploads").
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local storage mkdir: %w", err)
	}
	return &Local{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the object to disk and returns its public URL. The key
// may contain slashes; nested directories are created as needed.
func (l *Local) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	path, err := l.safePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("local storage mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("local storage create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("local storage write %s: %w", key, err)
	}
	return l.FileURL(key), nil
}

// Delete removes the object file. A missing file is not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	path, err := l.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local storage delete %s: %w", key, err)
	}
	return nil
}

// FileURL returns the serving path for a stored key.
func (l *Local) FileURL(key string) string {
	return l.baseURL + "/" + key
}

// Dir returns the root directory, used to mount the static file server.
func (l *Local) Dir() string {
	return l.root
}

// safePath resolves a key inside the root, rejecting traversal outside it.
func (l *Local) safePath(key string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("local storage: invalid key %q", key)
	}
	return path, nil
}
