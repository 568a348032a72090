package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Local stores objects under a directory on disk. Objects are served by
// the app itself under the configured URL prefix (default /uploads).
type Local struct {
	root    string
	baseURL string
	log     *zap.Logger
}

// NewLocal creates the root directory if needed.
func NewLocal(root, baseURL string, logger *zap.Logger) (*Local, error) {
	if root == "" {
		root = "./uploads"
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     logger,
	}, nil
}

// Root returns the directory local objects are written under.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) fullPath(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" {
		return "", errors.New("empty object path")
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

func (l *Local) Put(ctx context.Context, path string, r io.Reader, opts *PutOptions) error {
	full, err := l.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	// Write to a temp file first so a failed copy never leaves a
	// half-written object at the final path.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	l.log.Debug("stored local object", zap.String("path", path))
	return nil
}

func (l *Local) Delete(ctx context.Context, path string) error {
	full, err := l.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) URL(path string) string {
	return l.baseURL + "/" + strings.TrimPrefix(path, "/")
}
