// Package storage abstracts where uploaded attachments live. The router
// only sees Put/Delete/URL; whether bytes land on local disk (served under
// /uploads) or in S3 is a config choice, not a code path in the handlers.
package storage

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// PutOptions carries optional metadata for a stored object.
type PutOptions struct {
	ContentType string
}

// Store is the pluggable storage backend.
type Store interface {
	// Put writes the object at path, overwriting any existing object.
	Put(ctx context.Context, path string, r io.Reader, opts *PutOptions) error
	// Delete removes the object at path. Deleting a missing object is
	// not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public URL clients fetch the object from.
	URL(path string) string
}

// Config selects and parameterizes a backend.
type Config struct {
	Type string // "local" or "s3"

	LocalPath string // directory for local objects
	LocalURL  string // URL prefix local objects are served under

	S3Region  string
	S3Bucket  string
	S3Prefix  string
	PublicURL string // optional CDN/base URL in front of the bucket
}

// New builds the storage backend named by cfg.Type.
func New(cfg Config, logger *zap.Logger) (Store, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocal(cfg.LocalPath, cfg.LocalURL, logger)
	case "s3":
		return NewS3(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage type %q (want local or s3)", cfg.Type)
	}
}
