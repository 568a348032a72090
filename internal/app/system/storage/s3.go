package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

// S3 stores objects in a bucket. URLs point at the bucket endpoint or, if
// configured, a CDN/base URL fronting it.
type S3 struct {
	uploader  *s3manager.Uploader
	client    *s3.S3
	bucket    string
	prefix    string
	region    string
	publicURL string
	log       *zap.Logger
}

// NewS3 builds an S3 backend from the standard AWS credential chain.
func NewS3(cfg Config, logger *zap.Logger) (*S3, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("storage type s3 requires a bucket name")
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.S3Region)})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	return &S3{
		uploader:  s3manager.NewUploader(sess),
		client:    s3.New(sess),
		bucket:    cfg.S3Bucket,
		prefix:    strings.Trim(cfg.S3Prefix, "/"),
		region:    cfg.S3Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		log:       logger,
	}, nil
}

func (s *S3) key(path string) string {
	path = strings.TrimPrefix(path, "/")
	if s.prefix == "" {
		return path
	}
	return s.prefix + "/" + path
}

func (s *S3) Put(ctx context.Context, path string, r io.Reader, opts *PutOptions) error {
	in := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
		Body:   r,
	}
	if opts != nil && opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}

	if _, err := s.uploader.UploadWithContext(ctx, in); err != nil {
		return fmt.Errorf("s3 upload %s: %w", path, err)
	}
	s.log.Debug("stored s3 object", zap.String("key", s.key(path)))
	return nil
}

func (s *S3) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", path, err)
	}
	return nil
}

func (s *S3) URL(path string) string {
	key := s.key(path)
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
