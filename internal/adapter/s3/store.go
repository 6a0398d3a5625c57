// Package s3 stores rendered documents in an S3-compatible bucket (AWS S3 or
// MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/couchcryptid/methane-report-service/internal/config"
	"github.com/couchcryptid/methane-report-service/internal/domain"
)

// Object metadata keys.
const (
	MetaLayout      = "layout"
	MetaGeneratedAt = "generated-at"
)

// Store writes each document as <prefix><document ID>.html.
// It implements pipeline.BatchLoader.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// Option adjusts client construction.
type Option func(*s3.Options)

// WithHTTPClient replaces the SDK transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *s3.Options) { o.HTTPClient = c }
}

// New builds a Store from the service configuration. Static credentials are
// used when both S3 keys are set, otherwise the default AWS chain.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Store, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		for _, opt := range opts {
			opt(o)
		}
	})
	return &Store{client: client, bucket: cfg.S3Bucket, prefix: cfg.S3Prefix, logger: logger}, nil
}

// Key returns the object key for a document ID.
func (s *Store) Key(id string) string {
	return s.prefix + id + ".html"
}

// LoadBatch uploads every event in order, stopping at the first failure.
func (s *Store) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	for i := range events {
		if err := s.put(ctx, events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(ctx context.Context, event domain.OutputEvent) error {
	key := s.Key(string(event.Key))
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(event.Value),
		ContentType: aws.String(event.ContentType),
		Metadata: map[string]string{
			MetaLayout:      event.Headers[domain.HeaderLayout],
			MetaGeneratedAt: event.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	s.logger.Debug("document stored", "bucket", s.bucket, "key", key, "bytes", len(event.Value))
	return nil
}
