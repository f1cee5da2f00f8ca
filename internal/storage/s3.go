// Package storage persists uploaded images to object storage and hands
// back the public URL the frontend embeds.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	apperrors "studio-backend/pkg/errors"
)

// API is the slice of the S3 client the store uses.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore writes images into one bucket under a fixed prefix.
type ImageStore struct {
	client  API
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewImageStore creates an image store over one bucket. baseURL is the
// public root objects are served from, without a trailing slash.
func NewImageStore(client API, bucket, baseURL string, logger *zap.Logger) *ImageStore {
	return &ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Put stores an image under key and returns its public URL.
func (s *ImageStore) Put(ctx context.Context, key string, image []byte, contentType string) (string, error) {
	if key == "" {
		return "", apperrors.NewValidation("image key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apperrors.NewUpstreamFailure("image upload failed", err)
	}

	s.logger.Debug("image stored", zap.String("bucket", s.bucket), zap.String("key", key))
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// ImageKey builds a timestamped object key from an uploaded filename, so
// re-uploads of the same file never clobber each other.
func ImageKey(filename, timestamp string) string {
	ext := path.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", name, timestamp, ext)
}
