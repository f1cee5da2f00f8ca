package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "studio-backend/pkg/errors"
)

type fakeS3 struct {
	putInput *s3.PutObjectInput
	putErr   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPutReturnsPublicURL(t *testing.T) {
	client := &fakeS3{}
	store := NewImageStore(client, "studio-banner-images", "https://img.example.com", zap.NewNop())

	url, err := store.Put(context.Background(), "banner_2026.png", []byte("png"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://img.example.com/banner_2026.png", url)
	assert.Equal(t, "studio-banner-images", *client.putInput.Bucket)
	assert.Equal(t, "image/png", *client.putInput.ContentType)
}

func TestPutRejectsEmptyKey(t *testing.T) {
	store := NewImageStore(&fakeS3{}, "bucket", "https://img.example.com", zap.NewNop())

	_, err := store.Put(context.Background(), "", []byte("png"), "image/png")
	assert.True(t, apperrors.IsValidation(err))
}

func TestPutWrapsUpstreamError(t *testing.T) {
	store := NewImageStore(&fakeS3{putErr: errors.New("denied")}, "bucket", "https://img.example.com", zap.NewNop())

	_, err := store.Put(context.Background(), "k.png", []byte("png"), "image/png")
	assert.True(t, apperrors.IsUpstreamFailure(err))
}

func TestImageKey(t *testing.T) {
	key := ImageKey("banner.png", "2026-08-31 10:00:00")
	assert.Equal(t, "banner_2026-08-31 10:00:00.png", key)

	key = ImageKey("noext", "2026-08-31 10:00:00")
	assert.Equal(t, "noext_2026-08-31 10:00:00", key)
}
