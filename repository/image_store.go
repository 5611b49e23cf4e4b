package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	awspkg "marketplace-backend/pkg/aws"
)

// S3ImageStore keeps service images in an object-storage bucket. Uploads go
// straight from the client with a presigned PUT; the backend never proxies
// image bytes.
type S3ImageStore struct {
	client *s3.Client
	bucket string
}

func NewS3ImageStore(client *s3.Client, bucket string) *S3ImageStore {
	return &S3ImageStore{client: client, bucket: bucket}
}

// PresignUpload issues a short-lived presigned PUT URL for the given key.
func (s *S3ImageStore) PresignUpload(ctx context.Context, key string) (string, map[string]string, error) {
	return awspkg.GeneratePresignedPutURL(ctx, s.client, s.bucket, key, 300)
}

// Remove deletes the given keys from the bucket.
func (s *S3ImageStore) Remove(ctx context.Context, keys []string) error {
	return awspkg.DeleteObjects(ctx, s.client, s.bucket, keys)
}
