package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store uploads objects to an S3 bucket with public-read URLs
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Store creates an S3-backed blob store
func NewS3Store(cfg aws.Config, bucket string) *S3Store {
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
