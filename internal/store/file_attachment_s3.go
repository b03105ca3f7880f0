package store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
)

// s3API is the part of *s3.Client used by s3AttachmentStorage.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3AttachmentStorage keeps attachments as objects of one bucket, keyed by
// the attachment key.
type s3AttachmentStorage struct {
	client s3API
	bucket string
	logger *logger.Logger
}

// NewS3AttachmentStorage builds an S3 client from cfg. Static credentials are
// used when an access key is configured, otherwise the default AWS chain.
// A custom endpoint switches to path-style addressing for MinIO.
func NewS3AttachmentStorage(ctx context.Context, cfg config.S3, logger *logger.Logger) (AttachmentStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 attachment storage")
	return newS3AttachmentStorage(client, cfg.Bucket, logger), nil
}

func newS3AttachmentStorage(client s3API, bucket string, logger *logger.Logger) *s3AttachmentStorage {
	return &s3AttachmentStorage{client: client, bucket: bucket, logger: logger}
}

func (s *s3AttachmentStorage) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrAttachmentKeyInvalid)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3AttachmentStorage.Put").Str("key", key).Msg("error uploading attachment")
		return fmt.Errorf("error uploading attachment to s3: %w", err)
	}

	return nil
}

// Delete removes the object. S3 reports success for missing keys.
func (s *s3AttachmentStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrAttachmentKeyInvalid)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3AttachmentStorage.Delete").Str("key", key).Msg("error deleting attachment")
		return fmt.Errorf("error deleting attachment from s3: %w", err)
	}

	return nil
}
