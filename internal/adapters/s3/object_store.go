package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"IdentityIntake/internal/core/ports"
	sc "IdentityIntake/internal/shared/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// objectStore implements the ObjectStore interface against any
// S3-compatible endpoint (MinIO, Arvan, AWS). The client is built once at
// startup from static credentials and a custom base endpoint.
type objectStore struct {
	client  *awss3.Client
	timeout time.Duration
	log     zerolog.Logger
}

var _ ports.ObjectStore = (*objectStore)(nil) // Ensure compliance

// NewObjectStore creates the S3-backed object store.
func NewObjectStore(ctx context.Context, cfg sc.S3Config, timeout time.Duration, baseLogger *zerolog.Logger) (ports.ObjectStore, error) {
	log := baseLogger.With().Str("component", "object_store").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"", // session token not needed for static keys
		)))
	if err != nil {
		log.Error().Err(err).Msg("Failed to load S3 client configuration")
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(cfg.Address)
		o.UsePathStyle = true
	})

	log.Info().Str("endpoint", cfg.Address).Msg("Object store client initialized")
	return &objectStore{client: client, timeout: timeout, log: log}, nil
}

// Upload creates or overwrites the object at key with a private canned ACL.
// Same key overwrites, so retried submissions are idempotent from the
// caller's perspective. The call is bounded by the configured timeout.
func (s *objectStore) Upload(ctx context.Context, bucket, key string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		s.log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("Failed to upload object")
		return fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}

	s.log.Info().Str("bucket", bucket).Str("key", key).Msg("Object uploaded")
	return nil
}
