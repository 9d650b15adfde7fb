package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"

	"github.com/pcist/pcist-backend/internal/config"
	ierr "github.com/pcist/pcist-backend/internal/errors"
)

const presignExpiry = 30 * time.Minute

// Bucket selects which of the two configured buckets an operation targets.
type Bucket string

const (
	BucketDocuments Bucket = "documents"
	BucketGallery   Bucket = "gallery"
)

type Service interface {
	Upload(ctx context.Context, bucket Bucket, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, bucket Bucket, key string) ([]byte, error)
	PresignedURL(ctx context.Context, bucket Bucket, key string) (string, error)
	Exists(ctx context.Context, bucket Bucket, key string) (bool, error)
}

type s3Service struct {
	client *s3.Client
	config *config.S3Config
}

// NewService returns nil when S3 is disabled; callers treat a nil service
// as "keep documents in the database only".
func NewService(cfg *config.Configuration) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3Service{
		config: &cfg.S3,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

// DocumentKey derives a content-addressed object key, so re-uploading the
// same rendered bytes is idempotent and a changed rendering never
// overwrites the copy that was already delivered.
func DocumentKey(serial string, pdf []byte) string {
	sum := sha256.Sum256(pdf)
	return fmt.Sprintf("%s-%s.pdf", serial, hex.EncodeToString(sum[:])[:12])
}

func (s *s3Service) bucketConfig(bucket Bucket) config.BucketConfig {
	if bucket == BucketGallery {
		return s.config.Gallery
	}
	return s.config.Documents
}

func (s *s3Service) objectKey(bucket Bucket, key string) string {
	if prefix := s.bucketConfig(bucket).KeyPrefix; prefix != "" {
		return prefix + "/" + key
	}
	return key
}

func (s *s3Service) Upload(ctx context.Context, bucket Bucket, key string, data []byte, contentType string) (string, error) {
	bucketName := s.bucketConfig(bucket).Bucket
	fullKey := s.objectKey(bucket, key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to upload object").
			WithMessagef("bucket:%s, key:%s", bucketName, fullKey).
			Mark(ierr.ErrHTTPClient)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, s.config.Region, fullKey), nil
}

func (s *s3Service) Get(ctx context.Context, bucket Bucket, key string) ([]byte, error) {
	bucketName := s.bucketConfig(bucket).Bucket
	fullKey := s.objectKey(bucket, key)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ierr.WithError(err).
				WithHintf("object %s not found", fullKey).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get object").
			WithMessagef("bucket:%s, key:%s", bucketName, fullKey).
			Mark(ierr.ErrHTTPClient)
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}

func (s *s3Service) PresignedURL(ctx context.Context, bucket Bucket, key string) (string, error) {
	bucketName := s.bucketConfig(bucket).Bucket
	fullKey := s.objectKey(bucket, key)

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fullKey),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to presign object url").
			WithMessagef("bucket:%s, key:%s", bucketName, fullKey).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}

func (s *s3Service) Exists(ctx context.Context, bucket Bucket, key string) (bool, error) {
	bucketName := s.bucketConfig(bucket).Bucket
	fullKey := s.objectKey(bucket, key)

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("failed to check object").
			WithMessagef("bucket:%s, key:%s", bucketName, fullKey).
			Mark(ierr.ErrHTTPClient)
	}
	return true, nil
}
