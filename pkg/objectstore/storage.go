package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned by Get when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// s3API is the subset of the S3 client used here
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options configures an S3-compatible bucket
type Options struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

// StorageClient stores objects in an S3-compatible bucket
type StorageClient struct {
	s3Client   s3API
	bucketName string
}

// NewStorageClient creates an S3 client for the configured bucket
func NewStorageClient(opts Options) (*StorageClient, error) {
	if opts.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}

	s3Opts := s3.Options{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"", // session token not needed
		),
	}
	if opts.Endpoint != "" {
		s3Opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3Opts.UsePathStyle = true
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", opts.BucketName),
		zap.String("endpoint", opts.Endpoint),
		zap.String("region", opts.Region),
	)

	return &StorageClient{
		s3Client:   s3.New(s3Opts),
		bucketName: opts.BucketName,
	}, nil
}

// Put uploads body under key
func (s *StorageClient) Put(ctx context.Context, key string, body []byte, contentType string) error {
	start := time.Now()
	operation := "putObject"

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		s.record(ctx, operation, "error", duration, zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}

	s.record(ctx, operation, "success", duration, zap.String("key", key), zap.Int("size_bytes", len(body)))
	return nil
}

// Get downloads the object stored under key
func (s *StorageClient) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	operation := "getObject"

	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			s.record(ctx, operation, "not_found", metrics.MeasureDuration(start), zap.String("key", key))
			return nil, ErrObjectNotFound
		}
		s.record(ctx, operation, "error", metrics.MeasureDuration(start), zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		s.record(ctx, operation, "error", metrics.MeasureDuration(start), zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	s.record(ctx, operation, "success", metrics.MeasureDuration(start), zap.String("key", key))
	return body, nil
}

func (s *StorageClient) record(ctx context.Context, operation, status string, duration float64, fields ...zap.Field) {
	metrics.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(ctx, "object_storage", operation, status, duration, fields...)
}
