package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/saransh1220/limbgen/internal/modules/volumes/domain"
)

// S3Config holds configuration for S3/MinIO volume storage
type S3Config struct {
	BucketName     string
	Region         string
	Endpoint       string // Internal endpoint (e.g., minio:9000)
	PublicEndpoint string // Endpoint the browser viewer can reach (e.g., localhost:9000)
	AccessKey      string
	SecretKey      string
	UseSSL         bool
}

// S3Store implements VolumeStore using AWS S3 or MinIO
type S3Store struct {
	client        *s3.Client
	presignClient *s3.Client // signs against the public endpoint so the viewer can fetch
	config        S3Config
}

// NewS3Store creates a new S3 volume store
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// MinIO / LocalStack
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		)
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true // Required for MinIO
		}
	})

	presignClient := client
	if cfg.Endpoint != "" && cfg.PublicEndpoint != "" {
		presignClient = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpointURL(cfg.PublicEndpoint, cfg.UseSSL))
			o.UsePathStyle = true
		})
	}

	return &S3Store{
		client:        client,
		presignClient: presignClient,
		config:        cfg,
	}, nil
}

// Put uploads a volume to the bucket and returns its public URL
func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if err := domain.ValidateKey(key); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload volume to s3: %w", err)
	}

	return s.publicURL(key), nil
}

// Reference mints a presigned GET URL for key
func (s *S3Store) Reference(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := domain.ValidateKey(key); err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(s.presignClient)
	request, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign volume url: %w", err)
	}

	return request.URL, nil
}

// Delete removes a volume from the bucket
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := domain.ValidateKey(key); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete volume from s3: %w", err)
	}
	return nil
}

// KeyFromReference extracts the storage key from a public or presigned URL
func (s *S3Store) KeyFromReference(ref string) (string, error) {
	// presigned URLs carry the signature in the query
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref = ref[:i]
	}

	for _, endpoint := range []string{s.config.PublicEndpoint, s.config.Endpoint} {
		if endpoint == "" {
			continue
		}
		prefix := fmt.Sprintf("%s/%s/", endpointURL(endpoint, s.config.UseSSL), s.config.BucketName)
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix), nil
		}
	}

	if s.config.Endpoint == "" {
		prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.config.BucketName, s.config.Region)
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix), nil
		}
	}

	return "", fmt.Errorf("%w: %s", domain.ErrForeignURL, ref)
}

func (s *S3Store) publicURL(key string) string {
	if s.config.PublicEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpointURL(s.config.PublicEndpoint, s.config.UseSSL), s.config.BucketName, key)
	}
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpointURL(s.config.Endpoint, s.config.UseSSL), s.config.BucketName, key)
	}
	// S3: https://bucket.s3.region.amazonaws.com/results/job_seg.nii.gz
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.BucketName, s.config.Region, key)
}

// endpointURL adds a scheme to bare host:port endpoints
func endpointURL(endpoint string, useSSL bool) string {
	if hasHTTPPrefix(endpoint) {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// hasHTTPPrefix checks if a string has http:// or https:// prefix
func hasHTTPPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
