package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var _ ArtifactStore = (*S3Store)(nil)

// S3Config holds the connection settings for the artifact bucket. Endpoint
// is the base URL of an S3-compatible server (AWS, MinIO, ...); the bucket
// must exist and allow public reads, since stored plan URLs are handed out
// to clients directly.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3Store implements ArtifactStore against an S3-compatible bucket.
// The client is built once at construction and injected wherever needed;
// there is no process-wide lazily-initialized singleton.
type S3Store struct {
	client   *s3.Client
	http     *http.Client
	endpoint string
	bucket   string
	logger   *slog.Logger
}

// NewS3Store builds the S3 client with static credentials and a custom base
// endpoint, and verifies nothing — a bad endpoint surfaces on first use.
func NewS3Store(cfg S3Config, logger *slog.Logger) (*S3Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("storage: endpoint and bucket are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:   client,
		http:     &http.Client{Timeout: 30 * time.Second},
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		bucket:   cfg.Bucket,
		logger:   logger,
	}, nil
}

// PublicURL maps a storage key to its stable retrieval URL.
func (s *S3Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}

// Put deletes any previous object at key, then uploads the new bytes.
// The delete is tolerant of failure — the object may simply not exist yet —
// so its error is logged at debug and dropped. Only the upload is fatal.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		s.logger.Debug("pre-upload delete failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("storage: uploading %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// Fetch retrieves the stored bytes by plain HTTP GET of the public URL.
func (s *S3Store) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: building fetch request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage: fetching %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: reading %s: %w", url, err)
	}
	return data, nil
}

// Remove deletes the object at key. A missing object is not an error.
func (s *S3Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		return fmt.Errorf("storage: removing %s: %w", key, err)
	}
	return nil
}
