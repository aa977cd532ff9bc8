package media

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

	"gamereviews/internal/http-api/models"
	"gamereviews/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const maxAssetBytes = 10 << 20

var errNotImage = errors.New("remote asset is not an image")

// ObjectPutter is the part of *s3.Client the mirror uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string // set for R2/MinIO style providers
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	Prefix          string
}

// NewS3Client builds an S3 client with static credentials.
func NewS3Client(opts S3Options) *s3.Client {
	return s3.New(s3.Options{
		Region:       opts.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		BaseEndpoint: endpointOrNil(opts.Endpoint),
		UsePathStyle: opts.Endpoint != "",
	})
}

func endpointOrNil(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

// S3Mirror downloads remote images and stores them under Prefix in Bucket.
type S3Mirror struct {
	putter     ObjectPutter
	bucket     string
	prefix     string
	publicURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewS3Mirror(putter ObjectPutter, opts S3Options, httpClient *http.Client, logger *slog.Logger) *S3Mirror {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &S3Mirror{
		putter:     putter,
		bucket:     opts.Bucket,
		prefix:     strings.Trim(opts.Prefix, "/"),
		publicURL:  strings.TrimRight(opts.PublicURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (m *S3Mirror) Upload(ctx context.Context, remoteURL, label string) (string, bool) {
	remoteURL = NormalizeURL(remoteURL)
	if remoteURL == "" {
		return "", false
	}

	ref, err := m.upload(ctx, remoteURL, label)
	if err != nil {
		metrics.MediaUploads.WithLabelValues("failure").Inc()
		m.logger.Warn("media_mirror_failed", "url", remoteURL, "label", label, "error", err)
		return "", false
	}
	metrics.MediaUploads.WithLabelValues("success").Inc()
	return ref, true
}

func (m *S3Mirror) upload(ctx context.Context, remoteURL, label string) (string, error) {
	if !strings.HasPrefix(remoteURL, "http://") && !strings.HasPrefix(remoteURL, "https://") {
		return "", fmt.Errorf("unsupported url %q", remoteURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxAssetBytes {
		return "", fmt.Errorf("asset larger than %d bytes", maxAssetBytes)
	}

	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		return "", errNotImage
	}

	key := m.objectKey(label, contentType)
	_, err = m.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return m.publicURL + "/" + key, nil
}

func (m *S3Mirror) objectKey(label, contentType string) string {
	name := models.Slugify(label)
	if name == "" {
		name = "asset"
	}
	key := fmt.Sprintf("%s-%s%s", name, uuid.NewString()[:8], extension(contentType))
	if m.prefix != "" {
		key = m.prefix + "/" + key
	}
	return key
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
