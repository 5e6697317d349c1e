package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/kevinaaaquil/portfolio/backend/models"
)

type ImageStoreOptions struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL replaces the virtual-hosted bucket URL in returned links (CDN, custom domain).
	PublicBaseURL string
	// Endpoint points the client at an S3-compatible service and switches to path-style keys.
	Endpoint string
}

// ImageStore uploads item images to S3 and returns their public URLs.
type ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewImageStore(ctx context.Context, opts ImageStoreOptions, optFns ...func(*s3.Options)) (*ImageStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required")
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	if opts.Endpoint != "" {
		optFns = append([]func(*s3.Options){func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}}, optFns...)
	}

	base := strings.TrimRight(opts.PublicBaseURL, "/")
	switch {
	case base != "":
	case opts.Endpoint != "":
		base = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
	return &ImageStore{
		client:  s3.NewFromConfig(cfg, optFns...),
		bucket:  opts.Bucket,
		baseURL: base,
	}, nil
}

// imageKey returns images/<category>/<uuid><ext>, keeping only the lower-cased extension of the upload.
func imageKey(cat models.Category, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("images", string(cat), uuid.New().String()+ext)
}

// Upload stores body under a fresh key for cat and returns the public URL.
func (s *ImageStore) Upload(ctx context.Context, cat models.Category, filename string, body io.Reader, contentType string) (string, error) {
	key := imageKey(cat, filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *ImageStore) URL(key string) string {
	return s.baseURL + "/" + key
}
