package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"house-insights/models"
)

// S3Config holds the connection settings for S3-compatible backends (AWS S3 or MinIO).
type S3Config struct {
	Region    string
	Endpoint  string // optional; enables a custom endpoint
	PathStyle bool
}

// S3Reader reads a CSV object from S3.
type S3Reader struct {
	cfg    S3Config
	source string
	bucket string
	key    string
}

// NewS3Reader parses an s3://bucket/key source.
func NewS3Reader(source string, cfg S3Config) (*S3Reader, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("s3: parse %q: %w", source, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return nil, fmt.Errorf("s3: source must look like s3://bucket/key, got %q", source)
	}
	return &S3Reader{cfg: cfg, source: source, bucket: u.Host, key: key}, nil
}

// ReadSales downloads the object and parses it as CSV.
func (r *S3Reader) ReadSales(ctx context.Context) (*models.Dataset, error) {
	region := r.cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if r.cfg.PathStyle {
			o.UsePathStyle = true
		}
		if r.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(r.cfg.Endpoint)
		}
	})

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: get %s/%s: %w", r.bucket, r.key, err)
	}
	defer out.Body.Close()

	return ParseCSV(r.source, out.Body)
}
