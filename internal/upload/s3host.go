// Copyright (c) 2026 Savora. All rights reserved.

package upload

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/savora-app/savora/internal/platform/constants"
)

// S3HostConfig configures the S3-compatible image host.
type S3HostConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string

	// Endpoint overrides the AWS endpoint for S3-compatible providers
	// (MinIO, R2, Spaces). Empty means real AWS.
	Endpoint string

	// PublicBaseURL is the CDN or bucket base the returned URLs point at.
	PublicBaseURL string
}

// S3Host stores images in an S3-compatible bucket.
//
// Outbound calls go through a token-bucket limiter so a burst of member
// uploads cannot trip the host's own rate limiting.
type S3Host struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	limiter       *rate.Limiter
}

// NewS3Host builds the S3 client with static credentials and an optional
// custom endpoint.
func NewS3Host(ctx context.Context, cfg S3HostConfig) (*S3Host, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("upload: failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing for S3-compatible providers.
			options.UsePathStyle = true
		}
	})

	return &S3Host{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		limiter:       rate.NewLimiter(rate.Limit(constants.UploadHostRPS), constants.UploadHostBurst),
	}, nil
}

// Store uploads the image bytes and returns the public URL.
func (host *S3Host) Store(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := host.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("upload: throttle wait aborted: %w", err)
	}

	_, err := host.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(host.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload: put object failed: %w", err)
	}

	return host.publicBaseURL + "/" + key, nil
}

var _ Host = (*S3Host)(nil)
