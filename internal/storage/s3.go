// Package storage stores driver photos in an S3-compatible bucket
// (MinIO in development). The database only ever holds object keys;
// URLs are resolved on demand.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config carries the bucket coordinates. PublicBaseURL is optional: when
// set, photo URLs are composed from it; otherwise a short-lived presigned
// GET is issued per request.
type Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type Client struct {
	api     *s3.Client
	presign *s3.PresignClient
	cfg     Config
}

// New builds an S3 client for the configured endpoint. Path-style
// addressing is used so MinIO works without virtual-host DNS.
func New(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")))
	if err != nil {
		return nil, err
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Client{api: api, presign: s3.NewPresignClient(api), cfg: cfg}, nil
}

// ObjectKey builds a collision-free key under folder, bucketed by date:
// people/2026/08/31/<uuid>.jpg.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	d := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", folder, d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}

// Upload stores one object and returns its key.
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// ResolveURL turns a stored key into a fetchable URL: a plain public URL
// when a base is configured, a presigned GET otherwise.
func (c *Client) ResolveURL(ctx context.Context, key string) (string, error) {
	if c.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(c.cfg.PublicBaseURL, "/") + "/" + key, nil
	}
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
