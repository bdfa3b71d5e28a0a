// Package objectstore stores card photos in an S3-compatible bucket and
// builds the public URLs visitors load them from.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// DefaultBucket is the bucket card photos are written to.
const DefaultBucket = "profile-photos"

// Options describes how to reach the bucket.
type Options struct {
	Region     string
	User       string
	Password   string
	Endpoint   string
	Bucket     string
	PublicBase string // defaults to Endpoint
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements photo.ObjectStore over aws-sdk-go-v2.
type S3Store struct {
	client     putObjectAPI
	bucket     string
	publicBase string
}

// New builds an S3Store with static credentials, a custom base endpoint and
// path-style addressing, which is what MinIO expects.
func New(ctx context.Context, opts Options) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.User,
			opts.Password,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	})

	return newStore(client, opts), nil
}

func newStore(client putObjectAPI, opts Options) *S3Store {
	bucket := opts.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}
	base := opts.PublicBase
	if base == "" {
		base = opts.Endpoint
	}
	return &S3Store{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(base, "/"),
	}
}

// Bucket returns the bucket objects are written to.
func (s *S3Store) Bucket() string { return s.bucket }

// Upload writes data under name with the given content type.
func (s *S3Store) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

// PublicURL returns <public base>/<bucket>/<name>.
func (s *S3Store) PublicURL(name string) string {
	return s.publicBase + "/" + url.PathEscape(s.bucket) + "/" + url.PathEscape(name)
}
