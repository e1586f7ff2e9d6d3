package objstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/cloudshelf/internal/common"
	sc "github.com/dmitrijs2005/cloudshelf/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// S3Gateway implements Gateway over an S3 or S3-compatible backend.
type S3Gateway struct {
	client       *s3.Client
	bucket       string
	region       string
	baseEndpoint string
}

// NewS3Gateway builds the S3 client from static credentials in cfg. When
// S3BaseEndpoint is set (MinIO and friends), it overrides the AWS endpoint
// and public URLs switch to path style.
func NewS3Gateway(ctx context.Context, cfg *sc.Config) (*S3Gateway, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Gateway{
		client:       client,
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		baseEndpoint: strings.TrimSuffix(cfg.S3BaseEndpoint, "/"),
	}, nil
}

func (g *S3Gateway) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := putObject(g.client, ctx, &s3.PutObjectInput{
		Bucket:      &g.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (g *S3Gateway) Delete(ctx context.Context, key string) error {
	_, err := deleteObject(g.client, ctx, &s3.DeleteObjectInput{
		Bucket: &g.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

// PublicURL resolves the object's public address: virtual-hosted AWS URL, or
// path style against the configured base endpoint.
func (g *S3Gateway) PublicURL(key string) string {
	if g.baseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", g.baseEndpoint, g.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.bucket, g.region, key)
}
