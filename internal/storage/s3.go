package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/yourname/fitplanner/internal"
)

// s3ObjectGetter is the part of *s3.Client that S3Catalog needs.
type s3ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Catalog serves a catalog snapshot read from a JSON object in S3.
// Refresh re-reads the object and swaps the snapshot in place.
type S3Catalog struct {
	*MemoryCatalog

	client s3ObjectGetter
	bucket string
	key    string
	logger internal.Logger
}

// NewS3Catalog loads the default AWS configuration (environment, shared
// config, instance role) and reads the catalog once.
func NewS3Catalog(ctx context.Context, bucket, key string, logger internal.Logger) (*S3Catalog, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return newS3Catalog(ctx, s3.NewFromConfig(cfg), bucket, key, logger)
}

func newS3Catalog(ctx context.Context, client s3ObjectGetter, bucket, key string, logger internal.Logger) (*S3Catalog, error) {
	c := &S3Catalog{
		MemoryCatalog: NewMemoryCatalog(nil),
		client:        client,
		bucket:        bucket,
		key:           key,
		logger:        logger,
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *S3Catalog) Refresh(ctx context.Context) error {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key),
	})
	if err != nil {
		c.logger.Errorf("storage: failed to fetch s3://%s/%s: %v", c.bucket, c.key, err)
		return fmt.Errorf("storage: fetch catalog: %w", err)
	}
	defer out.Body.Close()

	catalog, err := DecodeCatalog(out.Body)
	if err != nil {
		return err
	}
	c.Replace(catalog)
	c.logger.Infof("storage: loaded catalog from s3://%s/%s (%d recipes)", c.bucket, c.key, len(catalog.Recipes))
	return nil
}

var _ CatalogRepository = (*S3Catalog)(nil)
