package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	appconfig "github.com/aghannam/manassa/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Blobs implements BlobStore against any S3-compatible endpoint (AWS,
// MinIO). Objects are addressed by generated keys; callers store the key on
// the media record so the object can be removed with it.
type S3Blobs struct {
	cfg *appconfig.Config
}

func NewS3Blobs(cfg *appconfig.Config) *S3Blobs {
	return &S3Blobs{cfg: cfg}
}

// randomStorageKey spreads objects by upload date to keep prefixes shallow.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (b *S3Blobs) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(b.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.cfg.S3RootUser,
			b.cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.cfg.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

func (b *S3Blobs) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(b.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.cfg.S3RootUser,
			b.cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.cfg.S3BaseEndpoint)
	}), nil
}

// PresignPut returns a fresh storage key and a presigned PUT URL valid for
// 15 minutes.
func (b *S3Blobs) PresignPut(ctx context.Context) (string, string, error) {
	presignClient, err := b.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := b.cfg.S3Bucket
	key := randomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignGet returns a presigned download URL for key, valid for 15 minutes.
func (b *S3Blobs) PresignGet(ctx context.Context, key string) (string, error) {
	presignClient, err := b.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := b.cfg.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// DeleteObject removes the stored object. Called best-effort when a media
// record is deleted.
func (b *S3Blobs) DeleteObject(ctx context.Context, key string) error {
	client, err := b.getClient(ctx)
	if err != nil {
		return err
	}

	bucket := b.cfg.S3Bucket
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err
}
