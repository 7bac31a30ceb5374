package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadResult identifies an uploaded object and its public URL.
type UploadResult struct {
	Key string
	URL string
}

// Uploader pushes a local file to object storage.
type Uploader interface {
	Upload(ctx context.Context, localPath, key string) (UploadResult, error)
}

// S3Uploader implements Uploader on top of S3, returning URLs under a CDN
// base (CloudFront distribution in front of the bucket).
type S3Uploader struct {
	uploader   *manager.Uploader
	bucket     string
	cdnBaseURL string
}

func NewS3Uploader(client *s3.Client, bucket, cdnBaseURL string) *S3Uploader {
	return &S3Uploader{
		uploader:   manager.NewUploader(client),
		bucket:     bucket,
		cdnBaseURL: strings.TrimSuffix(cdnBaseURL, "/"),
	}
}

func (u *S3Uploader) Upload(ctx context.Context, localPath, key string) (UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload s3://%s/%s: %w", u.bucket, key, err)
	}
	return UploadResult{Key: key, URL: u.cdnBaseURL + "/" + key}, nil
}
