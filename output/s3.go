package output

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the part of the S3 client the uploader needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Uploader uploads documents to a bucket under an optional key prefix.
type S3Uploader struct {
	Client ObjectAPI
	Bucket string
	Prefix string
}

// NewS3Uploader creates a new uploader.
func NewS3Uploader(cfg aws.Config, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: prefix,
	}
}

// Key returns the object key for name.
func (u *S3Uploader) Key(name string) string {
	prefix := strings.Trim(u.Prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// Save implements Sink. PutObject is atomic on the S3 side.
func (u *S3Uploader) Save(ctx context.Context, name string, b []byte) (string, error) {
	key := u.Key(name)

	slog.Info("Uploading to S3", "bucket", u.Bucket, "key", key)

	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(b),
		ContentLength: aws.Int64(int64(len(b))),
		ContentType:   aws.String(ContentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return "s3://" + u.Bucket + "/" + key, nil
}

// Remove deletes the object saved for name.
func (u *S3Uploader) Remove(ctx context.Context, name string) error {
	key := u.Key(name)
	slog.Info("Deleting from S3", "bucket", u.Bucket, "key", key)
	_, err := u.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

// DocxContentType is the media type of a Word document.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ContentType guesses the media type of a saved file from its name.
func ContentType(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".docx") {
		return DocxContentType
	}
	return "application/octet-stream"
}
