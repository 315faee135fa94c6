package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Backend keeps one object per key in an S3 bucket, under a prefix.
type S3Backend struct {
	client s3iface.S3API
	bucket string
	region string
	prefix string
	logger *slog.Logger

	mu           sync.Mutex
	bucketExists bool
}

// NewS3Backend creates a backend using the default AWS credential chain.
func NewS3Backend(bucket, region, prefix string, logger *slog.Logger) (*S3Backend, error) {
	sess, err := session.NewSession(aws.NewConfig().WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return NewS3BackendWithClient(s3.New(sess), bucket, region, prefix, logger), nil
}

// NewS3BackendWithClient creates a backend around an existing client.
func NewS3BackendWithClient(client s3iface.S3API, bucket, region, prefix string, logger *slog.Logger) *S3Backend {
	return &S3Backend{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		logger: logger,
	}
}

func (b *S3Backend) objectKey(key string) string {
	return path.Join(b.prefix, key)
}

// Location returns the s3:// URL for key.
func (b *S3Backend) Location(key string) string {
	return "s3://" + b.bucket + "/" + b.objectKey(key)
}

// ensureBucket creates the bucket on first use. A bucket that already
// exists, or that we already own, is fine.
func (b *S3Backend) ensureBucket() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bucketExists {
		return nil
	}

	_, err := b.client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(b.bucket)})
	if err == nil {
		b.bucketExists = true
		return nil
	}
	if !isAWSNotFound(err) {
		return fmt.Errorf("failed to check bucket %s: %w", b.bucket, err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(b.bucket)}
	if b.region != "" && b.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(b.region),
		}
	}
	if _, err := b.client.CreateBucket(input); err != nil {
		var aerr awserr.Error
		if !errors.As(err, &aerr) || aerr.Code() != s3.ErrCodeBucketAlreadyOwnedByYou {
			return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
		}
	}

	b.logger.Info("created bucket", "bucket", b.bucket, "region", b.region)
	b.bucketExists = true
	return nil
}

// Put uploads data under key.
func (b *S3Backend) Put(key string, data io.Reader) error {
	if err := b.ensureBucket(); err != nil {
		return err
	}

	// PutObject needs a seekable body.
	body, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("failed to buffer object: %w", err)
	}

	_, err = b.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.objectKey(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", b.Location(key), err)
	}

	b.logger.Debug("uploaded object", "location", b.Location(key), "bytes", len(body))
	return nil
}

// Get downloads the object under key.
func (b *S3Backend) Get(key string) (io.ReadCloser, error) {
	out, err := b.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		if isAWSNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, b.Location(key))
		}
		return nil, fmt.Errorf("failed to download %s: %w", b.Location(key), err)
	}
	return out.Body, nil
}

func isAWSNotFound(err error) bool {
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) && reqErr.StatusCode() == http.StatusNotFound {
		return true
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return true
		}
	}
	return false
}
