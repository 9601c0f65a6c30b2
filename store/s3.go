package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config addresses one object in an S3-compatible bucket.
type S3Config struct {
	Endpoint string
	Access   string
	Secret   string
	Region   string
	Bucket   string
	Object   string
	Secure   bool
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
}

// S3Blob stores the blob as a single object. Every save is a full PUT.
type S3Blob struct {
	mc      *minio.Client
	bucket  string
	object  string
	timeout time.Duration
}

func NewS3Blob(c S3Config) (*S3Blob, error) {
	if c.Endpoint == "" || c.Access == "" || c.Secret == "" || c.Bucket == "" || c.Object == "" {
		return nil, errors.New("must provide endpoint, access, secret, bucket and object")
	}
	mc, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.Access, c.Secret, ""),
		Region: c.Region,
		Secure: c.Secure,
	})
	if err != nil {
		return nil, err
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &S3Blob{mc: mc, bucket: c.Bucket, object: c.Object, timeout: timeout}, nil
}

func (b *S3Blob) String() string {
	return "s3://" + b.bucket + "/" + b.object
}

func (b *S3Blob) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.timeout)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func (b *S3Blob) Exists() (bool, error) {
	ctx, cancel := b.ctx()
	defer cancel()
	_, err := b.mc.StatObject(ctx, b.bucket, b.object, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, err
}

func (b *S3Blob) Read() ([]byte, error) {
	ctx, cancel := b.ctx()
	defer cancel()
	obj, err := b.mc.GetObject(ctx, b.bucket, b.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

func (b *S3Blob) Write(d []byte) error {
	ctx, cancel := b.ctx()
	defer cancel()
	_, err := b.mc.PutObject(ctx, b.bucket, b.object, bytes.NewReader(d), int64(len(d)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}
