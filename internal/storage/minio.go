package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linskybing/formify-go/internal/config"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore keeps export archives.
type ObjectStore interface {
	UploadObject(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// MinioStore is an ObjectStore backed by one MinIO bucket.
type MinioStore struct {
	Client     *minioSDK.Client
	BucketName string
}

// NewMinioStore connects with the configured credentials and creates the
// bucket if it does not exist yet.
func NewMinioStore(ctx context.Context) (*MinioStore, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:     credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure:    config.MinioUseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	bucket := config.MinioBucket
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		log.Printf("[Storage] bucket created: %s", bucket)
	} else {
		log.Printf("[Storage] using bucket: %s", bucket)
	}

	return &MinioStore{Client: client, BucketName: bucket}, nil
}

func (s *MinioStore) UploadObject(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error {
	if strings.TrimSpace(objectName) == "" {
		return fmt.Errorf("object name cannot be empty")
	}
	_, err := s.Client.PutObject(ctx, s.BucketName, objectName, r, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// PresignedURL returns a time-limited download link that sets the file name
// of the object.
func (s *MinioStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf(`attachment; filename="%s"`, objectName[strings.LastIndex(objectName, "/")+1:]))
	u, err := s.Client.PresignedGetObject(ctx, s.BucketName, objectName, expiry, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *MinioStore) DeleteObject(ctx context.Context, objectName string) error {
	return s.Client.RemoveObject(ctx, s.BucketName, objectName, minioSDK.RemoveObjectOptions{})
}
