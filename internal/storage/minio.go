package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStore keeps submissions, profile photos and certificates in object
// storage.
type MinioStore struct {
	client   *minio.Client
	endpoint string
	useSSL   bool
	logger   *zap.Logger
}

func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, endpoint: endpoint, useSSL: useSSL, logger: logger}, nil
}

// EnsureBuckets creates any missing buckets at startup.
func (s *MinioStore) EnsureBuckets(ctx context.Context, buckets ...string) error {
	for _, bucket := range buckets {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("checking bucket %s: %w", bucket, err)
		}
		if exists {
			continue
		}
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %s: %w", bucket, err)
		}
		s.logger.Info("bucket created", zap.String("bucket", bucket))
	}
	return nil
}

func (s *MinioStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return bucket + "/" + key, nil
}

func (s *MinioStore) PublicURL(bucket, key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucket, key)
}
