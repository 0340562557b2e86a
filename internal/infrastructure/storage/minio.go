// Package storage archives raw CSV uploads in object storage so every
// ingestion run can be audited and replayed.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/pkg/config"
)

// MinIOArchiver stores uploaded CSV files in a MinIO bucket
type MinIOArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchiver creates an archiver and ensures the bucket exists
func NewMinIOArchiver(cfg *config.StorageConfig) (*MinIOArchiver, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archiver := &MinIOArchiver{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	if err := archiver.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return archiver, nil
}

func (m *MinIOArchiver) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Archive stores the raw upload under uploads/<date>/<run-id>/<filename> and
// returns the object name
func (m *MinIOArchiver) Archive(ctx context.Context, runID, filename string, data []byte) (string, error) {
	objectName := path.Join(
		"uploads",
		time.Now().UTC().Format("2006-01-02"),
		runID,
		path.Base(filename),
	)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", apperrors.ErrStorageUnavailable(err)
	}
	return objectName, nil
}
