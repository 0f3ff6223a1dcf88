// Package storage archives raw bulk-import files in S3-compatible object
// storage so a problematic import can be audited afterwards.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Iamalive23802/Dream-Trade/platform/config"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImportArchive stores raw import files in a MinIO bucket.
type ImportArchive struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// NewImportArchive connects to MinIO and ensures the bucket exists. Returns
// (nil, nil) when object storage is not configured; imports then simply skip
// archival.
func NewImportArchive(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*ImportArchive, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, nil
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	bucket := cfg.GetMinioBucketImportFiles()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &ImportArchive{client: client, bucket: bucket, log: log}, nil
}

// Archive stores the file under a timestamped key.
func (a *ImportArchive) Archive(ctx context.Context, filename, contentType string, data []byte) error {
	key := fmt.Sprintf("%s/%s", time.Now().UTC().Format("2006/01/02"), filename)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}

	a.log.Info("import file archived", "bucket", a.bucket, "key", key)
	return nil
}
