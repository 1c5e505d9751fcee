package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ ports.AssetStorage = (*Storage)(nil)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// objectStore — используемая часть minio.Client.
type objectStore interface {
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
}

// Storage — изображения сущностей в S3-совместимом хранилище.
type Storage struct {
	cl     objectStore
	bucket string
	region string
}

func New(cfg Config) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// EnsureBucket — создаёт бакет, если его ещё нет.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.bucket, err)
	}
	if ok {
		return nil
	}
	if err := s.cl.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("make bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload — ключ объекта "<uuid><ext>", расширение берётся из имени файла.
func (s *Storage) Upload(ctx context.Context, asset *domain.Asset) (string, error) {
	if asset == nil || len(asset.Data) == 0 {
		return "", domain.InvalidArgument("asset", "")
	}
	key := uuid.NewString() + strings.ToLower(path.Ext(asset.Name))

	contentType := asset.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.cl.PutObject(ctx, s.bucket, key, bytes.NewReader(asset.Data), int64(len(asset.Data)),
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

// Delete — отсутствие объекта не ошибка.
func (s *Storage) Delete(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}
	if err := s.cl.RemoveObject(ctx, s.bucket, assetID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", assetID, err)
	}
	return nil
}
