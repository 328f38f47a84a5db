// Package objectstore implements store.KVStore on S3-compatible object
// storage using minio-go. Each key is stored as one JSON object.
//
// Object storage offers no compare-and-swap, so concurrent writers of the
// same key in different processes can overwrite each other.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/phrazzld/signdeck/internal/store"
)

// Config holds connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const objectPrefix = "kv/"

// Store is an object-storage-backed key-value store.
type Store struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

var _ store.KVStore = (*Store)(nil)

// Open connects to the endpoint in cfg and creates the bucket if it does
// not exist yet.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: checking bucket %q: %w", store.ErrUnavailable, cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info("created bucket", slog.String("bucket", cfg.Bucket))
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.With(slog.String("component", "objectstore_kv")),
	}, nil
}

// Get implements store.KVStore.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", false, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return "", false, store.NewStoreError("kv", "get", "request failed", mapError(err))
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, store.NewStoreError("kv", "get", "read failed", mapError(err))
	}
	return string(data), true, nil
}

// Set implements store.KVStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName(key),
		strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return store.NewStoreError("kv", "set", "upload failed", mapError(err))
	}
	return nil
}

// Close implements store.KVStore. The minio client holds no resources that
// need releasing.
func (s *Store) Close() error {
	return nil
}

func objectName(key string) string {
	return objectPrefix + key + ".json"
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func mapError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == 0 || resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return err
}
