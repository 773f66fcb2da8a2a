// Package storage keeps uploaded equipment photos and BOM images, either
// in a MinIO bucket or in a local directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/xelth-com/linerecords/internal/config"
	"github.com/xelth-com/linerecords/internal/logs"
)

var log = logs.WithComponent("storage")

// ErrBadKey is returned for object keys that escape the store
var ErrBadKey = errors.New("invalid object key")

// Store saves and serves uploaded files by key
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// New returns a MinIO store when an endpoint is configured, a disk store otherwise
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	if cfg.UseMinio() {
		return NewMinio(ctx, cfg)
	}
	return NewDisk(cfg.Dir)
}

// ObjectKey builds a unique key under prefix keeping the extension of filename
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(prefix, uuid.New().String()+ext)
}

func cleanKey(key string) (string, error) {
	k := path.Clean("/" + key)[1:]
	if k == "" || strings.HasPrefix(k, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	return k, nil
}

// DiskStore writes objects below a directory
type DiskStore struct {
	dir string
}

// NewDisk creates dir if needed and returns a store rooted there
func NewDisk(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	log.Infof("storing uploads in %s", dir)
	return &DiskStore{dir: dir}, nil
}

func (d *DiskStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	full := filepath.Join(d.dir, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d *DiskStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(d.dir, filepath.FromSlash(k)))
}

// MinioStore keeps objects in a MinIO bucket
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to MinIO and makes sure the bucket exists
func NewMinio(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		log.Infof("created bucket %s", cfg.MinioBucket)
	}
	return &MinioStore{client: client, bucket: cfg.MinioBucket}, nil
}

func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, k, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", k, err)
	}
	return nil
}

func (m *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	obj, err := m.client.GetObject(ctx, m.bucket, k, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	// GetObject is lazy, missing keys only surface on the first request
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", k, os.ErrNotExist)
		}
		return nil, fmt.Errorf("stat object: %w", err)
	}
	return obj, nil
}
