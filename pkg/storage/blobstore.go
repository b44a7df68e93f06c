package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the gateway contract to a bucket-oriented object store.
// Implementations return a public URL for every stored blob; the portal keeps
// only that URL on its records.
type BlobStore interface {
	EnsureBucket(name string, public bool) error
	Put(bucket, path string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
	Open(bucket, path string) (*os.File, error)
}

// LocalBucketStore keeps buckets as directories under a base dir and serves
// them from a configured public base URL.
type LocalBucketStore struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalBucketStore ensures the base directory exists and returns a handle.
func NewLocalBucketStore(baseDir, publicBaseURL string) (*LocalBucketStore, error) {
	if baseDir == "" {
		baseDir = "./storage"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalBucketStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket directory when missing. The public flag is
// carried for hosted backends; the filesystem backend serves everything
// through the same base URL.
func (s *LocalBucketStore) EnsureBucket(name string, public bool) error {
	if name == "" {
		return fmt.Errorf("bucket name required")
	}
	if err := os.MkdirAll(filepath.Join(s.baseDir, name), 0o755); err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	return nil
}

// Put writes the blob and returns its public URL. The content type is not
// persisted by the filesystem backend; it is part of the gateway contract for
// object stores that record it.
func (s *LocalBucketStore) Put(bucket, path string, data []byte, contentType string) (string, error) {
	full := s.resolve(bucket, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("prepare blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.PublicURL(bucket, path), nil
}

// PublicURL derives the URL a stored blob is reachable at.
func (s *LocalBucketStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, strings.TrimLeft(path, "/"))
}

// Open returns a read-only handle for a stored blob.
func (s *LocalBucketStore) Open(bucket, path string) (*os.File, error) {
	file, err := os.Open(s.resolve(bucket, path))
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return file, nil
}

// BucketDir returns the filesystem directory backing a bucket, for serving
// public buckets directly.
func (s *LocalBucketStore) BucketDir(bucket string) string {
	return filepath.Join(s.baseDir, bucket)
}

// Delete removes a stored blob if present.
func (s *LocalBucketStore) Delete(bucket, path string) error {
	if err := os.Remove(s.resolve(bucket, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *LocalBucketStore) resolve(bucket, path string) string {
	return filepath.Join(s.baseDir, bucket, filepath.FromSlash(strings.TrimLeft(path, "/")))
}
