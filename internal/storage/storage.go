package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is the blob storage contract shared by the services: delivery
// proof photos, expedition photos and KYC documents all go through it.
type FileStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte) (string, error)
	PublicURL(bucket, path string) string
}

// DiskStore keeps uploaded files on the local filesystem, one directory per
// logical bucket, and serves them through a static public base URL.
type DiskStore struct {
	rootDir       string
	publicBaseURL string
}

func NewDiskStore(rootDir, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create storage root: %w", err)
	}
	return &DiskStore{
		rootDir:       rootDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// Upload writes the blob and returns its public URL. The path is caller
// controlled and must already be namespaced by user id.
func (s *DiskStore) Upload(ctx context.Context, bucket, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage path: %s", path)
	}

	full := filepath.Join(s.rootDir, bucket, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("cannot create bucket directory: %w", err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write file: %w", err)
	}

	return s.PublicURL(bucket, clean), nil
}

func (s *DiskStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, filepath.ToSlash(path))
}
