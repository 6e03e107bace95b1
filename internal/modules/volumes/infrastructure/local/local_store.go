package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/saransh1220/limbgen/internal/modules/volumes/domain"
)

// LocalStore implements VolumeStore on a local directory that the volume
// host serves under baseURL
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a new local filesystem volume store
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create volume directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the directory volumes are kept in
func (l *LocalStore) Root() string {
	return l.basePath
}

// Put writes a volume to the local directory
func (l *LocalStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if err := domain.ValidateKey(key); err != nil {
		return "", err
	}
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return l.url(key), nil
}

// Reference for local storage is the public URL; ttl does not apply
func (l *LocalStore) Reference(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := domain.ValidateKey(key); err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(l.basePath, filepath.FromSlash(key))); err != nil {
		return "", fmt.Errorf("volume %s: %w", key, err)
	}
	return l.url(key), nil
}

// Delete removes a volume from the local directory
func (l *LocalStore) Delete(ctx context.Context, key string) error {
	if err := domain.ValidateKey(key); err != nil {
		return err
	}
	return os.Remove(filepath.Join(l.basePath, filepath.FromSlash(key)))
}

// KeyFromReference extracts the key from a public URL
func (l *LocalStore) KeyFromReference(ref string) (string, error) {
	prefix := l.baseURL + "/"
	if len(ref) > len(prefix) && strings.HasPrefix(ref, prefix) {
		return ref[len(prefix):], nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrForeignURL, ref)
}

func (l *LocalStore) url(key string) string {
	return fmt.Sprintf("%s/%s", l.baseURL, key)
}
