package domain

import (
	"context"
	"io"
	"time"
)

// VolumeStore keeps volume files and hands out references a viewer can fetch.
// It can be implemented by S3, MinIO or the local filesystem.
type VolumeStore interface {
	// Put stores a volume under key and returns its public URL
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)

	// Reference returns a fetchable URL for key, valid for at least ttl
	Reference(ctx context.Context, key string, ttl time.Duration) (string, error)

	// KeyFromReference extracts the storage key from a URL minted by this store
	KeyFromReference(ref string) (string, error)

	// Delete removes a volume
	Delete(ctx context.Context, key string) error
}

// ReferenceCache remembers minted references
type ReferenceCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, ref string, ttl time.Duration) error
}
