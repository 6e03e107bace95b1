package application

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/saransh1220/limbgen/internal/modules/volumes/domain"
)

// VolumeService stores segmentation volumes and resolves keys to references
type VolumeService struct {
	store  domain.VolumeStore
	cache  domain.ReferenceCache
	expiry time.Duration
}

// NewVolumeService creates a new volume service. cache may be nil.
func NewVolumeService(store domain.VolumeStore, cache domain.ReferenceCache, expiry time.Duration) *VolumeService {
	return &VolumeService{
		store:  store,
		cache:  cache,
		expiry: expiry,
	}
}

// StoreResult keeps the segmentation volume of a job and returns its key
func (s *VolumeService) StoreResult(ctx context.Context, jobID string, r io.Reader) (string, error) {
	key := domain.ResultKey(jobID)
	if _, err := s.store.Put(ctx, key, r, domain.VolumeContentType); err != nil {
		return "", err
	}
	return key, nil
}

// Reference returns a URL the viewer can fetch for key.
// Cached references are reused for half the presign expiry so a cached URL
// never outlives its signature.
func (s *VolumeService) Reference(ctx context.Context, key string) (string, error) {
	if s.cache != nil {
		ref, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[VolumeService.Reference] Cache read failed: %v", err)
		} else if ok {
			return ref, nil
		}
	}

	ref, err := s.store.Reference(ctx, key, s.expiry)
	if err != nil {
		return "", err
	}

	if s.cache != nil && s.expiry > 0 {
		if err := s.cache.Set(ctx, key, ref, s.expiry/2); err != nil {
			log.Printf("[VolumeService.Reference] Cache write failed: %v", err)
		}
	}
	return ref, nil
}

// KeyFromReference extracts the storage key from a reference
func (s *VolumeService) KeyFromReference(ref string) (string, error) {
	return s.store.KeyFromReference(ref)
}

// Delete removes a volume
func (s *VolumeService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
