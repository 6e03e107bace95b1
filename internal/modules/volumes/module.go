package volumes

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/limbgen/internal/modules/volumes/application"
	"github.com/saransh1220/limbgen/internal/modules/volumes/domain"
	"github.com/saransh1220/limbgen/internal/modules/volumes/infrastructure/cache"
	"github.com/saransh1220/limbgen/internal/modules/volumes/infrastructure/local"
	"github.com/saransh1220/limbgen/internal/modules/volumes/infrastructure/s3"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/database"
)

// Module represents the Volumes module
type Module struct {
	service *application.VolumeService
	store   domain.VolumeStore
	local   *local.LocalStore
	redis   *redis.Client
}

// NewModule creates and initializes the Volumes module
func NewModule(ctx context.Context, cfg config.FileStorageConfig, redisCfg database.RedisConfig) (*Module, error) {
	m := &Module{}

	if cfg.UseS3 {
		store, err := s3.NewS3Store(ctx, s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		m.store = store
	} else {
		store, err := local.NewLocalStore(cfg.LocalPath, cfg.LocalURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		m.store = store
		m.local = store
	}

	var refCache domain.ReferenceCache
	if redisCfg.Enabled() {
		client, err := database.NewRedis(ctx, redisCfg)
		if err != nil {
			// the cache only saves presign calls
			log.Printf("[volumes.NewModule] Reference cache disabled: %v", err)
		} else {
			refCache = cache.NewRedisCache(client)
			m.redis = client
		}
	}

	m.service = application.NewVolumeService(m.store, refCache, cfg.PresignExpiry)
	return m, nil
}

// Service returns the volume service for use by other modules
func (m *Module) Service() *application.VolumeService {
	return m.service
}

// LocalRoot returns the directory served by the volume host, or "" when
// volumes live in S3
func (m *Module) LocalRoot() string {
	if m.local == nil {
		return ""
	}
	return m.local.Root()
}

// Close releases the reference cache connection, if any
func (m *Module) Close() error {
	if m.redis == nil {
		return nil
	}
	return m.redis.Close()
}
