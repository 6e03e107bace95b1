package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockVolumeStore is a mock implementation of domain.VolumeStore for testing
type MockVolumeStore struct {
	mock.Mock
}

func (m *MockVolumeStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockVolumeStore) Reference(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockVolumeStore) KeyFromReference(ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockVolumeStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
