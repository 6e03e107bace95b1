package mocks

import (
	"context"

	"github.com/saransh1220/limbgen/internal/modules/viewer/domain"
	"github.com/stretchr/testify/mock"
)

// MockRenderer is a mock implementation of domain.Renderer for testing
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, ref string) (domain.Presentation, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Presentation), args.Error(1)
}

// MockPresentation is a mock mounted presentation
type MockPresentation struct {
	mock.Mock
}

func (m *MockPresentation) Close() error {
	args := m.Called()
	return args.Error(0)
}
