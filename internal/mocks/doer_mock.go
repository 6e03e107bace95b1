package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockDoer is a mock HTTP client for the upload module
type MockDoer struct {
	mock.Mock
}

func (m *MockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}
