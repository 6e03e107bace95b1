package upload

import (
	"fmt"

	"github.com/saransh1220/limbgen/internal/modules/upload/application"
	"github.com/saransh1220/limbgen/internal/modules/upload/domain"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
)

// Module represents the Upload module
type Module struct {
	client *application.Client
}

// NewModule creates the Upload module around an HTTP client owned by the caller
func NewModule(cfg config.ServerConfig, doer domain.Doer) (*Module, error) {
	if doer == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("server base url is required")
	}

	return &Module{
		client: application.NewClient(doer, cfg.BaseURL),
	}, nil
}

// Client returns the upload client for use by other modules
func (m *Module) Client() *application.Client {
	return m.client
}
