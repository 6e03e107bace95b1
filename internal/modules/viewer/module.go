package viewer

import (
	"fmt"

	"github.com/saransh1220/limbgen/internal/modules/viewer/application"
	"github.com/saransh1220/limbgen/internal/modules/viewer/domain"
	"github.com/saransh1220/limbgen/internal/modules/viewer/infrastructure/browser"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
)

// Module represents the Viewer module
type Module struct {
	viewer *application.VolumeViewer
}

// NewModule creates the Viewer module. A nil renderer selects the browser renderer.
func NewModule(cfg config.ViewerConfig, renderer domain.Renderer) (*Module, error) {
	if renderer == nil {
		r, err := browser.NewRenderer(cfg.PageURL, cfg.Param)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize browser renderer: %w", err)
		}
		renderer = r
	}

	return &Module{
		viewer: application.NewVolumeViewer(renderer),
	}, nil
}

// Viewer returns the volume viewer
func (m *Module) Viewer() *application.VolumeViewer {
	return m.viewer
}
