package viewer

import (
	"testing"

	"github.com/saransh1220/limbgen/internal/mocks"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/require"
)

func TestNewModule_BrowserAndInjected(t *testing.T) {
	m, err := NewModule(config.ViewerConfig{PageURL: "http://localhost:5173/viewer", Param: "url"}, nil)
	require.NoError(t, err)
	require.NotNil(t, m.Viewer())

	_, err = NewModule(config.ViewerConfig{PageURL: "viewer"}, nil)
	require.Error(t, err)

	m, err = NewModule(config.ViewerConfig{}, new(mocks.MockRenderer))
	require.NoError(t, err)
	require.NotNil(t, m.Viewer())
}
