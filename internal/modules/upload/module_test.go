package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/saransh1220/limbgen/internal/modules/upload/domain"
	"github.com/saransh1220/limbgen/internal/modules/upload/infrastructure/transport"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModule(t *testing.T) {
	m, err := NewModule(config.ServerConfig{BaseURL: "http://localhost:8000"}, http.DefaultClient)
	require.NoError(t, err)
	require.NotNil(t, m.Client())

	_, err = NewModule(config.ServerConfig{BaseURL: "http://localhost:8000"}, nil)
	require.Error(t, err)

	_, err = NewModule(config.ServerConfig{}, http.DefaultClient)
	require.Error(t, err)
}

func TestModule_UploadRedirectIsStatusError(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method == http.MethodPost {
			http.Redirect(w, r, "/jobs/abc", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := config.ServerConfig{BaseURL: ts.URL}
	m, err := NewModule(cfg, transport.NewHTTPClient(cfg))
	require.NoError(t, err)

	res, err := m.Client().Upload(context.Background(), domain.Payload{
		File:     strings.NewReader("scan"),
		Metadata: strings.NewReader(`{}`),
	})

	var statusErr *domain.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusSeeOther, statusErr.StatusCode)
	require.NotNil(t, res)
	assert.Equal(t, "/jobs/abc", res.Header.Get("Location"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
