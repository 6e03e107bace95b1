package browser_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/juju/webbrowser"
	"github.com/saransh1220/limbgen/internal/modules/viewer/infrastructure/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_Validation(t *testing.T) {
	_, err := browser.NewRenderer("not a url", "url")
	require.Error(t, err)

	_, err = browser.NewRenderer("/relative/viewer", "url")
	require.Error(t, err)

	r, err := browser.NewRenderer("http://localhost:5173/viewer", "")
	require.NoError(t, err)
	assert.Equal(t, "x", r.ViewerURL("x").Query().Get("url"))
}

func TestRenderer_PassesReferenceUnchanged(t *testing.T) {
	r, err := browser.NewRenderer("http://localhost:5173/viewer?theme=dark", "volume")
	require.NoError(t, err)

	var opened *url.URL
	r.SetOpener(func(u *url.URL) error {
		opened = u
		return nil
	})

	refs := []string{
		"http://localhost:8080/volumes/results/abc_seg.nii.gz",
		"",
		"::not a url::",
	}
	for _, ref := range refs {
		p, err := r.Render(context.Background(), ref)
		require.NoError(t, err)
		require.NoError(t, p.Close())

		require.NotNil(t, opened)
		assert.Equal(t, ref, opened.Query().Get("volume"))
		assert.Equal(t, "dark", opened.Query().Get("theme"))
		assert.Equal(t, "/viewer", opened.Path)
	}
}

func TestRenderer_NoBrowser(t *testing.T) {
	r, err := browser.NewRenderer("http://localhost:5173/viewer", "url")
	require.NoError(t, err)
	r.SetOpener(func(*url.URL) error { return webbrowser.ErrNoBrowser })

	p, err := r.Render(context.Background(), "ref")
	assert.ErrorIs(t, err, webbrowser.ErrNoBrowser)
	assert.Nil(t, p)
}

func TestRenderer_CancelledContext(t *testing.T) {
	r, err := browser.NewRenderer("http://localhost:5173/viewer", "url")
	require.NoError(t, err)
	called := false
	r.SetOpener(func(*url.URL) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, "ref")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
