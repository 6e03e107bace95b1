package browser

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/juju/webbrowser"
	"github.com/saransh1220/limbgen/internal/modules/viewer/domain"
)

// Renderer opens the web volume viewer in the user's browser with the
// reference as a query parameter.
type Renderer struct {
	page  *url.URL
	param string
	open  func(*url.URL) error
}

// NewRenderer creates a browser renderer for the viewer page at pageURL
func NewRenderer(pageURL, param string) (*Renderer, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid viewer url: %w", err)
	}
	if page.Scheme == "" || page.Host == "" {
		return nil, fmt.Errorf("viewer url must be absolute: %s", pageURL)
	}
	if param == "" {
		param = "url"
	}
	return &Renderer{page: page, param: param, open: webbrowser.Open}, nil
}

// ViewerURL returns the page address that displays ref
func (r *Renderer) ViewerURL(ref string) *url.URL {
	u := *r.page
	q := u.Query()
	q.Set(r.param, ref)
	u.RawQuery = q.Encode()
	return &u
}

// Render opens the viewer page. webbrowser.ErrNoBrowser is returned unchanged.
func (r *Renderer) Render(ctx context.Context, ref string) (domain.Presentation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := r.ViewerURL(ref)
	log.Printf("[BrowserRenderer.Render] Opening %s", u)
	if err := r.open(u); err != nil {
		return nil, err
	}
	return &page{url: u}, nil
}

// page is an opened browser tab. The tab belongs to the browser once opened.
type page struct {
	url *url.URL
}

func (p *page) Close() error { return nil }

func (p *page) String() string { return p.url.String() }
