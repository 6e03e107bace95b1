package browser

import "net/url"

// SetOpener replaces the browser launcher
func (r *Renderer) SetOpener(open func(*url.URL) error) {
	r.open = open
}
