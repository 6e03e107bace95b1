package application

import (
	"context"
	"errors"
	"sync"

	"github.com/saransh1220/limbgen/internal/modules/viewer/domain"
)

// VolumeViewer keeps at most one presentation mounted and remounts it when the
// reference changes.
type VolumeViewer struct {
	renderer domain.Renderer

	mu      sync.Mutex
	ref     string
	current domain.Presentation
}

// NewVolumeViewer creates a viewer delegating to renderer
func NewVolumeViewer(renderer domain.Renderer) *VolumeViewer {
	return &VolumeViewer{renderer: renderer}
}

// Show displays ref. Showing the reference that is already mounted does nothing;
// any other reference replaces the current presentation. Renderer errors are
// returned as is and leave nothing mounted. An error closing the old
// presentation is returned too, but ref is rendered regardless.
func (v *VolumeViewer) Show(ctx context.Context, ref string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.current != nil && v.ref == ref {
		return nil
	}

	closeErr := v.unmountLocked()

	p, err := v.renderer.Render(ctx, ref)
	if err != nil {
		if closeErr != nil {
			return errors.Join(closeErr, err)
		}
		return err
	}
	v.ref = ref
	v.current = p
	return closeErr
}

// Reference returns the mounted reference, if any
func (v *VolumeViewer) Reference() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ref, v.current != nil
}

// Close unmounts the current presentation
func (v *VolumeViewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unmountLocked()
}

func (v *VolumeViewer) unmountLocked() error {
	if v.current == nil {
		return nil
	}
	p := v.current
	v.current = nil
	v.ref = ""
	return p.Close()
}
