package domain

import "context"

// Renderer turns a volume reference into something on screen.
// It owns loading and error reporting; callers hand it the reference untouched.
type Renderer interface {
	Render(ctx context.Context, ref string) (Presentation, error)
}

// Presentation is a mounted rendering of one reference
type Presentation interface {
	Close() error
}
