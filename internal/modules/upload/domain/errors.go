package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPart    = errors.New("multipart part has no content reader")
	ErrUnknownJob     = errors.New("unknown job id")
	ErrResultNotReady = errors.New("job result not ready")
	ErrNoJobID        = errors.New("response carries no job id")
)

// TransportError means the request could not be sent or its response could not be read.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the server answered with a non-2xx status.
// The full response is kept so callers can inspect it.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.StatusCode)
}

// EncodeError means one of the multipart parts could not be serialized.
type EncodeError struct {
	Field string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s part: %v", e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
