package domain

import (
	"io"
	"net/http"
)

// Multipart field names expected by the inference server
const (
	FieldFile     = "file"
	FieldMetadata = "metadata"

	DefaultFileName     = "file"
	DefaultMetadataName = "metadata.json"
)

// Payload is the body of a single upload: the scan archive and its metadata blob.
// It is consumed by exactly one request.
type Payload struct {
	File         io.Reader
	FileName     string
	Metadata     io.Reader
	MetadataName string
}

// Response is the server's reply to a request, read in full
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Job identifies an inference job started by an upload
type Job struct {
	ID string `json:"job_id"`
}

// JobStatus is the server's view of a job
type JobStatus struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Job status values reported by the server
const (
	StatusRunning = "running"
	StatusDone    = "done"
)

// Done reports whether the job has produced its segmentation volume
func (s JobStatus) Done() bool {
	return s.Status == StatusDone
}
