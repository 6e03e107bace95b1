package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/saransh1220/limbgen/internal/modules/upload/domain"
	"github.com/saransh1220/limbgen/internal/modules/upload/infrastructure/formdata"
)

const (
	uploadPath = "/upload"
	statusPath = "/status/"
	resultPath = "/result/"
)

// Client talks to the inference server. It keeps no state between calls, so a
// single Client may be shared by concurrent callers.
type Client struct {
	doer    domain.Doer
	baseURL string
}

// NewClient creates a client for the server at baseURL using the given doer
func NewClient(doer domain.Doer, baseURL string) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload sends the payload as one multipart POST to /upload.
// A 2xx response is returned as is; anything else is a *domain.StatusError.
// The call is never retried.
func (c *Client) Upload(ctx context.Context, p domain.Payload) (*domain.Response, error) {
	if err := formdata.Validate(p); err != nil {
		return nil, err
	}

	target := c.baseURL + uploadPath
	body := formdata.NewBody(p)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body.Reader())
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", body.ContentType())

	resp, err := c.doer.Do(req)
	if encErr := body.Close(); encErr != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, encErr
	}
	if err != nil {
		return nil, &domain.TransportError{Op: http.MethodPost, URL: target, Err: err}
	}

	return readResponse(resp, http.MethodPost, target)
}

// UploadAsync starts Upload in the background and returns at once
func (c *Client) UploadAsync(ctx context.Context, p domain.Payload) *Pending {
	pending := newPending()
	go func() {
		pending.resolve(c.Upload(ctx, p))
	}()
	return pending
}

// Status asks the server for the state of a job
func (c *Client) Status(ctx context.Context, jobID string) (domain.JobStatus, error) {
	var status domain.JobStatus

	resp, target, err := c.get(ctx, statusPath+url.PathEscape(jobID))
	if err != nil {
		return status, err
	}

	res, err := readResponse(resp, http.MethodGet, target)
	if err != nil {
		return status, err
	}

	if err := json.Unmarshal(res.Body, &status); err != nil {
		return status, fmt.Errorf("failed to decode job status: %w", err)
	}
	// the server answers unknown ids with 200 and an error body
	if status.Status == "" && status.Error != "" {
		return status, fmt.Errorf("%w: %s", domain.ErrUnknownJob, jobID)
	}
	return status, nil
}

// Result streams the segmentation volume of a finished job into w
func (c *Client) Result(ctx context.Context, jobID string, w io.Writer) (int64, error) {
	resp, target, err := c.get(ctx, resultPath+url.PathEscape(jobID))
	if err != nil {
		return 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, err := readResponse(resp, http.MethodGet, target)
		if IsStatus(err, http.StatusNotFound) {
			return 0, fmt.Errorf("%w: %w", domain.ErrResultNotReady, err)
		}
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &domain.TransportError{Op: http.MethodGet, URL: target, Err: err}
	}
	return n, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, string, error) {
	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, target, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, target, &domain.TransportError{Op: http.MethodGet, URL: target, Err: err}
	}
	return resp, target, nil
}

// readResponse drains and closes the body and classifies the status code
func readResponse(resp *http.Response, method, target string) (*domain.Response, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: method, URL: target, Err: err}
	}

	res := &domain.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, &domain.StatusError{StatusCode: resp.StatusCode, Body: data}
	}
	return res, nil
}

// DecodeJob extracts the job id from an upload response
func DecodeJob(res *domain.Response) (domain.Job, error) {
	var job domain.Job
	if res == nil {
		return job, domain.ErrNoJobID
	}
	if err := json.Unmarshal(res.Body, &job); err != nil {
		return job, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if job.ID == "" {
		return job, domain.ErrNoJobID
	}
	return job, nil
}

// IsStatus reports whether err is a server rejection with the given code
func IsStatus(err error, code int) bool {
	var statusErr *domain.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
