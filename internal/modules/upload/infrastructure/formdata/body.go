package formdata

import (
	"io"
	"mime/multipart"
	"sync"

	"github.com/saransh1220/limbgen/internal/modules/upload/domain"
)

// Body streams a payload as multipart/form-data through a pipe, so the scan
// archive is never buffered in memory.
type Body struct {
	pr          *io.PipeReader
	contentType string
	done        chan struct{}

	mu  sync.Mutex
	err error
}

// NewBody starts encoding p. The returned Body must be handed to exactly one
// request and released with Close once the request has returned.
func NewBody(p domain.Payload) *Body {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	b := &Body{
		pr:          pr,
		contentType: mw.FormDataContentType(),
		done:        make(chan struct{}),
	}
	go b.encode(pw, mw, p)
	return b
}

// Validate checks that both parts have a reader
func Validate(p domain.Payload) error {
	if p.File == nil {
		return &domain.EncodeError{Field: domain.FieldFile, Err: domain.ErrMissingPart}
	}
	if p.Metadata == nil {
		return &domain.EncodeError{Field: domain.FieldMetadata, Err: domain.ErrMissingPart}
	}
	return nil
}

// ContentType returns the multipart content type including the boundary
func (b *Body) ContentType() string {
	return b.contentType
}

// Reader returns the stream the request should send
func (b *Body) Reader() io.ReadCloser {
	return b.pr
}

// Close stops the encoder and returns the encode error, if any.
// Failures caused by the request side closing the stream are not reported.
func (b *Body) Close() error {
	b.pr.Close()
	<-b.done

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Body) encode(pw *io.PipeWriter, mw *multipart.Writer, p domain.Payload) {
	defer close(b.done)

	err := writePart(mw, domain.FieldFile, nameOr(p.FileName, domain.DefaultFileName), p.File)
	if err == nil {
		err = writePart(mw, domain.FieldMetadata, nameOr(p.MetadataName, domain.DefaultMetadataName), p.Metadata)
	}
	if err == nil {
		err = mw.Close()
	}

	if encErr, ok := err.(*domain.EncodeError); ok {
		b.mu.Lock()
		b.err = encErr
		b.mu.Unlock()
	}
	pw.CloseWithError(err)
}

func writePart(mw *multipart.Writer, field, filename string, src io.Reader) error {
	if src == nil {
		return &domain.EncodeError{Field: field, Err: domain.ErrMissingPart}
	}

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}

	sr := &sourceReader{r: src}
	if _, err := io.Copy(part, sr); err != nil {
		if sr.err != nil {
			return &domain.EncodeError{Field: field, Err: sr.err}
		}
		return err
	}
	return nil
}

// sourceReader remembers read failures so they can be told apart from pipe
// write failures.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
