package gallery

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

const (
	pathUpload = "/images"
	fileField  = "file"
)

// UploadService sends image files to the backend.
type UploadService struct {
	c *apiclient.Client
}

// NewUploadService returns an UploadService using c.
func NewUploadService(c *apiclient.Client) *UploadService {
	return &UploadService{c: c}
}

// UploadFile is one file to send. Size enables percentage progress.
type UploadFile struct {
	Name   string
	Reader io.Reader
	Size   int64
}

// Upload posts f as the "file" part. onProgress, when set, is called as the
// body is read by the transport.
func (s *UploadService) Upload(ctx context.Context, f UploadFile, onProgress func(Progress), opts ...apiclient.RequestOption) (UploadResult, error) {
	if f.Reader == nil {
		return UploadResult{}, errors.New("upload file has no content")
	}
	r := f.Reader
	if onProgress != nil {
		r = &progressReader{r: f.Reader, total: f.Size, fn: onProgress}
	}
	form := &apiclient.Form{
		Files: []apiclient.File{{Field: fileField, Name: f.Name, Reader: r}},
	}
	return apiclient.Upload[UploadResult](ctx, s.c, pathUpload, form, opts...)
}

// progressReader reports bytes consumed from r.
type progressReader struct {
	r     io.Reader
	total int64
	read  atomic.Int64
	fn    func(Progress)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		loaded := p.read.Add(int64(n))
		p.fn(newProgress(loaded, p.total))
	}
	return n, err
}

func newProgress(loaded, total int64) Progress {
	if total <= 0 {
		return Progress{Loaded: loaded, Percent: -1}
	}
	pct := int((loaded*100 + total/2) / total)
	if pct > 100 {
		pct = 100
	}
	return Progress{Loaded: loaded, Total: total, Percent: pct}
}
