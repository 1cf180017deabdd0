// Package file holds the documents attached to a project.
package file

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
)

var (
	ErrTooLarge = errors.New("file exceeds the upload limit")
	ErrEmpty    = errors.New("file is empty")
)

type PreviewKind string

const (
	PreviewImage PreviewKind = "image"
	PreviewPDF   PreviewKind = "pdf"
	PreviewText  PreviewKind = "text"
	PreviewOther PreviewKind = "other"
)

// KindOf classifies a MIME type for the preview widget.
func KindOf(mime string) PreviewKind {
	mime = strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))
	switch {
	case strings.HasPrefix(mime, "image/"):
		return PreviewImage
	case mime == "application/pdf":
		return PreviewPDF
	case strings.HasPrefix(mime, "text/"), mime == "application/json":
		return PreviewText
	}
	return PreviewOther
}

// Detect sniffs content and returns its MIME type and preview kind.
func Detect(content []byte) (string, PreviewKind) {
	m := mimetype.Detect(content)
	kind := KindOf(m.String())
	if kind == PreviewOther {
		for p := m.Parent(); p != nil; p = p.Parent() {
			if p.Is("text/plain") {
				kind = PreviewText
				break
			}
		}
	}
	return m.String(), kind
}

type File struct {
	ID         int64
	ProjectID  int64
	Name       string
	Size       int64
	MimeType   string
	UploadedBy string
	CreatedAt  time.Time
}

func (f File) Kind() PreviewKind {
	return KindOf(f.MimeType)
}

type Upload struct {
	Name    string
	Content []byte
}

type Repository interface {
	List(ctx context.Context, projectID int64) ([]File, error)
	Upload(ctx context.Context, projectID int64, upload Upload) (File, error)
	Delete(ctx context.Context, projectID, fileID int64) error
	// Open streams the stored content. The caller closes the reader.
	Open(ctx context.Context, projectID, fileID int64) (io.ReadCloser, string, error)
}
