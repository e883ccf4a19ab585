package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

var ErrUnsupportedMedia = errors.New("unsupported media type")

// Upload is a file received in a multipart form, already sniffed.
type Upload struct {
	Name        string
	ContentType string
	Body        multipart.File
}

func (u *Upload) Close() error {
	return u.Body.Close()
}

// Accept decides whether a sniffed content type may be stored.
type Accept func(contentType string) bool

// Images accepts raster image types.
func Images(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Media accepts images, audio and video, which covers browser voice notes.
func Media(contentType string) bool {
	return Images(contentType) ||
		strings.HasPrefix(contentType, "audio/") ||
		strings.HasPrefix(contentType, "video/") ||
		contentType == "application/ogg"
}

// FormFile returns the file posted under field, or nil when there is none.
// The content type is sniffed from the first bytes rather than trusted from
// the client. r.ParseMultipartForm must have been called.
func FormFile(r *http.Request, field string, accept Accept) (*Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	if n == 0 {
		file.Close()
		return nil, nil
	}

	contentType := http.DetectContentType(head[:n])
	if !accept(contentType) {
		file.Close()
		return nil, ErrUnsupportedMedia
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to rewind %s: %w", field, err)
	}

	return &Upload{Name: header.Filename, ContentType: contentType, Body: file}, nil
}

// IsTooLarge reports whether err came from an http.MaxBytesReader limit.
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
