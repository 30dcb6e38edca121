// File: internal/services/media/image_store.go
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

const (
	MaxImageSize = 10 * 1024 * 1024 // 10 MB
	// URLPrefix starts every image reference handed to listings.
	URLPrefix = "/uploads/"
)

var (
	ErrFileTooBig      = errors.New("file size exceeds 10MB limit")
	ErrInvalidFileType = errors.New("invalid file type, only JPEG, PNG, GIF and WebP images are allowed")
	ErrInvalidArea     = errors.New("invalid storage area")
	ErrUploadFailed    = errors.New("failed to upload file")

	allowedContentTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}
)

// Upload is one image taken from a submission form.
type Upload struct {
	Name        string
	ContentType string
	// Size is -1 when unknown.
	Size int64
	Body io.Reader
}

// ImageStore keeps listing images and serves them back.
type ImageStore interface {
	// Save stores the upload under area and returns its public reference,
	// always of the form /uploads/<area>/<file>.
	Save(ctx context.Context, area string, upload Upload) (string, error)

	// Handler serves stored images. It expects URLPrefix already stripped from the path.
	Handler() http.Handler
}

// Logger interface for the image stores
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// validateUpload normalizes the content type and returns the matching extension.
func validateUpload(upload Upload) (string, string, error) {
	if upload.Size > MaxImageSize {
		return "", "", ErrFileTooBig
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", "", ErrInvalidFileType
	}
	return contentType, ext, nil
}

func validateArea(area string) error {
	if area == "" || strings.HasPrefix(area, "/") || path.Clean(area) != area || strings.Contains(area, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidArea, area)
	}
	return nil
}

func reference(area, file string) string {
	return URLPrefix + area + "/" + file
}
