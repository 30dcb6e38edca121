// File: internal/services/media/local_store.go
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LocalImageStore writes images below a directory on disk.
type LocalImageStore struct {
	root   string
	logger Logger
	now    func() time.Time
}

func NewLocalImageStore(root string, logger Logger) *LocalImageStore {
	return &LocalImageStore{root: root, logger: logger, now: time.Now}
}

// Save writes the upload to <root>/<area>/<unixmillis>-<name>.
func (s *LocalImageStore) Save(ctx context.Context, area string, upload Upload) (string, error) {
	if err := validateArea(area); err != nil {
		return "", err
	}
	_, ext, err := validateUpload(upload)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(area))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	name := sanitizeName(upload.Name, ext)
	stamp := s.now().UnixMilli()
	var (
		file     *os.File
		fileName string
	)
	for attempt := 0; ; attempt++ {
		fileName = fmt.Sprintf("%d-%s", stamp, name)
		if attempt > 0 {
			fileName = fmt.Sprintf("%d-%d-%s", stamp, attempt, name)
		}
		file, err = os.OpenFile(filepath.Join(dir, fileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) || attempt >= 100 {
			return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}
	fullPath := file.Name()

	written, err := io.Copy(file, io.LimitReader(upload.Body, MaxImageSize+1))
	closeErr := file.Close()
	switch {
	case err != nil:
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	case written > MaxImageSize:
		os.Remove(fullPath)
		return "", ErrFileTooBig
	case closeErr != nil:
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, closeErr)
	}

	ref := reference(area, fileName)
	s.logger.Debug("image stored", "reference", ref, "bytes", written)
	return ref, nil
}

// Handler serves files from the root directory. Directory listings are not exposed.
func (s *LocalImageStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// sanitizeName keeps the base of the client file name, safe for any filesystem.
func sanitizeName(name, ext string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "-"), "-.")
	if name == "" {
		return "image" + ext
	}
	if filepath.Ext(name) == "" {
		name += ext
	}
	return name
}
