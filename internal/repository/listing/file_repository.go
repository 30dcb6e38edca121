// File: internal/repository/listing/file_repository.go
package listing

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/iyunix/campus-market/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileRepository keeps a category's collection in one indented JSON file.
type FileRepository struct {
	path   string
	logger Logger
}

// NewFileRepository stores the category's collection under dir using the category's file name.
func NewFileRepository(dir string, category domain.Category, logger Logger) *FileRepository {
	return &FileRepository{
		path:   filepath.Join(dir, category.CollectionFile()),
		logger: logger,
	}
}

// Path is the collection file location.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) []domain.Listing {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("listing collection unreadable, treating as empty", "path", r.path, "error", err)
		}
		return []domain.Listing{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Listing{}
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		r.logger.Warn("listing collection corrupt, treating as empty", "path", r.path, "error", err)
		return []domain.Listing{}
	}
	if listings == nil {
		return []domain.Listing{}
	}
	return listings
}

// Replace writes a sibling temp file, syncs it and renames it over the collection.
func (r *FileRepository) Replace(ctx context.Context, listings []domain.Listing) error {
	if listings == nil {
		listings = []domain.Listing{}
	}
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode listing collection: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp collection file: %w", err)
	}
	tmpName := tmp.Name()
	// Removing after a successful rename is a harmless ENOENT.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp collection file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp collection file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp collection file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to swap collection file: %w", err)
	}

	r.logger.Debug("listing collection replaced", "path", r.path, "count", len(listings))
	return nil
}
