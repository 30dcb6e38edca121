// File: internal/services/media/minio_store.go
package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOImageStore keeps images in an S3-compatible bucket and proxies reads,
// so references keep the same /uploads/ shape as the local store.
type MinIOImageStore struct {
	client     *minio.Client
	bucketName string
	logger     Logger

	mu          sync.Mutex
	bucketReady bool
}

// NewMinIOImageStore creates the client only. The bucket is checked on first upload,
// so an unreachable MinIO does not block startup.
func NewMinIOImageStore(endpoint, accessKey, secretKey, bucketName string, useSSL bool, logger Logger) (*MinIOImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinIOImageStore{client: client, bucketName: bucketName, logger: logger}, nil
}

func (s *MinIOImageStore) ensureBucketExists(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketReady {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		s.logger.Info("image bucket created", "bucket", s.bucketName)
	}
	s.bucketReady = true
	return nil
}

// Save uploads to <area>/<uuid><ext>.
func (s *MinIOImageStore) Save(ctx context.Context, area string, upload Upload) (string, error) {
	if err := validateArea(area); err != nil {
		return "", err
	}
	contentType, ext, err := validateUpload(upload)
	if err != nil {
		return "", err
	}
	if err := s.ensureBucketExists(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	objectKey := objectKey(area, ext)
	info, err := s.client.PutObject(ctx, s.bucketName, objectKey, upload.Body, upload.Size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"Original-Name": upload.Name,
			"Uploaded-At":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if info.Size > MaxImageSize {
		s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{})
		return "", ErrFileTooBig
	}

	s.logger.Debug("image stored", "bucket", s.bucketName, "key", objectKey, "bytes", info.Size)
	return URLPrefix + objectKey, nil
}

// Handler streams the object named by the request path.
func (s *MinIOImageStore) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/")
		if key == "" || validateArea(key) != nil {
			http.NotFound(w, r)
			return
		}

		obj, err := s.client.GetObject(r.Context(), s.bucketName, key, minio.GetObjectOptions{})
		if err != nil {
			s.logger.Error("image fetch failed", "key", key, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		defer obj.Close()

		stat, err := obj.Stat()
		if err != nil {
			if minio.ToErrorResponse(err).Code == "NoSuchKey" {
				http.NotFound(w, r)
				return
			}
			s.logger.Error("image stat failed", "key", key, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if stat.ContentType != "" {
			w.Header().Set("Content-Type", stat.ContentType)
		}
		http.ServeContent(w, r, key, stat.LastModified, obj)
	})
}

func objectKey(area, ext string) string {
	return fmt.Sprintf("%s/%s%s", area, uuid.New().String(), ext)
}
