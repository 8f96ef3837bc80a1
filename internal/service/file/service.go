package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajasreeit/crm-backend-go/internal/pkg/storage"
)

// Service places uploaded punch proof images into the blob store. Payloads
// are treated as opaque bytes; only the name and location are normalized.
type Service interface {
	// UploadPunchProof returns the public URL and the storage path of the
	// stored blob. The path lets callers delete the blob if the record the
	// image belongs to fails to persist.
	UploadPunchProof(ctx context.Context, employeeID string, date string, file io.Reader, filename string, direction string) (url string, storedPath string, err error)
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(fileStorage storage.FileStorage) Service {
	return &fileServiceImpl{storage: fileStorage}
}

// UploadPunchProof stores an image under punch/{employeeID}/{date} with a
// generated name.
func (f *fileServiceImpl) UploadPunchProof(ctx context.Context, employeeID string, date string, file io.Reader, filename string, direction string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%s_%s%s", strings.ToLower(direction), uuid.NewString(), ext)
	path := filepath.Join("punch", employeeID, date, name)

	stored, err := f.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", "", fmt.Errorf("failed to upload punch proof: %w", err)
	}

	url, err := f.storage.GetURL(ctx, stored, 0)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve punch proof URL: %w", err)
	}

	return url, stored, nil
}

func (f *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return f.storage.Delete(ctx, path)
}

func (f *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return f.storage.GetURL(ctx, path, 24*time.Hour)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
