package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
	"github.com/evergreenwebsolutions/onboarding/internal/storage"
)

// UploadService relays one browser-supplied file into blob storage and
// returns its descriptor. Calls are independent; no retries, the
// caller re-attempts manually.
type UploadService struct {
	store storage.Store
}

func NewUploadService(store storage.Store) *UploadService {
	return &UploadService{store: store}
}

func (s *UploadService) Upload(ctx context.Context, fileName string, r io.Reader, size int64, contentType string) (*models.FileMeta, error) {
	if fileName == "" {
		return nil, errors.New("file name is required")
	}
	if contentType == "" {
		contentType = detectContentType(fileName)
	}

	// uuid prefix keeps distinct uploads of the same filename apart.
	key := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fileName))

	url, err := s.store.Put(ctx, key, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}

	return &models.FileMeta{
		URL:  url,
		Name: fileName,
		Type: contentType,
		Size: size,
	}, nil
}

func detectContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	types := map[string]string{
		".pdf":  "application/pdf",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".svg":  "image/svg+xml",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xls":  "application/vnd.ms-excel",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".csv":  "text/csv",
		".txt":  "text/plain",
		".json": "application/json",
		".zip":  "application/zip",
	}
	if ct, ok := types[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
