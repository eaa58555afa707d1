package media

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/marginote/annotator-api/internal/models"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new media service
func NewService(repository Repository) Service {
	return &ServiceImpl{repository: repository}
}

// Resolve stats the file, derives the stable media ID and records it.
func (s *ServiceImpl) Resolve(ctx context.Context, path string) (*models.Media, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NotFound("media file", path).WithCause(err)
	}
	if info.IsDir() {
		return nil, apperrors.ValidationError("path", "is a directory, not a media file")
	}

	mediaID, err := models.DeriveMediaID(path)
	if err != nil {
		return nil, apperrors.NotFound("media file", path).WithCause(err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	media := &models.Media{
		MediaID:  mediaID,
		Path:     path,
		Filename: filepath.Base(path),
		Size:     info.Size(),
		MimeType: mimeType,
	}
	if err := s.repository.Upsert(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// GetByMediaID looks up a previously resolved media source.
func (s *ServiceImpl) GetByMediaID(ctx context.Context, mediaID string) (*models.Media, error) {
	return s.repository.GetByMediaID(ctx, mediaID)
}
