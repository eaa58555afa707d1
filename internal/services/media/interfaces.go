package media

import (
	"context"

	"github.com/marginote/annotator-api/internal/models"
)

// Repository defines the interface for media registry data access
type Repository interface {
	Upsert(ctx context.Context, media *models.Media) error
	GetByMediaID(ctx context.Context, mediaID string) (*models.Media, error)
}

// Service resolves media files to stable media IDs. The ID is derived
// from the file's name, size and mtime, so reopening the same file
// lands on the same annotation set.
type Service interface {
	// Resolve stats the file at path, derives its media ID and records
	// it in the registry.
	Resolve(ctx context.Context, path string) (*models.Media, error)

	// GetByMediaID looks up a previously resolved media source.
	GetByMediaID(ctx context.Context, mediaID string) (*models.Media, error)
}
