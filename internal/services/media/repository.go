package media

import (
	"context"
	"errors"

	"github.com/marginote/annotator-api/internal/models"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new media repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// Upsert inserts or refreshes a media record keyed by its media ID
func (r *RepositoryImpl) Upsert(ctx context.Context, media *models.Media) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"path", "filename", "size", "mime_type", "updated_at"}),
	}).Create(media).Error
	if err != nil {
		return apperrors.StoreUnavailable("upsert media", err)
	}
	return nil
}

// GetByMediaID retrieves a media record by its derived media ID
func (r *RepositoryImpl) GetByMediaID(ctx context.Context, mediaID string) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).Where("media_id = ?", mediaID).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("media", mediaID)
		}
		return nil, apperrors.StoreUnavailable("get media", err)
	}
	return &media, nil
}
